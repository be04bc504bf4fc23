package dashauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenOpaque is returned by [InspectToken] for credentials that are not
// parseable JWTs. Opaque tokens are perfectly valid sessions; only the
// display metadata is unavailable.
var ErrTokenOpaque = errors.New("token is not a parseable jwt")

// TokenInfo is advisory display metadata extracted from a bearer token.
//
// The signature is NOT verified and none of these fields participate in any
// session or authorization decision — the resolver derives authentication
// from token presence alone, and privileged actions are re-authorized
// server-side. This exists so a settings surface can show "session expires
// at" without a network round trip.
type TokenInfo struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken parses the token without verifying it and extracts display
// metadata. Missing claims leave zero values.
func InspectToken(token string) (TokenInfo, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, ErrTokenOpaque
	}

	var info TokenInfo
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if email, ok := claims["email"].(string); ok {
		info.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
