package dashauth

import (
	"context"
	"io"

	internalaudit "github.com/summit-enterprise/dashauth/internal/audit"
)

// Role is the privilege tier derived from the persisted profile snapshot.
// It is advisory: routing and rendering only. Every privileged action must
// be re-authorized server-side.
type Role uint8

const (
	// RoleAnonymous is the tier of a tab with no parseable profile.
	RoleAnonymous Role = iota
	// RoleUser is the tier of an ordinary authenticated profile.
	RoleUser
	// RoleAdmin is the tier of a profile carrying the admin flag.
	RoleAdmin
	// RoleSuperuser is the tier of a profile carrying the superuser flag.
	// Superuser outranks admin regardless of the admin flag's value.
	RoleSuperuser
)

// String returns the lowercase name of the role tier.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	case RoleSuperuser:
		return "superuser"
	default:
		return "anonymous"
	}
}

// Route identifies the landing surface a flow resolved to. The library does
// not navigate; callers map routes to whatever their UI layer uses.
type Route uint8

const (
	// RouteEntry is the unauthenticated entry surface (login/registration).
	RouteEntry Route = iota
	// RouteDashboard is the standard authenticated surface.
	RouteDashboard
	// RouteAdmin is the elevated landing surface.
	RouteAdmin
	// RouteRestricted is the support surface for banned or restricted
	// accounts. The banned check runs before the elevation check and
	// short-circuits it, so RouteRestricted wins over RouteAdmin.
	RouteRestricted
)

// String returns the lowercase name of the route.
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteAdmin:
		return "admin"
	case RouteRestricted:
		return "restricted"
	default:
		return "entry"
	}
}

// Profile is the persisted user snapshot. It is written at login time and
// never re-validated client-side afterwards; staleness is an accepted gap.
type Profile struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	PictureURL string `json:"picture,omitempty"`

	IsAdmin      bool `json:"is_admin"`
	IsSuperuser  bool `json:"is_superuser"`
	IsBanned     bool `json:"is_banned"`
	IsRestricted bool `json:"is_restricted"`
}

// State is the session state derived from a store snapshot. Exactly one
// State exists per tab at any instant; tabs may transiently disagree while
// a change propagates.
type State struct {
	Authenticated bool
	Role          Role
	Banned        bool
	Restricted    bool

	// Profile is nil when the persisted profile is absent or malformed.
	// A nil Profile never revokes Authenticated by itself.
	Profile *Profile
}

// LoginResult is returned by the login-class flows. State is the freshly
// resolved session state; Route is the landing surface decision.
type LoginResult struct {
	State State
	Route Route
}

// GoogleIdentity is the provider profile consumed by the OAuth login flow.
// Only these four fields are read from the provider's userinfo response.
type GoogleIdentity struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// RegisterRequest is the input for the registration flow.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// AuthAPI is the backend authentication API consumed by the flow
// controller. Implementations must not retry: a failed call is surfaced
// once and the user resubmits.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (string, Profile, error)
	GoogleLogin(ctx context.Context, identity GoogleIdentity) (string, Profile, error)
	Register(ctx context.Context, req RegisterRequest) (string, Profile, error)
	ForgotPassword(ctx context.Context, email string) error
}

// IdentityProvider exchanges a provider access token for an identity
// profile via the provider's userinfo endpoint.
type IdentityProvider interface {
	Userinfo(ctx context.Context, accessToken string) (GoogleIdentity, error)
}

// AuditEvent is a structured audit record emitted by the client.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
