package flows

import "context"

// Service is the centralized flow runner built once by the root client.
type Service struct {
	deps Deps
}

// New returns a flow service with immutable dependency wiring.
func New(deps Deps) Service {
	return Service{deps: deps}
}

// Initialized reports whether the service has been wired with flow deps.
func (s Service) Initialized() bool {
	return s.deps.Login.Authenticate != nil
}

func (s Service) PasswordLogin(ctx context.Context, email, password string) (Route, UserRecord, error) {
	return RunPasswordLogin(ctx, email, password, s.deps.Login)
}

func (s Service) OAuthLogin(ctx context.Context, accessToken string) (Route, UserRecord, error) {
	return RunOAuthLogin(ctx, accessToken, s.deps.OAuth)
}

func (s Service) Signup(ctx context.Context, req SignupRequest) (Route, UserRecord, error) {
	return RunSignup(ctx, req, s.deps.Signup)
}

func (s Service) PasswordResetRequest(ctx context.Context, email string) error {
	return RunPasswordResetRequest(ctx, email, s.deps.Reset)
}

func (s Service) Logout(ctx context.Context) (Route, error) {
	return RunLogout(ctx, s.deps.Logout)
}
