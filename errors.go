package dashauth

import "errors"

var (
	// ErrInvalidCredentials is returned by the password login flow when the
	// backend rejects the email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAuthUnavailable is returned when the authentication API cannot be
	// reached or answers with a non-2xx status. The store is left untouched.
	ErrAuthUnavailable = errors.New("authentication service unavailable")
	// ErrOAuthExchangeFailed is the single error kind for OAuth login.
	// Both hops (provider userinfo and backend exchange) collapse into it;
	// a failed OAuth login never partially persists a session.
	ErrOAuthExchangeFailed = errors.New("oauth exchange failed")
	// ErrRegistrationFailed is returned when the backend rejects a
	// registration request.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrPasswordResetFailed is returned when a password reset request
	// could not be submitted.
	ErrPasswordResetFailed = errors.New("password reset request failed")
	// ErrLoginSuperseded is returned when a login response lands after a
	// logout advanced the session epoch. The response is dropped instead of
	// resurrecting the cleared session.
	ErrLoginSuperseded = errors.New("login superseded by logout")
	// ErrStoreUnavailable wraps persisted-store failures.
	ErrStoreUnavailable = errors.New("session store unavailable")
	// ErrClientClosed is returned by operations on a closed client.
	ErrClientClosed = errors.New("client closed")
	// ErrClientNotReady is returned when a flow runs before the builder
	// finished wiring its dependencies.
	ErrClientNotReady = errors.New("client not initialized")
)
