package dashauth

// Audit event names emitted by the client. One name per flow outcome plus
// the synchronizer refresh failure.
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailure         = "login_failure"
	EventOAuthLoginSuccess    = "oauth_login_success"
	EventOAuthLoginFailure    = "oauth_login_failure"
	EventRegisterSuccess      = "register_success"
	EventRegisterFailure      = "register_failure"
	EventPasswordResetRequest = "password_reset_request"
	EventLogout               = "logout"
	EventSessionRefresh       = "session_refresh"
)
