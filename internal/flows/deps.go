package flows

// Deps groups flow dependency sets. The root client builds this once and
// delegates each public method to the matching flow implementation.
type Deps struct {
	Login  LoginDeps
	OAuth  OAuthDeps
	Signup SignupDeps
	Reset  ResetDeps
	Logout LogoutDeps
}
