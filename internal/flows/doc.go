// Package flows contains the auth flow controller implementations: password
// login, OAuth login, registration, password-reset request, and logout.
//
// Each flow is a Run* function taking a flow-local Deps struct of function
// fields. The root client wires Deps once at build time; flows never import
// the root package or touch transport directly. All four submit-style flows
// share the Idle → Submitting → {Success, Failed} shape with zero retries,
// and the login-class flows share the persistence tail in session.go.
package flows
