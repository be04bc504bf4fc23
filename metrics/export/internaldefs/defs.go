package internaldefs

import (
	dashauth "github.com/summit-enterprise/dashauth"
)

// CounterDef binds one metric ID to its exported name and help text.
type CounterDef struct {
	ID   dashauth.MetricID
	Name string
	Help string
}

// CounterDefs is the canonical export order shared by all exporters.
var CounterDefs = []CounterDef{
	{ID: dashauth.MetricLoginSuccess, Name: "dashauth_login_success_total", Help: "Successful password logins."},
	{ID: dashauth.MetricLoginFailure, Name: "dashauth_login_failure_total", Help: "Failed password logins."},
	{ID: dashauth.MetricOAuthLoginSuccess, Name: "dashauth_oauth_login_success_total", Help: "Successful OAuth logins."},
	{ID: dashauth.MetricOAuthLoginFailure, Name: "dashauth_oauth_login_failure_total", Help: "Failed OAuth logins (either exchange hop)."},
	{ID: dashauth.MetricRegisterSuccess, Name: "dashauth_register_success_total", Help: "Successful registrations."},
	{ID: dashauth.MetricRegisterFailure, Name: "dashauth_register_failure_total", Help: "Failed registrations."},
	{ID: dashauth.MetricPasswordResetRequest, Name: "dashauth_password_reset_request_total", Help: "Password reset requests submitted."},
	{ID: dashauth.MetricLogout, Name: "dashauth_logout_total", Help: "Logout operations."},
	{ID: dashauth.MetricLoginSuperseded, Name: "dashauth_login_superseded_total", Help: "Login responses dropped after a superseding logout."},
	{ID: dashauth.MetricStatePublished, Name: "dashauth_state_published_total", Help: "Session state publications to subscribers."},
	{ID: dashauth.MetricStorageTrigger, Name: "dashauth_storage_trigger_total", Help: "Reconciliations triggered by out-of-tab storage events."},
	{ID: dashauth.MetricLocalTrigger, Name: "dashauth_local_trigger_total", Help: "Reconciliations triggered by the same-tab signal."},
	{ID: dashauth.MetricFocusTrigger, Name: "dashauth_focus_trigger_total", Help: "Reconciliations triggered by focus polls."},
	{ID: dashauth.MetricProfileDecodeFailure, Name: "dashauth_profile_decode_failure_total", Help: "Persisted profiles that failed to decode and degraded to nil."},
}
