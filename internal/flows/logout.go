package flows

import "context"

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutEvents carries audit event names used by the logout flow.
type LogoutEvents struct {
	Logout string
}

// LogoutErrors carries host-level sentinel errors used by the flow.
type LogoutErrors struct {
	NotReady error
}

// LogoutDeps captures logout dependencies.
type LogoutDeps struct {
	// Advance bumps the session epoch so any in-flight login response is
	// dropped instead of resurrecting the cleared session.
	Advance func()
	// Clear removes token, adminToken, and user as one best-effort group.
	Clear func(ctx context.Context) error
	// Signal raises the same-tab auth-changed signal.
	Signal func()

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

	Metrics LogoutMetrics
	Events  LogoutEvents
	Errors  LogoutErrors
}

// RunLogout clears the persisted session unconditionally — it does not
// first check which flow created the session or whether one exists. The
// epoch advances before the store is touched, then the same-tab signal is
// raised even when the clear partially failed, so the UI converges on
// whatever the store now holds.
func RunLogout(ctx context.Context, deps LogoutDeps) (Route, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Clear == nil {
		return RouteEntry, deps.Errors.NotReady
	}

	if deps.Advance != nil {
		deps.Advance()
	}

	err := deps.Clear(ctx)

	if deps.Signal != nil {
		deps.Signal()
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.EmitAudit(ctx, deps.Events.Logout, err == nil, "", err, nil)

	return RouteEntry, err
}
