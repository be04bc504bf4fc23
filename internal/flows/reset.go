package flows

import "context"

// ResetMetrics carries metric IDs needed by the password-reset flow.
type ResetMetrics struct {
	Request int
}

// ResetEvents carries audit event names used by the password-reset flow.
type ResetEvents struct {
	Request string
}

// ResetErrors carries host-level sentinel errors used by the flow.
type ResetErrors struct {
	NotReady error
}

// ResetDeps captures password-reset-request dependencies.
type ResetDeps struct {
	// Request submits the reset request to the backend.
	Request func(ctx context.Context, email string) error

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

	Metrics ResetMetrics
	Events  ResetEvents
	Errors  ResetErrors
}

// RunPasswordResetRequest fires a reset request and reports the outcome.
// It never touches the persisted session store.
func RunPasswordResetRequest(ctx context.Context, email string, deps ResetDeps) error {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Request == nil {
		return deps.Errors.NotReady
	}

	err := deps.Request(ctx, email)
	deps.MetricInc(deps.Metrics.Request)
	deps.EmitAudit(ctx, deps.Events.Request, err == nil, "", err, func() map[string]string {
		return map[string]string{"identifier": email}
	})
	return err
}
