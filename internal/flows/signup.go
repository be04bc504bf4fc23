package flows

import "context"

// SignupRequest is the flow-local registration input.
type SignupRequest struct {
	Email    string
	Password string
	Name     string
}

// SignupMetrics carries metric IDs needed by the registration flow.
type SignupMetrics struct {
	Success    int
	Failure    int
	Superseded int
}

// SignupEvents carries audit event names used by the registration flow.
type SignupEvents struct {
	Success string
	Failure string
}

// SignupErrors carries host-level sentinel errors used by the flow.
type SignupErrors struct {
	NotReady   error
	Superseded error
}

// SignupDeps captures registration dependencies.
type SignupDeps struct {
	// CreateAccount submits the registration to the backend and returns
	// the bearer token and fresh user record.
	CreateAccount func(ctx context.Context, req SignupRequest) (string, UserRecord, error)

	Session SessionDeps

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

	Metrics SignupMetrics
	Events  SignupEvents
	Errors  SignupErrors
}

// RunSignup executes the registration flow. A successful registration
// persists a session through the same tail as login, including the
// banned/restricted short-circuit.
func RunSignup(ctx context.Context, req SignupRequest, deps SignupDeps) (Route, UserRecord, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.CreateAccount == nil || deps.Session.Persist == nil {
		return RouteEntry, UserRecord{}, deps.Errors.NotReady
	}

	var epoch uint64
	if deps.Session.BeginAttempt != nil {
		epoch = deps.Session.BeginAttempt()
	}

	token, user, err := deps.CreateAccount(ctx, req)
	if err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", err, func() map[string]string {
			return map[string]string{"identifier": req.Email}
		})
		return RouteEntry, UserRecord{}, err
	}

	route, err := finishSession(ctx, token, user, epoch, deps.Session)
	if err != nil {
		if err == deps.Errors.Superseded {
			deps.MetricInc(deps.Metrics.Superseded)
		} else {
			deps.MetricInc(deps.Metrics.Failure)
		}
		deps.EmitAudit(ctx, deps.Events.Failure, false, user.ID, err, nil)
		return RouteEntry, UserRecord{}, err
	}

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, true, user.ID, nil, func() map[string]string {
		return map[string]string{"route": routeName(route)}
	})
	return route, user, nil
}
