package flows

import "context"

// LoginMetrics carries metric IDs needed by the password login flow.
type LoginMetrics struct {
	Success    int
	Failure    int
	Superseded int
}

// LoginEvents carries audit event names used by the password login flow.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries host-level sentinel errors used by the password
// login flow.
type LoginErrors struct {
	NotReady   error
	Superseded error
}

// LoginDeps captures password login dependencies.
type LoginDeps struct {
	// Authenticate submits the credential pair to the backend and returns
	// the bearer token and user record. No retries.
	Authenticate func(ctx context.Context, email, password string) (string, UserRecord, error)

	Session SessionDeps

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunPasswordLogin executes the password login flow: authenticate, inspect
// the returned record, persist, signal, route. The flow is Idle → Submitting
// → {Success, Failed}; a failure leaves the store untouched.
func RunPasswordLogin(ctx context.Context, email, password string, deps LoginDeps) (Route, UserRecord, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.Authenticate == nil || deps.Session.Persist == nil {
		return RouteEntry, UserRecord{}, deps.Errors.NotReady
	}

	var epoch uint64
	if deps.Session.BeginAttempt != nil {
		epoch = deps.Session.BeginAttempt()
	}

	token, user, err := deps.Authenticate(ctx, email, password)
	if err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", err, func() map[string]string {
			return map[string]string{"identifier": email}
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

func routeName(r Route) string {
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
