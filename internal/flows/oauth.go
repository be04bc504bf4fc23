package flows

import "context"

// OAuthIdentity is the flow-local provider profile. Only these four fields
// are consumed from the userinfo response.
type OAuthIdentity struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// OAuthMetrics carries metric IDs needed by the OAuth login flow.
type OAuthMetrics struct {
	Success    int
	Failure    int
	Superseded int
}

// OAuthEvents carries audit event names used by the OAuth login flow.
type OAuthEvents struct {
	Success string
	Failure string
}

// OAuthErrors carries host-level sentinel errors used by the OAuth flow.
type OAuthErrors struct {
	NotReady   error
	Exchange   error
	Superseded error
}

// OAuthDeps captures OAuth login dependencies.
type OAuthDeps struct {
	// ExchangeIdentity resolves the provider access token to an identity
	// profile via the provider's userinfo endpoint.
	ExchangeIdentity func(ctx context.Context, accessToken string) (OAuthIdentity, error)
	// ExchangeSession trades the identity profile for an application
	// session via the backend.
	ExchangeSession func(ctx context.Context, identity OAuthIdentity) (string, UserRecord, error)

	Session SessionDeps

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string)

	Metrics OAuthMetrics
	Events  OAuthEvents
	Errors  OAuthErrors
}

// RunOAuthLogin executes the two-hop OAuth login. Failure at either hop
// surfaces as the single Exchange sentinel, never as two distinct error
// kinds, and nothing is persisted — an OAuth failure must never leave a
// partial session behind.
func RunOAuthLogin(ctx context.Context, accessToken string, deps OAuthDeps) (Route, UserRecord, error) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, error, func() map[string]string) {}
	}
	if deps.ExchangeIdentity == nil || deps.ExchangeSession == nil || deps.Session.Persist == nil {
		return RouteEntry, UserRecord{}, deps.Errors.NotReady
	}

	var epoch uint64
	if deps.Session.BeginAttempt != nil {
		epoch = deps.Session.BeginAttempt()
	}

	identity, err := deps.ExchangeIdentity(ctx, accessToken)
	if err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.Exchange, func() map[string]string {
			return map[string]string{"hop": "userinfo"}
		})
		return RouteEntry, UserRecord{}, deps.Errors.Exchange
	}

	token, user, err := deps.ExchangeSession(ctx, identity)
	if err != nil {
		deps.MetricInc(deps.Metrics.Failure)
		deps.EmitAudit(ctx, deps.Events.Failure, false, "", deps.Errors.Exchange, func() map[string]string {
			return map[string]string{"hop": "session"}
		})
		return RouteEntry, UserRecord{}, deps.Errors.Exchange
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
