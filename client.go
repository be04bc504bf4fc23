package dashauth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	internalaudit "github.com/summit-enterprise/dashauth/internal/audit"
	"github.com/summit-enterprise/dashauth/internal/flows"
	internalmetrics "github.com/summit-enterprise/dashauth/internal/metrics"
	"github.com/summit-enterprise/dashauth/internal/notify"
	"github.com/summit-enterprise/dashauth/store"
)

// Client is one tab's session state machine. It owns a handle on the shared
// persisted store, re-resolves session state on every synchronization
// trigger, and republishes the result to subscribers.
//
// Client methods are safe for concurrent use after [Builder.Build]. Each
// browser-tab equivalent gets its own Client over its own store handle; all
// clients of one origin converge eventually, never transactionally.
type Client struct {
	config Config
	store  store.Store
	flows  flows.Service
	bus    *notify.Bus[State]

	metrics *internalmetrics.Metrics
	audit   *internalaudit.Dispatcher

	epoch epochCounter

	watchCancel context.CancelFunc
	wg          sync.WaitGroup
	closed      atomic.Bool
}

// run pumps out-of-tab storage mutations into the synchronizer. It is the
// only goroutine the client owns.
func (c *Client) run(watch <-chan store.Change) {
	defer c.wg.Done()
	for range watch {
		c.publish(context.Background(), notify.TriggerStorage)
	}
}

// State reads the store and resolves the current session state.
func (c *Client) State(ctx context.Context) (State, error) {
	if c.closed.Load() {
		return State{}, ErrClientClosed
	}
	snap, err := c.store.Snapshot(ctx)
	if err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return c.resolve(snap), nil
}

// Subscribe registers a UI subscriber. The returned channel receives the
// freshly resolved State on every synchronization trigger — storage events
// from other tabs, the same-tab auth-changed signal, and focus polls. The
// cancel func detaches the subscriber and closes the channel.
func (c *Client) Subscribe() (<-chan State, func()) {
	return c.bus.Subscribe(c.config.Session.SubscriberBuffer)
}

// Focus is the defensive poll trigger: call it when the tab regains window
// focus so a missed storage notification cannot leave the UI stale.
func (c *Client) Focus(ctx context.Context) {
	if c.closed.Load() {
		return
	}
	c.publish(ctx, notify.TriggerFocus)
}

// Login runs the password login flow. On success the session is persisted
// and the result carries the landing surface decision: restricted accounts
// route to the support surface before the elevation check is ever made.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	route, user, err := c.flows.PasswordLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return c.loginResult(route, user), nil
}

// LoginWithGoogle runs the OAuth login flow: provider userinfo exchange,
// then backend session exchange. Failure at either hop surfaces as the one
// generic [ErrOAuthExchangeFailed] and persists nothing.
func (c *Client) LoginWithGoogle(ctx context.Context, accessToken string) (*LoginResult, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	route, user, err := c.flows.OAuthLogin(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return c.loginResult(route, user), nil
}

// Register runs the registration flow and, on success, persists the fresh
// session exactly like a login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	route, user, err := c.flows.Signup(ctx, flows.SignupRequest{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return nil, err
	}
	return c.loginResult(route, user), nil
}

// RequestPasswordReset fires a reset request. It never touches the
// persisted session store.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.flows.PasswordResetRequest(ctx, email)
}

// Logout clears the persisted session unconditionally and routes to the
// entry surface. It does not check which flow created the session, and it
// invalidates any in-flight login attempt first, so a late response cannot
// resurrect the cleared session in this tab.
func (c *Client) Logout(ctx context.Context) (Route, error) {
	if c.closed.Load() {
		return RouteEntry, ErrClientClosed
	}
	route, err := c.flows.Logout(ctx)
	return publicRoute(route), err
}

// RoutePath maps a landing surface to its configured UI path.
func (c *Client) RoutePath(r Route) string {
	switch r {
	case RouteDashboard:
		return c.config.Routes.Dashboard
	case RouteAdmin:
		return c.config.Routes.Admin
	case RouteRestricted:
		return c.config.Routes.Restricted
	default:
		return c.config.Routes.Entry
	}
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events dropped under dispatcher backpressure.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close stops the watch loop, detaches subscribers, flushes the audit
// dispatcher, and releases the store handle. Idempotent.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.watchCancel()
	err := c.store.Close()
	c.wg.Wait()
	c.bus.Close()
	c.audit.Close()
	return err
}

// publish re-runs the resolver and republishes to every subscriber. It is
// invoked by all three trigger sources and publishes unconditionally — the
// UI contract is one re-render per publication, not per distinct state.
func (c *Client) publish(ctx context.Context, trigger notify.Trigger) {
	switch trigger {
	case notify.TriggerLocal:
		c.metrics.Inc(internalmetrics.MetricLocalTrigger)
	case notify.TriggerFocus:
		c.metrics.Inc(internalmetrics.MetricFocusTrigger)
	default:
		c.metrics.Inc(internalmetrics.MetricStorageTrigger)
	}

	snap, err := c.store.Snapshot(ctx)
	if err != nil {
		c.emitAudit(ctx, EventSessionRefresh, false, "", err, func() map[string]string {
			return map[string]string{"trigger": trigger.String()}
		})
		return
	}

	state := c.resolve(snap)
	c.bus.Publish(state)
	c.metrics.Inc(internalmetrics.MetricStatePublished)
}

// resolve wraps the pure resolver with decode-failure accounting.
func (c *Client) resolve(snap store.Snapshot) State {
	state := Resolve(snap)
	if snap.User != "" && state.Profile == nil {
		c.metrics.Inc(internalmetrics.MetricProfileDecodeFailure)
	}
	return state
}

// persistSession writes the session group for a successful login-class
// flow. The user snapshot goes first so an adminToken can never exist
// without a justifying profile; a stale adminToken from a previous elevated
// session is cleared on non-elevated login. On mid-group failure the keys
// written so far are removed best-effort.
func (c *Client) persistSession(ctx context.Context, token string, user flows.UserRecord, elevated bool) error {
	profile := profileFromRecord(user)
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	rollback := func() {
		_ = c.store.Remove(ctx, store.KeyToken, store.KeyAdminToken, store.KeyUser)
	}

	if err := c.store.Set(ctx, store.KeyUser, string(data)); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if err := c.store.Set(ctx, store.KeyToken, token); err != nil {
		rollback()
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// Unified-session policy: elevation reuses the same credential under a
	// second key; there is no separate admin credential namespace.
	if elevated {
		if err := c.store.Set(ctx, store.KeyAdminToken, token); err != nil {
			rollback()
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	} else {
		if err := c.store.Remove(ctx, store.KeyAdminToken); err != nil {
			rollback()
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return nil
}

// clearSession removes the three persisted keys as one best-effort group.
func (c *Client) clearSession(ctx context.Context) error {
	if err := c.store.Remove(ctx, store.KeyToken, store.KeyAdminToken, store.KeyUser); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (c *Client) loginResult(route flows.Route, user flows.UserRecord) *LoginResult {
	profile := profileFromRecord(user)
	state := State{
		Authenticated: true,
		Profile:       &profile,
		Banned:        profile.IsBanned,
		Restricted:    profile.IsRestricted,
	}
	switch {
	case profile.IsSuperuser:
		state.Role = RoleSuperuser
	case profile.IsAdmin:
		state.Role = RoleAdmin
	default:
		state.Role = RoleUser
	}
	return &LoginResult{State: state, Route: publicRoute(route)}
}

func (c *Client) emitAudit(ctx context.Context, event string, success bool, userID string, err error, meta func() map[string]string) {
	if c.audit == nil {
		return
	}
	e := internalaudit.Event{
		Timestamp: time.Now(),
		EventType: event,
		Origin:    c.config.Session.Origin,
		TabID:     tabIDFromContext(ctx),
		UserID:    userID,
		Success:   success,
	}
	if err != nil {
		e.Error = err.Error()
	}
	if meta != nil {
		e.Metadata = meta()
	}
	c.audit.Emit(ctx, e)
}

func profileFromRecord(user flows.UserRecord) Profile {
	return Profile{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PictureURL:   user.PictureURL,
		IsAdmin:      user.IsAdmin,
		IsSuperuser:  user.IsSuperuser,
		IsBanned:     user.IsBanned,
		IsRestricted: user.IsRestricted,
	}
}

func recordFromProfile(p Profile) flows.UserRecord {
	return flows.UserRecord{
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		PictureURL:   p.PictureURL,
		IsAdmin:      p.IsAdmin,
		IsSuperuser:  p.IsSuperuser,
		IsBanned:     p.IsBanned,
		IsRestricted: p.IsRestricted,
	}
}

func publicRoute(r flows.Route) Route {
	switch r {
	case flows.RouteDashboard:
		return RouteDashboard
	case flows.RouteAdmin:
		return RouteAdmin
	case flows.RouteRestricted:
		return RouteRestricted
	default:
		return RouteEntry
	}
}

// flowDeps wires the flow dependency sets once at build time.
func (c *Client) flowDeps(api AuthAPI, provider IdentityProvider) flows.Deps {
	session := flows.SessionDeps{
		BeginAttempt:  func() uint64 { return c.epoch.current() },
		Superseded:    func(epoch uint64) bool { return c.epoch.current() != epoch },
		Persist:       c.persistSession,
		Signal:        func() { c.publish(context.Background(), notify.TriggerLocal) },
		ErrSuperseded: ErrLoginSuperseded,
	}

	deps := flows.Deps{
		Login: flows.LoginDeps{
			Authenticate: func(ctx context.Context, email, password string) (string, flows.UserRecord, error) {
				token, profile, err := api.Login(ctx, email, password)
				if err != nil {
					return "", flows.UserRecord{}, err
				}
				return token, recordFromProfile(profile), nil
			},
			Session:   session,
			MetricInc: c.metricInc,
			EmitAudit: c.emitAudit,
			Metrics: flows.LoginMetrics{
				Success:    int(internalmetrics.MetricLoginSuccess),
				Failure:    int(internalmetrics.MetricLoginFailure),
				Superseded: int(internalmetrics.MetricLoginSuperseded),
			},
			Events: flows.LoginEvents{
				Success: EventLoginSuccess,
				Failure: EventLoginFailure,
			},
			Errors: flows.LoginErrors{
				NotReady:   ErrClientNotReady,
				Superseded: ErrLoginSuperseded,
			},
		},
		Reset: flows.ResetDeps{
			Request:   api.ForgotPassword,
			MetricInc: c.metricInc,
			EmitAudit: c.emitAudit,
			Metrics:   flows.ResetMetrics{Request: int(internalmetrics.MetricPasswordResetRequest)},
			Events:    flows.ResetEvents{Request: EventPasswordResetRequest},
			Errors:    flows.ResetErrors{NotReady: ErrClientNotReady},
		},
		Logout: flows.LogoutDeps{
			Advance:   c.epoch.advance,
			Clear:     c.clearSession,
			Signal:    session.Signal,
			MetricInc: c.metricInc,
			EmitAudit: c.emitAudit,
			Metrics:   flows.LogoutMetrics{Logout: int(internalmetrics.MetricLogout)},
			Events:    flows.LogoutEvents{Logout: EventLogout},
			Errors:    flows.LogoutErrors{NotReady: ErrClientNotReady},
		},
		Signup: flows.SignupDeps{
			CreateAccount: func(ctx context.Context, req flows.SignupRequest) (string, flows.UserRecord, error) {
				token, profile, err := api.Register(ctx, RegisterRequest{
					Email:    req.Email,
					Password: req.Password,
					Name:     req.Name,
				})
				if err != nil {
					return "", flows.UserRecord{}, err
				}
				return token, recordFromProfile(profile), nil
			},
			Session:   session,
			MetricInc: c.metricInc,
			EmitAudit: c.emitAudit,
			Metrics: flows.SignupMetrics{
				Success:    int(internalmetrics.MetricRegisterSuccess),
				Failure:    int(internalmetrics.MetricRegisterFailure),
				Superseded: int(internalmetrics.MetricLoginSuperseded),
			},
			Events: flows.SignupEvents{
				Success: EventRegisterSuccess,
				Failure: EventRegisterFailure,
			},
			Errors: flows.SignupErrors{
				NotReady:   ErrClientNotReady,
				Superseded: ErrLoginSuperseded,
			},
		},
	}

	// The sentinels are wired even without a provider so an unwired OAuth
	// login fails with NotReady instead of a zero-value success.
	deps.OAuth = flows.OAuthDeps{
		Errors: flows.OAuthErrors{
			NotReady:   ErrClientNotReady,
			Exchange:   ErrOAuthExchangeFailed,
			Superseded: ErrLoginSuperseded,
		},
	}

	if provider != nil {
		deps.OAuth = flows.OAuthDeps{
			ExchangeIdentity: func(ctx context.Context, accessToken string) (flows.OAuthIdentity, error) {
				identity, err := provider.Userinfo(ctx, accessToken)
				if err != nil {
					return flows.OAuthIdentity{}, err
				}
				return flows.OAuthIdentity{
					Sub:     identity.Sub,
					Email:   identity.Email,
					Name:    identity.Name,
					Picture: identity.Picture,
				}, nil
			},
			ExchangeSession: func(ctx context.Context, identity flows.OAuthIdentity) (string, flows.UserRecord, error) {
				token, profile, err := api.GoogleLogin(ctx, GoogleIdentity{
					Sub:     identity.Sub,
					Email:   identity.Email,
					Name:    identity.Name,
					Picture: identity.Picture,
				})
				if err != nil {
					return "", flows.UserRecord{}, err
				}
				return token, recordFromProfile(profile), nil
			},
			Session:   session,
			MetricInc: c.metricInc,
			EmitAudit: c.emitAudit,
			Metrics: flows.OAuthMetrics{
				Success:    int(internalmetrics.MetricOAuthLoginSuccess),
				Failure:    int(internalmetrics.MetricOAuthLoginFailure),
				Superseded: int(internalmetrics.MetricLoginSuperseded),
			},
			Events: flows.OAuthEvents{
				Success: EventOAuthLoginSuccess,
				Failure: EventOAuthLoginFailure,
			},
			Errors: flows.OAuthErrors{
				NotReady:   ErrClientNotReady,
				Exchange:   ErrOAuthExchangeFailed,
				Superseded: ErrLoginSuperseded,
			},
		}
	}

	return deps
}

func (c *Client) metricInc(id int) {
	c.metrics.Inc(internalmetrics.MetricID(id))
}
