package flows

import "context"

// UserRecord is the flow-local user model returned by the backend
// authentication API. Absent boolean flags are false.
type UserRecord struct {
	ID         string
	Email      string
	Name       string
	PictureURL string

	IsAdmin      bool
	IsSuperuser  bool
	IsBanned     bool
	IsRestricted bool
}

// Route is the flow-local landing surface decision.
type Route uint8

const (
	RouteEntry Route = iota
	RouteDashboard
	RouteAdmin
	RouteRestricted
)

// SessionDeps is the shared persistence tail of every login-class flow
// (password, OAuth, registration).
type SessionDeps struct {
	// BeginAttempt captures the current session epoch before the network
	// call suspends the flow.
	BeginAttempt func() uint64
	// Superseded reports whether a logout advanced the epoch since
	// BeginAttempt. A superseded response must not be persisted.
	Superseded func(epoch uint64) bool
	// Persist writes token+user, plus adminToken when elevated is true.
	// It must write nothing at all when it returns an error.
	Persist func(ctx context.Context, token string, user UserRecord, elevated bool) error
	// Signal raises the same-tab auth-changed signal after a store write.
	Signal func()

	// ErrSuperseded is the host sentinel for a dropped late response.
	ErrSuperseded error
}

// finishSession runs the common tail of a successful authentication: the
// supersession check, the banned/restricted short-circuit, persistence, and
// the same-tab signal.
//
// The banned check runs before the elevation check and bypasses it
// entirely: a banned or restricted account still gets token+user persisted
// (so the support surface stays reachable) but never an adminToken, and the
// flow routes to the restricted surface even when the profile carries admin
// flags.
func finishSession(ctx context.Context, token string, user UserRecord, epoch uint64, deps SessionDeps) (Route, error) {
	if deps.Superseded != nil && deps.Superseded(epoch) {
		return RouteEntry, deps.ErrSuperseded
	}

	restricted := user.IsBanned || user.IsRestricted
	elevated := !restricted && (user.IsAdmin || user.IsSuperuser)

	if err := deps.Persist(ctx, token, user, elevated); err != nil {
		return RouteEntry, err
	}
	if deps.Signal != nil {
		deps.Signal()
	}

	switch {
	case restricted:
		return RouteRestricted, nil
	case elevated:
		return RouteAdmin, nil
	default:
		return RouteDashboard, nil
	}
}
