package dashauth

import "context"

type tabIDContextKey struct{}

// WithTabID attaches a tab identifier to ctx. It appears in audit events
// so multi-tab traces can be told apart; it has no effect on session state.
func WithTabID(ctx context.Context, tabID string) context.Context {
	return context.WithValue(ctx, tabIDContextKey{}, tabID)
}

func tabIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	tabID, _ := ctx.Value(tabIDContextKey{}).(string)
	return tabID
}
