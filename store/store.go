// Package store provides the durable key/value session store shared by all
// tabs of an origin, plus change notification for out-of-tab writes.
//
// The contract mirrors browser localStorage semantics: values are plain
// strings, survive reloads, and mutation events delivered through Watch fire
// only for writes made by *other* store handles of the same origin — a
// handle never observes its own writes on the channel. Delivery is
// best-effort; a missed notification is recovered by the focus poll upstream.
package store

import "context"

// Persisted key names. The user value is a UTF-8 JSON-encoded profile.
const (
	KeyToken      = "token"
	KeyAdminToken = "adminToken"
	KeyUser       = "user"
)

// Snapshot is a point-in-time read of the three persisted session keys.
// An absent key reads as the empty string.
type Snapshot struct {
	Token      string
	AdminToken string
	User       string
}

// Change describes a mutation made by another handle of the same origin.
type Change struct {
	// Keys lists the persisted keys touched by the write group.
	Keys []string
	// Writer is the opaque ID of the handle that performed the write.
	Writer string
}

// Store is one tab's handle on the shared origin storage.
//
// Set and Remove are last-writer-wins; there is no transaction boundary
// spanning the three session keys. Remove of multiple keys is grouped
// best-effort, not atomic.
type Store interface {
	// Snapshot reads all three session keys at once.
	Snapshot(ctx context.Context) (Snapshot, error)
	// Set writes a single key.
	Set(ctx context.Context, key, value string) error
	// Remove deletes the given keys as one best-effort group.
	Remove(ctx context.Context, keys ...string) error
	// Watch returns a channel of mutations made by other handles. The
	// channel closes when ctx is canceled or the store is closed.
	Watch(ctx context.Context) (<-chan Change, error)
	// Close releases the handle and its watch resources.
	Close() error
}
