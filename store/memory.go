package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Origin is an in-process origin hub: one shared value map plus a fanout of
// attached handles. It backs [Memory] stores for embedding and for
// simulating multiple tabs in tests without Redis.
type Origin struct {
	mu       sync.RWMutex
	values   map[string]string
	watchers map[string]chan Change
}

// NewOrigin creates an empty origin hub.
func NewOrigin() *Origin {
	return &Origin{
		values:   make(map[string]string),
		watchers: make(map[string]chan Change),
	}
}

// Attach creates a new handle on the origin. Each handle models one tab.
func (o *Origin) Attach() *Memory {
	return &Memory{origin: o, writer: uuid.NewString()}
}

func (o *Origin) snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return Snapshot{
		Token:      o.values[KeyToken],
		AdminToken: o.values[KeyAdminToken],
		User:       o.values[KeyUser],
	}
}

func (o *Origin) set(writer, key, value string) {
	o.mu.Lock()
	o.values[key] = value
	o.mu.Unlock()
	o.notify(writer, []string{key})
}

func (o *Origin) remove(writer string, keys []string) {
	o.mu.Lock()
	for _, k := range keys {
		delete(o.values, k)
	}
	o.mu.Unlock()
	o.notify(writer, keys)
}

// notify fans a change out to every handle except the writer. Sends are
// non-blocking: a full watcher buffer drops the notification, matching the
// lossy delivery contract of [Store.Watch].
func (o *Origin) notify(writer string, keys []string) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for id, ch := range o.watchers {
		if id == writer {
			continue
		}
		select {
		case ch <- Change{Keys: keys, Writer: writer}:
		default:
		}
	}
}

func (o *Origin) watch(writer string) chan Change {
	o.mu.Lock()
	defer o.mu.Unlock()
	ch := make(chan Change, watchBuffer)
	o.watchers[writer] = ch
	return ch
}

func (o *Origin) unwatch(writer string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ch, ok := o.watchers[writer]; ok {
		delete(o.watchers, writer)
		close(ch)
	}
}

// Memory is an in-process [Store] handle attached to a shared [Origin].
type Memory struct {
	origin *Origin
	writer string

	mu      sync.Mutex
	watched bool
}

// WriterID returns the handle's writer ID.
func (m *Memory) WriterID() string {
	return m.writer
}

// Snapshot reads the three session keys.
func (m *Memory) Snapshot(context.Context) (Snapshot, error) {
	return m.origin.snapshot(), nil
}

// Set writes one key and notifies the other handles.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.origin.set(m.writer, key, value)
	return nil
}

// Remove deletes the given keys as one group and notifies once.
func (m *Memory) Remove(_ context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	m.origin.remove(m.writer, keys)
	return nil
}

// Watch returns a channel of writes made by other handles of the origin.
func (m *Memory) Watch(ctx context.Context) (<-chan Change, error) {
	m.mu.Lock()
	m.watched = true
	m.mu.Unlock()

	ch := m.origin.watch(m.writer)
	if ctx.Done() != nil {
		go func() {
			<-ctx.Done()
			m.origin.unwatch(m.writer)
		}()
	}
	return ch, nil
}

// Close detaches the handle from the origin's fanout.
func (m *Memory) Close() error {
	m.mu.Lock()
	watched := m.watched
	m.watched = false
	m.mu.Unlock()
	if watched {
		m.origin.unwatch(m.writer)
	}
	return nil
}
