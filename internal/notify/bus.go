// Package notify implements the change-notification bus that keeps a tab's
// rendered session state converging on the persisted store.
//
// Three independent trigger sources funnel into one handler: storage
// mutations observed from other tabs, the same-tab signal raised by the flow
// controller right after it writes the store, and window-focus regain as a
// defensive poll for missed notifications. Unifying them behind one bus lets
// tests simulate all three without duck-typing event sources.
package notify

import "sync"

// Trigger identifies which source caused a reconciliation.
type Trigger uint8

const (
	// TriggerStorage is a mutation observed from another execution context.
	// Same-tab writes never arrive on this channel.
	TriggerStorage Trigger = iota
	// TriggerLocal is the same-tab signal raised after a local store write,
	// so the originating tab updates without any round trip.
	TriggerLocal
	// TriggerFocus is the focus-regain poll. It covers notification loss,
	// e.g. a listener attached after the mutation already happened.
	TriggerFocus
)

// String returns the trigger source name.
func (t Trigger) String() string {
	switch t {
	case TriggerLocal:
		return "local"
	case TriggerFocus:
		return "focus"
	default:
		return "storage"
	}
}

// Bus fans a published value out to every subscriber. Publication never
// blocks: a subscriber whose buffer is full misses that publication and
// catches up on the next one. No ordering is guaranteed across publishers.
type Bus[T any] struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan T
	closed bool
}

// NewBus creates an empty bus.
func NewBus[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[int]chan T)}
}

// Subscribe registers a new subscriber with the given buffer capacity and
// returns its channel plus a cancel func. Cancel is idempotent.
func (b *Bus[T]) Subscribe(buffer int) (<-chan T, func()) {
	if buffer <= 0 {
		buffer = 1
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan T)
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	ch := make(chan T, buffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers v to every subscriber, dropping for full buffers.
func (b *Bus[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

// Close closes every subscriber channel and rejects further publishes.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Len reports the current subscriber count.
func (b *Bus[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
