package dashauth

import (
	"context"
	"errors"
	"sync/atomic"

	internalaudit "github.com/summit-enterprise/dashauth/internal/audit"
	"github.com/summit-enterprise/dashauth/internal/flows"
	internalmetrics "github.com/summit-enterprise/dashauth/internal/metrics"
	"github.com/summit-enterprise/dashauth/internal/notify"
	"github.com/summit-enterprise/dashauth/store"
)

// Builder wires a [Client] once. Configure, then Build; a Builder must not
// be reused.
type Builder struct {
	config Config
	store  store.Store

	api      AuthAPI
	provider IdentityProvider

	auditSink AuditSink

	built bool
}

// New returns a Builder carrying the default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the persisted session store handle. One handle per tab.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.store = s
	return b
}

// WithAuthAPI sets the backend authentication API.
func (b *Builder) WithAuthAPI(api AuthAPI) *Builder {
	b.api = api
	return b
}

// WithIdentityProvider sets the OAuth userinfo exchanger. When omitted and
// the AuthAPI implementation also implements [IdentityProvider] (as
// httpapi.Client does), it is used for both.
func (b *Builder) WithIdentityProvider(p IdentityProvider) *Builder {
	b.provider = p
	return b
}

// WithAuditSink sets the audit event sink.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles in-process metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the wiring and returns a running [Client]. The client's
// storage watch loop starts immediately.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.store == nil {
		return nil, errors.New("session store required")
	}
	if b.api == nil {
		return nil, errors.New("auth api required")
	}

	provider := b.provider
	if provider == nil {
		if p, ok := b.api.(IdentityProvider); ok {
			provider = p
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Client{
		config:      cfg,
		store:       b.store,
		bus:         notify.NewBus[State](),
		metrics:     internalmetrics.New(internalmetrics.Config{Enabled: cfg.Metrics.Enabled}),
		watchCancel: cancel,
	}
	c.audit = internalaudit.NewDispatcher(internalaudit.Config{
		Enabled:    cfg.Audit.Enabled,
		BufferSize: cfg.Audit.BufferSize,
		DropIfFull: cfg.Audit.DropIfFull,
	}, b.auditSink)

	c.flows = flows.New(c.flowDeps(b.api, provider))

	watch, err := b.store.Watch(ctx)
	if err != nil {
		cancel()
		c.audit.Close()
		return nil, err
	}

	c.wg.Add(1)
	go c.run(watch)

	b.built = true
	return c, nil
}

// epochCounter is the supersession clock shared by login-class flows and
// logout. It only ever advances.
type epochCounter struct {
	v atomic.Uint64
}

func (e *epochCounter) current() uint64 { return e.v.Load() }
func (e *epochCounter) advance()        { e.v.Add(1) }
