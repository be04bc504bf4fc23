package dashauth

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig scopes the persisted store keys.
type SessionConfig struct {
	// RedisPrefix namespaces store keys when the Redis backend is used.
	RedisPrefix string
	// Origin scopes the store the way a browser origin scopes
	// localStorage: every tab of one origin shares one key space.
	Origin string
	// SubscriberBuffer is the channel capacity handed to each Subscribe
	// call. A subscriber that falls this far behind misses publications.
	SubscriberBuffer int
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig maps landing surfaces to UI paths. The library never
// navigates; callers read the resolved path from [Client.RoutePath].
type RouteConfig struct {
	Entry      string
	Dashboard  string
	Admin      string
	Restricted string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls in-process metric collection.
type MetricsConfig struct {
	Enabled bool
}

// Config is the root configuration consumed by [Builder.Build]. Zero value
// sections fall back to defaults; Validate rejects inconsistent input.
type Config struct {
	Session SessionConfig
	Routes  RouteConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

func defaultConfig() Config {
	return Config{
		Session: SessionConfig{
			RedisPrefix:      "da",
			Origin:           "0",
			SubscriberBuffer: 8,
		},
		Routes: RouteConfig{
			Entry:      "/",
			Dashboard:  "/dashboard",
			Admin:      "/admin",
			Restricted: "/restricted",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

// Validate fills defaulted fields and rejects inconsistent configuration.
func (c *Config) Validate() error {
	if c.Session.Origin == "" {
		c.Session.Origin = "0"
	}
	if c.Session.SubscriberBuffer <= 0 {
		c.Session.SubscriberBuffer = 8
	}
	if c.Routes.Entry == "" {
		c.Routes.Entry = "/"
	}
	if c.Routes.Dashboard == "" {
		c.Routes.Dashboard = "/dashboard"
	}
	if c.Routes.Admin == "" {
		c.Routes.Admin = "/admin"
	}
	if c.Routes.Restricted == "" {
		c.Routes.Restricted = "/restricted"
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		c.Audit.BufferSize = 256
	}
	return nil
}
