// Package dashauth implements the client-side authentication and session
// state machine of a multi-tab dashboard front-end: who is logged in, which
// privilege tier they hold, whether the account is banned or restricted,
// and how that state stays consistent across tabs and reloads.
//
// There is no central in-memory store. The only shared substrate is a
// durable key/value store holding three keys — token, adminToken, and a
// serialized user profile — plus ambient change notifications. Each tab
// runs one [Client] over its own store handle; a pure resolver maps store
// snapshots to [State], and a synchronizer re-resolves and republishes on
// three triggers: storage mutations observed from other tabs, the same-tab
// auth-changed signal, and window-focus polls. Consistency is eventual;
// nothing blocks on propagation.
//
// # Architecture boundaries
//
// dashauth is the public surface. It exposes [Client], [Builder], [Config],
// [Resolve], and value types (State, Profile, Route, TokenInfo). Flow
// orchestration, the notification bus, audit dispatch, and metric storage
// live under internal/ and are never exported. Storage backends live in
// store/; the REST boundary client lives in httpapi/.
//
// # What this package must NOT do
//
//   - Treat the cached role as a security boundary: role, banned, and
//     restricted are advisory for routing and rendering. Every privileged
//     action must be re-authorized server-side.
//   - Retry failed auth calls. Each flow submits once; the user resubmits.
//   - Guarantee cross-tab ordering. Tabs converge within the latency of
//     the three synchronization triggers.
package dashauth
