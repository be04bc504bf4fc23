// Package audit provides the internal audit event model, sink
// implementations, and the asynchronous dispatcher used by the root client.
//
// The dispatcher decouples flow execution from sink latency: Emit never
// blocks the caller beyond channel admission, and dropped events are
// counted rather than silently lost.
package audit
