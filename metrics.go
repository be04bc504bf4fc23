package dashauth

import (
	internalmetrics "github.com/summit-enterprise/dashauth/internal/metrics"
)

// MetricID identifies a specific counter in the in-process metrics system.
type MetricID = internalmetrics.MetricID

const (
	MetricLoginSuccess         = internalmetrics.MetricLoginSuccess
	MetricLoginFailure         = internalmetrics.MetricLoginFailure
	MetricOAuthLoginSuccess    = internalmetrics.MetricOAuthLoginSuccess
	MetricOAuthLoginFailure    = internalmetrics.MetricOAuthLoginFailure
	MetricRegisterSuccess      = internalmetrics.MetricRegisterSuccess
	MetricRegisterFailure      = internalmetrics.MetricRegisterFailure
	MetricPasswordResetRequest = internalmetrics.MetricPasswordResetRequest
	MetricLogout               = internalmetrics.MetricLogout
	MetricLoginSuperseded      = internalmetrics.MetricLoginSuperseded
	MetricStatePublished       = internalmetrics.MetricStatePublished
	MetricStorageTrigger       = internalmetrics.MetricStorageTrigger
	MetricLocalTrigger         = internalmetrics.MetricLocalTrigger
	MetricFocusTrigger         = internalmetrics.MetricFocusTrigger
	MetricProfileDecodeFailure = internalmetrics.MetricProfileDecodeFailure
)

// Metrics holds the client's atomic counters.
type Metrics = internalmetrics.Metrics

// MetricsSnapshot is a point-in-time deep copy of all counters.
type MetricsSnapshot = internalmetrics.Snapshot

// NewMetrics creates a [Metrics] instance configured by the given
// [MetricsConfig]. When Enabled is false, all operations are no-ops.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return internalmetrics.New(internalmetrics.Config{Enabled: cfg.Enabled})
}
