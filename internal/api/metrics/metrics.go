// Package metrics defines and registers all custom Prometheus metrics for
// the license server. It is the single source of truth for metric names,
// labels, and help strings. Metrics self-register with the default registry
// via promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "license"

// LoginAttemptsTotal counts login endpoint invocations.
// Label:
//   - result: "success", "missing_fields", "invalid_credentials",
//     "license_expired", or "internal"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts login attempts refused by the sliding-window limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of login attempts rejected by the rate limiter.",
	},
)

// IPBlockedTotal counts requests denied by the IP access filter.
var IPBlockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ip_blocked_total",
		Help:      "Total number of requests denied because the origin IP is blocked.",
	},
)

// AuditPrunedTotal counts login attempt records removed by the retention sweep.
var AuditPrunedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_pruned_total",
		Help:      "Total number of audit records deleted past the retention window.",
	},
)

// LoginDuration measures the login handler end-to-end, including the audit write.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login processing from bind to response.",
		Buckets:   prometheus.DefBuckets,
	},
)
