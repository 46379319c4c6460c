// Package metrics defines and registers all custom Prometheus metrics for the
// template service. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at package
// load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "templates"

// RegistrationsTotal counts account registrations.
// Label:
//   - result: "created", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts. Failures are not broken down further —
// the uniform-failure contract applies to metrics consumers with dashboard
// access no less than to API clients.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectedTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "malformed_header", "invalid_token", "unknown_user"
var AuthRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejected_total",
		Help:      "Total number of requests rejected by the bearer token gate.",
	},
	[]string{"reason"},
)

// TemplateOpsTotal counts completed template operations.
// Label:
//   - op: "create", "list", "get", "update", "delete"
var TemplateOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "template_ops_total",
		Help:      "Total number of successful template operations, by operation.",
	},
	[]string{"op"},
)

// LoginDuration measures end-to-end login handling, dominated by bcrypt.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login handling including password verification.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)
