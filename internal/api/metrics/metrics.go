// Package metrics defines and registers all custom Prometheus metrics for
// the analysis gate. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authgate"

// LoginsTotal counts authentication attempts.
// Labels:
//   - method: "password" (named account) or "guest" (shared token)
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of authentication attempts, by method and result.",
	},
	[]string{"method", "result"},
)

// GuestExpiriesTotal counts guest sessions terminated because their 24-hour
// window elapsed.
var GuestExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guest_expiries_total",
		Help:      "Total number of guest sessions terminated by TTL elapse.",
	},
)

// AccessRecordsTotal counts audit records handed to the configured sink.
// Label:
//   - result: "recorded", "failed", or "dropped" (async queue full)
var AccessRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_records_total",
		Help:      "Total number of access records by delivery result.",
	},
	[]string{"result"},
)

// RoleDenialsTotal counts authorization failures on protected operations.
// Label:
//   - required: the minimum role the operation demanded
var RoleDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_denials_total",
		Help:      "Total number of requests denied for insufficient role.",
	},
	[]string{"required"},
)
