// Package metrics defines and registers all custom Prometheus metrics for
// the customer account service. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// OperationsTotal counts resolved GraphQL operations.
// Labels:
//   - operation: the resolver name (e.g. "login", "customers")
//   - outcome: "ok" or "error"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_operations_total",
		Help:      "Total number of GraphQL operations resolved, by outcome.",
	},
	[]string{"operation", "outcome"},
)

// OperationDuration measures end-to-end resolver latency.
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_operation_duration_seconds",
		Help:      "Duration of GraphQL operation resolution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// SignupsTotal counts signup attempts.
// Label:
//   - outcome: "success", "rejected" (policy failure) or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ActivationsTotal counts account activation attempts.
var ActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activations_total",
		Help:      "Total number of account activation attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts.
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by outcome.",
	},
	[]string{"outcome"},
)
