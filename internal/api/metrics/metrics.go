// Package metrics defines and registers all custom Prometheus metrics for the
// back office. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// MutationsTotal counts mutating operations that reached the service layer.
// Labels:
//   - action: the capability-matrix action name (e.g. "create_line")
//   - outcome: "ok" or "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of mutating operations, by action and outcome.",
	},
	[]string{"action", "outcome"},
)

// AuthzDenialsTotal counts authorization gateway denials.
// Label:
//   - reason: "insufficient_role", "self_action_forbidden", or "project_closed"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of authorization denials, by reason.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// StateCacheLookupsTotal counts project-state cache lookups on the ledger
// write path.
// Label:
//   - result: "hit" or "miss"
var StateCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "state_cache_lookups_total",
		Help:      "Total number of project-state cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
