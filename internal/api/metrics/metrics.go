// Package metrics defines and registers all custom Prometheus metrics for the
// SyncSpace edge gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register with the default Prometheus registry at package load;
// the echoprometheus handler on /metrics exposes them alongside the per-route
// request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "syncspace"

// ── Auth surface ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts that reached the remote gateway.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "success" or "failure"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by outcome.",
	},
	[]string{"outcome"},
)

// LogoutsTotal counts logout requests. Local state is cleared on every one,
// so there is no outcome label.
var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of logout requests.",
	},
)

// ── Sessions & authorization ──────────────────────────────────────────────────

// SessionRestoresTotal counts session restorations per result.
// Label:
//   - result: "hit" (session restored), "miss" (no session), "pending" (store unreachable)
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of session restorations, labelled by result.",
	},
	[]string{"result"},
)

// AuthzDecisionsTotal counts route authorization decisions.
// Label:
//   - outcome: "pending", "unauthenticated", "forbidden", or "granted"
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of route authorization decisions, labelled by outcome.",
	},
	[]string{"outcome"},
)

// ── Remote gateway & side-channels ────────────────────────────────────────────

// GatewayRequestDuration measures how long a single backend call takes.
// Label:
//   - operation: "register", "login", "logout", or "forward"
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of HTTP calls against the backend API.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// UploadsTotal counts image uploads to the media host.
// Label:
//   - outcome: "success", "rejected" (validation), or "failure"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image uploads, labelled by outcome.",
	},
	[]string{"outcome"},
)

// ActivityQueueDepth tracks the number of entries waiting in each activity
// worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of entries pending in each activity worker channel.",
	},
	[]string{"worker_id"},
)
