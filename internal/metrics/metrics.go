// Package metrics defines the Prometheus metrics of the hotel API.  All
// metrics are registered with the default registry on package init and
// exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hotel"

// AdmissionsTotal counts reservation admission attempts.
// Label:
//   - outcome: "created", or the rejection reason (e.g. "conflict_room", "past_entry")
var AdmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_admissions_total",
		Help:      "Reservation admission attempts by outcome.",
	},
	[]string{"outcome"},
)

// TransitionsTotal counts reservation state changes.
// Label:
//   - to: the status reached ("pagada", "cancelada")
var TransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservation_transitions_total",
		Help:      "Reservation state transitions by target status.",
	},
	[]string{"to"},
)

// PaymentsTotal counts recorded payments.
var PaymentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded.",
	},
)

// EventsPublishFailures counts reservation events that could not be published.
var EventsPublishFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_publish_failures_total",
		Help:      "Reservation events that failed to publish.",
	},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method, route (the registered path, e.g. "/reservas/:id/:action"), code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)
