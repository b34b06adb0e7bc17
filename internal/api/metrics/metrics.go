// Package metrics defines and registers the custom Prometheus metrics of the
// shipping core. It is the single source of truth for metric names, labels,
// and help strings. Metrics are registered with the default registry on
// package initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shipping"

// ── Event metrics ─────────────────────────────────────────────────────────────

// EventsProcessedTotal counts lifecycle events appended successfully.
// Label:
//   - stage: the canonical stage carried by the event (e.g. "transit")
//
// The sender-reported source is free text and stays in the logs only.
var EventsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_processed_total",
		Help:      "Total number of lifecycle events successfully processed.",
	},
	[]string{"stage"},
)

// EventsErrorsTotal counts events that failed processing.
// Label:
//   - reason: "invalid_input", "unknown_stage", "shipment_not_found",
//     "stage_regression", "out_of_order", "delivered", "conflict", "internal"
var EventsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_errors_total",
		Help:      "Total number of lifecycle events that failed processing.",
	},
	[]string{"reason"},
)

// EventsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, processed)
var EventsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// EventsQueueDepth tracks the current number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// EventProcessingDuration measures how long a single event takes from dequeue
// to persistence. The outcome label is "ok" or "error".
var EventProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "event_processing_duration_seconds",
		Help:      "Duration of event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// EventsPublishedTotal counts stage notifications handed to the broker.
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of stage notifications published, by result.",
	},
	[]string{"result"},
)

// ── Shipment metrics ──────────────────────────────────────────────────────────

// ShipmentsBookedTotal counts newly registered shipments by service tier.
var ShipmentsBookedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_booked_total",
		Help:      "Total number of shipments booked, by service tier.",
	},
	[]string{"service_tier"},
)

// ShipmentsInView is refreshed by the registry stats job.
// Label:
//   - view: "active" or "history"
var ShipmentsInView = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "shipments_in_view",
		Help:      "Number of shipments currently in each registry view.",
	},
	[]string{"view"},
)

// ── Quote metrics ─────────────────────────────────────────────────────────────

// QuotesTotal counts quote requests.
// Labels:
//   - service_tier: requested tier, or "none" when absent
//   - result: "quoted", "unquoted", or "invalid"
var QuotesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_total",
		Help:      "Total number of quote requests, by tier and result.",
	},
	[]string{"service_tier", "result"},
)
