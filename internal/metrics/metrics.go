// Package metrics declares the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maghmela_bookings_created_total",
			Help: "Bookings persisted, by booking type",
		},
		[]string{"type"},
	)

	BookingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maghmela_booking_transitions_total",
			Help: "Applied booking status transitions, by action and resulting status",
		},
		[]string{"action", "status"},
	)

	BookingAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "maghmela_booking_total_amount_rupees",
			Help:    "Total amount of created bookings in rupees",
			Buckets: prometheus.ExponentialBuckets(1000, 2, 10),
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maghmela_notifications_total",
			Help: "Notification deliveries, by channel and outcome",
		},
		[]string{"channel", "outcome"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maghmela_events_published_total",
			Help: "Events handed to the in-process bus, by topic and outcome",
		},
		[]string{"topic", "outcome"},
	)
)

// RelayBreakerState is 0 closed, 1 half-open, 2 open.
var RelayBreakerState = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "maghmela_form_relay_breaker_state",
		Help: "Circuit breaker state of the form relay notifier",
	},
)
