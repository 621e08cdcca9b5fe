package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "car_rental_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "car_rental_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	NotificationsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "car_rental_notifications_written_total",
			Help: "Total number of notification rows written",
		},
		[]string{"type"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "car_rental_notifications_failed_total",
			Help: "Total number of notification rows that could not be written",
		},
		[]string{"type"},
	)

	CarCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "car_rental_car_cache_lookups_total",
			Help: "Car cache lookups by result",
		},
		[]string{"result"},
	)
)
