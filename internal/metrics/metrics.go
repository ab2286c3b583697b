package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PhotoCreatesTotal counts photo create attempts by variant (multipart, json) and result.
	PhotoCreatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_creates_total",
			Help: "Photo create attempts by variant and result.",
		},
		[]string{"variant", "result"},
	)

	PhotoCompensationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "photo_compensations_total",
			Help: "Blob deletes issued after a failed photo insert, by outcome.",
		},
		[]string{"outcome"},
	)

	GeocodeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_cache_total",
			Help: "Reverse geocoding cache lookups by result.",
		},
		[]string{"result"},
	)
)
