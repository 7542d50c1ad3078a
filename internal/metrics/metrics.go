package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematrix_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviematrix_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RatingRecomputes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematrix_rating_recomputes_total",
			Help: "Movie rating aggregate recomputations by outcome",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematrix_cache_requests_total",
			Help: "Redis read-through cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	WSClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematrix_ws_clients",
			Help: "Connected rating feed websocket clients",
		},
	)
)

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordRecompute(err error) {
	if err != nil {
		RatingRecomputes.WithLabelValues("error").Inc()
		return
	}
	RatingRecomputes.WithLabelValues("ok").Inc()
}

func RecordCache(result string) {
	CacheRequests.WithLabelValues(result).Inc()
}
