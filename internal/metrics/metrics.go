package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyspots_http_requests_total",
		Help: "Total HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studyspots_http_request_duration_ms",
		Help:    "Request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyspots_cache_hits_total",
		Help: "Spot list cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyspots_cache_misses_total",
		Help: "Spot list cache misses",
	})
	ReviewsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyspots_reviews_created_total",
		Help: "Reviews accepted",
	})
	ReviewsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyspots_reviews_rejected_total",
		Help: "Review submissions rejected by reason",
	}, []string{"reason"})
	RateLimitedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "studyspots_rate_limited_total",
		Help: "Requests refused by the rate limiter",
	})
	IntentTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "studyspots_search_intent_total",
		Help: "Classified free-text searches by derived category",
	}, []string{"category"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(ReviewsCreatedTotal)
	prometheus.MustRegister(ReviewsRejectedTotal)
	prometheus.MustRegister(RateLimitedTotal)
	prometheus.MustRegister(IntentTotal)
}

// Handler exposes the registered collectors for scraping at /metrics
func Handler() http.Handler { return promhttp.Handler() }
