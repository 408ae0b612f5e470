// Package metrics holds the process-wide Prometheus collectors. They are
// registered with the default registry on first import and exposed on
// /metrics by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished requests by method, chi route pattern and
	// status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPDuration records request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// CacheHits and CacheMisses count read-through lookups per namespace.
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_hits_total",
		Help: "Cache lookups answered from the cache",
	}, []string{"namespace"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_misses_total",
		Help: "Cache lookups that fell through to the store",
	}, []string{"namespace"})

	// CacheEvictions counts namespace invalidations triggered by writes.
	CacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_cache_evictions_total",
		Help: "Namespace invalidations triggered by writes",
	}, []string{"namespace"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// Registrations counts registration attempts by outcome
	// ("success", "validation_error", "keycloak_error", "server_error").
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_registrations_total",
		Help: "User registration attempts by outcome",
	}, []string{"outcome"})
)
