package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// TimelineQueries counts home timeline compositions by variant.
	TimelineQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_timeline_queries_total",
		Help: "Total number of home timeline compositions",
	}, []string{"variant"})

	// GraphMutations counts follow/unfollow/like/unlike operations by outcome.
	GraphMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "warbler_graph_mutations_total",
		Help: "Total number of social graph and affinity mutations",
	}, []string{"operation", "outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware registers the Prometheus middleware and exposes /metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
