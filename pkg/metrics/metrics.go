package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_desk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_desk_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	OrdersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_desk_orders_created_total",
			Help: "Orders committed successfully",
		},
	)

	// OrderFailures is labelled by error kind
	OrderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_desk_order_failures_total",
			Help: "Order creations rejected or failed",
		},
		[]string{"kind"},
	)

	StatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_desk_order_status_changes_total",
			Help: "Order status transitions by target status",
		},
		[]string{"status"},
	)

	EntityWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_desk_entity_writes_total",
			Help: "Create/update/delete operations per entity",
		},
		[]string{"entity", "operation"},
	)
)

// Middleware records request count and latency per route
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}

		HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
