package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/cycletracker/internal/services"
)

// Metrics owns a private registry so several apps can coexist in one process.
type Metrics struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	analysisTotal       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
		analysisTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cycle_analysis_computations_total",
				Help: "Total number of cycle analyses computed, by result status",
			},
			[]string{"status"},
		),
	}
}

// Middleware records request count and latency labeled by the matched route
// pattern, not the raw URL.
func (metrics *Metrics) Middleware(c *fiber.Ctx) error {
	started := time.Now()
	chainErr := c.Next()

	path := c.Route().Path
	status := c.Response().StatusCode()
	if chainErr != nil {
		status = fiber.StatusInternalServerError
		var fiberErr *fiber.Error
		if errors.As(chainErr, &fiberErr) {
			status = fiberErr.Code
		}
	}

	metrics.httpRequestsTotal.WithLabelValues(path, c.Method(), strconv.Itoa(status)).Inc()
	metrics.httpRequestDuration.WithLabelValues(path, c.Method()).Observe(time.Since(started).Seconds())
	return chainErr
}

func (metrics *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
}

func (metrics *Metrics) ObserveAnalysis(status services.AnalysisStatus) {
	metrics.analysisTotal.WithLabelValues(string(status)).Inc()
}
