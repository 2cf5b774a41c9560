package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/wellnest/internal/services"
)

const namespace = "wellnest"

// Metrics owns a private registry so tests can build independent instances.
// All recording methods are safe on a nil receiver.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	statsCacheLookups *prometheus.CounterVec
	changeEvents      *prometheus.CounterVec
	sentimentCalls    *prometheus.CounterVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	metrics := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		statsCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stats_cache_lookups_total",
			Help:      "Cycle statistics cache lookups by result.",
		}, []string{"result"}),
		changeEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_events_total",
			Help:      "Published record change events by kind.",
		}, []string{"kind"}),
		sentimentCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sentiment_requests_total",
			Help:      "Sentiment upstream calls by outcome.",
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		metrics.httpRequests,
		metrics.httpDuration,
		metrics.statsCacheLookups,
		metrics.changeEvents,
		metrics.sentimentCalls,
	)
	return metrics
}

func (metrics *Metrics) Registry() *prometheus.Registry {
	return metrics.registry
}

// Middleware records one request count and latency sample per request,
// labelled by the matched route pattern rather than the raw path.
func (metrics *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if metrics == nil {
			return c.Next()
		}
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fiberErr, ok := err.(*fiber.Error); ok {
			status = fiberErr.Code
		}
		route := c.Route().Path
		method := c.Method()
		metrics.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		metrics.httpDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
		return err
	}
}

func (metrics *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(metrics.registry, promhttp.HandlerOpts{}))
}

func (metrics *Metrics) RecordCacheLookup(hit bool) {
	if metrics == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.statsCacheLookups.WithLabelValues(result).Inc()
}

func (metrics *Metrics) RecordSentimentCall(outcome string) {
	if metrics == nil {
		return
	}
	metrics.sentimentCalls.WithLabelValues(outcome).Inc()
}

// ObserveChanges counts every event published on notifier.
func (metrics *Metrics) ObserveChanges(notifier services.ChangeNotifier) func() {
	return notifier.Subscribe(func(event services.ChangeEvent) {
		if metrics == nil {
			return
		}
		metrics.changeEvents.WithLabelValues(event.Kind).Inc()
	})
}
