package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on the metrics endpoint.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	ordersPlaced       prometheus.Counter
	orderStatusChanges *prometheus.CounterVec
	stockUnitsTaken    *prometheus.CounterVec
	salesRecorded      prometheus.Counter
	salesRevenue       prometheus.Counter
	paymentsCompleted  *prometheus.CounterVec
}

// NewMetrics registers all collectors under the given namespace.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "placed_total",
			Help: "Orders placed.",
		}),
		orderStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "orders", Name: "status_changes_total",
			Help: "Order status transitions by target status.",
		}, []string{"status"}),
		stockUnitsTaken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "inventory", Name: "stock_decrements_total",
			Help: "Units of stock taken, by source (order or sale).",
		}, []string{"source"}),
		salesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sales", Name: "recorded_total",
			Help: "Direct sales recorded.",
		}),
		salesRevenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "sales", Name: "revenue_total",
			Help: "Revenue of direct sales.",
		}),
		paymentsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "payments", Name: "completed_total",
			Help: "Completed payments by method.",
		}, []string{"method"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.ordersPlaced,
		m.orderStatusChanges,
		m.stockUnitsTaken,
		m.salesRecorded,
		m.salesRevenue,
		m.paymentsCompleted,
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP records one finished request. route is the matched route
// template, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
