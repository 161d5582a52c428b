// Package metrics exposes HTTP and business collectors for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solune"

// Metrics owns its registry so several instances can coexist in tests.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RevenueToday        prometheus.Gauge
	AppointmentsToday   prometheus.Gauge
	OutOfStockProducts  prometheus.Gauge
	LowStockProducts    prometheus.Gauge
	SnapshotVersion     prometheus.Gauge
	PromotionMessages   *prometheus.CounterVec
	SnapshotRefreshErrs prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RevenueToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "revenue_today",
			Help:      "Final amount collected today",
		}),
		AppointmentsToday: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "appointments_today",
			Help:      "Appointments recorded for today",
		}),
		OutOfStockProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "out_of_stock_products",
			Help:      "Products whose derived stock is zero or below",
		}),
		LowStockProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_products",
			Help:      "Products at or below the low stock threshold",
		}),
		SnapshotVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_version",
			Help:      "Version of the latest published data snapshot",
		}),
		PromotionMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "promotion_messages_total",
				Help:      "Promotional messages by outcome",
			},
			[]string{"status"},
		),
		SnapshotRefreshErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_errors_total",
			Help:      "Failed snapshot reloads",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RevenueToday,
		m.AppointmentsToday,
		m.OutOfStockProducts,
		m.LowStockProducts,
		m.SnapshotVersion,
		m.PromotionMessages,
		m.SnapshotRefreshErrs,
	)
	return m
}

// Middleware records request counts and latencies by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Business is the set of figures mirrored into gauges after each refresh.
type Business struct {
	Version           uint64
	RevenueToday      float64
	AppointmentsToday int
	OutOfStock        int
	LowStock          int
}

func (m *Metrics) Observe(b Business) {
	m.SnapshotVersion.Set(float64(b.Version))
	m.RevenueToday.Set(b.RevenueToday)
	m.AppointmentsToday.Set(float64(b.AppointmentsToday))
	m.OutOfStockProducts.Set(float64(b.OutOfStock))
	m.LowStockProducts.Set(float64(b.LowStock))
}

// PromotionSent counts one delivery outcome ("sent" or "failed").
func (m *Metrics) PromotionSent(status string) {
	m.PromotionMessages.WithLabelValues(status).Inc()
}
