// Package metrics exposes Prometheus counters for board collaboration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's collectors on a dedicated registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Moves                *prometheus.CounterVec
	AuditEntries         prometheus.Counter
	AccessDenials        *prometheus.CounterVec
	DueDateNotifications prometheus.Counter
	HTTPRequests         *prometheus.CounterVec
	HTTPLatency          *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		// kind: "list" or "task"; outcome: "ok" or "rejected"
		Moves: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_moves_total",
			Help: "Move operations on lists and tasks by outcome",
		}, []string{"kind", "outcome"}),

		AuditEntries: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_audit_entries_total",
			Help: "System-log comments appended",
		}),

		AccessDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_access_denied_total",
			Help: "Access checks that denied the required role",
		}, []string{"required_role"}),

		DueDateNotifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_due_date_notifications_total",
			Help: "Due-date notifications delivered to assignees",
		}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordMove(kind string, ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "rejected"
	}
	m.Moves.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) RecordAuditEntry() {
	if m == nil {
		return
	}
	m.AuditEntries.Inc()
}

func (m *Metrics) RecordAccessDenied(required string) {
	if m == nil {
		return
	}
	m.AccessDenials.WithLabelValues(required).Inc()
}

func (m *Metrics) RecordNotification() {
	if m == nil {
		return
	}
	m.DueDateNotifications.Inc()
}

// Middleware records request count and latency keyed by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
