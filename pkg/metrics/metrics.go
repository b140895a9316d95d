// Package metrics declares the Prometheus collectors used by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBConnsOpen     *prometheus.GaugeVec
	DBConnsIdle     *prometheus.GaugeVec
	DBConnsInUse    *prometheus.GaugeVec

	DispatchTasksTotal   *prometheus.CounterVec
	DispatchBranchTotal  *prometheus.CounterVec
	DispatchQueueDropped prometheus.Counter
	DispatchQueueDepth   prometheus.Gauge
}

// New registers and returns the service collectors
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		DBConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Open database connections",
		}, []string{"service"}),

		DBConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Idle database connections",
		}, []string{"service"}),

		DBConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "In-use database connections",
		}, []string{"service"}),

		DispatchTasksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_tasks_total",
			Help: "Dispatch pipeline tasks submitted, by kind",
		}, []string{"service", "kind"}),

		DispatchBranchTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_branch_total",
			Help: "Dispatch branch executions, by branch and outcome",
		}, []string{"service", "branch", "outcome"}),

		DispatchQueueDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dispatch_queue_dropped_total",
			Help: "Dispatch tasks dropped because the queue was full",
		}),

		DispatchQueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "dispatch_queue_depth",
			Help: "Current number of queued dispatch tasks",
		}),
	}
}

// ServiceName returns the configured service label
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveHTTPRequest records one handled HTTP request
func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(seconds)
}

// ObserveDBQuery records one database query
func (m *Metrics) ObserveDBQuery(operation string, seconds float64) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(seconds)
}

// SetDBConns records connection pool gauges
func (m *Metrics) SetDBConns(open, idle, inUse int) {
	m.DBConnsOpen.WithLabelValues(m.serviceName).Set(float64(open))
	m.DBConnsIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.DBConnsInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
}

// IncDispatchTask records a submitted dispatch task
func (m *Metrics) IncDispatchTask(kind string) {
	m.DispatchTasksTotal.WithLabelValues(m.serviceName, kind).Inc()
}

// IncDispatchBranch records a finished dispatch branch
func (m *Metrics) IncDispatchBranch(branch, outcome string) {
	m.DispatchBranchTotal.WithLabelValues(m.serviceName, branch, outcome).Inc()
}

// IncDispatchDropped records a task dropped on a full queue
func (m *Metrics) IncDispatchDropped() {
	m.DispatchQueueDropped.Inc()
}

// SetDispatchQueueDepth records the current queue depth
func (m *Metrics) SetDispatchQueueDepth(depth int) {
	m.DispatchQueueDepth.Set(float64(depth))
}
