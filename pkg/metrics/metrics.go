// Package metrics prometheus-метрики сервиса
// Все методы безопасны для вызова на nil *Metrics (метрики выключены в конфиге)
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal    *prometheus.CounterVec
	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	capacityOperations *prometheus.CounterVec
	slotsGenerated     *prometheus.CounterVec
	cancellations      *prometheus.CounterVec
	refunds            *prometheus.CounterVec
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном регистре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"service", "operation"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		capacityOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_capacity_operations_total",
			Help: "Slot capacity reserve/release operations by result",
		}, []string{"service", "operation", "result"}),
		slotsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "slots_generated_total",
			Help: "Slots processed by batch generation by outcome (created, skipped, failed)",
		}, []string{"service", "outcome"}),
		cancellations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reservation_cancellations_total",
			Help: "Cancelled reservations by actor role",
		}, []string{"service", "actor"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "refunds_total",
			Help: "Refund attempts by status",
		}, []string{"service", "status"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueriesTotal,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.capacityOperations,
		m.slotsGenerated,
		m.cancellations,
		m.refunds,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует SQL запрос
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(m.serviceName, operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет показатели пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbInUse.WithLabelValues(m.serviceName).Set(float64(inUse))
	m.dbIdle.WithLabelValues(m.serviceName).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(m.serviceName).Set(float64(waitCount))
}

// IncCapacityOperation operation: reserve|release, result: ok|not_found|unavailable|insufficient|clamped|error
func (m *Metrics) IncCapacityOperation(operation, result string) {
	if m == nil {
		return
	}
	m.capacityOperations.WithLabelValues(m.serviceName, operation, result).Inc()
}

// AddSlotsGenerated outcome: created|skipped|failed
func (m *Metrics) AddSlotsGenerated(outcome string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.slotsGenerated.WithLabelValues(m.serviceName, outcome).Add(float64(count))
}

func (m *Metrics) IncCancellation(actor string) {
	if m == nil {
		return
	}
	m.cancellations.WithLabelValues(m.serviceName, actor).Inc()
}

func (m *Metrics) IncRefund(status string) {
	if m == nil {
		return
	}
	m.refunds.WithLabelValues(m.serviceName, status).Inc()
}
