// Package metrics は Prometheus のメトリクス定義と公開ハンドラを提供します。
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/ogurasousui/hrms-lite/internal/core/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hrms"

// Metrics はプロセス内で共有するメトリクス一式です。
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	GRPCRequests     *prometheus.CounterVec
	GRPCDuration     *prometheus.HistogramVec
	DBTransactions   *prometheus.CounterVec
	DomainEvents     *prometheus.CounterVec
	AttendanceMarked *prometheus.CounterVec
	SalaryUpserts    *prometheus.CounterVec
}

// New は専用のレジストリにメトリクスを登録して返します。
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		GRPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Unary gRPC calls by full method and status code.",
		}, []string{"method", "code"}),
		GRPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "Unary gRPC call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		DBTransactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "transactions_total",
			Help:      "Database transactions by access mode and outcome.",
		}, []string{"mode", "outcome"}),
		DomainEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events emitted after commit, by type.",
		}, []string{"type"}),
		AttendanceMarked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "attendance",
			Name:      "marked_total",
			Help:      "Attendance records created, by status.",
		}, []string{"status"}),
		SalaryUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payroll",
			Name:      "salary_upserts_total",
			Help:      "Salary upserts by outcome (created or overwritten).",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.GRPCRequests,
		m.GRPCDuration,
		m.DBTransactions,
		m.DomainEvents,
		m.AttendanceMarked,
		m.SalaryUpserts,
	)

	return m
}

// Handler は /metrics 用の HTTP ハンドラを返します。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTP は 1 リクエスト分の結果を記録します。
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveGRPC は 1 呼び出し分の結果を記録します。
func (m *Metrics) ObserveGRPC(fullMethod, code string, elapsed time.Duration) {
	m.GRPCRequests.WithLabelValues(fullMethod, code).Inc()
	m.GRPCDuration.WithLabelValues(fullMethod).Observe(elapsed.Seconds())
}

// ObserveTx はトランザクションの結果を記録します。
func (m *Metrics) ObserveTx(mode, outcome string) {
	m.DBTransactions.WithLabelValues(mode, outcome).Inc()
}

// Publish は event.Publisher を実装し、ドメインイベントから業務メトリクスを更新します。
func (m *Metrics) Publish(_ context.Context, e event.Event) error {
	m.DomainEvents.WithLabelValues(string(e.Type)).Inc()

	switch e.Type {
	case event.TypeAttendanceMarked:
		if status, ok := e.Payload["status"].(string); ok {
			m.AttendanceMarked.WithLabelValues(status).Inc()
		}
	case event.TypeSalaryUpserted:
		outcome := "overwritten"
		if created, _ := e.Payload["created"].(bool); created {
			outcome = "created"
		}
		m.SalaryUpserts.WithLabelValues(outcome).Inc()
	}

	return nil
}
