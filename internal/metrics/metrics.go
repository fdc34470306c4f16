package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics - счётчики HTTP и доменных переходов.
// Все методы безопасны для nil-получателя.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	accessTransitions  *prometheus.CounterVec
	biodataCreated     prometheus.Counter
	premiumTransitions *prometheus.CounterVec
	pendingAccess      prometheus.Gauge
	pendingPremium     prometheus.Gauge
}

// New регистрирует метрики в отдельном реестре
func New() *Metrics {
	reg := prometheus.NewRegistry()
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		gatherer: gatherer,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		accessTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "access_request_transitions_total",
			Help: "Access request status transitions by target status.",
		}, []string{"to"}),
		biodataCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "biodata_created_total",
			Help: "Biodatas created.",
		}),
		premiumTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "premium_transitions_total",
			Help: "Premium status transitions by target status.",
		}, []string{"to"}),
		pendingAccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pending_access_requests",
			Help: "Access requests awaiting an admin decision.",
		}),
		pendingPremium: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pending_premium_requests",
			Help: "Members awaiting premium approval.",
		}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.accessTransitions,
		m.biodataCreated,
		m.premiumTransitions,
		m.pendingAccess,
		m.pendingPremium,
	)
	return m
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) AccessTransition(to string) {
	if m == nil {
		return
	}
	m.accessTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) BiodataCreated() {
	if m == nil {
		return
	}
	m.biodataCreated.Inc()
}

func (m *Metrics) PremiumTransition(to string) {
	if m == nil {
		return
	}
	m.premiumTransitions.WithLabelValues(to).Inc()
}

func (m *Metrics) SetBacklog(pendingAccess, pendingPremium int64) {
	if m == nil {
		return
	}
	m.pendingAccess.Set(float64(pendingAccess))
	m.pendingPremium.Set(float64(pendingPremium))
}

func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return nil
	}
	return m.gatherer
}

// Handler - эндпоинт /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
