// Package metrics описывает метрики Prometheus для сервисов контрактов.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/contract-validity/internal/lib/validity"
)

const namespace = "contract_validity"

// Metrics набор счётчиков и гистограмм. Методы безопасны для nil.
type Metrics struct {
	ValidityChecks   *prometheus.CounterVec
	Renewals         prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	NoticesPublished *prometheus.CounterVec
	NoticesSent      *prometheus.CounterVec
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ValidityChecks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Number of validity calculations by resulting status.",
		}, []string{"status"}),
		Renewals: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renewals_total",
			Help:      "Number of persisted contract renewals.",
		}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		NoticesPublished: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_published_total",
			Help:      "Expiration notices published by days remaining.",
		}, []string{"days"}),
		NoticesSent: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notices_sent_total",
			Help:      "Expiration e-mails by delivery result.",
		}, []string{"result"}),
	}
}

// ObserveStatus учитывает рассчитанный статус контракта.
func (m *Metrics) ObserveStatus(s validity.Status) {
	if m == nil {
		return
	}
	m.ValidityChecks.WithLabelValues(s.Code()).Inc()
}

// ObserveRenewal учитывает сохранённое продление.
func (m *Metrics) ObserveRenewal() {
	if m == nil {
		return
	}
	m.Renewals.Inc()
}

// ObserveHTTP учитывает обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveNoticePublished учитывает опубликованное уведомление.
func (m *Metrics) ObserveNoticePublished(days int) {
	if m == nil {
		return
	}
	m.NoticesPublished.WithLabelValues(strconv.Itoa(days)).Inc()
}

// ObserveNoticeSent учитывает результат отправки письма.
func (m *Metrics) ObserveNoticeSent(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.NoticesSent.WithLabelValues(result).Inc()
}
