package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

type Metrics struct {
	CacheRequests  *prometheus.CounterVec
	BackendRetries *prometheus.CounterVec
	Coalesced      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by index and result (hit or miss).",
		}, []string{"index", "result"}),
		BackendRetries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_retries_total",
			Help:      "Retries after transient backend failures.",
		}, []string{"backend"}),
		Coalesced: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coalesced_total",
			Help:      "Cache misses that shared an in-flight computation.",
		}, []string{"index"}),
	}
}

// Nop returns metrics registered nowhere.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) CacheHit(index string) {
	m.CacheRequests.WithLabelValues(index, "hit").Inc()
}

func (m *Metrics) CacheMiss(index string) {
	m.CacheRequests.WithLabelValues(index, "miss").Inc()
}

func (m *Metrics) Retry(backend string) {
	m.BackendRetries.WithLabelValues(backend).Inc()
}

func (m *Metrics) Coalesce(index string) {
	m.Coalesced.WithLabelValues(index).Inc()
}
