package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records pricing resolution outcomes.
type QuoteMetrics struct {
	duration  *prometheus.HistogramVec
	resolved  *prometheus.CounterVec
	cacheHit  prometheus.Counter
	cacheMiss prometheus.Counter
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "quote_batch_duration_seconds",
		Help:    "Duration of quote batch resolution in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	resolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quotes_resolved_total",
		Help: "Resolved quotes partitioned by winning price type.",
	}, []string{"price_type"})
	cacheHit := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_cache_hits_total",
		Help: "Quote results served from the cache.",
	})
	cacheMiss := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "quote_cache_misses_total",
		Help: "Quote results computed fresh.",
	})
	reg.MustRegister(duration, resolved, cacheHit, cacheMiss)
	return &QuoteMetrics{
		duration:  duration,
		resolved:  resolved,
		cacheHit:  cacheHit,
		cacheMiss: cacheMiss,
	}
}

// ObserveBatch records the duration of one batch resolution.
func (m *QuoteMetrics) ObserveBatch(outcome string, elapsed time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// IncResolved counts one resolved quote by its winning price type.
func (m *QuoteMetrics) IncResolved(priceType string) {
	if m == nil || m.resolved == nil {
		return
	}
	m.resolved.WithLabelValues(priceType).Inc()
}

// IncCacheHit counts one cache hit.
func (m *QuoteMetrics) IncCacheHit() {
	if m == nil || m.cacheHit == nil {
		return
	}
	m.cacheHit.Inc()
}

// IncCacheMiss counts one cache miss.
func (m *QuoteMetrics) IncCacheMiss() {
	if m == nil || m.cacheMiss == nil {
		return
	}
	m.cacheMiss.Inc()
}
