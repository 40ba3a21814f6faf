package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for deal visibility resolution.
type Metrics struct {
	Resolutions         *prometheus.CounterVec
	RegistrationLookups *prometheus.CounterVec
	BatchSize           prometheus.Histogram
	BatchDuration       prometheus.Histogram
	LookupBreakerState  prometheus.Gauge
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_visibility_resolutions_total",
			Help: "Deal resolutions by outcome (full, anonymized, degraded)",
		}, []string{"outcome", "privacy_level"}),
		RegistrationLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_visibility_registration_lookups_total",
			Help: "Registration lookups by result (hit, miss, error, skipped)",
		}, []string{"result"}),
		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchmaker_visibility_batch_size",
			Help:    "Number of deals per batch resolution",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "matchmaker_visibility_batch_duration_seconds",
			Help:    "Duration of batch resolutions",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LookupBreakerState: factory.NewGauge(prometheus.GaugeOpts{
			Name: "matchmaker_visibility_lookup_breaker_state",
			Help: "Registration lookup breaker state (0=closed, 1=open)",
		}),
	}
}

func (m *Metrics) IncrementResolution(outcome, level string) {
	if m == nil {
		return
	}
	m.Resolutions.WithLabelValues(outcome, level).Inc()
}

func (m *Metrics) IncrementLookup(result string) {
	if m == nil {
		return
	}
	m.RegistrationLookups.WithLabelValues(result).Inc()
}

// ObserveBatch records size and duration of a batch. Call with time.Now() at
// the start of the batch.
func (m *Metrics) ObserveBatch(size int, start time.Time) {
	if m == nil {
		return
	}
	m.BatchSize.Observe(float64(size))
	m.BatchDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) SetBreakerOpen(open bool) {
	if m == nil {
		return
	}
	if open {
		m.LookupBreakerState.Set(1)
		return
	}
	m.LookupBreakerState.Set(0)
}
