package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration workflow.
type Metrics struct {
	RegistrationsCreated *prometheus.CounterVec
	Transitions          *prometheus.CounterVec
	EventPublishFailures prometheus.Counter
}

// New registers the workflow metrics on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the workflow metrics on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_registrations_created_total",
			Help: "Registrations created, by initial status",
		}, []string{"status"}),
		Transitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "matchmaker_registration_transitions_total",
			Help: "Owner approve/reject attempts, by target status and outcome",
		}, []string{"status", "outcome"}),
		EventPublishFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "matchmaker_registration_event_publish_failures_total",
			Help: "Registration events that could not be published",
		}),
	}
}

func (m *Metrics) IncrementCreated(status string) {
	if m == nil {
		return
	}
	m.RegistrationsCreated.WithLabelValues(status).Inc()
}

// IncrementTransition records an approve/reject attempt. outcome is one of
// "applied", "forbidden", "invalid_state", "error".
func (m *Metrics) IncrementTransition(status, outcome string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status, outcome).Inc()
}

func (m *Metrics) IncrementPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}
