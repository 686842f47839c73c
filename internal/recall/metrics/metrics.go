package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the recall lifecycle manager.
type Metrics struct {
	RecallsInitiated prometheus.Counter

	// Status changes by target status, whichever entry point caused them
	StatusTransitions *prometheus.CounterVec

	VerifierVotes *prometheus.CounterVec // vote: "approve", "reject"

	// Disputes by outcome: "opened", "verified", "resolved"
	Disputes *prometheus.CounterVec

	DependencyFailures *prometheus.CounterVec

	OperationLatency *prometheus.HistogramVec
}

// New registers the recall metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the recall metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RecallsInitiated: factory.NewCounter(prometheus.CounterOpts{
			Name: "recallguard_recalls_initiated_total",
			Help: "Total number of recalls opened",
		}),

		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recallguard_recall_status_transitions_total",
			Help: "Recall status changes by target status",
		}, []string{"status"}),

		VerifierVotes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recallguard_verifier_votes_total",
			Help: "Verifier votes recorded by vote",
		}, []string{"vote"}),

		Disputes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recallguard_disputes_total",
			Help: "Disputes opened and resolved by outcome",
		}, []string{"outcome"}),

		DependencyFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "recallguard_dependency_failures_total",
			Help: "Collaborator call failures by dependency",
		}, []string{"dependency"}), // dependency: "batch_directory", "report_tally", "alerts", "rewards"

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recallguard_operation_duration_seconds",
			Help:    "Duration of recall operations including collaborator calls",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
	}
}

func (m *Metrics) IncrementInitiated() {
	if m != nil {
		m.RecallsInitiated.Inc()
	}
}

func (m *Metrics) IncrementTransition(status string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(status).Inc()
	}
}

// IncrementVote records a verifier vote.
func (m *Metrics) IncrementVote(approve bool) {
	if m == nil {
		return
	}
	label := "reject"
	if approve {
		label = "approve"
	}
	m.VerifierVotes.WithLabelValues(label).Inc()
}

func (m *Metrics) IncrementDispute(outcome string) {
	if m != nil {
		m.Disputes.WithLabelValues(outcome).Inc()
	}
}

// IncrementDependencyFailure records a failed collaborator call.
func (m *Metrics) IncrementDependencyFailure(dependency string) {
	if m != nil {
		m.DependencyFailures.WithLabelValues(dependency).Inc()
	}
}

// ObserveOperation records how long an operation took.
func (m *Metrics) ObserveOperation(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
