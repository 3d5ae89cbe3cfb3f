package prometheusadapter

import (
	"vidstream/contexts/moderation-safety/moderation-service/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	decisions          *prometheus.CounterVec
	strikesIssued      *prometheus.CounterVec
	channelTransitions *prometheus.CounterVec
	partialFailures    *prometheus.CounterVec
	outboxRelayed      *prometheus.CounterVec
	strikesReconciled  prometheus.Counter
}

// NewMetrics registers the moderation collectors on reg. Pass
// prometheus.DefaultRegisterer to expose them on the process /metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_decisions_total",
			Help: "Moderation commands applied, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		strikesIssued: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_strikes_issued_total",
			Help: "Strikes written to the ledger.",
		}, []string{"type", "severity"}),
		channelTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_channel_transitions_total",
			Help: "Channel status changes made by the threshold policy.",
		}, []string{"from", "to"}),
		partialFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_partial_failures_total",
			Help: "Follow-up steps that failed after a decision committed.",
		}, []string{"stage"}),
		outboxRelayed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "moderation_outbox_relayed_total",
			Help: "Notification outbox rows handled by the relay.",
		}, []string{"outcome"}),
		strikesReconciled: factory.NewCounter(prometheus.CounterOpts{
			Name: "moderation_strikes_reconciled_total",
			Help: "Lapsed strikes switched to inactive.",
		}),
	}
}

func (m *Metrics) DecisionApplied(kind string, outcome string) {
	m.decisions.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) StrikeIssued(strikeType string, severity string) {
	m.strikesIssued.WithLabelValues(strikeType, severity).Inc()
}

func (m *Metrics) ChannelTransition(from string, to string) {
	m.channelTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) PartialFailure(stage string) {
	m.partialFailures.WithLabelValues(stage).Inc()
}

func (m *Metrics) OutboxRelayed(outcome string, count int) {
	m.outboxRelayed.WithLabelValues(outcome).Add(float64(count))
}

func (m *Metrics) StrikesReconciled(count int) {
	m.strikesReconciled.Add(float64(count))
}

var _ ports.Metrics = (*Metrics)(nil)
