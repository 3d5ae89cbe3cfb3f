package application

import (
	"log/slog"

	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

const moduleName = "moderation-safety/moderation-service"

func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

type nopMetrics struct{}

func (nopMetrics) DecisionApplied(string, string)   {}
func (nopMetrics) StrikeIssued(string, string)      {}
func (nopMetrics) ChannelTransition(string, string) {}
func (nopMetrics) PartialFailure(string)            {}
func (nopMetrics) OutboxRelayed(string, int)        {}
func (nopMetrics) StrikesReconciled(int)            {}

// ResolveMetrics returns a recorder that drops everything when none is configured.
func ResolveMetrics(metrics ports.Metrics) ports.Metrics {
	if metrics != nil {
		return metrics
	}
	return nopMetrics{}
}
