package services

import (
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
)

// Standing is the effective strike picture for one channel or user,
// recomputed from strike rows on every read.
type Standing struct {
	Strikes          int
	CopyrightStrikes int
	Warnings         int
	Suspensions      int
	Terminations     int
}

func ComputeStanding(strikes []entities.Strike, now time.Time) Standing {
	var standing Standing
	for _, strike := range strikes {
		if !strike.IsEffective(now) {
			continue
		}
		switch strike.Severity {
		case entities.SeverityWarning:
			standing.Warnings++
		case entities.SeverityStrike:
			standing.Strikes++
			if strike.Type == entities.StrikeTypeCopyright {
				standing.CopyrightStrikes++
			}
		case entities.SeveritySuspension:
			standing.Suspensions++
		case entities.SeverityTermination:
			standing.Terminations++
		}
	}
	return standing
}

// CountActive counts effective strikes of one severity.
func CountActive(strikes []entities.Strike, severity entities.StrikeSeverity, now time.Time) int {
	count := 0
	for _, strike := range strikes {
		if strike.Severity == severity && strike.IsEffective(now) {
			count++
		}
	}
	return count
}

type ThresholdPolicy struct {
	SuspendAt            int
	TerminateCopyrightAt int
}

func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{SuspendAt: 3, TerminateCopyrightAt: 3}
}

func (p ThresholdPolicy) normalized() ThresholdPolicy {
	if p.SuspendAt <= 0 {
		p.SuspendAt = 3
	}
	if p.TerminateCopyrightAt <= 0 {
		p.TerminateCopyrightAt = 3
	}
	return p
}

// Escalate returns the status a channel must move to for the given standing.
// It never lowers a status: copyright strikes terminate at their threshold,
// general strikes suspend at theirs, and termination is final.
func (p ThresholdPolicy) Escalate(current entities.ChannelStatus, standing Standing) entities.ChannelStatus {
	p = p.normalized()
	if current == entities.ChannelStatusTerminated {
		return current
	}
	if standing.Terminations > 0 || standing.CopyrightStrikes >= p.TerminateCopyrightAt {
		return entities.ChannelStatusTerminated
	}
	if current == entities.ChannelStatusSuspended {
		return current
	}
	if standing.Suspensions > 0 || standing.Strikes >= p.SuspendAt {
		return entities.ChannelStatusSuspended
	}
	return current
}

// Restore lifts a suspension once nothing in the standing still justifies it.
// Terminated channels are never restored.
func (p ThresholdPolicy) Restore(current entities.ChannelStatus, standing Standing) entities.ChannelStatus {
	p = p.normalized()
	if current != entities.ChannelStatusSuspended {
		return current
	}
	if standing.Strikes >= p.SuspendAt || standing.Suspensions > 0 || standing.Terminations > 0 {
		return current
	}
	return entities.ChannelStatusActive
}
