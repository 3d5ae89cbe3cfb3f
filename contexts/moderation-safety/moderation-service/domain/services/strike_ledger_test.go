package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
)

var ledgerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func strikeOf(strikeType entities.StrikeType, severity entities.StrikeSeverity, active bool, expiresAt time.Time) entities.Strike {
	return entities.Strike{Type: strikeType, Severity: severity, Active: active, ExpiresAt: expiresAt}
}

func TestComputeStandingCountsOnlyEffectiveStrikes(t *testing.T) {
	future := ledgerNow.Add(24 * time.Hour)
	past := ledgerNow.Add(-time.Minute)
	standing := ComputeStanding([]entities.Strike{
		strikeOf(entities.StrikeTypeSpam, entities.SeverityStrike, true, future),
		strikeOf(entities.StrikeTypeCopyright, entities.SeverityStrike, true, future),
		strikeOf(entities.StrikeTypeCopyright, entities.SeverityStrike, true, past),
		strikeOf(entities.StrikeTypeSpam, entities.SeverityStrike, false, future),
		strikeOf(entities.StrikeTypeSpam, entities.SeverityWarning, true, future),
		strikeOf(entities.StrikeTypeSpam, entities.SeveritySuspension, true, future),
	}, ledgerNow)

	assert.Equal(t, Standing{Strikes: 2, CopyrightStrikes: 1, Warnings: 1, Suspensions: 1}, standing)
}

func TestCountActiveIgnoresLapsedExpiry(t *testing.T) {
	strikes := []entities.Strike{
		strikeOf(entities.StrikeTypeSpam, entities.SeverityStrike, true, ledgerNow),
		strikeOf(entities.StrikeTypeSpam, entities.SeverityStrike, true, ledgerNow.Add(time.Second)),
	}
	assert.Equal(t, 1, CountActive(strikes, entities.SeverityStrike, ledgerNow))
}

func TestEscalateThresholds(t *testing.T) {
	policy := DefaultThresholdPolicy()
	cases := []struct {
		name     string
		current  entities.ChannelStatus
		standing Standing
		want     entities.ChannelStatus
	}{
		{"below threshold", entities.ChannelStatusActive, Standing{Strikes: 2}, entities.ChannelStatusActive},
		{"general strikes suspend", entities.ChannelStatusActive, Standing{Strikes: 3}, entities.ChannelStatusSuspended},
		{"copyright strikes terminate", entities.ChannelStatusActive, Standing{Strikes: 3, CopyrightStrikes: 3}, entities.ChannelStatusTerminated},
		{"suspended escalates to terminated", entities.ChannelStatusSuspended, Standing{Strikes: 3, CopyrightStrikes: 3}, entities.ChannelStatusTerminated},
		{"suspension severity", entities.ChannelStatusActive, Standing{Suspensions: 1}, entities.ChannelStatusSuspended},
		{"termination severity", entities.ChannelStatusActive, Standing{Terminations: 1}, entities.ChannelStatusTerminated},
		{"terminated is final", entities.ChannelStatusTerminated, Standing{}, entities.ChannelStatusTerminated},
		{"never lowers", entities.ChannelStatusSuspended, Standing{}, entities.ChannelStatusSuspended},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, policy.Escalate(tc.current, tc.standing))
		})
	}
}

func TestRestoreOnlyLiftsSuspension(t *testing.T) {
	policy := DefaultThresholdPolicy()
	assert.Equal(t, entities.ChannelStatusActive, policy.Restore(entities.ChannelStatusSuspended, Standing{Strikes: 2}))
	assert.Equal(t, entities.ChannelStatusSuspended, policy.Restore(entities.ChannelStatusSuspended, Standing{Strikes: 3}))
	assert.Equal(t, entities.ChannelStatusSuspended, policy.Restore(entities.ChannelStatusSuspended, Standing{Suspensions: 1}))
	assert.Equal(t, entities.ChannelStatusTerminated, policy.Restore(entities.ChannelStatusTerminated, Standing{}))
}

func TestZeroPolicyUsesDefaults(t *testing.T) {
	var policy ThresholdPolicy
	assert.Equal(t, entities.ChannelStatusSuspended, policy.Escalate(entities.ChannelStatusActive, Standing{Strikes: 3}))
	assert.Equal(t, entities.ChannelStatusActive, policy.Escalate(entities.ChannelStatusActive, Standing{Strikes: 2}))
}
