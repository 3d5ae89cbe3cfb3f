package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

func TestNewFlagTargetExclusivity(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewFlag("f1", "u1", FlagTargetVideo, "v1", "c1", FlagReasonSpam, "", now)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = NewFlag("f1", "u1", FlagTargetComment, "", "", FlagReasonSpam, "", now)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = NewFlag("f1", "u1", FlagTargetVideo, "v1", "", FlagReason("RUDE"), "", now)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	flag, err := NewFlag("f1", "u1", FlagTargetComment, "", " c1 ", FlagReasonHarassment, "  mean ", now)
	require.NoError(t, err)
	assert.Equal(t, FlagStatusPending, flag.Status)
	assert.Equal(t, "c1", flag.TargetID())
	assert.Equal(t, "mean", flag.Comment)
	assert.Equal(t, 1, flag.Version)
}

func TestNewStrikeDefaultsExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	strike, err := NewStrike("s1", StrikeSpec{
		UserID:   "u1",
		Type:     StrikeTypeCommunityGuidelines,
		Severity: SeverityStrike,
		Reason:   "spam links",
		IssuedBy: "admin-1",
	}, now)
	require.NoError(t, err)
	assert.True(t, strike.Active)
	assert.Equal(t, now.Add(90*24*time.Hour), strike.ExpiresAt)
	assert.True(t, strike.IsEffective(now))
	assert.False(t, strike.IsEffective(strike.ExpiresAt))

	_, err = NewStrike("s2", StrikeSpec{
		UserID:    "u1",
		Type:      StrikeTypeSpam,
		Severity:  SeverityStrike,
		Reason:    "r",
		IssuedBy:  "admin-1",
		ExpiresIn: -time.Hour,
	}, now)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)
}

func TestSeverityRankOrder(t *testing.T) {
	assert.Less(t, SeverityWarning.Rank(), SeverityStrike.Rank())
	assert.Less(t, SeverityStrike.Rank(), SeveritySuspension.Rank())
	assert.Less(t, SeveritySuspension.Rank(), SeverityTermination.Rank())
	assert.Zero(t, StrikeSeverity("BAN").Rank())
}

func TestRewardValidReportCapsAtMax(t *testing.T) {
	assert.Equal(t, 52, User{TrustScore: 50}.RewardValidReport().TrustScore)
	assert.Equal(t, MaxTrustScore, User{TrustScore: 99}.RewardValidReport().TrustScore)
	assert.Equal(t, MaxTrustScore, User{TrustScore: 100}.RewardValidReport().TrustScore)
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, Actor{UserID: "a", Role: "admin"}.IsAdmin())
	assert.False(t, Actor{UserID: "", Role: RoleAdmin}.IsAdmin())
	assert.False(t, Actor{UserID: "a", Role: RoleUser}.IsAdmin())
}
