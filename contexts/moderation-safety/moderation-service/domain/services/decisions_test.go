package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

func TestParseFlagDecisionRequiresStrikeFields(t *testing.T) {
	_, err := ParseFlagDecision("remove_with_strike", "", "STRIKE")
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = ParseFlagDecision("warn", "SPAM", "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = ParseFlagDecision("ban", "", "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	decision, err := ParseFlagDecision("remove_with_strike", "community_guidelines", "strike")
	require.NoError(t, err)
	assert.Equal(t, RemoveContentWithStrike{
		StrikeType:     entities.StrikeTypeCommunityGuidelines,
		StrikeSeverity: entities.SeverityStrike,
	}, decision)
}

func TestPlanFlagDecision(t *testing.T) {
	videoFlag := entities.Flag{TargetType: entities.FlagTargetVideo, VideoID: "v1", Status: entities.FlagStatusPending}

	plan, err := PlanFlagDecision(videoFlag, DismissFlag{})
	require.NoError(t, err)
	assert.Equal(t, entities.FlagStatusDismissed, plan.Status)
	assert.False(t, plan.RewardReporter)
	assert.Equal(t, ContentUnchanged, plan.Content)

	plan, err = PlanFlagDecision(videoFlag, RemoveContentWithStrike{
		StrikeType:     entities.StrikeTypeSpam,
		StrikeSeverity: entities.SeverityStrike,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.FlagStatusResolved, plan.Status)
	assert.Equal(t, "Content removed with strike", plan.DecisionText)
	assert.Equal(t, ContentRemove, plan.Content)
	require.NotNil(t, plan.Strike)
	assert.Equal(t, entities.StrikeTypeSpam, plan.Strike.Type)
	assert.True(t, plan.RewardReporter)

	commentFlag := entities.Flag{TargetType: entities.FlagTargetComment, CommentID: "c1", Status: entities.FlagStatusUnderReview}
	_, err = PlanFlagDecision(commentFlag, AgeRestrictContent{})
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)
}

func TestPlanFlagDecisionRejectsTerminalFlags(t *testing.T) {
	for _, status := range []entities.FlagStatus{entities.FlagStatusResolved, entities.FlagStatusDismissed} {
		for _, decision := range []FlagDecision{DismissFlag{}, WarnOwner{}, RemoveContent{}} {
			_, err := PlanFlagDecision(entities.Flag{TargetType: entities.FlagTargetVideo, Status: status}, decision)
			assert.ErrorIs(t, err, domainerrors.ErrAlreadyResolved)
		}
	}
}

func TestParseClaimDecision(t *testing.T) {
	decision, err := ParseClaimDecision("uphold", "block", true)
	require.NoError(t, err)
	assert.Equal(t, UpholdClaim{Action: ClaimActionBlock, ApplyStrike: true}, decision)

	_, err = ParseClaimDecision("reject", "block", false)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = ParseClaimDecision("partial", "", true)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = ParseClaimDecision("uphold", "delete", false)
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)
}

func TestPlanClaimDecision(t *testing.T) {
	pending := entities.CopyrightClaim{Status: entities.ClaimStatusPending, VideoID: "v2"}

	plan, err := PlanClaimDecision(pending, UpholdClaim{Action: ClaimActionBlock, ApplyStrike: true})
	require.NoError(t, err)
	assert.True(t, plan.BlockVideo)
	require.NotNil(t, plan.Strike)
	assert.Equal(t, entities.StrikeTypeCopyright, plan.Strike.Type)
	assert.Equal(t, entities.AuditClaimUpheld, plan.AuditAction)

	plan, err = PlanClaimDecision(pending, UpholdClaim{Action: ClaimActionMuteAudio})
	require.NoError(t, err)
	assert.False(t, plan.BlockVideo)
	assert.Nil(t, plan.Strike)

	blocked := pending
	blocked.VideoBlocked = true
	plan, err = PlanClaimDecision(blocked, RejectClaim{})
	require.NoError(t, err)
	assert.True(t, plan.RestoreVideo)
	assert.Equal(t, entities.ClaimStatusRejected, plan.Status)

	plan, err = PlanClaimDecision(pending, PartiallyUpholdClaim{})
	require.NoError(t, err)
	assert.Equal(t, entities.ClaimStatusUpheld, plan.Status)
	assert.False(t, plan.BlockVideo || plan.RestoreVideo)
}

func TestPlanClaimDecisionRejectsDecidedClaims(t *testing.T) {
	for _, status := range []entities.ClaimStatus{entities.ClaimStatusUpheld, entities.ClaimStatusRejected} {
		for _, decision := range []ClaimDecision{UpholdClaim{}, RejectClaim{}, PartiallyUpholdClaim{}} {
			_, err := PlanClaimDecision(entities.CopyrightClaim{Status: status}, decision)
			assert.ErrorIs(t, err, domainerrors.ErrAlreadyDecided)
		}
	}
}

func TestParseStrikeUpdate(t *testing.T) {
	_, err := ParseStrikeUpdate("update_severity", "")
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	_, err = ParseStrikeUpdate("remove", "STRIKE")
	require.ErrorIs(t, err, domainerrors.ErrInvalidRequest)

	update, err := ParseStrikeUpdate("update_severity", "suspension")
	require.NoError(t, err)
	assert.Equal(t, ChangeStrikeSeverity{Severity: entities.SeveritySuspension}, update)

	update, err = ParseStrikeUpdate("expire", "")
	require.NoError(t, err)
	assert.Equal(t, StrikeUpdateExpire, update.Kind())
}

func TestChannelStatusNotice(t *testing.T) {
	channel := entities.Channel{ChannelID: "ch-1", OwnerID: "u-1", Name: "Cooking"}
	notice, ok := ChannelStatusNotice(channel, entities.ChannelStatusActive, entities.ChannelStatusSuspended)
	require.True(t, ok)
	assert.Equal(t, entities.NotificationChannelSuspended, notice.Type)
	assert.Equal(t, "u-1", notice.UserID)

	_, ok = ChannelStatusNotice(channel, entities.ChannelStatusSuspended, entities.ChannelStatusSuspended)
	assert.False(t, ok)
}
