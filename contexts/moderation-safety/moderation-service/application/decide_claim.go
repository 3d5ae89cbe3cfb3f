package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
)

type DecideClaimCommand struct {
	ClaimID        string
	Decision       string
	Notes          string
	Action         string
	ApplyStrike    bool
	IdempotencyKey string
}

type ClaimDecisionResult struct {
	Claim         entities.CopyrightClaim
	Message       string
	Strike        *entities.Strike
	ActiveStrikes int
	ChannelStatus entities.ChannelStatus
	Warnings      []string
}

func (s Service) DecideCopyrightClaim(ctx context.Context, actor entities.Actor, cmd DecideClaimCommand) (result ClaimDecisionResult, err error) {
	defer func() { s.observeDecision("copyright_claim", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return ClaimDecisionResult{}, err
	}
	cmd.ClaimID = strings.TrimSpace(cmd.ClaimID)
	cmd.Notes = strings.TrimSpace(cmd.Notes)
	if cmd.ClaimID == "" {
		return ClaimDecisionResult{}, domainerrors.Invalid("claim_id is required")
	}
	decision, err := services.ParseClaimDecision(cmd.Decision, cmd.Action, cmd.ApplyStrike)
	if err != nil {
		return ClaimDecisionResult{}, err
	}

	requestHash := hashStrings(
		actor.UserID,
		"decide_claim",
		cmd.ClaimID,
		string(decision.Kind()),
		strings.ToLower(strings.TrimSpace(cmd.Action)),
		strconv.FormatBool(cmd.ApplyStrike),
		cmd.Notes,
	)
	err = s.runIdempotent(
		ctx,
		cmd.IdempotencyKey,
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			out, err := s.applyClaimDecision(ctx, actor, cmd.ClaimID, decision, cmd.Notes)
			if err != nil {
				return nil, err
			}
			return json.Marshal(out)
		},
	)
	if err != nil {
		ResolveLogger(s.Logger).Warn("copyright claim decision rejected",
			"event", "moderation_claim_decision_rejected",
			"module", moduleName,
			"layer", "application",
			"claim_id", cmd.ClaimID,
			"decision", string(decision.Kind()),
			"error", err.Error(),
		)
		return ClaimDecisionResult{}, err
	}
	ResolveLogger(s.Logger).Info("copyright claim decided",
		"event", "moderation_claim_decided",
		"module", moduleName,
		"layer", "application",
		"claim_id", cmd.ClaimID,
		"decision", string(decision.Kind()),
		"admin_id", actor.UserID,
		"channel_status", string(result.ChannelStatus),
	)
	return result, nil
}

func (s Service) applyClaimDecision(
	ctx context.Context,
	actor entities.Actor,
	claimID string,
	decision services.ClaimDecision,
	notes string,
) (ClaimDecisionResult, error) {
	var result ClaimDecisionResult
	warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
		claim, err := uow.tx.GetClaim(ctx, claimID)
		if err != nil {
			return nil, err
		}
		plan, err := services.PlanClaimDecision(claim, decision)
		if err != nil {
			return nil, err
		}
		target, err := resolveClaimTarget(ctx, uow, claim)
		if err != nil {
			return nil, err
		}

		decidedAt := uow.now
		next := claim
		next.Status = plan.Status
		next.Decision = plan.DecisionText
		next.DecidedBy = actor.UserID
		next.DecidedAt = &decidedAt
		// VideoBlocked marks a block this claim made, so reject never
		// publishes a video its owner had already made private.
		if plan.BlockVideo && target.Video.Visibility != entities.VisibilityPrivate {
			next.VideoBlocked = true
		}
		if plan.RestoreVideo {
			next.VideoBlocked = false
		}
		next.Version = claim.Version + 1
		next.UpdatedAt = uow.now
		if err := uow.tx.TransitionClaim(ctx, next, claim.Version, entities.DecidableClaimStatuses); err != nil {
			return nil, claimTransitionError(ctx, uow, claimID, err)
		}
		before := &decisionState{Claim: snapshotClaim(claim), Video: snapshotVideo(target.Video)}
		after := &decisionState{Claim: snapshotClaim(next)}

		video := target.Video
		switch {
		case plan.BlockVideo && video.Visibility != entities.VisibilityPrivate:
			video.Visibility = entities.VisibilityPrivate
		case plan.RestoreVideo && video.Visibility == entities.VisibilityPrivate:
			video.Visibility = entities.VisibilityPublic
		}
		if video.Visibility != target.Video.Visibility {
			video.UpdatedAt = uow.now
			if err := uow.tx.UpdateVideo(ctx, video); err != nil {
				return nil, err
			}
		}
		after.Video = snapshotVideo(video)

		result.ChannelStatus = target.Channel.Status
		if plan.Strike != nil {
			outcome, err := s.issueStrike(ctx, uow, entities.StrikeSpec{
				UserID:    target.Channel.OwnerID,
				ChannelID: target.Channel.ChannelID,
				Type:      plan.Strike.Type,
				Severity:  plan.Strike.Severity,
				Reason:    fmt.Sprintf("Copyright claim %s upheld", claim.ClaimID),
				VideoID:   video.VideoID,
				IssuedBy:  actor.UserID,
				ExpiresIn: s.strikeExpiry(),
			}, plan.DecisionText)
			if err != nil {
				return nil, err
			}
			strike := outcome.Strike
			result.Strike = &strike
			result.ActiveStrikes = outcome.ActiveStrikes
			result.ChannelStatus = outcome.ChannelStatus
			after.Strike = snapshotStrike(strike)
			before.ChannelID, before.ChannelStatus = target.Channel.ChannelID, string(target.Channel.Status)
			after.ChannelID, after.ChannelStatus = target.Channel.ChannelID, string(outcome.ChannelStatus)
		} else if notice, ok := services.ClaimOutcomeNotice(plan, target.Channel.OwnerID, video.VideoID, target.Channel.ChannelID); ok {
			uow.notify(notice)
		}

		result.Claim = next
		result.Message = decisionMessage(plan.DecisionText, target.Channel.Status, result.ChannelStatus)
		return &auditEntry{
			Action:     plan.AuditAction,
			TargetType: entities.AuditTargetClaim,
			TargetID:   claim.ClaimID,
			Before:     before,
			After:      after,
			Notes:      notes,
		}, nil
	})
	if err != nil {
		return ClaimDecisionResult{}, err
	}
	result.Warnings = warnings
	return result, nil
}
