package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
)

type DecideFlagCommand struct {
	FlagID         string
	Decision       string
	Notes          string
	StrikeType     string
	StrikeSeverity string
	IdempotencyKey string
}

type FlagDecisionResult struct {
	Flag          entities.Flag
	Message       string
	Strike        *entities.Strike
	ActiveStrikes int
	ChannelStatus entities.ChannelStatus
	Warnings      []string
}

// DecideFlag applies an admin decision to an open flag. The flag transition,
// content change, strike, channel status, reporter trust, notifications and
// audit row commit together.
func (s Service) DecideFlag(ctx context.Context, actor entities.Actor, cmd DecideFlagCommand) (result FlagDecisionResult, err error) {
	defer func() { s.observeDecision("flag", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return FlagDecisionResult{}, err
	}
	cmd.FlagID = strings.TrimSpace(cmd.FlagID)
	cmd.Notes = strings.TrimSpace(cmd.Notes)
	if cmd.FlagID == "" {
		return FlagDecisionResult{}, domainerrors.Invalid("flag_id is required")
	}
	decision, err := services.ParseFlagDecision(cmd.Decision, cmd.StrikeType, cmd.StrikeSeverity)
	if err != nil {
		return FlagDecisionResult{}, err
	}

	requestHash := hashStrings(
		actor.UserID,
		"decide_flag",
		cmd.FlagID,
		string(decision.Kind()),
		strings.ToUpper(strings.TrimSpace(cmd.StrikeType)),
		strings.ToUpper(strings.TrimSpace(cmd.StrikeSeverity)),
		cmd.Notes,
	)
	err = s.runIdempotent(
		ctx,
		cmd.IdempotencyKey,
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			out, err := s.applyFlagDecision(ctx, actor, cmd.FlagID, decision, cmd.Notes)
			if err != nil {
				return nil, err
			}
			return json.Marshal(out)
		},
	)
	if err != nil {
		ResolveLogger(s.Logger).Warn("flag decision rejected",
			"event", "moderation_flag_decision_rejected",
			"module", moduleName,
			"layer", "application",
			"flag_id", cmd.FlagID,
			"decision", string(decision.Kind()),
			"error", err.Error(),
		)
		return FlagDecisionResult{}, err
	}
	ResolveLogger(s.Logger).Info("flag decided",
		"event", "moderation_flag_decided",
		"module", moduleName,
		"layer", "application",
		"flag_id", cmd.FlagID,
		"decision", string(decision.Kind()),
		"admin_id", actor.UserID,
		"channel_status", string(result.ChannelStatus),
	)
	return result, nil
}

func (s Service) applyFlagDecision(
	ctx context.Context,
	actor entities.Actor,
	flagID string,
	decision services.FlagDecision,
	notes string,
) (FlagDecisionResult, error) {
	var result FlagDecisionResult
	warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
		flag, err := uow.tx.GetFlag(ctx, flagID)
		if err != nil {
			return nil, err
		}
		plan, err := services.PlanFlagDecision(flag, decision)
		if err != nil {
			return nil, err
		}
		target, err := resolveFlagTarget(ctx, uow.tx, flag)
		contentGone := targetRemoved(err)
		if err != nil && !contentGone {
			return nil, err
		}
		if contentGone && plan.Strike != nil {
			return nil, domainerrors.Invalid("flagged %s %s no longer exists, a strike cannot be attributed",
				strings.ToLower(string(flag.TargetType)), flag.TargetID())
		}

		reviewedAt := uow.now
		next := flag
		next.Status = plan.Status
		next.Decision = plan.DecisionText
		next.ReviewedBy = actor.UserID
		next.ReviewedAt = &reviewedAt
		next.Notes = notes
		next.Version = flag.Version + 1
		next.UpdatedAt = uow.now
		if err := uow.tx.TransitionFlag(ctx, next, flag.Version); err != nil {
			return nil, flagTransitionError(ctx, uow.tx, flagID, err)
		}
		before := &decisionState{Flag: snapshotFlag(flag)}
		after := &decisionState{Flag: snapshotFlag(next), ContentMissing: contentGone}

		if plan.Content != services.ContentUnchanged {
			switch {
			case target.Video != nil:
				video := *target.Video
				before.Video = snapshotVideo(video)
				if plan.Content == services.ContentAgeRestrict {
					video.AgeRestricted = true
				} else {
					video.Visibility = entities.VisibilityPrivate
				}
				video.UpdatedAt = uow.now
				if err := uow.tx.UpdateVideo(ctx, video); err != nil {
					return nil, err
				}
				after.Video = snapshotVideo(video)
			case target.Comment != nil:
				deleted, err := uow.tx.DeleteCommentThread(ctx, target.Comment.CommentID)
				if err != nil {
					return nil, err
				}
				after.CommentDeleted = deleted
			}
		}

		result.ChannelStatus = target.ChannelStatus
		if plan.Strike != nil {
			if target.OwnerID == "" {
				return nil, fmt.Errorf("%w: flag %s target has no owner", domainerrors.ErrRepositoryInvariantBroke, flag.FlagID)
			}
			outcome, err := s.issueStrike(ctx, uow, entities.StrikeSpec{
				UserID:    target.OwnerID,
				ChannelID: target.ChannelID,
				Type:      plan.Strike.Type,
				Severity:  plan.Strike.Severity,
				Reason:    fmt.Sprintf("%s report upheld on %s %s", flag.Reason, strings.ToLower(string(flag.TargetType)), flag.TargetID()),
				VideoID:   target.VideoID,
				IssuedBy:  actor.UserID,
				ExpiresIn: s.strikeExpiry(),
			}, plan.DecisionText)
			if err != nil {
				return nil, err
			}
			strike := outcome.Strike
			result.Strike = &strike
			result.ActiveStrikes = outcome.ActiveStrikes
			after.Strike = snapshotStrike(strike)
			if target.ChannelID != "" {
				result.ChannelStatus = outcome.ChannelStatus
				before.ChannelID, before.ChannelStatus = target.ChannelID, string(target.ChannelStatus)
				after.ChannelID, after.ChannelStatus = target.ChannelID, string(outcome.ChannelStatus)
			}
		}

		if plan.RewardReporter {
			reporter, err := uow.tx.GetUser(ctx, flag.ReporterID)
			switch {
			case errors.Is(err, domainerrors.ErrNotFound):
				// reporter account is gone
			case err != nil:
				return nil, err
			default:
				rewarded := reporter.RewardValidReport()
				if rewarded.TrustScore != reporter.TrustScore {
					if err := uow.tx.UpdateUserTrustScore(ctx, reporter.UserID, rewarded.TrustScore); err != nil {
						return nil, err
					}
					before.ReporterTrust = &reporter.TrustScore
					after.ReporterTrust = &rewarded.TrustScore
				}
			}
		}

		if plan.NotifyOwner && !contentGone {
			if notice, ok := services.FlagOutcomeNotice(decision.Kind(), flag.TargetType, target.OwnerID, target.VideoID, target.ChannelID); ok {
				uow.notify(notice)
			}
		}

		action := entities.AuditFlagResolved
		if plan.Status == entities.FlagStatusDismissed {
			action = entities.AuditFlagDismissed
		}
		result.Flag = next
		result.Message = decisionMessage(plan.DecisionText, target.ChannelStatus, result.ChannelStatus)
		return &auditEntry{
			Action:     action,
			TargetType: entities.AuditTargetFlag,
			TargetID:   flag.FlagID,
			Before:     before,
			After:      after,
			Notes:      notes,
		}, nil
	})
	if err != nil {
		return FlagDecisionResult{}, err
	}
	result.Warnings = warnings
	return result, nil
}

func decisionMessage(text string, before entities.ChannelStatus, after entities.ChannelStatus) string {
	if after == "" || before == after {
		return text
	}
	return fmt.Sprintf("%s; channel %s", text, strings.ToLower(string(after)))
}
