package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
)

type ClaimResult struct {
	Claim    entities.CopyrightClaim
	Message  string
	Warnings []string
}

type claimTarget struct {
	Video   entities.Video
	Channel entities.Channel
}

func resolveClaimTarget(ctx context.Context, uow *unitOfWork, claim entities.CopyrightClaim) (claimTarget, error) {
	video, err := uow.tx.GetVideo(ctx, claim.VideoID)
	if err != nil {
		return claimTarget{}, err
	}
	channel, err := uow.tx.GetChannel(ctx, video.ChannelID)
	if err != nil {
		return claimTarget{}, err
	}
	return claimTarget{Video: video, Channel: channel}, nil
}

// claimTransitionError turns a lost conditional update into AlreadyDecided
// when the winner already closed the claim.
func claimTransitionError(ctx context.Context, uow *unitOfWork, claimID string, err error) error {
	if !errors.Is(err, domainerrors.ErrConcurrentModification) {
		return err
	}
	current, loadErr := uow.tx.GetClaim(ctx, claimID)
	if loadErr == nil && !current.Status.IsDecidable() {
		return domainerrors.ErrAlreadyDecided
	}
	return err
}

// SubmitCounterNotice lets the owner of the claimed video dispute a pending claim.
func (s Service) SubmitCounterNotice(ctx context.Context, actor entities.Actor, claimID string, text string) (ClaimResult, error) {
	return s.ownerClaimTransition(ctx, actor, claimID, func(claim entities.CopyrightClaim, uow *unitOfWork) (entities.CopyrightClaim, string, error) {
		text = strings.TrimSpace(text)
		if text == "" {
			return entities.CopyrightClaim{}, "", domainerrors.Invalid("counter_notice is required")
		}
		if !claim.Status.IsDecidable() {
			return entities.CopyrightClaim{}, "", domainerrors.ErrAlreadyDecided
		}
		if claim.Status != entities.ClaimStatusPending {
			return entities.CopyrightClaim{}, "", domainerrors.Invalid("counter-notice is only accepted on pending claims")
		}
		filedAt := uow.now
		claim.Status = entities.ClaimStatusCounterNoticed
		claim.CounterNotice = text
		claim.CounterNoticedAt = &filedAt
		uow.notify(services.CounterNoticeFiledNotice(claim))
		return claim, "Counter-notice submitted", nil
	})
}

// SubmitAppeal reopens an upheld claim for another admin decision.
func (s Service) SubmitAppeal(ctx context.Context, actor entities.Actor, claimID string) (ClaimResult, error) {
	return s.ownerClaimTransition(ctx, actor, claimID, func(claim entities.CopyrightClaim, uow *unitOfWork) (entities.CopyrightClaim, string, error) {
		if claim.Status != entities.ClaimStatusUpheld {
			return entities.CopyrightClaim{}, "", domainerrors.Invalid("only upheld claims can be appealed")
		}
		claim.Status = entities.ClaimStatusAppealed
		return claim, "Appeal submitted", nil
	})
}

func (s Service) ownerClaimTransition(
	ctx context.Context,
	actor entities.Actor,
	claimID string,
	transition func(claim entities.CopyrightClaim, uow *unitOfWork) (entities.CopyrightClaim, string, error),
) (ClaimResult, error) {
	ownerID := strings.TrimSpace(actor.UserID)
	if ownerID == "" {
		return ClaimResult{}, domainerrors.ErrUnauthorized
	}
	claimID = strings.TrimSpace(claimID)
	if claimID == "" {
		return ClaimResult{}, domainerrors.Invalid("claim_id is required")
	}
	var result ClaimResult
	warnings, err := s.commit(ctx, "", func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
		claim, err := uow.tx.GetClaim(ctx, claimID)
		if err != nil {
			return nil, err
		}
		target, err := resolveClaimTarget(ctx, uow, claim)
		if err != nil {
			return nil, err
		}
		if target.Channel.OwnerID != ownerID {
			return nil, domainerrors.ErrForbidden
		}
		next, message, err := transition(claim, uow)
		if err != nil {
			return nil, err
		}
		next.Version = claim.Version + 1
		next.UpdatedAt = uow.now
		if err := uow.tx.TransitionClaim(ctx, next, claim.Version, []entities.ClaimStatus{claim.Status}); err != nil {
			return nil, claimTransitionError(ctx, uow, claimID, err)
		}
		result.Claim = next
		result.Message = message
		return nil, nil
	})
	if err != nil {
		return ClaimResult{}, err
	}
	result.Warnings = warnings
	ResolveLogger(s.Logger).Info("copyright claim updated by owner",
		"event", "moderation_claim_owner_transition",
		"module", moduleName,
		"layer", "application",
		"claim_id", claimID,
		"status", string(result.Claim.Status),
	)
	return result, nil
}

// BlockClaimedVideo makes the claimed video private while the claim is still open.
func (s Service) BlockClaimedVideo(ctx context.Context, actor entities.Actor, claimID string, notes string, idempotencyKey string) (result ClaimResult, err error) {
	defer func() { s.observeDecision("copyright_block", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return ClaimResult{}, err
	}
	claimID = strings.TrimSpace(claimID)
	notes = strings.TrimSpace(notes)
	if claimID == "" {
		return ClaimResult{}, domainerrors.Invalid("claim_id is required")
	}
	err = s.runIdempotent(
		ctx,
		idempotencyKey,
		hashStrings(actor.UserID, "block_claimed_video", claimID, notes),
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			var out ClaimResult
			warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
				claim, err := uow.tx.GetClaim(ctx, claimID)
				if err != nil {
					return nil, err
				}
				if !claim.Status.IsDecidable() {
					return nil, domainerrors.ErrAlreadyDecided
				}
				if claim.VideoBlocked {
					return nil, domainerrors.Invalid("video is already blocked for this claim")
				}
				target, err := resolveClaimTarget(ctx, uow, claim)
				if err != nil {
					return nil, err
				}
				if target.Video.Visibility == entities.VisibilityPrivate {
					return nil, domainerrors.Invalid("video %s is already private", target.Video.VideoID)
				}
				next := claim
				next.VideoBlocked = true
				next.Version = claim.Version + 1
				next.UpdatedAt = uow.now
				if err := uow.tx.TransitionClaim(ctx, next, claim.Version, entities.DecidableClaimStatuses); err != nil {
					return nil, claimTransitionError(ctx, uow, claimID, err)
				}
				video := target.Video
				video.Visibility = entities.VisibilityPrivate
				video.UpdatedAt = uow.now
				if err := uow.tx.UpdateVideo(ctx, video); err != nil {
					return nil, err
				}
				uow.notify(services.VideoBlockedNotice(target.Channel.OwnerID, video.VideoID, target.Channel.ChannelID))
				out.Claim = next
				out.Message = "Video blocked pending review"
				return &auditEntry{
					Action:     entities.AuditClaimVideoBlocked,
					TargetType: entities.AuditTargetClaim,
					TargetID:   claimID,
					Before:     &decisionState{Claim: snapshotClaim(claim), Video: snapshotVideo(target.Video)},
					After:      &decisionState{Claim: snapshotClaim(next), Video: snapshotVideo(video)},
					Notes:      notes,
				}, nil
			})
			if err != nil {
				return nil, err
			}
			out.Warnings = warnings
			return json.Marshal(out)
		},
	)
	return result, err
}
