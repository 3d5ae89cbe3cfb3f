package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

type SubmitFlagCommand struct {
	TargetType string
	VideoID    string
	CommentID  string
	Reason     string
	Comment    string
}

type FlagResult struct {
	Flag     entities.Flag
	Message  string
	Warnings []string
}

// SubmitFlag records a user report. It is not an admin operation and is not audited.
func (s Service) SubmitFlag(ctx context.Context, actor entities.Actor, cmd SubmitFlagCommand) (FlagResult, error) {
	reporterID := strings.TrimSpace(actor.UserID)
	if reporterID == "" {
		return FlagResult{}, domainerrors.ErrUnauthorized
	}
	flagID, err := s.newID(ctx)
	if err != nil {
		return FlagResult{}, err
	}
	flag, err := entities.NewFlag(
		flagID,
		reporterID,
		entities.FlagTargetType(strings.ToUpper(strings.TrimSpace(cmd.TargetType))),
		cmd.VideoID,
		cmd.CommentID,
		entities.FlagReason(strings.ToUpper(strings.TrimSpace(cmd.Reason))),
		cmd.Comment,
		s.now(),
	)
	if err != nil {
		return FlagResult{}, err
	}

	warnings, err := s.commit(ctx, "", func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
		if _, err := uow.tx.GetUser(ctx, reporterID); err != nil {
			return nil, err
		}
		if _, err := resolveFlagTarget(ctx, uow.tx, flag); err != nil {
			return nil, err
		}
		if _, open, err := uow.tx.FindOpenFlag(ctx, reporterID, flag.TargetType, flag.TargetID()); err != nil {
			return nil, err
		} else if open {
			return nil, domainerrors.ErrDuplicateFlag
		}
		return nil, uow.tx.CreateFlag(ctx, flag)
	})
	if err != nil {
		return FlagResult{}, err
	}
	ResolveLogger(s.Logger).Info("flag submitted",
		"event", "moderation_flag_submitted",
		"module", moduleName,
		"layer", "application",
		"flag_id", flag.FlagID,
		"target_type", string(flag.TargetType),
		"target_id", flag.TargetID(),
	)
	return FlagResult{Flag: flag, Message: "Report submitted", Warnings: warnings}, nil
}

// StartFlagReview claims a pending flag for the acting admin.
func (s Service) StartFlagReview(ctx context.Context, actor entities.Actor, flagID string, idempotencyKey string) (result FlagResult, err error) {
	defer func() { s.observeDecision("flag_review", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return FlagResult{}, err
	}
	flagID = strings.TrimSpace(flagID)
	if flagID == "" {
		return FlagResult{}, domainerrors.Invalid("flag_id is required")
	}
	err = s.runIdempotent(
		ctx,
		idempotencyKey,
		hashStrings(actor.UserID, "start_flag_review", flagID),
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			var out FlagResult
			warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
				flag, err := uow.tx.GetFlag(ctx, flagID)
				if err != nil {
					return nil, err
				}
				if flag.Status.IsTerminal() {
					return nil, domainerrors.ErrAlreadyResolved
				}
				if flag.Status != entities.FlagStatusPending {
					return nil, domainerrors.Invalid("flag is already under review")
				}
				reviewedAt := uow.now
				next := flag
				next.Status = entities.FlagStatusUnderReview
				next.ReviewedBy = actor.UserID
				next.ReviewedAt = &reviewedAt
				next.Version = flag.Version + 1
				next.UpdatedAt = uow.now
				if err := uow.tx.TransitionFlag(ctx, next, flag.Version); err != nil {
					return nil, flagTransitionError(ctx, uow.tx, flagID, err)
				}
				out.Flag = next
				out.Message = "Review started"
				return &auditEntry{
					Action:     entities.AuditFlagReviewStarted,
					TargetType: entities.AuditTargetFlag,
					TargetID:   flagID,
					Before:     &decisionState{Flag: snapshotFlag(flag)},
					After:      &decisionState{Flag: snapshotFlag(next)},
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

// flagTarget is the content a flag points at and the account that owns it.
type flagTarget struct {
	Video         *entities.Video
	Comment       *entities.Comment
	OwnerID       string
	ChannelID     string
	ChannelStatus entities.ChannelStatus
	VideoID       string
}

func resolveFlagTarget(ctx context.Context, tx ports.Tx, flag entities.Flag) (flagTarget, error) {
	switch flag.TargetType {
	case entities.FlagTargetVideo:
		video, err := tx.GetVideo(ctx, flag.VideoID)
		if err != nil {
			return flagTarget{}, err
		}
		channel, err := tx.GetChannel(ctx, video.ChannelID)
		if err != nil {
			return flagTarget{}, err
		}
		return flagTarget{
			Video:         &video,
			OwnerID:       channel.OwnerID,
			ChannelID:     channel.ChannelID,
			ChannelStatus: channel.Status,
			VideoID:       video.VideoID,
		}, nil
	case entities.FlagTargetComment:
		comment, err := tx.GetComment(ctx, flag.CommentID)
		if err != nil {
			return flagTarget{}, err
		}
		target := flagTarget{Comment: &comment, OwnerID: comment.AuthorID, VideoID: comment.VideoID}
		channel, err := tx.FindChannelByOwner(ctx, comment.AuthorID)
		switch {
		case err == nil:
			target.ChannelID = channel.ChannelID
			target.ChannelStatus = channel.Status
		case !errors.Is(err, domainerrors.ErrNotFound):
			return flagTarget{}, err
		}
		return target, nil
	}
	return flagTarget{}, domainerrors.Invalid("unknown flag target type %q", flag.TargetType)
}

// targetRemoved reports a flag whose video or comment no longer exists, for
// example a reply deleted with its thread. Such flags stay decidable.
func targetRemoved(err error) bool {
	return errors.Is(err, domainerrors.ErrVideoNotFound) || errors.Is(err, domainerrors.ErrCommentNotFound)
}

// flagTransitionError turns a lost conditional update into AlreadyResolved when
// the winner already closed the flag.
func flagTransitionError(ctx context.Context, tx ports.Tx, flagID string, err error) error {
	if !errors.Is(err, domainerrors.ErrConcurrentModification) {
		return err
	}
	current, loadErr := tx.GetFlag(ctx, flagID)
	if loadErr == nil && current.Status.IsTerminal() {
		return domainerrors.ErrAlreadyResolved
	}
	return err
}
