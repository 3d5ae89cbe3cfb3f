package application

import (
	"context"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizePage(limit int, offset int) (int, int, error) {
	if offset < 0 {
		return 0, 0, domainerrors.Invalid("offset must not be negative")
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return limit, offset, nil
}

func (s Service) ListFlags(ctx context.Context, actor entities.Actor, filter ports.FlagFilter) ([]entities.Flag, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	filter.Status = entities.FlagStatus(strings.ToUpper(strings.TrimSpace(string(filter.Status))))
	switch filter.Status {
	case "", entities.FlagStatusPending, entities.FlagStatusUnderReview, entities.FlagStatusResolved, entities.FlagStatusDismissed:
	default:
		return nil, domainerrors.Invalid("unknown flag status %q", filter.Status)
	}
	filter.TargetType = entities.FlagTargetType(strings.ToUpper(strings.TrimSpace(string(filter.TargetType))))
	switch filter.TargetType {
	case "", entities.FlagTargetVideo, entities.FlagTargetComment:
	default:
		return nil, domainerrors.Invalid("unknown target type %q", filter.TargetType)
	}
	var err error
	if filter.Limit, filter.Offset, err = normalizePage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	return s.Repo.ListFlags(ctx, filter)
}

func (s Service) ListClaims(ctx context.Context, actor entities.Actor, filter ports.ClaimFilter) ([]entities.CopyrightClaim, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	filter.Status = entities.ClaimStatus(strings.ToUpper(strings.TrimSpace(string(filter.Status))))
	switch filter.Status {
	case "", entities.ClaimStatusPending, entities.ClaimStatusUpheld, entities.ClaimStatusRejected,
		entities.ClaimStatusCounterNoticed, entities.ClaimStatusAppealed:
	default:
		return nil, domainerrors.Invalid("unknown claim status %q", filter.Status)
	}
	filter.VideoID = strings.TrimSpace(filter.VideoID)
	var err error
	if filter.Limit, filter.Offset, err = normalizePage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	return s.Repo.ListClaims(ctx, filter)
}

func (s Service) ListStrikes(ctx context.Context, actor entities.Actor, filter ports.StrikeFilter) ([]entities.Strike, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	filter.UserID = strings.TrimSpace(filter.UserID)
	filter.ChannelID = strings.TrimSpace(filter.ChannelID)
	var err error
	if filter.Limit, filter.Offset, err = normalizePage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	strikes, err := s.Repo.ListStrikes(ctx, filter)
	if err != nil || !filter.ActiveOnly {
		return strikes, err
	}
	// rows may still say active after their expiry passed
	now := s.now()
	effective := strikes[:0]
	for _, strike := range strikes {
		if strike.IsEffective(now) {
			effective = append(effective, strike)
		}
	}
	return effective, nil
}

func (s Service) ListAuditLogs(ctx context.Context, actor entities.Actor, filter ports.AuditFilter) ([]entities.AuditLog, error) {
	if err := s.requireAdmin(actor); err != nil {
		return nil, err
	}
	filter.AdminID = strings.TrimSpace(filter.AdminID)
	filter.TargetID = strings.TrimSpace(filter.TargetID)
	filter.TargetType = entities.AuditTargetType(strings.ToUpper(strings.TrimSpace(string(filter.TargetType))))
	var err error
	if filter.Limit, filter.Offset, err = normalizePage(filter.Limit, filter.Offset); err != nil {
		return nil, err
	}
	return s.Repo.ListAuditLogs(ctx, filter)
}

type ChannelStanding struct {
	Channel       entities.Channel
	Standing      services.Standing
	ActiveStrikes []entities.Strike
	EvaluatedAt   time.Time
}

// GetChannelStanding recomputes the channel's effective strikes from storage.
func (s Service) GetChannelStanding(ctx context.Context, actor entities.Actor, channelID string) (ChannelStanding, error) {
	if err := s.requireAdmin(actor); err != nil {
		return ChannelStanding{}, err
	}
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return ChannelStanding{}, domainerrors.Invalid("channel_id is required")
	}
	return s.channelStanding(ctx, channelID)
}

func (s Service) channelStanding(ctx context.Context, channelID string) (ChannelStanding, error) {
	if s.Repo == nil {
		return ChannelStanding{}, domainerrors.ErrDependencyUnavailable
	}
	now := s.now()
	var out ChannelStanding
	err := s.Repo.WithinTx(ctx, func(tx ports.Tx) error {
		channel, err := tx.GetChannel(ctx, channelID)
		if err != nil {
			return err
		}
		strikes, err := tx.ListActiveStrikes(ctx, ports.StrikeSubject{ChannelID: channelID})
		if err != nil {
			return err
		}
		effective := make([]entities.Strike, 0, len(strikes))
		for _, strike := range strikes {
			if strike.IsEffective(now) {
				effective = append(effective, strike)
			}
		}
		out = ChannelStanding{
			Channel:       channel,
			Standing:      services.ComputeStanding(strikes, now),
			ActiveStrikes: effective,
			EvaluatedAt:   now,
		}
		return nil
	})
	return out, err
}

// ChannelStandingForOperator is the unauthenticated read used by operator tooling.
func (s Service) ChannelStandingForOperator(ctx context.Context, channelID string) (ChannelStanding, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return ChannelStanding{}, domainerrors.Invalid("channel_id is required")
	}
	return s.channelStanding(ctx, channelID)
}
