package application

import (
	"context"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

type strikeOutcome struct {
	Strike        entities.Strike
	ActiveStrikes int
	ChannelStatus entities.ChannelStatus
	// PreviousStatus is the channel status read under the channel lock.
	PreviousStatus entities.ChannelStatus
	Transitioned   bool
}

func (u *unitOfWork) lockChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	if channel, ok := u.locked[channelID]; ok {
		return channel, nil
	}
	channel, err := u.tx.LockChannel(ctx, channelID)
	if err != nil {
		return entities.Channel{}, err
	}
	u.locked[channelID] = channel
	return channel, nil
}

func (u *unitOfWork) setChannelStatus(ctx context.Context, channel entities.Channel, next entities.ChannelStatus) (entities.Channel, error) {
	if next == channel.Status {
		return channel, nil
	}
	if err := u.tx.UpdateChannelStatus(ctx, channel.ChannelID, next, u.now); err != nil {
		return entities.Channel{}, err
	}
	if notice, ok := services.ChannelStatusNotice(channel, channel.Status, next); ok {
		u.notify(notice)
	}
	u.transitions = append(u.transitions, channelTransition{From: channel.Status, To: next})
	channel.Status = next
	channel.StatusChangedAt = u.now
	channel.UpdatedAt = u.now
	u.locked[channel.ChannelID] = channel
	return channel, nil
}

func (u *unitOfWork) standing(ctx context.Context, subject ports.StrikeSubject) (services.Standing, error) {
	strikes, err := u.tx.ListActiveStrikes(ctx, subject)
	if err != nil {
		return services.Standing{}, err
	}
	return services.ComputeStanding(strikes, u.now), nil
}

func subjectOf(strike entities.Strike) ports.StrikeSubject {
	if strike.ChannelID != "" {
		return ports.StrikeSubject{ChannelID: strike.ChannelID}
	}
	return ports.StrikeSubject{UserID: strike.UserID}
}

// issueStrike locks the channel before the strike row is written so that
// concurrent issuance against one channel counts serially. The strike notice
// is queued with noticeContext ahead of any channel status notice.
func (s Service) issueStrike(ctx context.Context, uow *unitOfWork, spec entities.StrikeSpec, noticeContext string) (strikeOutcome, error) {
	var channel entities.Channel
	if spec.ChannelID != "" {
		locked, err := uow.lockChannel(ctx, spec.ChannelID)
		if err != nil {
			return strikeOutcome{}, err
		}
		channel = locked
	}
	strikeID, err := s.newID(ctx)
	if err != nil {
		return strikeOutcome{}, err
	}
	strike, err := entities.NewStrike(strikeID, spec, uow.now)
	if err != nil {
		return strikeOutcome{}, err
	}
	if err := uow.tx.CreateStrike(ctx, strike); err != nil {
		return strikeOutcome{}, err
	}
	uow.issued = append(uow.issued, strike)

	standing, err := uow.standing(ctx, subjectOf(strike))
	if err != nil {
		return strikeOutcome{}, err
	}
	outcome := strikeOutcome{Strike: strike, ActiveStrikes: standing.Strikes}
	uow.notify(services.StrikeIssuedNotice(strike, standing.Strikes, noticeContext))
	if spec.ChannelID == "" {
		return outcome, nil
	}
	previous := channel.Status
	channel, err = uow.setChannelStatus(ctx, channel, s.Policy.Escalate(channel.Status, standing))
	if err != nil {
		return strikeOutcome{}, err
	}
	outcome.ChannelStatus = channel.Status
	outcome.PreviousStatus = previous
	outcome.Transitioned = channel.Status != previous
	return outcome, nil
}

type reevaluation int

const (
	reevaluateRestore reevaluation = iota
	reevaluateEscalate
)

// reevaluateChannel applies the threshold policy to a channel whose strikes
// changed. It returns the resulting status and the effective STRIKE count.
func (s Service) reevaluateChannel(ctx context.Context, uow *unitOfWork, channelID string, mode reevaluation) (entities.ChannelStatus, int, error) {
	if channelID == "" {
		return "", 0, nil
	}
	channel, err := uow.lockChannel(ctx, channelID)
	if err != nil {
		return "", 0, err
	}
	standing, err := uow.standing(ctx, ports.StrikeSubject{ChannelID: channelID})
	if err != nil {
		return "", 0, err
	}
	next := s.Policy.Restore(channel.Status, standing)
	if mode == reevaluateEscalate {
		next = s.Policy.Escalate(channel.Status, standing)
	}
	channel, err = uow.setChannelStatus(ctx, channel, next)
	if err != nil {
		return "", 0, err
	}
	return channel.Status, standing.Strikes, nil
}
