package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
)

const maxStrikeExpiryDays = 3650

type IssueStrikeCommand struct {
	UserID         string
	ChannelID      string
	Type           string
	Severity       string
	Reason         string
	VideoID        string
	ExpiresInDays  int
	IdempotencyKey string
}

type UpdateStrikeCommand struct {
	StrikeID       string
	Action         string
	Severity       string
	Notes          string
	IdempotencyKey string
}

type StrikeResult struct {
	Strike        entities.Strike
	Message       string
	ActiveStrikes int
	ChannelStatus entities.ChannelStatus
	Warnings      []string
}

// IssueStrike applies a strike outside the flag and claim flows. Without a
// channel the strike lands on the user's own channel when they have one.
func (s Service) IssueStrike(ctx context.Context, actor entities.Actor, cmd IssueStrikeCommand) (result StrikeResult, err error) {
	defer func() { s.observeDecision("strike_issue", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return StrikeResult{}, err
	}
	cmd.UserID = strings.TrimSpace(cmd.UserID)
	cmd.ChannelID = strings.TrimSpace(cmd.ChannelID)
	cmd.VideoID = strings.TrimSpace(cmd.VideoID)
	cmd.Reason = strings.TrimSpace(cmd.Reason)
	if cmd.UserID == "" {
		return StrikeResult{}, domainerrors.Invalid("user_id is required")
	}
	strikeType, err := entities.ParseStrikeType(cmd.Type)
	if err != nil {
		return StrikeResult{}, err
	}
	severity, err := entities.ParseStrikeSeverity(cmd.Severity)
	if err != nil {
		return StrikeResult{}, err
	}
	if cmd.Reason == "" {
		return StrikeResult{}, domainerrors.Invalid("reason is required")
	}
	if cmd.ExpiresInDays < 0 || cmd.ExpiresInDays > maxStrikeExpiryDays {
		return StrikeResult{}, domainerrors.Invalid("expires_in_days must be between 1 and %d", maxStrikeExpiryDays)
	}
	expiresIn := s.strikeExpiry()
	if cmd.ExpiresInDays > 0 {
		expiresIn = time.Duration(cmd.ExpiresInDays) * 24 * time.Hour
	}

	requestHash := hashStrings(
		actor.UserID,
		"issue_strike",
		cmd.UserID,
		cmd.ChannelID,
		string(strikeType),
		string(severity),
		cmd.Reason,
		cmd.VideoID,
		strconv.Itoa(cmd.ExpiresInDays),
	)
	err = s.runIdempotent(
		ctx,
		cmd.IdempotencyKey,
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			var out StrikeResult
			warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
				if _, err := uow.tx.GetUser(ctx, cmd.UserID); err != nil {
					return nil, err
				}
				channelID := cmd.ChannelID
				if channelID != "" {
					channel, err := uow.tx.GetChannel(ctx, channelID)
					if err != nil {
						return nil, err
					}
					if channel.OwnerID != cmd.UserID {
						return nil, domainerrors.Invalid("channel %s is not owned by user %s", channelID, cmd.UserID)
					}
				} else {
					channel, err := uow.tx.FindChannelByOwner(ctx, cmd.UserID)
					switch {
					case err == nil:
						channelID = channel.ChannelID
					case !errors.Is(err, domainerrors.ErrNotFound):
						return nil, err
					}
				}
				if cmd.VideoID != "" {
					if _, err := uow.tx.GetVideo(ctx, cmd.VideoID); err != nil {
						return nil, err
					}
				}
				outcome, err := s.issueStrike(ctx, uow, entities.StrikeSpec{
					UserID:    cmd.UserID,
					ChannelID: channelID,
					Type:      strikeType,
					Severity:  severity,
					Reason:    cmd.Reason,
					VideoID:   cmd.VideoID,
					IssuedBy:  actor.UserID,
					ExpiresIn: expiresIn,
				}, "")
				if err != nil {
					return nil, err
				}
				out.Strike = outcome.Strike
				out.ActiveStrikes = outcome.ActiveStrikes
				out.ChannelStatus = outcome.ChannelStatus
				out.Message = decisionMessage("Strike issued", outcome.PreviousStatus, outcome.ChannelStatus)
				after := &decisionState{Strike: snapshotStrike(outcome.Strike)}
				var before *decisionState
				if channelID != "" {
					after.ChannelID, after.ChannelStatus = channelID, string(outcome.ChannelStatus)
				}
				if outcome.Transitioned {
					before = &decisionState{ChannelID: channelID, ChannelStatus: string(outcome.PreviousStatus)}
				}
				return &auditEntry{
					Action:     entities.AuditStrikeIssued,
					TargetType: entities.AuditTargetStrike,
					TargetID:   outcome.Strike.StrikeID,
					Before:     before,
					After:      after,
					Notes:      cmd.Reason,
				}, nil
			})
			if err != nil {
				return nil, err
			}
			out.Warnings = warnings
			return json.Marshal(out)
		},
	)
	if err != nil {
		return StrikeResult{}, err
	}
	ResolveLogger(s.Logger).Info("strike issued",
		"event", "moderation_strike_issued",
		"module", moduleName,
		"layer", "application",
		"strike_id", result.Strike.StrikeID,
		"user_id", result.Strike.UserID,
		"channel_id", result.Strike.ChannelID,
		"active_strikes", result.ActiveStrikes,
	)
	return result, nil
}

// UpdateStrike removes, expires or re-grades a strike. Removal and downgrades
// can lift a suspension; expiry never does.
func (s Service) UpdateStrike(ctx context.Context, actor entities.Actor, cmd UpdateStrikeCommand) (result StrikeResult, err error) {
	defer func() { s.observeDecision("strike_update", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return StrikeResult{}, err
	}
	cmd.StrikeID = strings.TrimSpace(cmd.StrikeID)
	cmd.Notes = strings.TrimSpace(cmd.Notes)
	if cmd.StrikeID == "" {
		return StrikeResult{}, domainerrors.Invalid("strike_id is required")
	}
	update, err := services.ParseStrikeUpdate(cmd.Action, cmd.Severity)
	if err != nil {
		return StrikeResult{}, err
	}

	requestHash := hashStrings(
		actor.UserID,
		"update_strike",
		cmd.StrikeID,
		string(update.Kind()),
		strings.ToUpper(strings.TrimSpace(cmd.Severity)),
		cmd.Notes,
	)
	err = s.runIdempotent(
		ctx,
		cmd.IdempotencyKey,
		requestHash,
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			var out StrikeResult
			warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
				strike, err := s.loadStrikeLocked(ctx, uow, cmd.StrikeID)
				if err != nil {
					return nil, err
				}
				if !strike.Active {
					return nil, domainerrors.Invalid("strike %s is no longer active", strike.StrikeID)
				}
				next := strike
				next.UpdatedAt = uow.now
				mode := reevaluateRestore
				var action entities.AuditAction
				switch u := update.(type) {
				case services.RemoveStrike:
					next.Active = false
					action = entities.AuditStrikeRemoved
					out.Message = "Strike removed"
				case services.ExpireStrike:
					next.Active = false
					next.ExpiresAt = uow.now
					action = entities.AuditStrikeExpired
					out.Message = "Strike expired"
				case services.ChangeStrikeSeverity:
					if u.Severity == strike.Severity {
						return nil, domainerrors.Invalid("strike already has severity %s", u.Severity)
					}
					if u.Severity.Rank() > strike.Severity.Rank() {
						mode = reevaluateEscalate
					}
					next.Severity = u.Severity
					action = entities.AuditStrikeSeverityUpdated
					out.Message = "Strike severity updated"
				}
				if err := uow.tx.UpdateStrike(ctx, next); err != nil {
					return nil, err
				}

				before := &decisionState{Strike: snapshotStrike(strike)}
				after := &decisionState{Strike: snapshotStrike(next)}
				if update.Kind() != services.StrikeUpdateExpire && next.ChannelID != "" {
					previous := uow.locked[next.ChannelID].Status
					status, count, err := s.reevaluateChannel(ctx, uow, next.ChannelID, mode)
					if err != nil {
						return nil, err
					}
					out.ChannelStatus = status
					out.ActiveStrikes = count
					out.Message = decisionMessage(out.Message, previous, status)
					before.ChannelID, before.ChannelStatus = next.ChannelID, string(previous)
					after.ChannelID, after.ChannelStatus = next.ChannelID, string(status)
				} else {
					standing, err := uow.standing(ctx, subjectOf(next))
					if err != nil {
						return nil, err
					}
					out.ActiveStrikes = standing.Strikes
					if next.ChannelID != "" {
						out.ChannelStatus = uow.locked[next.ChannelID].Status
					}
				}
				if update.Kind() == services.StrikeUpdateRemove {
					uow.notify(services.StrikeRemovedNotice(next, out.ActiveStrikes))
				}
				out.Strike = next
				return &auditEntry{
					Action:     action,
					TargetType: entities.AuditTargetStrike,
					TargetID:   strike.StrikeID,
					Before:     before,
					After:      after,
					Notes:      cmd.Notes,
				}, nil
			})
			if err != nil {
				return nil, err
			}
			out.Warnings = warnings
			return json.Marshal(out)
		},
	)
	if err != nil {
		return StrikeResult{}, err
	}
	ResolveLogger(s.Logger).Info("strike updated",
		"event", "moderation_strike_updated",
		"module", moduleName,
		"layer", "application",
		"strike_id", cmd.StrikeID,
		"action", string(update.Kind()),
		"channel_status", string(result.ChannelStatus),
	)
	return result, nil
}

// PurgeStrike hard-deletes a strike row. The audit row keeps its last state.
func (s Service) PurgeStrike(ctx context.Context, actor entities.Actor, strikeID string, notes string, idempotencyKey string) (result StrikeResult, err error) {
	defer func() { s.observeDecision("strike_purge", err) }()
	if err := s.requireAdmin(actor); err != nil {
		return StrikeResult{}, err
	}
	strikeID = strings.TrimSpace(strikeID)
	notes = strings.TrimSpace(notes)
	if strikeID == "" {
		return StrikeResult{}, domainerrors.Invalid("strike_id is required")
	}
	err = s.runIdempotent(
		ctx,
		idempotencyKey,
		hashStrings(actor.UserID, "purge_strike", strikeID, notes),
		func(raw []byte) error { return json.Unmarshal(raw, &result) },
		func(ctx context.Context) ([]byte, error) {
			var out StrikeResult
			warnings, err := s.commit(ctx, actor.UserID, func(ctx context.Context, uow *unitOfWork) (*auditEntry, error) {
				strike, err := s.loadStrikeLocked(ctx, uow, strikeID)
				if err != nil {
					return nil, err
				}
				if err := uow.tx.DeleteStrike(ctx, strikeID); err != nil {
					return nil, err
				}
				before := &decisionState{Strike: snapshotStrike(strike)}
				var after *decisionState
				out.Strike = strike
				out.Message = "Strike purged"
				if strike.ChannelID != "" {
					previous := uow.locked[strike.ChannelID].Status
					status, count, err := s.reevaluateChannel(ctx, uow, strike.ChannelID, reevaluateRestore)
					if err != nil {
						return nil, err
					}
					out.ChannelStatus = status
					out.ActiveStrikes = count
					out.Message = decisionMessage(out.Message, previous, status)
					before.ChannelID, before.ChannelStatus = strike.ChannelID, string(previous)
					after = &decisionState{ChannelID: strike.ChannelID, ChannelStatus: string(status)}
				}
				return &auditEntry{
					Action:     entities.AuditStrikePurged,
					TargetType: entities.AuditTargetStrike,
					TargetID:   strikeID,
					Before:     before,
					After:      after,
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

// loadStrikeLocked reads the strike, locks its channel and reads the strike
// again so the row seen afterwards cannot change under the lock.
func (s Service) loadStrikeLocked(ctx context.Context, uow *unitOfWork, strikeID string) (entities.Strike, error) {
	strike, err := uow.tx.GetStrike(ctx, strikeID)
	if err != nil {
		return entities.Strike{}, err
	}
	if strike.ChannelID == "" {
		return strike, nil
	}
	if _, err := uow.lockChannel(ctx, strike.ChannelID); err != nil {
		return entities.Strike{}, err
	}
	return uow.tx.GetStrike(ctx, strikeID)
}
