package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var openFlagStatuses = []string{string(entities.FlagStatusPending), string(entities.FlagStatusUnderReview)}

// gormTx runs every Tx method against one open gorm transaction.
type gormTx struct {
	db *gorm.DB
}

func (t gormTx) GetUser(ctx context.Context, userID string) (entities.User, error) {
	var row userModel
	if err := t.db.WithContext(ctx).
		Where("user_id = ?", strings.TrimSpace(userID)).
		First(&row).
		Error; err != nil {
		return entities.User{}, notFound(err, domainerrors.ErrUserNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) UpdateUserTrustScore(ctx context.Context, userID string, trustScore int) error {
	result := t.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", strings.TrimSpace(userID)).
		Update("trust_score", trustScore)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (t gormTx) GetChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	var row channelModel
	if err := t.db.WithContext(ctx).
		Where("channel_id = ?", strings.TrimSpace(channelID)).
		First(&row).
		Error; err != nil {
		return entities.Channel{}, notFound(err, domainerrors.ErrChannelNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) LockChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	var row channelModel
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("channel_id = ?", strings.TrimSpace(channelID)).
		First(&row).
		Error; err != nil {
		return entities.Channel{}, notFound(err, domainerrors.ErrChannelNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) FindChannelByOwner(ctx context.Context, ownerID string) (entities.Channel, error) {
	var row channelModel
	if err := t.db.WithContext(ctx).
		Where("owner_id = ?", strings.TrimSpace(ownerID)).
		Order("created_at ASC").
		First(&row).
		Error; err != nil {
		return entities.Channel{}, notFound(err, domainerrors.ErrChannelNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) UpdateChannelStatus(ctx context.Context, channelID string, status entities.ChannelStatus, changedAt time.Time) error {
	result := t.db.WithContext(ctx).
		Model(&channelModel{}).
		Where("channel_id = ?", strings.TrimSpace(channelID)).
		Updates(map[string]any{
			"status":            string(status),
			"status_changed_at": changedAt.UTC(),
			"updated_at":        changedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrChannelNotFound
	}
	return nil
}

func (t gormTx) GetVideo(ctx context.Context, videoID string) (entities.Video, error) {
	var row videoModel
	if err := t.db.WithContext(ctx).
		Where("video_id = ?", strings.TrimSpace(videoID)).
		First(&row).
		Error; err != nil {
		return entities.Video{}, notFound(err, domainerrors.ErrVideoNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) UpdateVideo(ctx context.Context, video entities.Video) error {
	row := videoModelFromEntity(video)
	result := t.db.WithContext(ctx).
		Model(&videoModel{}).
		Where("video_id = ?", row.VideoID).
		Updates(map[string]any{
			"visibility":     row.Visibility,
			"age_restricted": row.AgeRestricted,
			"updated_at":     row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrVideoNotFound
	}
	return nil
}

func (t gormTx) GetComment(ctx context.Context, commentID string) (entities.Comment, error) {
	var row commentModel
	if err := t.db.WithContext(ctx).
		Where("comment_id = ?", strings.TrimSpace(commentID)).
		First(&row).
		Error; err != nil {
		return entities.Comment{}, notFound(err, domainerrors.ErrCommentNotFound)
	}
	return row.toEntity(), nil
}

// DeleteCommentThread walks replies level by level and deletes the whole set at once.
func (t gormTx) DeleteCommentThread(ctx context.Context, commentID string) (int, error) {
	root, err := t.GetComment(ctx, commentID)
	if err != nil {
		return 0, err
	}
	doomed := []string{root.CommentID}
	frontier := []string{root.CommentID}
	for len(frontier) > 0 {
		var children []string
		if err := t.db.WithContext(ctx).
			Model(&commentModel{}).
			Where("parent_id IN ?", frontier).
			Pluck("comment_id", &children).
			Error; err != nil {
			return 0, err
		}
		doomed = append(doomed, children...)
		frontier = children
	}
	result := t.db.WithContext(ctx).
		Where("comment_id IN ?", doomed).
		Delete(&commentModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (t gormTx) GetFlag(ctx context.Context, flagID string) (entities.Flag, error) {
	var row flagModel
	if err := t.db.WithContext(ctx).
		Where("flag_id = ?", strings.TrimSpace(flagID)).
		First(&row).
		Error; err != nil {
		return entities.Flag{}, notFound(err, domainerrors.ErrFlagNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) FindOpenFlag(ctx context.Context, reporterID string, targetType entities.FlagTargetType, targetID string) (entities.Flag, bool, error) {
	query := t.db.WithContext(ctx).
		Where("reporter_id = ? AND target_type = ? AND status IN ?", strings.TrimSpace(reporterID), string(targetType), openFlagStatuses)
	if targetType == entities.FlagTargetComment {
		query = query.Where("comment_id = ?", strings.TrimSpace(targetID))
	} else {
		query = query.Where("video_id = ?", strings.TrimSpace(targetID))
	}
	var row flagModel
	if err := query.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Flag{}, false, nil
		}
		return entities.Flag{}, false, err
	}
	return row.toEntity(), true, nil
}

func (t gormTx) CreateFlag(ctx context.Context, flag entities.Flag) error {
	row := flagModelFromEntity(flag)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: flag %s exists", domainerrors.ErrRepositoryInvariantBroke, row.FlagID)
		}
		return err
	}
	return nil
}

func (t gormTx) TransitionFlag(ctx context.Context, next entities.Flag, expectedVersion int) error {
	result := t.db.WithContext(ctx).
		Model(&flagModel{}).
		Where("flag_id = ? AND version = ? AND status IN ?", strings.TrimSpace(next.FlagID), expectedVersion, openFlagStatuses).
		Updates(flagUpdatesFromEntity(next))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := t.GetFlag(ctx, next.FlagID); err != nil {
			return err
		}
		return domainerrors.ErrConcurrentModification
	}
	return nil
}

func (t gormTx) GetClaim(ctx context.Context, claimID string) (entities.CopyrightClaim, error) {
	var row claimModel
	if err := t.db.WithContext(ctx).
		Where("claim_id = ?", strings.TrimSpace(claimID)).
		First(&row).
		Error; err != nil {
		return entities.CopyrightClaim{}, notFound(err, domainerrors.ErrClaimNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) TransitionClaim(ctx context.Context, next entities.CopyrightClaim, expectedVersion int, from []entities.ClaimStatus) error {
	statuses := make([]string, 0, len(from))
	for _, status := range from {
		statuses = append(statuses, string(status))
	}
	result := t.db.WithContext(ctx).
		Model(&claimModel{}).
		Where("claim_id = ? AND version = ? AND status IN ?", strings.TrimSpace(next.ClaimID), expectedVersion, statuses).
		Updates(claimUpdatesFromEntity(next))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := t.GetClaim(ctx, next.ClaimID); err != nil {
			return err
		}
		return domainerrors.ErrConcurrentModification
	}
	return nil
}

func (t gormTx) CreateStrike(ctx context.Context, strike entities.Strike) error {
	row := strikeModelFromEntity(strike)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: strike %s exists", domainerrors.ErrRepositoryInvariantBroke, row.StrikeID)
		}
		return err
	}
	return nil
}

func (t gormTx) GetStrike(ctx context.Context, strikeID string) (entities.Strike, error) {
	var row strikeModel
	if err := t.db.WithContext(ctx).
		Where("strike_id = ?", strings.TrimSpace(strikeID)).
		First(&row).
		Error; err != nil {
		return entities.Strike{}, notFound(err, domainerrors.ErrStrikeNotFound)
	}
	return row.toEntity(), nil
}

func (t gormTx) UpdateStrike(ctx context.Context, strike entities.Strike) error {
	row := strikeModelFromEntity(strike)
	result := t.db.WithContext(ctx).
		Model(&strikeModel{}).
		Where("strike_id = ?", row.StrikeID).
		Updates(map[string]any{
			"severity":   row.Severity,
			"active":     row.Active,
			"expires_at": row.ExpiresAt,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStrikeNotFound
	}
	return nil
}

func (t gormTx) DeleteStrike(ctx context.Context, strikeID string) error {
	result := t.db.WithContext(ctx).
		Where("strike_id = ?", strings.TrimSpace(strikeID)).
		Delete(&strikeModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrStrikeNotFound
	}
	return nil
}

func (t gormTx) ListActiveStrikes(ctx context.Context, subject ports.StrikeSubject) ([]entities.Strike, error) {
	query := t.db.WithContext(ctx).Where("active = ?", true)
	switch {
	case strings.TrimSpace(subject.ChannelID) != "":
		query = query.Where("channel_id = ?", strings.TrimSpace(subject.ChannelID))
	case strings.TrimSpace(subject.UserID) != "":
		query = query.Where("user_id = ?", strings.TrimSpace(subject.UserID))
	default:
		return []entities.Strike{}, nil
	}
	var rows []strikeModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.Strike, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ReserveIdempotencyKey inserts a payload-less record. A concurrent holder of
// the same key blocks the insert until it commits or rolls back.
func (t gormTx) ReserveIdempotencyKey(ctx context.Context, record ports.IdempotencyRecord, now time.Time) error {
	key := strings.TrimSpace(record.Key)
	if err := t.db.WithContext(ctx).
		Where("idempotency_key = ? AND expires_at < ?", key, now.UTC()).
		Delete(&idempotencyModel{}).
		Error; err != nil {
		return err
	}
	row := idempotencyModel{
		Key:         key,
		RequestHash: record.RequestHash,
		ExpiresAt:   record.ExpiresAt.UTC(),
	}
	result := t.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}
	var existing idempotencyModel
	if err := t.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&existing).
		Error; err != nil {
		return err
	}
	if existing.RequestHash != record.RequestHash {
		return domainerrors.ErrIdempotencyConflict
	}
	return domainerrors.ErrIdempotencyKeyInUse
}

func (t gormTx) AppendAuditLog(ctx context.Context, entry entities.AuditLog) error {
	row := auditLogModelFromEntity(entry)
	return t.db.WithContext(ctx).Create(&row).Error
}

func (t gormTx) CreateNotification(ctx context.Context, notification entities.Notification, message ports.OutboxMessage) error {
	row := notificationModelFromEntity(notification)
	if err := t.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	outbox := outboxModel{
		OutboxID:     strings.TrimSpace(message.OutboxID),
		EventType:    strings.TrimSpace(message.EventType),
		PartitionKey: strings.TrimSpace(message.PartitionKey),
		Payload:      append([]byte(nil), message.Payload...),
		Status:       outboxStatusPending,
		CreatedAt:    message.CreatedAt.UTC(),
	}
	if err := t.db.WithContext(ctx).Create(&outbox).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: outbox %s exists", domainerrors.ErrRepositoryInvariantBroke, outbox.OutboxID)
		}
		return err
	}
	return nil
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

var _ ports.Tx = gormTx{}
