package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) WithinTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(gormTx{db: tx})
	})
}

func (r *Repository) ListFlags(ctx context.Context, filter ports.FlagFilter) ([]entities.Flag, error) {
	tx := r.db.WithContext(ctx).Model(&flagModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if filter.TargetType != "" {
		tx = tx.Where("target_type = ?", string(filter.TargetType))
	}

	var rows []flagModel
	if err := paginate(tx, filter.Limit, filter.Offset).
		Order("created_at ASC").
		Order("flag_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Flag, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListClaims(ctx context.Context, filter ports.ClaimFilter) ([]entities.CopyrightClaim, error) {
	tx := r.db.WithContext(ctx).Model(&claimModel{})
	if filter.Status != "" {
		tx = tx.Where("status = ?", string(filter.Status))
	}
	if strings.TrimSpace(filter.VideoID) != "" {
		tx = tx.Where("video_id = ?", strings.TrimSpace(filter.VideoID))
	}

	var rows []claimModel
	if err := paginate(tx, filter.Limit, filter.Offset).
		Order("created_at ASC").
		Order("claim_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.CopyrightClaim, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListStrikes(ctx context.Context, filter ports.StrikeFilter) ([]entities.Strike, error) {
	tx := r.db.WithContext(ctx).Model(&strikeModel{})
	if strings.TrimSpace(filter.UserID) != "" {
		tx = tx.Where("user_id = ?", strings.TrimSpace(filter.UserID))
	}
	if strings.TrimSpace(filter.ChannelID) != "" {
		tx = tx.Where("channel_id = ?", strings.TrimSpace(filter.ChannelID))
	}
	if filter.ActiveOnly {
		tx = tx.Where("active = ?", true)
	}

	var rows []strikeModel
	if err := paginate(tx, filter.Limit, filter.Offset).
		Order("created_at DESC").
		Order("strike_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Strike, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListAuditLogs(ctx context.Context, filter ports.AuditFilter) ([]entities.AuditLog, error) {
	tx := r.db.WithContext(ctx).Model(&auditLogModel{})
	if strings.TrimSpace(filter.AdminID) != "" {
		tx = tx.Where("admin_id = ?", strings.TrimSpace(filter.AdminID))
	}
	if filter.TargetType != "" {
		tx = tx.Where("target_type = ?", string(filter.TargetType))
	}
	if strings.TrimSpace(filter.TargetID) != "" {
		tx = tx.Where("target_id = ?", strings.TrimSpace(filter.TargetID))
	}

	var rows []auditLogModel
	if err := paginate(tx, filter.Limit, filter.Offset).
		Order("created_at DESC").
		Order("audit_id DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.AuditLog, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	var row idempotencyModel
	err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.IdempotencyRecord{}, false, nil
		}
		return ports.IdempotencyRecord{}, false, err
	}

	if !row.ExpiresAt.IsZero() && now.UTC().After(row.ExpiresAt.UTC()) {
		if err := r.db.WithContext(ctx).
			Where("idempotency_key = ?", strings.TrimSpace(key)).
			Delete(&idempotencyModel{}).
			Error; err != nil {
			return ports.IdempotencyRecord{}, false, err
		}
		return ports.IdempotencyRecord{}, false, nil
	}

	return ports.IdempotencyRecord{
		Key:         row.Key,
		RequestHash: row.RequestHash,
		Payload:     append([]byte(nil), row.ResponsePayload...),
		ExpiresAt:   row.ExpiresAt.UTC(),
	}, true, nil
}

func (r *Repository) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	row := idempotencyModel{
		Key:             strings.TrimSpace(record.Key),
		RequestHash:     record.RequestHash,
		ResponsePayload: append([]byte(nil), record.Payload...),
		ExpiresAt:       record.ExpiresAt.UTC(),
	}
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "idempotency_key"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return nil
	}

	var existing idempotencyModel
	if err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", row.Key).
		First(&existing).
		Error; err != nil {
		return err
	}
	if existing.RequestHash != row.RequestHash {
		return domainerrors.ErrIdempotencyConflict
	}
	if len(existing.ResponsePayload) > 0 {
		return nil
	}
	// complete a reservation made inside the decision transaction
	return r.db.WithContext(ctx).
		Model(&idempotencyModel{}).
		Where("idempotency_key = ? AND request_hash = ?", row.Key, row.RequestHash).
		Update("response_payload", row.ResponsePayload).
		Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Order("outbox_id ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	at := sentAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":  outboxStatusSent,
			"sent_at": &at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) MarkOutboxFailed(ctx context.Context, outboxID string, reason string, failedAt time.Time) error {
	at := failedAt.UTC()
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":     outboxStatusFailed,
			"last_error": reason,
			"failed_at":  &at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *Repository) DeactivateLapsedStrikes(ctx context.Context, now time.Time) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&strikeModel{}).
		Where("active = ? AND expires_at <= ?", true, now.UTC()).
		Updates(map[string]any{
			"active":     false,
			"updated_at": now.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		r.logger.Debug("lapsed strikes deactivated",
			"event", "moderation_strikes_deactivated",
			"module", "moderation-safety/moderation-service",
			"layer", "adapter",
			"count", result.RowsAffected,
		)
	}
	return int(result.RowsAffected), nil
}

func paginate(tx *gorm.DB, limit int, offset int) *gorm.DB {
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	return tx
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.Repository = (*Repository)(nil)
var _ ports.IdempotencyStore = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
var _ ports.StrikeReconciler = (*Repository)(nil)
