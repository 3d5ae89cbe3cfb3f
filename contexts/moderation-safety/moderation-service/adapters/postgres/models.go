package postgresadapter

import (
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"

	"gorm.io/gorm"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
	outboxStatusFailed  = "failed"
)

// Migrate creates or updates every table the repository reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&channelModel{},
		&videoModel{},
		&commentModel{},
		&flagModel{},
		&claimModel{},
		&strikeModel{},
		&notificationModel{},
		&auditLogModel{},
		&idempotencyModel{},
		&outboxModel{},
	)
}

type userModel struct {
	UserID     string    `gorm:"column:user_id;primaryKey"`
	Username   string    `gorm:"column:username"`
	Role       string    `gorm:"column:role"`
	TrustScore int       `gorm:"column:trust_score"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(item entities.User) userModel {
	return userModel{
		UserID:     strings.TrimSpace(item.UserID),
		Username:   strings.TrimSpace(item.Username),
		Role:       string(item.Role),
		TrustScore: item.TrustScore,
		CreatedAt:  item.CreatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		UserID:     m.UserID,
		Username:   m.Username,
		Role:       entities.Role(m.Role),
		TrustScore: m.TrustScore,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type channelModel struct {
	ChannelID       string    `gorm:"column:channel_id;primaryKey"`
	OwnerID         string    `gorm:"column:owner_id;index"`
	Name            string    `gorm:"column:name"`
	Status          string    `gorm:"column:status"`
	StatusChangedAt time.Time `gorm:"column:status_changed_at"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (channelModel) TableName() string {
	return "channels"
}

func channelModelFromEntity(item entities.Channel) channelModel {
	status := item.Status
	if status == "" {
		status = entities.ChannelStatusActive
	}
	return channelModel{
		ChannelID:       strings.TrimSpace(item.ChannelID),
		OwnerID:         strings.TrimSpace(item.OwnerID),
		Name:            strings.TrimSpace(item.Name),
		Status:          string(status),
		StatusChangedAt: item.StatusChangedAt.UTC(),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}
}

func (m channelModel) toEntity() entities.Channel {
	return entities.Channel{
		ChannelID:       m.ChannelID,
		OwnerID:         m.OwnerID,
		Name:            m.Name,
		Status:          entities.ChannelStatus(m.Status),
		StatusChangedAt: m.StatusChangedAt.UTC(),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}
}

type videoModel struct {
	VideoID       string    `gorm:"column:video_id;primaryKey"`
	ChannelID     string    `gorm:"column:channel_id;index"`
	Title         string    `gorm:"column:title"`
	Visibility    string    `gorm:"column:visibility"`
	AgeRestricted bool      `gorm:"column:age_restricted"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (videoModel) TableName() string {
	return "videos"
}

func videoModelFromEntity(item entities.Video) videoModel {
	visibility := item.Visibility
	if visibility == "" {
		visibility = entities.VisibilityPublic
	}
	return videoModel{
		VideoID:       strings.TrimSpace(item.VideoID),
		ChannelID:     strings.TrimSpace(item.ChannelID),
		Title:         strings.TrimSpace(item.Title),
		Visibility:    string(visibility),
		AgeRestricted: item.AgeRestricted,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m videoModel) toEntity() entities.Video {
	return entities.Video{
		VideoID:       m.VideoID,
		ChannelID:     m.ChannelID,
		Title:         m.Title,
		Visibility:    entities.Visibility(m.Visibility),
		AgeRestricted: m.AgeRestricted,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

type commentModel struct {
	CommentID string    `gorm:"column:comment_id;primaryKey"`
	VideoID   string    `gorm:"column:video_id;index"`
	AuthorID  string    `gorm:"column:author_id"`
	ParentID  string    `gorm:"column:parent_id;index"`
	Body      string    `gorm:"column:body"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (commentModel) TableName() string {
	return "comments"
}

func commentModelFromEntity(item entities.Comment) commentModel {
	return commentModel{
		CommentID: strings.TrimSpace(item.CommentID),
		VideoID:   strings.TrimSpace(item.VideoID),
		AuthorID:  strings.TrimSpace(item.AuthorID),
		ParentID:  strings.TrimSpace(item.ParentID),
		Body:      item.Body,
		CreatedAt: item.CreatedAt.UTC(),
	}
}

func (m commentModel) toEntity() entities.Comment {
	return entities.Comment{
		CommentID: m.CommentID,
		VideoID:   m.VideoID,
		AuthorID:  m.AuthorID,
		ParentID:  m.ParentID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type flagModel struct {
	FlagID     string     `gorm:"column:flag_id;primaryKey"`
	ReporterID string     `gorm:"column:reporter_id;index:idx_moderation_flags_reporter"`
	TargetType string     `gorm:"column:target_type"`
	VideoID    string     `gorm:"column:video_id"`
	CommentID  string     `gorm:"column:comment_id"`
	Reason     string     `gorm:"column:reason"`
	Comment    string     `gorm:"column:comment"`
	Status     string     `gorm:"column:status;index"`
	Decision   string     `gorm:"column:decision"`
	ReviewedBy string     `gorm:"column:reviewed_by"`
	ReviewedAt *time.Time `gorm:"column:reviewed_at"`
	Notes      string     `gorm:"column:notes"`
	Version    int        `gorm:"column:version"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
}

func (flagModel) TableName() string {
	return "moderation_flags"
}

func flagModelFromEntity(item entities.Flag) flagModel {
	return flagModel{
		FlagID:     strings.TrimSpace(item.FlagID),
		ReporterID: strings.TrimSpace(item.ReporterID),
		TargetType: string(item.TargetType),
		VideoID:    strings.TrimSpace(item.VideoID),
		CommentID:  strings.TrimSpace(item.CommentID),
		Reason:     string(item.Reason),
		Comment:    strings.TrimSpace(item.Comment),
		Status:     string(item.Status),
		Decision:   item.Decision,
		ReviewedBy: strings.TrimSpace(item.ReviewedBy),
		ReviewedAt: normalizeOptionalTime(item.ReviewedAt),
		Notes:      item.Notes,
		Version:    item.Version,
		CreatedAt:  item.CreatedAt.UTC(),
		UpdatedAt:  item.UpdatedAt.UTC(),
	}
}

func flagUpdatesFromEntity(item entities.Flag) map[string]any {
	row := flagModelFromEntity(item)
	return map[string]any{
		"status":      row.Status,
		"decision":    row.Decision,
		"reviewed_by": row.ReviewedBy,
		"reviewed_at": row.ReviewedAt,
		"notes":       row.Notes,
		"version":     row.Version,
		"updated_at":  row.UpdatedAt,
	}
}

func (m flagModel) toEntity() entities.Flag {
	return entities.Flag{
		FlagID:     m.FlagID,
		ReporterID: m.ReporterID,
		TargetType: entities.FlagTargetType(m.TargetType),
		VideoID:    m.VideoID,
		CommentID:  m.CommentID,
		Reason:     entities.FlagReason(m.Reason),
		Comment:    m.Comment,
		Status:     entities.FlagStatus(m.Status),
		Decision:   m.Decision,
		ReviewedBy: m.ReviewedBy,
		ReviewedAt: normalizeOptionalTime(m.ReviewedAt),
		Notes:      m.Notes,
		Version:    m.Version,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type claimModel struct {
	ClaimID          string     `gorm:"column:claim_id;primaryKey"`
	VideoID          string     `gorm:"column:video_id;index"`
	RightsHolderID   string     `gorm:"column:rights_holder_id"`
	ClaimType        string     `gorm:"column:claim_type"`
	Description      string     `gorm:"column:description"`
	Status           string     `gorm:"column:status;index"`
	Decision         string     `gorm:"column:decision"`
	DecidedBy        string     `gorm:"column:decided_by"`
	DecidedAt        *time.Time `gorm:"column:decided_at"`
	CounterNotice    string     `gorm:"column:counter_notice"`
	CounterNoticedAt *time.Time `gorm:"column:counter_noticed_at"`
	VideoBlocked     bool       `gorm:"column:video_blocked"`
	Version          int        `gorm:"column:version"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (claimModel) TableName() string {
	return "copyright_claims"
}

func claimModelFromEntity(item entities.CopyrightClaim) claimModel {
	status := item.Status
	if status == "" {
		status = entities.ClaimStatusPending
	}
	return claimModel{
		ClaimID:          strings.TrimSpace(item.ClaimID),
		VideoID:          strings.TrimSpace(item.VideoID),
		RightsHolderID:   strings.TrimSpace(item.RightsHolderID),
		ClaimType:        string(item.ClaimType),
		Description:      item.Description,
		Status:           string(status),
		Decision:         item.Decision,
		DecidedBy:        strings.TrimSpace(item.DecidedBy),
		DecidedAt:        normalizeOptionalTime(item.DecidedAt),
		CounterNotice:    item.CounterNotice,
		CounterNoticedAt: normalizeOptionalTime(item.CounterNoticedAt),
		VideoBlocked:     item.VideoBlocked,
		Version:          item.Version,
		CreatedAt:        item.CreatedAt.UTC(),
		UpdatedAt:        item.UpdatedAt.UTC(),
	}
}

func claimUpdatesFromEntity(item entities.CopyrightClaim) map[string]any {
	row := claimModelFromEntity(item)
	return map[string]any{
		"status":             row.Status,
		"decision":           row.Decision,
		"decided_by":         row.DecidedBy,
		"decided_at":         row.DecidedAt,
		"counter_notice":     row.CounterNotice,
		"counter_noticed_at": row.CounterNoticedAt,
		"video_blocked":      row.VideoBlocked,
		"version":            row.Version,
		"updated_at":         row.UpdatedAt,
	}
}

func (m claimModel) toEntity() entities.CopyrightClaim {
	return entities.CopyrightClaim{
		ClaimID:          m.ClaimID,
		VideoID:          m.VideoID,
		RightsHolderID:   m.RightsHolderID,
		ClaimType:        entities.ClaimType(m.ClaimType),
		Description:      m.Description,
		Status:           entities.ClaimStatus(m.Status),
		Decision:         m.Decision,
		DecidedBy:        m.DecidedBy,
		DecidedAt:        normalizeOptionalTime(m.DecidedAt),
		CounterNotice:    m.CounterNotice,
		CounterNoticedAt: normalizeOptionalTime(m.CounterNoticedAt),
		VideoBlocked:     m.VideoBlocked,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
}

type strikeModel struct {
	StrikeID  string    `gorm:"column:strike_id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index"`
	ChannelID string    `gorm:"column:channel_id;index"`
	Type      string    `gorm:"column:strike_type"`
	Severity  string    `gorm:"column:severity"`
	Reason    string    `gorm:"column:reason"`
	VideoID   string    `gorm:"column:video_id"`
	IssuedBy  string    `gorm:"column:issued_by"`
	Active    bool      `gorm:"column:active"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (strikeModel) TableName() string {
	return "strikes"
}

func strikeModelFromEntity(item entities.Strike) strikeModel {
	return strikeModel{
		StrikeID:  strings.TrimSpace(item.StrikeID),
		UserID:    strings.TrimSpace(item.UserID),
		ChannelID: strings.TrimSpace(item.ChannelID),
		Type:      string(item.Type),
		Severity:  string(item.Severity),
		Reason:    item.Reason,
		VideoID:   strings.TrimSpace(item.VideoID),
		IssuedBy:  strings.TrimSpace(item.IssuedBy),
		Active:    item.Active,
		ExpiresAt: item.ExpiresAt.UTC(),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}
}

func (m strikeModel) toEntity() entities.Strike {
	return entities.Strike{
		StrikeID:  m.StrikeID,
		UserID:    m.UserID,
		ChannelID: m.ChannelID,
		Type:      entities.StrikeType(m.Type),
		Severity:  entities.StrikeSeverity(m.Severity),
		Reason:    m.Reason,
		VideoID:   m.VideoID,
		IssuedBy:  m.IssuedBy,
		Active:    m.Active,
		ExpiresAt: m.ExpiresAt.UTC(),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type notificationModel struct {
	NotificationID string    `gorm:"column:notification_id;primaryKey"`
	UserID         string    `gorm:"column:user_id;index"`
	Type           string    `gorm:"column:notification_type"`
	Title          string    `gorm:"column:title"`
	Message        string    `gorm:"column:message"`
	VideoID        string    `gorm:"column:video_id"`
	ChannelID      string    `gorm:"column:channel_id"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (notificationModel) TableName() string {
	return "moderation_notifications"
}

func notificationModelFromEntity(item entities.Notification) notificationModel {
	return notificationModel{
		NotificationID: strings.TrimSpace(item.NotificationID),
		UserID:         strings.TrimSpace(item.UserID),
		Type:           string(item.Type),
		Title:          item.Title,
		Message:        item.Message,
		VideoID:        strings.TrimSpace(item.VideoID),
		ChannelID:      strings.TrimSpace(item.ChannelID),
		CreatedAt:      item.CreatedAt.UTC(),
	}
}

type auditLogModel struct {
	AuditID    string    `gorm:"column:audit_id;primaryKey"`
	AdminID    string    `gorm:"column:admin_id;index"`
	Action     string    `gorm:"column:action"`
	TargetType string    `gorm:"column:target_type;index:idx_moderation_audit_target"`
	TargetID   string    `gorm:"column:target_id;index:idx_moderation_audit_target"`
	OldValue   []byte    `gorm:"column:old_value"`
	NewValue   []byte    `gorm:"column:new_value"`
	Notes      string    `gorm:"column:notes"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (auditLogModel) TableName() string {
	return "moderation_audit_logs"
}

func auditLogModelFromEntity(item entities.AuditLog) auditLogModel {
	return auditLogModel{
		AuditID:    strings.TrimSpace(item.AuditID),
		AdminID:    strings.TrimSpace(item.AdminID),
		Action:     string(item.Action),
		TargetType: string(item.TargetType),
		TargetID:   strings.TrimSpace(item.TargetID),
		OldValue:   append([]byte(nil), item.OldValue...),
		NewValue:   append([]byte(nil), item.NewValue...),
		Notes:      item.Notes,
		CreatedAt:  item.CreatedAt.UTC(),
	}
}

func (m auditLogModel) toEntity() entities.AuditLog {
	return entities.AuditLog{
		AuditID:    m.AuditID,
		AdminID:    m.AdminID,
		Action:     entities.AuditAction(m.Action),
		TargetType: entities.AuditTargetType(m.TargetType),
		TargetID:   m.TargetID,
		OldValue:   append([]byte(nil), m.OldValue...),
		NewValue:   append([]byte(nil), m.NewValue...),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

type idempotencyModel struct {
	Key             string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash     string    `gorm:"column:request_hash"`
	ResponsePayload []byte    `gorm:"column:response_payload"`
	ExpiresAt       time.Time `gorm:"column:expires_at"`
}

func (idempotencyModel) TableName() string {
	return "moderation_idempotency"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status;index"`
	LastError    string     `gorm:"column:last_error"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	SentAt       *time.Time `gorm:"column:sent_at"`
	FailedAt     *time.Time `gorm:"column:failed_at"`
}

func (outboxModel) TableName() string {
	return "moderation_outbox"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
