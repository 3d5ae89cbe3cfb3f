package v1

// ModerationNotificationRequested is the envelope data for
// EventTypeModerationNotificationRequested.
type ModerationNotificationRequested struct {
	NotificationID string `json:"notification_id"`
	UserID         string `json:"user_id"`
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	VideoID        string `json:"video_id,omitempty"`
	ChannelID      string `json:"channel_id,omitempty"`
}

const (
	EventTypeModerationNotificationRequested = "moderation.notification.requested"
	ModerationNotificationPartitionKeyPath   = "data.user_id"
)
