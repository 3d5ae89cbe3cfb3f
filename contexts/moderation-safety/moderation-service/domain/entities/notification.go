package entities

import "time"

type NotificationType string

const (
	NotificationContentWarning    NotificationType = "CONTENT_WARNING"
	NotificationAgeRestricted     NotificationType = "CONTENT_AGE_RESTRICTED"
	NotificationContentRemoved    NotificationType = "CONTENT_REMOVED"
	NotificationStrikeIssued      NotificationType = "STRIKE_ISSUED"
	NotificationStrikeRemoved     NotificationType = "STRIKE_REMOVED"
	NotificationChannelSuspended  NotificationType = "CHANNEL_SUSPENDED"
	NotificationChannelTerminated NotificationType = "CHANNEL_TERMINATED"
	NotificationChannelReinstated NotificationType = "CHANNEL_REINSTATED"
	NotificationClaimUpheld       NotificationType = "COPYRIGHT_CLAIM_UPHELD"
	NotificationClaimRejected     NotificationType = "COPYRIGHT_CLAIM_REJECTED"
	NotificationClaimPartial      NotificationType = "COPYRIGHT_CLAIM_PARTIAL"
	NotificationVideoBlocked      NotificationType = "COPYRIGHT_VIDEO_BLOCKED"
	NotificationCounterNotice     NotificationType = "COPYRIGHT_COUNTER_NOTICE"
)

type Notification struct {
	NotificationID string
	UserID         string
	Type           NotificationType
	Title          string
	Message        string
	VideoID        string
	ChannelID      string
	CreatedAt      time.Time
}
