package services

import (
	"fmt"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
)

// Notice is a notification request before it is given an id and timestamp.
type Notice struct {
	UserID    string
	Type      entities.NotificationType
	Title     string
	Message   string
	VideoID   string
	ChannelID string
}

func FlagOutcomeNotice(kind FlagDecisionKind, target entities.FlagTargetType, ownerID string, videoID string, channelID string) (Notice, bool) {
	subject := "Your video"
	if target == entities.FlagTargetComment {
		subject = "Your comment"
	}
	notice := Notice{UserID: ownerID, VideoID: videoID, ChannelID: channelID}
	switch kind {
	case FlagDecisionWarn:
		notice.Type = entities.NotificationContentWarning
		notice.Title = "Community guidelines warning"
		notice.Message = subject + " was reviewed after a report and received a warning."
	case FlagDecisionAgeRestrict:
		notice.Type = entities.NotificationAgeRestricted
		notice.Title = "Age restriction applied"
		notice.Message = subject + " was age-restricted after review."
	case FlagDecisionRemove:
		notice.Type = entities.NotificationContentRemoved
		notice.Title = "Content removed"
		notice.Message = subject + " was removed for violating community guidelines."
	default:
		return Notice{}, false
	}
	return notice, ownerID != ""
}

// StrikeIssuedNotice tells the subject about a new strike. context describes the
// decision that produced it and activeStrikes is the count after issuance.
func StrikeIssuedNotice(strike entities.Strike, activeStrikes int, context string) Notice {
	message := fmt.Sprintf(
		"A %s %s was issued: %s. Active strikes: %d. Expires %s.",
		strike.Type, strike.Severity, strike.Reason, activeStrikes, strike.ExpiresAt.UTC().Format("2006-01-02"),
	)
	if context != "" {
		message = context + ". " + message
	}
	return Notice{
		UserID:    strike.UserID,
		Type:      entities.NotificationStrikeIssued,
		Title:     "Strike issued",
		Message:   message,
		VideoID:   strike.VideoID,
		ChannelID: strike.ChannelID,
	}
}

func StrikeRemovedNotice(strike entities.Strike, activeStrikes int) Notice {
	return Notice{
		UserID:    strike.UserID,
		Type:      entities.NotificationStrikeRemoved,
		Title:     "Strike removed",
		Message:   fmt.Sprintf("A %s strike on your account was removed. Active strikes: %d.", strike.Type, activeStrikes),
		VideoID:   strike.VideoID,
		ChannelID: strike.ChannelID,
	}
}

// ChannelStatusNotice returns the notice for a status change, if any.
func ChannelStatusNotice(channel entities.Channel, from entities.ChannelStatus, to entities.ChannelStatus) (Notice, bool) {
	if from == to || channel.OwnerID == "" {
		return Notice{}, false
	}
	notice := Notice{UserID: channel.OwnerID, ChannelID: channel.ChannelID}
	switch to {
	case entities.ChannelStatusSuspended:
		notice.Type = entities.NotificationChannelSuspended
		notice.Title = "Channel suspended"
		notice.Message = fmt.Sprintf("Your channel %q was suspended after reaching the strike threshold.", channel.Name)
	case entities.ChannelStatusTerminated:
		notice.Type = entities.NotificationChannelTerminated
		notice.Title = "Channel terminated"
		notice.Message = fmt.Sprintf("Your channel %q was terminated for repeated policy violations.", channel.Name)
	case entities.ChannelStatusActive:
		notice.Type = entities.NotificationChannelReinstated
		notice.Title = "Channel reinstated"
		notice.Message = fmt.Sprintf("Your channel %q is active again.", channel.Name)
	default:
		return Notice{}, false
	}
	return notice, true
}

func ClaimOutcomeNotice(plan ClaimPlan, ownerID string, videoID string, channelID string) (Notice, bool) {
	notice := Notice{UserID: ownerID, Type: plan.Notice, VideoID: videoID, ChannelID: channelID}
	switch plan.Notice {
	case entities.NotificationClaimUpheld:
		notice.Title = "Copyright claim upheld"
		notice.Message = plan.DecisionText + "."
	case entities.NotificationClaimRejected:
		notice.Title = "Copyright claim rejected"
		notice.Message = "A copyright claim on your video was rejected. No action was taken."
		if plan.RestoreVideo {
			notice.Message = "A copyright claim on your video was rejected and the video is public again."
		}
	case entities.NotificationClaimPartial:
		notice.Title = "Copyright claim partially upheld"
		notice.Message = "A copyright claim on your video was partially upheld. Your video was not changed."
	default:
		return Notice{}, false
	}
	return notice, ownerID != ""
}

func VideoBlockedNotice(ownerID string, videoID string, channelID string) Notice {
	return Notice{
		UserID:    ownerID,
		Type:      entities.NotificationVideoBlocked,
		Title:     "Video blocked pending copyright review",
		Message:   "Your video was made private while a copyright claim is reviewed.",
		VideoID:   videoID,
		ChannelID: channelID,
	}
}

func CounterNoticeFiledNotice(claim entities.CopyrightClaim) Notice {
	return Notice{
		UserID:  claim.RightsHolderID,
		Type:    entities.NotificationCounterNotice,
		Title:   "Counter-notice received",
		Message: fmt.Sprintf("The channel owner filed a counter-notice against claim %s.", claim.ClaimID),
		VideoID: claim.VideoID,
	}
}
