package memory

import (
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

func (s *Store) SeedUser(user entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Role == "" {
		user.Role = entities.RoleUser
	}
	s.users[user.UserID] = user
}

func (s *Store) SeedChannel(channel entities.Channel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if channel.Status == "" {
		channel.Status = entities.ChannelStatusActive
	}
	s.channels[channel.ChannelID] = channel
}

func (s *Store) SeedVideo(video entities.Video) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if video.Visibility == "" {
		video.Visibility = entities.VisibilityPublic
	}
	s.videos[video.VideoID] = video
}

func (s *Store) SeedComment(comment entities.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.CommentID] = comment
}

func (s *Store) SeedFlag(flag entities.Flag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if flag.Status == "" {
		flag.Status = entities.FlagStatusPending
	}
	if flag.Version == 0 {
		flag.Version = 1
	}
	s.flags[flag.FlagID] = flag
}

func (s *Store) SeedClaim(claim entities.CopyrightClaim) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if claim.Status == "" {
		claim.Status = entities.ClaimStatusPending
	}
	if claim.Version == 0 {
		claim.Version = 1
	}
	s.claims[claim.ClaimID] = claim
}

func (s *Store) SeedStrike(strike entities.Strike) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strikes[strike.StrikeID] = strike
}

// SeedDemo loads a small catalog for running the API without a database.
func (s *Store) SeedDemo() {
	now := time.Now().UTC()
	s.SeedUser(entities.User{UserID: "admin-1", Username: "admin", Role: entities.RoleAdmin, TrustScore: 100, CreatedAt: now})
	s.SeedUser(entities.User{UserID: "creator-1", Username: "creator", TrustScore: 50, CreatedAt: now})
	s.SeedUser(entities.User{UserID: "viewer-1", Username: "viewer", TrustScore: 50, CreatedAt: now})
	s.SeedUser(entities.User{UserID: "rights-1", Username: "label", TrustScore: 80, CreatedAt: now})
	s.SeedChannel(entities.Channel{ChannelID: "channel-1", OwnerID: "creator-1", Name: "Creator Channel", CreatedAt: now, UpdatedAt: now})
	s.SeedVideo(entities.Video{VideoID: "video-1", ChannelID: "channel-1", Title: "First upload", CreatedAt: now, UpdatedAt: now})
	s.SeedVideo(entities.Video{VideoID: "video-2", ChannelID: "channel-1", Title: "Cover song", CreatedAt: now, UpdatedAt: now})
	s.SeedComment(entities.Comment{CommentID: "comment-1", VideoID: "video-1", AuthorID: "viewer-1", Body: "buy followers here", CreatedAt: now})
	s.SeedClaim(entities.CopyrightClaim{
		ClaimID:        "claim-1",
		VideoID:        "video-2",
		RightsHolderID: "rights-1",
		ClaimType:      entities.ClaimTypeAudio,
		Description:    "unlicensed recording",
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (s *Store) User(userID string) (entities.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[userID]
	return user, ok
}

func (s *Store) Channel(channelID string) (entities.Channel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	channel, ok := s.channels[channelID]
	return channel, ok
}

func (s *Store) Video(videoID string) (entities.Video, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	video, ok := s.videos[videoID]
	return video, ok
}

func (s *Store) Comment(commentID string) (entities.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comment, ok := s.comments[commentID]
	return comment, ok
}

func (s *Store) Flag(flagID string) (entities.Flag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flag, ok := s.flags[flagID]
	return flag, ok
}

func (s *Store) Claim(claimID string) (entities.CopyrightClaim, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	claim, ok := s.claims[claimID]
	return claim, ok
}

func (s *Store) Strike(strikeID string) (entities.Strike, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	strike, ok := s.strikes[strikeID]
	return strike, ok
}

func (s *Store) Strikes() []entities.Strike {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Strike, 0, len(s.strikes))
	for _, strike := range s.strikes {
		items = append(items, strike)
	}
	sortStrikes(items)
	return items
}

func (s *Store) AuditLogs() []entities.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.AuditLog(nil), s.audit...)
}

func (s *Store) Notifications() []entities.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Notification(nil), s.notifications...)
}

func (s *Store) Delivered() []ports.NotificationRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ports.NotificationRequest(nil), s.delivered...)
}

func (s *Store) PendingOutboxCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, row := range s.outbox {
		if row.status == "pending" {
			count++
		}
	}
	return count
}

// FailNotifications makes Notify return err until called again with nil.
func (s *Store) FailNotifications(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifyErr = err
}
