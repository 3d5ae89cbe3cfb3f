package application

import (
	"fmt"
	"testing"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/adapters/memory"
	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testAdmin = entities.Actor{UserID: "admin-1", Role: entities.RoleAdmin}
	testOwner = entities.Actor{UserID: "owner-1", Role: entities.RoleUser}
)

type fixture struct {
	store *memory.Store
	svc   Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(testNow)
	store.SeedUser(entities.User{UserID: "admin-1", Role: entities.RoleAdmin, TrustScore: 100})
	store.SeedUser(entities.User{UserID: "owner-1", TrustScore: 50})
	store.SeedUser(entities.User{UserID: "reporter-1", TrustScore: 50})
	store.SeedUser(entities.User{UserID: "commenter-1", TrustScore: 50})
	store.SeedUser(entities.User{UserID: "rights-1", TrustScore: 50})
	store.SeedChannel(entities.Channel{ChannelID: "ch-1", OwnerID: "owner-1", Name: "Owner", CreatedAt: testNow})
	store.SeedVideo(entities.Video{VideoID: "v1", ChannelID: "ch-1", Title: "one"})
	store.SeedVideo(entities.Video{VideoID: "v2", ChannelID: "ch-1", Title: "two"})
	store.SeedComment(entities.Comment{CommentID: "c1", VideoID: "v1", AuthorID: "commenter-1", Body: "spam"})
	store.SeedComment(entities.Comment{CommentID: "c2", VideoID: "v1", AuthorID: "owner-1", ParentID: "c1", Body: "reply"})
	store.SeedComment(entities.Comment{CommentID: "c3", VideoID: "v1", AuthorID: "reporter-1", ParentID: "c2", Body: "nested"})
	store.SeedComment(entities.Comment{CommentID: "c4", VideoID: "v1", AuthorID: "reporter-1", Body: "unrelated"})
	store.SeedFlag(entities.Flag{
		FlagID:     "f1",
		ReporterID: "reporter-1",
		TargetType: entities.FlagTargetVideo,
		VideoID:    "v1",
		Reason:     entities.FlagReasonViolence,
		CreatedAt:  testNow,
	})
	store.SeedFlag(entities.Flag{
		FlagID:     "f-comment",
		ReporterID: "reporter-1",
		TargetType: entities.FlagTargetComment,
		CommentID:  "c1",
		Reason:     entities.FlagReasonSpam,
		CreatedAt:  testNow,
	})
	store.SeedClaim(entities.CopyrightClaim{
		ClaimID:        "cl-1",
		VideoID:        "v2",
		RightsHolderID: "rights-1",
		ClaimType:      entities.ClaimTypeAudio,
		CreatedAt:      testNow,
	})
	return fixture{
		store: store,
		svc: Service{
			Repo:        store,
			Idempotency: store,
			Outbox:      store,
			Notifier:    store,
			Clock:       store,
			IDs:         store,
			Policy:      services.DefaultThresholdPolicy(),
		},
	}
}

func (f fixture) seedStrikes(channelID string, strikeType entities.StrikeType, count int) {
	for i := 0; i < count; i++ {
		f.store.SeedStrike(entities.Strike{
			StrikeID:  fmt.Sprintf("seed-%s-%s-%d", channelID, strikeType, i),
			UserID:    "owner-1",
			ChannelID: channelID,
			Type:      strikeType,
			Severity:  entities.SeverityStrike,
			Reason:    "seeded",
			IssuedBy:  "admin-1",
			Active:    true,
			ExpiresAt: testNow.Add(30 * 24 * time.Hour),
			CreatedAt: testNow.Add(-time.Duration(i+1) * time.Hour),
		})
	}
}

func (f fixture) channelStatus(t *testing.T, channelID string) entities.ChannelStatus {
	t.Helper()
	channel, ok := f.store.Channel(channelID)
	if !ok {
		t.Fatalf("channel %s missing", channelID)
	}
	return channel.Status
}

func hasNotification(items []entities.Notification, kind entities.NotificationType) bool {
	for _, item := range items {
		if item.Type == kind {
			return true
		}
	}
	return false
}
