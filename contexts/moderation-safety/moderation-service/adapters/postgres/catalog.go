package postgresadapter

import (
	"context"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"

	"gorm.io/gorm/clause"
)

// Catalog rows (users, channels, videos, comments, claims) are owned by other
// systems. The Save methods upsert them for local environments and tests.

func (r *Repository) SaveUser(ctx context.Context, user entities.User) error {
	if user.Role == "" {
		user.Role = entities.RoleUser
	}
	row := userModelFromEntity(user)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveChannel(ctx context.Context, channel entities.Channel) error {
	row := channelModelFromEntity(channel)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveVideo(ctx context.Context, video entities.Video) error {
	row := videoModelFromEntity(video)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveComment(ctx context.Context, comment entities.Comment) error {
	row := commentModelFromEntity(comment)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveClaim(ctx context.Context, claim entities.CopyrightClaim) error {
	if claim.Version == 0 {
		claim.Version = 1
	}
	row := claimModelFromEntity(claim)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveFlag(ctx context.Context, flag entities.Flag) error {
	if flag.Status == "" {
		flag.Status = entities.FlagStatusPending
	}
	if flag.Version == 0 {
		flag.Version = 1
	}
	row := flagModelFromEntity(flag)
	return r.upsert(ctx, &row)
}

func (r *Repository) SaveStrike(ctx context.Context, strike entities.Strike) error {
	row := strikeModelFromEntity(strike)
	return r.upsert(ctx, &row)
}

// SeedDemo loads the same small catalog the in-memory store offers.
func (r *Repository) SeedDemo(ctx context.Context, now time.Time) error {
	now = now.UTC()
	users := []entities.User{
		{UserID: "admin-1", Username: "admin", Role: entities.RoleAdmin, TrustScore: 100, CreatedAt: now},
		{UserID: "creator-1", Username: "creator", TrustScore: 50, CreatedAt: now},
		{UserID: "viewer-1", Username: "viewer", TrustScore: 50, CreatedAt: now},
		{UserID: "rights-1", Username: "label", TrustScore: 80, CreatedAt: now},
	}
	for _, user := range users {
		if err := r.SaveUser(ctx, user); err != nil {
			return err
		}
	}
	if err := r.SaveChannel(ctx, entities.Channel{ChannelID: "channel-1", OwnerID: "creator-1", Name: "Creator Channel", CreatedAt: now, UpdatedAt: now}); err != nil {
		return err
	}
	for _, video := range []entities.Video{
		{VideoID: "video-1", ChannelID: "channel-1", Title: "First upload", CreatedAt: now, UpdatedAt: now},
		{VideoID: "video-2", ChannelID: "channel-1", Title: "Cover song", CreatedAt: now, UpdatedAt: now},
	} {
		if err := r.SaveVideo(ctx, video); err != nil {
			return err
		}
	}
	if err := r.SaveComment(ctx, entities.Comment{CommentID: "comment-1", VideoID: "video-1", AuthorID: "viewer-1", Body: "buy followers here", CreatedAt: now}); err != nil {
		return err
	}
	return r.SaveClaim(ctx, entities.CopyrightClaim{
		ClaimID:        "claim-1",
		VideoID:        "video-2",
		RightsHolderID: "rights-1",
		ClaimType:      entities.ClaimTypeAudio,
		Description:    "unlicensed recording",
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (r *Repository) upsert(ctx context.Context, row any) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).
		Error
}
