package application

import (
	"context"
	"errors"
	"testing"

	"vidstream/contexts/moderation-safety/moderation-service/adapters/memory"
	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

func TestUpholdWithStrikeTerminatesAtCopyrightThreshold(t *testing.T) {
	f := newFixture(t)
	f.seedStrikes("ch-1", entities.StrikeTypeCopyright, 2)

	result, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{
		ClaimID:     "cl-1",
		Decision:    "uphold",
		Action:      "block",
		ApplyStrike: true,
	})
	if err != nil {
		t.Fatalf("decide claim failed: %v", err)
	}
	video, _ := f.store.Video("v2")
	if video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("expected v2 private, got %s", video.Visibility)
	}
	if status := f.channelStatus(t, "ch-1"); status != entities.ChannelStatusTerminated {
		t.Fatalf("third copyright strike must terminate, got %s", status)
	}
	if result.Strike == nil || result.Strike.Type != entities.StrikeTypeCopyright || result.ActiveStrikes != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	claim, _ := f.store.Claim("cl-1")
	if claim.Status != entities.ClaimStatusUpheld || !claim.VideoBlocked {
		t.Fatalf("unexpected claim %+v", claim)
	}
	logs := f.store.AuditLogs()
	if len(logs) != 1 || logs[0].Action != entities.AuditClaimUpheld {
		t.Fatalf("expected COPYRIGHT_CLAIM_UPHELD audit, got %+v", logs)
	}
	if !hasNotification(f.store.Notifications(), entities.NotificationChannelTerminated) {
		t.Fatalf("expected channel terminated notice")
	}
}

func TestThreeGeneralStrikesOnlySuspend(t *testing.T) {
	f := newFixture(t)
	f.seedStrikes("ch-1", entities.StrikeTypeSpam, 2)
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{
		ClaimID:     "cl-1",
		Decision:    "uphold",
		ApplyStrike: true,
	}); err != nil {
		t.Fatalf("decide claim failed: %v", err)
	}
	if status := f.channelStatus(t, "ch-1"); status != entities.ChannelStatusSuspended {
		t.Fatalf("one copyright strike plus two general strikes suspends, got %s", status)
	}
}

func TestRejectRestoresProvisionallyBlockedVideo(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.BlockClaimedVideo(context.Background(), testAdmin, "cl-1", "pending review", ""); err != nil {
		t.Fatalf("block failed: %v", err)
	}
	video, _ := f.store.Video("v2")
	if video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("expected blocked video")
	}

	result, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	video, _ = f.store.Video("v2")
	if video.Visibility != entities.VisibilityPublic {
		t.Fatalf("reject must restore the video, got %s", video.Visibility)
	}
	if result.Claim.Status != entities.ClaimStatusRejected || result.Claim.VideoBlocked {
		t.Fatalf("unexpected claim %+v", result.Claim)
	}
	logs := f.store.AuditLogs()
	if len(logs) != 2 || logs[0].Action != entities.AuditClaimVideoBlocked || logs[1].Action != entities.AuditClaimRejected {
		t.Fatalf("unexpected audit trail %+v", logs)
	}
}

func TestRejectAfterAppealRestoresUpheldBlock(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "uphold", Action: "block"}); err != nil {
		t.Fatalf("uphold failed: %v", err)
	}
	if _, err := f.svc.SubmitAppeal(context.Background(), testOwner, "cl-1"); err != nil {
		t.Fatalf("appeal failed: %v", err)
	}
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"}); err != nil {
		t.Fatalf("reject after appeal failed: %v", err)
	}
	video, _ := f.store.Video("v2")
	if video.Visibility != entities.VisibilityPublic {
		t.Fatalf("expected restored video, got %s", video.Visibility)
	}
}

func TestRejectLeavesOwnerPrivateVideoAlone(t *testing.T) {
	f := newFixture(t)
	f.store.SeedVideo(entities.Video{VideoID: "v2", ChannelID: "ch-1", Visibility: entities.VisibilityPrivate})
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	video, _ := f.store.Video("v2")
	if video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("reject must only undo blocks made for the claim")
	}
}

func TestBlockingOwnerPrivateVideoNeverPublishesIt(t *testing.T) {
	f := newFixture(t)
	f.store.SeedVideo(entities.Video{VideoID: "v2", ChannelID: "ch-1", Visibility: entities.VisibilityPrivate})

	_, err := f.svc.BlockClaimedVideo(context.Background(), testAdmin, "cl-1", "pending review", "")
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("blocking a private video should be refused, got %v", err)
	}
	if claim, _ := f.store.Claim("cl-1"); claim.VideoBlocked {
		t.Fatalf("claim must not own a block it did not make")
	}
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if video, _ := f.store.Video("v2"); video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("owner-private video published after reject: %s", video.Visibility)
	}
}

func TestUpholdBlockOnPrivateVideoThenAppealRejectKeepsItPrivate(t *testing.T) {
	f := newFixture(t)
	f.store.SeedVideo(entities.Video{VideoID: "v2", ChannelID: "ch-1", Visibility: entities.VisibilityPrivate})

	result, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "uphold", Action: "block"})
	if err != nil {
		t.Fatalf("uphold failed: %v", err)
	}
	if result.Claim.VideoBlocked {
		t.Fatalf("uphold on an already private video must not record a block")
	}
	if _, err := f.svc.SubmitAppeal(context.Background(), testOwner, "cl-1"); err != nil {
		t.Fatalf("appeal failed: %v", err)
	}
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if video, _ := f.store.Video("v2"); video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("expected private video, got %s", video.Visibility)
	}
}

func TestDecidedClaimsCannotBeRedecided(t *testing.T) {
	for _, first := range []string{"uphold", "reject", "partial"} {
		f := newFixture(t)
		if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: first}); err != nil {
			t.Fatalf("%s failed: %v", first, err)
		}
		auditBefore := len(f.store.AuditLogs())
		for _, again := range []string{"uphold", "reject", "partial"} {
			_, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: again})
			if !errors.Is(err, domainerrors.ErrAlreadyDecided) {
				t.Fatalf("%s then %s: expected already decided, got %v", first, again, err)
			}
		}
		if len(f.store.AuditLogs()) != auditBefore {
			t.Fatalf("redecision must not audit")
		}
	}
}

func TestPartialClaimChangesNothingButStatus(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "partial"})
	if err != nil {
		t.Fatalf("partial failed: %v", err)
	}
	if result.Claim.Status != entities.ClaimStatusUpheld {
		t.Fatalf("partial is recorded as upheld, got %s", result.Claim.Status)
	}
	video, _ := f.store.Video("v2")
	if video.Visibility != entities.VisibilityPublic || len(f.store.Strikes()) != 0 {
		t.Fatalf("partial must not mutate content or strikes")
	}
	if !hasNotification(f.store.Notifications(), entities.NotificationClaimPartial) {
		t.Fatalf("owner must be told about the partial outcome")
	}
}

func TestClaimDecisionValidation(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject", ApplyStrike: true})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	_, err = f.svc.DecideCopyrightClaim(context.Background(), testOwner, DecideClaimCommand{ClaimID: "cl-1", Decision: "reject"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	_, err = f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "missing", Decision: "reject"})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCounterNotice(t *testing.T) {
	f := newFixture(t)
	stranger := entities.Actor{UserID: "reporter-1"}
	if _, err := f.svc.SubmitCounterNotice(context.Background(), stranger, "cl-1", "I own this"); !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	result, err := f.svc.SubmitCounterNotice(context.Background(), testOwner, "cl-1", "licensed from the label")
	if err != nil {
		t.Fatalf("counter notice failed: %v", err)
	}
	if result.Claim.Status != entities.ClaimStatusCounterNoticed || result.Claim.CounterNoticedAt == nil {
		t.Fatalf("unexpected claim %+v", result.Claim)
	}
	notifications := f.store.Notifications()
	if len(notifications) != 1 || notifications[0].UserID != "rights-1" {
		t.Fatalf("rights holder should be notified, got %+v", notifications)
	}
	if _, err := f.svc.DecideCopyrightClaim(context.Background(), testAdmin, DecideClaimCommand{ClaimID: "cl-1", Decision: "uphold"}); err != nil {
		t.Fatalf("counter-noticed claim should be decidable: %v", err)
	}
}

// upholdFirstRepo lets an admin uphold land between the owner's read of a
// claim and the owner's own transition.
type upholdFirstRepo struct {
	*memory.Store
}

func (r upholdFirstRepo) WithinTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	return r.Store.WithinTx(ctx, func(tx ports.Tx) error {
		return fn(upholdFirstTx{Tx: tx})
	})
}

type upholdFirstTx struct {
	ports.Tx
}

func (tx upholdFirstTx) TransitionClaim(ctx context.Context, next entities.CopyrightClaim, expectedVersion int, from []entities.ClaimStatus) error {
	current, err := tx.Tx.GetClaim(ctx, next.ClaimID)
	if err != nil {
		return err
	}
	upheld := current
	upheld.Status = entities.ClaimStatusUpheld
	upheld.Version = current.Version + 1
	if err := tx.Tx.TransitionClaim(ctx, upheld, current.Version, entities.DecidableClaimStatuses); err != nil {
		return err
	}
	return tx.Tx.TransitionClaim(ctx, next, expectedVersion, from)
}

func TestCounterNoticeLosingToAdminDecisionIsAlreadyDecided(t *testing.T) {
	f := newFixture(t)
	f.svc.Repo = upholdFirstRepo{Store: f.store}

	_, err := f.svc.SubmitCounterNotice(context.Background(), testOwner, "cl-1", "licensed from the label")
	if !errors.Is(err, domainerrors.ErrAlreadyDecided) {
		t.Fatalf("expected already decided, got %v", err)
	}
	claim, ok := f.store.Claim("cl-1")
	if !ok || claim.Status != entities.ClaimStatusPending {
		t.Fatalf("failed transaction must leave the claim pending, got %+v", claim)
	}
}
