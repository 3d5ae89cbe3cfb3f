package application

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
)

func TestDecideFlagRemoveWithStrikeScenario(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{
		FlagID:         "f1",
		Decision:       "remove_with_strike",
		StrikeType:     "COMMUNITY_GUIDELINES",
		StrikeSeverity: "STRIKE",
	})
	if err != nil {
		t.Fatalf("decide flag failed: %v", err)
	}

	video, _ := f.store.Video("v1")
	if video.Visibility != entities.VisibilityPrivate {
		t.Fatalf("expected v1 private, got %s", video.Visibility)
	}
	strikes := f.store.Strikes()
	if len(strikes) != 1 {
		t.Fatalf("expected one strike, got %d", len(strikes))
	}
	strike := strikes[0]
	if strike.Type != entities.StrikeTypeCommunityGuidelines || strike.Severity != entities.SeverityStrike || !strike.Active {
		t.Fatalf("unexpected strike %+v", strike)
	}
	if !strike.ExpiresAt.Equal(testNow.Add(90 * 24 * time.Hour)) {
		t.Fatalf("expected 90 day expiry, got %s", strike.ExpiresAt)
	}
	if strike.ChannelID != "ch-1" || strike.UserID != "owner-1" {
		t.Fatalf("strike should land on the video owner, got %+v", strike)
	}

	flag, _ := f.store.Flag("f1")
	if flag.Status != entities.FlagStatusResolved || flag.Decision != "Content removed with strike" {
		t.Fatalf("unexpected flag state %+v", flag)
	}
	if result.Flag.Status != entities.FlagStatusResolved || result.Strike == nil || result.ActiveStrikes != 1 {
		t.Fatalf("unexpected result %+v", result)
	}

	logs := f.store.AuditLogs()
	if len(logs) != 1 || logs[0].Action != entities.AuditFlagResolved || logs[0].TargetID != "f1" {
		t.Fatalf("expected one FLAG_RESOLVED audit row, got %+v", logs)
	}
	if len(logs[0].OldValue) == 0 || len(logs[0].NewValue) == 0 {
		t.Fatalf("audit row must carry both snapshots")
	}

	notifications := f.store.Notifications()
	if !hasNotification(notifications, entities.NotificationStrikeIssued) {
		t.Fatalf("owner must be told about the strike")
	}
	if hasNotification(notifications, entities.NotificationContentRemoved) {
		t.Fatalf("strike notice replaces the plain removal notice")
	}
	if len(f.store.Delivered()) != len(notifications) || f.store.PendingOutboxCount() != 0 {
		t.Fatalf("fast path should deliver and acknowledge every notification")
	}
}

func TestDecideFlagTerminalStateIsImmutable(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "warn"}); err != nil {
		t.Fatalf("first decision failed: %v", err)
	}

	flagBefore, _ := f.store.Flag("f1")
	videoBefore, _ := f.store.Video("v1")
	reporterBefore, _ := f.store.User("reporter-1")
	auditBefore := len(f.store.AuditLogs())
	notificationsBefore := len(f.store.Notifications())

	decisions := []DecideFlagCommand{
		{FlagID: "f1", Decision: "dismiss"},
		{FlagID: "f1", Decision: "warn"},
		{FlagID: "f1", Decision: "age_restrict"},
		{FlagID: "f1", Decision: "remove"},
		{FlagID: "f1", Decision: "remove_with_strike", StrikeType: "SPAM", StrikeSeverity: "STRIKE"},
	}
	for _, cmd := range decisions {
		_, err := f.svc.DecideFlag(context.Background(), testAdmin, cmd)
		if !errors.Is(err, domainerrors.ErrAlreadyResolved) {
			t.Fatalf("%s: expected already resolved, got %v", cmd.Decision, err)
		}
	}

	flagAfter, _ := f.store.Flag("f1")
	videoAfter, _ := f.store.Video("v1")
	reporterAfter, _ := f.store.User("reporter-1")
	if !reflect.DeepEqual(flagBefore, flagAfter) || videoBefore != videoAfter || reporterBefore != reporterAfter {
		t.Fatalf("terminal flag redecision changed state")
	}
	if len(f.store.Strikes()) != 0 || len(f.store.AuditLogs()) != auditBefore || len(f.store.Notifications()) != notificationsBefore {
		t.Fatalf("terminal flag redecision produced side effects")
	}
}

func TestThirdGeneralStrikeSuspendsChannel(t *testing.T) {
	f := newFixture(t)
	f.seedStrikes("ch-1", entities.StrikeTypeCommunityGuidelines, 2)

	result, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{
		FlagID:         "f1",
		Decision:       "remove_with_strike",
		StrikeType:     "SPAM",
		StrikeSeverity: "STRIKE",
	})
	if err != nil {
		t.Fatalf("decide flag failed: %v", err)
	}
	if status := f.channelStatus(t, "ch-1"); status != entities.ChannelStatusSuspended {
		t.Fatalf("expected suspended channel, got %s", status)
	}
	if result.ChannelStatus != entities.ChannelStatusSuspended || result.ActiveStrikes != 3 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Message != "Content removed with strike; channel suspended" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if !hasNotification(f.store.Notifications(), entities.NotificationChannelSuspended) {
		t.Fatalf("expected channel suspended notice")
	}
}

func TestLapsedStrikesDoNotCountTowardThreshold(t *testing.T) {
	f := newFixture(t)
	f.seedStrikes("ch-1", entities.StrikeTypeSpam, 2)
	f.store.SeedStrike(entities.Strike{
		StrikeID:  "stale",
		UserID:    "owner-1",
		ChannelID: "ch-1",
		Type:      entities.StrikeTypeSpam,
		Severity:  entities.SeverityStrike,
		Reason:    "old",
		Active:    true,
		ExpiresAt: testNow.Add(-time.Hour),
	})
	f.store.SeedStrike(entities.Strike{
		StrikeID:  "warning",
		UserID:    "owner-1",
		ChannelID: "ch-1",
		Type:      entities.StrikeTypeSpam,
		Severity:  entities.SeverityWarning,
		Reason:    "warn",
		Active:    true,
		ExpiresAt: testNow.Add(time.Hour),
	})

	if _, err := f.svc.IssueStrike(context.Background(), testAdmin, IssueStrikeCommand{
		UserID:   "owner-1",
		Type:     "SPAM",
		Severity: "WARNING",
		Reason:   "another warning",
	}); err != nil {
		t.Fatalf("issue strike failed: %v", err)
	}
	if status := f.channelStatus(t, "ch-1"); status != entities.ChannelStatusActive {
		t.Fatalf("expired strikes and warnings must not suspend, got %s", status)
	}
}

func TestDismissIsTrustNeutralOtherDecisionsReward(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "dismiss"}); err != nil {
		t.Fatalf("dismiss failed: %v", err)
	}
	reporter, _ := f.store.User("reporter-1")
	if reporter.TrustScore != 50 {
		t.Fatalf("dismiss must not change trust, got %d", reporter.TrustScore)
	}
	flag, _ := f.store.Flag("f1")
	if flag.Status != entities.FlagStatusDismissed {
		t.Fatalf("expected dismissed, got %s", flag.Status)
	}
	if logs := f.store.AuditLogs(); logs[len(logs)-1].Action != entities.AuditFlagDismissed {
		t.Fatalf("expected FLAG_DISMISSED audit")
	}
	if len(f.store.Notifications()) != 0 {
		t.Fatalf("dismiss sends no notification")
	}

	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-comment", Decision: "warn"}); err != nil {
		t.Fatalf("warn failed: %v", err)
	}
	reporter, _ = f.store.User("reporter-1")
	if reporter.TrustScore != 52 {
		t.Fatalf("expected trust 52, got %d", reporter.TrustScore)
	}
}

func TestTrustRewardIsCapped(t *testing.T) {
	f := newFixture(t)
	f.store.SeedUser(entities.User{UserID: "reporter-1", TrustScore: 99})
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "age_restrict"}); err != nil {
		t.Fatalf("age restrict failed: %v", err)
	}
	reporter, _ := f.store.User("reporter-1")
	if reporter.TrustScore != entities.MaxTrustScore {
		t.Fatalf("expected capped trust, got %d", reporter.TrustScore)
	}
	video, _ := f.store.Video("v1")
	if !video.AgeRestricted || video.Visibility != entities.VisibilityPublic {
		t.Fatalf("age restriction must not hide the video: %+v", video)
	}
}

func TestRemoveCommentDeletesThread(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-comment", Decision: "remove"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	for _, id := range []string{"c1", "c2", "c3"} {
		if _, ok := f.store.Comment(id); ok {
			t.Fatalf("comment %s should be deleted", id)
		}
	}
	if _, ok := f.store.Comment("c4"); !ok {
		t.Fatalf("unrelated comment must survive")
	}
	notifications := f.store.Notifications()
	if len(notifications) != 1 || notifications[0].UserID != "commenter-1" {
		t.Fatalf("comment author should be notified, got %+v", notifications)
	}
}

func TestFlagsOnDeletedRepliesStayDecidable(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"f-reply", "f-nested"} {
		commentID := "c2"
		if id == "f-nested" {
			commentID = "c3"
		}
		f.store.SeedFlag(entities.Flag{
			FlagID:     id,
			ReporterID: "commenter-1",
			TargetType: entities.FlagTargetComment,
			CommentID:  commentID,
			Reason:     entities.FlagReasonHarassment,
			CreatedAt:  testNow,
		})
	}
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-comment", Decision: "remove"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	notified := len(f.store.Notifications())

	result, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-reply", Decision: "dismiss"})
	if err != nil {
		t.Fatalf("dismiss on a deleted reply failed: %v", err)
	}
	if result.Flag.Status != entities.FlagStatusDismissed {
		t.Fatalf("expected dismissed, got %s", result.Flag.Status)
	}

	_, err = f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{
		FlagID:         "f-nested",
		Decision:       "remove_with_strike",
		StrikeType:     "COMMUNITY_GUIDELINES",
		StrikeSeverity: "STRIKE",
	})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("a strike needs an owner, got %v", err)
	}
	result, err = f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-nested", Decision: "remove"})
	if err != nil {
		t.Fatalf("remove on a deleted reply failed: %v", err)
	}
	if result.Flag.Status != entities.FlagStatusResolved {
		t.Fatalf("expected resolved, got %s", result.Flag.Status)
	}
	if len(f.store.Notifications()) != notified {
		t.Fatalf("nobody owns deleted content, no notice expected")
	}
	if len(f.store.Strikes()) != 0 {
		t.Fatalf("no strike expected")
	}
	logs := f.store.AuditLogs()
	if len(logs) != 3 || logs[2].TargetID != "f-nested" {
		t.Fatalf("expected one audit row per decision, got %+v", logs)
	}
}

func TestAgeRestrictRejectedForComments(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f-comment", Decision: "age_restrict"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	flag, _ := f.store.Flag("f-comment")
	if flag.Status != entities.FlagStatusPending {
		t.Fatalf("rejected decision must not transition the flag")
	}
}

func TestDecideFlagValidationAndAuthorization(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.DecideFlag(context.Background(), testOwner, DecideFlagCommand{FlagID: "f1", Decision: "remove"})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	_, err = f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "remove_with_strike", StrikeType: "SPAM"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	_, err = f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "missing", Decision: "warn"})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.store.AuditLogs()) != 0 {
		t.Fatalf("failed decisions must not be audited")
	}
	video, _ := f.store.Video("v1")
	if video.Visibility != entities.VisibilityPublic {
		t.Fatalf("failed decisions must not mutate content")
	}
}

func TestConcurrentFlagDecisionsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	const racers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		resolved  int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{
				FlagID:         "f1",
				Decision:       "remove_with_strike",
				StrikeType:     "SPAM",
				StrikeSeverity: "STRIKE",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domainerrors.ErrAlreadyResolved):
				resolved++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	if succeeded != 1 || resolved != racers-1 {
		t.Fatalf("expected one winner, got %d winners and %d losers", succeeded, resolved)
	}
	if len(f.store.Strikes()) != 1 {
		t.Fatalf("expected exactly one strike, got %d", len(f.store.Strikes()))
	}
}

func TestDecideFlagIdempotentReplay(t *testing.T) {
	f := newFixture(t)
	cmd := DecideFlagCommand{FlagID: "f1", Decision: "remove", IdempotencyKey: "key-1"}
	first, err := f.svc.DecideFlag(context.Background(), testAdmin, cmd)
	if err != nil {
		t.Fatalf("first decision failed: %v", err)
	}
	second, err := f.svc.DecideFlag(context.Background(), testAdmin, cmd)
	if err != nil {
		t.Fatalf("replay failed: %v", err)
	}
	if first.Flag.Version != second.Flag.Version || second.Message != first.Message {
		t.Fatalf("expected replayed result")
	}
	if len(f.store.AuditLogs()) != 1 {
		t.Fatalf("replay must not audit twice")
	}
	cmd.Decision = "warn"
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, cmd); !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestNotificationFailureIsReportedAsPartial(t *testing.T) {
	f := newFixture(t)
	f.store.FailNotifications(errors.New("smtp down"))

	result, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "warn"})
	if err != nil {
		t.Fatalf("committed decision must not fail on delivery: %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected one delivery warning, got %v", result.Warnings)
	}
	if f.store.PendingOutboxCount() != 1 {
		t.Fatalf("undelivered notification must stay in the outbox")
	}
	if len(f.store.AuditLogs()) != 1 {
		t.Fatalf("audit row is committed with the decision")
	}
	flag, _ := f.store.Flag("f1")
	if flag.Status != entities.FlagStatusResolved {
		t.Fatalf("decision must stand")
	}
}

func TestStartFlagReview(t *testing.T) {
	f := newFixture(t)
	result, err := f.svc.StartFlagReview(context.Background(), testAdmin, "f1", "")
	if err != nil {
		t.Fatalf("start review failed: %v", err)
	}
	if result.Flag.Status != entities.FlagStatusUnderReview || result.Flag.ReviewedBy != "admin-1" {
		t.Fatalf("unexpected flag %+v", result.Flag)
	}
	if _, err := f.svc.StartFlagReview(context.Background(), testAdmin, "f1", ""); !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for second review, got %v", err)
	}
	if _, err := f.svc.DecideFlag(context.Background(), testAdmin, DecideFlagCommand{FlagID: "f1", Decision: "dismiss"}); err != nil {
		t.Fatalf("under review flag should be decidable: %v", err)
	}
	logs := f.store.AuditLogs()
	if len(logs) != 2 || logs[0].Action != entities.AuditFlagReviewStarted {
		t.Fatalf("unexpected audit trail %+v", logs)
	}
}

func TestSubmitFlag(t *testing.T) {
	f := newFixture(t)
	reporter := entities.Actor{UserID: "commenter-1"}
	result, err := f.svc.SubmitFlag(context.Background(), reporter, SubmitFlagCommand{
		TargetType: "video",
		VideoID:    "v2",
		Reason:     "misinformation",
		Comment:    "fake news",
	})
	if err != nil {
		t.Fatalf("submit flag failed: %v", err)
	}
	if result.Flag.Status != entities.FlagStatusPending || result.Flag.Reason != entities.FlagReasonMisinformation {
		t.Fatalf("unexpected flag %+v", result.Flag)
	}
	_, err = f.svc.SubmitFlag(context.Background(), reporter, SubmitFlagCommand{TargetType: "VIDEO", VideoID: "v2", Reason: "SPAM"})
	if !errors.Is(err, domainerrors.ErrDuplicateFlag) {
		t.Fatalf("expected duplicate flag, got %v", err)
	}
	_, err = f.svc.SubmitFlag(context.Background(), reporter, SubmitFlagCommand{TargetType: "VIDEO", VideoID: "nope", Reason: "SPAM"})
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	_, err = f.svc.SubmitFlag(context.Background(), reporter, SubmitFlagCommand{TargetType: "COMMENT", VideoID: "v1", CommentID: "c4", Reason: "SPAM"})
	if !errors.Is(err, domainerrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}
	if len(f.store.AuditLogs()) != 0 {
		t.Fatalf("user reports are not audited")
	}
}
