package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

type outboxRow struct {
	message ports.OutboxMessage
	status  string
	reason  string
	sentAt  time.Time
}

type state struct {
	users         map[string]entities.User
	channels      map[string]entities.Channel
	videos        map[string]entities.Video
	comments      map[string]entities.Comment
	flags         map[string]entities.Flag
	claims        map[string]entities.CopyrightClaim
	strikes       map[string]entities.Strike
	outbox        map[string]outboxRow
	outboxOrder   []string
	audit         []entities.AuditLog
	notifications []entities.Notification
	idempotency   map[string]ports.IdempotencyRecord
}

func (st state) clone() state {
	return state{
		users:         maps.Clone(st.users),
		channels:      maps.Clone(st.channels),
		videos:        maps.Clone(st.videos),
		comments:      maps.Clone(st.comments),
		flags:         maps.Clone(st.flags),
		claims:        maps.Clone(st.claims),
		strikes:       maps.Clone(st.strikes),
		outbox:        maps.Clone(st.outbox),
		outboxOrder:   append([]string(nil), st.outboxOrder...),
		audit:         append([]entities.AuditLog(nil), st.audit...),
		notifications: append([]entities.Notification(nil), st.notifications...),
		idempotency:   maps.Clone(st.idempotency),
	}
}

// Store keeps every moderation table in process memory. WithinTx holds the
// write lock for the whole callback and restores a snapshot when it fails.
type Store struct {
	mu sync.RWMutex
	state

	delivered []ports.NotificationRequest
	notifyErr error

	clockMu  sync.RWMutex
	fixedNow time.Time

	sequence uint64
}

func NewStore() *Store {
	return &Store{
		state: state{
			users:       map[string]entities.User{},
			channels:    map[string]entities.Channel{},
			videos:      map[string]entities.Video{},
			comments:    map[string]entities.Comment{},
			flags:       map[string]entities.Flag{},
			claims:      map[string]entities.CopyrightClaim{},
			strikes:     map[string]entities.Strike{},
			outbox:      map[string]outboxRow{},
			idempotency: map[string]ports.IdempotencyRecord{},
		},
		sequence: 1,
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state.clone()
	if err := fn(storeTx{st: &s.state}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

type storeTx struct {
	st *state
}

func (t storeTx) GetUser(ctx context.Context, userID string) (entities.User, error) {
	user, ok := t.st.users[userID]
	if !ok {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (t storeTx) UpdateUserTrustScore(ctx context.Context, userID string, trustScore int) error {
	user, ok := t.st.users[userID]
	if !ok {
		return domainerrors.ErrUserNotFound
	}
	user.TrustScore = trustScore
	t.st.users[userID] = user
	return nil
}

func (t storeTx) GetChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	channel, ok := t.st.channels[channelID]
	if !ok {
		return entities.Channel{}, domainerrors.ErrChannelNotFound
	}
	return channel, nil
}

func (t storeTx) LockChannel(ctx context.Context, channelID string) (entities.Channel, error) {
	return t.GetChannel(ctx, channelID)
}

func (t storeTx) FindChannelByOwner(ctx context.Context, ownerID string) (entities.Channel, error) {
	var found []entities.Channel
	for _, channel := range t.st.channels {
		if channel.OwnerID == ownerID {
			found = append(found, channel)
		}
	}
	if len(found) == 0 {
		return entities.Channel{}, domainerrors.ErrChannelNotFound
	}
	sort.Slice(found, func(i, j int) bool { return found[i].CreatedAt.Before(found[j].CreatedAt) })
	return found[0], nil
}

func (t storeTx) UpdateChannelStatus(ctx context.Context, channelID string, status entities.ChannelStatus, changedAt time.Time) error {
	channel, ok := t.st.channels[channelID]
	if !ok {
		return domainerrors.ErrChannelNotFound
	}
	channel.Status = status
	channel.StatusChangedAt = changedAt.UTC()
	channel.UpdatedAt = changedAt.UTC()
	t.st.channels[channelID] = channel
	return nil
}

func (t storeTx) GetVideo(ctx context.Context, videoID string) (entities.Video, error) {
	video, ok := t.st.videos[videoID]
	if !ok {
		return entities.Video{}, domainerrors.ErrVideoNotFound
	}
	return video, nil
}

func (t storeTx) UpdateVideo(ctx context.Context, video entities.Video) error {
	if _, ok := t.st.videos[video.VideoID]; !ok {
		return domainerrors.ErrVideoNotFound
	}
	t.st.videos[video.VideoID] = video
	return nil
}

func (t storeTx) GetComment(ctx context.Context, commentID string) (entities.Comment, error) {
	comment, ok := t.st.comments[commentID]
	if !ok {
		return entities.Comment{}, domainerrors.ErrCommentNotFound
	}
	return comment, nil
}

func (t storeTx) DeleteCommentThread(ctx context.Context, commentID string) (int, error) {
	if _, ok := t.st.comments[commentID]; !ok {
		return 0, domainerrors.ErrCommentNotFound
	}
	doomed := map[string]bool{commentID: true}
	for grew := true; grew; {
		grew = false
		for id, comment := range t.st.comments {
			if !doomed[id] && doomed[comment.ParentID] {
				doomed[id] = true
				grew = true
			}
		}
	}
	for id := range doomed {
		delete(t.st.comments, id)
	}
	return len(doomed), nil
}

func (t storeTx) GetFlag(ctx context.Context, flagID string) (entities.Flag, error) {
	flag, ok := t.st.flags[flagID]
	if !ok {
		return entities.Flag{}, domainerrors.ErrFlagNotFound
	}
	return flag, nil
}

func (t storeTx) FindOpenFlag(ctx context.Context, reporterID string, targetType entities.FlagTargetType, targetID string) (entities.Flag, bool, error) {
	for _, flag := range t.st.flags {
		if flag.ReporterID == reporterID && flag.TargetType == targetType &&
			flag.TargetID() == targetID && !flag.Status.IsTerminal() {
			return flag, true, nil
		}
	}
	return entities.Flag{}, false, nil
}

func (t storeTx) CreateFlag(ctx context.Context, flag entities.Flag) error {
	if _, exists := t.st.flags[flag.FlagID]; exists {
		return fmt.Errorf("%w: flag %s exists", domainerrors.ErrRepositoryInvariantBroke, flag.FlagID)
	}
	t.st.flags[flag.FlagID] = flag
	return nil
}

func (t storeTx) TransitionFlag(ctx context.Context, next entities.Flag, expectedVersion int) error {
	current, ok := t.st.flags[next.FlagID]
	if !ok {
		return domainerrors.ErrFlagNotFound
	}
	if current.Version != expectedVersion || current.Status.IsTerminal() {
		return domainerrors.ErrConcurrentModification
	}
	t.st.flags[next.FlagID] = next
	return nil
}

func (t storeTx) GetClaim(ctx context.Context, claimID string) (entities.CopyrightClaim, error) {
	claim, ok := t.st.claims[claimID]
	if !ok {
		return entities.CopyrightClaim{}, domainerrors.ErrClaimNotFound
	}
	return claim, nil
}

func (t storeTx) TransitionClaim(ctx context.Context, next entities.CopyrightClaim, expectedVersion int, from []entities.ClaimStatus) error {
	current, ok := t.st.claims[next.ClaimID]
	if !ok {
		return domainerrors.ErrClaimNotFound
	}
	if current.Version != expectedVersion || !slices.Contains(from, current.Status) {
		return domainerrors.ErrConcurrentModification
	}
	t.st.claims[next.ClaimID] = next
	return nil
}

func (t storeTx) CreateStrike(ctx context.Context, strike entities.Strike) error {
	if _, exists := t.st.strikes[strike.StrikeID]; exists {
		return fmt.Errorf("%w: strike %s exists", domainerrors.ErrRepositoryInvariantBroke, strike.StrikeID)
	}
	t.st.strikes[strike.StrikeID] = strike
	return nil
}

func (t storeTx) GetStrike(ctx context.Context, strikeID string) (entities.Strike, error) {
	strike, ok := t.st.strikes[strikeID]
	if !ok {
		return entities.Strike{}, domainerrors.ErrStrikeNotFound
	}
	return strike, nil
}

func (t storeTx) UpdateStrike(ctx context.Context, strike entities.Strike) error {
	if _, ok := t.st.strikes[strike.StrikeID]; !ok {
		return domainerrors.ErrStrikeNotFound
	}
	t.st.strikes[strike.StrikeID] = strike
	return nil
}

func (t storeTx) DeleteStrike(ctx context.Context, strikeID string) error {
	if _, ok := t.st.strikes[strikeID]; !ok {
		return domainerrors.ErrStrikeNotFound
	}
	delete(t.st.strikes, strikeID)
	return nil
}

func (t storeTx) ListActiveStrikes(ctx context.Context, subject ports.StrikeSubject) ([]entities.Strike, error) {
	items := make([]entities.Strike, 0)
	for _, strike := range t.st.strikes {
		if !strike.Active || !matchesSubject(strike, subject) {
			continue
		}
		items = append(items, strike)
	}
	sortStrikes(items)
	return items, nil
}

func (t storeTx) ReserveIdempotencyKey(ctx context.Context, record ports.IdempotencyRecord, now time.Time) error {
	if existing, ok := t.st.idempotency[record.Key]; ok && !idempotencyExpired(existing, now) {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		return domainerrors.ErrIdempotencyKeyInUse
	}
	record.Payload = nil
	t.st.idempotency[record.Key] = record
	return nil
}

func idempotencyExpired(record ports.IdempotencyRecord, now time.Time) bool {
	return !record.ExpiresAt.IsZero() && now.UTC().After(record.ExpiresAt.UTC())
}

func (t storeTx) AppendAuditLog(ctx context.Context, entry entities.AuditLog) error {
	t.st.audit = append(t.st.audit, entry)
	return nil
}

func (t storeTx) CreateNotification(ctx context.Context, notification entities.Notification, message ports.OutboxMessage) error {
	if _, exists := t.st.outbox[message.OutboxID]; exists {
		return fmt.Errorf("%w: outbox %s exists", domainerrors.ErrRepositoryInvariantBroke, message.OutboxID)
	}
	t.st.notifications = append(t.st.notifications, notification)
	t.st.outbox[message.OutboxID] = outboxRow{message: message, status: "pending"}
	t.st.outboxOrder = append(t.st.outboxOrder, message.OutboxID)
	return nil
}

func matchesSubject(strike entities.Strike, subject ports.StrikeSubject) bool {
	if subject.ChannelID != "" {
		return strike.ChannelID == subject.ChannelID
	}
	return subject.UserID != "" && strike.UserID == subject.UserID
}

func sortStrikes(items []entities.Strike) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].StrikeID < items[j].StrikeID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func page[T any](items []T, limit int, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), items[offset:end]...)
}

func (s *Store) ListFlags(ctx context.Context, filter ports.FlagFilter) ([]entities.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Flag, 0, len(s.flags))
	for _, flag := range s.flags {
		if filter.Status != "" && flag.Status != filter.Status {
			continue
		}
		if filter.TargetType != "" && flag.TargetType != filter.TargetType {
			continue
		}
		items = append(items, flag)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].FlagID < items[j].FlagID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return page(items, filter.Limit, filter.Offset), nil
}

func (s *Store) ListClaims(ctx context.Context, filter ports.ClaimFilter) ([]entities.CopyrightClaim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.CopyrightClaim, 0, len(s.claims))
	for _, claim := range s.claims {
		if filter.Status != "" && claim.Status != filter.Status {
			continue
		}
		if filter.VideoID != "" && claim.VideoID != filter.VideoID {
			continue
		}
		items = append(items, claim)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ClaimID < items[j].ClaimID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return page(items, filter.Limit, filter.Offset), nil
}

func (s *Store) ListStrikes(ctx context.Context, filter ports.StrikeFilter) ([]entities.Strike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Strike, 0, len(s.strikes))
	for _, strike := range s.strikes {
		if filter.UserID != "" && strike.UserID != filter.UserID {
			continue
		}
		if filter.ChannelID != "" && strike.ChannelID != filter.ChannelID {
			continue
		}
		if filter.ActiveOnly && !strike.Active {
			continue
		}
		items = append(items, strike)
	}
	sortStrikes(items)
	return page(items, filter.Limit, filter.Offset), nil
}

func (s *Store) ListAuditLogs(ctx context.Context, filter ports.AuditFilter) ([]entities.AuditLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.AuditLog, 0, len(s.audit))
	for i := len(s.audit) - 1; i >= 0; i-- {
		entry := s.audit[i]
		if filter.AdminID != "" && entry.AdminID != filter.AdminID {
			continue
		}
		if filter.TargetType != "" && entry.TargetType != filter.TargetType {
			continue
		}
		if filter.TargetID != "" && entry.TargetID != filter.TargetID {
			continue
		}
		items = append(items, entry)
	}
	return page(items, filter.Limit, filter.Offset), nil
}

func (s *Store) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0)
	for _, id := range s.outboxOrder {
		row := s.outbox[id]
		if row.status != "pending" {
			continue
		}
		items = append(items, row.message)
		if limit > 0 && len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxSent(ctx context.Context, outboxID string, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	row.status = "sent"
	row.sentAt = sentAt.UTC()
	s.outbox[outboxID] = row
	return nil
}

func (s *Store) MarkOutboxFailed(ctx context.Context, outboxID string, reason string, failedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[outboxID]
	if !ok {
		return domainerrors.ErrNotFound
	}
	row.status = "failed"
	row.reason = reason
	s.outbox[outboxID] = row
	return nil
}

func (s *Store) DeactivateLapsedStrikes(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for id, strike := range s.strikes {
		if strike.Active && !now.UTC().Before(strike.ExpiresAt.UTC()) {
			strike.Active = false
			strike.UpdatedAt = now.UTC()
			s.strikes[id] = strike
			count++
		}
	}
	return count, nil
}

func (s *Store) Notify(ctx context.Context, request ports.NotificationRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notifyErr != nil {
		return s.notifyErr
	}
	s.delivered = append(s.delivered, request)
	return nil
}

func (s *Store) Get(ctx context.Context, key string, now time.Time) (ports.IdempotencyRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.idempotency[key]
	if !ok {
		return ports.IdempotencyRecord{}, false, nil
	}
	if idempotencyExpired(record, now) {
		delete(s.idempotency, key)
		return ports.IdempotencyRecord{}, false, nil
	}
	return record, true, nil
}

func (s *Store) Put(ctx context.Context, record ports.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.idempotency[record.Key]; ok {
		if existing.RequestHash != record.RequestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		if len(existing.Payload) == 0 {
			existing.Payload = record.Payload
			s.idempotency[record.Key] = existing
		}
		return nil
	}
	s.idempotency[record.Key] = record
	return nil
}

func (s *Store) Now() time.Time {
	s.clockMu.RLock()
	defer s.clockMu.RUnlock()
	if !s.fixedNow.IsZero() {
		return s.fixedNow
	}
	return time.Now().UTC()
}

// SetNow pins the store clock. A zero time returns it to wall time.
func (s *Store) SetNow(now time.Time) {
	s.clockMu.Lock()
	defer s.clockMu.Unlock()
	s.fixedNow = now.UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return s.nextID("id"), nil
}

func (s *Store) nextID(prefix string) string {
	n := atomic.AddUint64(&s.sequence, 1)
	if strings.TrimSpace(prefix) == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, n)
}

var _ ports.Repository = (*Store)(nil)
var _ ports.Tx = storeTx{}
var _ ports.OutboxRepository = (*Store)(nil)
var _ ports.StrikeReconciler = (*Store)(nil)
var _ ports.Notifier = (*Store)(nil)
var _ ports.IdempotencyStore = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
