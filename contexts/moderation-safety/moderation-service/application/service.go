package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"vidstream/contexts/moderation-safety/moderation-service/domain/entities"
	domainerrors "vidstream/contexts/moderation-safety/moderation-service/domain/errors"
	"vidstream/contexts/moderation-safety/moderation-service/domain/services"
	"vidstream/contexts/moderation-safety/moderation-service/ports"
)

type Service struct {
	Repo           ports.Repository
	Idempotency    ports.IdempotencyStore
	Outbox         ports.OutboxRepository
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDs            ports.IDGenerator
	Policy         services.ThresholdPolicy
	StrikeExpiry   time.Duration
	IdempotencyTTL time.Duration
	Metrics        ports.Metrics
	Logger         *slog.Logger
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s Service) idempotencyTTL() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.IdempotencyTTL
}

func (s Service) strikeExpiry() time.Duration {
	if s.StrikeExpiry <= 0 {
		return entities.DefaultStrikeExpiry
	}
	return s.StrikeExpiry
}

func (s Service) newID(ctx context.Context) (string, error) {
	if s.IDs == nil {
		return "", domainerrors.ErrDependencyUnavailable
	}
	return s.IDs.NewID(ctx)
}

func (s Service) requireAdmin(actor entities.Actor) error {
	if !actor.IsAdmin() {
		return domainerrors.ErrUnauthorized
	}
	return nil
}

type idempotencyReservationKey struct{}

type idempotencyReservation struct {
	record ports.IdempotencyRecord
	now    time.Time
}

func withIdempotencyReservation(ctx context.Context, reservation idempotencyReservation) context.Context {
	return context.WithValue(ctx, idempotencyReservationKey{}, reservation)
}

func idempotencyReservationFrom(ctx context.Context) (idempotencyReservation, bool) {
	reservation, ok := ctx.Value(idempotencyReservationKey{}).(idempotencyReservation)
	return reservation, ok
}

// runIdempotent replays the stored payload when key was already used for the
// same request. The key is reserved inside the decision transaction, so two
// concurrent requests with one key never both apply. An empty key runs exec
// without any bookkeeping.
func (s Service) runIdempotent(
	ctx context.Context,
	key string,
	requestHash string,
	decode func([]byte) error,
	exec func(ctx context.Context) ([]byte, error),
) error {
	key = strings.TrimSpace(key)
	if key == "" || s.Idempotency == nil {
		payload, err := exec(ctx)
		if err != nil {
			return err
		}
		return decode(payload)
	}
	now := s.now()
	if replayed, err := s.replayIdempotent(ctx, key, requestHash, now, decode); replayed || err != nil {
		return err
	}
	expiresAt := now.Add(s.idempotencyTTL())
	payload, err := exec(withIdempotencyReservation(ctx, idempotencyReservation{
		record: ports.IdempotencyRecord{Key: key, RequestHash: requestHash, ExpiresAt: expiresAt},
		now:    now,
	}))
	if errors.Is(err, domainerrors.ErrIdempotencyKeyInUse) {
		// another request committed under this key first
		if replayed, replayErr := s.replayIdempotent(ctx, key, requestHash, now, decode); replayed || replayErr != nil {
			return replayErr
		}
		return err
	}
	if err != nil {
		return err
	}
	if err := s.Idempotency.Put(ctx, ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Payload:     payload,
		ExpiresAt:   expiresAt,
	}); err != nil {
		ResolveLogger(s.Logger).Error("moderation idempotency record write failed",
			"event", "moderation_idempotency_put_failed",
			"module", moduleName,
			"layer", "application",
			"idempotency_key", key,
			"error", err.Error(),
		)
		return decode(payload)
	}
	ResolveLogger(s.Logger).Debug("moderation idempotent mutation committed",
		"event", "moderation_idempotent_mutation_committed",
		"module", moduleName,
		"layer", "application",
		"idempotency_key", key,
	)
	return decode(payload)
}

// replayIdempotent decodes the stored response for key. It reports false when
// no record exists yet.
func (s Service) replayIdempotent(ctx context.Context, key string, requestHash string, now time.Time, decode func([]byte) error) (bool, error) {
	record, found, err := s.Idempotency.Get(ctx, key, now)
	if err != nil || !found {
		return false, err
	}
	if record.RequestHash != requestHash {
		return true, domainerrors.ErrIdempotencyConflict
	}
	if len(record.Payload) == 0 {
		return true, domainerrors.ErrIdempotencyKeyInUse
	}
	return true, decode(record.Payload)
}

func hashStrings(values ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(values, "|")))
	return hex.EncodeToString(sum[:])
}

// outcomeLabel maps a decision error onto a low-cardinality metrics label.
func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, domainerrors.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domainerrors.ErrInvalidRequest):
		return "invalid"
	case errors.Is(err, domainerrors.ErrNotFound):
		return "not_found"
	case errors.Is(err, domainerrors.ErrAlreadyResolved), errors.Is(err, domainerrors.ErrAlreadyDecided):
		return "already_terminal"
	case errors.Is(err, domainerrors.ErrConcurrentModification):
		return "conflict"
	case errors.Is(err, domainerrors.ErrIdempotencyConflict), errors.Is(err, domainerrors.ErrIdempotencyKeyInUse):
		return "idempotency_conflict"
	default:
		return "error"
	}
}

func (s Service) observeDecision(kind string, err error) {
	ResolveMetrics(s.Metrics).DecisionApplied(kind, outcomeLabel(err))
}
