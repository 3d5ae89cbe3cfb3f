package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest           = errors.New("invalid request")
	ErrUnauthorized             = errors.New("admin capability required")
	ErrForbidden                = errors.New("actor may not perform this action")
	ErrNotFound                 = errors.New("not found")
	ErrAlreadyResolved          = errors.New("flag already resolved")
	ErrAlreadyDecided           = errors.New("copyright claim already decided")
	ErrConcurrentModification   = errors.New("target was modified concurrently")
	ErrDuplicateFlag            = errors.New("an open flag already exists for this target")
	ErrIdempotencyConflict      = errors.New("idempotency key reused with different request")
	ErrIdempotencyKeyInUse      = errors.New("idempotency key is held by a request that has not finished")
	ErrDependencyUnavailable    = errors.New("dependency unavailable")
	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
	ErrPartialFailure           = errors.New("partial failure after commit")
)

var (
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrChannelNotFound = fmt.Errorf("channel %w", ErrNotFound)
	ErrVideoNotFound   = fmt.Errorf("video %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrFlagNotFound    = fmt.Errorf("flag %w", ErrNotFound)
	ErrClaimNotFound   = fmt.Errorf("copyright claim %w", ErrNotFound)
	ErrStrikeNotFound  = fmt.Errorf("strike %w", ErrNotFound)
)

// Invalid wraps ErrInvalidRequest with the offending field or rule.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// PartialFailureError reports a follow-up step that failed after the business
// mutation was committed. The mutation itself stands.
type PartialFailureError struct {
	Stage string
	Err   error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure at %s: %v", e.Stage, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure
}
