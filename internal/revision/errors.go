package revision

import (
	"errors"
	"fmt"
)

// Error taxonomy for the revision engine. All errors returned by the
// Service wrap exactly one of these sentinels so callers can branch with
// errors.Is without string matching.
var (
	// ErrNotFound means the card or weak area does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the card does not belong to the calling child.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation means the input is malformed (quality outside 0-5,
	// empty answer payload, non-positive limits).
	ErrValidation = errors.New("validation failed")

	// ErrOracleUnavailable means the AI tutor call failed or timed out.
	// No state was mutated; the caller may retry safely.
	ErrOracleUnavailable = errors.New("tutor unavailable")

	// ErrConflict means a concurrent mutation won the optimistic version
	// check. The caller must reload the card and retry; the engine never
	// merges silently.
	ErrConflict = errors.New("concurrent modification")

	// ErrInternal means a stored invariant was violated (negative interval,
	// ease factor below the floor). It indicates a bug, not boundary input,
	// and is never clamped away.
	ErrInternal = errors.New("internal invariant violation")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func internalErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
