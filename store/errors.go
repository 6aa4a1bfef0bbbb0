package store

import (
	"github.com/pkg/errors"
)

// Error taxonomy surfaced by every store operation. Callers branch with
// errors.Is; the message carries the specifics.
var (
	// ErrValidation marks malformed input, for example an unknown reaction
	// type or a missing required field. Never retried.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness violation: duplicate profile for an
	// account, duplicate nickname, duplicate follow edge.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks a mutation attempted by a profile that does not own
	// the target entity.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidOperation marks a structurally valid but semantically
	// nonsensical request: follow self, unfollow a non-followed profile,
	// delete a post.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrStorageUnavailable marks a storage failure that survived the single
	// retry at the store boundary.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func validationf(format string, args ...interface{}) error {
	return errors.WithMessagef(ErrValidation, format, args...)
}

func conflictf(format string, args ...interface{}) error {
	return errors.WithMessagef(ErrConflict, format, args...)
}

func notFoundf(format string, args ...interface{}) error {
	return errors.WithMessagef(ErrNotFound, format, args...)
}

func forbiddenf(format string, args ...interface{}) error {
	return errors.WithMessagef(ErrForbidden, format, args...)
}

func invalidOperationf(format string, args ...interface{}) error {
	return errors.WithMessagef(ErrInvalidOperation, format, args...)
}

// isTaxonomyError reports whether err already carries one of the caller
// facing kinds above, meaning it must be surfaced as-is and never retried.
func isTaxonomyError(err error) bool {
	for _, kind := range []error{
		ErrValidation,
		ErrConflict,
		ErrNotFound,
		ErrForbidden,
		ErrInvalidOperation,
	} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}
