package gerr

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrStorageUnavailable is returned when the underlying store can't be reached
	// or a query against it fails.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrInvalidFilter marks an unknown collection/field pair. Repositories turn it
	// into a zero or empty result instead of returning it to callers.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrResetFailed is returned when the coupon usage reset can't be applied.
	ErrResetFailed = errors.New("coupon usage reset failed")
	// ErrInvalidArgument is returned for malformed request parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Storage wraps a driver error so it matches ErrStorageUnavailable.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorageUnavailable, err)
}

// InvalidFilter returns an error matching ErrInvalidFilter.
func InvalidFilter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidFilter, fmt.Sprintf(format, args...))
}

// IsUnavailable reports whether err means the report could not be computed
// because storage was unreachable or the call timed out.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}
