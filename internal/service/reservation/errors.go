package reservation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrReservationLocked   = errors.New("reservation is locked")
	ErrConfirmNotAllowed   = errors.New("only completed or cancelled reservations can be confirmed")
	ErrRateLimited         = errors.New("too many reservation requests")
)

// FieldErrors maps a form field to a human-readable message. It is returned
// whenever a reservation form fails validation.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}

	return "invalid reservation: " + strings.Join(parts, "; ")
}

type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("%s, retry in %s", ErrRateLimited, e.RetryAfter)
}

func (e RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
