package calendar

import "errors"

var (
	// ErrUnavailable indicates the calendar service is unreachable.
	ErrUnavailable = errors.New("calendar service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("calendar request timed out")

	// ErrNotFound indicates the referenced event does not exist.
	ErrNotFound = errors.New("calendar event not found")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("calendar retry attempts exhausted")
)
