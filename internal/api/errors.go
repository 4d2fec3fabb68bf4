package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")

	// ErrTimeout indicates the request exceeded its configured timeout.
	ErrTimeout = errors.New("backend request timed out")

	// ErrUnauthorized indicates the configured token was missing or rejected.
	ErrUnauthorized = errors.New("backend rejected credentials")

	// ErrInvalidResponse indicates a response body could not be decoded.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
}
