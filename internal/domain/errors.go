package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for remote operations
var (
	// ErrStoryNotFound indicates the requested story does not exist in the
	// requested status category
	ErrStoryNotFound = errors.New("story not found")

	// ErrServerUnreachable indicates the moderation API is unreachable
	ErrServerUnreachable = errors.New("moderation server is unreachable")

	// ErrAuthFailed indicates the bearer token was rejected
	ErrAuthFailed = errors.New("authentication token is invalid")

	// ErrEmptySelection indicates a bulk action was requested with no ids
	ErrEmptySelection = errors.New("no stories selected")
)

// ServerError carries a human-readable message from a non-2xx or
// success:false response.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: status %d", e.StatusCode)
}

// ValidationError is raised before any network call, at the point of entry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a local validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
