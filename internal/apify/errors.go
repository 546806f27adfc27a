package apify

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned before any request is made when no token is configured.
	ErrMissingCredential = errors.New("apify token is not configured")
	// ErrNotFound is returned for a 404 from the platform.
	ErrNotFound = errors.New("not found")
)

// RequestError is a non-success response from the platform.
type RequestError struct {
	Op         string
	StatusCode int
	Status     string
	// Message is the platform's own error message, when the body carried one.
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Status)
}

// Is lets errors.Is(err, ErrNotFound) match a 404 RequestError.
func (e *RequestError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == 404
}
