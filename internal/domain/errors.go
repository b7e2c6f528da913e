package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy for command flows. None of these are fatal: the capture loop
// always resumes, and every asynchronous action owns its own failure handling.
var (
	// ErrNotFound marks a place or contact the lookup service could not
	// resolve. The current flow aborts; session state stays unchanged.
	ErrNotFound = errors.New("not found")

	// ErrPermission marks a denied or unavailable geolocation request.
	ErrPermission = errors.New("location permission denied")

	// ErrUnavailable marks an unreachable or non-2xx upstream service.
	ErrUnavailable = errors.New("service unavailable")
)

// PlaceNotFoundError reports which place failed to geocode so the spoken
// feedback can name it.
type PlaceNotFoundError struct {
	Place string
}

func (e *PlaceNotFoundError) Error() string {
	return fmt.Sprintf("place not found: %s", e.Place)
}

func (e *PlaceNotFoundError) Unwrap() error { return ErrNotFound }
