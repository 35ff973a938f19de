package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned after the gateway reacted to an
	// authorization failure and tore down the session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable covers transport-level failures: the server could not
	// be reached or the request timed out.
	ErrUnavailable = errors.New("server unavailable")
)

// ValidationError is a 4xx rejection. When the server reports field-level
// problems they are carried in Fields so form controllers can surface them
// next to the offending input.
type ValidationError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request rejected (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request rejected (%d)", e.Status)
}

// ServerError is a 5xx response. The operation is aborted; the caller decides
// how loudly to report it.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}
