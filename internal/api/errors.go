package api

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrInvalidCredentials is returned when a login attempt is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired is returned when any call other than login is
	// rejected as unauthorized. Callers must clear the session when they
	// see it.
	ErrSessionExpired = errors.New("session expired")
)

// PermissionError reports an authenticated but forbidden action (HTTP 403).
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	if e.Message == "" {
		return "permission denied"
	}
	return fmt.Sprintf("permission denied: %s", e.Message)
}

// ValidationError reports a rejected payload (HTTP 400) with per-field
// messages. It is absorbed into form state by callers, never fatal.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// TransportError reports a network failure or an unhandled server status.
// Status is zero when the request never produced a response.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	return fmt.Sprintf("server returned HTTP %d", e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// duplicateMarkers maps uniqueness-constraint markers in a 403 body to the
// form field they belong to.
var duplicateMarkers = map[string]string{
	"username": "username",
	"email":    "email",
	"ci":       "ci",
}

// TranslateDuplicate converts a permission error whose body names a known
// uniqueness constraint into a field-level validation error. It returns the
// original error untouched when no marker matches.
func TranslateDuplicate(err error) error {
	var perr *PermissionError
	if !errors.As(err, &perr) {
		return err
	}

	body := strings.ToLower(perr.Message)
	fields := make(map[string]string)
	for marker, field := range duplicateMarkers {
		if strings.Contains(body, marker) {
			fields[field] = "already in use"
		}
	}

	if len(fields) == 0 {
		return err
	}

	return &ValidationError{Fields: fields}
}
