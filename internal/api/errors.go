package api

import "fmt"

// APIError is a non-2xx response from the marketplace API carrying the
// server's human-readable message. The workflow layer surfaces Message as a
// transient notification; it never inspects StatusCode directly.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
}

// ConflictError is a 409 response: the request collided with existing state,
// e.g. registering an email that is already taken. Field names the offending
// input so the UI can pin a field-level error next to it.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: conflict on field %q", e.Field)
}

// ConflictField returns the offending field name. The account workflow
// detects duplicate-email conflicts through this method without importing
// this package.
func (e *ConflictError) ConflictField() string { return e.Field }
