package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes the request boundary distinguishes.
var (
	// ErrStorageUnavailable — the record store could not be reached, or a
	// read/write against it failed.
	ErrStorageUnavailable = errors.New("record store unavailable")

	// ErrInvalidQuery — the search query cannot be processed.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrNotFound — a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials — email/password mismatch on login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken — registration with an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError carries field-level messages for malformed or out-of-range
// input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(e.Fields))
}

// UploadError wraps a failure to parse a multipart body or to persist an
// uploaded asset.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return "upload failed: " + e.Err.Error() }
func (e *UploadError) Unwrap() error { return e.Err }
