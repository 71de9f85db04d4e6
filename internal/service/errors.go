package service

import "errors"

// Failure classes returned to callers. Anything not wrapping one of these is
// an infrastructure fault and must not leak details past the transport layer.
var (
	// ErrNotFound covers entities that are absent or whose existence is hidden
	// from the caller.
	ErrNotFound = errors.New("not found")
	// ErrForbidden covers entities the caller may know exist but has no right
	// to touch.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput covers payloads that fail validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict covers operations blocked by current state, such as deleting
	// a category that still has tasks.
	ErrConflict = errors.New("conflict")
	// ErrInvalidCredentials covers failed login and revoked or expired
	// sessions. It deliberately does not say which part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
