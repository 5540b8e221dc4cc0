package models

import "errors"

// Error kinds surfaced by the core. Callers match them with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")

	// Storage and remote failures are logged and absorbed; they only reach
	// callers wrapped inside remote results and sync reports.
	ErrStorageUnavailable = errors.New("local storage unavailable")
	ErrRemoteUnavailable  = errors.New("remote backend unavailable")
)
