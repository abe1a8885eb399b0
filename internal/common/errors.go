// Package common defines sentinel errors shared across the GameVault data
// layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Account errors.
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoActiveSession    = errors.New("no active session")

	// Record/blob errors.
	ErrMalformedRecord = errors.New("malformed record")
	ErrCorruptBlob     = errors.New("corrupt blob")

	// Generic internal failure.
	ErrInternal = errors.New("internal error")
)
