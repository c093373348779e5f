// Package service orchestrates board collaboration use cases: every
// operation checks access, applies ordering or filtering, narrates the
// change in the audit log and persists inside one unit of work.
package service

import (
	"errors"

	"taskboard/internal/repository"
)

// Error kinds surfaced to callers. Every failure wraps exactly one of them,
// or is an opaque persistence error.
var (
	ErrNotFound           = repository.ErrNotFound
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
