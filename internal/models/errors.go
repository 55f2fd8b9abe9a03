package models

import (
	"errors"
)

// Service-level error taxonomy. Handlers map these to HTTP statuses; note
// that access to another user's report surfaces as ErrNotFound rather than
// ErrForbidden so callers cannot probe which report ids exist.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)
