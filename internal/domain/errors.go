package domain

import "errors"

// Error kinds. Callers attach detail with fmt.Errorf("...: %w", kind) and
// the HTTP layer maps kinds to status codes via errors.Is.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrDependency = errors.New("dependency failure")
)
