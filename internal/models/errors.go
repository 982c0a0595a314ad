package models

import "errors"

// Domain error taxonomy. These are expected outcomes returned directly to the caller
// and matched with errors.Is; store failures are wrapped separately and surface as
// internal errors.
var (
	// ErrValidation signals a missing or empty required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals an unresolvable id. Also returned instead of ErrForbidden
	// where revealing existence to a non-owner would leak information.
	ErrNotFound = errors.New("not found")
	// ErrForbidden signals an ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrQuotaExceeded signals the rolling daily story cap was hit.
	ErrQuotaExceeded = errors.New("quota exceeded")
)
