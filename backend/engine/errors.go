package engine

import "errors"

// Failure kinds surfaced to callers. Derivation functions never return
// errors for malformed data (unknown ids are skipped, missing fields
// default to zero), so these cover ownership, limits, and I/O only.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrMaxAttemptsExceeded = errors.New("max attempts exceeded")
	ErrNoEligibleQuestions = errors.New("no eligible questions")
	ErrStoreUnavailable    = errors.New("progress store unavailable")
	ErrShapeMismatch       = errors.New("snapshot shape mismatch")
)
