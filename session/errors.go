package session

import "errors"

// Sentinel errors for session construction.
var (
	ErrInvalidLimits = errors.New("invalid context window limits")
	ErrEmptyID       = errors.New("session id is empty")
	ErrInvalidEntry  = errors.New("invalid context entry")
)
