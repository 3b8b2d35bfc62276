package threads

import "errors"

// Sentinel errors for thread management.
var (
	ErrThreadNotFound = errors.New("thread not found")
	ErrEmptyMessage   = errors.New("message is empty")
)
