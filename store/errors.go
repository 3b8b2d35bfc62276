package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrNotFound   = errors.New("thread not found")
	ErrInvalidID  = errors.New("invalid thread id")
	ErrLoadFailed = errors.New("load failed")
	ErrSaveFailed = errors.New("save failed")
)
