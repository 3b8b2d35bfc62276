package protocol

import "errors"

// Sentinel errors for intent decoding.
var (
	ErrUnknownIntent   = errors.New("unknown intent")
	ErrMalformedIntent = errors.New("malformed intent")
)
