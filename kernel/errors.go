package kernel

import "errors"

// Sentinel errors for kernel construction.
var (
	ErrEmptyModel    = errors.New("current model is empty")
	ErrEmptyEndpoint = errors.New("service endpoint is empty")
)
