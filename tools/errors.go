package tools

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for dispatch. All of them are surfaced to the caller of
// the kernel's Step; none is retried.
var (
	ErrDivisionByZero     = errors.New("division by zero")
	ErrCatalogUnavailable = errors.New("model catalog unavailable")
	ErrUnknownModel       = errors.New("unknown model")
	ErrUnknownIntent      = errors.New("unknown intent")
)

// UnknownModelError reports a select_model target missing from the catalog.
// It matches ErrUnknownModel with errors.Is.
type UnknownModelError struct {
	Model     string
	Available []string
}

func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("model '%s' not found. Available models: %s", e.Model, strings.Join(e.Available, ", "))
}

func (e *UnknownModelError) Is(target error) bool {
	return target == ErrUnknownModel
}
