// Package store persists thread snapshots so conversations survive the
// process that started them. The kernel itself keeps no durable state; the
// thread manager saves a snapshot after every turn.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

// Store saves and retrieves thread snapshots keyed by thread id.
// Implementations perform I/O on each call without caching.
type Store interface {
	// List returns the ids of all stored threads in ascending order.
	List(ctx context.Context) ([]string, error)
	// Load returns the snapshot for id, or ErrNotFound.
	Load(ctx context.Context, id string) (protocol.State, error)
	// Save creates or overwrites the snapshot for state.ThreadID.
	Save(ctx context.Context, state protocol.State) error
	// Delete removes the snapshot for id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}

// ValidateID rejects ids that cannot be used as a single file name.
func ValidateID(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("%w: empty", ErrInvalidID)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidID, id)
	case strings.HasPrefix(id, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidID, id)
	}
	return nil
}
