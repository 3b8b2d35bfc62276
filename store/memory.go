package store

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

type memoryStore struct {
	states map[string]protocol.State
	mu     sync.RWMutex
}

// NewMemoryStore creates a Store that keeps snapshots in process memory.
func NewMemoryStore() Store {
	return &memoryStore{states: make(map[string]protocol.State)}
}

func (s *memoryStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.states)), nil
}

func (s *memoryStore) Load(_ context.Context, id string) (protocol.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, exists := s.states[id]
	if !exists {
		return protocol.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return state.Clone(), nil
}

func (s *memoryStore) Save(_ context.Context, state protocol.State) error {
	if err := ValidateID(state.ThreadID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[state.ThreadID] = state.Clone()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.states[id]; !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.states, id)
	return nil
}
