package session

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

type memorySession struct {
	id      string
	entries []protocol.Entry
	max     int
	retain  int
	mu      sync.RWMutex
}

// NewMemorySession creates a Session backed by an in-memory slice, assigned
// a unique UUIDv7 identifier. Callers are expected to pass limits that
// satisfy Config.Validate; New does the checking.
func NewMemorySession(maxEntries, retainEntries int) Session {
	return &memorySession{
		id:     uuid.Must(uuid.NewV7()).String(),
		max:    maxEntries,
		retain: retainEntries,
	}
}

func (s *memorySession) ID() string {
	return s.id
}

func (s *memorySession) Append(kind protocol.Kind, payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, protocol.NewEntry(kind, payload))
	if len(s.entries) > s.max {
		// Copy into a fresh slice so the dropped prefix can be collected.
		s.entries = slices.Clone(s.entries[len(s.entries)-s.retain:])
	}
}

func (s *memorySession) Entries() []protocol.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := slices.Clone(s.entries)
	if copied == nil {
		copied = []protocol.Entry{}
	}
	return copied
}

func (s *memorySession) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *memorySession) Render() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b strings.Builder
	for i, e := range s.entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("<")
		b.WriteString(string(e.Kind))
		b.WriteString(">\n")
		b.WriteString(e.Payload)
		b.WriteString("\n</")
		b.WriteString(string(e.Kind))
		b.WriteString(">")
	}
	return b.String()
}
