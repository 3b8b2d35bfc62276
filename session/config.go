package session

import (
	"fmt"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

const (
	defaultMaxEntries    = 20
	defaultRetainEntries = 15
)

// Config holds context window limits. When an append pushes the log past
// MaxEntries, the oldest entries are dropped until RetainEntries remain.
type Config struct {
	MaxEntries    int `json:"max_entries,omitempty" yaml:"max_entries,omitempty"`
	RetainEntries int `json:"retain_entries,omitempty" yaml:"retain_entries,omitempty"`
}

// DefaultConfig returns the default limits (20 entries, trimmed to 15).
func DefaultConfig() Config {
	return Config{
		MaxEntries:    defaultMaxEntries,
		RetainEntries: defaultRetainEntries,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxEntries > 0 {
		c.MaxEntries = source.MaxEntries
	}
	if source.RetainEntries > 0 {
		c.RetainEntries = source.RetainEntries
	}
}

// Validate reports whether the limits describe a usable window.
func (c *Config) Validate() error {
	if c.MaxEntries <= 0 || c.RetainEntries <= 0 || c.RetainEntries > c.MaxEntries {
		return fmt.Errorf("%w: max=%d retain=%d", ErrInvalidLimits, c.MaxEntries, c.RetainEntries)
	}
	return nil
}

// New creates an empty Session with a fresh identifier.
func New(cfg *Config) (Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewMemorySession(cfg.MaxEntries, cfg.RetainEntries), nil
}

// Restore rebuilds a Session from a stored thread id and entries. The
// window limits are applied to the restored entries.
func Restore(cfg *Config, id string, entries []protocol.Entry) (Session, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &memorySession{
		id:     id,
		max:    cfg.MaxEntries,
		retain: cfg.RetainEntries,
	}
	for i, e := range entries {
		if !e.Kind.IsValid() {
			return nil, fmt.Errorf("%w: entry %d has kind %q", ErrInvalidEntry, i, e.Kind)
		}
		s.Append(e.Kind, e.Payload)
	}
	return s, nil
}
