package session_test

import (
	"errors"
	"testing"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/session"
)

func TestDefaultConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	if cfg.MaxEntries != 20 {
		t.Errorf("got MaxEntries %d, want 20", cfg.MaxEntries)
	}
	if cfg.RetainEntries != 15 {
		t.Errorf("got RetainEntries %d, want 15", cfg.RetainEntries)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Merge(&session.Config{MaxEntries: 8, RetainEntries: 4})

	if cfg.MaxEntries != 8 || cfg.RetainEntries != 4 {
		t.Errorf("got %+v, want max=8 retain=4", cfg)
	}
}

func TestConfig_Merge_ZeroValuesPreserveDefaults(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Merge(&session.Config{})

	if cfg != session.DefaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     session.Config
		wantErr bool
	}{
		{"defaults", session.DefaultConfig(), false},
		{"retain equals max", session.Config{MaxEntries: 5, RetainEntries: 5}, false},
		{"retain above max", session.Config{MaxEntries: 5, RetainEntries: 6}, true},
		{"zero max", session.Config{MaxEntries: 0, RetainEntries: 0}, true},
		{"negative retain", session.Config{MaxEntries: 5, RetainEntries: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, session.ErrInvalidLimits) {
				t.Errorf("got error %v, want ErrInvalidLimits", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNew_FromConfig(t *testing.T) {
	cfg := session.DefaultConfig()

	s, err := session.New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.ID() == "" {
		t.Error("session ID is empty")
	}
	if s.Len() != 0 {
		t.Errorf("got %d entries, want 0", s.Len())
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := session.Config{MaxEntries: 3, RetainEntries: 10}

	if _, err := session.New(&cfg); !errors.Is(err, session.ErrInvalidLimits) {
		t.Errorf("got error %v, want ErrInvalidLimits", err)
	}
}

func TestRestore(t *testing.T) {
	cfg := session.DefaultConfig()
	entries := []protocol.Entry{
		protocol.NewEntry(protocol.KindUserInput, "add 2 and 3"),
		protocol.NewEntry(protocol.KindToolCall, `{"intent":"add","a":2,"b":3}`),
	}

	s, err := session.Restore(&cfg, "thread-1", entries)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if s.ID() != "thread-1" {
		t.Errorf("got ID %q, want %q", s.ID(), "thread-1")
	}
	if s.Len() != 2 {
		t.Errorf("got %d entries, want 2", s.Len())
	}

	entries[0].Payload = "tampered"
	if s.Entries()[0].Payload != "add 2 and 3" {
		t.Error("restored session shares memory with its input")
	}
}

func TestRestore_TrimsOversizedSnapshot(t *testing.T) {
	cfg := session.DefaultConfig()

	var entries []protocol.Entry
	for i := range 30 {
		entries = append(entries, protocol.NewEntry(protocol.KindUserInput, string(rune('a'+i%26))))
	}

	s, err := session.Restore(&cfg, "thread-1", entries)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if s.Len() > cfg.MaxEntries {
		t.Errorf("got %d entries, want at most %d", s.Len(), cfg.MaxEntries)
	}
}

func TestRestore_EmptyID(t *testing.T) {
	cfg := session.DefaultConfig()

	if _, err := session.Restore(&cfg, "", nil); !errors.Is(err, session.ErrEmptyID) {
		t.Errorf("got error %v, want ErrEmptyID", err)
	}
}

func TestRestore_UnknownKind(t *testing.T) {
	cfg := session.DefaultConfig()
	entries := []protocol.Entry{
		protocol.NewEntry(protocol.KindUserInput, "hello"),
		{Kind: "assistant", Payload: "hi"},
	}

	if _, err := session.Restore(&cfg, "thread-1", entries); !errors.Is(err, session.ErrInvalidEntry) {
		t.Errorf("got error %v, want ErrInvalidEntry", err)
	}
}
