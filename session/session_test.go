package session_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/session"
)

func newTestSession(t *testing.T) session.Session {
	t.Helper()
	cfg := session.DefaultConfig()
	s, err := session.New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestSession_ID_Unique(t *testing.T) {
	s1 := newTestSession(t)
	s2 := newTestSession(t)

	if s1.ID() == s2.ID() {
		t.Errorf("two sessions should have different IDs, both got %q", s1.ID())
	}
}

func TestSession_ID_Stable(t *testing.T) {
	s := newTestSession(t)

	if s.ID() != s.ID() {
		t.Error("same session returned different IDs")
	}
}

func TestSession_Append_Order(t *testing.T) {
	s := newTestSession(t)

	kinds := []protocol.Kind{
		protocol.KindUserInput,
		protocol.KindToolCall,
		protocol.KindToolResponse,
		protocol.KindError,
	}
	for _, k := range kinds {
		s.Append(k, string(k))
	}

	entries := s.Entries()
	if len(entries) != len(kinds) {
		t.Fatalf("got %d entries, want %d", len(entries), len(kinds))
	}
	for i, e := range entries {
		if e.Kind != kinds[i] {
			t.Errorf("entry %d: got kind %q, want %q", i, e.Kind, kinds[i])
		}
	}
}

func TestSession_Append_BoundedWindow(t *testing.T) {
	s := newTestSession(t)

	var appended []protocol.Entry
	for i := range 100 {
		before := s.Len()
		payload := fmt.Sprintf("message %d", i)
		s.Append(protocol.KindUserInput, payload)
		appended = append(appended, protocol.NewEntry(protocol.KindUserInput, payload))

		if s.Len() > 20 {
			t.Fatalf("after append %d: got %d entries, want at most 20", i, s.Len())
		}
		if before == 20 && s.Len() != 15 {
			t.Fatalf("after append %d: got %d entries, want 15 after trimming", i, s.Len())
		}
	}

	entries := s.Entries()
	want := appended[len(appended)-len(entries):]
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("survivors are not the most recent entries (-want +got):\n%s", diff)
	}
}

func TestSession_Append_TrimsToRetain(t *testing.T) {
	s := newTestSession(t)

	for i := range 20 {
		s.Append(protocol.KindUserInput, fmt.Sprintf("m%d", i))
	}
	if s.Len() != 20 {
		t.Fatalf("got %d entries, want 20 before trimming", s.Len())
	}

	s.Append(protocol.KindUserInput, "m20")

	entries := s.Entries()
	if len(entries) != 15 {
		t.Fatalf("got %d entries, want 15 after trimming", len(entries))
	}
	for i, e := range entries {
		want := fmt.Sprintf("m%d", i+6)
		if e.Payload != want {
			t.Errorf("entry %d: got %q, want %q", i, e.Payload, want)
		}
	}
}

func TestSession_Append_CustomLimits(t *testing.T) {
	cfg := session.Config{MaxEntries: 3, RetainEntries: 1}
	s, err := session.New(&cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, p := range []string{"a", "b", "c", "d"} {
		s.Append(protocol.KindUserInput, p)
	}

	entries := s.Entries()
	if len(entries) != 1 || entries[0].Payload != "d" {
		t.Errorf("got %+v, want only the newest entry", entries)
	}
}

func TestSession_Render(t *testing.T) {
	s := newTestSession(t)
	s.Append(protocol.KindUserInput, "add 2 and 3")
	s.Append(protocol.KindToolCall, `{"intent":"add","a":2,"b":3}`)

	want := "<user_input>\nadd 2 and 3\n</user_input>\n\n" +
		"<tool_call>\n{\"intent\":\"add\",\"a\":2,\"b\":3}\n</tool_call>"

	if got := s.Render(); got != want {
		t.Errorf("got transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestSession_Render_Empty(t *testing.T) {
	s := newTestSession(t)

	if got := s.Render(); got != "" {
		t.Errorf("got %q, want empty transcript", got)
	}
}

func TestSession_Render_Idempotent(t *testing.T) {
	s := newTestSession(t)
	s.Append(protocol.KindUserInput, "hello")
	s.Append(protocol.KindError, "resolver timed out")

	first := s.Render()
	second := s.Render()

	if first != second {
		t.Errorf("Render is not idempotent:\n%s\n---\n%s", first, second)
	}
}

func TestSession_Entries_DefensiveCopy(t *testing.T) {
	s := newTestSession(t)
	s.Append(protocol.KindUserInput, "hello")

	entries := s.Entries()
	entries[0].Payload = "tampered"
	_ = append(entries, protocol.NewEntry(protocol.KindUserInput, "extra"))

	original := s.Entries()
	if len(original) != 1 {
		t.Fatalf("got %d entries, want 1", len(original))
	}
	if original[0].Payload != "hello" {
		t.Errorf("entry was mutated: got %q", original[0].Payload)
	}
}

func TestSession_Entries_EmptyIsNonNil(t *testing.T) {
	s := newTestSession(t)

	if s.Entries() == nil {
		t.Error("Entries of an empty session should be non-nil")
	}
}

func TestSession_Concurrent_AppendAndRender(t *testing.T) {
	s := newTestSession(t)
	const n = 100

	var wg sync.WaitGroup
	wg.Add(2 * n)
	for range n {
		go func() {
			defer wg.Done()
			s.Append(protocol.KindUserInput, "msg")
		}()
		go func() {
			defer wg.Done()
			_ = s.Render()
		}()
	}
	wg.Wait()

	if s.Len() > 20 {
		t.Errorf("got %d entries, want at most 20", s.Len())
	}
}
