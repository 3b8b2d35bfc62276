package store_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/store"
)

func sampleState(id string) protocol.State {
	return protocol.State{
		ThreadID:        id,
		CurrentModel:    "llama3.1:8b",
		ServiceEndpoint: "http://localhost:11434",
		Context: []protocol.Entry{
			protocol.NewEntry(protocol.KindUserInput, "what is 2 plus 3"),
			protocol.NewEntry(protocol.KindToolCall, `{"intent":"add","a":2,"b":3}`),
		},
	}
}

func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	return map[string]store.Store{
		"memory": store.NewMemoryStore(),
		"file":   store.NewFileStore(filepath.Join(t.TempDir(), "threads")),
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			want := sampleState("thread-a")

			if err := s.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := s.Load(ctx, "thread-a")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			state := sampleState("thread-a")

			if err := s.Save(ctx, state); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			state.CurrentModel = "mistral:7b"
			if err := s.Save(ctx, state); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := s.Load(ctx, "thread-a")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got.CurrentModel != "mistral:7b" {
				t.Errorf("got model %q, want %q", got.CurrentModel, "mistral:7b")
			}
		})
	}
}

func TestStore_List(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			ids, err := s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(ids) != 0 {
				t.Errorf("got %d ids on empty store, want 0", len(ids))
			}

			for _, id := range []string{"charlie", "alpha", "bravo"} {
				if err := s.Save(ctx, sampleState(id)); err != nil {
					t.Fatalf("Save(%s) error = %v", id, err)
				}
			}

			ids, err = s.List(ctx)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if diff := cmp.Diff([]string{"alpha", "bravo", "charlie"}, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStore_Delete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if err := s.Save(ctx, sampleState("thread-a")); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := s.Delete(ctx, "thread-a"); err != nil {
				t.Fatalf("Delete() error = %v", err)
			}

			if _, err := s.Load(ctx, "thread-a"); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("Load() after delete: got %v, want ErrNotFound", err)
			}
			if err := s.Delete(ctx, "thread-a"); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("second Delete(): got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestStore_LoadIsolation(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			state := sampleState("thread-a")

			if err := s.Save(ctx, state); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			state.Context[0].Payload = "mutated after save"

			got, err := s.Load(ctx, "thread-a")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			got.Context[0].Payload = "mutated after load"

			again, err := s.Load(ctx, "thread-a")
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if again.Context[0].Payload != "what is 2 plus 3" {
				t.Errorf("stored snapshot was mutated: %q", again.Context[0].Payload)
			}
		})
	}
}

func TestStore_InvalidID(t *testing.T) {
	ids := []string{"", "../escape", `a\b`, ".hidden", "."}

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range ids {
				err := s.Save(context.Background(), sampleState(id))
				if !errors.Is(err, store.ErrInvalidID) {
					t.Errorf("Save(%q): got %v, want ErrInvalidID", id, err)
				}
			}
		})
	}
}

func TestFileStore_Layout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "threads")
	s := store.NewFileStore(root)
	ctx := context.Background()

	if err := s.Save(ctx, sampleState("thread-a")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "thread-a.json")); err != nil {
		t.Errorf("snapshot file missing: %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d files, want 1 (temp file left behind?)", len(entries))
	}
}

func TestFileStore_ListSkipsForeignFiles(t *testing.T) {
	root := t.TempDir()
	s := store.NewFileStore(root)
	ctx := context.Background()

	if err := s.Save(ctx, sampleState("thread-a")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	writeTestFile(t, filepath.Join(root, ".tmp-123"), "partial")
	writeTestFile(t, filepath.Join(root, "notes.txt"), "ignore me")
	if err := os.Mkdir(filepath.Join(root, "nested.json"), 0o755); err != nil {
		t.Fatalf("Mkdir() error = %v", err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if diff := cmp.Diff([]string{"thread-a"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "broken.json"), "{not json")

	_, err := store.NewFileStore(root).Load(context.Background(), "broken")
	if !errors.Is(err, store.ErrLoadFailed) {
		t.Errorf("got %v, want ErrLoadFailed", err)
	}
}

func TestFileStore_LoadMismatchedID(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "thread-a.json"), `{"thread_id":"thread-b","current_model":"x","context":[]}`)

	_, err := store.NewFileStore(root).Load(context.Background(), "thread-a")
	if !errors.Is(err, store.ErrLoadFailed) {
		t.Errorf("got %v, want ErrLoadFailed", err)
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	mem := store.NewStore(&store.Config{})
	if err := mem.Save(ctx, sampleState("thread-a")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	root := t.TempDir()
	file := store.NewStore(&store.Config{Path: root})
	if err := file.Save(ctx, sampleState("thread-a")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "thread-a.json")); err != nil {
		t.Errorf("file store not selected: %v", err)
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Merge(&store.Config{})
	if cfg.Path != "" {
		t.Errorf("empty merge changed path to %q", cfg.Path)
	}

	cfg.Merge(&store.Config{Path: "/var/lib/agent"})
	if cfg.Path != "/var/lib/agent" {
		t.Errorf("got path %q, want %q", cfg.Path, "/var/lib/agent")
	}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile(%s) error = %v", path, err)
	}
}
