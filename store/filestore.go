package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

const snapshotExt = ".json"

type fileStore struct {
	root string
}

// NewFileStore creates a Store that writes one JSON file per thread,
// <root>/<thread id>.json. The directory is created on first save.
func NewFileStore(root string) Store {
	return &fileStore{root: root}
}

func (s *fileStore) path(id string) string {
	return filepath.Join(s.root, id+snapshotExt)
}

func (s *fileStore) List(_ context.Context) ([]string, error) {
	dirEntries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	ids := make([]string, 0, len(dirEntries))
	for _, d := range dirEntries {
		name := d.Name()
		if d.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *fileStore) Load(_ context.Context, id string) (protocol.State, error) {
	if err := ValidateID(id); err != nil {
		return protocol.State{}, err
	}

	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return protocol.State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return protocol.State{}, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}

	var state protocol.State
	if err := json.Unmarshal(data, &state); err != nil {
		return protocol.State{}, fmt.Errorf("%w: %s: %v", ErrLoadFailed, id, err)
	}
	if state.ThreadID != id {
		return protocol.State{}, fmt.Errorf("%w: %s: snapshot belongs to %q", ErrLoadFailed, id, state.ThreadID)
	}
	return state.Clone(), nil
}

func (s *fileStore) Save(_ context.Context, state protocol.State) error {
	id := state.ThreadID
	if err := ValidateID(id); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	// Write to a hidden temp file and rename, so readers never observe a
	// partially written snapshot.
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}
	if err := os.Rename(tmpName, s.path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, id, err)
	}

	return nil
}

func (s *fileStore) Delete(_ context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}

	if err := os.Remove(s.path(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return fmt.Errorf("delete failed: %s: %w", id, err)
	}
	return nil
}
