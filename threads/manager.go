// Package threads hosts one kernel per conversation thread. The Manager
// serializes turns within a thread, lets distinct threads proceed
// concurrently, and saves a snapshot after every turn so a thread can be
// resumed by a later process.
package threads

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/kernel"
	"github.com/tailored-agentic-units/ollama-agent/store"
)

// Summary describes a stored thread.
type Summary struct {
	ThreadID      string `json:"thread_id"`
	Model         string `json:"model"`
	ContextLength int    `json:"context_length"`
}

// Reply is the outcome of a turn on a named thread, with the thread state
// after the turn.
type Reply struct {
	ThreadID string         `json:"thread_id"`
	Turn     *kernel.Turn   `json:"turn"`
	State    protocol.State `json:"state"`
}

// thread pairs a kernel with the lock that serializes its turns. A retired
// thread has been deleted or evicted; holders of a stale pointer look the id
// up again.
type thread struct {
	mu      sync.Mutex
	kernel  *kernel.Kernel
	retired bool
}

// Manager owns the kernels of all live threads.
type Manager struct {
	cfg     *kernel.Config
	store   store.Store
	opts    []kernel.Option
	threads map[string]*thread
	mu      sync.Mutex
}

// NewManager creates a Manager that builds kernels from cfg and opts and
// persists them in st.
func NewManager(cfg *kernel.Config, st store.Store, opts ...kernel.Option) *Manager {
	return &Manager{
		cfg:     cfg,
		store:   st,
		opts:    opts,
		threads: make(map[string]*thread),
	}
}

// Create starts an empty thread. An empty model selects the configured
// default.
func (m *Manager) Create(ctx context.Context, model string) (protocol.State, error) {
	k, err := m.newKernel(model)
	if err != nil {
		return protocol.State{}, err
	}

	state := k.State()
	if err := m.store.Save(ctx, state); err != nil {
		return protocol.State{}, fmt.Errorf("failed to save thread: %w", err)
	}

	m.mu.Lock()
	m.threads[state.ThreadID] = &thread{kernel: k}
	m.mu.Unlock()

	return state, nil
}

// Start creates a thread and runs its first turn.
func (m *Manager) Start(ctx context.Context, message, model string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	state, err := m.Create(ctx, model)
	if err != nil {
		return nil, err
	}
	return m.Continue(ctx, state.ThreadID, message)
}

// Continue runs a turn on an existing thread. Dispatch failures are returned
// alongside a Reply describing the recorded turn.
func (m *Manager) Continue(ctx context.Context, id, message string) (*Reply, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	var reply *Reply
	err := m.with(ctx, id, func(k *kernel.Kernel) error {
		turn, stepErr := k.Step(ctx, message)
		if turn == nil {
			return stepErr
		}
		reply = &Reply{ThreadID: id, Turn: turn, State: k.State()}
		return stepErr
	})
	return reply, err
}

// SelectModel switches the model of an existing thread.
func (m *Manager) SelectModel(ctx context.Context, id, model string) (*Reply, error) {
	var reply *Reply
	err := m.with(ctx, id, func(k *kernel.Kernel) error {
		intent := protocol.SelectModel{ModelName: model}
		result, err := k.Dispatch(ctx, intent)
		if err != nil {
			return err
		}
		reply = &Reply{
			ThreadID: id,
			Turn:     &kernel.Turn{NextStep: intent, Result: result},
			State:    k.State(),
		}
		return nil
	})
	return reply, err
}

// Execute runs a single command on a throwaway thread that is never stored.
func (m *Manager) Execute(ctx context.Context, command, model string) (*kernel.Turn, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyMessage
	}

	k, err := m.newKernel(model)
	if err != nil {
		return nil, err
	}
	return k.Step(ctx, command)
}

// Get returns the current state of a thread.
func (m *Manager) Get(ctx context.Context, id string) (protocol.State, error) {
	t, err := m.acquire(ctx, id)
	if err != nil {
		return protocol.State{}, err
	}
	defer t.mu.Unlock()

	return t.kernel.State(), nil
}

// List summarizes every stored thread from its latest snapshot. Threads are
// not resumed.
func (m *Manager) List(ctx context.Context) ([]Summary, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		state, err := m.store.Load(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load thread: %w", err)
		}
		summaries = append(summaries, Summary{
			ThreadID:      state.ThreadID,
			Model:         state.CurrentModel,
			ContextLength: len(state.Context),
		})
	}
	return summaries, nil
}

// Delete removes a thread from memory and from the store. A turn in flight
// on the thread finishes first; turns waiting behind it see the thread gone.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	t, live := m.threads[id]
	if !live {
		// Park a locked placeholder so a concurrent resume waits for the
		// outcome instead of loading the snapshot being deleted.
		t = &thread{}
		t.mu.Lock()
		m.threads[id] = t
	}
	m.mu.Unlock()

	if live {
		t.mu.Lock()
	}
	defer t.mu.Unlock()

	err := m.store.Delete(ctx, id)
	m.retire(id, t)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return fmt.Errorf("%w: %s", ErrThreadNotFound, id)
		}
		return fmt.Errorf("failed to delete thread: %w", err)
	}
	return nil
}

// with runs fn while holding the thread's lock and saves the thread
// afterwards, whether or not fn failed.
func (m *Manager) with(ctx context.Context, id string, fn func(*kernel.Kernel) error) error {
	t, err := m.acquire(ctx, id)
	if err != nil {
		return err
	}
	defer t.mu.Unlock()

	fnErr := fn(t.kernel)
	if err := m.store.Save(ctx, t.kernel.State()); err != nil {
		return errors.Join(fnErr, fmt.Errorf("failed to save thread: %w", err))
	}
	return fnErr
}

// acquire returns the live thread for id with its lock held.
func (m *Manager) acquire(ctx context.Context, id string) (*thread, error) {
	for {
		t, err := m.thread(ctx, id)
		if err != nil {
			return nil, err
		}

		t.mu.Lock()
		if !t.retired {
			return t, nil
		}
		t.mu.Unlock()
	}
}

// retire marks t dead and drops it from the map. The caller holds t.mu.
func (m *Manager) retire(id string, t *thread) {
	t.retired = true

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.threads[id] == t {
		delete(m.threads, id)
	}
}

func (m *Manager) thread(ctx context.Context, id string) (*thread, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.threads[id]; ok {
		return t, nil
	}

	state, err := m.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %s", ErrThreadNotFound, id)
		}
		return nil, fmt.Errorf("failed to load thread: %w", err)
	}

	k, err := kernel.FromState(m.cfg, state, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to resume thread: %w", err)
	}

	t := &thread{kernel: k}
	m.threads[id] = t
	return t, nil
}

func (m *Manager) newKernel(model string) (*kernel.Kernel, error) {
	cfg := *m.cfg
	if model != "" {
		cfg.Model = model
	}

	k, err := kernel.New(&cfg, m.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create thread: %w", err)
	}
	return k, nil
}
