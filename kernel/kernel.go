// Package kernel implements the agent reducer: one turn folds a user input
// into the context log, asks the resolver for the next intent, dispatches it,
// and records the outcome.
//
// The kernel initializes from configuration via New, creating its
// collaborators internally. Functional options allow test overrides of any
// collaborator.
//
//	k, err := kernel.New(&cfg)
//	turn, err := k.Step(ctx, "what is 2 plus 3?")
package kernel

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tailored-agentic-units/ollama-agent/catalog"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/core/response"
	"github.com/tailored-agentic-units/ollama-agent/observability"
	"github.com/tailored-agentic-units/ollama-agent/resolver"
	"github.com/tailored-agentic-units/ollama-agent/session"
	"github.com/tailored-agentic-units/ollama-agent/tools"
)

// Turn is the outcome of a single Step. Result is nil when dispatch failed.
type Turn struct {
	NextStep protocol.Intent `json:"next_step"`
	Result   response.Result `json:"result,omitempty"`
}

// Option configures a Kernel after config-driven initialization.
// Applied by New after cold start; overrides replace config-created defaults.
type Option func(*Kernel)

// WithResolver overrides the config-created OpenAI-compatible resolver.
func WithResolver(r resolver.Resolver) Option {
	return func(k *Kernel) { k.resolver = r }
}

// WithCatalog overrides the config-created Ollama catalog.
func WithCatalog(c catalog.Catalog) Option {
	return func(k *Kernel) { k.catalog = c }
}

// WithSession overrides the config-created session.
func WithSession(s session.Session) Option {
	return func(k *Kernel) { k.session = s }
}

// WithObserver overrides the observer named in the configuration.
func WithObserver(o observability.Observer) Option {
	return func(k *Kernel) { k.observer = o }
}

// Kernel owns the state of one conversation thread. Calls must not overlap;
// callers hosting many threads serialize access per thread.
type Kernel struct {
	session    session.Session
	resolver   resolver.Resolver
	catalog    catalog.Catalog
	dispatcher *tools.Dispatcher
	observer   observability.Observer
	model      string
	endpoint   string
}

// New creates a Kernel for a fresh thread from configuration.
func New(cfg *Config, opts ...Option) (*Kernel, error) {
	sesh, err := session.New(&cfg.Session)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return build(cfg, sesh, cfg.Model, cfg.Endpoint, opts)
}

// FromState resumes a Kernel from a snapshot. The thread id, model, endpoint,
// and context come from state; cfg supplies everything else.
func FromState(cfg *Config, state protocol.State, opts ...Option) (*Kernel, error) {
	sesh, err := session.Restore(&cfg.Session, state.ThreadID, state.Context)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return build(cfg, sesh, state.CurrentModel, state.ServiceEndpoint, opts)
}

func build(cfg *Config, sesh session.Session, model, endpoint string, opts []Option) (*Kernel, error) {
	if model == "" {
		return nil, ErrEmptyModel
	}
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}

	observerName := cfg.Observer
	if observerName == "" {
		observerName = defaultObserver
	}
	observer, err := observability.ParseObservers(observerName)
	if err != nil {
		return nil, fmt.Errorf("failed to create observer: %w", err)
	}

	k := &Kernel{
		session:  sesh,
		resolver: resolver.NewOpenAI(endpoint, &cfg.Resolver),
		catalog:  catalog.NewOllama(endpoint, &cfg.Catalog),
		observer: observer,
		model:    model,
		endpoint: endpoint,
	}

	for _, opt := range opts {
		opt(k)
	}

	k.dispatcher = tools.NewDispatcher(k.catalog)
	return k, nil
}

// ThreadID returns the identifier of the thread this kernel owns.
func (k *Kernel) ThreadID() string {
	return k.session.ID()
}

// CurrentModel returns the model used for intent resolution.
func (k *Kernel) CurrentModel() string {
	return k.model
}

// State returns a snapshot of the thread. The snapshot shares nothing with
// the kernel.
func (k *Kernel) State() protocol.State {
	return protocol.State{
		ThreadID:        k.session.ID(),
		CurrentModel:    k.model,
		Context:         k.session.Entries(),
		ServiceEndpoint: k.endpoint,
	}
}

// Health reports whether the model service is reachable.
func (k *Kernel) Health(ctx context.Context) error {
	if h, ok := k.catalog.(interface{ Health(context.Context) error }); ok {
		return h.Health(ctx)
	}
	_, err := k.catalog.List(ctx)
	return err
}

// Step runs one turn for input.
//
// A resolver failure is absorbed: the compacted error is recorded and the
// turn asks the user to rephrase, with a nil error. A dispatch failure is
// returned unchanged together with the resolved intent; nothing is recorded
// for it beyond the tool call.
func (k *Kernel) Step(ctx context.Context, input string) (*Turn, error) {
	start := time.Now()
	k.emit(ctx, EventStepStart, observability.LevelVerbose, map[string]any{
		"input_length":   len(input),
		"context_length": k.session.Len(),
		"model":          k.model,
	})

	k.session.Append(protocol.KindUserInput, input)

	intent, err := k.resolver.Resolve(ctx, k.session.Render(), k.model)
	if err == nil && intent == nil {
		err = fmt.Errorf("%w: resolver returned no intent", resolver.ErrResolution)
	}
	if err != nil {
		compact := CompactError(err)
		k.session.Append(protocol.KindError, compact)
		k.emit(ctx, EventResolveError, observability.LevelWarning, map[string]any{
			"error": compact,
			"model": k.model,
		})

		return &Turn{
			NextStep: protocol.RequestMoreInformation{Message: ClarificationMessage},
			Result:   response.Clarification{Message: ClarificationMessage},
		}, nil
	}

	call, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode intent: %w", err)
	}
	k.session.Append(protocol.KindToolCall, string(call))
	k.emit(ctx, EventResolveComplete, observability.LevelVerbose, map[string]any{
		"intent": string(intent.Tag()),
	})

	result, err := k.Dispatch(ctx, intent)
	if err != nil {
		return &Turn{NextStep: intent}, err
	}

	k.emit(ctx, EventStepComplete, observability.LevelInfo, map[string]any{
		"intent":         string(intent.Tag()),
		"result":         string(result.Type()),
		"context_length": k.session.Len(),
		"duration_ms":    time.Since(start).Milliseconds(),
	})

	return &Turn{NextStep: intent, Result: result}, nil
}

// Dispatch executes intent against the thread and records the result as a
// tool response. Step uses it after resolution; callers may also invoke it
// directly, for example to switch models explicitly.
func (k *Kernel) Dispatch(ctx context.Context, intent protocol.Intent) (response.Result, error) {
	previous := k.model

	result, err := k.dispatcher.Dispatch(ctx, intent, modelState{k})
	if err != nil {
		data := map[string]any{"error": err.Error()}
		if intent != nil {
			data["intent"] = string(intent.Tag())
		}
		k.emit(ctx, EventDispatchError, observability.LevelWarning, data)
		return nil, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	k.session.Append(protocol.KindToolResponse, string(payload))

	k.emit(ctx, EventDispatchComplete, observability.LevelVerbose, map[string]any{
		"intent": string(intent.Tag()),
		"result": string(result.Type()),
	})

	if k.model != previous {
		k.emit(ctx, EventModelChanged, observability.LevelInfo, map[string]any{
			"previous_model": previous,
			"new_model":      k.model,
		})
	}

	return result, nil
}

func (k *Kernel) emit(ctx context.Context, typ observability.EventType, level observability.Level, data map[string]any) {
	k.observer.OnEvent(ctx, observability.Event{
		Type:      typ,
		Level:     level,
		Timestamp: time.Now(),
		Source:    "kernel",
		ThreadID:  k.session.ID(),
		Data:      data,
	})
}

// modelState exposes the kernel's current model to the dispatcher without
// making it settable through the public API.
type modelState struct {
	k *Kernel
}

func (s modelState) CurrentModel() string {
	return s.k.model
}

func (s modelState) SetCurrentModel(model string) {
	s.k.model = model
}
