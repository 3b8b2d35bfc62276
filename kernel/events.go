package kernel

import "github.com/tailored-agentic-units/ollama-agent/observability"

// Kernel event types emitted during a turn.
const (
	EventStepStart        observability.EventType = "kernel.step.start"
	EventResolveComplete  observability.EventType = "kernel.resolve.complete"
	EventResolveError     observability.EventType = "kernel.resolve.error"
	EventDispatchComplete observability.EventType = "kernel.dispatch.complete"
	EventDispatchError    observability.EventType = "kernel.dispatch.error"
	EventModelChanged     observability.EventType = "kernel.model.changed"
	EventStepComplete     observability.EventType = "kernel.step.complete"
)
