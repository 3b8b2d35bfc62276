// Package resolver turns a rendered transcript into the agent's next intent.
//
// The Resolver interface is the boundary the kernel depends on. OpenAI is the
// production implementation: it asks an OpenAI-compatible chat endpoint (the
// /v1 API served by Ollama) for a JSON object and decodes it as an intent.
package resolver

import (
	"context"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

// Resolver maps a transcript and a model identifier to a structured intent.
// Any failure is reported as an error wrapping ErrResolution.
type Resolver interface {
	Resolve(ctx context.Context, transcript, model string) (protocol.Intent, error)
}

// Func adapts an ordinary function to the Resolver interface.
type Func func(ctx context.Context, transcript, model string) (protocol.Intent, error)

func (f Func) Resolve(ctx context.Context, transcript, model string) (protocol.Intent, error) {
	return f(ctx, transcript, model)
}
