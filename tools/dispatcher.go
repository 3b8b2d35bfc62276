// Package tools executes the effect of an intent: arithmetic, catalog
// queries, model switching, and the two conversational replies.
//
// Dispatch matches the closed set of protocol intents with a type switch;
// adding an intent means adding a case here.
package tools

import (
	"context"
	"fmt"

	"github.com/tailored-agentic-units/ollama-agent/catalog"
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
	"github.com/tailored-agentic-units/ollama-agent/core/response"
)

// ModelState is the part of the agent state a dispatch may read or change.
type ModelState interface {
	CurrentModel() string
	SetCurrentModel(model string)
}

// Dispatcher produces results for intents. It holds no per-thread state and
// can be shared between reducers.
type Dispatcher struct {
	catalog catalog.Catalog
}

// NewDispatcher creates a Dispatcher backed by the given catalog.
func NewDispatcher(c catalog.Catalog) *Dispatcher {
	return &Dispatcher{catalog: c}
}

// Dispatch executes intent. state is consulted for list_models and mutated by
// a successful select_model; other intents leave it untouched.
func (d *Dispatcher) Dispatch(ctx context.Context, intent protocol.Intent, state ModelState) (response.Result, error) {
	switch in := intent.(type) {
	case protocol.Add:
		return response.NewCalculation("addition", in.A, in.B, in.A+in.B), nil
	case protocol.Subtract:
		return response.NewCalculation("subtraction", in.A, in.B, in.A-in.B), nil
	case protocol.Multiply:
		return response.NewCalculation("multiplication", in.A, in.B, in.A*in.B), nil
	case protocol.Divide:
		if in.B == 0 {
			return nil, fmt.Errorf("failed to perform division: %w", ErrDivisionByZero)
		}
		return response.NewCalculation("division", in.A, in.B, in.A/in.B), nil
	case protocol.ListModels:
		return d.listModels(ctx, state)
	case protocol.SelectModel:
		return d.selectModel(ctx, in.ModelName, state)
	case protocol.RequestMoreInformation:
		return response.Clarification{Message: in.Message}, nil
	case protocol.DoneForNow:
		return response.FinalResponse{Message: in.Message}, nil
	case nil:
		return nil, fmt.Errorf("%w: nil intent", ErrUnknownIntent)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownIntent, intent)
	}
}

func (d *Dispatcher) listModels(ctx context.Context, state ModelState) (response.Result, error) {
	models, err := d.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w: %w", ErrCatalogUnavailable, err)
	}

	summaries := make([]response.ModelSummary, len(models))
	for i, m := range models {
		summaries[i] = response.ModelSummary{
			Name:    m.Name,
			Size:    m.Size,
			Family:  m.Family(),
			Display: catalog.Display(m),
		}
	}

	current := state.CurrentModel()
	return response.ModelList{
		Models:          summaries,
		Recommendations: d.catalog.Recommendations(),
		CurrentModel:    current,
		Message:         fmt.Sprintf("Found %d available models. Current model: %s", len(models), current),
	}, nil
}

func (d *Dispatcher) selectModel(ctx context.Context, name string, state ModelState) (response.Result, error) {
	models, err := d.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to select model: %w: %w", ErrCatalogUnavailable, err)
	}

	if !catalog.Contains(models, name) {
		return nil, fmt.Errorf("failed to select model: %w", &UnknownModelError{
			Model:     name,
			Available: catalog.Names(models),
		})
	}

	previous := state.CurrentModel()
	state.SetCurrentModel(name)

	return response.ModelSelected{
		PreviousModel: previous,
		NewModel:      name,
		Message: fmt.Sprintf("Successfully switched from '%s' to '%s'. The new model will be used for subsequent interactions.",
			previous, name),
	}, nil
}
