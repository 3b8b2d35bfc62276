// Package catalog queries the model inventory of an Ollama server and
// carries the static table of recommended models per use case.
package catalog

import (
	"context"
	"fmt"
	"slices"
)

// Catalog is the model-inventory collaborator used by the dispatcher.
type Catalog interface {
	// List returns the full model inventory. Implementations query the
	// backend on every call.
	List(ctx context.Context) ([]Model, error)
	// Recommendations maps a use-case category to an ordered list of model
	// names. Static data; never fails.
	Recommendations() map[string][]string
}

// Details carries the optional model metadata reported by Ollama.
type Details struct {
	ParentModel       string   `json:"parent_model,omitempty"`
	Format            string   `json:"format,omitempty"`
	Family            string   `json:"family,omitempty"`
	Families          []string `json:"families,omitempty"`
	ParameterSize     string   `json:"parameter_size,omitempty"`
	QuantizationLevel string   `json:"quantization_level,omitempty"`
}

// Model is one installed model.
type Model struct {
	Name       string   `json:"name"`
	Model      string   `json:"model,omitempty"`
	ModifiedAt string   `json:"modified_at,omitempty"`
	Size       int64    `json:"size"`
	Digest     string   `json:"digest,omitempty"`
	Details    *Details `json:"details,omitempty"`
}

// Family returns the model family, or "unknown" when Ollama did not report one.
func (m Model) Family() string {
	if m.Details == nil || m.Details.Family == "" {
		return "unknown"
	}
	return m.Details.Family
}

// Display formats a model as "name (family, X.YGB)".
func Display(m Model) string {
	sizeGB := float64(m.Size) / (1024 * 1024 * 1024)
	return fmt.Sprintf("%s (%s, %.1fGB)", m.Name, m.Family(), sizeGB)
}

// Names returns the model names in inventory order.
func Names(models []Model) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names
}

// Contains reports whether a model with the given name is present.
func Contains(models []Model, name string) bool {
	return slices.ContainsFunc(models, func(m Model) bool {
		return m.Name == name
	})
}

var recommendations = map[string][]string{
	"General Chat":    {"llama3.1:8b", "llama3.1:70b", "mistral:7b"},
	"Code Generation": {"codellama:7b", "codellama:13b", "deepseek-coder:6.7b"},
	"Math & Logic":    {"llama3.1:8b", "llama3.1:70b"},
	"Fast Response":   {"llama3.1:8b", "mistral:7b", "phi3:mini"},
	"High Quality":    {"llama3.1:70b", "llama3.1:405b"},
}

// Recommended returns a copy of the static recommendation table.
func Recommended() map[string][]string {
	out := make(map[string][]string, len(recommendations))
	for category, models := range recommendations {
		out[category] = slices.Clone(models)
	}
	return out
}
