// Package response defines the structured results produced by dispatching
// an intent. Like intents, results form a closed set; each carries a "type"
// tag when serialized so shells and the context log can tell them apart.
package response

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Type identifies the variant of a Result.
type Type string

const (
	TypeCalculation   Type = "calculation_result"
	TypeModelList     Type = "model_list"
	TypeModelSelected Type = "model_selected"
	TypeClarification Type = "clarification_needed"
	TypeFinal         Type = "final_response"
)

// Result is the outcome of a successful dispatch.
type Result interface {
	Type() Type
	// Text returns the human-readable message of the result.
	Text() string
	isResult()
}

// Inputs records the operands of a calculation.
type Inputs struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Calculation is the result of an arithmetic intent.
type Calculation struct {
	Operation string  `json:"operation"`
	Inputs    Inputs  `json:"inputs"`
	Result    float64 `json:"result"`
	Message   string  `json:"message"`
}

// NewCalculation builds a Calculation with its standard message.
func NewCalculation(operation string, a, b, result float64) Calculation {
	return Calculation{
		Operation: operation,
		Inputs:    Inputs{A: a, B: b},
		Result:    result,
		Message: fmt.Sprintf("The %s of %s and %s is %s.",
			operation, FormatNumber(a), FormatNumber(b), FormatNumber(result)),
	}
}

// ModelSummary is a catalog entry as presented to the user.
type ModelSummary struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Family  string `json:"family,omitempty"`
	Display string `json:"display"`
}

// ModelList is the result of listing the catalog.
type ModelList struct {
	Models          []ModelSummary      `json:"models"`
	Recommendations map[string][]string `json:"recommendations"`
	CurrentModel    string              `json:"current_model"`
	Message         string              `json:"message"`
}

// ModelSelected records a successful model switch.
type ModelSelected struct {
	PreviousModel string `json:"previous_model"`
	NewModel      string `json:"new_model"`
	Message       string `json:"message"`
}

// Clarification asks the user for more information.
type Clarification struct {
	Message string `json:"message"`
}

// FinalResponse is a terminal answer for the turn.
type FinalResponse struct {
	Message string `json:"message"`
}

func (Calculation) Type() Type   { return TypeCalculation }
func (ModelList) Type() Type     { return TypeModelList }
func (ModelSelected) Type() Type { return TypeModelSelected }
func (Clarification) Type() Type { return TypeClarification }
func (FinalResponse) Type() Type { return TypeFinal }

func (r Calculation) Text() string   { return r.Message }
func (r ModelList) Text() string     { return r.Message }
func (r ModelSelected) Text() string { return r.Message }
func (r Clarification) Text() string { return r.Message }
func (r FinalResponse) Text() string { return r.Message }

func (Calculation) isResult()   {}
func (ModelList) isResult()     {}
func (ModelSelected) isResult() {}
func (Clarification) isResult() {}
func (FinalResponse) isResult() {}

// MarshalJSON encodes non-finite operands and results as null, since JSON
// has no representation for them. Message still carries +Inf or NaN.
func (r Calculation) MarshalJSON() ([]byte, error) {
	type inputs struct {
		A *float64 `json:"a"`
		B *float64 `json:"b"`
	}
	return json.Marshal(struct {
		Type      Type     `json:"type"`
		Operation string   `json:"operation"`
		Inputs    inputs   `json:"inputs"`
		Result    *float64 `json:"result"`
		Message   string   `json:"message"`
	}{
		Type:      TypeCalculation,
		Operation: r.Operation,
		Inputs:    inputs{A: finite(r.Inputs.A), B: finite(r.Inputs.B)},
		Result:    finite(r.Result),
		Message:   r.Message,
	})
}

func finite(f float64) *float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil
	}
	return &f
}

func (r ModelList) MarshalJSON() ([]byte, error) {
	type plain ModelList
	if r.Models == nil {
		r.Models = []ModelSummary{}
	}
	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeModelList, plain(r)})
}

func (r ModelSelected) MarshalJSON() ([]byte, error) {
	type plain ModelSelected
	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeModelSelected, plain(r)})
}

func (r Clarification) MarshalJSON() ([]byte, error) {
	type plain Clarification
	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeClarification, plain(r)})
}

func (r FinalResponse) MarshalJSON() ([]byte, error) {
	type plain FinalResponse
	return json.Marshal(struct {
		Type Type `json:"type"`
		plain
	}{TypeFinal, plain(r)})
}

// FormatNumber renders f without exponent or trailing zeros (5, 2.5, -0.125).
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
