package protocol

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Tag identifies the variant of an Intent on the wire.
type Tag string

const (
	TagAdd                    Tag = "add"
	TagSubtract               Tag = "subtract"
	TagMultiply               Tag = "multiply"
	TagDivide                 Tag = "divide"
	TagListModels             Tag = "list_models"
	TagSelectModel            Tag = "select_model"
	TagRequestMoreInformation Tag = "request_more_information"
	TagDoneForNow             Tag = "done_for_now"
)

// Tags returns every intent tag in declaration order.
func Tags() []Tag {
	return []Tag{
		TagAdd,
		TagSubtract,
		TagMultiply,
		TagDivide,
		TagListModels,
		TagSelectModel,
		TagRequestMoreInformation,
		TagDoneForNow,
	}
}

// Intent is a structured decision about what the agent does next. The set
// of implementations is closed to this package; consumers match on the
// concrete types with a type switch.
type Intent interface {
	Tag() Tag
	isIntent()
}

// Add sums A and B.
type Add struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Subtract computes A - B.
type Subtract struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Multiply computes A * B.
type Multiply struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// Divide computes A / B.
type Divide struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// ListModels asks for the model inventory and recommendations.
type ListModels struct{}

// SelectModel switches the thread to ModelName.
type SelectModel struct {
	ModelName string `json:"model_name"`
}

// RequestMoreInformation asks the user to clarify.
type RequestMoreInformation struct {
	Message string `json:"message"`
}

// DoneForNow ends the turn with a final answer.
type DoneForNow struct {
	Message string `json:"message"`
}

func (Add) Tag() Tag                    { return TagAdd }
func (Subtract) Tag() Tag               { return TagSubtract }
func (Multiply) Tag() Tag               { return TagMultiply }
func (Divide) Tag() Tag                 { return TagDivide }
func (ListModels) Tag() Tag             { return TagListModels }
func (SelectModel) Tag() Tag            { return TagSelectModel }
func (RequestMoreInformation) Tag() Tag { return TagRequestMoreInformation }
func (DoneForNow) Tag() Tag             { return TagDoneForNow }

func (Add) isIntent()                    {}
func (Subtract) isIntent()               {}
func (Multiply) isIntent()               {}
func (Divide) isIntent()                 {}
func (ListModels) isIntent()             {}
func (SelectModel) isIntent()            {}
func (RequestMoreInformation) isIntent() {}
func (DoneForNow) isIntent()             {}

// MarshalJSON emits the variant fields alongside its "intent" tag.
func (i Add) MarshalJSON() ([]byte, error) {
	type plain Add
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagAdd, plain(i)})
}

func (i Subtract) MarshalJSON() ([]byte, error) {
	type plain Subtract
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagSubtract, plain(i)})
}

func (i Multiply) MarshalJSON() ([]byte, error) {
	type plain Multiply
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagMultiply, plain(i)})
}

func (i Divide) MarshalJSON() ([]byte, error) {
	type plain Divide
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagDivide, plain(i)})
}

func (ListModels) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
	}{TagListModels})
}

func (i SelectModel) MarshalJSON() ([]byte, error) {
	type plain SelectModel
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagSelectModel, plain(i)})
}

func (i RequestMoreInformation) MarshalJSON() ([]byte, error) {
	type plain RequestMoreInformation
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagRequestMoreInformation, plain(i)})
}

func (i DoneForNow) MarshalJSON() ([]byte, error) {
	type plain DoneForNow
	return json.Marshal(struct {
		Intent Tag `json:"intent"`
		plain
	}{TagDoneForNow, plain(i)})
}

// operand accepts a JSON number or a numeric string. Models occasionally
// quote numbers even when asked not to.
type operand struct {
	value float64
	set   bool
}

func (o *operand) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		o.value, o.set = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("operand is neither number nor string: %s", data)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("operand %q is not numeric", s)
	}
	o.value, o.set = f, true
	return nil
}

// DecodeIntent parses a tagged JSON intent. Returns ErrUnknownIntent for an
// unrecognized tag and ErrMalformedIntent when the payload is not valid JSON
// or lacks a field the tag requires.
func DecodeIntent(data []byte) (Intent, error) {
	var head struct {
		Intent Tag `json:"intent"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedIntent, err)
	}

	switch head.Intent {
	case TagAdd, TagSubtract, TagMultiply, TagDivide:
		var ops struct {
			A operand `json:"a"`
			B operand `json:"b"`
		}
		if err := json.Unmarshal(data, &ops); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIntent, head.Intent, err)
		}
		if !ops.A.set || !ops.B.set {
			return nil, fmt.Errorf("%w: %s requires operands a and b", ErrMalformedIntent, head.Intent)
		}
		return arithmetic(head.Intent, ops.A.value, ops.B.value), nil

	case TagListModels:
		return ListModels{}, nil

	case TagSelectModel:
		var sel SelectModel
		if err := json.Unmarshal(data, &sel); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIntent, head.Intent, err)
		}
		sel.ModelName = strings.TrimSpace(sel.ModelName)
		if sel.ModelName == "" {
			return nil, fmt.Errorf("%w: %s requires model_name", ErrMalformedIntent, head.Intent)
		}
		return sel, nil

	case TagRequestMoreInformation:
		var req RequestMoreInformation
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIntent, head.Intent, err)
		}
		return req, nil

	case TagDoneForNow:
		var done DoneForNow
		if err := json.Unmarshal(data, &done); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedIntent, head.Intent, err)
		}
		return done, nil

	case "":
		return nil, fmt.Errorf("%w: missing intent tag", ErrMalformedIntent)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, head.Intent)
	}
}

func arithmetic(tag Tag, a, b float64) Intent {
	switch tag {
	case TagSubtract:
		return Subtract{A: a, B: b}
	case TagMultiply:
		return Multiply{A: a, B: b}
	case TagDivide:
		return Divide{A: a, B: b}
	default:
		return Add{A: a, B: b}
	}
}
