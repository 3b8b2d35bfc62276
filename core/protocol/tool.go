package protocol

// Tool describes one intent the resolver may emit. Parameters uses JSON
// Schema format to describe the fields carried next to the "intent" tag.
type Tool struct {
	Name        Tag            `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Definitions returns a description of every intent, in Tags order.
func Definitions() []Tool {
	operands := func() map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number", "description": "First operand."},
				"b": map[string]any{"type": "number", "description": "Second operand."},
			},
			"required": []string{"a", "b"},
		}
	}
	message := func(desc string) map[string]any {
		return map[string]any{
			"type": "object",
			"properties": map[string]any{
				"message": map[string]any{"type": "string", "description": desc},
			},
			"required": []string{"message"},
		}
	}

	return []Tool{
		{Name: TagAdd, Description: "Add two numbers.", Parameters: operands()},
		{Name: TagSubtract, Description: "Subtract b from a.", Parameters: operands()},
		{Name: TagMultiply, Description: "Multiply two numbers.", Parameters: operands()},
		{Name: TagDivide, Description: "Divide a by b.", Parameters: operands()},
		{
			Name:        TagListModels,
			Description: "List the models available on the server, with recommendations.",
			Parameters:  map[string]any{"type": "object", "properties": map[string]any{}},
		},
		{
			Name:        TagSelectModel,
			Description: "Switch the conversation to another model.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"model_name": map[string]any{
						"type":        "string",
						"description": "Exact model identifier, e.g. llama3.1:8b.",
					},
				},
				"required": []string{"model_name"},
			},
		},
		{
			Name:        TagRequestMoreInformation,
			Description: "Ask the user for clarification when the request is ambiguous.",
			Parameters:  message("Question to show the user."),
		},
		{
			Name:        TagDoneForNow,
			Description: "Reply to the user when no further tool call is needed.",
			Parameters:  message("Final answer to show the user."),
		},
	}
}
