package resolver

import (
	"encoding/json"
	"strings"

	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

const instructions = `You are a helpful assistant that can do arithmetic and manage which language model serves the conversation.

The conversation so far is given as a sequence of blocks. Each block is wrapped in tags naming its kind:
<user_input> is something the user said, <tool_call> is an action you chose earlier,
<tool_response> is the outcome of that action and <error> is a failure that occurred.

Decide the single next step. Reply with one JSON object and nothing else. The object must have an
"intent" field naming one of the actions below, plus the parameters that action requires.

Actions:
`

// SystemPrompt returns the fixed instructions sent ahead of every transcript.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString(instructions)

	for _, def := range protocol.Definitions() {
		params, err := json.Marshal(def.Parameters)
		if err != nil {
			params = []byte("{}")
		}
		b.WriteString("- ")
		b.WriteString(string(def.Name))
		b.WriteString(": ")
		b.WriteString(def.Description)
		b.WriteString(" Parameters: ")
		b.Write(params)
		b.WriteString("\n")
	}

	b.WriteString(`
Use request_more_information when the request is unclear, and done_for_now once the user's request has been answered.
Example: {"intent": "add", "a": 2, "b": 3}`)
	return b.String()
}

// extractJSON strips Markdown code fences and any prose around the outermost
// JSON object in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
