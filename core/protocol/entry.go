// Package protocol defines the shared vocabulary of the agent loop: context
// entries, the closed set of intents a resolver may emit, and the thread
// state snapshot exchanged with delivery shells and storage.
package protocol

// Kind identifies what a context entry records.
type Kind string

const (
	KindUserInput    Kind = "user_input"
	KindToolCall     Kind = "tool_call"
	KindToolResponse Kind = "tool_response"
	KindError        Kind = "error"
)

// IsValid reports whether k is one of the known entry kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindUserInput, KindToolCall, KindToolResponse, KindError:
		return true
	}
	return false
}

// Entry is a single tagged record in the agent's context window. Payload is
// free-form text or a JSON-encoded value; entries are opaque after creation.
type Entry struct {
	Kind    Kind   `json:"kind"`
	Payload string `json:"payload"`
}

// NewEntry creates an Entry with the given kind and payload.
func NewEntry(kind Kind, payload string) Entry {
	return Entry{Kind: kind, Payload: payload}
}
