// Package session holds the agent's context window: an ordered, size-bounded
// log of typed entries that is rendered into the transcript handed to the
// intent resolver on every turn.
package session

import (
	"github.com/tailored-agentic-units/ollama-agent/core/protocol"
)

// Session is the context log of one conversation thread. Implementations
// must be safe for concurrent use.
type Session interface {
	// ID returns the thread identifier the log belongs to.
	ID() string
	// Append adds an entry at the end, trimming the oldest entries when the
	// log grows past its limit. Always succeeds.
	Append(kind protocol.Kind, payload string)
	// Entries returns a defensive copy of the log in order.
	Entries() []protocol.Entry
	// Len returns the number of entries currently held.
	Len() int
	// Render formats the log as a transcript of delimited blocks.
	Render() string
}
