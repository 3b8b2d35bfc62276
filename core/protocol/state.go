package protocol

import "slices"

// State is a snapshot of one conversation thread. It is a value type:
// holders receive their own copy of the context slice.
type State struct {
	ThreadID        string  `json:"thread_id"`
	CurrentModel    string  `json:"current_model"`
	Context         []Entry `json:"context"`
	ServiceEndpoint string  `json:"service_endpoint"`
}

// Clone returns a copy of s that shares no memory with the original.
func (s State) Clone() State {
	s.Context = slices.Clone(s.Context)
	if s.Context == nil {
		s.Context = []Entry{}
	}
	return s
}
