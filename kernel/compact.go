package kernel

const (
	// ClarificationMessage is returned to the user when no intent could be
	// resolved for their input.
	ClarificationMessage = "I encountered an issue processing your request. Could you please rephrase or try again?"

	maxErrorLength = 200
	truncationMark = "..."
)

// CompactError renders err for the context log: its message, cut to 200
// characters with a trailing "..." when longer.
func CompactError(err error) string {
	if err == nil {
		return ""
	}

	msg := []rune(err.Error())
	if len(msg) <= maxErrorLength {
		return string(msg)
	}
	return string(msg[:maxErrorLength]) + truncationMark
}
