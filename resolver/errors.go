package resolver

import "errors"

// ErrResolution marks any failure to obtain an intent: transport errors,
// timeouts, empty completions, and undecodable output alike.
var ErrResolution = errors.New("intent resolution failed")
