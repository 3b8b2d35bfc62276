package catalog

import "errors"

// ErrUnavailable is returned when the model server cannot be reached or
// answers with something other than a model inventory.
var ErrUnavailable = errors.New("model catalog unavailable")
