package observability

import (
	"fmt"
	"log/slog"
	"sync"
)

var (
	factories = map[string]func() Observer{
		"noop": func() Observer { return NoOpObserver{} },
		// Resolved per call so a logger installed with slog.SetDefault after
		// package init is honored.
		"slog": func() Observer { return NewSlogObserver(slog.Default()) },
	}
	mutex sync.RWMutex
)

// GetObserver returns a registered observer by name. Pre-registered
// observers: "noop" and "slog" (the default slog logger at call time).
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	factory, exists := factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown observer: %s", name)
	}
	return factory(), nil
}

// RegisterObserver adds or replaces a named observer.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	factories[name] = func() Observer { return observer }
}
