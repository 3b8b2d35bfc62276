package observability

import (
	"context"
	"fmt"
	"strings"
)

// Fanout delivers each event to every observer in order.
type Fanout []Observer

func (f Fanout) OnEvent(ctx context.Context, event Event) {
	for _, obs := range f {
		obs.OnEvent(ctx, event)
	}
}

// Combine merges observers into one. Nil and no-op observers are dropped and
// nested fanouts are flattened; a single survivor is returned as is.
func Combine(observers ...Observer) Observer {
	var out Fanout
	for _, obs := range observers {
		switch o := obs.(type) {
		case nil, NoOpObserver, *NoOpObserver:
		case Fanout:
			out = append(out, o...)
		default:
			out = append(out, o)
		}
	}

	switch len(out) {
	case 0:
		return NoOpObserver{}
	case 1:
		return out[0]
	default:
		return out
	}
}

// ParseObservers resolves a comma-separated list of registered observer names,
// such as "slog,events", into a single observer.
func ParseObservers(names string) (Observer, error) {
	var observers []Observer
	for name := range strings.SplitSeq(names, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		obs, err := GetObserver(name)
		if err != nil {
			return nil, err
		}
		observers = append(observers, obs)
	}

	if len(observers) == 0 {
		return nil, fmt.Errorf("no observer named in %q", names)
	}
	return Combine(observers...), nil
}
