// Package hook holds the callbacks a configuration registers for window
// manager lifecycle events.
package hook

import (
	"errors"
	"fmt"
	"sync"
)

type Event string

const (
	// Startup fires on every start, including reloads.
	Startup Event = "startup"
	// StartupOnce fires on the first start only.
	StartupOnce Event = "startup_once"
)

// Hook is a named callback for one event.
type Hook struct {
	Event Event        `yaml:"event" json:"event" toml:"event"`
	Name  string       `yaml:"name" json:"name" toml:"name"`
	Fn    func() error `yaml:"-" json:"-" toml:"-"`
}

// Registry is owned by the host and outlives configuration reloads, which is
// what lets it remember that StartupOnce has already fired.
type Registry struct {
	mu       sync.Mutex
	subs     map[Event][]Hook
	onceDone bool
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[Event][]Hook)}
}

// Subscribe adds hooks, typically those of a freshly built configuration.
func (r *Registry) Subscribe(hooks ...Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range hooks {
		r.subs[h.Event] = append(r.subs[h.Event], h)
	}
}

// Reset drops every subscription ahead of a reload. Whether StartupOnce has
// fired is kept.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = make(map[Event][]Hook)
}

// Fire runs the hooks subscribed to e in subscription order and returns
// their failures joined. StartupOnce runs at most once per Registry.
func (r *Registry) Fire(e Event) error {
	r.mu.Lock()
	if e == StartupOnce {
		if r.onceDone {
			r.mu.Unlock()
			return nil
		}
		r.onceDone = true
	}
	hooks := append([]Hook(nil), r.subs[e]...)
	r.mu.Unlock()

	var errs []error
	for _, h := range hooks {
		if h.Fn == nil {
			continue
		}
		if err := h.Fn(); err != nil {
			errs = append(errs, fmt.Errorf("hook %s (%s): %w", h.Name, e, err))
		}
	}
	return errors.Join(errs...)
}
