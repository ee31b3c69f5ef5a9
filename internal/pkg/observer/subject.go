// Package observer implements a typed, synchronous subject/observer channel.
//
// A Subject[E] delivers every published event to its observers in registration
// order. Each delivery runs behind its own recover boundary: a panicking observer
// is logged and skipped, and the remaining observers still receive the event.
package observer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Observer receives events of type E.
type Observer[E any] interface {
	Notify(ctx context.Context, event E)
}

// Func adapts a plain function to the Observer interface.
type Func[E any] func(ctx context.Context, event E)

// Notify calls f(ctx, event).
func (f Func[E]) Notify(ctx context.Context, event E) {
	f(ctx, event)
}

// Subject holds the observers of one event kind.
type Subject[E any] struct {
	mu        sync.RWMutex
	name      string
	observers []Observer[E]
	logger    *slog.Logger
}

// NewSubject creates a subject. name identifies the event kind in logs.
func NewSubject[E any](name string, logger *slog.Logger) *Subject[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Subject[E]{
		name:   name,
		logger: logger.With("component", "subject", "event", name),
	}
}

// Subscribe registers o. Nil observers are ignored.
func (s *Subject[E]) Subscribe(o Observer[E]) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Len returns the number of registered observers.
func (s *Subject[E]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Publish delivers event to every observer and returns the number of deliveries
// that panicked.
func (s *Subject[E]) Publish(ctx context.Context, event E) int {
	s.mu.RLock()
	observers := make([]Observer[E], len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	failed := 0
	for i, o := range observers {
		if err := s.deliver(ctx, o, event); err != nil {
			failed++
			s.logger.ErrorContext(ctx, "Observer failed, continuing with next observer",
				"observer_index", i, "error", err)
		}
	}
	return failed
}

func (s *Subject[E]) deliver(ctx context.Context, o Observer[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panicked: %v", r)
		}
	}()
	o.Notify(ctx, event)
	return nil
}
