// Package events carries tool invocation notifications to observers.
//
// The todo tool emits a "before" event when a call arrives and an "after"
// event when it finishes. Events are queued and delivered on a separate
// goroutine: Emit never blocks and a failing listener cannot fail the call
// that produced the event.
package events

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Phase marks where in an invocation an event was emitted.
type Phase string

const (
	PhaseBefore Phase = "before"
	PhaseAfter  Phase = "after"
)

// DefaultBuffer is the queue size used when NewBus is given a non-positive one.
const DefaultBuffer = 64

// Event is one notification about a tool invocation.
type Event struct {
	ID        string    `json:"id"`
	Phase     Phase     `json:"phase"`
	Tool      string    `json:"tool"`
	Action    string    `json:"action"`
	SessionID string    `json:"session_id"`
	Time      time.Time `json:"time"`
	// Input is the raw request arguments (before events only).
	Input any `json:"input,omitempty"`
	// Summary describes the result (after events only).
	Summary string `json:"summary,omitempty"`
	// Err is the error message of a failed invocation.
	Err string `json:"error,omitempty"`
}

// Failed reports whether the event describes a failed invocation.
func (e Event) Failed() bool {
	return e.Err != ""
}

// Listener receives events.
type Listener interface {
	Handle(ctx context.Context, ev Event) error
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(ctx context.Context, ev Event) error

// Handle calls f.
func (f ListenerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// ErrorHandler is told about listener errors and panics.
type ErrorHandler func(ev Event, err error)

// Bus fans events out to registered listeners.
type Bus struct {
	mu        sync.RWMutex
	listeners []Listener
	closed    bool

	queue   chan Event
	done    chan struct{}
	dropped atomic.Int64
	onError ErrorHandler
	now     func() time.Time
}

// NewBus starts a Bus with a queue of the given size. onError may be nil.
func NewBus(buffer int, onError ErrorHandler) *Bus {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	b := &Bus{
		queue:   make(chan Event, buffer),
		done:    make(chan struct{}),
		onError: onError,
		now:     time.Now,
	}
	go b.run()
	return b
}

// Subscribe registers l for all subsequent events.
func (b *Bus) Subscribe(l Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Emit queues ev for delivery and fills in its ID and Time when unset.
// It reports false when the event was dropped because the queue is full or
// the bus is closed.
func (b *Bus) Emit(ev Event) bool {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Time.IsZero() {
		ev.Time = b.now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		b.dropped.Add(1)
		return false
	}
	select {
	case b.queue <- ev:
		return true
	default:
		b.dropped.Add(1)
		return false
	}
}

// Dropped returns how many events were discarded.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close stops accepting events, delivers what is queued and waits for the
// dispatcher to finish. It is safe to call more than once.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		<-b.done
		return
	}
	b.closed = true
	close(b.queue)
	b.mu.Unlock()
	<-b.done
}

func (b *Bus) run() {
	defer close(b.done)
	for ev := range b.queue {
		b.mu.RLock()
		listeners := make([]Listener, len(b.listeners))
		copy(listeners, b.listeners)
		b.mu.RUnlock()

		for _, l := range listeners {
			b.deliver(l, ev)
		}
	}
}

func (b *Bus) deliver(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.reportError(ev, fmt.Errorf("events: listener panic: %v", r))
		}
	}()
	if err := l.Handle(context.Background(), ev); err != nil {
		b.reportError(ev, err)
	}
}

func (b *Bus) reportError(ev Event, err error) {
	if b.onError != nil {
		b.onError(ev, err)
	}
}
