// Package analytics provides best-effort event dispatch for storefront
// activity. Events are delivered off the caller's goroutine and dropped
// (with a log line) rather than ever blocking or failing a shopper action.
package analytics

import (
	"log"
	"sync"
)

type Event struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params,omitempty"`
}

// Tracker delivers a single event to wherever events go.
type Tracker interface {
	Track(event Event) error
}

// LogTracker writes events to the process log. It is the default sink when
// no outbound integration is configured.
type LogTracker struct{}

func (LogTracker) Track(event Event) error {
	log.Printf("analytics: %s %v", event.Name, event.Params)
	return nil
}

// Dispatcher fans events into a Tracker from a background goroutine.
// Emit never blocks; when the buffer is full the event is dropped.
type Dispatcher struct {
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(tracker Tracker, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	d := &Dispatcher{
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	go func() {
		defer close(d.done)
		for event := range d.events {
			if err := tracker.Track(event); err != nil {
				log.Printf("analytics: failed to track %q: %v", event.Name, err)
			}
		}
	}()
	return d
}

func (d *Dispatcher) Emit(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("analytics: dispatcher closed, dropped %q", event.Name)
		return
	}
	select {
	case d.events <- event:
	default:
		log.Printf("analytics: buffer full, dropped %q", event.Name)
	}
}

// Close stops the dispatcher after draining buffered events. Emit calls
// after Close drop the event instead of panicking.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()
	<-d.done
}
