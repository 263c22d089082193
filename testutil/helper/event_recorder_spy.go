package helper

import (
	"sync"

	"github.com/AntonStoeckl/book-inventory-go/core"
)

// EventRecorderSpy is an EventRecorder implementation that captures domain events for testing.
// It can be switched to fail, to test that recording failures don't affect the inventory.
type EventRecorderSpy struct {
	events   []core.DomainEvent
	failWith error
	mu       sync.Mutex
}

// NewEventRecorderSpy creates a new EventRecorderSpy.
func NewEventRecorderSpy() *EventRecorderSpy {
	return &EventRecorderSpy{events: make([]core.DomainEvent, 0)}
}

// NewFailingEventRecorderSpy creates an EventRecorderSpy which returns err for every event.
func NewFailingEventRecorderSpy(err error) *EventRecorderSpy {
	return &EventRecorderSpy{events: make([]core.DomainEvent, 0), failWith: err}
}

// Record implements the EventRecorder interface.
func (s *EventRecorderSpy) Record(event core.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return s.failWith
	}

	s.events = append(s.events, event)

	return nil
}

// GetEvents returns a copy of all captured events.
func (s *EventRecorderSpy) GetEvents() core.DomainEvents {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := make(core.DomainEvents, len(s.events))
	copy(events, s.events)

	return events
}

// LastEvent returns the most recently captured event or nil.
func (s *EventRecorderSpy) LastEvent() core.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		return nil
	}

	return s.events[len(s.events)-1]
}
