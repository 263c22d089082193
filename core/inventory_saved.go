package core

import (
	"time"
)

// InventorySavedEventType is the event type identifier.
const InventorySavedEventType = "InventorySaved"

// InventorySaved represents when the whole inventory was written to a snapshot store.
type InventorySaved struct {
	Destination string
	BookCount   int
	OccurredAt  OccurredAtTS
}

// BuildInventorySaved creates a new InventorySaved event.
func BuildInventorySaved(destination string, bookCount int, occurredAt time.Time) InventorySaved {
	event := InventorySaved{
		Destination: destination,
		BookCount:   bookCount,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e InventorySaved) EventType() string {
	return InventorySavedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InventorySaved) HasOccurredAt() time.Time {
	return e.OccurredAt
}
