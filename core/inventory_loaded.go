package core

import (
	"time"
)

// InventoryLoadedEventType is the event type identifier.
const InventoryLoadedEventType = "InventoryLoaded"

// InventoryLoaded represents when the whole inventory was replaced from a snapshot store.
// Checked-out state is not part of a snapshot, so all copies are available after this event.
type InventoryLoaded struct {
	Source     string
	BookCount  int
	OccurredAt OccurredAtTS
}

// BuildInventoryLoaded creates a new InventoryLoaded event.
func BuildInventoryLoaded(source string, bookCount int, occurredAt time.Time) InventoryLoaded {
	event := InventoryLoaded{
		Source:     source,
		BookCount:  bookCount,
		OccurredAt: ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e InventoryLoaded) EventType() string {
	return InventoryLoadedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InventoryLoaded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
