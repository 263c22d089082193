package core

import (
	"time"
)

// BookCopyReturnedEventType is the event type identifier.
const BookCopyReturnedEventType = "BookCopyReturned"

// BookCopyReturned represents when one checked-out copy of a title is returned.
type BookCopyReturned struct {
	ISBN            ISBNString
	AvailableCopies int
	OccurredAt      OccurredAtTS
}

// BuildBookCopyReturned creates a new BookCopyReturned event.
func BuildBookCopyReturned(isbn string, availableCopies int, occurredAt time.Time) BookCopyReturned {
	event := BookCopyReturned{
		ISBN:            isbn,
		AvailableCopies: availableCopies,
		OccurredAt:      ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookCopyReturned) EventType() string {
	return BookCopyReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}
