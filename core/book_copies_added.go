package core

import (
	"time"
)

// BookCopiesAddedEventType is the event type identifier.
const BookCopiesAddedEventType = "BookCopiesAdded"

// BookCopiesAdded represents when copies are merged into a title the inventory already holds.
type BookCopiesAdded struct {
	ISBN            ISBNString
	CopiesAdded     int
	TotalCopies     int
	AvailableCopies int
	OccurredAt      OccurredAtTS
}

// BuildBookCopiesAdded creates a new BookCopiesAdded event.
func BuildBookCopiesAdded(
	isbn string,
	copiesAdded int,
	totalCopies int,
	availableCopies int,
	occurredAt time.Time,
) BookCopiesAdded {

	event := BookCopiesAdded{
		ISBN:            isbn,
		CopiesAdded:     copiesAdded,
		TotalCopies:     totalCopies,
		AvailableCopies: availableCopies,
		OccurredAt:      ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookCopiesAdded) EventType() string {
	return BookCopiesAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopiesAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}
