package core

import (
	"time"
)

// BookCopyCheckedOutEventType is the event type identifier.
const BookCopyCheckedOutEventType = "BookCopyCheckedOut"

// BookCopyCheckedOut represents when one copy of a title is checked out.
type BookCopyCheckedOut struct {
	ISBN            ISBNString
	AvailableCopies int
	OccurredAt      OccurredAtTS
}

// BuildBookCopyCheckedOut creates a new BookCopyCheckedOut event.
func BuildBookCopyCheckedOut(isbn string, availableCopies int, occurredAt time.Time) BookCopyCheckedOut {
	event := BookCopyCheckedOut{
		ISBN:            isbn,
		AvailableCopies: availableCopies,
		OccurredAt:      ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookCopyCheckedOut) EventType() string {
	return BookCopyCheckedOutEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopyCheckedOut) HasOccurredAt() time.Time {
	return e.OccurredAt
}
