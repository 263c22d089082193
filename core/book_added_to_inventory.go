package core

import (
	"time"
)

// BookAddedToInventoryEventType is the event type identifier.
const BookAddedToInventoryEventType = "BookAddedToInventory"

// BookAddedToInventory represents when a title the inventory did not know yet is added.
type BookAddedToInventory struct {
	ISBN            ISBNString
	Title           string
	Author          string
	PublicationYear int
	TotalCopies     int
	OccurredAt      OccurredAtTS
}

// BuildBookAddedToInventory creates a new BookAddedToInventory event.
func BuildBookAddedToInventory(
	isbn string,
	title string,
	author string,
	publicationYear int,
	totalCopies int,
	occurredAt time.Time,
) BookAddedToInventory {

	event := BookAddedToInventory{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		PublicationYear: publicationYear,
		TotalCopies:     totalCopies,
		OccurredAt:      ToOccurredAt(occurredAt),
	}

	return event
}

// EventType returns the event type identifier.
func (e BookAddedToInventory) EventType() string {
	return BookAddedToInventoryEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAddedToInventory) HasOccurredAt() time.Time {
	return e.OccurredAt
}
