package core

import (
	"time"
)

// Events carry plain alias types instead of value objects.

// ISBNString represents an ISBN identifier
type ISBNString = string

// OccurredAtTS represents when an event occurred
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
