package shell

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/book-inventory-go/core"
)

// ErrMappingToJournalEntryFailed is returned when a domain event can't be turned into a JournalEntry.
var ErrMappingToJournalEntryFailed = errors.New("mapping to journal entry failed")

// ErrMappingToDomainEventFailed is returned when domain event conversion fails.
var ErrMappingToDomainEventFailed = errors.New("mapping to domain event failed")

// ErrMappingToDomainEventUnknownEventType is returned for unrecognized event types.
var ErrMappingToDomainEventUnknownEventType = errors.New("unknown event type")

// JournalEntries is an alias type for a slice of JournalEntry.
type JournalEntries = []JournalEntry

// JournalEntry is one line of the journal: a domain event's type and JSON payload together with its metadata.
//
// OccurredAt is when the event happened, RecordedAt is when the journal wrote it.
type JournalEntry struct {
	EventType  string
	OccurredAt time.Time
	RecordedAt time.Time
	Payload    jsoniter.RawMessage
	Metadata   EventMetadata
}

// EventEnvelope combines a domain event with its metadata.
type EventEnvelope struct {
	DomainEvent   core.DomainEvent
	EventMetadata EventMetadata
}

// JournalEntryFrom converts a DomainEvent and its EventMetadata to a JournalEntry.
func JournalEntryFrom(event core.DomainEvent, metadata EventMetadata, recordedAt time.Time) (JournalEntry, error) {
	if event == nil {
		return JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailed, errors.New("domain event must not be nil"))
	}

	payload, err := jsoniter.ConfigFastest.Marshal(event)
	if err != nil {
		return JournalEntry{}, errors.Join(ErrMappingToJournalEntryFailed, err)
	}

	return JournalEntry{
		EventType:  event.EventType(),
		OccurredAt: event.HasOccurredAt(),
		RecordedAt: core.ToOccurredAt(recordedAt),
		Payload:    payload,
		Metadata:   metadata,
	}, nil
}

// DomainEventFrom converts a JournalEntry back to its DomainEvent.
func DomainEventFrom(entry JournalEntry) (core.DomainEvent, error) {
	switch entry.EventType {
	case core.BookAddedToInventoryEventType:
		return unmarshalPayload[core.BookAddedToInventory](entry.Payload)

	case core.BookCopiesAddedEventType:
		return unmarshalPayload[core.BookCopiesAdded](entry.Payload)

	case core.BookCopyCheckedOutEventType:
		return unmarshalPayload[core.BookCopyCheckedOut](entry.Payload)

	case core.BookCopyReturnedEventType:
		return unmarshalPayload[core.BookCopyReturned](entry.Payload)

	case core.InventorySavedEventType:
		return unmarshalPayload[core.InventorySaved](entry.Payload)

	case core.InventoryLoadedEventType:
		return unmarshalPayload[core.InventoryLoaded](entry.Payload)
	}

	return nil, errors.Join(ErrMappingToDomainEventFailed, ErrMappingToDomainEventUnknownEventType)
}

// EventEnvelopesFrom converts multiple JournalEntries to EventEnvelopes.
func EventEnvelopesFrom(entries JournalEntries) ([]EventEnvelope, error) {
	envelopes := make([]EventEnvelope, 0, len(entries))

	for _, entry := range entries {
		domainEvent, err := DomainEventFrom(entry)
		if err != nil {
			return nil, err
		}

		envelopes = append(envelopes, EventEnvelope{DomainEvent: domainEvent, EventMetadata: entry.Metadata})
	}

	return envelopes, nil
}

func unmarshalPayload[T core.DomainEvent](payload []byte) (core.DomainEvent, error) {
	event := new(T)

	if err := jsoniter.ConfigFastest.Unmarshal(payload, event); err != nil {
		return nil, errors.Join(ErrMappingToDomainEventFailed, err)
	}

	return *event, nil
}
