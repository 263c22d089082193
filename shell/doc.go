// Package shell connects the inventory's domain events to the outside world.
//
// It maps core.DomainEvent values to JournalEntry values, JSON encoded with their EventMetadata,
// and back. FileJournal is an inventory.EventRecorder which appends one entry per line to a file,
// ReadJournal reads such a file back.
package shell
