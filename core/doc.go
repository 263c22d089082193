// Package core contains the domain events of the book inventory.
//
// Events represent meaningful inventory occurrences like BookCopyCheckedOut or
// InventoryLoaded rather than generic create/update operations. They are emitted
// by the inventory package after a mutation has been applied and can be recorded,
// e.g. by the journal in the shell package.
//
// All domain events implement the DomainEvent interface with EventType() and
// HasOccurredAt() methods.
package core
