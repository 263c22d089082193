// Package inventory tracks book titles and their per-title copy counts.
//
// It consists of two parts:
//   - Book: a title with its copy counts, guarding 0 <= available <= total on every mutation
//   - Inventory: the collection of Books keyed by ISBN, with checkout/return, lookups
//     and snapshot save/load
//
// Snapshots are written in a flat, comma-separated text format, one book per line:
//
//	title,author,isbn,publicationYear,totalCopies
//
// Embedded commas are not escaped, so titles or authors containing a comma will not survive
// a save/load round trip. Only the total number of copies is persisted; after a load all copies
// are available again.
//
// Errors are returned as (wrapped) sentinel errors which callers can distinguish with errors.Is:
//
//	err := inv.Checkout("978-0-441-01359-3")
//	if errors.Is(err, inventory.ErrNoCopiesAvailable) {
//		// tell the reader to come back later
//	}
//
// An Inventory is not safe for concurrent use. Callers sharing one between goroutines must guard
// the whole Inventory with a single mutex.
package inventory
