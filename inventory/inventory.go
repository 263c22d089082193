package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/AntonStoeckl/book-inventory-go/core"
)

const (
	logMsgBookAdded         = "book added to inventory"
	logMsgCopiesAdded       = "copies added to existing book"
	logMsgCheckedOut        = "book checked out"
	logMsgReturned          = "book returned"
	logMsgSaved             = "inventory successfully saved"
	logMsgSaveFailed        = "save unsuccessful"
	logMsgLoaded            = "inventory successfully loaded"
	logMsgLoadFailed        = "load unsuccessful"
	logMsgRecordEventFailed = "failed to record domain event"
	logAttrTitle            = "title"
	logAttrISBN             = "isbn"
	logAttrAvailableCopies  = "available_copies"
	logAttrTotalCopies      = "total_copies"
	logAttrCopiesAdded      = "copies_added"
	logAttrLocation         = "location"
	logAttrBookCount        = "book_count"
	logAttrDurationMS       = "duration_ms"
	logAttrEventType        = "event_type"
	logAttrError            = "error"
)

// Inventory is the collection of Books, keyed by ISBN.
//
// Every Book exists exactly once, in a map indexed by ISBN. A separate slice of ISBNs keeps the
// insertion order, which is used for iteration and for the order of saved snapshots.
//
// An Inventory is not safe for concurrent use.
type Inventory struct {
	books            map[ISBNString]*Book
	isbns            []ISBNString
	logger           Logger
	metricsCollector MetricsCollector
	clock            Clock
	eventRecorder    EventRecorder
}

// New creates an empty Inventory with optional configuration.
func New(options ...Option) (*Inventory, error) {
	inv := &Inventory{
		books:  make(map[ISBNString]*Book),
		isbns:  make([]ISBNString, 0),
		logger: slog.Default(),
		clock:  SystemClock{},
	}

	for _, option := range options {
		if err := option(inv); err != nil {
			return nil, err
		}
	}

	return inv, nil
}

// Count returns the number of distinct books, not the number of copies.
func (inv *Inventory) Count() int {
	return len(inv.isbns)
}

// Books returns the Books in insertion order.
// The slice is fresh, the Books are the Inventory's own instances.
func (inv *Inventory) Books() []*Book {
	books := make([]*Book, 0, len(inv.isbns))
	for _, isbn := range inv.isbns {
		books = append(books, inv.books[isbn])
	}

	return books
}

// Add adds a book to the Inventory.
//
// If a book with the same ISBN is already present, the total copies of the given book are added to it
// and the given book itself is not kept. Otherwise, the given book becomes part of the Inventory.
func (inv *Inventory) Add(book *Book) error {
	if book == nil {
		err := fmt.Errorf("%w: book must not be nil", ErrInvalidArgument)
		inv.recordOperation(OperationAdd, err)

		return err
	}

	existing, ok := inv.books[book.ISBN()]
	if ok {
		copiesToAdd := book.TotalCopies()

		if err := existing.AddCopies(copiesToAdd); err != nil {
			inv.recordOperation(OperationAdd, err)
			return err
		}

		inv.recordOperation(OperationAdd, nil)
		inv.logger.Info(
			logMsgCopiesAdded,
			logAttrTitle, existing.Title(),
			logAttrISBN, existing.ISBN(),
			logAttrCopiesAdded, copiesToAdd,
			logAttrTotalCopies, existing.TotalCopies(),
		)
		inv.recordEvent(core.BuildBookCopiesAdded(
			existing.ISBN(),
			copiesToAdd,
			existing.TotalCopies(),
			existing.AvailableCopies(),
			inv.clock.Now(),
		))

		return nil
	}

	inv.books[book.ISBN()] = book
	inv.isbns = append(inv.isbns, book.ISBN())

	inv.recordOperation(OperationAdd, nil)
	inv.logger.Info(
		logMsgBookAdded,
		logAttrTitle, book.Title(),
		logAttrISBN, book.ISBN(),
		logAttrTotalCopies, book.TotalCopies(),
	)
	inv.recordEvent(core.BuildBookAddedToInventory(
		book.ISBN(),
		book.Title(),
		book.Author(),
		book.PublicationYear(),
		book.TotalCopies(),
		inv.clock.Now(),
	))

	return nil
}

// Checkout checks out one copy of the book with the given ISBN.
//
// Returns ErrInvalidArgument for a blank ISBN, ErrNotFound for an unknown one
// and ErrNoCopiesAvailable if all copies are checked out.
func (inv *Inventory) Checkout(isbn ISBNString) error {
	book, err := inv.lookup(isbn)
	if err == nil {
		err = book.Checkout()
	}

	inv.recordOperation(OperationCheckout, err)

	if err != nil {
		return err
	}

	inv.logger.Info(
		logMsgCheckedOut,
		logAttrTitle, book.Title(),
		logAttrISBN, book.ISBN(),
		logAttrAvailableCopies, book.AvailableCopies(),
	)
	inv.recordEvent(core.BuildBookCopyCheckedOut(book.ISBN(), book.AvailableCopies(), inv.clock.Now()))

	return nil
}

// ReturnBook returns one checked-out copy of the book with the given ISBN.
//
// Returns ErrInvalidArgument for a blank ISBN, ErrNotFound for an unknown one
// and ErrAllCopiesAlreadyCheckedIn if no copy is checked out.
func (inv *Inventory) ReturnBook(isbn ISBNString) error {
	book, err := inv.lookup(isbn)
	if err == nil {
		err = book.Checkin()
	}

	inv.recordOperation(OperationReturn, err)

	if err != nil {
		return err
	}

	inv.logger.Info(
		logMsgReturned,
		logAttrTitle, book.Title(),
		logAttrISBN, book.ISBN(),
		logAttrAvailableCopies, book.AvailableCopies(),
	)
	inv.recordEvent(core.BuildBookCopyReturned(book.ISBN(), book.AvailableCopies(), inv.clock.Now()))

	return nil
}

// FindByTitleAndAuthor returns the first book in insertion order whose title and author match,
// ignoring case.
//
// Returns ErrInvalidArgument if title or author is blank and ErrNotFound if no book matches.
func (inv *Inventory) FindByTitleAndAuthor(title, author string) (*Book, error) {
	if isBlank(title) || isBlank(author) {
		return nil, fmt.Errorf("%w: title and author must not be blank", ErrInvalidArgument)
	}

	for _, isbn := range inv.isbns {
		book := inv.books[isbn]
		if strings.EqualFold(book.Title(), title) && strings.EqualFold(book.Author(), author) {
			return book, nil
		}
	}

	return nil, fmt.Errorf("%w: book with title '%s' and author '%s'", ErrNotFound, title, author)
}

// FindByISBN returns the book with the given ISBN.
//
// Returns ErrInvalidArgument for a blank ISBN and ErrNotFound for an unknown one.
func (inv *Inventory) FindByISBN(isbn ISBNString) (*Book, error) {
	return inv.lookup(isbn)
}

// Save writes the Inventory to the flat file at path, one line per book in insertion order.
// See SaveTo for the error semantics.
func (inv *Inventory) Save(path string) error {
	return inv.SaveTo(context.Background(), NewFileStore(path))
}

// Load replaces the Inventory with the flat file at path. See LoadFrom for the error semantics.
func (inv *Inventory) Load(path string) error {
	return inv.LoadFrom(context.Background(), NewFileStore(path))
}

// SaveTo writes the Records of all books, in insertion order, to the store.
//
// Failures are logged at error level and returned. Errors from the store which are not
// classified already are returned as ErrIOFailure.
func (inv *Inventory) SaveTo(ctx context.Context, store SnapshotStore) error {
	if store == nil {
		return fmt.Errorf("%w: snapshot store must not be nil", ErrInvalidArgument)
	}

	records := make([]Record, 0, len(inv.isbns))
	for _, isbn := range inv.isbns {
		records = append(records, RecordFrom(inv.books[isbn]))
	}

	start := time.Now()
	err := store.WriteRecords(ctx, records)
	duration := time.Since(start)

	if err != nil {
		err = classifyStoreError(err)
	}

	inv.recordSnapshot(OperationSave, duration, err)

	if err != nil {
		inv.logger.Error(logMsgSaveFailed, logAttrLocation, store.Location(), logAttrError, err.Error())
		return err
	}

	inv.logger.Info(
		logMsgSaved,
		logAttrLocation, store.Location(),
		logAttrBookCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration),
	)
	inv.recordEvent(core.BuildInventorySaved(store.Location(), len(records), inv.clock.Now()))

	return nil
}

// LoadFrom replaces all books with the Records read from the store.
//
// Every Record is validated before anything is replaced: a negative number of copies or a publication year
// after the current year fails with ErrMalformedData. If a Record's ISBN repeats, the later Record wins
// and keeps the position of the first one. Copies are not merged.
//
// On success, the books and their order are swapped in at once, and all copies are available.
// On failure, the Inventory is left untouched, the failure is logged at error level and returned.
func (inv *Inventory) LoadFrom(ctx context.Context, store SnapshotStore) error {
	if store == nil {
		return fmt.Errorf("%w: snapshot store must not be nil", ErrInvalidArgument)
	}

	start := time.Now()

	records, err := store.ReadRecords(ctx)
	if err != nil {
		err = classifyStoreError(err)
	}

	var books map[ISBNString]*Book
	var isbns []ISBNString

	if err == nil {
		books, isbns, err = inv.buildFrom(records)
	}

	duration := time.Since(start)
	inv.recordSnapshot(OperationLoad, duration, err)

	if err != nil {
		inv.logger.Error(logMsgLoadFailed, logAttrLocation, store.Location(), logAttrError, err.Error())
		return err
	}

	inv.books, inv.isbns = books, isbns

	inv.logger.Info(
		logMsgLoaded,
		logAttrLocation, store.Location(),
		logAttrBookCount, len(isbns),
		logAttrDurationMS, durationToMilliseconds(duration),
	)
	inv.recordEvent(core.BuildInventoryLoaded(store.Location(), len(isbns), inv.clock.Now()))

	return nil
}

// buildFrom validates the records and builds a fresh collection from them, leaving the Inventory untouched.
func (inv *Inventory) buildFrom(records []Record) (map[ISBNString]*Book, []ISBNString, error) {
	currentYear := inv.clock.Now().Year()
	books := make(map[ISBNString]*Book, len(records))
	isbns := make([]ISBNString, 0, len(records))

	for _, record := range records {
		if err := record.Validate(currentYear); err != nil {
			return nil, nil, err
		}

		book, err := NewBook(record.Title, record.Author, record.ISBN, record.PublicationYear, record.TotalCopies)
		if err != nil {
			return nil, nil, errors.Join(ErrMalformedData, err)
		}

		if _, seen := books[record.ISBN]; !seen {
			isbns = append(isbns, record.ISBN)
		}

		books[record.ISBN] = book
	}

	return books, isbns, nil
}

func (inv *Inventory) lookup(isbn ISBNString) (*Book, error) {
	if isBlank(isbn) {
		return nil, fmt.Errorf("%w: ISBN must not be blank", ErrInvalidArgument)
	}

	book, ok := inv.books[isbn]
	if !ok {
		return nil, fmt.Errorf("%w: book with ISBN %s", ErrNotFound, isbn)
	}

	return book, nil
}

// recordEvent hands the event to the recorder if one is configured.
func (inv *Inventory) recordEvent(event core.DomainEvent) {
	if inv.eventRecorder == nil {
		return
	}

	if err := inv.eventRecorder.Record(event); err != nil {
		inv.logger.Warn(logMsgRecordEventFailed, logAttrEventType, event.EventType(), logAttrError, err.Error())
	}
}

func (inv *Inventory) recordOperation(operation string, err error) {
	if inv.metricsCollector == nil {
		return
	}

	inv.metricsCollector.IncrementCounter(OperationsMetric, buildOperationLabels(operation, err))
}

func (inv *Inventory) recordSnapshot(operation string, duration time.Duration, err error) {
	if inv.metricsCollector == nil {
		return
	}

	labels := buildOperationLabels(operation, err)
	inv.metricsCollector.RecordDuration(SnapshotDurationMetric, duration, labels)
	inv.metricsCollector.IncrementCounter(OperationsMetric, labels)
}

// classifyStoreError makes sure a store error carries one of the snapshot error kinds.
func classifyStoreError(err error) error {
	if errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrMalformedData) || errors.Is(err, ErrIOFailure) {
		return err
	}

	return errors.Join(ErrIOFailure, err)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
