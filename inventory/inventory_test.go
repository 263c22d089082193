package inventory_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-inventory-go/core"
	"github.com/AntonStoeckl/book-inventory-go/inventory"
	. "github.com/AntonStoeckl/book-inventory-go/testutil/helper" //nolint:revive
)

func Test_New_IsEmpty(t *testing.T) {
	// act
	inv, err := inventory.New()

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Count())
	assert.Empty(t, inv.Books())
}

func Test_New_RejectsNilOptions(t *testing.T) {
	testCases := []struct {
		name   string
		option inventory.Option
	}{
		{name: "logger", option: inventory.WithLogger(nil)},
		{name: "metrics", option: inventory.WithMetrics(nil)},
		{name: "clock", option: inventory.WithClock(nil)},
		{name: "event recorder", option: inventory.WithEventRecorder(nil)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			inv, err := inventory.New(tc.option)

			// assert
			assert.ErrorIs(t, err, inventory.ErrInvalidArgument)
			assert.Nil(t, inv)
		})
	}
}

func Test_Inventory_Add_InsertsNewBooksInOrder(t *testing.T) {
	// arrange
	inv, err := inventory.New(inventory.WithLogger(slog.New(NewLogHandlerSpy(false))))
	require.NoError(t, err)

	// act
	require.NoError(t, inv.Add(FixtureBookNeuromancer(t, 1)))
	require.NoError(t, inv.Add(FixtureBookDune(t, 2)))
	require.NoError(t, inv.Add(FixtureBookLearningDDD(t, 3)))

	// assert
	assert.Equal(t, 3, inv.Count())

	books := inv.Books()
	require.Len(t, books, 3)
	assert.Equal(t, FixtureISBNNeuromancer, books[0].ISBN())
	assert.Equal(t, FixtureISBNDune, books[1].ISBN())
	assert.Equal(t, FixtureISBNLearningDDD, books[2].ISBN())
}

func Test_Inventory_Add_SameISBN_MergesCopies(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))

	// act
	require.NoError(t, inv.Add(FixtureBook(t, "X", "Author", "X", 2000, 2)))
	require.NoError(t, inv.Add(FixtureBook(t, "X", "Author", "X", 2000, 3)))

	// assert
	assert.Equal(t, 1, inv.Count())

	book, err := inv.FindByISBN("X")
	require.NoError(t, err)
	assert.Equal(t, 5, book.TotalCopies())
	assert.Equal(t, 5, book.AvailableCopies())
}

func Test_Inventory_Add_SameISBN_KeepsTheCanonicalBook(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	original := FixtureBookDune(t, 1)
	inv := GivenInventory(t, []*inventory.Book{original}, inventory.WithLogger(logger))
	require.NoError(t, inv.Checkout(FixtureISBNDune))

	// act
	require.NoError(t, inv.Add(FixtureBookDune(t, 2)))

	// assert
	book, err := inv.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	assert.Same(t, original, book)
	assert.Equal(t, 3, book.TotalCopies())
	assert.Equal(t, 2, book.AvailableCopies())
}

func Test_Inventory_Add_NilBook_FailsWithInvalidArgument(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))

	// act
	err := inv.Add(nil)

	// assert
	assert.ErrorIs(t, err, inventory.ErrInvalidArgument)
	assert.Equal(t, 0, inv.Count())
}

func Test_Inventory_Checkout_DecrementsAndLogsConfirmation(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 2)}, inventory.WithLogger(logger))

	// act
	err := inv.Checkout(FixtureISBNDune)

	// assert
	require.NoError(t, err)

	book, err := inv.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies())
	assert.Equal(t, 2, book.TotalCopies())

	assert.True(t, logSpy.HasRecord(slog.LevelInfo, "book checked out"))
	available, ok := logSpy.AttrValue("book checked out", "available_copies")
	require.True(t, ok)
	assert.Equal(t, int64(1), available.Int64())
}

func Test_Inventory_Checkout_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		isbn        string
		expectedErr error
	}{
		{name: "empty isbn", isbn: "", expectedErr: inventory.ErrInvalidArgument},
		{name: "blank isbn", isbn: "   ", expectedErr: inventory.ErrInvalidArgument},
		{name: "unknown isbn", isbn: "unknown-isbn", expectedErr: inventory.ErrNotFound},
		{name: "no copies available", isbn: FixtureISBNNeuromancer, expectedErr: inventory.ErrNoCopiesAvailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			logger, _ := NewSpyLogger()
			inv := GivenInventory(
				t,
				[]*inventory.Book{FixtureBookDune(t, 1), FixtureBookNeuromancer(t, 0)},
				inventory.WithLogger(logger),
			)

			// act
			err := inv.Checkout(tc.isbn)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)

			dune, findErr := inv.FindByISBN(FixtureISBNDune)
			require.NoError(t, findErr)
			assert.Equal(t, 1, dune.AvailableCopies())
		})
	}
}

func Test_Inventory_ReturnBook_IncrementsAvailableCopies(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 2)}, inventory.WithLogger(logger))
	require.NoError(t, inv.Checkout(FixtureISBNDune))
	require.NoError(t, inv.Checkout(FixtureISBNDune))

	// act
	err := inv.ReturnBook(FixtureISBNDune)

	// assert
	require.NoError(t, err)

	book, err := inv.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies())
	assert.True(t, logSpy.HasRecord(slog.LevelInfo, "book returned"))
}

func Test_Inventory_ReturnBook_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		isbn        string
		expectedErr error
	}{
		{name: "empty isbn", isbn: "", expectedErr: inventory.ErrInvalidArgument},
		{name: "blank isbn", isbn: "\t", expectedErr: inventory.ErrInvalidArgument},
		{name: "unknown isbn", isbn: "unknown-isbn", expectedErr: inventory.ErrNotFound},
		{name: "all copies already checked in", isbn: FixtureISBNDune, expectedErr: inventory.ErrAllCopiesAlreadyCheckedIn},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			logger, _ := NewSpyLogger()
			inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))

			// act
			err := inv.ReturnBook(tc.isbn)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func Test_Inventory_FindByTitleAndAuthor_IgnoresCase(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(
		t,
		[]*inventory.Book{FixtureBookNeuromancer(t, 1), FixtureBookDune(t, 1)},
		inventory.WithLogger(logger),
	)

	// act
	book, err := inv.FindByTitleAndAuthor("dUNE", "FRANK herbert")

	// assert
	require.NoError(t, err)
	assert.Equal(t, FixtureISBNDune, book.ISBN())
}

func Test_Inventory_FindByTitleAndAuthor_ReturnsFirstMatchInInsertionOrder(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	first := FixtureBook(t, "Dune", "Frank Herbert", "isbn-first", 1965, 1)
	second := FixtureBook(t, "DUNE", "frank herbert", "isbn-second", 2005, 1)
	inv := GivenInventory(t, []*inventory.Book{first, second}, inventory.WithLogger(logger))

	// act
	book, err := inv.FindByTitleAndAuthor("Dune", "Frank Herbert")

	// assert
	require.NoError(t, err)
	assert.Same(t, first, book)
}

func Test_Inventory_FindByTitleAndAuthor_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		title       string
		author      string
		expectedErr error
	}{
		{name: "empty title", title: "", author: "Frank Herbert", expectedErr: inventory.ErrInvalidArgument},
		{name: "blank author", title: "Dune", author: "  ", expectedErr: inventory.ErrInvalidArgument},
		{name: "no exact match", title: "Dun", author: "Frank Herbert", expectedErr: inventory.ErrNotFound},
		{name: "author mismatch", title: "Dune", author: "William Gibson", expectedErr: inventory.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			logger, _ := NewSpyLogger()
			inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))

			// act
			book, err := inv.FindByTitleAndAuthor(tc.title, tc.author)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Nil(t, book)
		})
	}
}

func Test_Inventory_FindByISBN_Errors(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))

	// act
	_, emptyErr := inv.FindByISBN("")
	_, unknownErr := inv.FindByISBN("unknown-isbn")

	// assert
	assert.ErrorIs(t, emptyErr, inventory.ErrInvalidArgument)
	assert.ErrorIs(t, unknownErr, inventory.ErrNotFound)
	assert.False(t, errors.Is(unknownErr, inventory.ErrInvalidArgument))
}

func Test_Inventory_FindByISBN_ReturnsTheCanonicalBook(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 2)}, inventory.WithLogger(logger))

	// act
	book, err := inv.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	require.NoError(t, book.Checkout())

	// assert
	again, err := inv.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	assert.Equal(t, 1, again.AvailableCopies())
	assert.Equal(t, 1, inv.Books()[0].AvailableCopies())
}

func Test_Inventory_RecordsDomainEvents(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	recorder := NewEventRecorderSpy()
	clock := FixedClockInYear(2025)
	inv := GivenInventory(t, nil, inventory.WithLogger(logger), inventory.WithEventRecorder(recorder), inventory.WithClock(clock))

	// act
	require.NoError(t, inv.Add(FixtureBookDune(t, 1)))
	require.NoError(t, inv.Add(FixtureBookDune(t, 2)))
	require.NoError(t, inv.Checkout(FixtureISBNDune))
	require.NoError(t, inv.ReturnBook(FixtureISBNDune))
	assert.Error(t, inv.ReturnBook(FixtureISBNDune))

	// assert
	events := recorder.GetEvents()
	require.Len(t, events, 4)

	added, ok := events[0].(core.BookAddedToInventory)
	require.True(t, ok)
	assert.Equal(t, FixtureISBNDune, added.ISBN)
	assert.Equal(t, 1, added.TotalCopies)
	assert.Equal(t, clock.Now(), added.HasOccurredAt())

	merged, ok := events[1].(core.BookCopiesAdded)
	require.True(t, ok)
	assert.Equal(t, 2, merged.CopiesAdded)
	assert.Equal(t, 3, merged.TotalCopies)

	checkedOut, ok := events[2].(core.BookCopyCheckedOut)
	require.True(t, ok)
	assert.Equal(t, 2, checkedOut.AvailableCopies)

	returned, ok := events[3].(core.BookCopyReturned)
	require.True(t, ok)
	assert.Equal(t, 3, returned.AvailableCopies)
}

func Test_Inventory_FailingEventRecorder_DoesNotAffectMutation(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	recorder := NewFailingEventRecorderSpy(errors.New("disk full"))
	inv := GivenInventory(t, nil, inventory.WithLogger(logger), inventory.WithEventRecorder(recorder))

	// act
	err := inv.Add(FixtureBookDune(t, 1))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Count())
	assert.True(t, logSpy.HasRecord(slog.LevelWarn, "failed to record domain event"))
}

func Test_Inventory_RecordsOperationMetrics(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	metrics := NewMetricsCollectorSpy()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger), inventory.WithMetrics(metrics))

	// act
	require.NoError(t, inv.Add(FixtureBookDune(t, 1)))
	require.NoError(t, inv.Checkout(FixtureISBNDune))
	assert.ErrorIs(t, inv.Checkout(FixtureISBNDune), inventory.ErrNoCopiesAvailable)
	assert.ErrorIs(t, inv.ReturnBook("unknown-isbn"), inventory.ErrNotFound)

	// assert
	assert.Equal(t, 1, metrics.CountCounterRecords(inventory.OperationsMetric, map[string]string{
		inventory.LabelOperation: inventory.OperationAdd,
		inventory.LabelStatus:    inventory.StatusSuccess,
	}))
	assert.Equal(t, 1, metrics.CountCounterRecords(inventory.OperationsMetric, map[string]string{
		inventory.LabelOperation: inventory.OperationCheckout,
		inventory.LabelStatus:    inventory.StatusSuccess,
	}))
	assert.Equal(t, 1, metrics.CountCounterRecords(inventory.OperationsMetric, map[string]string{
		inventory.LabelOperation: inventory.OperationCheckout,
		inventory.LabelStatus:    inventory.StatusError,
		inventory.LabelErrorKind: "no_copies_available",
	}))
	assert.Equal(t, 1, metrics.CountCounterRecords(inventory.OperationsMetric, map[string]string{
		inventory.LabelOperation: inventory.OperationReturn,
		inventory.LabelErrorKind: "not_found",
	}))
}
