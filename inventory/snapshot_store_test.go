package inventory_test

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-inventory-go/core"
	"github.com/AntonStoeckl/book-inventory-go/inventory"
	. "github.com/AntonStoeckl/book-inventory-go/testutil/helper" //nolint:revive
)

type snapshotStoreStub struct {
	records  []inventory.Record
	readErr  error
	writeErr error
	written  []inventory.Record
}

func (s *snapshotStoreStub) WriteRecords(_ context.Context, records []inventory.Record) error {
	if s.writeErr != nil {
		return s.writeErr
	}

	s.written = records

	return nil
}

func (s *snapshotStoreStub) ReadRecords(_ context.Context) ([]inventory.Record, error) {
	return s.records, s.readErr
}

func (s *snapshotStoreStub) Location() string {
	return "stub"
}

func Test_Inventory_Save_WritesOneLinePerBookInInsertionOrder(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(
		t,
		[]*inventory.Book{FixtureBookNeuromancer(t, 1), FixtureBookDune(t, 2)},
		inventory.WithLogger(logger),
	)
	require.NoError(t, inv.Checkout(FixtureISBNDune))
	path := filepath.Join(t.TempDir(), "inventory.txt")

	// act
	err := inv.Save(path)

	// assert
	require.NoError(t, err)
	assert.Equal(
		t,
		[]string{
			"Neuromancer,William Gibson,978-0-441-56956-4,1984,1",
			"Dune,Frank Herbert,978-0-441-01359-3,1965,2",
		},
		ReadSnapshotLines(t, path),
	)

	assert.True(t, logSpy.HasRecord(slog.LevelInfo, "inventory successfully saved"))
	bookCount, ok := logSpy.AttrValue("inventory successfully saved", "book_count")
	require.True(t, ok)
	assert.Equal(t, int64(2), bookCount.Int64())
}

func Test_Inventory_Save_EmptyInventory_WritesEmptyFile(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))
	path := GivenSnapshotFile(t, "Old,Content,isbn-old,1999,1")

	// act
	err := inv.Save(path)

	// assert
	require.NoError(t, err)
	assert.Empty(t, ReadSnapshotLines(t, path))
}

func Test_Inventory_Save_UnwritablePath_FailsWithIOFailure(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))
	directory := t.TempDir()

	// act
	err := inv.Save(directory)

	// assert
	assert.ErrorIs(t, err, inventory.ErrIOFailure)
	assert.True(t, logSpy.HasRecord(slog.LevelError, "save unsuccessful"))
	assert.Equal(t, 1, inv.Count())
}

func Test_Inventory_SaveThenLoad_ResetsAvailableCopies(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(
		t,
		[]*inventory.Book{FixtureBookDune(t, 1), FixtureBookNeuromancer(t, 3)},
		inventory.WithLogger(logger),
	)
	require.NoError(t, inv.Checkout(FixtureISBNDune))
	require.NoError(t, inv.Checkout(FixtureISBNNeuromancer))
	path := filepath.Join(t.TempDir(), "inventory.txt")
	require.NoError(t, inv.Save(path))

	loaded := GivenInventory(t, nil, inventory.WithLogger(logger))

	// act
	err := loaded.Load(path)

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Count())

	dune, err := loaded.FindByISBN(FixtureISBNDune)
	require.NoError(t, err)
	assert.Equal(t, 1, dune.TotalCopies())
	assert.Equal(t, 1, dune.AvailableCopies())

	neuromancer, err := loaded.FindByISBN(FixtureISBNNeuromancer)
	require.NoError(t, err)
	assert.Equal(t, 3, neuromancer.AvailableCopies())

	books := loaded.Books()
	assert.Equal(t, FixtureISBNDune, books[0].ISBN())
	assert.Equal(t, FixtureISBNNeuromancer, books[1].ISBN())
}

func Test_Inventory_Load_ReplacesExistingBooks(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookLearningDDD(t, 4)}, inventory.WithLogger(logger))
	path := GivenSnapshotFile(t, "Dune,Frank Herbert,978-0-441-01359-3,1965,2")

	// act
	err := inv.Load(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Count())

	_, err = inv.FindByISBN(FixtureISBNLearningDDD)
	assert.ErrorIs(t, err, inventory.ErrNotFound)

	assert.True(t, logSpy.HasRecord(slog.LevelInfo, "inventory successfully loaded"))
}

func Test_Inventory_Load_EmptyFile_YieldsEmptyInventory(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))
	path := GivenSnapshotFile(t)

	// act
	err := inv.Load(path)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Count())
}

func Test_Inventory_Load_DuplicateISBN_LastLineWinsAtFirstPosition(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))
	path := GivenSnapshotFile(
		t,
		"Dune,Frank Herbert,978-0-441-01359-3,1965,2",
		"Neuromancer,William Gibson,978-0-441-56956-4,1984,1",
		"Dune Reprint,Frank Herbert,978-0-441-01359-3,1990,7",
	)

	// act
	err := inv.Load(path)

	// assert
	require.NoError(t, err)
	require.Equal(t, 2, inv.Count())

	books := inv.Books()
	assert.Equal(t, "Dune Reprint", books[0].Title())
	assert.Equal(t, 7, books[0].TotalCopies())
	assert.Equal(t, FixtureISBNNeuromancer, books[1].ISBN())
}

func Test_Inventory_Load_PublicationYearBoundary(t *testing.T) {
	testCases := []struct {
		name      string
		year      string
		expectErr bool
	}{
		{name: "current year is accepted", year: "2025"},
		{name: "next year is rejected", year: "2026", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			logger, _ := NewSpyLogger()
			inv := GivenInventory(t, nil, inventory.WithLogger(logger), inventory.WithClock(FixedClockInYear(2025)))
			path := GivenSnapshotFile(t, "New Book,Some Author,isbn-new,"+tc.year+",1")

			// act
			err := inv.Load(path)

			// assert
			if tc.expectErr {
				assert.ErrorIs(t, err, inventory.ErrMalformedData)
				assert.Equal(t, 0, inv.Count())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 1, inv.Count())
		})
	}
}

func Test_Inventory_Load_Failures_LeaveInventoryUntouched(t *testing.T) {
	testCases := []struct {
		name        string
		lines       []string
		expectedErr error
	}{
		{
			name:        "missing field",
			lines:       []string{"Neuromancer,William Gibson,978-0-441-56956-4,1984,1", "Dune,Frank Herbert,978-0-441-01359-3,1965"},
			expectedErr: inventory.ErrMalformedData,
		},
		{
			name:        "negative copies",
			lines:       []string{"Dune,Frank Herbert,978-0-441-01359-3,1965,-1"},
			expectedErr: inventory.ErrMalformedData,
		},
		{
			name:        "year is not an integer",
			lines:       []string{"Dune,Frank Herbert,978-0-441-01359-3,year,1"},
			expectedErr: inventory.ErrMalformedData,
		},
		{
			name:        "blank line",
			lines:       []string{"Dune,Frank Herbert,978-0-441-01359-3,1965,1", ""},
			expectedErr: inventory.ErrMalformedData,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			logger, logSpy := NewSpyLogger()
			inv := GivenInventory(t, []*inventory.Book{FixtureBookLearningDDD(t, 2)}, inventory.WithLogger(logger))
			require.NoError(t, inv.Checkout(FixtureISBNLearningDDD))
			path := GivenSnapshotFile(t, tc.lines...)

			// act
			err := inv.Load(path)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
			assert.True(t, logSpy.HasRecord(slog.LevelError, "load unsuccessful"))

			require.Equal(t, 1, inv.Count())
			book, findErr := inv.FindByISBN(FixtureISBNLearningDDD)
			require.NoError(t, findErr)
			assert.Equal(t, 1, book.AvailableCopies())
		})
	}
}

func Test_Inventory_Load_MissingFile_FailsWithFileNotFound(t *testing.T) {
	// arrange
	logger, logSpy := NewSpyLogger()
	inv := GivenInventory(t, []*inventory.Book{FixtureBookDune(t, 1)}, inventory.WithLogger(logger))

	// act
	err := inv.Load(filepath.Join(t.TempDir(), "missing.txt"))

	// assert
	assert.ErrorIs(t, err, inventory.ErrFileNotFound)
	assert.False(t, errors.Is(err, inventory.ErrIOFailure))
	assert.True(t, logSpy.HasRecord(slog.LevelError, "load unsuccessful"))
	assert.Equal(t, 1, inv.Count())
}

func Test_Inventory_Load_Directory_FailsWithIOFailure(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))

	// act
	err := inv.Load(t.TempDir())

	// assert
	assert.ErrorIs(t, err, inventory.ErrIOFailure)
}

func Test_Inventory_SaveTo_UnclassifiedStoreError_IsIOFailure(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	metrics := NewMetricsCollectorSpy()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger), inventory.WithMetrics(metrics))
	storeErr := errors.New("connection reset")
	store := &snapshotStoreStub{writeErr: storeErr}

	// act
	err := inv.SaveTo(context.Background(), store)

	// assert
	assert.ErrorIs(t, err, inventory.ErrIOFailure)
	assert.ErrorIs(t, err, storeErr)

	durations := metrics.GetDurationRecords()
	require.Len(t, durations, 1)
	assert.Equal(t, inventory.SnapshotDurationMetric, durations[0].Metric)
	assert.Equal(t, "io_failure", durations[0].Labels[inventory.LabelErrorKind])
}

func Test_Inventory_LoadFrom_RecordsEventAndMetrics(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	metrics := NewMetricsCollectorSpy()
	recorder := NewEventRecorderSpy()
	inv := GivenInventory(
		t,
		nil,
		inventory.WithLogger(logger),
		inventory.WithMetrics(metrics),
		inventory.WithEventRecorder(recorder),
	)
	store := &snapshotStoreStub{records: []inventory.Record{inventory.RecordFrom(FixtureBookDune(t, 2))}}

	// act
	err := inv.LoadFrom(context.Background(), store)

	// assert
	require.NoError(t, err)

	loaded, ok := recorder.LastEvent().(core.InventoryLoaded)
	require.True(t, ok)
	assert.Equal(t, "stub", loaded.Source)
	assert.Equal(t, 1, loaded.BookCount)

	assert.Equal(t, 1, metrics.CountCounterRecords(inventory.OperationsMetric, map[string]string{
		inventory.LabelOperation: inventory.OperationLoad,
		inventory.LabelStatus:    inventory.StatusSuccess,
	}))
}

func Test_Inventory_SaveTo_PassesRecordsInInsertionOrder(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	recorder := NewEventRecorderSpy()
	inv := GivenInventory(
		t,
		[]*inventory.Book{FixtureBookLearningDDD(t, 1), FixtureBookDune(t, 2)},
		inventory.WithLogger(logger),
		inventory.WithEventRecorder(recorder),
	)
	store := &snapshotStoreStub{}

	// act
	err := inv.SaveTo(context.Background(), store)

	// assert
	require.NoError(t, err)
	require.Len(t, store.written, 2)
	assert.Equal(t, FixtureISBNLearningDDD, store.written[0].ISBN)
	assert.Equal(t, FixtureISBNDune, store.written[1].ISBN)

	saved, ok := recorder.LastEvent().(core.InventorySaved)
	require.True(t, ok)
	assert.Equal(t, "stub", saved.Destination)
	assert.Equal(t, 2, saved.BookCount)
}

func Test_Inventory_SaveTo_NilStore_FailsWithInvalidArgument(t *testing.T) {
	// arrange
	logger, _ := NewSpyLogger()
	inv := GivenInventory(t, nil, inventory.WithLogger(logger))

	// act
	saveErr := inv.SaveTo(context.Background(), nil)
	loadErr := inv.LoadFrom(context.Background(), nil)

	// assert
	assert.ErrorIs(t, saveErr, inventory.ErrInvalidArgument)
	assert.ErrorIs(t, loadErr, inventory.ErrInvalidArgument)
}
