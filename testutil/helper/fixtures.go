package helper

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/book-inventory-go/inventory"
)

const (
	FixtureISBNDune        = "978-0-441-01359-3"
	FixtureISBNNeuromancer = "978-0-441-56956-4"
	FixtureISBNLearningDDD = "978-1-098-10013-1"
)

// FixedClock returns a Clock that always reports the given time.
func FixedClock(t time.Time) inventory.Clock {
	return inventory.ClockFunc(func() time.Time { return t })
}

// FixedClockInYear returns a Clock fixed to the first of June of the given year.
func FixedClockInYear(year int) inventory.Clock {
	return FixedClock(time.Date(year, time.June, 1, 12, 0, 0, 0, time.UTC))
}

func FixtureBook(t testing.TB, title, author string, isbn string, publicationYear int, copies int) *inventory.Book {
	book, err := inventory.NewBook(title, author, isbn, publicationYear, copies)
	require.NoError(t, err, "error in arranging test data")

	return book
}

func FixtureBookDune(t testing.TB, copies int) *inventory.Book {
	return FixtureBook(t, "Dune", "Frank Herbert", FixtureISBNDune, 1965, copies)
}

func FixtureBookNeuromancer(t testing.TB, copies int) *inventory.Book {
	return FixtureBook(t, "Neuromancer", "William Gibson", FixtureISBNNeuromancer, 1984, copies)
}

func FixtureBookLearningDDD(t testing.TB, copies int) *inventory.Book {
	return FixtureBook(t, "Learning Domain-Driven Design", "Vlad Khononov", FixtureISBNLearningDDD, 2021, copies)
}

// GivenInventory creates an Inventory with the given options and adds all books to it.
func GivenInventory(t testing.TB, books []*inventory.Book, options ...inventory.Option) *inventory.Inventory {
	inv, err := inventory.New(options...)
	require.NoError(t, err, "error in arranging test data")

	for _, book := range books {
		require.NoError(t, inv.Add(book), "error in arranging test data")
	}

	return inv
}

// GivenSnapshotFile writes the lines, each terminated by a newline, to a file in a fresh temp dir.
func GivenSnapshotFile(t testing.TB, lines ...string) string {
	path := filepath.Join(t.TempDir(), "inventory.txt")

	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "error in arranging test data")

	return path
}

// ReadSnapshotLines returns the lines of a snapshot file without the trailing newline.
func ReadSnapshotLines(t testing.TB, path string) []string {
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	trimmed := strings.TrimSuffix(string(content), "\n")
	if trimmed == "" {
		return []string{}
	}

	return strings.Split(trimmed, "\n")
}
