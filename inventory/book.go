package inventory

import (
	"fmt"
)

// ISBNString represents an ISBN, the unique key of a Book within an Inventory.
type ISBNString = string

// Book is one title with its copy counts.
//
// The number of available copies is always between 0 and the total number of copies, both inclusive.
// Title, author, ISBN and publication year are read-only, total copies only grow.
type Book struct {
	title           string
	author          string
	isbn            ISBNString
	publicationYear int
	totalCopies     int
	availableCopies int
}

// NewBook creates a Book with all copies available.
// Emptiness of title, author and isbn is not checked here, that is up to the caller.
// Returns ErrInvalidArgument if totalCopies is negative.
func NewBook(title, author string, isbn ISBNString, publicationYear int, totalCopies int) (*Book, error) {
	if totalCopies < 0 {
		return nil, fmt.Errorf("%w: number of copies must not be negative, got %d", ErrInvalidArgument, totalCopies)
	}

	return &Book{
		title:           title,
		author:          author,
		isbn:            isbn,
		publicationYear: publicationYear,
		totalCopies:     totalCopies,
		availableCopies: totalCopies,
	}, nil
}

func (b *Book) Title() string {
	return b.title
}

func (b *Book) Author() string {
	return b.author
}

func (b *Book) ISBN() ISBNString {
	return b.isbn
}

func (b *Book) PublicationYear() int {
	return b.publicationYear
}

func (b *Book) TotalCopies() int {
	return b.totalCopies
}

func (b *Book) AvailableCopies() int {
	return b.availableCopies
}

// AddCopies adds n copies, which are all available.
// Returns ErrInvalidArgument if n is negative.
func (b *Book) AddCopies(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: number of copies to add must not be negative, got %d", ErrInvalidArgument, n)
	}

	b.totalCopies += n
	b.availableCopies += n

	return nil
}

// Checkout takes one available copy.
// Returns ErrNoCopiesAvailable if all copies are checked out, the Book is unchanged then.
func (b *Book) Checkout() error {
	if b.availableCopies <= 0 {
		return fmt.Errorf("%w: book '%s' (ISBN: %s)", ErrNoCopiesAvailable, b.title, b.isbn)
	}

	b.availableCopies--

	return nil
}

// Checkin puts one checked-out copy back.
// Returns ErrAllCopiesAlreadyCheckedIn if no copy is checked out, the Book is unchanged then.
func (b *Book) Checkin() error {
	if b.availableCopies >= b.totalCopies {
		return fmt.Errorf("%w: book '%s' (ISBN: %s)", ErrAllCopiesAlreadyCheckedIn, b.title, b.isbn)
	}

	b.availableCopies++

	return nil
}

// SetAvailableCopies sets the number of available copies directly. It only exists to arrange tests.
// Returns ErrInvalidArgument if n is not between 0 and the total number of copies.
func (b *Book) SetAvailableCopies(n int) error {
	if n < 0 || n > b.totalCopies {
		return fmt.Errorf(
			"%w: invalid number of available copies %d, must be between 0 and %d",
			ErrInvalidArgument,
			n,
			b.totalCopies,
		)
	}

	b.availableCopies = n

	return nil
}

// Equal reports whether both Books have the same title, author and ISBN.
// Copy counts and publication year don't take part.
func (b *Book) Equal(other *Book) bool {
	if b == other {
		return true
	}

	if b == nil || other == nil {
		return false
	}

	return b.title == other.title && b.author == other.author && b.isbn == other.isbn
}

func (b *Book) String() string {
	return fmt.Sprintf(
		"Title: '%s', Author: '%s', ISBN: '%s', Year: %d, Total Copies: %d, Available Copies: %d",
		b.title,
		b.author,
		b.isbn,
		b.publicationYear,
		b.totalCopies,
		b.availableCopies,
	)
}
