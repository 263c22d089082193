package inventory

import "errors"

var (
	// ErrInvalidArgument is returned for blank required strings and negative copy counts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a lookup by ISBN or by title and author yields no book.
	ErrNotFound = errors.New("book not found")

	// ErrNoCopiesAvailable is returned when a checkout is attempted while all copies are checked out.
	ErrNoCopiesAvailable = errors.New("no copies available")

	// ErrAllCopiesAlreadyCheckedIn is returned when a return is attempted while no copy is checked out.
	ErrAllCopiesAlreadyCheckedIn = errors.New("all copies already checked in")

	// ErrFileNotFound is returned when a snapshot file to load does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedData is returned when a snapshot contains a record that can't be parsed or is invalid.
	ErrMalformedData = errors.New("malformed data")

	// ErrIOFailure is returned when a snapshot can't be read or written.
	ErrIOFailure = errors.New("i/o failure")
)
