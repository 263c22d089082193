package inventory

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	recordFieldCount     = 5
	recordFieldSeparator = ","
)

// Record is the persisted part of a Book. The number of available copies is not persisted.
type Record struct {
	Title           string
	Author          string
	ISBN            ISBNString
	PublicationYear int
	TotalCopies     int
}

// RecordFrom builds the Record of a Book.
func RecordFrom(book *Book) Record {
	return Record{
		Title:           book.Title(),
		Author:          book.Author(),
		ISBN:            book.ISBN(),
		PublicationYear: book.PublicationYear(),
		TotalCopies:     book.TotalCopies(),
	}
}

// FormatRecord renders a Record as one snapshot line without the trailing newline.
// Commas inside the title or author are written as they are and will break parsing.
func FormatRecord(r Record) string {
	return fmt.Sprintf("%s,%s,%s,%d,%d", r.Title, r.Author, r.ISBN, r.PublicationYear, r.TotalCopies)
}

// ParseRecord parses one snapshot line.
//
// The line must split into exactly five comma separated fields, each one is trimmed.
// Publication year and total copies must be integers.
// Returns ErrMalformedData otherwise. Semantic checks are done by Validate.
func ParseRecord(line string) (Record, error) {
	fields := strings.Split(line, recordFieldSeparator)
	if len(fields) != recordFieldCount {
		return Record{}, fmt.Errorf(
			"%w: expected %d comma separated fields but got %d in line '%s'",
			ErrMalformedData,
			recordFieldCount,
			len(fields),
			line,
		)
	}

	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	publicationYear, err := strconv.Atoi(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("%w: publication year '%s' is not an integer", ErrMalformedData, fields[3])
	}

	totalCopies, err := strconv.Atoi(fields[4])
	if err != nil {
		return Record{}, fmt.Errorf("%w: number of copies '%s' is not an integer", ErrMalformedData, fields[4])
	}

	return Record{
		Title:           fields[0],
		Author:          fields[1],
		ISBN:            fields[2],
		PublicationYear: publicationYear,
		TotalCopies:     totalCopies,
	}, nil
}

// Validate rejects negative copy counts and publication years after currentYear with ErrMalformedData.
func (r Record) Validate(currentYear int) error {
	if r.TotalCopies < 0 {
		return fmt.Errorf(
			"%w: expected a nonnegative number of copies for book with ISBN %s, got %d",
			ErrMalformedData,
			r.ISBN,
			r.TotalCopies,
		)
	}

	if r.PublicationYear > currentYear {
		return fmt.Errorf(
			"%w: publication year %d of book with ISBN %s is after the current year %d",
			ErrMalformedData,
			r.PublicationYear,
			r.ISBN,
			currentYear,
		)
	}

	return nil
}
