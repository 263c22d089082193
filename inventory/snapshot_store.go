package inventory

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const maxRecordLineBytes = 1024 * 1024

// SnapshotStore persists the Records of a whole Inventory.
//
// WriteRecords replaces whatever the store held before. ReadRecords returns the Records in the order
// they were written. Both must release every resource they acquired before returning.
type SnapshotStore interface {
	WriteRecords(ctx context.Context, records []Record) error
	ReadRecords(ctx context.Context) ([]Record, error)

	// Location describes where the snapshot lives, for logs and events.
	Location() string
}

// FileStore is the flat-file SnapshotStore, one FormatRecord line per book.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore for the file at path.
func NewFileStore(path string) FileStore {
	return FileStore{path: path}
}

// Location returns the path of the file.
func (s FileStore) Location() string {
	return s.path
}

// WriteRecords creates or truncates the file and writes one line per Record.
// Returns ErrIOFailure if the file can't be created, written or closed.
func (s FileStore) WriteRecords(_ context.Context, records []Record) (err error) {
	file, createErr := os.Create(s.path)
	if createErr != nil {
		return errors.Join(ErrIOFailure, createErr)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.Join(ErrIOFailure, closeErr)
		}
	}()

	writer := bufio.NewWriter(file)

	for _, record := range records {
		if _, writeErr := writer.WriteString(FormatRecord(record) + "\n"); writeErr != nil {
			return errors.Join(ErrIOFailure, writeErr)
		}
	}

	if flushErr := writer.Flush(); flushErr != nil {
		return errors.Join(ErrIOFailure, flushErr)
	}

	return nil
}

// ReadRecords parses the file line by line and stops at the first malformed line.
// Returns ErrFileNotFound if the file does not exist, ErrMalformedData for an unparsable line
// and ErrIOFailure for any other read error.
func (s FileStore) ReadRecords(_ context.Context) ([]Record, error) {
	file, openErr := os.Open(s.path)
	if openErr != nil {
		if errors.Is(openErr, fs.ErrNotExist) {
			return nil, errors.Join(ErrFileNotFound, openErr)
		}

		return nil, errors.Join(ErrIOFailure, openErr)
	}
	defer func() { _ = file.Close() }() // read-only, nothing to lose

	records := make([]Record, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxRecordLineBytes)
	lineNumber := 0

	for scanner.Scan() {
		lineNumber++

		record, parseErr := ParseRecord(scanner.Text())
		if parseErr != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, parseErr)
		}

		records = append(records, record)
	}

	if scanErr := scanner.Err(); scanErr != nil {
		return nil, errors.Join(ErrIOFailure, scanErr)
	}

	return records, nil
}
