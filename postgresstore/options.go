package postgresstore

import (
	"fmt"
	"regexp"

	"github.com/AntonStoeckl/book-inventory-go/inventory"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithTableName sets the table name, which defaults to "inventory_books".
// It must be a plain identifier of at most 63 characters.
func WithTableName(tableName string) Option {
	return func(s *Store) error {
		if !tableNamePattern.MatchString(tableName) {
			return fmt.Errorf("%w: '%s'", ErrInvalidTableName, tableName)
		}

		s.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements with execution timing
// Info level: record counts and durations
// Warn level: rows that could not be closed
// Error level: failures which are returned to the caller.
func WithLogger(logger inventory.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", inventory.ErrInvalidArgument)
		}

		s.logger = logger

		return nil
	}
}
