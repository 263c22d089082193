package postgresstore

import "errors"

// ErrNilDatabaseConnection is returned when a nil database connection is passed to a constructor.
var ErrNilDatabaseConnection = errors.New("database connection must not be nil")

// ErrInvalidTableName is returned by WithTableName for names which are not plain SQL identifiers.
var ErrInvalidTableName = errors.New("invalid table name")

// ErrBuildingQueryFailed is returned when a SQL statement can't be built.
var ErrBuildingQueryFailed = errors.New("building query failed")

// ErrEnsuringSchemaFailed is returned when the snapshot table can't be created.
var ErrEnsuringSchemaFailed = errors.New("ensuring schema failed")

// ErrWritingRecordsFailed is returned when the snapshot can't be written to the table.
var ErrWritingRecordsFailed = errors.New("writing records failed")

// ErrReadingRecordsFailed is returned when the snapshot can't be read from the table.
var ErrReadingRecordsFailed = errors.New("reading records failed")

// ErrScanningDBRowFailed is returned when a row can't be scanned into a Record.
var ErrScanningDBRowFailed = errors.New("scanning db row failed")
