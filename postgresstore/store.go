package postgresstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/book-inventory-go/inventory"
	"github.com/AntonStoeckl/book-inventory-go/postgresstore/internal/adapters"
)

const (
	defaultTableName       = "inventory_books"
	locationPrefix         = "postgres:"
	dialectPostgres        = "postgres"
	statementSeparator     = ";\n"
	colPosition            = "position"
	colTitle               = "title"
	colAuthor              = "author"
	colISBN                = "isbn"
	colPublicationYear     = "publication_year"
	colTotalCopies         = "total_copies"
	logMsgBuildQueryFailed = "failed to build query"
	logMsgDBExecFailed     = "database execution failed"
	logMsgDBQueryFailed    = "database query execution failed"
	logMsgScanRowFailed    = "failed to scan database row"
	logMsgCloseRowsFailed  = "failed to close database rows"
	logMsgSQLExecuted      = "executed sql for: "
	logMsgOperation        = "snapshot store operation: "
	logMsgSchemaEnsured    = "schema ensured"
	logMsgRecordsWritten   = "records written"
	logMsgRecordsRead      = "records read"
	logAttrError           = "error"
	logAttrQuery           = "query"
	logAttrTable           = "table"
	logAttrRecordCount     = "record_count"
	logAttrDurationMS      = "duration_ms"
	logActionEnsureSchema  = "ensure schema"
	logActionWrite         = "write"
	logActionRead          = "read"
)

const createTableStatementFmt = `CREATE TABLE IF NOT EXISTS "%s" (
	"position" INTEGER NOT NULL,
	"title" TEXT NOT NULL,
	"author" TEXT NOT NULL,
	"isbn" TEXT PRIMARY KEY,
	"publication_year" INTEGER NOT NULL,
	"total_copies" INTEGER NOT NULL
)`

var _ inventory.SnapshotStore = Store{}

// Store is a PostgreSQL snapshot store for an inventory.Inventory.
// It leverages a database adapter and supports a custom table name and logging.
type Store struct {
	db        adapters.DBAdapter
	tableName string
	logger    inventory.Logger
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (Store, error) {
	s := Store{
		db:        db,
		tableName: defaultTableName,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Location names the table, prefixed with "postgres:".
func (s Store) Location() string {
	return locationPrefix + s.tableName
}

// EnsureSchema creates the snapshot table if it does not exist yet.
func (s Store) EnsureSchema(ctx context.Context) error {
	statement := fmt.Sprintf(createTableStatementFmt, s.tableName)

	start := time.Now()
	_, err := s.db.Exec(ctx, statement)
	duration := time.Since(start)
	s.logQueryWithDuration(statement, logActionEnsureSchema, duration)

	if err != nil {
		s.logError(logMsgDBExecFailed, err, logAttrQuery, statement)
		return errors.Join(ErrEnsuringSchemaFailed, inventory.ErrIOFailure, err)
	}

	s.logOperation(logMsgSchemaEnsured, logAttrTable, s.tableName)

	return nil
}

// WriteRecords replaces all rows of the table with the records, keeping their order in the position column.
// The DELETE and the INSERT are sent as one script, so either both or none of them take effect.
func (s Store) WriteRecords(ctx context.Context, records []inventory.Record) error {
	script, buildErr := s.buildReplaceScript(records)
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr, logAttrRecordCount, len(records))
		return errors.Join(ErrWritingRecordsFailed, inventory.ErrIOFailure, buildErr)
	}

	start := time.Now()
	_, execErr := s.db.Exec(ctx, script)
	duration := time.Since(start)
	s.logQueryWithDuration(script, logActionWrite, duration)

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrQuery, script)
		return errors.Join(ErrWritingRecordsFailed, inventory.ErrIOFailure, execErr)
	}

	s.logOperation(
		logMsgRecordsWritten,
		logAttrTable, s.tableName,
		logAttrRecordCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return nil
}

// ReadRecords returns all rows of the table as Records, ordered by position.
func (s Store) ReadRecords(ctx context.Context) ([]inventory.Record, error) {
	query, buildErr := s.buildSelectQuery()
	if buildErr != nil {
		s.logError(logMsgBuildQueryFailed, buildErr)
		return nil, errors.Join(ErrReadingRecordsFailed, inventory.ErrIOFailure, buildErr)
	}

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, query)
	duration := time.Since(start)
	s.logQueryWithDuration(query, logActionRead, duration)

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, query)
		return nil, errors.Join(ErrReadingRecordsFailed, inventory.ErrIOFailure, queryErr)
	}
	defer s.closeRows(rows)

	records, scanErr := s.scanRecords(rows)
	if scanErr != nil {
		return nil, errors.Join(ErrReadingRecordsFailed, inventory.ErrIOFailure, scanErr)
	}

	s.logOperation(
		logMsgRecordsRead,
		logAttrTable, s.tableName,
		logAttrRecordCount, len(records),
		logAttrDurationMS, durationToMilliseconds(duration),
	)

	return records, nil
}

func (s Store) scanRecords(rows adapters.DBRows) ([]inventory.Record, error) {
	records := make([]inventory.Record, 0)

	for rows.Next() {
		record := inventory.Record{}

		err := rows.Scan(&record.Title, &record.Author, &record.ISBN, &record.PublicationYear, &record.TotalCopies)
		if err != nil {
			s.logError(logMsgScanRowFailed, err)
			return nil, errors.Join(ErrScanningDBRowFailed, err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		s.logError(logMsgDBQueryFailed, err)
		return nil, err
	}

	return records, nil
}

// buildReplaceScript builds the DELETE statement, followed by one multi-row INSERT if there are records.
func (s Store) buildReplaceScript(records []inventory.Record) (string, error) {
	builder := goqu.Dialect(dialectPostgres)

	deleteSQL, _, toSQLErr := builder.Delete(s.tableName).ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	if len(records) == 0 {
		return deleteSQL, nil
	}

	insertStmt := builder.
		Insert(s.tableName).
		Cols(colPosition, colTitle, colAuthor, colISBN, colPublicationYear, colTotalCopies)

	for position, record := range records {
		insertStmt = insertStmt.Vals(goqu.Vals{
			position,
			record.Title,
			record.Author,
			record.ISBN,
			record.PublicationYear,
			record.TotalCopies,
		})
	}

	insertSQL, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return deleteSQL + statementSeparator + insertSQL, nil
}

func (s Store) buildSelectQuery() (string, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(colTitle, colAuthor, colISBN, colPublicationYear, colTotalCopies).
		Order(goqu.I(colPosition).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// closeRows closes database rows and logs any errors.
func (s Store) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if s.logger != nil {
			s.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (s Store) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (s Store) logOperation(action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s Store) logError(msg string, err error, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, append([]any{logAttrError, err.Error()}, args...)...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
