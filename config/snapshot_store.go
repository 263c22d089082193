package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/book-inventory-go/inventory"
	"github.com/AntonStoeckl/book-inventory-go/postgresstore"
)

// Driver selects the database library the Postgres snapshot store runs on.
type Driver string

const (
	DriverPGX  Driver = "pgx"
	DriverSQL  Driver = "sql"
	DriverSQLX Driver = "sqlx"
)

// ErrUnknownDriver is returned for a driver name other than pgx, sql or sqlx.
var ErrUnknownDriver = errors.New("unknown database driver")

// ParseDriver maps a driver name to a Driver.
func ParseDriver(name string) (Driver, error) {
	switch driver := Driver(name); driver {
	case DriverPGX, DriverSQL, DriverSQLX:
		return driver, nil
	}

	return "", fmt.Errorf("%w: '%s', expected one of %s, %s, %s", ErrUnknownDriver, name, DriverPGX, DriverSQL, DriverSQLX)
}

// CloseFunc releases the database connection behind a store.
type CloseFunc func()

// OpenPostgresStore connects to dsn with the given driver, creates the Postgres snapshot store
// and makes sure its table exists. The caller must call the returned CloseFunc.
func OpenPostgresStore(
	ctx context.Context,
	driver Driver,
	dsn string,
	logger inventory.Logger,
) (postgresstore.Store, CloseFunc, error) {

	var store postgresstore.Store
	var closeFn CloseFunc
	var err error

	switch driver {
	case DriverPGX:
		store, closeFn, err = openWithPGXPool(ctx, dsn, logger)

	case DriverSQL:
		store, closeFn, err = openWithSQLDB(ctx, dsn, logger)

	case DriverSQLX:
		store, closeFn, err = openWithSQLX(ctx, dsn, logger)

	default:
		_, err = ParseDriver(string(driver))
	}

	if err != nil {
		return postgresstore.Store{}, nil, err
	}

	if schemaErr := store.EnsureSchema(ctx); schemaErr != nil {
		closeFn()
		return postgresstore.Store{}, nil, schemaErr
	}

	return store, closeFn, nil
}

func openWithPGXPool(ctx context.Context, dsn string, logger inventory.Logger) (postgresstore.Store, CloseFunc, error) {
	poolConfig, err := PostgresPGXPoolConfig(dsn)
	if err != nil {
		return postgresstore.Store{}, nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return postgresstore.Store{}, nil, err
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return postgresstore.Store{}, nil, err
	}

	store, err := postgresstore.NewStoreFromPGXPool(pool, postgresstore.WithLogger(logger))
	if err != nil {
		pool.Close()
		return postgresstore.Store{}, nil, err
	}

	return store, pool.Close, nil
}

func openWithSQLDB(ctx context.Context, dsn string, logger inventory.Logger) (postgresstore.Store, CloseFunc, error) {
	db, err := NewPostgresSQLDB(ctx, dsn)
	if err != nil {
		return postgresstore.Store{}, nil, err
	}

	closeFn := func() { _ = db.Close() }

	store, err := postgresstore.NewStoreFromSQLDB(db, postgresstore.WithLogger(logger))
	if err != nil {
		closeFn()
		return postgresstore.Store{}, nil, err
	}

	return store, closeFn, nil
}

func openWithSQLX(ctx context.Context, dsn string, logger inventory.Logger) (postgresstore.Store, CloseFunc, error) {
	db, err := NewPostgresSQLX(ctx, dsn)
	if err != nil {
		return postgresstore.Store{}, nil, err
	}

	closeFn := func() { _ = db.Close() }

	store, err := postgresstore.NewStoreFromSQLX(db, postgresstore.WithLogger(logger))
	if err != nil {
		closeFn()
		return postgresstore.Store{}, nil, err
	}

	return store, closeFn, nil
}
