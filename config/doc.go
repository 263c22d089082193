// Package config provides the runtime configuration of the inventory tools.
//
// It contains the PostgreSQL DSN and factory functions for connections with the different
// drivers (pgx.Pool, sql.DB, sqlx.DB), a factory for the Postgres snapshot store by driver name,
// and the construction of the slog logger from environment variables.
package config
