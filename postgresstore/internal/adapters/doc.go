// Package adapters lets the Postgres snapshot store run on pgxpool.Pool, sql.DB or sqlx.DB.
//
// Each adapter wraps one database library behind the DBAdapter interface. Queries are passed as fully
// interpolated SQL strings without arguments, so a multi-statement script is executed as one implicit transaction.
package adapters
