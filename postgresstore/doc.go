// Package postgresstore provides a PostgreSQL implementation of inventory.SnapshotStore.
//
// The store keeps one row per book in a single table, the position column preserves the
// inventory's insertion order. WriteRecords replaces the table content with one DELETE plus INSERT
// script, which Postgres runs as one implicit transaction. ReadRecords returns the rows ordered by position.
//
// Like the flat file, the table holds no available copy counts, and load validation is left to
// inventory.Inventory.LoadFrom.
//
// Usage:
//
//	pool, _ := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
//	store, _ := postgresstore.NewStoreFromPGXPool(pool, postgresstore.WithLogger(logger))
//	_ = store.EnsureSchema(ctx)
//	err := inv.SaveTo(ctx, store)
package postgresstore
