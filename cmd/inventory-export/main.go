// Command inventory-export reads the Postgres snapshot table and saves it as a flat inventory file.
//
// Usage:
//
//	inventory-export -file inventory.txt [-driver pgx|sql|sqlx] [-journal events.jsonl]
//
// The DSN is taken from INVENTORY_POSTGRES_DSN, logging is configured by INVENTORY_LOG_LEVEL and INVENTORY_LOG_FORMAT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/book-inventory-go/config"
	"github.com/AntonStoeckl/book-inventory-go/inventory"
	"github.com/AntonStoeckl/book-inventory-go/shell"
)

type options struct {
	file    string
	driver  string
	journal string
}

func main() {
	opts := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "inventory-export: %v\n", err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func parseFlags() options {
	opts := options{}

	flag.StringVar(&opts.file, "file", "", "path of the flat inventory file to write (required)")
	flag.StringVar(&opts.driver, "driver", string(config.DriverPGX), "database driver: pgx, sql or sqlx")
	flag.StringVar(&opts.journal, "journal", "", "optional path of a JSON lines file the domain events are appended to")
	flag.Parse()

	return opts
}

func run(ctx context.Context, opts options) error {
	if opts.file == "" {
		return errors.New("-file is required")
	}

	driver, err := config.ParseDriver(opts.driver)
	if err != nil {
		return err
	}

	logger, err := config.LoggerFromEnv()
	if err != nil {
		return err
	}

	inventoryOptions := []inventory.Option{inventory.WithLogger(logger)}

	if opts.journal != "" {
		journal, journalErr := shell.OpenFileJournal(opts.journal, shell.WithJournalLogger(logger))
		if journalErr != nil {
			return journalErr
		}
		defer func() { _ = journal.Close() }()

		inventoryOptions = append(inventoryOptions, inventory.WithEventRecorder(journal))
	}

	inv, err := inventory.New(inventoryOptions...)
	if err != nil {
		return err
	}

	store, closeStore, err := config.OpenPostgresStore(ctx, driver, config.PostgresDSN(), logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = inv.LoadFrom(ctx, store); err != nil {
		return err
	}

	return inv.Save(opts.file)
}
