package inventory

import (
	"fmt"
)

// Option configures an Inventory.
type Option func(*Inventory) error

// WithLogger sets the logger for the Inventory, which defaults to slog.Default().
//
// Info level: confirmations of checkouts, returns, additions, saves and loads
// Warn level: domain events that could not be recorded
// Error level: failed saves and loads, reported before the error is returned.
func WithLogger(logger Logger) Option {
	return func(inv *Inventory) error {
		if logger == nil {
			return fmt.Errorf("%w: logger must not be nil", ErrInvalidArgument)
		}

		inv.logger = logger

		return nil
	}
}

// WithMetrics sets the metrics collector for the Inventory.
// The collector receives operation counts and snapshot durations.
func WithMetrics(collector MetricsCollector) Option {
	return func(inv *Inventory) error {
		if collector == nil {
			return fmt.Errorf("%w: metrics collector must not be nil", ErrInvalidArgument)
		}

		inv.metricsCollector = collector

		return nil
	}
}

// WithClock sets the Clock which decides the current year for load validation and the event timestamps.
func WithClock(clock Clock) Option {
	return func(inv *Inventory) error {
		if clock == nil {
			return fmt.Errorf("%w: clock must not be nil", ErrInvalidArgument)
		}

		inv.clock = clock

		return nil
	}
}

// WithEventRecorder sets a recorder that receives a domain event after each successful mutation.
func WithEventRecorder(recorder EventRecorder) Option {
	return func(inv *Inventory) error {
		if recorder == nil {
			return fmt.Errorf("%w: event recorder must not be nil", ErrInvalidArgument)
		}

		inv.eventRecorder = recorder

		return nil
	}
}
