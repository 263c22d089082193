package inventory

import (
	"errors"
	"time"

	"github.com/AntonStoeckl/book-inventory-go/core"
)

const (
	// OperationsMetric counts inventory operations by operation and status.
	OperationsMetric = "inventory_operations_total"

	// SnapshotDurationMetric tracks how long saving or loading a snapshot took.
	SnapshotDurationMetric = "inventory_snapshot_duration_seconds"

	// StatusSuccess indicates the operation completed.
	StatusSuccess = "success"

	// StatusError indicates the operation failed, the label error_kind tells why.
	StatusError = "error"

	// LabelOperation identifies the operation in metrics.
	LabelOperation = "operation"

	// LabelStatus indicates the operation outcome in metrics.
	LabelStatus = "status"

	// LabelErrorKind classifies the error of a failed operation in metrics.
	LabelErrorKind = "error_kind"

	OperationAdd      = "add"
	OperationCheckout = "checkout"
	OperationReturn   = "return"
	OperationSave     = "save"
	OperationLoad     = "load"
)

// Logger is the logging interface used by the Inventory, satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// MetricsCollector collects operational metrics of an Inventory.
// It is dependency-free so that any metrics backend can be plugged in.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
}

// EventRecorder receives a domain event after each successful mutation of the Inventory.
// A failing recorder never undoes the mutation, the failure is logged as a warning.
type EventRecorder interface {
	Record(event core.DomainEvent) error
}

func buildOperationLabels(operation string, err error) map[string]string {
	if err == nil {
		return map[string]string{
			LabelOperation: operation,
			LabelStatus:    StatusSuccess,
		}
	}

	return map[string]string{
		LabelOperation: operation,
		LabelStatus:    StatusError,
		LabelErrorKind: errorKind(err),
	}
}

// errorKind maps an error to a short, low-cardinality label value.
func errorKind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCopiesAvailable):
		return "no_copies_available"
	case errors.Is(err, ErrAllCopiesAlreadyCheckedIn):
		return "all_copies_already_checked_in"
	case errors.Is(err, ErrFileNotFound):
		return "file_not_found"
	case errors.Is(err, ErrMalformedData):
		return "malformed_data"
	case errors.Is(err, ErrIOFailure):
		return "io_failure"
	default:
		return "other"
	}
}
