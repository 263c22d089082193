// Package helper provides test doubles and fixtures for the inventory packages.
//
// It contains:
//   - LogHandlerSpy: a slog.Handler capturing log records
//   - MetricsCollectorSpy: a MetricsCollector capturing metric calls
//   - EventRecorderSpy: an EventRecorder capturing domain events
//   - FixedClock and fixtures for books and snapshot files
//
// This package is only meant to be imported from tests.
package helper
