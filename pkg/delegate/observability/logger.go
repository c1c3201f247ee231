// Package observability provides logging, metrics and tracing for delegates.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Observed wires them around any delegate.Notifier.
package observability

import (
	"fmt"
	"log/slog"
	"reflect"
	"time"
)

// EnrichLogger adds the delegate name to a logger.
func EnrichLogger(logger *slog.Logger, name string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("delegate", name))
}

// LogRegister logs a registration.
func LogRegister(logger *slog.Logger, handle any, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("delegate registered",
		slog.String("handle", formatHandle(handle)),
		slog.Int("entries", entries),
	)
}

// LogRemove logs a removal by handle.
func LogRemove(logger *slog.Logger, handle any, removed, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("delegates removed",
		slog.String("handle", formatHandle(handle)),
		slog.Int("removed", removed),
		slog.Int("entries", entries),
	)
}

// LogNotifyStart logs the start of a notification.
func LogNotifyStart(logger *slog.Logger, entries int) {
	if logger == nil {
		return
	}
	logger.Debug("notify starting",
		slog.Int("entries", entries),
	)
}

// LogNotifyComplete logs a finished notification.
func LogNotifyComplete(logger *slog.Logger, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("notify completed",
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogNotifyPanic logs a notification cut short by a panicking callback.
func LogNotifyPanic(logger *slog.Logger, entries int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("notify panicked",
		slog.Int("entries", entries),
		slog.Float64("duration_ms", durationMs),
	)
}

// formatHandle renders a handle for logs without calling into it.
// Reference kinds print as addresses; only value handles such as
// delegate.Token use String.
func formatHandle(handle any) string {
	if handle == nil {
		return "<nil>"
	}
	switch reflect.ValueOf(handle).Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice:
		return fmt.Sprintf("%p", handle)
	}
	switch h := handle.(type) {
	case string:
		return h
	case fmt.Stringer:
		return h.String()
	}
	return fmt.Sprintf("%v", handle)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
