// Package pkg provides shared utilities for the ucconfig trap stack.
//
// This package contains common functionality used across the fifo, codec,
// mem, and trap packages, including:
//
//   - Structured logging via Go's standard [log/slog] package
//   - Sentinel error types for fifo and setup failures
//   - Component identifiers for log filtering
//
// The package is designed to have zero external dependencies, relying
// only on the Go standard library.
//
// # Logging
//
// The logging subsystem wraps [log/slog] with ucconfig-specific context:
//
//	pkg.SetLogLevel(slog.LevelDebug)
//	pkg.LogInfo(pkg.ComponentTrap, "entered active mode")
//
// # Errors
//
// Common errors are defined as sentinel values:
//
//	if errors.Is(err, pkg.ErrFull) {
//	    // Handle full fifo
//	}
package pkg
