// Package logging constructs the application's slog loggers and defines the
// standardized structured field keys shared across components.
package logging
