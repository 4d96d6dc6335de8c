// Package logging builds the structured log/slog logger used by the inspector.
// Logs are JSON by default and always go to the writer they are given, so the
// report on stdout stays clean.
package logging
