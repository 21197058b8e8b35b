// Package instrumentation provides a Handler for counting logged lines by
// level, code location logging and error annotation. It is intended to wrap
// another slog.Handler, which will handle log formatting.
package instrumentation
