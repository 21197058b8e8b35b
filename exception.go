package fluentdebug

import (
	"log/slog"

	"andy.dev/fluentdebug/errors"
)

// RethrowFunc maps a failed call to the error returned in its place. Returning
// nil keeps the original error.
type RethrowFunc func(ExceptionContext) error

// ExceptionContext describes a failed call to a [RethrowFunc].
type ExceptionContext struct {
	// Err is the error returned by the call.
	Err error
	// FunctionName is empty for unnamed calls.
	FunctionName string
	// Arguments is only populated when the Debugger logs parameters.
	Arguments []Argument
	// ElapsedMilliseconds is the time from the start of the run to the
	// failure.
	ElapsedMilliseconds int64
}

// Wrap returns a new error with the given message and Err as its cause. The
// function name and elapsed time are attached as fields, so they show up when
// the error is logged through a fluentdebug logger.
//
// Example:
//
//	d.Rethrow(func(ec fluentdebug.ExceptionContext) error {
//	    return ec.Wrap("An error occurred")
//	})
func (ec ExceptionContext) Wrap(message string) *errors.Error {
	err := errors.WrapSkip(1, ec.Err, message).With("elapsed_ms", ec.ElapsedMilliseconds)
	if ec.FunctionName != "" {
		err.With("function", ec.FunctionName)
	}
	return err
}

// FormatArguments renders Arguments as `name: value, name: value`.
func (ec ExceptionContext) FormatArguments() string {
	return formatArguments(ec.Arguments)
}

// LogValue implements [slog.LogValuer].
func (ec ExceptionContext) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, 4)
	if ec.FunctionName != "" {
		attrs = append(attrs, slog.String("function", ec.FunctionName))
	}
	if len(ec.Arguments) > 0 {
		attrs = append(attrs, slog.String("parameters", ec.FormatArguments()))
	}
	attrs = append(attrs, slog.Int64("elapsed_ms", ec.ElapsedMilliseconds))
	if ec.Err != nil {
		attrs = append(attrs, slog.String("error", ec.Err.Error()))
	}
	return slog.GroupValue(attrs...)
}
