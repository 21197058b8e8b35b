// Package errors provides an error type that records where it was created,
// the error it replaces (if any), and extra fields for log output. It is
// meant to be used as the replacement error in rethrow transforms, but works
// anywhere a plain error does.
package errors

import (
	stderr "errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
)

// Error is an error type with embedded stack trace, an optional cause and
// optional logging fields.
type Error struct {
	stack  Stack
	msg    string
	cause  error
	fields map[string]any
}

// New returns a new error value with embedded location and stack trace.
func New(text string) *Error {
	return &Error{
		stack: getStack(0),
		msg:   text,
	}
}

// Errorf returns a new formatted error value with embedded location and stack
// trace. An error embedded with the `%w` verb becomes the cause.
func Errorf(format string, v ...any) *Error {
	err := fmt.Errorf(format, v...)
	return &Error{
		stack: getStack(0),
		msg:   err.Error(),
		cause: stderr.Unwrap(err),
	}
}

// Wrap returns a new error with the given message, recording cause as the
// error it replaces. Unlike Errorf with `%w`, the cause's text is not folded
// into the message.
func Wrap(cause error, text string) *Error {
	return &Error{
		stack: getStack(0),
		msg:   text,
		cause: cause,
	}
}

// WrapSkip is like [Wrap], but records the location skip frames above its
// caller. It is meant for helpers that build errors on behalf of their caller.
func WrapSkip(skip int, cause error, text string) *Error {
	return &Error{
		stack: getStack(skip),
		msg:   text,
		cause: cause,
	}
}

// Error conforms to the stdlib error interface.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap returns the cause, so that [errors.Is] and [errors.As] see through to
// the replaced error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause is the error this one replaced, or nil.
func (e *Error) Cause() error {
	return e.cause
}

// With adds a field and a value to this error that will be logged alongside it
// by the fluentdebug log handlers. This is a fluent interface and can be
// called in a chain to add multiple values.
func (e *Error) With(field string, value any) *Error {
	if e.fields == nil {
		e.fields = map[string]any{}
	}
	e.fields[field] = value
	return e
}

// Field returns the value of a field added with [Error.With].
func (e *Error) Field(field string) (any, bool) {
	v, ok := e.fields[field]
	return v, ok
}

// Location returns the source location where the error was created.
func (e *Error) Location() *Location {
	if len(e.stack) == 0 {
		return &Location{}
	}
	return e.stack[0]
}

// Stack returns the callstack for the given error.
func (e *Error) Stack() Stack {
	return e.stack
}

// Fields returns key-value pairs for every field added using [Error.With],
// with each key prefixed with `err_` to set them apart from other logged
// attributes. Keys are sorted.
func (e *Error) Fields() []any {
	if len(e.fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	fieldList := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		fieldList = append(fieldList, "err_"+k, e.fields[k])
	}
	return fieldList
}

// Stack is the call stack from the location of the error up to main.main()
type Stack []*Location

// String renders the call stack in the format of:
//
//	<function>(<file>:<line>) ► [...]
func (s Stack) String() string {
	var sb strings.Builder
	for i := len(s) - 1; i >= 0; i-- {
		sb.WriteString(s[i].Function + `(` + s[i].File + `:` + strconv.Itoa(s[i].Line) + `)`)
		if i > 0 {
			sb.WriteString(` ► `)
		}
	}
	return sb.String()
}

// Location represents a single frame in the call stack.
type Location struct {
	File     string
	Function string
	Line     int
}

// String prints a Location in the form of `<file>:<line>`
func (l *Location) String() string {
	return l.File + `:` + strconv.Itoa(l.Line)
}

// Format implements [fmt.Formatter]:
//
//   - %s, %v gives `<file>:<line>`
//   - %q     gives `"<file>:<line>"`
//   - %+v    gives `<file>:<line>(<function>)`
func (l *Location) Format(state fmt.State, verb rune) {
	switch verb {
	case 's':
		state.Write([]byte(l.String()))
	case 'q':
		state.Write([]byte(strconv.Quote(l.String())))
	case 'v':
		if state.Flag('+') {
			state.Write([]byte(l.String() + `(` + l.Function + `)`))
			return
		}
		state.Write([]byte(l.String()))
	default:
		state.Write([]byte(`%!` + string(verb) + `(errors.Location=` + l.String() + `)`))
	}
}

func getStack(skip int) Stack {
	stackptrs := make([]uintptr, 50)
	stackptrs = stackptrs[:runtime.Callers(3+skip, stackptrs)]
	stack := make(Stack, 0, len(stackptrs))
	frames := runtime.CallersFrames(stackptrs)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			stack = append(stack, &Location{
				File:     filepath.Base(frame.File),
				Function: frame.Function,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return slices.Clip(stack)
}
