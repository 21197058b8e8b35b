package fluentdebug

import (
	"strconv"
	"strings"
)

// Debugger times calls and reports each successful one to its [Sink] as a
// single line. Configure it with the fluent methods before running calls; a
// configured Debugger may then be used by any number of goroutines.
type Debugger struct {
	captureArguments bool
	rethrow          RethrowFunc
	sink             Sink
	timer            Timer
}

// New returns a Debugger that logs to sink. A nil sink discards everything.
func New(sink Sink) *Debugger {
	if sink == nil {
		sink = NullSink{}
	}
	return &Debugger{
		sink:  sink,
		timer: MonotonicTimer{},
	}
}

// LogParameters makes the Debugger include the arguments of named calls in its
// log lines. It evaluates the arguments of failed calls too, so that they are
// available to the rethrow function.
func (d *Debugger) LogParameters() *Debugger {
	d.captureArguments = true
	return d
}

// Rethrow sets the function used to replace the error of a failed call.
func (d *Debugger) Rethrow(fn RethrowFunc) *Debugger {
	d.rethrow = fn
	return d
}

// WithTimer replaces the monotonic timer. A nil timer restores it.
func (d *Debugger) WithTimer(t Timer) *Debugger {
	if t == nil {
		t = MonotonicTimer{}
	}
	d.timer = t
	return d
}

// message builds the log line for a successful call. It fails only if the
// arguments have to be evaluated and one of them fails.
func (d *Debugger) message(ci *CallInfo, elapsed int64) (string, error) {
	ms := strconv.FormatInt(max(elapsed, 0), 10)
	if !ci.IsNamedCall() {
		return "Execution time: " + ms + "ms", nil
	}
	var sb strings.Builder
	sb.WriteString("[" + ci.FunctionName() + "()] ")
	if d.captureArguments && ci.NumParams() > 0 {
		params, err := ci.FormatArguments()
		if err != nil {
			return "", err
		}
		sb.WriteString("Parameters: `" + params + "` | ")
	}
	sb.WriteString("Execution time: " + ms + "ms")
	return sb.String(), nil
}

// failure decides which error a failed call returns.
func (d *Debugger) failure(ci *CallInfo, elapsed int64, err error) error {
	if d.rethrow == nil {
		return err
	}
	ec := ExceptionContext{
		Err:                 err,
		FunctionName:        ci.FunctionName(),
		ElapsedMilliseconds: max(elapsed, 0),
	}
	if d.captureArguments {
		args, argErr := ci.Arguments()
		if argErr != nil {
			return argErr
		}
		ec.Arguments = args
	}
	if rethrown := d.rethrow(ec); rethrown != nil {
		return rethrown
	}
	return err
}
