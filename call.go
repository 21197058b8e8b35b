package fluentdebug

import (
	"strings"
	"sync"

	"andy.dev/fluentdebug/errors"
)

var errNilCall = errors.New("fluentdebug: call has no function")

// Param is one parameter of a deferred call: its name, and a way to get its
// value when the debugger needs it.
type Param struct {
	name string
	eval func() (any, error)
}

// Arg returns a parameter with an already-known value.
func Arg(name string, value any) Param {
	return Param{
		name: name,
		eval: func() (any, error) { return value, nil },
	}
}

// ArgFunc returns a parameter whose value is produced by eval the first time
// the arguments of a call are read. An error from eval is returned from
// [Run] as-is.
func ArgFunc(name string, eval func() (any, error)) Param {
	return Param{name: name, eval: eval}
}

// Name is the parameter name.
func (p Param) Name() string {
	return p.name
}

// Argument is a parameter paired with its evaluated value.
type Argument struct {
	Name  string
	Value any
}

// String renders the argument as `name: value`, using [FormatValue].
func (a Argument) String() string {
	return a.Name + ": " + FormatValue(a.Value)
}

// Call is a deferred call: a function to run, plus, for named calls, the name
// of the function and its parameters. Build one with [Func], [Named] or one of
// the CallN helpers. A Call may be run any number of times.
type Call[T any] struct {
	name   string
	params []Param
	fn     func() (T, error)
}

// Func returns an unnamed call. Its log line carries only the execution time.
func Func[T any](fn func() (T, error)) Call[T] {
	return Call[T]{fn: fn}
}

// Named returns a call to the function called name with the given parameters,
// in declaration order. An empty name produces an unnamed call, and the
// parameters are ignored.
func Named[T any](name string, fn func() (T, error), params ...Param) Call[T] {
	return Call[T]{
		name:   name,
		params: params,
		fn:     fn,
	}
}

// Action is [Named] for functions that only return an error. Run it with [Do].
func Action(name string, fn func() error, params ...Param) Call[struct{}] {
	if fn == nil {
		return Named[struct{}](name, nil, params...)
	}
	return Named(name, func() (struct{}, error) {
		return struct{}{}, fn()
	}, params...)
}

// Call0 binds a function without parameters. The call is named after fn
// (see [NameOf]).
func Call0[T any](fn func() (T, error)) Call[T] {
	return Named(NameOf(fn), fn)
}

// Call1 binds fn to a single argument. The call is named after fn, and name is
// the parameter name used when arguments are logged.
//
// Example:
//
//	ok, err := fluentdebug.Run(d, fluentdebug.Call1(delay, "milliseconds", 100))
func Call1[A, T any](fn func(A) (T, error), name string, a A) Call[T] {
	return Named(NameOf(fn), func() (T, error) {
		return fn(a)
	}, Arg(name, a))
}

// Call2 is [Call1] for functions of two parameters.
func Call2[A, B, T any](fn func(A, B) (T, error), nameA string, a A, nameB string, b B) Call[T] {
	return Named(NameOf(fn), func() (T, error) {
		return fn(a, b)
	}, Arg(nameA, a), Arg(nameB, b))
}

// Call3 is [Call1] for functions of three parameters.
func Call3[A, B, C, T any](fn func(A, B, C) (T, error), nameA string, a A, nameB string, b B, nameC string, c C) Call[T] {
	return Named(NameOf(fn), func() (T, error) {
		return fn(a, b, c)
	}, Arg(nameA, a), Arg(nameB, b), Arg(nameC, c))
}

// Describe returns a fresh descriptor for the call. Arguments are not
// evaluated until they are first read.
func (c Call[T]) Describe() *CallInfo {
	ci := &CallInfo{
		name:   c.name,
		params: c.params,
	}
	ci.arguments = sync.OnceValues(ci.evaluate)
	return ci
}

func (c Call[T]) invoke() (T, error) {
	if c.fn == nil {
		var zero T
		return zero, errNilCall
	}
	return c.fn()
}

// CallInfo describes one invocation of a deferred call.
type CallInfo struct {
	name      string
	params    []Param
	arguments func() ([]Argument, error)
}

// IsNamedCall reports whether the call is to a named function.
func (ci *CallInfo) IsNamedCall() bool {
	return ci.name != ""
}

// FunctionName is the name of the called function, or the empty string for an
// unnamed call.
func (ci *CallInfo) FunctionName() string {
	return ci.name
}

// NumParams is the number of declared parameters. It is always zero for an
// unnamed call.
func (ci *CallInfo) NumParams() int {
	if !ci.IsNamedCall() {
		return 0
	}
	return len(ci.params)
}

// Arguments evaluates the parameters in declaration order, stopping at the
// first error. Evaluation happens once; later calls return the same result.
func (ci *CallInfo) Arguments() ([]Argument, error) {
	return ci.arguments()
}

// FormatArguments renders the arguments as `name: value, name: value`.
func (ci *CallInfo) FormatArguments() (string, error) {
	args, err := ci.Arguments()
	if err != nil {
		return "", err
	}
	return formatArguments(args), nil
}

func (ci *CallInfo) evaluate() ([]Argument, error) {
	if !ci.IsNamedCall() {
		return nil, nil
	}
	args := make([]Argument, 0, len(ci.params))
	for _, p := range ci.params {
		var value any
		if p.eval != nil {
			v, err := p.eval()
			if err != nil {
				return nil, err
			}
			value = v
		}
		args = append(args, Argument{Name: p.name, Value: value})
	}
	return args, nil
}

func formatArguments(args []Argument) string {
	var sb strings.Builder
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}
