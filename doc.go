/*
fluentdebug times function calls and logs one line per successful call. It is
meant for quick instrumentation while debugging: wrap a call, get its
execution time, and optionally its arguments, in the log.

A [Debugger] is configured fluently and then runs deferred calls:

	d := fluentdebug.New(logger.Sink(slog.LevelInfo)).
		LogParameters().
		Rethrow(func(ec fluentdebug.ExceptionContext) error {
			return ec.Wrap("An error occurred")
		})

	ok, err := fluentdebug.Run(d, fluentdebug.Call2(delay,
		"milliseconds", 100,
		"list", []int{1, 2, 3},
	))

which logs a line like:

	[delay()] Parameters: `milliseconds: 100, list: [1, 2, 3]` | Execution time: 101ms

Calls are described explicitly: [Call1], [Call2] and [Call3] bind a function
value and its arguments and take the call's name from the function itself,
[Named] takes a name and parameters by hand, and [Func] wraps any closure as
an unnamed call, logged as just `Execution time: 3ms`. Parameters created with
[ArgFunc] are evaluated lazily, at most once per run, and only if the line or
the rethrow function needs them.

[RunAsync] runs the call on its own goroutine and returns a [Future].

Failed calls are never logged. Their error is returned unchanged, unless a
rethrow function replaces it.
*/
package fluentdebug
