package fdtest

import "andy.dev/fluentdebug"

// FixedTimer is a [fluentdebug.Timer] whose stopwatches always report the same
// elapsed time, for tests that match whole log lines.
type FixedTimer int64

// Start implements [fluentdebug.Timer].
func (t FixedTimer) Start() fluentdebug.Stopwatch {
	return fixedWatch(t)
}

type fixedWatch int64

func (w fixedWatch) ElapsedMilliseconds() int64 {
	return int64(w)
}
