package fluentdebug

import (
	"golang.org/x/sync/errgroup"
)

// Run runs call, timing it from start to finish. If the call succeeds, one
// line is sent to the Debugger's sink and the call's result is returned
// unchanged. If it fails, nothing is logged, and the call's error is returned,
// or replaced by the Debugger's rethrow function if it has one.
//
// When parameters are logged, an argument that fails to evaluate fails the
// run with that argument's error, and the zero value of T.
func Run[T any](d *Debugger, call Call[T]) (T, error) {
	watch := d.timer.Start()
	ci := call.Describe()
	result, err := call.invoke()
	elapsed := watch.ElapsedMilliseconds()
	return complete(d, ci, elapsed, result, err)
}

// Do runs an error-only call built with [Action].
func Do(d *Debugger, call Call[struct{}]) error {
	_, err := Run(d, call)
	return err
}

// RunAsync starts call on its own goroutine and returns immediately. The
// returned Future yields the same outcome [Run] would have, with the time
// measured from RunAsync to the call's completion. Cancellation, if any, is
// up to the call itself.
func RunAsync[T any](d *Debugger, call Call[T]) *Future[T] {
	watch := d.timer.Start()
	ci := call.Describe()
	f := &Future[T]{done: make(chan struct{})}
	f.g.Go(func() error {
		defer close(f.done)
		result, err := call.invoke()
		elapsed := watch.ElapsedMilliseconds()
		f.result, err = complete(d, ci, elapsed, result, err)
		return err
	})
	return f
}

// Future is the pending outcome of [RunAsync].
type Future[T any] struct {
	g      errgroup.Group
	done   chan struct{}
	result T
}

// Await blocks until the call has completed and has been logged, and returns
// its result. It may be called any number of times, from any goroutine.
func (f *Future[T]) Await() (T, error) {
	err := f.g.Wait()
	return f.result, err
}

// Done is closed once the call has completed and has been logged.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func complete[T any](d *Debugger, ci *CallInfo, elapsed int64, result T, err error) (T, error) {
	if err != nil {
		return result, d.failure(ci, elapsed, err)
	}
	msg, err := d.message(ci, elapsed)
	if err != nil {
		var zero T
		return zero, err
	}
	d.sink.Log(msg)
	return result, nil
}
