package search

import "sync/atomic"

// Task runs one computation on its own goroutine and holds its result in a
// write-once slot. Callers on a frame loop Poll it each tick. There is no
// cancellation: an abandoned task finishes and its result is dropped.
type Task[T any] struct {
	done    chan struct{}
	result  T
	running atomic.Bool
}

// Start launches fn in the background.
func Start[T any](fn func() T) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	t.running.Store(true)
	go func() {
		defer close(t.done)
		t.result = fn()
		t.running.Store(false)
	}()
	return t
}

// Poll returns the result without blocking. ok is false until fn returns.
func (t *Task[T]) Poll() (result T, ok bool) {
	select {
	case <-t.done:
		return t.result, true
	default:
		return result, false
	}
}

// Wait blocks until fn returns.
func (t *Task[T]) Wait() T {
	<-t.done
	return t.result
}

// Done is closed once the result is available.
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Running reports whether fn is still executing.
func (t *Task[T]) Running() bool {
	return t.running.Load()
}
