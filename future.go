package queue

import (
	"sync"
	"sync/atomic"
)

// A PushFuture resolves to the result of an asynchronous push.
type PushFuture struct {
	ch   chan error
	set  atomic.Bool
	once sync.Once
	err  error
}

// PushFuture asynchronously inserts v and returns a future resolving to
// the push result.
func (q *Queue[E]) PushFuture(v E) *PushFuture {
	f := &PushFuture{ch: make(chan error, 1)}
	q.AsyncPush(v, func(err error) {
		f.ch <- err
		f.set.Store(true)
	})
	return f
}

// Wait blocks until the push completes and returns its result.
// The executor must be running on some other goroutine. Wait may be
// called any number of times.
func (f *PushFuture) Wait() error {
	f.once.Do(func() { f.err = <-f.ch })
	return f.err
}

// Done reports whether the push has completed. It never blocks; once
// Done returns true, Wait returns without blocking.
func (f *PushFuture) Done() bool {
	return f.set.Load()
}

type popResult[E any] struct {
	val E
	err error
}

// A PopFuture resolves to the result of an asynchronous pop.
type PopFuture[E any] struct {
	ch   chan popResult[E]
	set  atomic.Bool
	once sync.Once
	res  popResult[E]
}

// PopFuture asynchronously extracts an element and returns a future
// resolving to the pop result, with a zero-value fallback.
func (q *Queue[E]) PopFuture() *PopFuture[E] {
	f := &PopFuture[E]{ch: make(chan popResult[E], 1)}
	q.AsyncPop(func(err error, v E) {
		f.ch <- popResult[E]{val: v, err: err}
		f.set.Store(true)
	})
	return f
}

// Wait blocks until the pop completes and returns its result.
// The executor must be running on some other goroutine. Wait may be
// called any number of times.
func (f *PopFuture[E]) Wait() (E, error) {
	f.once.Do(func() { f.res = <-f.ch })
	return f.res.val, f.res.err
}

// Done reports whether the pop has completed. It never blocks; once
// Done returns true, Wait returns without blocking.
func (f *PopFuture[E]) Done() bool {
	return f.set.Load()
}

// Push inserts v, blocking the calling goroutine until the insertion
// completes. It is the goroutine-flavored completion token: call it
// from a producer goroutine while the executor runs elsewhere.
func (q *Queue[E]) Push(v E) error {
	return q.PushFuture(v).Wait()
}

// Pop extracts an element, blocking the calling goroutine until the
// extraction completes. On cancel or close it returns the error and a
// zero value.
func (q *Queue[E]) Pop() (E, error) {
	return q.PopFuture().Wait()
}
