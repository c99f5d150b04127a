// Package queue provides a bounded, thread-safe, asynchronous FIFO
// queue that mediates handoff of values between producers and consumers
// on a cooperatively scheduled runtime.
//
// A [Queue] never blocks the calling goroutine. A push that finds the
// queue full, or a pop that finds it empty, is parked inside the queue
// and completes later: when its counterpart arrives, or when it is
// drained by cancellation or closure. Completion is always reported
// asynchronously, through the [Executor] the queue was created with.
//
// # Completion Dispatch
//
// A completion callback is never invoked on the initiator's stack.
// Initiators only ever schedule callbacks with [Executor.Post]. Post is
// called with the queue's internal lock held, but a callback runs only
// later, after the lock is released, so a callback is free to call
// back into the queue — to push the next value, to move the queue, to
// cancel the rest. Post is also the happens-before edge between an
// initiator and its completion; the queue needs no further
// synchronization between the two.
//
// # Bounding and Rendezvous
//
// The limit is fixed at construction and may be 0, which turns the
// queue into a pure rendezvous channel: an isolated push parks, an
// isolated pop parks, and when the two meet, both complete while the
// observable size stays 0.
//
// Parked operations of one kind only ever coexist with parked
// operations of the same kind, and complete in strict FIFO order.
// A fresh operation that finds parked counterparts completes one of
// them instead of parking.
//
// # Cancellation and Closure
//
// The Cancel methods drain parked operations with [ErrCanceled];
// every parked operation receives exactly one completion. [Queue.Close]
// makes the queue reject later pushes while letting pops drain the
// buffered elements; a closed and empty queue fails pops with the close
// error and a fallback value built by a [ValueFactory]. [Queue.Reset]
// returns the queue to its freshly constructed state.
//
// The queue has no timeouts of its own. To bound a wait, compose a
// timer that calls [Queue.CancelOnePush] or [Queue.CancelOnePop] when
// it fires.
//
// # Completion Tokens
//
// The completion surface comes in three flavors with identical
// semantics: plain callbacks ([Queue.AsyncPush], [Queue.AsyncPop]),
// futures ([Queue.PushFuture], [Queue.PopFuture]) and blocking
// goroutine wrappers ([Queue.Push], [Queue.Pop]).
//
// # The Host Runtime
//
// Any implementation of [Executor] may dispatch completions. The
// package provides [Loop], a small run-until-idle event loop whose
// runners may be spread over any number of goroutines. Executors that
// implement [Worker] are kept alive by parked operations: each parked
// operation holds a [WorkGuard] for as long as it waits.
package queue
