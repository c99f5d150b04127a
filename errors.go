package queue

import "errors"

// Error conditions reported by queue operations.
//
// A nil error means success. Completion callbacks receive exactly one of
// nil, [ErrCanceled] or the close error; compare with [errors.Is].
var (
	// ErrCanceled reports that a parked operation was drained by one of
	// the Cancel methods, by [Queue.Reset], or by [Queue.MoveFrom].
	ErrCanceled = errors.New("queue: operation canceled")

	// ErrClosed reports that the queue was closed.
	// It is the close error used by [Queue.Close].
	ErrClosed = errors.New("queue: queue closed")

	// ErrEmpty reports that no element was available.
	// Only [Queue.TryPopOr] ever produces it; asynchronous completions
	// never carry it.
	ErrEmpty = errors.New("queue: queue empty")
)
