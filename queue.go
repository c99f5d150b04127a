package queue

import "sync"

// A Queue is a bounded, thread-safe, asynchronous FIFO queue of
// elements of type E.
//
// Operations never block the calling goroutine. A push that finds the
// queue full, or a pop that finds it empty, is parked inside the queue
// and completes later, when its counterpart arrives or when it is
// canceled. Every completion is dispatched through the queue's
// [Executor]; none ever runs on the initiator's stack.
//
// All methods are safe for concurrent use. Queues are created with
// [New] and must not be copied.
type Queue[E any] struct {
	mu       sync.Mutex
	ex       Executor
	limit    int
	buf      ring[E]
	pending  opList[E]
	pool     *NodePool[E]
	closeErr error // nil while open
}

// moveMu serializes movers so that MoveFrom can hold both queue locks
// without a lock-order deadlock.
var moveMu sync.Mutex

// New creates a queue of elements of type E, dispatching completions
// through ex and bounded by limit.
//
// A limit of 0 makes the queue a pure rendezvous channel: every push
// parks until a pop arrives and vice versa, and no element is ever
// buffered at rest.
//
// New panics if ex is nil or limit is negative.
func New[E any](ex Executor, limit int, opts ...Option[E]) *Queue[E] {
	if ex == nil {
		panic("queue: nil Executor")
	}
	if limit < 0 {
		panic("queue: negative limit")
	}
	var o options[E]
	for _, opt := range opts {
		opt(&o)
	}
	if o.pool == nil {
		o.pool = new(NodePool[E])
	}
	return &Queue[E]{ex: ex, limit: limit, pool: o.pool}
}

// AsyncPush asynchronously inserts v and reports the result to
// complete, dispatched through the queue's executor.
//
// complete receives nil once v is stored or handed to a parked pop.
// If the queue is full, the operation parks until a pop makes room or
// the operation is drained, in which case complete receives
// [ErrCanceled] or the close error. If the queue is already closed,
// complete receives the close error immediately.
//
// When AsyncPush returns, complete has not run yet; it runs wherever
// the executor dispatches it, and may call back into the queue freely.
func (q *Queue[E]) AsyncPush(v E, complete func(err error)) {
	if complete == nil {
		panic("queue: nil completion")
	}
	q.lock()
	defer q.unlock()

	if q.closeErr != nil {
		q.completePush(complete, q.closeErr)
		return
	}
	if q.buf.len() < q.limit || q.waiting(opPop) {
		q.buf.push(v)
		q.completePush(complete, nil)
		if q.waiting(opPop) {
			// Hand the element just stored to the oldest parked pop.
			// At limit 0 the buffer held it for an instant only.
			q.fireFront(nil)
		}
		return
	}
	n := q.pool.get()
	n.val = v
	n.pushFn = complete
	n.work = MakeWork(q.ex)
	q.pending.pushBack(opPush, n)
}

// AsyncPop asynchronously extracts the front element and reports the
// result to complete, dispatched through the queue's executor.
// It is AsyncPopOr with a zero-value fallback.
func (q *Queue[E]) AsyncPop(complete func(err error, v E)) {
	q.AsyncPopOr(nil, complete)
}

// AsyncPopOr asynchronously extracts the front element and reports the
// result to complete, dispatched through the queue's executor.
//
// complete receives (nil, element) once an element is available: from
// the buffer, or deposited by the oldest parked push. If the queue is
// empty and open, the operation parks until a push arrives or the
// operation is drained, in which case complete receives [ErrCanceled]
// or the close error, paired with fallback(err). If the queue is empty
// and closed, complete receives the close error and fallback(err)
// immediately.
//
// A nil fallback produces zero values. The factory runs inside the
// posted completion, not under the queue's lock.
func (q *Queue[E]) AsyncPopOr(fallback ValueFactory[E], complete func(err error, v E)) {
	if complete == nil {
		panic("queue: nil completion")
	}
	if fallback == nil {
		fallback = ZeroOf[E]()
	}
	q.lock()
	defer q.unlock()

	if q.waiting(opPush) {
		// The oldest parked push deposits its element; the buffer
		// holds limit+1 elements until the extraction just below.
		q.fireFront(nil)
	}
	if q.buf.len() > 0 {
		q.completePop(complete, q.buf.pop())
		return
	}
	if q.closeErr != nil {
		q.completePopErr(complete, fallback, q.closeErr)
		return
	}
	n := q.pool.get()
	n.fallback = fallback
	n.popFn = complete
	n.work = MakeWork(q.ex)
	q.pending.pushBack(opPop, n)
}

// TryPush inserts v if that requires no waiting and reports whether it
// did. It returns false when the queue is closed or full with no parked
// pop to take v. TryPush never parks anything.
func (q *Queue[E]) TryPush(v E) bool {
	q.lock()
	defer q.unlock()

	if q.closeErr != nil {
		return false
	}
	if q.buf.len() < q.limit || q.waiting(opPop) {
		q.buf.push(v)
		if q.waiting(opPop) {
			q.fireFront(nil)
		}
		return true
	}
	return false
}

// TryPop extracts the front element if that requires no waiting.
// It is TryPopOr with a zero-value fallback.
func (q *Queue[E]) TryPop() (E, bool) {
	return q.TryPopOr(nil)
}

// TryPopOr extracts the front element if that requires no waiting:
// from the buffer, or deposited by the oldest parked push. On failure
// it returns (fallback([ErrEmpty]), false). TryPopOr never parks
// anything, and close state does not turn a non-empty queue into
// failure.
func (q *Queue[E]) TryPopOr(fallback ValueFactory[E]) (E, bool) {
	q.lock()
	if q.waiting(opPush) {
		q.fireFront(nil)
	}
	if q.buf.len() > 0 {
		v := q.buf.pop()
		q.unlock()
		return v, true
	}
	q.unlock()

	if fallback == nil {
		fallback = ZeroOf[E]()
	}
	return fallback(ErrEmpty), false
}

// CancelOnePush cancels the oldest parked push and returns the number
// of operations canceled (0 or 1). The canceled push completes with
// [ErrCanceled]; its element is discarded.
func (q *Queue[E]) CancelOnePush() int {
	q.lock()
	defer q.unlock()
	return q.cancelOne(opPush)
}

// CancelPush cancels every parked push and returns the count.
func (q *Queue[E]) CancelPush() int {
	q.lock()
	defer q.unlock()
	return q.cancelAll(opPush)
}

// CancelOnePop cancels the oldest parked pop and returns the number of
// operations canceled (0 or 1). The canceled pop completes with
// [ErrCanceled] and its fallback value.
func (q *Queue[E]) CancelOnePop() int {
	q.lock()
	defer q.unlock()
	return q.cancelOne(opPop)
}

// CancelPop cancels every parked pop and returns the count.
func (q *Queue[E]) CancelPop() int {
	q.lock()
	defer q.unlock()
	return q.cancelAll(opPop)
}

// Cancel cancels every parked operation, pushes first, and returns the
// count. Only one role is ever parked at a time, so at most one of the
// two drains does anything.
func (q *Queue[E]) Cancel() int {
	q.lock()
	defer q.unlock()
	return q.cancelAll(opPush) + q.cancelAll(opPop)
}

// Close closes the queue with [ErrClosed].
// It is CloseWithError(ErrClosed).
func (q *Queue[E]) Close() bool {
	return q.CloseWithError(ErrClosed)
}

// CloseWithError closes the queue with err: parked operations drain
// with err, later pushes fail fast with it, and pops keep delivering
// elements while any remain, then fail with it. The close error is
// sticky until [Queue.Reset].
//
// CloseWithError reports whether it closed the queue. It returns false
// and does nothing when err is nil or the queue is already closed.
func (q *Queue[E]) CloseWithError(err error) bool {
	if err == nil {
		return false
	}
	q.lock()
	defer q.unlock()

	if q.closeErr != nil {
		return false
	}
	q.drain(err)
	q.closeErr = err
	return true
}

// Reset restores the queue to its freshly constructed state: the buffer
// empties, parked operations drain with [ErrCanceled], and the close
// state clears back to open. The executor and limit are kept.
func (q *Queue[E]) Reset() {
	q.lock()
	defer q.unlock()
	q.resetLocked()
}

// MoveFrom transfers src's contents into q: its buffered elements, its
// parked operations, its limit and its close state. q's own contents
// are first cleared the way [Queue.Reset] clears them. src keeps a copy
// of its executor handle and is left empty, open and usable with its
// original limit.
//
// Both queues stay locked for the whole transfer. Moving a queue into
// itself is a no-op.
func (q *Queue[E]) MoveFrom(src *Queue[E]) {
	if q == src {
		return
	}

	moveMu.Lock()
	defer moveMu.Unlock()

	q.lock()
	defer q.unlock()
	src.lock()
	defer src.unlock()

	q.resetLocked()
	q.ex = src.ex // src keeps its handle; both queues stay valid
	q.limit = src.limit
	q.buf = src.buf
	src.buf = ring[E]{}
	q.pending.take(&src.pending)
	q.closeErr = src.closeErr
	src.closeErr = nil
}

// Empty reports whether the queue holds no elements.
func (q *Queue[E]) Empty() bool {
	q.lock()
	defer q.unlock()
	return q.buf.len() == 0
}

// Full reports whether the queue holds limit elements.
// A queue with limit 0 is always full.
func (q *Queue[E]) Full() bool {
	q.lock()
	defer q.unlock()
	return q.buf.len() >= q.limit
}

// Size returns the number of buffered elements.
func (q *Queue[E]) Size() int {
	q.lock()
	defer q.unlock()
	return q.buf.len()
}

// Limit returns the capacity bound.
func (q *Queue[E]) Limit() int {
	q.lock()
	defer q.unlock()
	return q.limit
}

// CloseErr returns the close error, or nil while the queue is open.
func (q *Queue[E]) CloseErr() error {
	q.lock()
	defer q.unlock()
	return q.closeErr
}

// IsOpen reports whether the queue is open.
func (q *Queue[E]) IsOpen() bool {
	return q.CloseErr() == nil
}

// Executor returns the executor completions are dispatched through.
func (q *Queue[E]) Executor() Executor {
	q.lock()
	defer q.unlock()
	return q.ex
}

// waiting reports whether the pending-op list holds operations of the
// given role. The caller must hold the lock.
func (q *Queue[E]) waiting(role opRole) bool {
	return !q.pending.empty() && q.pending.role == role
}

// fireFront unparks the oldest pending operation and feeds it err.
// On nil a push deposits its element and a pop extracts the front; on a
// terminal condition the operation completes with it and the buffer is
// left alone. The node's state is moved out and its storage released
// before the completion is dispatched.
func (q *Queue[E]) fireFront(err error) {
	role := q.pending.role
	n := q.pending.popFront()
	val, fallback, pushFn, popFn, work := n.val, n.fallback, n.pushFn, n.popFn, n.work
	*n = opNode[E]{}
	q.pool.put(n)

	switch role {
	case opPush:
		if err == nil {
			q.buf.push(val)
			q.completePush(pushFn, nil)
		} else {
			q.completePush(pushFn, err)
		}
	case opPop:
		if err == nil {
			q.completePop(popFn, q.buf.pop())
		} else {
			q.completePopErr(popFn, fallback, err)
		}
	default:
		panic("queue: internal error: firing from an empty pending-op list")
	}
	work.Reset()
}

func (q *Queue[E]) cancelOne(role opRole) int {
	if !q.waiting(role) {
		return 0
	}
	q.fireFront(ErrCanceled)
	return 1
}

func (q *Queue[E]) cancelAll(role opRole) int {
	n := 0
	for q.cancelOne(role) != 0 {
		n++
	}
	return n
}

func (q *Queue[E]) drain(err error) {
	for !q.pending.empty() {
		q.fireFront(err)
	}
}

func (q *Queue[E]) resetLocked() {
	q.buf.clear()
	q.drain(ErrCanceled)
	q.closeErr = nil
}

// completePush dispatches a push completion. Completions only ever run
// on the executor, after the initiator releases the lock; Post is the
// happens-before edge between the two.
func (q *Queue[E]) completePush(complete func(error), err error) {
	q.ex.Post(func() { complete(err) })
}

func (q *Queue[E]) completePop(complete func(error, E), v E) {
	q.ex.Post(func() { complete(nil, v) })
}

// completePopErr builds the fallback value inside the posted
// completion: a factory may call back into the queue, which must not
// happen under the lock.
func (q *Queue[E]) completePopErr(complete func(error, E), fallback ValueFactory[E], err error) {
	q.ex.Post(func() { complete(err, fallback(err)) })
}

func (q *Queue[E]) lock() {
	q.mu.Lock()
	q.checkInvariant()
}

func (q *Queue[E]) unlock() {
	q.checkInvariant()
	q.mu.Unlock()
}

func (q *Queue[E]) checkInvariant() {
	switch {
	case q.buf.len() > q.limit:
		panic("queue: internal error: buffer exceeds limit")
	case q.pending.empty():
	case q.closeErr != nil:
		panic("queue: internal error: closed queue holds waiters")
	case q.pending.role == opPush && q.buf.len() != q.limit:
		panic("queue: internal error: parked push while the buffer has room")
	case q.pending.role == opPop && q.buf.len() != 0:
		panic("queue: internal error: parked pop while the buffer has elements")
	}
}
