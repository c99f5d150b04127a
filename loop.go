package queue

import "sync"

// A Loop is a minimal host runtime: goroutines submit work with Post,
// and one or more goroutines execute it with Run.
//
// A Loop counts outstanding work (it implements [Worker]), so a [Queue]
// with parked operations keeps its runners alive even while the task
// queue is momentarily empty. When the last task has run and no work
// remains, the loop stops and every Run returns.
//
// The zero Loop is ready to use.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	tasks   ring[func()]
	busy    int // tasks currently mid-run
	work    int // outstanding WorkGuards
	stopped bool
}

// called with mu held
func (l *Loop) init() {
	if l.cond == nil {
		l.cond = sync.NewCond(&l.mu)
	}
}

// Post submits fn to run on some goroutine calling Run.
// fn never runs before Post returns. A single runner executes tasks in
// the order they were posted.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		panic("queue: nil task")
	}
	l.mu.Lock()
	l.init()
	l.tasks.push(fn)
	l.cond.Signal()
	l.mu.Unlock()
}

// WorkStarted registers one unit of outstanding work, keeping Run from
// returning while the work exists even when no tasks are queued.
func (l *Loop) WorkStarted() {
	l.mu.Lock()
	l.init()
	l.work++
	l.mu.Unlock()
}

// WorkFinished releases one unit of outstanding work.
func (l *Loop) WorkFinished() {
	l.mu.Lock()
	l.init()
	if l.work == 0 {
		panic("queue: unbalanced WorkFinished")
	}
	l.work--
	if l.work == 0 {
		l.cond.Broadcast()
	}
	l.mu.Unlock()
}

// Run executes posted tasks until the loop stops or runs out of work:
// no queued tasks, no task mid-run on another goroutine, and no
// outstanding work. Running out of work stops the loop, so once
// stopped, further Run calls return immediately until [Loop.Restart].
//
// Run may be called from any number of goroutines at once; they drain
// the same task queue.
func (l *Loop) Run() {
	l.mu.Lock()
	l.init()
	for !l.stopped {
		if l.tasks.len() > 0 {
			fn := l.tasks.pop()
			l.busy++
			l.mu.Unlock()
			fn()
			l.mu.Lock()
			l.busy--
			continue
		}
		if l.busy == 0 && l.work == 0 {
			l.stopped = true
			break
		}
		l.cond.Wait()
	}
	l.cond.Broadcast()
	l.mu.Unlock()
}

// Stop stops the loop early. Queued tasks are kept for a later
// Restart+Run.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.init()
	l.stopped = true
	l.cond.Broadcast()
	l.mu.Unlock()
}

// Stopped reports whether the loop is stopped.
func (l *Loop) Stopped() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stopped
}

// Restart makes a stopped loop runnable again.
// It must not be called while any Run is in progress.
func (l *Loop) Restart() {
	l.mu.Lock()
	l.stopped = false
	l.mu.Unlock()
}
