package fiber

import "uthread/internal/ilist"

// Mutex is a recursive, FIFO-fair mutex. Release hands ownership
// directly to the fiber at the head of the wait list — there is no
// window in which a fiber arriving after Release is called can barge
// ahead of one already queued.
//
// Invariant: owner == nil iff recursion == 0; whenever owner is non-nil,
// recursion >= 1. The wait list can be non-empty only while owner is
// non-nil (a free mutex has no waiters).
//
// Grounded on UThread's UTHREAD_MUTEX / UtInitializeMutex /
// UtAcquireMutex / UtReleaseMutex (SyncObjects.c/.h).
type Mutex struct {
	sched     *Scheduler
	waiters   *ilist.List[waitBlock]
	owner     *Fiber
	recursion int
}

// NewMutex returns a mutex bound to sched. If owned is true the calling
// fiber becomes the initial owner with a recursion count of 1;
// otherwise the mutex starts free.
func NewMutex(sched *Scheduler, owned bool) *Mutex {
	m := &Mutex{sched: sched, waiters: ilist.New[waitBlock]()}
	if owned {
		m.owner = sched.Self()
		m.recursion = 1
	}
	return m
}

// Acquire acquires the mutex, blocking the calling fiber if it is held
// by another fiber. A fiber that already owns the mutex may call Acquire
// again without blocking — each such call must be matched by a Release.
func (m *Mutex) Acquire() {
	me := m.sched.Self()
	switch {
	case m.owner == me:
		// Recursive re-entry.
		m.recursion++
	case m.owner == nil:
		m.owner = me
		m.recursion = 1
	default:
		wb := waitBlock{fiber: me}
		wb.link = ilist.NewNode(&wb)
		m.waiters.PushBack(&wb.link)
		m.sched.Park()
		// Ownership was already handed to us at release time, not
		// reclaimed here: by the time Park returns, m.owner == me and
		// m.recursion == 1.
	}
}

// Release releases one level of ownership. The caller must be the
// current owner; calling Release without owning the mutex is programmer
// error and panics rather than silently corrupting mutex state.
func (m *Mutex) Release() {
	me := m.sched.Self()
	if m.owner != me {
		panic("fiber: Release called by a fiber that does not own the mutex")
	}
	m.recursion--
	if m.recursion > 0 {
		// Still owned by the same fiber.
		return
	}
	next := m.waiters.PopFront()
	if next == nil {
		m.owner = nil
		return
	}
	m.owner = next.fiber
	m.recursion = 1
	m.sched.Unpark(next.fiber)
}

// Owner returns the fiber that currently owns the mutex, or nil if it is free.
func (m *Mutex) Owner() Handle { return m.owner }

// Recursion returns the current recursion count (0 when the mutex is free).
func (m *Mutex) Recursion() int { return m.recursion }
