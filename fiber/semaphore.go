package fiber

import "uthread/internal/ilist"

// Semaphore is a counting, upper-bounded, FIFO-fair semaphore with
// head-of-line blocking: a waiter whose request cannot yet be satisfied
// blocks every waiter queued behind it, even if a later waiter's smaller
// request could otherwise be granted immediately.
//
// Invariant: 0 <= permits <= limit; if the wait list is non-empty, then
// permits < the requested count of the head waiter.
//
// Grounded on UThread's UTHREAD_SEMAPHORE / UtInitializeSemaphore /
// UtAcquireSemaphore / UtReleaseSemaphore (SyncObjects.c/.h).
type Semaphore struct {
	sched   *Scheduler
	waiters *ilist.List[semaphoreWaitBlock]
	permits int
	limit   int
}

// NewSemaphore returns a semaphore bound to sched, starting with permits
// available out of a maximum of limit. It panics if permits is outside
// [0, limit] — a misconfigured call site, not a runtime condition.
func NewSemaphore(sched *Scheduler, permits, limit int) *Semaphore {
	if permits < 0 || permits > limit {
		panic("fiber: semaphore permits out of [0, limit] range")
	}
	return &Semaphore{sched: sched, waiters: ilist.New[semaphoreWaitBlock](), permits: permits, limit: limit}
}

// Acquire obtains n permits, blocking the calling fiber until they are
// available. On resumption, n permits have already been deducted by the
// releaser and this fiber has already been unlinked from the wait list.
func (s *Semaphore) Acquire(n int) {
	if s.permits >= n {
		s.permits -= n
		return
	}
	wb := semaphoreWaitBlock{fiber: s.sched.Self(), requested: n}
	wb.link = ilist.NewNode(&wb)
	s.waiters.PushBack(&wb.link)
	s.sched.Park()
}

// Release returns n permits to the semaphore, silently clamping at
// limit rather than erroring, then walks the wait list from the head, waking every
// waiter it can satisfy in order and stopping at the first one it
// cannot, even if a waiter further back could be satisfied. This is the
// head-of-line policy that keeps the semaphore FIFO-fair.
func (s *Semaphore) Release(n int) {
	s.permits += n
	if s.permits > s.limit {
		s.permits = s.limit
	}
	for {
		head := s.waiters.Front()
		if head == nil || s.permits < head.requested {
			break
		}
		s.permits -= head.requested
		s.waiters.Remove(&head.link)
		s.sched.Unpark(head.fiber)
	}
}

// Permits returns the current permit count.
func (s *Semaphore) Permits() int { return s.permits }

// Limit returns the upper bound on permits.
func (s *Semaphore) Limit() int { return s.limit }
