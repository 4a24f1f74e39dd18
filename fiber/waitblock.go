package fiber

import "uthread/internal/ilist"

// waitBlock is a queue node naming the fiber to unpark, always a local
// variable on the waiting fiber's own call stack (in this runtime, that
// stack is the fiber's goroutine stack). It is valid from the moment it
// is linked into a synchronizer's wait list until the releaser unparks
// its fiber — which is safe precisely because a parked fiber's goroutine
// is blocked, not gone, so the local variable's storage is never reused
// out from under the list.
//
// Grounded on UThread's WAIT_BLOCK (SyncObjects.h).
type waitBlock struct {
	link  ilist.Node[waitBlock]
	fiber *Fiber
}

// semaphoreWaitBlock additionally carries the number of permits a
// blocked acquirer requested.
//
// Grounded on UThread's SEMAPHORE_WAIT_BLOCK.
type semaphoreWaitBlock struct {
	link      ilist.Node[semaphoreWaitBlock]
	fiber     *Fiber
	requested int
}
