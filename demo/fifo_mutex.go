package demo

import "uthread/fiber"

// FIFOMutex runs a FIFO-ordering scenario: a driver fiber starts out
// owning a mutex, then creates waiter fibers in a known order, each of
// which blocks in Acquire. The driver's single Release hands ownership
// to the first waiter; each waiter records its id and releases in turn,
// cascading ownership down the wait list one hop at a time until it is
// drained. The resulting id sequence must be strictly increasing in
// enqueue order — anything else means a later-arriving waiter barged
// ahead of one already queued.
func FIFOMutex(waiters int, opts ...fiber.SchedulerOption) Result {
	if waiters <= 0 {
		waiters = 5
	}
	sched := fiber.NewScheduler(opts...)

	order := make([]int, 0, waiters)
	group := fiber.NewGroup(sched)
	group.Add(waiters)

	sched.Create(func(_ any) {
		mu := fiber.NewMutex(sched, true)

		for i := 0; i < waiters; i++ {
			id := i
			sched.Create(func(_ any) {
				mu.Acquire()
				order = append(order, id)
				mu.Release()
				group.Done()
			}, nil, fiber.Named("fifo-waiter"))
			sched.Yield()
		}

		mu.Release()
		group.Wait()
	}, nil, fiber.Named("fifo-driver"))

	sched.Run()

	monotonic := 1
	for i := 1; i < len(order); i++ {
		if order[i] <= order[i-1] {
			monotonic = 0
			break
		}
	}

	return Result{
		Scenario: "fifo-mutex",
		Summary:  "waiters entered the critical section in strict enqueue order",
		Details: map[string]int{
			"waiters":   len(order),
			"monotonic": monotonic,
		},
	}
}
