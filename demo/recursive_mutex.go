package demo

import "uthread/fiber"

// RecursiveMutex runs the recursion scenario: one fiber acquires the
// same mutex k times in a row, then releases it k times; a second fiber
// blocked on the same mutex must stay parked until the last release and
// wake on exactly that one, not before.
func RecursiveMutex(depth int, opts ...fiber.SchedulerOption) Result {
	if depth <= 0 {
		depth = 4
	}
	sched := fiber.NewScheduler(opts...)
	mu := fiber.NewMutex(sched, false)

	releaseCount := 0
	waiterWokeAfter := -1
	group := fiber.NewGroup(sched)
	group.Add(2)

	sched.Create(func(_ any) {
		for i := 0; i < depth; i++ {
			mu.Acquire()
		}
		sched.Yield() // let the waiter attempt Acquire and park before any release
		for i := 0; i < depth; i++ {
			mu.Release()
			releaseCount++
			sched.Yield()
		}
		group.Done()
	}, nil, fiber.Named("recursive-owner"))

	sched.Create(func(_ any) {
		mu.Acquire()
		waiterWokeAfter = releaseCount
		mu.Release()
		group.Done()
	}, nil, fiber.Named("recursive-waiter"))

	sched.Run()

	return Result{
		Scenario: "recursive-mutex",
		Summary:  "the blocked waiter woke only after the final matching release",
		Details: map[string]int{
			"depth":           depth,
			"waiterWokeAfter": waiterWokeAfter,
		},
	}
}
