package demo

import "uthread/fiber"

// MutexExclusion runs a three-fiber mutex exclusion scenario. Three
// fibers each acquire an initially-unowned mutex, yield while
// holding it, and release; fiber 1 additionally re-acquires and
// re-releases recursively between its acquire and release, exercising
// the mutex's recursion counter. A shared, unguarded counter incremented
// on entry to the critical section and decremented just before release
// records the maximum number of fibers ever simultaneously inside it —
// the scenario's pass condition is that this maximum never exceeds 1.
func MutexExclusion(opts ...fiber.SchedulerOption) Result {
	sched := fiber.NewScheduler(opts...)
	mu := fiber.NewMutex(sched, false)

	inside := 0
	maxInside := 0
	group := fiber.NewGroup(sched)
	group.Add(3)

	critical := func(id int, recursive bool) {
		mu.Acquire()
		if recursive {
			mu.Acquire()
		}
		inside++
		if inside > maxInside {
			maxInside = inside
		}
		sched.Yield()
		inside--
		if recursive {
			mu.Release()
		}
		mu.Release()
		group.Done()
	}

	sched.Create(func(_ any) { critical(1, true) }, nil, fiber.Named("mutex-fiber-1"))
	sched.Create(func(_ any) { critical(2, false) }, nil, fiber.Named("mutex-fiber-2"))
	sched.Create(func(_ any) { critical(3, false) }, nil, fiber.Named("mutex-fiber-3"))
	sched.Create(func(_ any) { group.Wait() }, nil, fiber.Named("mutex-waiter"))

	sched.Run()

	return Result{
		Scenario: "mutex-exclusion",
		Summary:  "max simultaneous occupancy of the critical section was 1",
		Details:  map[string]int{"maxInside": maxInside},
	}
}
