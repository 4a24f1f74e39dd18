package demo

import "uthread/fiber"

// HeadOfLineSemaphore runs the head-of-line blocking scenario: a
// semaphore starts at 0 permits, waiter A queues requesting 10 permits,
// then waiter B queues requesting 1. A first, smaller release must not
// wake B out of turn even though B's request alone could be satisfied —
// B is stuck behind A until A's request is satisfied too.
//
// The two release amounts here are 5 and 6 rather than a literal 5-and-5
// split: A (10) plus B (1) need 11 permits in total to both wake, so the
// second release has to cover the remaining 6, not another 5.
func HeadOfLineSemaphore(opts ...fiber.SchedulerOption) Result {
	sched := fiber.NewScheduler(opts...)
	sem := fiber.NewSemaphore(sched, 0, 64)

	var aAcquired, bAcquired int
	var aWokeFirst, wokeBeforeSecondRelease bool

	group := fiber.NewGroup(sched)
	group.Add(2)

	sched.Create(func(_ any) {
		sem.Acquire(10)
		aAcquired = 10
		aWokeFirst = bAcquired == 0
		group.Done()
	}, nil, fiber.Named("hol-waiter-a"))

	sched.Create(func(_ any) {
		sem.Acquire(1)
		bAcquired = 1
		group.Done()
	}, nil, fiber.Named("hol-waiter-b"))

	sched.Create(func(_ any) {
		sem.Release(5)
		sched.Yield() // a waiter woken by the first release would run here
		wokeBeforeSecondRelease = aAcquired != 0 || bAcquired != 0
		sem.Release(6)
		group.Wait()
	}, nil, fiber.Named("hol-releaser"))

	sched.Run()

	toInt := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	return Result{
		Scenario: "head-of-line-semaphore",
		Summary:  "waiter B stayed blocked behind waiter A's larger request until enough permits existed for both",
		Details: map[string]int{
			"aAcquired":                 aAcquired,
			"bAcquired":                 bAcquired,
			"neitherWokeOnFirstRelease": toInt(!wokeBeforeSecondRelease),
			"aWokeBeforeB":              toInt(aWokeFirst),
			"permitsRemaining":          sem.Permits(),
		},
	}
}
