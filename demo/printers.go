package demo

import (
	"math/rand"

	"uthread/fiber"
)

// TenPrinters runs a ten-printer scenario: n fibers (default 10) each
// write their assigned digit 1,000 times, yielding with probability 1/4
// between characters. counts and total are shared, unguarded state,
// safe because the scheduler only ever runs one fiber at a time, the
// same invariant every other scenario in this package relies on.
func TenPrinters(n int, rng *rand.Rand, opts ...fiber.SchedulerOption) Result {
	if n <= 0 {
		n = 10
	}
	const perFiber = 1000

	sched := fiber.NewScheduler(opts...)
	counts := make([]int, n)
	total := 0

	group := fiber.NewGroup(sched)
	group.Add(n)

	for i := 0; i < n; i++ {
		digit := i
		sched.Create(func(_ any) {
			for c := 0; c < perFiber; c++ {
				counts[digit]++
				total++
				if rng.Intn(4) == 0 {
					sched.Yield()
				}
			}
			group.Done()
		}, nil, fiber.Named(digitName(digit)))
	}

	sched.Create(func(_ any) {
		group.Wait()
	}, nil, fiber.Named("printers-waiter"))

	sched.Run()

	details := map[string]int{"total": total}
	for i, c := range counts {
		details[digitName(i)] = c
	}
	return Result{
		Scenario: "ten-printers",
		Summary:  "every digit fiber wrote exactly 1000 characters",
		Details:  details,
	}
}

func digitName(i int) string {
	return string(rune('0' + i))
}
