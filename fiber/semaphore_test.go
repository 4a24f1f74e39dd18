package fiber

import "testing"

func TestNewSemaphoreRejectsOutOfRangePermits(t *testing.T) {
	sched := NewScheduler()
	defer func() {
		if recover() == nil {
			t.Error("permits > limit should panic")
		}
	}()
	NewSemaphore(sched, 5, 3)
}

func TestSemaphoreAcquireNonBlockingWhenPermitsAvailable(t *testing.T) {
	sched := NewScheduler()
	sem := NewSemaphore(sched, 3, 3)
	sched.Create(func(_ any) {
		sem.Acquire(2)
		if sem.Permits() != 1 {
			t.Errorf("Permits() = %d, want 1", sem.Permits())
		}
	}, nil)
	sched.Run()
}

func TestSemaphoreReleaseBeyondLimitClampsSilently(t *testing.T) {
	sched := NewScheduler()
	sem := NewSemaphore(sched, 0, 5)
	sem.Release(100)
	if sem.Permits() != 5 {
		t.Errorf("Permits() = %d, want 5 (clamped to limit)", sem.Permits())
	}
}

func TestSemaphoreReleaseThenAcquireIsANoOp(t *testing.T) {
	sched := NewScheduler()
	sem := NewSemaphore(sched, 2, 10)
	sem.Release(3)
	sched.Create(func(_ any) {
		sem.Acquire(3)
	}, nil)
	sched.Run()
	if sem.Permits() != 2 {
		t.Errorf("Permits() = %d, want 2 (back to pre-release level)", sem.Permits())
	}
}

func TestSemaphoreHeadOfLineBlocking(t *testing.T) {
	sched := NewScheduler()
	sem := NewSemaphore(sched, 0, 64)
	var aAcquired, bAcquired bool

	sched.Create(func(_ any) {
		sem.Acquire(10)
		aAcquired = true
	}, nil)
	sched.Create(func(_ any) {
		sem.Acquire(1)
		bAcquired = true
	}, nil)
	sched.Create(func(_ any) {
		sem.Release(5)
		sched.Yield() // a waiter woken by the first release would run here
		if aAcquired || bAcquired {
			t.Error("neither waiter should wake after a release that cannot satisfy the head request")
		}
		sem.Release(6)
	}, nil)
	sched.Run()

	if !aAcquired {
		t.Error("waiter A should have woken once 10 permits accumulated")
	}
	if !bAcquired {
		t.Error("waiter B should have woken behind A once its 1 permit was available")
	}
	if sem.Permits() != 0 {
		t.Errorf("Permits() = %d, want 0", sem.Permits())
	}
}

func TestSemaphoreSmallerLaterWaiterDoesNotJumpTheQueue(t *testing.T) {
	sched := NewScheduler()
	sem := NewSemaphore(sched, 0, 64)
	order := []string{}

	sched.Create(func(_ any) {
		sem.Acquire(5)
		order = append(order, "big")
	}, nil)
	sched.Create(func(_ any) {
		sem.Acquire(1)
		order = append(order, "small")
	}, nil)
	sched.Create(func(_ any) {
		sem.Release(1) // not enough for big (needs 5): no one wakes yet
		sem.Release(5) // now 6 total: big wakes, then small wakes off the leftover
	}, nil)
	sched.Run()

	if len(order) != 2 || order[0] != "big" || order[1] != "small" {
		t.Errorf("order = %v, want [big small]", order)
	}
}
