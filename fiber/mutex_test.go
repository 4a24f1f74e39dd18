package fiber

import "testing"

func TestMutexStartsFreeByDefault(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex(sched, false)
	if mu.Owner() != nil {
		t.Error("a mutex created with owned=false should start free")
	}
	if mu.Recursion() != 0 {
		t.Errorf("Recursion() = %d, want 0", mu.Recursion())
	}
}

func TestMutexOwnedAtCreationBelongsToCreator(t *testing.T) {
	sched := NewScheduler()
	var mu *Mutex
	sched.Create(func(_ any) {
		mu = NewMutex(sched, true)
		if mu.Owner() != sched.Self() {
			t.Error("owned=true should make the creating fiber the owner")
		}
		if mu.Recursion() != 1 {
			t.Errorf("Recursion() = %d, want 1", mu.Recursion())
		}
	}, nil)
	sched.Run()
}

func TestMutexExclusion(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex(sched, false)
	inside := 0
	maxInside := 0

	critical := func() {
		mu.Acquire()
		inside++
		if inside > maxInside {
			maxInside = inside
		}
		sched.Yield()
		inside--
		mu.Release()
	}

	for i := 0; i < 5; i++ {
		sched.Create(func(_ any) { critical() }, nil)
	}
	sched.Run()

	if maxInside != 1 {
		t.Errorf("max simultaneous occupancy = %d, want 1", maxInside)
	}
}

func TestMutexRecursiveAcquireReleaseRoundTrip(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex(sched, false)

	sched.Create(func(_ any) {
		mu.Acquire()
		mu.Acquire()
		mu.Acquire()
		if mu.Recursion() != 3 {
			t.Errorf("Recursion() after 3 acquires = %d, want 3", mu.Recursion())
		}
		mu.Release()
		mu.Release()
		if mu.Owner() == nil {
			t.Error("mutex should still be owned after a partial release sequence")
		}
		mu.Release()
		if mu.Owner() != nil {
			t.Error("mutex should be free after releasing every acquire")
		}
		if mu.Recursion() != 0 {
			t.Errorf("Recursion() after full release = %d, want 0", mu.Recursion())
		}
	}, nil)
	sched.Run()
}

func TestMutexReleaseByNonOwnerPanics(t *testing.T) {
	sched := NewScheduler()
	mu := NewMutex(sched, false)
	sched.Create(func(_ any) { mu.Acquire() }, nil) // acquires and never releases

	panicked := false
	sched.Create(func(_ any) {
		defer func() {
			if recover() != nil {
				panicked = true
			}
		}()
		mu.Release()
	}, nil)
	sched.Run()

	if !panicked {
		t.Error("Release by a non-owner should panic")
	}
}

func TestMutexFIFOOrdering(t *testing.T) {
	sched := NewScheduler()
	var order []int

	sched.Create(func(_ any) {
		mu := NewMutex(sched, true)
		for i := 0; i < 4; i++ {
			id := i
			sched.Create(func(_ any) {
				mu.Acquire()
				order = append(order, id)
				mu.Release()
			}, nil)
			sched.Yield()
		}
		mu.Release()
	}, nil)
	sched.Run()

	want := []int{0, 1, 2, 3}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}
