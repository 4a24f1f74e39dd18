package fiber

import (
	"runtime"
	"sync/atomic"

	"github.com/rs/zerolog"

	"uthread/internal/ilist"
	"uthread/internal/obs"
)

// Stats tracks scheduler lifetime counters: fibers created/completed,
// context switches, and total yields.
type Stats struct {
	FibersCreated   int64
	FibersCompleted int64
	ContextSwitches int64
	TotalYields     int64
}

// Scheduler owns the process-wide (in Go: goroutine-wide) mutable state:
// the running fiber, the ready queue, the main-proxy fallback, and the
// live-fiber count. An embedder that wants multiple independent runtimes
// constructs multiple Schedulers; nothing here is a package-level global.
//
// Every exported method assumes it is called from the single logical
// thread of control that owns this Scheduler — either one of its fibers
// (each on its own goroutine, but only one of them executing at a time),
// or (for Create) any caller before Run has started. No
// internal locking is used for ready-queue or fiber-state mutation: the
// cooperative, non-preemptive discipline plus the channel-rendezvous
// context switch (see swap/swapAndDestroy) is the only synchronization
// needed, since only one fiber's logic is ever actually executing.
type Scheduler struct {
	ready     *ilist.List[Fiber]
	running   *Fiber
	mainProxy *Fiber
	live      int64

	runningFlag int32 // guards against re-entrant Run, the one bad-state assert we enforce

	stats Stats
	log   zerolog.Logger
}

// SchedulerOption configures a Scheduler at construction time.
type SchedulerOption func(*Scheduler)

// WithLogger injects a zerolog.Logger for scheduler lifecycle events
// (fiber creation/exit, context switches, park/unpark). The default is a
// disabled logger, so the hot path pays nothing unless a caller opts in.
func WithLogger(l zerolog.Logger) SchedulerOption {
	return func(s *Scheduler) { s.log = l }
}

// NewScheduler returns an idle scheduler with an empty ready queue.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		ready: ilist.New[Fiber](),
		log:   obs.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create allocates a new fiber running fn(arg) and places it at the tail
// of the ready queue. It may be called before Run, or from within a
// running fiber; it never suspends the caller.
func (s *Scheduler) Create(fn func(arg any), arg any, opts ...Option) Handle {
	f := newFiber(s, fn, arg, opts...)
	s.stats.FibersCreated++
	atomic.AddInt64(&s.live, 1)
	go f.body()
	s.ready.PushBack(&f.link)
	s.log.Debug().Int64("fiber", f.id).Str("name", f.name).Msg("fiber created")
	return f
}

// Run enters the scheduler loop on the calling goroutine, which becomes
// the main-proxy fiber's stack. It returns immediately if no fiber
// exists, and otherwise returns once every fiber has exited — or, in a
// deadlocked program, once every remaining fiber is parked with nothing
// left to unpark it. The runtime does not detect that condition; it
// simply quiesces.
func (s *Scheduler) Run() {
	if !atomic.CompareAndSwapInt32(&s.runningFlag, 0, 1) {
		panic("fiber: Run called on a scheduler that is already running")
	}
	defer atomic.StoreInt32(&s.runningFlag, 0)

	if s.ready.Empty() {
		return
	}

	proxy := &Fiber{name: "main-proxy", state: Running, resume: make(chan struct{})}
	s.mainProxy = proxy
	defer func() { s.mainProxy = nil }()

	head := s.ready.PopFront()
	head.state = Running
	s.swap(proxy, head)
}

// Self returns a handle to the currently running fiber. Calling it
// outside a fiber (from the main-proxy's original frame, before Run or
// after it returns) is undefined.
func (s *Scheduler) Self() Handle { return s.running }

// Live returns the number of fibers that have been created but have not
// yet exited.
func (s *Scheduler) Live() int { return int(atomic.LoadInt64(&s.live)) }

// Stats returns a snapshot of the scheduler's lifetime counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Yield relinquishes the processor to the head of the ready queue,
// enqueueing the calling fiber at the tail first. It returns immediately
// without switching if the ready queue is empty.
func (s *Scheduler) Yield() {
	self := s.running
	if s.ready.Empty() {
		return
	}
	self.state = Ready
	s.ready.PushBack(&self.link)
	s.stats.TotalYields++
	next := s.ready.PopFront()
	next.state = Running
	s.swap(self, next)
	self.state = Running
}

// Park suspends the calling fiber without enqueueing it anywhere. The
// caller must already have linked a wait block for this fiber into some
// synchronizer's wait list before calling Park — Park itself only
// performs the context switch.
func (s *Scheduler) Park() {
	self := s.running
	self.state = Blocked
	s.log.Debug().Int64("fiber", self.id).Msg("parked")
	next := s.selectNext()
	s.swap(self, next)
	self.state = Running
}

// Unpark moves h to the tail of the ready queue, making it eligible to
// run. It does not yield the calling fiber.
func (s *Scheduler) Unpark(h Handle) {
	h.state = Ready
	s.ready.PushBack(&h.link)
	s.log.Debug().Int64("fiber", h.id).Msg("unparked")
}

// Exit terminates the calling fiber: it hands the processor to the
// fiber's successor and then ends the calling goroutine with
// runtime.Goexit, so it never returns to its caller. body calls it once
// the entry function returns; a fiber that calls it directly never runs
// the rest of its entry function. The fiber's resources become eligible
// for garbage collection once that goroutine has ended; cleanup needs no
// explicit free because Go's garbage collector reclaims the exited
// fiber's state on its own.
func (s *Scheduler) Exit() {
	self := s.running
	self.state = Exited
	atomic.AddInt64(&s.live, -1)
	s.stats.FibersCompleted++
	s.log.Debug().Int64("fiber", self.id).Msg("fiber exited")
	next := s.selectNext()
	s.swapAndDestroy(self, next)
	runtime.Goexit()
}

// selectNext implements the scheduler's single successor policy: head of
// the ready queue if non-empty, else the main-proxy.
func (s *Scheduler) selectNext() *Fiber {
	if f := s.ready.PopFront(); f != nil {
		f.state = Running
		return f
	}
	return s.mainProxy
}

// swap is the plain context switch: it hands the processor to next and
// blocks cur's goroutine until cur is itself resumed by some future
// swap/swapAndDestroy naming it as next. Because the resume-send always
// happens before the receive that blocks the caller, at most one fiber's
// goroutine is ever doing scheduler-visible work, regardless of how many
// OS threads Go's runtime happens to use.
func (s *Scheduler) swap(cur, next *Fiber) {
	s.stats.ContextSwitches++
	s.log.Debug().Str("from", cur.name).Str("to", next.name).Msg("context switch")
	s.running = next
	next.resume <- struct{}{}
	<-cur.resume
}

// swapAndDestroy is the exit variant of the context switch: unlike swap,
// it never blocks on cur's resume channel — cur's goroutine has nothing
// left to do but unwind and die, so there is nothing to resume. The
// handoff to next happens strictly after every scheduler-state mutation
// Exit needed to make (live count, ready-queue pop), so next never
// observes cur mid-cleanup.
func (s *Scheduler) swapAndDestroy(cur, next *Fiber) {
	s.stats.ContextSwitches++
	s.log.Debug().Str("from", cur.name).Str("to", next.name).Msg("context switch (exit)")
	s.running = next
	next.resume <- struct{}{}
}
