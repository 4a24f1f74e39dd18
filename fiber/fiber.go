// Package fiber implements a cooperative user-mode threading runtime: a
// ready-queue scheduler that multiplexes many fibers onto a single
// logical thread of control, plus a recursive mutex and an upper-bounded
// counting semaphore built on the scheduler's park/unpark primitives.
//
// Fibers run to completion without preemption. They suspend only by
// calling Yield, Park, or Exit (or indirectly, by acquiring a mutex or
// semaphore that cannot be satisfied immediately). There is no
// multi-core parallelism within a single Scheduler: a swap always hands
// off to exactly one other fiber and the outgoing fiber does no further
// scheduler-visible work until resumed, so at most one fiber's logic is
// ever in flight.
//
// The underlying mechanics are grounded on duarten/UThread, a small C
// library implementing the same contract with hand-written x86
// context-switch assembly. Go offers no portable equivalent (no
// makecontext, no inline asm without cgo), so each fiber here runs on
// its own goroutine, and a context switch is a synchronous handoff on a
// dedicated, per-fiber rendezvous channel rather than a register
// save/restore: see Scheduler.swap and Scheduler.swapAndDestroy.
package fiber

import (
	"fmt"
	"sync/atomic"

	"uthread/internal/ilist"
)

// State is the lifecycle stage of a Fiber.
type State int32

const (
	// Ready means the fiber is queued and waiting for the processor.
	Ready State = iota
	// Running means the fiber currently holds the processor.
	Running
	// Blocked means the fiber is parked on some wait list.
	Blocked
	// Exited means the fiber has run to completion and will never run again.
	Exited
)

func (s State) String() string {
	switch s {
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	case Exited:
		return "EXITED"
	default:
		return "UNKNOWN"
	}
}

// DefaultStackHint is the stack size UThread's C original actually
// allocates for a user thread. Go goroutines start at a couple of
// kilobytes and grow on demand, so this value is advisory only here —
// recorded for diagnostics, never used to size a real allocation. See
// StackHint.
const DefaultStackHint = 64 * 1024

// Handle is an opaque identifier for a fiber. Handle equality denotes
// fiber identity. The zero Handle (nil) never names a live fiber.
type Handle = *Fiber

// Fiber is a single cooperatively scheduled unit of control. Its fields
// are unexported; callers only ever see a Handle and the accessor
// methods below.
type Fiber struct {
	id        int64
	name      string
	stackHint int

	state State

	entry func(arg any)
	arg   any

	// resume is the Go substitute for a saved hardware context: a fiber
	// suspends by blocking on a receive from this channel, and is
	// resumed by a send to it from whichever fiber is relinquishing the
	// processor. See Scheduler.swap.
	resume chan struct{}

	// link is this fiber's membership in the ready queue. A bare Fiber
	// only ever links into the ready queue; waiting on a synchronizer
	// goes through a separate wait block instead.
	link ilist.Node[Fiber]

	sched *Scheduler
}

var fiberIDCounter int64

// Option configures a fiber at creation time.
type Option func(*fiberOptions)

type fiberOptions struct {
	name      string
	stackHint int
}

// Named sets the fiber's diagnostic name.
func Named(name string) Option {
	return func(o *fiberOptions) { o.name = name }
}

// StackHint records an advisory stack size. It never bounds or
// preallocates anything — Go manages the real goroutine stack — but is
// retained so code ported from a fixed-stack-size original has
// somewhere to put the number, and so logging/diagnostics can report it.
func StackHint(bytes int) Option {
	return func(o *fiberOptions) { o.stackHint = bytes }
}

func newFiber(sched *Scheduler, fn func(arg any), arg any, opts ...Option) *Fiber {
	cfg := fiberOptions{stackHint: DefaultStackHint}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := atomic.AddInt64(&fiberIDCounter, 1)
	if cfg.name == "" {
		cfg.name = fmt.Sprintf("fiber-%d", id)
	}
	f := &Fiber{
		id:        id,
		name:      cfg.name,
		stackHint: cfg.stackHint,
		state:     Ready,
		entry:     fn,
		arg:       arg,
		resume:    make(chan struct{}),
		sched:     sched,
	}
	f.link = ilist.NewNode(f)
	return f
}

// ID returns the fiber's unique, process-wide, monotonically assigned
// identifier. IDs are never reused.
func (f *Fiber) ID() int64 { return f.id }

// Name returns the fiber's diagnostic name.
func (f *Fiber) Name() string { return f.name }

// StackHint returns the advisory stack-size hint the fiber was created
// with (DefaultStackHint unless overridden by the StackHint option).
func (f *Fiber) StackHint() int { return f.stackHint }

// State returns the fiber's current lifecycle state.
func (f *Fiber) State() State { return f.state }

// String renders the fiber for logs and debugging.
func (f *Fiber) String() string {
	return fmt.Sprintf("fiber[%d:%s:%s]", f.id, f.name, f.state)
}

// body is the entry trampoline: it blocks until the scheduler first
// resumes this fiber, runs the entry function, and then exits. Exit
// hands the processor to this fiber's successor via swapAndDestroy and
// then ends this goroutine, which is what "this fiber never runs again"
// actually looks like in Go.
func (f *Fiber) body() {
	<-f.resume
	f.state = Running
	f.entry(f.arg)
	f.sched.Exit()
}
