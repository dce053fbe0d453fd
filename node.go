package tickz

import "context"

// Tick is a monotonic, wrapping tick counter. Expiration comparisons use
// modular (wraparound-safe) arithmetic, never a plain less-than, so Tick
// can safely overflow back to zero during the life of a Scheduler.
type Tick uint32

// SleepIndefinite is returned by Scheduler.Run when there is no pending
// timer to wake for: the caller may sleep until the next external event
// (an interrupt, a Post from another context) instead of busy-polling.
const SleepIndefinite Tick = ^Tick(0)

// EventID identifies a statically-bound event on an EventBus, matching
// the original scheduler's 16-bit event identifier width.
type EventID uint16

// Handler is a plain deferred task: work queued with Post or
// PostDelayed and executed once, in Scheduler.Run, with the argument it
// was posted with.
type Handler func(ctx context.Context, arg any)

// EventHandler is a subscriber callback on an EventBus. It receives the
// emitted argument and may return an error, which the Scheduler reports
// through capitan but does not propagate to the emitter or to other
// subscribers.
type EventHandler func(ctx context.Context, arg any) error

// Destructor releases resources owned by a task's argument. It runs
// exactly once: after the task executes, when Cancel removes the task,
// or immediately and synchronously if the task could never be scheduled
// (pool exhaustion during EmitManaged).
type Destructor func(arg any)

// nodeKind discriminates what a pool node represents.
type nodeKind uint8

const (
	nodeKindTask nodeKind = iota
	nodeKindEvent
)

// node is the pool-resident unit of deferred work: either a plain task
// (fn set) or an event emission (eventID + bus set). It is a tagged
// union instead of two node types so that a single free-list and a
// single timer queue can hold both kinds interchangeably, matching
// task_node_t in the original scheduler.
type node struct {
	kind nodeKind

	fn      Handler
	eventID EventID
	bus     *EventBus

	arg  any
	dtor Destructor

	delayed    bool
	expiration Tick

	// next chains nodes within whichever queue currently owns them (the
	// free list, the ready queue, or the timer queue). A node is a member
	// of exactly one queue at a time.
	next *node
}

// reset clears a node back to its zero value before it's returned to the
// free list, so it never leaks a stale handler/argument/destructor to a
// future allocation.
func (n *node) reset() {
	n.kind = nodeKindTask
	n.fn = nil
	n.eventID = 0
	n.bus = nil
	n.arg = nil
	n.dtor = nil
	n.delayed = false
	n.expiration = 0
	n.next = nil
}
