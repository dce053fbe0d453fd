package tickz

import (
	"context"
	"sync/atomic"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Scheduler is a cooperative, interrupt-tolerant event loop: a
// fixed-capacity node pool feeding a ready queue and a timer queue,
// advanced by a monotonic Tick counter. Every exported method may be
// called concurrently (including from a context standing in for an
// interrupt handler); all shared-state mutation is serialized through
// the configured Guard.
type Scheduler struct {
	guard Guard
	pool  *pool

	ready  readyQueue
	timers timerQueue

	tick atomic.Uint32

	bus    *EventBus
	sealed atomic.Bool

	clock   clockz.Clock
	metrics *metricz.Registry
	tracer  *tracez.Tracer
}

// New constructs a Scheduler ready to accept Post/PostDelayed/Subscribe
// calls. With no options, it uses a 32-node pool, a MutexGuard, and a
// fresh, unsealed EventBus.
func New(opts ...Option) *Scheduler {
	cfg := resolveConfig(opts)

	s := &Scheduler{
		guard:   cfg.guard,
		pool:    newPool(cfg.poolCapacity),
		bus:     cfg.bus,
		clock:   cfg.clock,
		metrics: newSchedulerMetrics(),
		tracer:  tracez.New(),
	}
	return s
}

// Clock returns the clockz.Clock this Scheduler was configured with
// (WithClock), defaulting to clockz.RealClock. NewRunner consults it
// when no clock override is supplied.
func (s *Scheduler) Clock() clockz.Clock {
	return s.clock
}

// Subscribe registers fn against id on the Scheduler's EventBus. It
// fails once the Scheduler has executed its first Run.
func (s *Scheduler) Subscribe(id EventID, fn EventHandler) error {
	return s.bus.Subscribe(id, fn)
}

// Tick advances the monotonic tick counter by one and returns the new
// value. It is the only operation a timer interrupt needs to invoke;
// everything else (promoting expired timers, running ready work) happens
// in Run.
func (s *Scheduler) Tick() Tick {
	return Tick(s.tick.Add(1))
}

// now returns the current tick without advancing it.
func (s *Scheduler) now() Tick {
	return Tick(s.tick.Load())
}

// Post enqueues fn to run on the next Run call, passing arg and dtor
// through to execution/cleanup. It returns ErrNullHandler if fn is nil,
// or ErrPoolExhausted if the node pool has no free slots.
func (s *Scheduler) Post(fn Handler, arg any, dtor Destructor) error {
	if fn == nil {
		capitan.Warn(context.Background(), SignalNullHandler)
		return ErrNullHandler
	}

	s.guard.Enter()
	n := s.pool.alloc()
	if n == nil {
		s.guard.Exit()
		s.metrics.Counter(MetricPoolExhaustedTotal).Inc()
		capitan.Error(context.Background(), SignalPoolExhausted,
			FieldPoolSize.Field(s.pool.capacity()),
			FieldPoolInUse.Field(s.pool.inUse),
		)
		return ErrPoolExhausted
	}
	n.kind = nodeKindTask
	n.fn = fn
	n.arg = arg
	n.dtor = dtor
	s.ready.pushBack(n)
	s.guard.Exit()

	s.metrics.Counter(MetricPostsTotal).Inc()
	s.reportGauges()
	return nil
}

// PostDelayed enqueues fn to run once delay ticks have elapsed (measured
// from the tick count at the time of this call). A delay of zero behaves
// like Post: the node lands directly on the ready queue rather than the
// timer queue.
func (s *Scheduler) PostDelayed(fn Handler, delay Tick, arg any, dtor Destructor) error {
	if fn == nil {
		capitan.Warn(context.Background(), SignalNullHandler)
		return ErrNullHandler
	}

	s.guard.Enter()
	n := s.pool.alloc()
	if n == nil {
		s.guard.Exit()
		s.metrics.Counter(MetricPoolExhaustedTotal).Inc()
		capitan.Error(context.Background(), SignalPoolExhausted,
			FieldPoolSize.Field(s.pool.capacity()),
			FieldPoolInUse.Field(s.pool.inUse),
		)
		return ErrPoolExhausted
	}
	n.kind = nodeKindTask
	n.fn = fn
	n.arg = arg
	n.dtor = dtor

	if delay == 0 {
		s.ready.pushBack(n)
	} else {
		n.delayed = true
		n.expiration = s.now() + delay
		s.timers.insert(n)
	}
	s.guard.Exit()

	s.metrics.Counter(MetricPostDelayedTotal).Inc()
	s.reportGauges()
	return nil
}

// Cancel removes every ready or pending node whose Handler is fn and
// whose posted argument equals arg, running each one's Destructor (if
// any) against its argument before releasing it back to the pool. It
// reports how many nodes were cancelled. Cancelling a (handler, arg)
// pair with no pending match is not an error; it simply cancels zero
// nodes. Handlers are compared by code pointer, so closures created from
// one function literal, or method values of one method on different
// receivers, count as the same handler.
func (s *Scheduler) Cancel(fn Handler, arg any) int {
	fnPtr := handlerIdentity(fn)
	if fnPtr == 0 {
		return 0
	}

	matches := func(n *node) bool {
		return n.kind == nodeKindTask && handlerIdentity(n.fn) == fnPtr && argEquals(n.arg, arg)
	}

	var cancelled []*node

	s.guard.Enter()
	for n := s.ready.head; n != nil; {
		next := n.next
		if matches(n) {
			s.ready.remove(n)
			cancelled = append(cancelled, n)
		}
		n = next
	}
	for n := s.timers.head; n != nil; {
		next := n.next
		if matches(n) {
			s.timers.remove(n)
			cancelled = append(cancelled, n)
		}
		n = next
	}
	s.guard.Exit()

	for _, n := range cancelled {
		if n.dtor != nil {
			n.dtor(n.arg)
		}
		s.guard.Enter()
		ok := s.pool.release(n)
		s.guard.Exit()
		if !ok {
			capitan.Error(context.Background(), SignalInvalidFree)
		}
	}

	if len(cancelled) > 0 {
		s.metrics.Counter(MetricCancelsTotal).Add(float64(len(cancelled)))
		capitan.Info(context.Background(), SignalTaskCancelled,
			FieldCount.Field(len(cancelled)),
		)
		s.reportGauges()
	}
	return len(cancelled)
}

// Emit posts an event emission: every subscriber of id runs
// synchronously, during the next Run's drain of the ready queue, with arg.
// Subscribers run in subscription order; one subscriber's error does
// not stop the others.
func (s *Scheduler) Emit(id EventID, arg any) error {
	return s.EmitManaged(id, arg, nil)
}

// EmitManaged is Emit with an owned argument: if the node pool is
// exhausted and the emission can never be scheduled, dtor runs
// synchronously and immediately against arg instead of being silently
// dropped, so the caller's resource is never leaked.
func (s *Scheduler) EmitManaged(id EventID, arg any, dtor Destructor) error {
	s.guard.Enter()
	n := s.pool.alloc()
	if n == nil {
		s.guard.Exit()
		s.metrics.Counter(MetricPoolExhaustedTotal).Inc()
		capitan.Warn(context.Background(), SignalPoolExhausted,
			FieldPoolSize.Field(s.pool.capacity()),
			FieldPoolInUse.Field(s.pool.inUse),
		)
		if dtor != nil {
			dtor(arg)
		}
		return ErrPoolExhausted
	}
	n.kind = nodeKindEvent
	n.eventID = id
	n.bus = s.bus
	n.arg = arg
	n.dtor = dtor
	s.ready.pushBack(n)
	s.guard.Exit()
	s.reportGauges()
	return nil
}

// Run detaches the entire ready queue into a private list under the
// guard (after promoting any timer-queue nodes whose expiration has
// arrived) and executes it to completion, in FIFO order. A handler that
// itself calls Post/PostDelayed/Emit during Run lands its new node on
// the now-empty live ready queue, never on the private list already
// being walked — such work always waits for a subsequent Run, exactly
// as uloop.c's `task_to_run = ready_head; ready_head = NULL` detach
// does.
//
// Run returns how many ticks may safely elapse before the next Run is
// required: 0 if new work landed on the ready queue during this Run (it
// must run immediately), 0 if the earliest pending timer has already
// expired, the clamped distance to that timer's expiration otherwise,
// or SleepIndefinite if no timer is pending at all.
func (s *Scheduler) Run(ctx context.Context) Tick {
	ctx, span := s.tracer.StartSpan(ctx, tracez.Key("scheduler.run"))
	defer span.Finish()

	if s.sealed.CompareAndSwap(false, true) {
		s.bus.seal()
	}

	s.guard.Enter()
	now := s.now()
	expired := s.timers.popExpired(now)
	for _, n := range expired {
		n.delayed = false
		s.ready.pushBack(n)
	}
	toRun := s.ready.detach()
	s.guard.Exit()

	for n := toRun; n != nil; {
		next := n.next
		n.next = nil
		s.execute(ctx, n)
		n = next
	}

	s.metrics.Counter(MetricRunsTotal).Inc()
	capitan.Info(ctx, SignalRunCompleted, FieldTick.Field(int(now)))

	s.guard.Enter()
	readyPending := !s.ready.empty()
	next, ok := s.timers.nextExpiration()
	current := s.now()
	s.guard.Exit()
	s.reportGauges()

	if readyPending {
		return 0
	}
	if !ok {
		return SleepIndefinite
	}
	diff := int32(next - current)
	if diff < 0 {
		diff = 0
	}
	return Tick(diff)
}

// execute runs a single node to completion and returns it to the pool.
// Node execution never holds the guard: handlers are free to call
// Post/PostDelayed/Cancel/Emit themselves without deadlocking.
func (s *Scheduler) execute(ctx context.Context, n *node) {
	defer func() {
		if r := recover(); r != nil {
			capitan.Error(ctx, SignalHandlerPanic, FieldError.Field(fmtPanic(r)))
		}
		if n.dtor != nil {
			n.dtor(n.arg)
		}
		s.guard.Enter()
		ok := s.pool.release(n)
		s.guard.Exit()
		if !ok {
			capitan.Error(ctx, SignalInvalidFree)
		}
	}()

	switch n.kind {
	case nodeKindTask:
		n.fn(ctx, n.arg)
	case nodeKindEvent:
		if err := n.bus.emit(ctx, n.eventID, n.arg); err != nil {
			s.metrics.Counter(MetricEventsDroppedTotal).Inc()
		} else {
			s.metrics.Counter(MetricEventsEmittedTotal).Inc()
		}
	}

	s.metrics.Counter(MetricNodesExecutedTotal).Inc()
}

// reportGauges snapshots pool/queue occupancy under the guard and
// publishes it to metricz. Called after every operation that changes
// occupancy, since none of those paths are hot enough for the snapshot
// cost to matter on the targets this scheduler is built for.
func (s *Scheduler) reportGauges() {
	s.guard.Enter()
	inUse := s.pool.inUse
	readyDepth := s.ready.len()
	timerDepth := s.timers.len()
	s.guard.Exit()

	s.metrics.Gauge(MetricPoolInUse).Set(float64(inUse))
	s.metrics.Gauge(MetricReadyQueueDepth).Set(float64(readyDepth))
	s.metrics.Gauge(MetricTimerQueueDepth).Set(float64(timerDepth))
}
