// Package tickz provides a cooperative, interrupt-tolerant event-loop
// scheduler for resource-constrained targets: a fixed-capacity node pool,
// a deferred-task scheduler (ready queue + timer queue) driven by a
// monotonic tick counter, a statically-bound event bus, and a timeline
// driver that replays a scripted sequence of steps.
//
// # Core Concepts
//
//   - Scheduler: owns the node pool, the ready queue, and the timer queue.
//     Tick advances the clock; Run drains ready work and promotes expired
//     timers; Post/PostDelayed/Cancel manage individual tasks.
//   - EventBus: a compile-time-stable table of (event id -> handler)
//     subscriptions. Emit/EmitManaged fan an event out to every matching
//     handler synchronously, in subscription order.
//   - Timeline: a static table of (offset, handler, arg) steps replayed by
//     the Scheduler, optionally cycling.
//
// # Concurrency
//
// Exactly one goroutine (or interrupt context) ever executes handler code
// at a time; handlers run to completion without preemption. Tick, Post,
// PostDelayed, Cancel, Emit, and EmitManaged may be called from any
// context (including a simulated ISR) because every mutation of shared
// state is guarded by a Guard (the critical-section host hook).
//
// # Usage Example
//
//	sched := tickz.New()
//	sched.Subscribe(1, func(_ context.Context, arg any) error {
//	    fmt.Println("event 1:", arg)
//	    return nil
//	})
//
//	_ = sched.Post(func(_ context.Context, arg any) { fmt.Println("hi") }, nil, nil)
//	sched.Tick()
//	sleep := sched.Run(context.Background())
//	_ = sleep
package tickz
