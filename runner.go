package tickz

import (
	"context"
	"sync"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Runner hosts a Scheduler's Tick/Run cycle on a real or simulated
// clock, standing in for the hardware timer interrupt and super-loop a
// bare-metal target would use to drive the same Scheduler. It exists so
// a hosted Go program doesn't have to hand-roll its own ticking
// goroutine; a program that wants full control over when Tick/Run fire
// can ignore Runner entirely and call them directly.
type Runner struct {
	sched    *Scheduler
	clock    clockz.Clock
	interval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRunner builds a Runner that ticks sched once per interval using
// clock. A nil clock falls back to sched.Clock() (itself defaulting to
// clockz.RealClock unless the Scheduler was built with WithClock).
func NewRunner(sched *Scheduler, interval time.Duration, clock clockz.Clock) *Runner {
	if clock == nil {
		clock = sched.Clock()
	}
	if clock == nil {
		clock = clockz.RealClock
	}
	return &Runner{sched: sched, clock: clock, interval: interval}
}

// Start launches the tick/run loop in a background goroutine and
// returns immediately. It fails with ErrRunnerAlreadyRunning if the
// Runner is already started.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return ErrRunnerAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})
	r.running = true

	capitan.Info(ctx, SignalRunnerStarted, FieldDelay.Field(int(r.interval.Milliseconds())))
	go r.loop(runCtx)
	return nil
}

// Stop signals the loop to exit and waits for it to finish. It fails
// with ErrRunnerNotRunning if the Runner was never started or already
// stopped.
func (r *Runner) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return ErrRunnerNotRunning
	}
	cancel := r.cancel
	done := r.done
	r.running = false
	r.mu.Unlock()

	cancel()
	<-done
	capitan.Info(context.Background(), SignalRunnerStopped)
	return nil
}

// loop is the goroutine body: tick on a fixed cadence, run the
// scheduler, and sleep no longer than either the configured interval or
// the next timer expiration the Scheduler reports, whichever is
// sooner. A zero sleep hint still waits one full interval.
func (r *Runner) loop(ctx context.Context) {
	defer close(r.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		r.sched.Tick()
		next := r.sched.Run(ctx)

		sleep := r.interval
		if next != SleepIndefinite {
			now := r.sched.now()
			if remaining := tickToDuration(now+next, now, r.interval); remaining < sleep {
				sleep = remaining
			}
		}
		if sleep <= 0 {
			sleep = r.interval
		}

		select {
		case <-ctx.Done():
			return
		case <-r.clock.After(sleep):
		}
	}
}

// tickToDuration approximates the wall-clock delay until target ticks
// elapse, given the current tick and the duration of one tick.
func tickToDuration(target, now Tick, tickDuration time.Duration) time.Duration {
	delta := int32(target - now)
	if delta <= 0 {
		return 0
	}
	return time.Duration(delta) * tickDuration
}
