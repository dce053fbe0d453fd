package tickz

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Step is one entry of a Timeline: Handler fires at Offset ticks after
// the timeline's start (or after the previous cycle's start, once
// cycling), with Arg passed through unchanged.
type Step struct {
	Offset  Tick
	Handler Handler
	Arg     any
}

// Timeline replays a fixed table of Steps against a Scheduler, each one
// scheduled relative to the one before it via PostDelayed on the
// Scheduler it was built with. Steps must be sorted by ascending
// Offset; Timeline does not sort them.
type Timeline struct {
	sched *Scheduler
	steps []Step

	// CycleTicks, if greater than zero, restarts the timeline CycleTicks
	// ticks after it started, instead of stopping once the last Step
	// fires. A CycleTicks no greater than the last Step's Offset is
	// clamped: the next cycle begins immediately after the last Step,
	// and its first Step fires steps[0].Offset ticks later.
	CycleTicks Tick

	running      bool
	currentIndex int
}

// NewTimeline builds a Timeline over steps, bound to sched. steps is not
// copied; callers should not mutate it after passing it in.
func NewTimeline(sched *Scheduler, steps []Step) *Timeline {
	return &Timeline{sched: sched, steps: steps}
}

// Start begins the timeline. It is a no-op if already running or if
// there are no steps at all.
func (t *Timeline) Start() {
	if t.running || len(t.steps) == 0 {
		return
	}
	t.running = true
	t.currentIndex = 0

	capitan.Info(context.Background(), SignalTimelineStarted, FieldCount.Field(len(t.steps)))
	_ = t.sched.PostDelayed(t.fire, t.steps[0].Offset, nil, nil)
}

// Stop halts the timeline without resetting its position: currentIndex
// is left wherever it was. A subsequent Start begins again from the
// first step.
func (t *Timeline) Stop() {
	t.running = false
	capitan.Info(context.Background(), SignalTimelineStopped)
}

// Reset stops the timeline and rewinds it to the first step.
func (t *Timeline) Reset() {
	t.running = false
	t.currentIndex = 0
	capitan.Info(context.Background(), SignalTimelineReset)
}

// fire is the PostDelayed callback that advances the timeline by one
// step and arms the next one, mirroring _timeline_process_callback's
// run-then-reschedule structure exactly, including its two distinct
// "distance to next delay is zero" cases (a step whose offset is below
// the previous step's, and a cycle window no longer than the last step's
// offset).
func (t *Timeline) fire(ctx context.Context, _ any) {
	if !t.running {
		return
	}
	if t.currentIndex >= len(t.steps) {
		t.running = false
		return
	}

	current := t.steps[t.currentIndex]
	if current.Handler != nil {
		current.Handler(ctx, current.Arg)
	}
	t.sched.metrics.Counter(MetricTimelineStepsFiredTotal).Inc()
	capitan.Info(ctx, SignalTimelineStepFire, FieldStepIndex.Field(t.currentIndex))

	t.currentIndex++

	var nextDelay Tick
	needPost := false

	switch {
	case t.currentIndex < len(t.steps):
		next := t.steps[t.currentIndex]
		if next.Offset >= current.Offset {
			nextDelay = next.Offset - current.Offset
		}
		needPost = true

	case t.CycleTicks > 0:
		if t.CycleTicks > current.Offset {
			nextDelay = t.CycleTicks - current.Offset
		}
		if t.steps[0].Offset > 0 {
			nextDelay += t.steps[0].Offset
		}
		t.currentIndex = 0
		needPost = true
		t.sched.metrics.Counter(MetricTimelineCyclesTotal).Inc()
		capitan.Info(ctx, SignalTimelineCycled, FieldCycleTicks.Field(int(t.CycleTicks)))

	default:
		t.running = false
		t.currentIndex = 0
		capitan.Info(ctx, SignalTimelineFinished)
	}

	if needPost && t.running {
		_ = t.sched.PostDelayed(t.fire, nextDelay, nil, nil)
	}
}
