package tickz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runTicks(sched *Scheduler, n int) {
	ctx := context.Background()
	for i := 0; i < n; i++ {
		sched.Tick()
		sched.Run(ctx)
	}
}

func TestTimelineFiresStepsAtOffsets(t *testing.T) {
	sched := New(WithPoolCapacity(8))
	var fired []Tick

	tl := NewTimeline(sched, []Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) { fired = append(fired, sched.now()) }},
		{Offset: 10, Handler: func(_ context.Context, _ any) { fired = append(fired, sched.now()) }},
		{Offset: 25, Handler: func(_ context.Context, _ any) { fired = append(fired, sched.now()) }},
	})
	tl.Start()

	runTicks(sched, 26)
	require.Len(t, fired, 3)
	base := fired[0]
	assert.Equal(t, Tick(0), fired[0]-base)
	assert.Equal(t, Tick(10), fired[1]-base)
	assert.Equal(t, Tick(25), fired[2]-base)
	assert.False(t, tl.running)
}

func TestTimelineNonCyclingStopsAfterLastStep(t *testing.T) {
	sched := New()
	count := 0

	tl := NewTimeline(sched, []Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) { count++ }},
	})
	tl.Start()

	runTicks(sched, 5)
	assert.Equal(t, 1, count)
	assert.False(t, tl.running)
}

func TestTimelineCycles(t *testing.T) {
	sched := New(WithPoolCapacity(8))
	var fired []Tick

	tl := NewTimeline(sched, []Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) { fired = append(fired, sched.now()) }},
		{Offset: 10, Handler: func(_ context.Context, _ any) { fired = append(fired, sched.now()) }},
	})
	tl.CycleTicks = 25
	tl.Start()

	runTicks(sched, 61)

	require.True(t, len(fired) >= 5)
	base := fired[0]
	assert.Equal(t, Tick(0), fired[0]-base)
	assert.Equal(t, Tick(10), fired[1]-base)
	assert.Equal(t, Tick(25), fired[2]-base)
	assert.Equal(t, Tick(35), fired[3]-base)
	assert.Equal(t, Tick(50), fired[4]-base)
}

func TestTimelineStartIsNoOpWhileRunning(t *testing.T) {
	sched := New()
	calls := 0
	tl := NewTimeline(sched, []Step{
		{Offset: 5, Handler: func(_ context.Context, _ any) { calls++ }},
	})
	tl.Start()
	tl.Start() // second call must be a no-op, not re-arm from index 0

	runTicks(sched, 5)
	assert.Equal(t, 1, calls)
}

func TestTimelineStopPreventsFurtherSteps(t *testing.T) {
	sched := New(WithPoolCapacity(8))
	var fired []int

	tl := NewTimeline(sched, []Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) { fired = append(fired, 0) }},
		{Offset: 10, Handler: func(_ context.Context, _ any) { fired = append(fired, 10) }},
	})
	tl.Start()

	sched.Tick()
	sched.Run(context.Background())
	tl.Stop()

	runTicks(sched, 20)
	assert.Equal(t, []int{0}, fired)
}

func TestTimelineResetRewindsToFirstStep(t *testing.T) {
	sched := New(WithPoolCapacity(8))
	tl := NewTimeline(sched, []Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) {}},
		{Offset: 10, Handler: func(_ context.Context, _ any) {}},
	})
	tl.Start()
	runTicks(sched, 1)
	assert.Equal(t, 1, tl.currentIndex)

	tl.Reset()
	assert.Equal(t, 0, tl.currentIndex)
	assert.False(t, tl.running)
}

func TestTimelineEmptyStepsNeverStarts(t *testing.T) {
	sched := New()
	tl := NewTimeline(sched, nil)
	tl.Start()
	assert.False(t, tl.running)
}
