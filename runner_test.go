package tickz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/tickz/tickztest"
)

func TestRunnerStartStopLifecycle(t *testing.T) {
	sched := New()
	r := NewRunner(sched, time.Millisecond, nil)

	require.NoError(t, r.Start(context.Background()))
	assert.ErrorIs(t, r.Start(context.Background()), ErrRunnerAlreadyRunning)

	require.NoError(t, r.Stop())
	assert.ErrorIs(t, r.Stop(), ErrRunnerNotRunning)
}

func TestRunnerDrivesScheduler(t *testing.T) {
	sched := New(WithPoolCapacity(8))
	h := tickztest.NewMockHandler("task")
	require.NoError(t, sched.Post(h.Handle, nil, nil))

	r := NewRunner(sched, time.Millisecond, nil)
	require.NoError(t, r.Start(context.Background()))

	deadline := time.After(time.Second)
	for h.CallCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("handler never ran")
		case <-time.After(time.Millisecond):
		}
	}

	require.NoError(t, r.Stop())
	tickztest.AssertCalled(t, h, 1)
}

func TestRunnerStopCancelsContext(t *testing.T) {
	sched := New()
	r := NewRunner(sched, 10*time.Millisecond, nil)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())

	// Stop must have returned only after the loop goroutine exited.
	assert.False(t, r.running)
	select {
	case <-r.done:
	default:
		t.Fatal("loop goroutine still running after Stop returned")
	}
}

func TestTickToDuration(t *testing.T) {
	assert.Equal(t, 5*time.Millisecond, tickToDuration(15, 10, time.Millisecond))
	assert.Equal(t, time.Duration(0), tickToDuration(10, 10, time.Millisecond))
	assert.Equal(t, time.Duration(0), tickToDuration(5, 10, time.Millisecond))
}
