package tickz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/tickz/tickztest"
)

func TestEventBusSubscribeAndEmit(t *testing.T) {
	bus := NewEventBus()
	h := tickztest.NewMockEventHandler("h")

	require.NoError(t, bus.Subscribe(1, h.Handle))
	assert.Equal(t, 1, bus.listenerCount(1))
	assert.Equal(t, 0, bus.listenerCount(2))

	bus.emit(context.Background(), 1, "payload")
	tickztest.AssertEventCalled(t, h, 1)
	assert.Equal(t, "payload", h.History()[0].Arg)
}

func TestEventBusSealedRejectsSubscribe(t *testing.T) {
	bus := NewEventBus()
	bus.seal()

	h := tickztest.NewMockEventHandler("h")
	err := bus.Subscribe(1, h.Handle)
	assert.ErrorIs(t, err, ErrEventTableSealed)
}

func TestSchedulerSealsBusOnFirstRun(t *testing.T) {
	sched := New()
	sched.Run(context.Background())

	h := tickztest.NewMockEventHandler("h")
	err := sched.Subscribe(1, h.Handle)
	assert.ErrorIs(t, err, ErrEventTableSealed)
}

func TestEventBusSubscriberErrorDoesNotStopOthers(t *testing.T) {
	bus := NewEventBus()
	var calledSecond bool

	require.NoError(t, bus.Subscribe(1, func(_ context.Context, _ any) error {
		return assert.AnError
	}))
	require.NoError(t, bus.Subscribe(1, func(_ context.Context, _ any) error {
		calledSecond = true
		return nil
	}))

	bus.emit(context.Background(), 1, nil)
	assert.True(t, calledSecond)
}
