package tickz

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/hookz"
)

// Emission is the payload hookz delivers to EventBus subscribers.
type Emission struct {
	EventID EventID
	Arg     any
}

// EventBus is a statically-bound publish/subscribe table: every
// subscription must be registered before the owning Scheduler's first
// Run, after which the bus is sealed and Subscribe fails. This mirrors
// the embedded target's compile-time-fixed dispatch table, where
// subscriber lists can't grow once the event loop is live.
type EventBus struct {
	mu     sync.RWMutex
	hooks  *hookz.Hooks[Emission]
	sealed bool
}

// NewEventBus constructs an empty, unsealed EventBus.
func NewEventBus() *EventBus {
	return &EventBus{hooks: hookz.New[Emission]()}
}

// eventKey maps an EventID onto the hookz.Key namespace the bus hooks
// into internally.
func eventKey(id EventID) hookz.Key {
	return hookz.Key(fmt.Sprintf("tickz.event.%d", id))
}

// Subscribe registers fn to run, synchronously and in registration
// order among all subscribers of id, whenever id is emitted. It fails
// with ErrEventTableSealed once the bus has been sealed.
func (b *EventBus) Subscribe(id EventID, fn EventHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.sealed {
		capitan.Warn(context.Background(), SignalEventSubscribeLate,
			FieldEventID.Field(int(id)),
		)
		return ErrEventTableSealed
	}

	_, err := b.hooks.Hook(eventKey(id), func(ctx context.Context, e Emission) error {
		return fn(ctx, e.Arg)
	})
	return err
}

// seal closes the subscription table. Called once, by the owning
// Scheduler, on its first Run.
func (b *EventBus) seal() {
	b.mu.Lock()
	b.sealed = true
	b.mu.Unlock()
}

// listenerCount reports how many handlers are subscribed to id.
func (b *EventBus) listenerCount(id EventID) int {
	return b.hooks.ListenerCount(eventKey(id))
}

// emit synchronously fans Emission{id, arg} out to every subscriber of
// id, in subscription order. A subscriber's error is logged and
// reported to the caller (so the Scheduler can count the emission as
// dropped), but never stops the other subscribers from running.
func (b *EventBus) emit(ctx context.Context, id EventID, arg any) error {
	if err := b.hooks.Emit(ctx, eventKey(id), Emission{EventID: id, Arg: arg}); err != nil {
		capitan.Error(ctx, SignalEventDropped,
			FieldEventID.Field(int(id)),
			FieldError.Field(err.Error()),
		)
		return err
	}
	capitan.Info(ctx, SignalEventEmitted, FieldEventID.Field(int(id)))
	return nil
}

// close releases the bus's internal hookz resources. Called from
// Scheduler teardown, if any.
func (b *EventBus) close() {
	b.hooks.Close()
}
