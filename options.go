package tickz

import "github.com/zoobzio/clockz"

const defaultPoolCapacity = 32

// config holds the resolved construction settings for a Scheduler.
type config struct {
	poolCapacity int
	guard        Guard
	bus          *EventBus
	clock        clockz.Clock
}

// Option configures a Scheduler at construction time.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithPoolCapacity sets the number of nodes available for concurrent
// Post/PostDelayed/EmitManaged calls. The default is 32. A capacity of
// zero or less is ignored.
func WithPoolCapacity(n int) Option {
	return optionFunc(func(cfg *config) {
		if n > 0 {
			cfg.poolCapacity = n
		}
	})
}

// WithGuard replaces the default MutexGuard with a caller-supplied
// critical-section implementation. Passing nil is ignored.
func WithGuard(g Guard) Option {
	return optionFunc(func(cfg *config) {
		if g != nil {
			cfg.guard = g
		}
	})
}

// WithEventBus replaces the Scheduler's default, freshly constructed
// EventBus with one the caller already holds a reference to (useful when
// subscribers need to register before the Scheduler itself exists).
// Passing nil is ignored.
func WithEventBus(bus *EventBus) Option {
	return optionFunc(func(cfg *config) {
		if bus != nil {
			cfg.bus = bus
		}
	})
}

// WithClock sets the clockz.Clock a Scheduler reports from Clock(),
// which NewRunner uses by default to pace real-time ticks when its own
// clock argument is nil. The Scheduler's own Tick/Run are clock-agnostic;
// this only sets the default a Runner built around it inherits.
func WithClock(clock clockz.Clock) Option {
	return optionFunc(func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	})
}

// resolveConfig applies opts over the documented defaults.
func resolveConfig(opts []Option) *config {
	cfg := &config{
		poolCapacity: defaultPoolCapacity,
		guard:        NewMutexGuard(),
		bus:          NewEventBus(),
		clock:        clockz.RealClock,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	return cfg
}
