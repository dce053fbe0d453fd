package tickz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zoobzio/clockz"
)

func TestResolveConfigDefaults(t *testing.T) {
	cfg := resolveConfig(nil)
	assert.Equal(t, defaultPoolCapacity, cfg.poolCapacity)
	assert.NotNil(t, cfg.guard)
	assert.NotNil(t, cfg.bus)
	assert.Equal(t, clockz.RealClock, cfg.clock)
}

func TestWithPoolCapacityIgnoresNonPositive(t *testing.T) {
	cfg := resolveConfig([]Option{WithPoolCapacity(0), WithPoolCapacity(-5)})
	assert.Equal(t, defaultPoolCapacity, cfg.poolCapacity)

	cfg = resolveConfig([]Option{WithPoolCapacity(10)})
	assert.Equal(t, 10, cfg.poolCapacity)
}

func TestWithGuardIgnoresNil(t *testing.T) {
	cfg := resolveConfig([]Option{WithGuard(nil)})
	assert.NotNil(t, cfg.guard)

	g := NewMutexGuard()
	cfg = resolveConfig([]Option{WithGuard(g)})
	assert.Same(t, g, cfg.guard)
}

func TestWithEventBusIgnoresNil(t *testing.T) {
	cfg := resolveConfig([]Option{WithEventBus(nil)})
	assert.NotNil(t, cfg.bus)

	bus := NewEventBus()
	cfg = resolveConfig([]Option{WithEventBus(bus)})
	assert.Same(t, bus, cfg.bus)
}

func TestNilOptionIsSkipped(t *testing.T) {
	cfg := resolveConfig([]Option{nil, WithPoolCapacity(3)})
	assert.Equal(t, 3, cfg.poolCapacity)
}
