package tickz

import "sync"

// Guard is the host collaborator the scheduler uses to protect shared
// state (the node pool, both queues, the tick counter) from concurrent
// mutation. On a real microcontroller target it maps to the
// enter_critical/exit_critical pair (disable/enable interrupts); on a
// hosted Go target it's backed by a mutex or, in tests, by a double that
// records entry/exit for assertions.
//
// Enter must block until exclusive access is held; Exit releases it.
// Implementations must support being entered from any goroutine,
// including one standing in for an ISR.
type Guard interface {
	Enter()
	Exit()
}

// MutexGuard is the default Guard for hosted (non-embedded) targets. It
// maps Enter/Exit onto sync.Mutex.Lock/Unlock, which is the correct
// stand-in for IRQ-disable on a single-core host: it serializes the main
// loop against any goroutine simulating an interrupt source.
type MutexGuard struct {
	mu sync.Mutex
}

// NewMutexGuard constructs a ready-to-use MutexGuard.
func NewMutexGuard() *MutexGuard {
	return &MutexGuard{}
}

// Enter implements Guard.
func (g *MutexGuard) Enter() { g.mu.Lock() }

// Exit implements Guard.
func (g *MutexGuard) Exit() { g.mu.Unlock() }

// NopGuard is a Guard that performs no synchronization at all. It is
// correct only when the caller guarantees Tick, Run, and the posting API
// are never invoked concurrently (e.g. a genuinely single-threaded
// embedded main loop with interrupts disabled for the whole program, or
// a single-goroutine test). Using it under real concurrency is a data
// race.
type NopGuard struct{}

// Enter implements Guard.
func (NopGuard) Enter() {}

// Exit implements Guard.
func (NopGuard) Exit() {}
