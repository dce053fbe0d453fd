// Package tickztest provides test doubles and assertion helpers for
// code built on top of tickz: a call-recording Handler/EventHandler,
// and a Guard that records every Enter/Exit so tests can verify a
// Scheduler serializes access the way it claims to.
package tickztest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// Call records a single invocation of a MockHandler or MockEventHandler.
type Call struct {
	Arg       any
	Timestamp time.Time
}

// MockHandler is a configurable tickz.Handler test double. It records
// every call, optionally delays or panics, and exposes assertion
// helpers.
type MockHandler struct {
	name string

	mu        sync.Mutex
	history   []Call
	delay     time.Duration
	panicMsg  string
	callCount int64
}

// NewMockHandler constructs a MockHandler with the given diagnostic
// name (used only in assertion failure messages).
func NewMockHandler(name string) *MockHandler {
	return &MockHandler{name: name}
}

// WithDelay makes the handler block for d (respecting ctx cancellation)
// before returning.
func (m *MockHandler) WithDelay(d time.Duration) *MockHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// WithPanic makes the handler panic with msg on every call.
func (m *MockHandler) WithPanic(msg string) *MockHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicMsg = msg
	return m
}

// Handle is the tickz.Handler function; pass m.Handle to Post/PostDelayed.
func (m *MockHandler) Handle(ctx context.Context, arg any) {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.history = append(m.history, Call{Arg: arg, Timestamp: time.Now()})
	delay := m.delay
	panicMsg := m.panicMsg
	m.mu.Unlock()

	if panicMsg != "" {
		panic(panicMsg)
	}
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
		}
	}
}

// CallCount returns how many times Handle has run.
func (m *MockHandler) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// History returns a copy of every recorded call, in call order.
func (m *MockHandler) History() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.history))
	copy(out, m.history)
	return out
}

// MockEventHandler is a configurable tickz.EventHandler test double.
type MockEventHandler struct {
	name string

	mu        sync.Mutex
	history   []Call
	returnErr error
	callCount int64
}

// NewMockEventHandler constructs a MockEventHandler.
func NewMockEventHandler(name string) *MockEventHandler {
	return &MockEventHandler{name: name}
}

// WithReturn sets the error every subsequent Handle call returns.
func (m *MockEventHandler) WithReturn(err error) *MockEventHandler {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.returnErr = err
	return m
}

// Handle is the tickz.EventHandler function.
func (m *MockEventHandler) Handle(_ context.Context, arg any) error {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	m.history = append(m.history, Call{Arg: arg, Timestamp: time.Now()})
	err := m.returnErr
	m.mu.Unlock()

	return err
}

// CallCount returns how many times Handle has run.
func (m *MockEventHandler) CallCount() int {
	return int(atomic.LoadInt64(&m.callCount))
}

// History returns a copy of every recorded call, in call order.
func (m *MockEventHandler) History() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.history))
	copy(out, m.history)
	return out
}

// RecordingGuard is a tickz.Guard that counts every Enter and Exit, so
// a test can assert a Scheduler never leaves its critical section
// unbalanced (an Enter with no matching Exit). Nesting depth is tracked
// internally but not exposed, so nested entry is not reported.
type RecordingGuard struct {
	mu       sync.Mutex
	depth    int
	enters   int
	exits    int
	maxDepth int
}

// NewRecordingGuard constructs an empty RecordingGuard.
func NewRecordingGuard() *RecordingGuard {
	return &RecordingGuard{}
}

// Enter implements tickz.Guard.
func (g *RecordingGuard) Enter() {
	g.mu.Lock()
	g.depth++
	g.enters++
	if g.depth > g.maxDepth {
		g.maxDepth = g.depth
	}
	g.mu.Unlock()
}

// Exit implements tickz.Guard.
func (g *RecordingGuard) Exit() {
	g.mu.Lock()
	g.depth--
	g.exits++
	g.mu.Unlock()
}

// Balanced reports whether every Enter has a matching Exit and the
// section is not currently held.
func (g *RecordingGuard) Balanced() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.depth == 0 && g.enters == g.exits
}

// EnterCount returns the total number of Enter calls observed.
func (g *RecordingGuard) EnterCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enters
}

// AssertCalled verifies that a MockHandler was called exactly n times.
func AssertCalled(t *testing.T, m *MockHandler, n int) {
	t.Helper()
	if got := m.CallCount(); got != n {
		t.Errorf("expected handler %s to be called %d times, got %d", m.name, n, got)
	}
}

// AssertEventCalled verifies that a MockEventHandler was called exactly
// n times.
func AssertEventCalled(t *testing.T, m *MockEventHandler, n int) {
	t.Helper()
	if got := m.CallCount(); got != n {
		t.Errorf("expected event handler %s to be called %d times, got %d", m.name, n, got)
	}
}
