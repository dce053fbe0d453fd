package tickz

import "errors"

// Sentinel errors returned by Scheduler and EventBus operations.
var (
	// ErrPoolExhausted is returned when the node pool has no free nodes
	// to satisfy an allocation (Post, PostDelayed, EmitManaged).
	ErrPoolExhausted = errors.New("tickz: node pool exhausted")

	// ErrNullHandler is returned by Post/PostDelayed when handler is nil.
	// No node is allocated.
	ErrNullHandler = errors.New("tickz: handler is nil")

	// ErrEventTableSealed is returned by Subscribe once the EventBus has
	// been sealed by the first call to Scheduler.Run.
	ErrEventTableSealed = errors.New("tickz: event table is sealed")

	// ErrRunnerAlreadyRunning is returned by Runner.Start when the runner
	// is already driving the scheduler.
	ErrRunnerAlreadyRunning = errors.New("tickz: runner is already running")

	// ErrRunnerNotRunning is returned by Runner.Stop when the runner was
	// never started or has already stopped.
	ErrRunnerNotRunning = errors.New("tickz: runner is not running")
)
