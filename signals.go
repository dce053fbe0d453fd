package tickz

import "github.com/zoobzio/capitan"

// Signal constants for tickz events. Signals follow the pattern
// <component>.<event>, mirroring pipz's signals.go.
const (
	// Scheduler signals.
	SignalPoolExhausted  capitan.Signal = "scheduler.pool_exhausted"
	SignalNullHandler    capitan.Signal = "scheduler.null_handler"
	SignalInvalidFree    capitan.Signal = "scheduler.invalid_free"
	SignalTaskCancelled  capitan.Signal = "scheduler.task_cancelled"
	SignalHandlerPanic   capitan.Signal = "scheduler.handler_panic"
	SignalRunCompleted   capitan.Signal = "scheduler.run_completed"
	SignalEventTableSeal capitan.Signal = "scheduler.event_table_sealed"

	// EventBus signals.
	SignalEventEmitted       capitan.Signal = "eventbus.emitted"
	SignalEventDropped       capitan.Signal = "eventbus.dropped"
	SignalEventSubscribeLate capitan.Signal = "eventbus.subscribe_after_seal"

	// Timeline signals.
	SignalTimelineStarted  capitan.Signal = "timeline.started"
	SignalTimelineStopped  capitan.Signal = "timeline.stopped"
	SignalTimelineReset    capitan.Signal = "timeline.reset"
	SignalTimelineStepFire capitan.Signal = "timeline.step_fired"
	SignalTimelineCycled   capitan.Signal = "timeline.cycled"
	SignalTimelineFinished capitan.Signal = "timeline.finished"

	// Runner signals.
	SignalRunnerStarted capitan.Signal = "runner.started"
	SignalRunnerStopped capitan.Signal = "runner.stopped"
)

// Common field keys using capitan primitive types, mirroring pipz's
// signals.go field-key block.
var (
	FieldName       = capitan.NewStringKey("name")
	FieldHandler    = capitan.NewStringKey("handler")
	FieldError      = capitan.NewStringKey("error")
	FieldTick       = capitan.NewIntKey("tick")
	FieldDelay      = capitan.NewIntKey("delay")
	FieldEventID    = capitan.NewIntKey("event_id")
	FieldPoolSize   = capitan.NewIntKey("pool_size")
	FieldPoolInUse  = capitan.NewIntKey("pool_in_use")
	FieldCount      = capitan.NewIntKey("count")
	FieldStepIndex  = capitan.NewIntKey("step_index")
	FieldCycleTicks = capitan.NewIntKey("cycle_ticks")
)
