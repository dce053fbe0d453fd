package tickz

import "github.com/zoobzio/metricz"

// Metric keys for the Scheduler, mirroring pipz's per-connector metricz
// key blocks (e.g. backoff.go's BackoffAttemptsTotal/BackoffAttemptCurrent).
const (
	MetricPostsTotal         = metricz.Key("scheduler.posts.total")
	MetricPostDelayedTotal   = metricz.Key("scheduler.post_delayed.total")
	MetricCancelsTotal       = metricz.Key("scheduler.cancels.total")
	MetricPoolExhaustedTotal = metricz.Key("scheduler.pool_exhausted.total")
	MetricRunsTotal          = metricz.Key("scheduler.runs.total")
	MetricNodesExecutedTotal = metricz.Key("scheduler.nodes_executed.total")
	MetricPoolInUse          = metricz.Key("scheduler.pool_in_use")
	MetricReadyQueueDepth    = metricz.Key("scheduler.ready_queue.depth")
	MetricTimerQueueDepth    = metricz.Key("scheduler.timer_queue.depth")

	MetricEventsEmittedTotal = metricz.Key("eventbus.events_emitted.total")
	MetricEventsDroppedTotal = metricz.Key("eventbus.events_dropped.total")

	MetricTimelineStepsFiredTotal = metricz.Key("timeline.steps_fired.total")
	MetricTimelineCyclesTotal     = metricz.Key("timeline.cycles.total")
)

// newSchedulerMetrics registers the counters/gauges a Scheduler reports,
// mirroring NewBackoff's metricz.New() + Counter/Gauge registration block.
func newSchedulerMetrics() *metricz.Registry {
	m := metricz.New()
	m.Counter(MetricPostsTotal)
	m.Counter(MetricPostDelayedTotal)
	m.Counter(MetricCancelsTotal)
	m.Counter(MetricPoolExhaustedTotal)
	m.Counter(MetricRunsTotal)
	m.Counter(MetricNodesExecutedTotal)
	m.Gauge(MetricPoolInUse)
	m.Gauge(MetricReadyQueueDepth)
	m.Gauge(MetricTimerQueueDepth)
	m.Counter(MetricEventsEmittedTotal)
	m.Counter(MetricEventsDroppedTotal)
	m.Counter(MetricTimelineStepsFiredTotal)
	m.Counter(MetricTimelineCyclesTotal)
	return m
}
