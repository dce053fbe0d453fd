// Command tickzdemo drives a tickz.Scheduler through a small scripted
// scenario: a few immediate and delayed tasks, an event with two
// subscribers, and a short cycling timeline, printing what fires on
// each manual tick.
package main

import (
	"context"
	"fmt"

	"github.com/zoobzio/tickz"
)

const (
	eventSensorTripped tickz.EventID = 1
)

func main() {
	sched := tickz.New(tickz.WithPoolCapacity(16))

	_ = sched.Subscribe(eventSensorTripped, func(_ context.Context, arg any) error {
		fmt.Println("alarm: sensor tripped ->", arg)
		return nil
	})
	_ = sched.Subscribe(eventSensorTripped, func(_ context.Context, arg any) error {
		fmt.Println("log: sensor event recorded ->", arg)
		return nil
	})

	_ = sched.Post(func(_ context.Context, arg any) {
		fmt.Println("immediate task:", arg)
	}, "startup", nil)

	_ = sched.PostDelayed(func(_ context.Context, arg any) {
		fmt.Println("delayed task:", arg)
	}, 5, "warmup-complete", nil)

	timeline := tickz.NewTimeline(sched, []tickz.Step{
		{Offset: 0, Handler: func(_ context.Context, _ any) { fmt.Println("timeline: step 0") }},
		{Offset: 10, Handler: func(_ context.Context, _ any) { fmt.Println("timeline: step 1") }},
		{Offset: 25, Handler: func(_ context.Context, _ any) { fmt.Println("timeline: step 2") }},
	})
	timeline.CycleTicks = 50
	timeline.Start()

	ctx := context.Background()
	for t := tickz.Tick(0); t < 60; t++ {
		sched.Tick()
		sched.Run(ctx)

		if t == 3 {
			_ = sched.Emit(eventSensorTripped, "zone-7")
			sched.Run(ctx)
		}
	}
}
