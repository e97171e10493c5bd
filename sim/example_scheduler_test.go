package sim_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/orrery/sim"
)

type Clock struct {
	Elapsed float64
}

type ClockSystem struct {
	Clock *Clock
}

func (s *ClockSystem) Execute(frame *sim.Frame) {
	s.Clock.Elapsed += frame.DeltaTime
	frame.Commands.Defer(func() {
		fmt.Printf("tick %d: %.2fs\n", frame.Tick, s.Clock.Elapsed)
	})
}

// ExampleScheduler shows systems being ticked synchronously. Deferred commands
// run once every system of the tick has executed.
func ExampleScheduler() {
	clock := &Clock{}

	scheduler := sim.NewScheduler()
	scheduler.Register(&ClockSystem{Clock: clock})

	scheduler.Once(0.5)
	scheduler.Once(0.25)

	// Output:
	// tick 1: 0.50s
	// tick 2: 0.75s
}

// ExampleScheduler_Start runs the loop in the background until it is stopped.
func ExampleScheduler_Start() {
	scheduler := sim.NewScheduler()
	scheduler.Register(&ClockSystem{Clock: &Clock{}})
	scheduler.Pause(true)

	if err := scheduler.Start(context.Background(), 16*time.Millisecond); err != nil {
		panic(err)
	}
	time.Sleep(50 * time.Millisecond)
	scheduler.Stop()

	fmt.Println("running:", scheduler.Running())

	// Output:
	// running: false
}
