package sim_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/plus3/orrery/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CounterSystem struct {
	ExecuteCount atomic.Int64
	LastTick     uint64
	LastDelta    float64
}

func (s *CounterSystem) Execute(frame *sim.Frame) {
	s.ExecuteCount.Add(1)
	s.LastTick = frame.Tick
	s.LastDelta = frame.DeltaTime
}

type orderSystem struct {
	name string
	log  *[]string
}

func (s *orderSystem) Execute(frame *sim.Frame) {
	*s.log = append(*s.log, s.name)
	frame.Commands.Defer(func() {
		*s.log = append(*s.log, "deferred:"+s.name)
	})
}

type nestingSystem struct {
	log *[]string
}

func (s *nestingSystem) Execute(frame *sim.Frame) {
	frame.Commands.Defer(func() {
		*s.log = append(*s.log, "outer")
		frame.Commands.Defer(func() {
			*s.log = append(*s.log, "nested")
		})
	})
}

type recordingObserver struct {
	systems []string
	ticks   []uint64
}

func (o *recordingObserver) ObserveSystem(name string, d time.Duration) {
	o.systems = append(o.systems, name)
}

func (o *recordingObserver) ObserveTick(tick uint64, d time.Duration) {
	o.ticks = append(o.ticks, tick)
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and deferred commands", func(t *testing.T) {
		var log []string
		scheduler := sim.NewScheduler()
		scheduler.Register(&orderSystem{name: "bodies", log: &log})
		scheduler.Register(&orderSystem{name: "cameras", log: &log})

		scheduler.Once(1.0)

		assert.Equal(t, []string{
			"bodies",
			"cameras",
			"deferred:bodies",
			"deferred:cameras",
		}, log)
	})

	t.Run("tick numbering and delta time", func(t *testing.T) {
		counter := &CounterSystem{}
		scheduler := sim.NewScheduler()
		scheduler.Register(counter)

		scheduler.Once(0.5)
		scheduler.Once(0.25)

		assert.Equal(t, int64(2), counter.ExecuteCount.Load())
		assert.Equal(t, uint64(2), counter.LastTick)
		assert.Equal(t, 0.25, counter.LastDelta)
		assert.Equal(t, uint64(2), scheduler.Ticks())
	})

	t.Run("observers see every system and tick", func(t *testing.T) {
		observer := &recordingObserver{}
		scheduler := sim.NewScheduler()
		scheduler.Register(&CounterSystem{})
		scheduler.Observe(observer)

		scheduler.Once(1)
		scheduler.Once(1)

		assert.Equal(t, []string{"CounterSystem", "CounterSystem"}, observer.systems)
		assert.Equal(t, []uint64{1, 2}, observer.ticks)
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		counter := &CounterSystem{}
		scheduler := sim.NewScheduler()
		scheduler.Register(counter)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if counter.ExecuteCount.Load() == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("start and stop", func(t *testing.T) {
		counter := &CounterSystem{}
		scheduler := sim.NewScheduler()
		scheduler.Register(counter)

		require.NoError(t, scheduler.Start(context.Background(), time.Millisecond))
		assert.True(t, scheduler.Running())
		assert.ErrorIs(t, scheduler.Start(context.Background(), time.Millisecond), sim.ErrAlreadyRunning)

		assert.Eventually(t, func() bool {
			return counter.ExecuteCount.Load() > 0
		}, time.Second, time.Millisecond)

		scheduler.Stop()
		assert.False(t, scheduler.Running())

		stopped := counter.ExecuteCount.Load()
		time.Sleep(5 * time.Millisecond)
		assert.Equal(t, stopped, counter.ExecuteCount.Load())

		scheduler.Stop()
		require.NoError(t, scheduler.Start(context.Background(), time.Millisecond))
		scheduler.Stop()
	})

	t.Run("commands deferred while flushing run in the same tick", func(t *testing.T) {
		var log []string
		scheduler := sim.NewScheduler()
		scheduler.Register(&nestingSystem{log: &log})

		scheduler.Once(1)
		assert.Equal(t, []string{"outer", "nested"}, log)

		scheduler.Once(1)
		assert.Equal(t, []string{"outer", "nested", "outer", "nested"}, log)
	})

	t.Run("restart after context cancellation", func(t *testing.T) {
		scheduler := sim.NewScheduler()
		scheduler.Register(&CounterSystem{})

		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, scheduler.Start(ctx, time.Millisecond))
		cancel()

		assert.Eventually(t, func() bool {
			return !scheduler.Running()
		}, time.Second, time.Millisecond)

		require.NoError(t, scheduler.Start(context.Background(), time.Millisecond))
		assert.True(t, scheduler.Running())
		scheduler.Stop()
		assert.False(t, scheduler.Running())
	})

	t.Run("pause suspends the loop but not once", func(t *testing.T) {
		counter := &CounterSystem{}
		scheduler := sim.NewScheduler()
		scheduler.Register(counter)
		scheduler.Pause(true)
		assert.True(t, scheduler.Paused())

		require.NoError(t, scheduler.Start(context.Background(), time.Millisecond))
		time.Sleep(10 * time.Millisecond)
		scheduler.Stop()
		assert.Equal(t, int64(0), counter.ExecuteCount.Load())

		scheduler.Once(1)
		assert.Equal(t, int64(1), counter.ExecuteCount.Load())
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := sim.NewScheduler()
		scheduler.Register(&CounterSystem{})

		stats := scheduler.GetStats()
		require.Len(t, stats.Systems, 1)
		assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

		for range 3 {
			scheduler.Once(1)
		}

		stats = scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, uint64(3), stats.TickCount)
		assert.Equal(t, int64(3), stats.TotalExecutions)
		assert.Equal(t, "CounterSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
		assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
	})
}
