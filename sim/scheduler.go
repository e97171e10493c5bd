package sim

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyRunning is returned by Start when the loop is already running.
var ErrAlreadyRunning = errors.New("scheduler already running")

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TickCount       uint64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Observer receives timings as the scheduler executes ticks.
type Observer interface {
	ObserveSystem(name string, d time.Duration)
	ObserveTick(tick uint64, d time.Duration)
}

// Scheduler manages and executes systems in order.
//
// A tick runs every registered system once, then flushes the commands the
// systems deferred. Ticks are driven either synchronously with Once or by the
// loop started with Run or Start; the loop is the only goroutine that touches
// the systems while it runs.
type Scheduler struct {
	systems     []System
	observers   []Observer
	frame       Frame
	ticks       atomic.Uint64
	paused      atomic.Bool
	statsMu     sync.RWMutex
	systemStats []*systemStatsInternal

	loopMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewScheduler creates a new scheduler with no systems.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems: make([]System, 0),
		frame:   newFrame(),
	}
}

// Register adds a system to the end of the execution order.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Observe adds an observer that is told about every system execution and tick.
func (s *Scheduler) Observe(observer Observer) {
	s.observers = append(s.observers, observer)
}

// Once executes all registered systems once with the given delta time.
func (s *Scheduler) Once(dt float64) {
	tickStart := time.Now()
	tick := s.ticks.Add(1)

	s.frame.Tick = tick
	s.frame.DeltaTime = dt

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(&s.frame)
		duration := time.Since(start)

		s.record(i, duration)
		for _, o := range s.observers {
			o.ObserveSystem(s.systemStats[i].name, duration)
		}
	}

	s.frame.Commands.Flush()

	tickDuration := time.Since(tickStart)
	for _, o := range s.observers {
		o.ObserveTick(tick, tickDuration)
	}
}

func (s *Scheduler) record(i int, duration time.Duration) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats := s.systemStats[i]
	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Run executes all systems repeatedly at the given interval until the context
// is cancelled. Ticks are skipped while the scheduler is paused.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if s.paused.Load() {
				continue
			}
			s.Once(dt)
		}
	}
}

// Start runs the loop on its own goroutine until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context, interval time.Duration) error {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	if s.done != nil {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		s.Run(loopCtx, interval)
		cancel()
		s.release(done)
	}()
	return nil
}

// release forgets the loop identified by done, unless Stop or a newer Start
// already replaced it.
func (s *Scheduler) release(done chan struct{}) {
	s.loopMu.Lock()
	defer s.loopMu.Unlock()

	if s.done == done {
		s.cancel, s.done = nil, nil
	}
}

// Stop ends a loop started with Start and waits for it to exit. It is a no-op
// when no loop is running.
func (s *Scheduler) Stop() {
	s.loopMu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.loopMu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a loop started with Start is active.
func (s *Scheduler) Running() bool {
	s.loopMu.Lock()
	done := s.done
	s.loopMu.Unlock()

	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}

// Pause suspends or resumes ticking in Run. Once is unaffected.
func (s *Scheduler) Pause(paused bool) {
	s.paused.Store(paused)
}

// Paused reports whether the loop is paused.
func (s *Scheduler) Paused() bool {
	return s.paused.Load()
}

// Ticks returns the number of ticks executed so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks.Load()
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	s.statsMu.RLock()
	defer s.statsMu.RUnlock()

	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		TickCount:   s.ticks.Load(),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
