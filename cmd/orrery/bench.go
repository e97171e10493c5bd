package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Step a system as fast as possible and report tick timings",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().Duration("duration", 10*time.Second, "how long to run")
	benchCmd.Flags().Int("extra-bodies", 10000, "moons added around random bodies of the system")
	benchCmd.Flags().Bool("gc-pause-metrics", false, "include GC pause totals in the report")

	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	extra, _ := cmd.Flags().GetInt("extra-bodies")
	gcPause, _ := cmd.Flags().GetBool("gc-pause-metrics")
	logger := newLogger(os.Stderr)

	ref := viper.GetString("system")
	sys, err := config.LoadSystem(ref)
	if err != nil {
		return fmt.Errorf("loading system %q: %w", ref, err)
	}

	logger.Printf("adding %d bodies to %q...", extra, sys.Name)
	sys = withExtraBodies(sys, extra)

	world, err := orbit.NewWorld(sys)
	if err != nil {
		return err
	}

	scheduler := sim.NewScheduler()
	orbit.Register(scheduler, world)

	report := &Report{
		System:         sys.Name,
		Duration:       duration,
		Bodies:         world.BodyCount(),
		Cameras:        world.CameraCount(),
		GCPauseMetrics: gcPause,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Printf("running for %s...", duration)
	ctx, cancel := context.WithTimeout(cmd.Context(), duration)
	defer cancel()

	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			scheduler.Once(0)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(scheduler.Ticks())
	report.UpdateTime.Finalize()
	report.Systems = scheduler.GetStats().Systems
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Println("bench finished")
	return report.Generate(cmd.OutOrStdout())
}

// withExtraBodies returns a copy of sys with n small moons, each orbiting a
// body declared before it, so the copy stays parents-first.
func withExtraBodies(sys *config.System, n int) *config.System {
	out := *sys
	out.Bodies = make([]config.BodySpec, len(sys.Bodies), len(sys.Bodies)+n)
	copy(out.Bodies, sys.Bodies)

	rng := rand.New(rand.NewPCG(sys.Seed, uint64(n)))
	for i := range n {
		parent := out.Bodies[rng.IntN(len(out.Bodies))]
		out.Bodies = append(out.Bodies, config.BodySpec{
			Name:            fmt.Sprintf("rock-%d", i),
			Parent:          parent.Name,
			OrbitRadius:     1 + rng.Float64()*20,
			AngularVelocity: (rng.Float64() - 0.5) * 0.1,
			RotationSpeed:   rng.Float64() * 0.05,
			RandomTheta:     true,
			Radius:          0.5,
		})
	}
	return &out
}
