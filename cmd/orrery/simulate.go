package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Step a system without a window and print body positions",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntP("frames", "n", 600, "number of frames to simulate")
	simulateCmd.Flags().Uint64("every", 60, "print every Nth frame")
	simulateCmd.Flags().Bool("json", false, "print JSON lines instead of a table")

	_ = viper.BindPFlag("frames", simulateCmd.Flags().Lookup("frames"))

	rootCmd.AddCommand(simulateCmd)
}

// samplerSystem hands the world's state to a writer every Every ticks.
type samplerSystem struct {
	World  *orbit.World
	Every  uint64
	Writer sampleWriter
	Err    error
}

func (s *samplerSystem) Execute(frame *sim.Frame) {
	if s.Err != nil || s.Every == 0 || frame.Tick%s.Every != 0 {
		return
	}
	s.Err = s.Writer.Write(sampleWorld(frame.Tick, s.World))
}

func runSimulate(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	every, _ := cmd.Flags().GetUint64("every")
	asJSON, _ := cmd.Flags().GetBool("json")

	_, world, err := loadWorld(settings.System)
	if err != nil {
		return err
	}

	var writer sampleWriter = &tableWriter{out: os.Stdout}
	if asJSON {
		writer = newJSONWriter(os.Stdout)
	}

	if err := simulate(world, settings.Frames, every, writer); err != nil {
		return err
	}
	if settings.Verbose {
		newLogger(os.Stderr).Printf("simulated %d frames", settings.Frames)
	}

	if !asJSON {
		fmt.Println(camerasTable(world))
	}
	return nil
}

// simulate runs frames ticks of w, sampling the initial state and every Nth
// frame after it.
func simulate(w *orbit.World, frames int, every uint64, writer sampleWriter) error {
	if err := writer.Write(sampleWorld(0, w)); err != nil {
		return err
	}

	scheduler := sim.NewScheduler()
	orbit.Register(scheduler, w)
	sampler := &samplerSystem{World: w, Every: every, Writer: writer}
	scheduler.Register(sampler)

	for range frames {
		scheduler.Once(0)
		if sampler.Err != nil {
			return sampler.Err
		}
	}
	return writer.Flush()
}
