package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/debugui"
	debugui_ebiten "github.com/plus3/orrery/debugui/ebiten"
	"github.com/plus3/orrery/metrics"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/view"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Animate a system in a window",
	RunE:  runWindow,
}

func init() {
	runCmd.Flags().Int("fps", 60, "ticks per second")
	runCmd.Flags().Int("width", 1280, "window width")
	runCmd.Flags().Int("height", 720, "window height")
	runCmd.Flags().String("camera", "main", "camera to start with")
	runCmd.Flags().Bool("debug-ui", false, "show the Dear ImGui overlay")
	runCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address")
	runCmd.Flags().Int("frames", 0, "quit after this many frames (0 runs until closed)")

	_ = viper.BindPFlag("fps", runCmd.Flags().Lookup("fps"))
	_ = viper.BindPFlag("width", runCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("height", runCmd.Flags().Lookup("height"))
	_ = viper.BindPFlag("camera", runCmd.Flags().Lookup("camera"))
	_ = viper.BindPFlag("debug_ui", runCmd.Flags().Lookup("debug-ui"))
	_ = viper.BindPFlag("metrics_addr", runCmd.Flags().Lookup("metrics-addr"))
	_ = viper.BindPFlag("run_frames", runCmd.Flags().Lookup("frames"))

	rootCmd.AddCommand(runCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	sys, world, err := loadWorld(settings.System)
	if err != nil {
		return err
	}
	if world.Camera(settings.Camera) == nil {
		return fmt.Errorf("system %q has no camera %q", sys.Name, settings.Camera)
	}

	palette, err := view.NewPalette(world)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	scheduler := sim.NewScheduler()
	orbit.Register(scheduler, world)

	if settings.MetricsAddr != "" {
		collector := metrics.NewCollector()
		scheduler.Observe(collector)
		scheduler.Register(&metrics.System{World: world, Collector: collector, Every: uint64(settings.FPS)})

		go func() {
			if err := collector.Serve(ctx, settings.MetricsAddr, logger); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	if settings.Verbose {
		scheduler.Register(&progressSystem{World: world, Logger: logger, Every: uint64(settings.FPS)})
	}

	game := render.NewGame(world, scheduler, palette, settings.Camera)
	game.FPS = settings.FPS
	game.Frames = uint64(settings.RunFrames)
	game.Logger = logger

	title := fmt.Sprintf("orrery: %s", sys.Name)
	if settings.DebugUI {
		game.Overlay = debugui_ebiten.NewImguiBackend(title, settings.Width, settings.Height)
		windows := debugui.Install(scheduler, world, game)
		game.Idle = windows.RenderAll
	} else {
		ebiten.SetWindowSize(settings.Width, settings.Height)
		ebiten.SetWindowTitle(title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(settings.FPS)

	logger.Printf("running %q with %d bodies at %d fps", sys.Name, world.BodyCount(), settings.FPS)
	if err := ebiten.RunGame(&interruptible{Game: game, ctx: ctx}); err != nil {
		return err
	}

	stats := scheduler.GetStats()
	logger.Printf("stopped after %d ticks", stats.TickCount)
	return nil
}

// interruptible ends the game once ctx is done.
type interruptible struct {
	*render.Game
	ctx context.Context
}

func (g *interruptible) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	return g.Game.Update()
}
