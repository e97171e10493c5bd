// Package render shows a world in an ebiten window.
package render

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/view"
)

var background = color.RGBA{4, 6, 14, 255}

// Overlay is drawn over the scene and may claim mouse and keyboard input.
type Overlay interface {
	Begin()
	End()
	Render(screen *ebiten.Image)
	Resize(width, height int)
	CapturesInput() bool
}

// Game implements ebiten.Game. Each Update runs one scheduler tick unless the
// scheduler is paused, so the simulation advances at the window's TPS.
type Game struct {
	World     *orbit.World
	Scheduler *sim.Scheduler
	Palette   *view.Palette
	Overlay   Overlay
	Logger    *log.Logger

	// Idle runs on Updates that do not tick, such as while paused.
	Idle func()

	// Frames stops the game after that many ticks when positive.
	Frames uint64
	FPS    int

	active   int
	step     bool
	controls Controls
	width    int
	height   int
}

// NewGame creates a game looking through the camera called camera, or the
// first camera when there is none by that name.
func NewGame(w *orbit.World, scheduler *sim.Scheduler, palette *view.Palette, camera string) *Game {
	g := &Game{
		World:     w,
		Scheduler: scheduler,
		Palette:   palette,
		FPS:       60,
		controls:  DefaultControls(),
	}
	for slot, c := range w.Cameras() {
		if c.Name == camera {
			g.active = slot
		}
	}
	return g
}

func (g *Game) Update() error {
	if g.Overlay != nil {
		g.Overlay.Begin()
		defer g.Overlay.End()
	}

	captured := g.Overlay != nil && g.Overlay.CapturesInput()
	if !captured {
		if quit := g.controls.apply(g); quit {
			return ebiten.Termination
		}
	}

	if !g.Scheduler.Paused() || g.step {
		g.step = false
		g.Scheduler.Once(1.0 / float64(g.FPS))

		if g.Frames > 0 && g.Scheduler.Ticks() >= g.Frames {
			if g.Logger != nil {
				g.Logger.Printf("stopping after %d frames", g.Scheduler.Ticks())
			}
			return ebiten.Termination
		}
	} else if g.Idle != nil {
		g.Idle()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	cam := g.Camera()
	vp := orbit.Viewport{Width: float64(screen.Bounds().Dx()), Height: float64(screen.Bounds().Dy())}
	scene := view.Build(g.World, cam, vp, g.Palette)

	for _, seg := range scene.Segments {
		vector.StrokeLine(screen, float32(seg.X0), float32(seg.Y0), float32(seg.X1), float32(seg.Y1), 1, seg.Color, true)
	}

	for _, s := range scene.Sprites {
		if s.Source {
			glow := s.Color
			glow.A = 40
			vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.R*1.3), glow, true)
		}
		vector.DrawFilledCircle(screen, float32(s.X), float32(s.Y), float32(s.R), s.Color, true)
		ebitenutil.DebugPrintAt(screen, s.Name, int(s.X+s.R)+4, int(s.Y)-8)
	}

	ebitenutil.DebugPrint(screen, g.Status().String())

	if g.Overlay != nil {
		g.Overlay.Render(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	if g.Overlay != nil {
		g.Overlay.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Camera returns the camera currently drawn.
func (g *Game) Camera() *orbit.Camera {
	return g.World.CameraAt(g.active)
}

func (g *Game) ActiveCamera() int {
	return g.active
}

// SetActiveCamera switches the view. Out of range slots are ignored.
func (g *Game) SetActiveCamera(slot int) {
	if slot >= 0 && slot < g.World.CameraCount() {
		g.active = slot
	}
}

// StepOnce runs a single tick on the next Update while paused.
func (g *Game) StepOnce() {
	g.step = true
}

// Status summarises the game for the corner overlay.
func (g *Game) Status() view.Status {
	return view.Status{
		Camera: g.Camera().Name,
		Index:  g.active,
		Count:  g.World.CameraCount(),
		Tick:   g.Scheduler.Ticks(),
		Paused: g.Scheduler.Paused(),
		FPS:    ebiten.ActualFPS(),
	}
}
