package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Controls maps input to camera and simulation actions. Orbiting and zooming
// only affect fixed cameras; follow cameras are driven by their target.
type Controls struct {
	OrbitSpeed float64 // radians per frame while an arrow key is held
	DragSpeed  float64 // radians per pixel of mouse drag
	ZoomStep   float64 // fraction of distance per wheel notch

	dragging bool
	lastX    int
	lastY    int
}

func DefaultControls() Controls {
	return Controls{
		OrbitSpeed: 0.02,
		DragSpeed:  0.005,
		ZoomStep:   0.1,
	}
}

var cameraKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// apply handles one frame of input. It reports whether the game should quit.
func (c *Controls) apply(g *Game) bool {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		next := (g.active + 1) % g.World.CameraCount()
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			next = (g.active + g.World.CameraCount() - 1) % g.World.CameraCount()
		}
		g.SetActiveCamera(next)
	}
	for i, key := range cameraKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.SetActiveCamera(i)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Scheduler.Pause(!g.Scheduler.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.Scheduler.Paused() {
		g.StepOnce()
	}

	cam := g.Camera()
	if cam.Follows() {
		c.dragging = false
		return false
	}

	var yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= c.OrbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += c.OrbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch += c.OrbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch -= c.OrbitSpeed
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if c.dragging {
			yaw -= float64(x-c.lastX) * c.DragSpeed
			pitch += float64(y-c.lastY) * c.DragSpeed
		}
		c.dragging = true
	} else {
		c.dragging = false
	}
	c.lastX, c.lastY = x, y

	if yaw != 0 || pitch != 0 {
		cam.Orbit(yaw, pitch)
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		cam.Zoom(1 - dy*c.ZoomStep)
	}
	return false
}
