package view

import (
	"fmt"
	"strings"

	"github.com/plus3/orrery/orbit"
)

// Status is the text overlay shown in the corner of the window.
type Status struct {
	Camera string
	Index  int
	Count  int
	Tick   uint64
	Paused bool
	FPS    float64
}

func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "camera %d/%d: %s\n", s.Index+1, s.Count, s.Camera)
	fmt.Fprintf(&b, "tick %d  %.0f fps", s.Tick, s.FPS)
	if s.Paused {
		b.WriteString("  [paused]")
	}
	b.WriteString("\n[tab] camera  [space] pause  [n] step  [q] quit")
	return b.String()
}

// Describe reports where a body is, for the body list of the overlay.
func Describe(b *orbit.CelestialBody) string {
	return fmt.Sprintf("%-8s θ=%+.3f (%.1f, %.1f, %.1f)", b.Name, b.Theta, b.Position.X, b.Position.Y, b.Position.Z)
}
