// Package view turns a world seen through one camera into flat drawing
// primitives. It has no dependency on a window or graphics backend.
package view

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/orbit"
)

var ErrColor = errors.New("invalid body color")

// Palette holds one colour per body slot. Bodies declared without a colour
// get evenly spaced hues.
type Palette struct {
	colors []colorful.Color
}

func NewPalette(w *orbit.World) (*Palette, error) {
	p := &Palette{colors: make([]colorful.Color, w.BodyCount())}

	var missing []int
	var errs []error
	for slot, b := range w.Bodies() {
		if b.Color == "" {
			missing = append(missing, slot)
			continue
		}
		c, err := colorful.Hex(b.Color)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: body %q: %q", ErrColor, b.Name, b.Color))
			continue
		}
		p.colors[slot] = c
	}

	for i, slot := range missing {
		hue := 360 * float64(i) / float64(len(missing))
		p.colors[slot] = colorful.Hcl(hue, 0.45, 0.7).Clamped()
	}
	return p, errors.Join(errs...)
}

// Color returns the colour of the body in slot, or white for an unknown slot.
func (p *Palette) Color(slot int) colorful.Color {
	if slot < 0 || slot >= len(p.colors) {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return p.colors[slot]
}

// Shade darkens c toward black in Lab space; light is 1 for fully lit and 0
// for unlit.
func Shade(c colorful.Color, light float64, alpha uint8) color.RGBA {
	light = max(0, min(1, light))
	shaded := colorful.Color{}.BlendLab(c, light).Clamped()
	r, g, b := shaded.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: alpha}
}
