package view

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/plus3/orrery/orbit"
)

const (
	ringSegments  = 96
	ambientLight  = 0.2
	minSpriteSize = 1.0
)

// Sprite is a projected body.
type Sprite struct {
	Slot   int
	Name   string
	X, Y   float64
	R      float64
	Depth  float64
	Color  color.RGBA
	Source bool // lights the scene
}

// Segment is a projected piece of an orbit ring.
type Segment struct {
	X0, Y0, X1, Y1 float64
	Color          color.RGBA
}

// Scene is everything visible from one camera, sprites ordered far to near.
type Scene struct {
	Camera   string
	Sprites  []Sprite
	Segments []Segment
}

// Build projects w through cam onto vp.
func Build(w *orbit.World, cam *orbit.Camera, vp orbit.Viewport, pal *Palette) Scene {
	scene := Scene{Camera: cam.Name}

	light := w.BodyAt(0)
	for slot, b := range w.Bodies() {
		if !b.IsRoot() && b.OrbitRadius > 0 {
			scene.Segments = appendRing(scene.Segments, w.Parent(b).Position, b, cam, vp, Shade(pal.Color(slot), 0.35, 160))
		}

		x, y, depth, ok := cam.Project(b.Position, vp)
		if !ok {
			continue
		}

		lit := 1.0
		if b.IsRoot() {
			light = b
		} else if light != nil {
			lit = illumination(b.Position, light.Position, cam.Position)
		}

		scene.Sprites = append(scene.Sprites, Sprite{
			Slot:   slot,
			Name:   b.Name,
			X:      x,
			Y:      y,
			R:      max(minSpriteSize, cam.ProjectedRadius(b.Radius, depth, vp)),
			Depth:  depth,
			Color:  Shade(pal.Color(slot), lit, 255),
			Source: b.IsRoot(),
		})
	}

	slices.SortStableFunc(scene.Sprites, func(a, b Sprite) int {
		return cmp.Compare(b.Depth, a.Depth)
	})
	return scene
}

// illumination is the lit share of a sphere at p as seen from eye, with the
// light source at src, mapped onto [ambientLight, 1].
func illumination(p, src, eye orbit.Vec3) float64 {
	toLight := src.Sub(p).Normalize()
	toEye := eye.Sub(p).Normalize()
	if toLight == (orbit.Vec3{}) || toEye == (orbit.Vec3{}) {
		return 1
	}
	phase := (1 + toLight.Dot(toEye)) / 2
	return ambientLight + (1-ambientLight)*phase
}

func appendRing(segs []Segment, center orbit.Vec3, b *orbit.CelestialBody, cam *orbit.Camera, vp orbit.Viewport, c color.RGBA) []Segment {
	var px, py float64
	prevOK := false

	for i := 0; i <= ringSegments; i++ {
		a := 2 * math.Pi * float64(i) / ringSegments
		p := orbit.V(
			center.X+b.OrbitRadius*math.Cos(a),
			b.Position.Y,
			center.Z+b.OrbitRadius*math.Sin(a),
		)

		x, y, _, ok := cam.Project(p, vp)
		if ok && prevOK {
			segs = append(segs, Segment{X0: px, Y0: py, X1: x, Y1: y, Color: c})
		}
		px, py, prevOK = x, y, ok
	}
	return segs
}
