package orbit

import (
	"math"

	"github.com/plus3/orrery/sim"
)

// CelestialBody is one orbiting body. Position is derived from the parent's
// position and Theta every frame and is never integrated.
type CelestialBody struct {
	Id     sim.Id
	Name   string
	Parent int // slot of the orbited body, -1 for roots
	Anchor Vec3

	OrbitRadius     float64
	AngularVelocity float64 // radians per frame, sign is direction
	Theta           float64
	RotationSpeed   float64 // radians per frame
	RotationY       float64
	Position        Vec3

	Radius  float64
	Texture string
	Color   string
}

// IsRoot reports whether the body orbits its anchor rather than another body.
func (b *CelestialBody) IsRoot() bool {
	return b.Parent < 0
}

// advance moves the body one frame along its orbit around center.
func (b *CelestialBody) advance(center Vec3) {
	b.Theta = wrapAngle(b.Theta + b.AngularVelocity)
	b.RotationY = wrapAngle(b.RotationY + b.RotationSpeed)
	b.place(center)
}

// place derives the planar position from center and Theta. Y is left alone.
func (b *CelestialBody) place(center Vec3) {
	b.Position.X = center.X + b.OrbitRadius*math.Cos(b.Theta)
	b.Position.Z = center.Z + b.OrbitRadius*math.Sin(b.Theta)
}

// wrapAngle folds a into [-π, π]. Angles already in range are returned as is.
func wrapAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}
