package orbit

import (
	"math"

	"github.com/plus3/orrery/sim"
)

var worldUp = Vec3{Y: 1}

// Camera is a perspective camera. A camera with a target eases toward the
// target's position plus Offset and always looks at the target; a camera
// without one stays where it is put.
type Camera struct {
	Id     sim.Id
	Name   string
	Target int // slot of the followed body, -1 for fixed cameras

	Offset    Vec3
	Smoothing float64
	Position  Vec3
	LookAt    Vec3

	Fov  float64 // vertical field of view in degrees
	Near float64
	Far  float64
}

// Follows reports whether the camera tracks a body.
func (c *Camera) Follows() bool {
	return c.Target >= 0
}

// follow eases the camera toward target+Offset and aims it at target.
func (c *Camera) follow(target Vec3) {
	desired := target.Add(c.Offset)
	c.Position = c.Position.Lerp(desired, c.Smoothing)
	c.LookAt = target
}

// Basis returns the camera's unit forward, right and up vectors. They are
// derived from Position and LookAt alone.
func (c *Camera) Basis() (forward, right, up Vec3) {
	forward = c.LookAt.Sub(c.Position).Normalize()
	if forward == (Vec3{}) {
		forward = Vec3{Z: -1}
	}

	right = forward.Cross(worldUp)
	if right.Len() < 1e-12 {
		// Looking straight up or down.
		right = forward.Cross(Vec3{Z: -1})
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return forward, right, up
}

// Orbit swings a fixed camera around its look-at point by yaw and pitch
// radians, keeping its distance. Pitch is clamped short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	rel := c.Position.Sub(c.LookAt)
	r := rel.Len()
	if r == 0 {
		return
	}

	azimuth := math.Atan2(rel.X, rel.Z) + yaw
	elevation := math.Asin(rel.Y/r) + pitch
	const limit = math.Pi/2 - 0.01
	elevation = math.Max(-limit, math.Min(limit, elevation))

	c.Position = c.LookAt.Add(Vec3{
		X: r * math.Cos(elevation) * math.Sin(azimuth),
		Y: r * math.Sin(elevation),
		Z: r * math.Cos(elevation) * math.Cos(azimuth),
	})
}

// Zoom scales the camera's distance to its look-at point by factor, keeping
// it between the near plane and half the far plane.
func (c *Camera) Zoom(factor float64) {
	rel := c.Position.Sub(c.LookAt)
	r := rel.Len()
	if r == 0 || factor <= 0 {
		return
	}

	target := math.Max(c.Near*10, math.Min(c.Far/2, r*factor))
	c.Position = c.LookAt.Add(rel.Scale(target / r))
}
