package orbit

import "math"

// Viewport is the pixel size of the surface a camera renders to.
type Viewport struct {
	Width, Height float64
}

// Focal returns the distance, in pixels, from the eye to the image plane for
// the camera's vertical field of view.
func (c *Camera) Focal(vp Viewport) float64 {
	return (vp.Height / 2) / math.Tan(c.Fov*math.Pi/360)
}

// Project maps p to viewport pixels, with y growing downwards. ok is false
// when p lies outside the near and far planes.
func (c *Camera) Project(p Vec3, vp Viewport) (x, y, depth float64, ok bool) {
	forward, right, up := c.Basis()
	rel := p.Sub(c.Position)

	depth = rel.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}

	focal := c.Focal(vp)
	x = vp.Width/2 + rel.Dot(right)*focal/depth
	y = vp.Height/2 - rel.Dot(up)*focal/depth
	return x, y, depth, true
}

// ProjectedRadius returns the on-screen radius of a sphere of the given radius
// seen at depth.
func (c *Camera) ProjectedRadius(radius, depth float64, vp Viewport) float64 {
	if depth <= 0 {
		return 0
	}
	return radius * c.Focal(vp) / depth
}
