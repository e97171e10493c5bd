package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Projection defaults for cameras that leave them unset.
const (
	DefaultFov       = 75.0
	DefaultNear      = 0.1
	DefaultFar       = 200000.0
	DefaultSmoothing = 0.1
)

// DefaultCameraPosition is where a fixed camera sits when none is given.
var DefaultCameraPosition = [3]float64{0, 0, 1500}

// System is a validated system definition. Bodies are ordered so that every
// parent precedes its children.
type System struct {
	Name    string
	Seed    uint64
	Bodies  []BodySpec
	Cameras []CameraSpec
}

// BodySpec is a body with every derived value resolved.
type BodySpec struct {
	Name            string
	Parent          string // empty for roots
	OrbitRadius     float64
	AngularVelocity float64
	RotationSpeed   float64
	InitialTheta    float64
	RandomTheta     bool
	Anchor          [3]float64
	Radius          float64
	Texture         string
	Color           string
}

// CameraSpec is a camera with defaults applied.
type CameraSpec struct {
	Name      string
	Target    string // empty for fixed cameras
	Offset    [3]float64
	Smoothing float64
	Position  [3]float64
	LookAt    [3]float64
	Fov       float64
	Near      float64
	Far       float64
}

// Body returns the body spec called name.
func (s *System) Body(name string) (BodySpec, bool) {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodySpec{}, false
}

// Validate checks f and resolves it into a System. All problems are reported
// together, each wrapping one of the package's sentinel errors.
func Validate(f *File) (*System, error) {
	v := &validator{}

	bodies := v.bodies(f)
	cameras := v.cameras(f, bodies)
	ordered := v.order(bodies)

	if err := errors.Join(v.errs...); err != nil {
		return nil, err
	}

	return &System{
		Name:    f.Name,
		Seed:    f.Seed,
		Bodies:  ordered,
		Cameras: cameras,
	}, nil
}

type validator struct {
	errs []error
}

func (v *validator) fail(sentinel error, format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...)))
}

func (v *validator) finite(what string, values ...float64) bool {
	for _, x := range values {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			v.fail(ErrNonFinite, "%s", what)
			return false
		}
	}
	return true
}

func (v *validator) bodies(f *File) []BodySpec {
	if len(f.Bodies) == 0 {
		v.fail(ErrNoBodies, "%q", f.Name)
		return nil
	}

	if f.Scale != nil {
		v.finite("scale", f.Scale.Unit, f.Scale.BaseAngularVelocity)
	}

	seen := make(map[string]bool, len(f.Bodies))
	for _, b := range f.Bodies {
		if b.Name != "" {
			if seen[b.Name] {
				v.fail(ErrDuplicateName, "body %q", b.Name)
			}
			seen[b.Name] = true
		}
	}

	specs := make([]BodySpec, 0, len(f.Bodies))
	for i, b := range f.Bodies {
		label := b.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
			v.fail(ErrEmptyName, "body %s", label)
		}

		spec := BodySpec{
			Name:          b.Name,
			Parent:        b.Parent,
			RotationSpeed: b.RotationSpeed,
			RandomTheta:   b.RandomTheta,
			Radius:        b.Radius,
			Texture:       b.Texture,
			Color:         b.Color,
		}

		if b.Parent != "" {
			switch {
			case b.Parent == b.Name:
				v.fail(ErrCycle, "body %q orbits itself", label)
			case !seen[b.Parent]:
				v.fail(ErrUnknownParent, "body %q orbits %q", label, b.Parent)
			}
			if b.Anchor != nil {
				v.fail(ErrConflict, "body %q: anchor only applies to root bodies", label)
			}
		} else if b.Anchor != nil {
			spec.Anchor = *b.Anchor
			v.finite(fmt.Sprintf("body %q anchor", label), spec.Anchor[:]...)
		}

		spec.OrbitRadius = v.orbitRadius(label, b, f.Scale)
		spec.AngularVelocity = v.angularVelocity(label, b, f.Scale)

		if b.InitialTheta != nil {
			if b.RandomTheta {
				v.fail(ErrConflict, "body %q: initial_theta and random_theta", label)
			}
			spec.InitialTheta = *b.InitialTheta
		}

		v.finite(fmt.Sprintf("body %q", label), spec.RotationSpeed, spec.InitialTheta, spec.Radius)
		if spec.Radius < 0 {
			v.fail(ErrNegativeRadius, "body %q display radius %g", label, spec.Radius)
		}

		specs = append(specs, spec)
	}
	return specs
}

func (v *validator) orbitRadius(label string, b BodyFile, scale *Scale) float64 {
	var r float64
	switch {
	case b.OrbitRadius != nil && b.OrbitAU != nil:
		v.fail(ErrConflict, "body %q: orbit_radius and orbit_au", label)
		return 0
	case b.OrbitRadius != nil:
		r = *b.OrbitRadius
	case b.OrbitAU != nil:
		if scale == nil {
			v.fail(ErrMissingScale, "body %q uses orbit_au", label)
			return 0
		}
		r = *b.OrbitAU * scale.Unit
	}

	if !v.finite(fmt.Sprintf("body %q orbit radius", label), r) {
		return 0
	}
	if r < 0 {
		v.fail(ErrNegativeRadius, "body %q orbit radius %g", label, r)
	}
	return r
}

func (v *validator) angularVelocity(label string, b BodyFile, scale *Scale) float64 {
	var w float64
	switch {
	case b.AngularVelocity != nil && b.Period != nil:
		v.fail(ErrConflict, "body %q: angular_velocity and period", label)
		return 0
	case b.AngularVelocity != nil:
		w = *b.AngularVelocity
	case b.Period != nil:
		if scale == nil {
			v.fail(ErrMissingScale, "body %q uses period", label)
			return 0
		}
		if *b.Period == 0 {
			v.fail(ErrZeroPeriod, "body %q", label)
			return 0
		}
		w = scale.BaseAngularVelocity / *b.Period
	}

	if !v.finite(fmt.Sprintf("body %q angular velocity", label), w) {
		return 0
	}
	return w
}

func (v *validator) cameras(f *File, bodies []BodySpec) []CameraSpec {
	if len(f.Cameras) == 0 {
		return []CameraSpec{{
			Name:     "main",
			Position: DefaultCameraPosition,
			Fov:      DefaultFov,
			Near:     DefaultNear,
			Far:      DefaultFar,
		}}
	}

	known := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		known[b.Name] = true
	}

	seen := make(map[string]bool, len(f.Cameras))
	specs := make([]CameraSpec, 0, len(f.Cameras))
	for i, c := range f.Cameras {
		label := c.Name
		switch {
		case c.Name == "":
			label = fmt.Sprintf("#%d", i)
			v.fail(ErrEmptyName, "camera %s", label)
		case seen[c.Name]:
			v.fail(ErrDuplicateName, "camera %q", c.Name)
		}
		seen[c.Name] = true

		spec := CameraSpec{
			Name:   c.Name,
			Target: c.Target,
			Offset: c.Offset,
			LookAt: c.LookAt,
			Fov:    orDefault(c.Fov, DefaultFov),
			Near:   orDefault(c.Near, DefaultNear),
			Far:    orDefault(c.Far, DefaultFar),
		}

		if c.Target != "" {
			if !known[c.Target] {
				v.fail(ErrUnknownTarget, "camera %q follows %q", label, c.Target)
			}
			spec.Smoothing = orDefault(c.Smoothing, DefaultSmoothing)
			if !(spec.Smoothing > 0 && spec.Smoothing <= 1) {
				v.fail(ErrSmoothing, "camera %q smoothing %g not in (0, 1]", label, spec.Smoothing)
			}
		} else if c.Smoothing != nil {
			v.fail(ErrConflict, "camera %q: smoothing without target", label)
		}

		if c.Position != nil {
			spec.Position = *c.Position
		} else if c.Target == "" {
			spec.Position = DefaultCameraPosition
		}

		v.finite(fmt.Sprintf("camera %q", label),
			spec.Offset[0], spec.Offset[1], spec.Offset[2],
			spec.Position[0], spec.Position[1], spec.Position[2],
			spec.LookAt[0], spec.LookAt[1], spec.LookAt[2],
			spec.Fov, spec.Near, spec.Far)

		if !(spec.Fov > 0 && spec.Fov < 180) || !(spec.Near > 0 && spec.Near < spec.Far) {
			v.fail(ErrProjection, "camera %q fov %g near %g far %g", label, spec.Fov, spec.Near, spec.Far)
		}

		specs = append(specs, spec)
	}
	return specs
}

// order sorts bodies parents-first, keeping declaration order among bodies
// whose parents are already placed. Bodies left over sit on or below a cycle.
func (v *validator) order(bodies []BodySpec) []BodySpec {
	declared := make(map[string]bool, len(bodies))
	for _, b := range bodies {
		declared[b.Name] = true
	}

	placed := make(map[string]bool, len(bodies))
	ordered := make([]BodySpec, 0, len(bodies))
	remaining := bodies

	for len(remaining) > 0 {
		var next []BodySpec
		for _, b := range remaining {
			if b.Parent == "" || !declared[b.Parent] || placed[b.Parent] {
				ordered = append(ordered, b)
				placed[b.Name] = true
				continue
			}
			next = append(next, b)
		}

		if len(next) == len(remaining) {
			names := make([]string, 0, len(next))
			for _, b := range next {
				if b.Parent != b.Name {
					names = append(names, b.Name)
				}
			}
			if len(names) > 0 {
				v.fail(ErrCycle, "%s", strings.Join(names, ", "))
			}
			break
		}
		remaining = next
	}
	return ordered
}

func orDefault(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
