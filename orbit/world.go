package orbit

import (
	"fmt"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/sim"
)

// World is the simulation context: it owns the body table, the camera table
// and the system both were built from. Bodies sit in the table parents first,
// so a single pass in slot order updates every parent before its children.
type World struct {
	System *config.System

	bodies      *sim.Table[CelestialBody]
	cameras     *sim.Table[Camera]
	bodyIndex   *sim.Index
	cameraIndex *sim.Index
}

// NewWorld builds the bodies and cameras of sys. Random initial angles are
// drawn here, once per body, from a source seeded with sys.Seed.
func NewWorld(sys *config.System) (*World, error) {
	w := &World{
		System:      sys,
		bodies:      sim.NewTable[CelestialBody](len(sys.Bodies)),
		cameras:     sim.NewTable[Camera](len(sys.Cameras)),
		bodyIndex:   sim.NewIndex(len(sys.Bodies)),
		cameraIndex: sim.NewIndex(len(sys.Cameras)),
	}

	rng := rand.New(rand.NewPCG(sys.Seed, sys.Seed^0x9e3779b97f4a7c15))

	for _, spec := range sys.Bodies {
		if err := w.addBody(spec, rng); err != nil {
			return nil, err
		}
	}
	for _, spec := range sys.Cameras {
		if err := w.addCamera(spec); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) addBody(spec config.BodySpec, rng *rand.Rand) error {
	body := CelestialBody{
		Name:            spec.Name,
		Parent:          -1,
		Anchor:          vecOf(spec.Anchor),
		OrbitRadius:     spec.OrbitRadius,
		AngularVelocity: spec.AngularVelocity,
		Theta:           wrapAngle(spec.InitialTheta),
		RotationSpeed:   spec.RotationSpeed,
		Radius:          spec.Radius,
		Texture:         spec.Texture,
		Color:           spec.Color,
	}

	if spec.RandomTheta {
		body.Theta = wrapAngle(rng.Float64() * 2 * math.Pi)
	}

	if spec.Parent != "" {
		slot, ok := w.bodyIndex.Lookup(spec.Parent)
		if !ok {
			return fmt.Errorf("%w: body %q orbits %q", config.ErrUnknownParent, spec.Name, spec.Parent)
		}
		body.Parent = slot
	}

	center := w.center(&body)
	body.Position.Y = center.Y
	body.place(center)

	id, err := w.bodyIndex.Put(spec.Name, w.bodies.Len())
	if err != nil {
		return err
	}
	body.Id = id
	w.bodies.Append(body)
	return nil
}

func (w *World) addCamera(spec config.CameraSpec) error {
	cam := Camera{
		Name:      spec.Name,
		Target:    -1,
		Offset:    vecOf(spec.Offset),
		Smoothing: spec.Smoothing,
		Position:  vecOf(spec.Position),
		LookAt:    vecOf(spec.LookAt),
		Fov:       spec.Fov,
		Near:      spec.Near,
		Far:       spec.Far,
	}

	if spec.Target != "" {
		slot, ok := w.bodyIndex.Lookup(spec.Target)
		if !ok {
			return fmt.Errorf("%w: camera %q follows %q", config.ErrUnknownTarget, spec.Name, spec.Target)
		}
		cam.Target = slot
		cam.LookAt = w.bodies.At(slot).Position
	}

	id, err := w.cameraIndex.Put(spec.Name, w.cameras.Len())
	if err != nil {
		return err
	}
	cam.Id = id
	w.cameras.Append(cam)
	return nil
}

// center is the point b orbits: its parent's position, or its anchor.
func (w *World) center(b *CelestialBody) Vec3 {
	if b.IsRoot() {
		return b.Anchor
	}
	return w.bodies.At(b.Parent).Position
}

// Step advances the world by one frame: every body, parents first, and then
// every follow camera.
func (w *World) Step() {
	w.StepBodies()
	w.StepCameras()
}

// StepBodies advances every body by one frame in parent-before-child order.
func (w *World) StepBodies() {
	for _, b := range w.bodies.All() {
		b.advance(w.center(b))
	}
}

// StepCameras moves every follow camera toward its target. It must run after
// StepBodies for the same frame.
func (w *World) StepCameras() {
	for _, c := range w.cameras.All() {
		if c.Follows() {
			c.follow(w.bodies.At(c.Target).Position)
		}
	}
}

// Body returns the body called name, or nil.
func (w *World) Body(name string) *CelestialBody {
	slot, ok := w.bodyIndex.Lookup(name)
	if !ok {
		return nil
	}
	return w.bodies.At(slot)
}

// BodyAt returns the body in slot, or nil.
func (w *World) BodyAt(slot int) *CelestialBody {
	return w.bodies.At(slot)
}

// Parent returns the body b orbits, or nil for a root.
func (w *World) Parent(b *CelestialBody) *CelestialBody {
	return w.bodies.At(b.Parent)
}

// Bodies iterates over bodies in update order.
func (w *World) Bodies() iter.Seq2[int, *CelestialBody] {
	return w.bodies.All()
}

func (w *World) BodyCount() int {
	return w.bodies.Len()
}

// Camera returns the camera called name, or nil.
func (w *World) Camera(name string) *Camera {
	slot, ok := w.cameraIndex.Lookup(name)
	if !ok {
		return nil
	}
	return w.cameras.At(slot)
}

// CameraAt returns the camera in slot, or nil.
func (w *World) CameraAt(slot int) *Camera {
	return w.cameras.At(slot)
}

// Target returns the body c follows, or nil for a fixed camera.
func (w *World) Target(c *Camera) *CelestialBody {
	return w.bodies.At(c.Target)
}

// Cameras iterates over cameras in declaration order.
func (w *World) Cameras() iter.Seq2[int, *Camera] {
	return w.cameras.All()
}

func (w *World) CameraCount() int {
	return w.cameras.Len()
}
