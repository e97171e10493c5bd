package metrics

import (
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

// System copies body and camera state into the collector's gauges. Register
// it after the orbit systems so it sees the tick's final state.
type System struct {
	World     *orbit.World
	Collector *Collector
	Every     uint64 // update every Nth tick; 0 or 1 means every tick
}

func (s *System) Execute(frame *sim.Frame) {
	if s.Every > 1 && frame.Tick%s.Every != 0 {
		return
	}

	c := s.Collector
	for _, b := range s.World.Bodies() {
		c.bodyTheta.WithLabelValues(b.Name).Set(b.Theta)
		c.bodyRotation.WithLabelValues(b.Name).Set(b.RotationY)
		c.bodyPosition.WithLabelValues(b.Name, "x").Set(b.Position.X)
		c.bodyPosition.WithLabelValues(b.Name, "y").Set(b.Position.Y)
		c.bodyPosition.WithLabelValues(b.Name, "z").Set(b.Position.Z)
	}
	for _, cam := range s.World.Cameras() {
		c.cameraDistance.WithLabelValues(cam.Name).Set(cam.Position.Dist(cam.LookAt))
	}
}
