package orbit

import "github.com/plus3/orrery/sim"

// OrbitSystem advances every body of a World once per tick.
type OrbitSystem struct {
	World *World
}

func (s *OrbitSystem) Execute(frame *sim.Frame) {
	s.World.StepBodies()
}

// FollowCameraSystem moves follow cameras after the bodies have moved.
type FollowCameraSystem struct {
	World *World
}

func (s *FollowCameraSystem) Execute(frame *sim.Frame) {
	s.World.StepCameras()
}

// Register adds the world's systems to scheduler in the order a frame needs
// them: bodies first, cameras second.
func Register(scheduler *sim.Scheduler, w *World) {
	scheduler.Register(&OrbitSystem{World: w})
	scheduler.Register(&FollowCameraSystem{World: w})
}
