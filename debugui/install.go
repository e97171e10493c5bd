package debugui

import (
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

// Install registers an ImguiSystem carrying the standard windows. It must be
// registered after the simulation systems.
func Install(scheduler *sim.Scheduler, w *orbit.World, switcher CameraSwitcher) *ImguiSystem {
	sys := &ImguiSystem{}
	sys.Add(NewBodiesWindow(w).Render)
	sys.Add(NewPerformanceStats(scheduler, 120).Render)
	sys.Add((&ControlWindow{Scheduler: scheduler, World: w, Switcher: switcher}).Render)

	scheduler.Register(sys)
	return sys
}
