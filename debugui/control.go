package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/sim"
)

// CameraSwitcher is the part of the renderer the control window drives.
type CameraSwitcher interface {
	ActiveCamera() int
	SetActiveCamera(slot int)
	StepOnce()
}

// ControlWindow pauses and steps the simulation, switches cameras and tunes
// follow camera smoothing.
type ControlWindow struct {
	Scheduler *sim.Scheduler
	World     *orbit.World
	Switcher  CameraSwitcher
}

func (cw *ControlWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(590, 80), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(260, 240), imgui.CondOnce)

	if !imgui.BeginV("Simulation Control", nil, 0) {
		imgui.End()
		return
	}

	if cw.Scheduler.Paused() {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		if imgui.Button("Resume") {
			cw.Scheduler.Pause(false)
		}
		imgui.PopStyleColor()

		imgui.SameLine()
		if imgui.Button("1 Tick") {
			cw.Switcher.StepOnce()
		}
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
	} else {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.7, 0.2, 0.2, 1.0))
		if imgui.Button("Pause") {
			cw.Scheduler.Pause(true)
		}
		imgui.PopStyleColor()
		imgui.TextColored(imgui.NewVec4(0.0, 1.0, 0.0, 1.0), "RUNNING")
	}

	imgui.Separator()
	imgui.Text("Cameras")
	active := cw.Switcher.ActiveCamera()
	for slot, c := range cw.World.Cameras() {
		if imgui.SelectableBoolV(c.Name, slot == active, 0, imgui.NewVec2(0, 0)) {
			cw.Switcher.SetActiveCamera(slot)
		}
	}

	if c := cw.World.CameraAt(active); c != nil && c.Follows() {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("following %s", cw.World.Target(c).Name))

		smoothing := float32(c.Smoothing)
		imgui.SetNextItemWidth(120)
		if imgui.InputFloat("smoothing", &smoothing) && smoothing > 0 && smoothing <= 1 {
			c.Smoothing = float64(smoothing)
		}
	}

	imgui.End()
}
