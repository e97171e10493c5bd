package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orrery/orbit"
)

// BodiesWindow lists every body with its orbital state.
type BodiesWindow struct {
	World *orbit.World

	selected int
}

func NewBodiesWindow(w *orbit.World) *BodiesWindow {
	return &BodiesWindow{World: w, selected: -1}
}

func (bw *BodiesWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 80), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(560, 240), imgui.CondOnce)

	if !imgui.BeginV("Bodies", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("BodiesTable", 6, tableFlags, imgui.NewVec2(0, 150), 0) {
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Parent")
		imgui.TableSetupColumn("Radius")
		imgui.TableSetupColumn("Omega")
		imgui.TableSetupColumn("Theta")
		imgui.TableSetupColumn("Position")
		imgui.TableHeadersRow()

		for slot, b := range bw.World.Bodies() {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(b.Name, bw.selected == slot, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				bw.selected = slot
			}

			imgui.TableNextColumn()
			if parent := bw.World.Parent(b); parent != nil {
				imgui.Text(parent.Name)
			} else {
				imgui.Text("-")
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", b.OrbitRadius))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%+.4f", b.AngularVelocity))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%+.3f", b.Theta))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("(%.1f, %.1f, %.1f)", b.Position.X, b.Position.Y, b.Position.Z))
		}

		imgui.EndTable()
	}

	if b := bw.World.BodyAt(bw.selected); b != nil {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("%s: rotation %+.3f rad, display radius %.1f", b.Name, b.RotationY, b.Radius))
		if b.Texture != "" {
			imgui.Text(fmt.Sprintf("texture %s", b.Texture))
		}
	}

	imgui.End()
}
