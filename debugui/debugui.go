// Package debugui provides a Dear ImGui overlay for inspecting and steering a
// running simulation.
package debugui

import (
	"github.com/plus3/orrery/sim"
)

// ImguiItem holds a Dear ImGui render function drawn every tick.
type ImguiItem struct {
	Render func()
}

// ImguiSystem defers the render functions of its items until every other
// system of the tick has run, so windows show the tick's final state.
type ImguiSystem struct {
	Items []*ImguiItem
}

// Add appends a window drawn by render.
func (i *ImguiSystem) Add(render func()) {
	i.Items = append(i.Items, &ImguiItem{Render: render})
}

// Execute queues all ImGui render functions for execution.
func (i *ImguiSystem) Execute(frame *sim.Frame) {
	for _, item := range i.Items {
		frame.Commands.Defer(item.Render)
	}
}

// RenderAll draws every window immediately. Use it on frames where the
// scheduler does not tick.
func (i *ImguiSystem) RenderAll() {
	for _, item := range i.Items {
		item.Render()
	}
}
