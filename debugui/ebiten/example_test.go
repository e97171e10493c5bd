package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/orrery/config"
	"github.com/plus3/orrery/debugui"
	debugui_ebiten "github.com/plus3/orrery/debugui/ebiten"
	"github.com/plus3/orrery/orbit"
	"github.com/plus3/orrery/render"
	"github.com/plus3/orrery/sim"
	"github.com/plus3/orrery/view"
)

func Example() {
	// Create Ebiten window and ImGui backend
	overlay := debugui_ebiten.NewImguiBackend("orrery", 1280, 720)

	sys, err := config.LoadSystem("classic")
	if err != nil {
		panic(err)
	}
	world, err := orbit.NewWorld(sys)
	if err != nil {
		panic(err)
	}
	palette, err := view.NewPalette(world)
	if err != nil {
		panic(err)
	}

	scheduler := sim.NewScheduler()
	orbit.Register(scheduler, world)

	game := render.NewGame(world, scheduler, palette, "main")
	game.Overlay = overlay

	// Windows render after the orbit systems of each tick
	windows := debugui.Install(scheduler, world, game)
	game.Idle = windows.RenderAll

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
