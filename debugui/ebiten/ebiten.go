// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend so it can be used
// as the renderer's overlay.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("") // Disable imgui.ini

	return &ImguiBackend{EbitenBackend: backend}
}

func (b *ImguiBackend) Begin() {
	b.EbitenBackend.BeginFrame()
}

func (b *ImguiBackend) End() {
	b.EbitenBackend.EndFrame()
}

func (b *ImguiBackend) Render(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

func (b *ImguiBackend) Resize(width, height int) {
	b.EbitenBackend.Layout(width, height)
}

// CapturesInput reports whether ImGui wants the mouse or keyboard this frame.
func (b *ImguiBackend) CapturesInput() bool {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse() || io.WantCaptureKeyboard()
}
