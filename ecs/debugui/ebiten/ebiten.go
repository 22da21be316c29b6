// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	ebiten "github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/mirrorworld/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend and drives a
// debug overlay from an Ebiten game loop.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay

	timer *debugui.FrameTimer
}

// NewImguiBackend creates the backend window. ebiten.RunGame opens it.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
		timer:         debugui.NewFrameTimer(),
	}
}

// Update builds this frame's ImGui draw data. Call from ebiten.Game.Update.
func (b *ImguiBackend) Update() {
	b.BeginFrame()
	b.Overlay.Render(b.timer.GetDeltaTime())
	b.EndFrame()
}

// Draw renders the overlay on top of screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

// WantsKeyboard reports whether ImGui consumed keyboard input last frame.
func (b *ImguiBackend) WantsKeyboard() bool {
	return b.Overlay.Visible && b.Overlay.Input.WantCaptureKeyboard
}
