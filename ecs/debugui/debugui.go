// Package debugui provides a Dear ImGui overlay for inspecting a running
// World: entities, their components, archetypes, queries and per-system
// timings.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/mirrorworld/ecs"
)

// InputState tracks whether Dear ImGui wants the mouse or keyboard this
// frame. Front-ends should not feed game input while it does.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay draws the debug windows. Call Render between the backend's
// BeginFrame and EndFrame.
type Overlay struct {
	World   *ecs.World
	Visible bool
	Input   InputState

	// Extra windows rendered after the built-in ones.
	Items []func()

	browser    *EntityBrowser
	inspector  *ComponentInspector
	archetypes *ArchetypeViewer
	stats      *PerformanceStats
	queries    *QueryDebugger
}

func NewOverlay(world *ecs.World) *Overlay {
	return &Overlay{
		World:      world,
		browser:    NewEntityBrowser(100),
		inspector:  NewComponentInspector(),
		archetypes: NewArchetypeViewer(),
		stats:      NewPerformanceStats(120),
		queries:    NewQueryDebugger(),
	}
}

func (o *Overlay) Toggle() {
	o.Visible = !o.Visible
}

// Render draws every window. deltaTime is the real frame time in seconds.
func (o *Overlay) Render(deltaTime float32) {
	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !o.Visible {
		return
	}

	o.browser.Render(o.World)
	o.inspector.Render(o.World, o.browser.Selected())
	o.archetypes.Render(o.World)
	o.stats.Render(o.World, deltaTime)
	o.queries.Render(o.World)

	for _, item := range o.Items {
		item()
	}
}
