package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/mirrorworld/ecs"
)

// QueryDebugger runs EntitiesWith for a user-picked set of kinds and shows
// which archetypes match.
type QueryDebugger struct {
	selected map[ecs.Kind]bool
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selected: make(map[ecs.Kind]bool)}
}

// Kinds returns the selected kinds in ordinal order.
func (qd *QueryDebugger) Kinds() []ecs.Kind {
	var kinds []ecs.Kind
	for _, k := range ecs.AllKinds() {
		if qd.selected[k] {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func (qd *QueryDebugger) Select(k ecs.Kind, on bool) {
	if on {
		qd.selected[k] = true
	} else {
		delete(qd.selected, k)
	}
}

// MatchingArchetypes filters archetypes to those carrying every kind.
func MatchingArchetypes(archetypes []ArchetypeInfo, kinds []ecs.Kind) []ArchetypeInfo {
	var required Signature
	for _, k := range kinds {
		required |= 1 << k
	}

	var out []ArchetypeInfo
	for _, arch := range archetypes {
		if arch.Signature.Has(required) {
			out = append(out, arch)
		}
	}
	return out
}

func (qd *QueryDebugger) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selected)
	}

	for _, kind := range ecs.AllKinds() {
		on := qd.selected[kind]
		if imgui.Checkbox(kind.String(), &on) {
			qd.Select(kind, on)
		}
	}

	imgui.Separator()

	kinds := qd.Kinds()
	if len(kinds) == 0 {
		imgui.Text("No component types selected")
		return
	}

	matching := MatchingArchetypes(CollectArchetypes(world), kinds)
	imgui.Text(fmt.Sprintf("Matching Archetypes: %d", len(matching)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(world.EntitiesWith(kinds...))))

	if imgui.TreeNodeStr("Archetype Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryArchTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Signature")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, arch := range matching {
				imgui.TableNextRow()
				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("0x%02X", uint32(arch.Signature)))
				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%v", arch.ComponentTypes))
				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", arch.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}
}
