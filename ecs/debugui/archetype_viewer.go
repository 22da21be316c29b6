package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/mirrorworld/ecs"
)

// Signature is a bitmask of the component kinds an entity carries.
type Signature uint32

func SignatureOf(e *ecs.Entity) Signature {
	var sig Signature
	for _, k := range e.Kinds() {
		sig |= 1 << k
	}
	return sig
}

func (s Signature) Kinds() []ecs.Kind {
	var kinds []ecs.Kind
	for _, k := range ecs.AllKinds() {
		if s&(1<<k) != 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Has reports whether every kind in other is also in s.
func (s Signature) Has(other Signature) bool {
	return s&other == other
}

// ArchetypeInfo groups the entities sharing one signature.
type ArchetypeInfo struct {
	Signature      Signature
	ComponentTypes []string
	EntityCount    int
	ComponentCount int
}

// CollectArchetypes groups entities by signature, ordered by signature.
func CollectArchetypes(world *ecs.World) []ArchetypeInfo {
	counts := make(map[Signature]int)
	for _, e := range world.Entities() {
		counts[SignatureOf(e)]++
	}

	out := make([]ArchetypeInfo, 0, len(counts))
	for sig, count := range counts {
		kinds := sig.Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}
		out = append(out, ArchetypeInfo{
			Signature:      sig,
			ComponentTypes: names,
			EntityCount:    count,
			ComponentCount: len(kinds),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature < out[j].Signature })
	return out
}

func SortArchetypes(archetypes []ArchetypeInfo, column int, ascending bool) {
	sort.SliceStable(archetypes, func(i, j int) bool {
		a, b := archetypes[i], archetypes[j]
		if !ascending {
			a, b = b, a
		}
		switch column {
		case 1:
			return strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		case 2:
			return a.ComponentCount < b.ComponentCount
		case 3:
			return a.EntityCount < b.EntityCount
		default:
			return a.Signature < b.Signature
		}
	})
}

type ArchetypeViewer struct {
	archetypes    []ArchetypeInfo
	generation    uint64
	count         int
	sortColumn    int
	sortAscending bool
	selected      *Signature
}

func NewArchetypeViewer() *ArchetypeViewer {
	return &ArchetypeViewer{sortColumn: 3}
}

func (av *ArchetypeViewer) Selected() *Signature {
	return av.selected
}

func (av *ArchetypeViewer) refresh(world *ecs.World) {
	if av.archetypes != nil && av.generation == world.Generation() && av.count == world.Len() {
		return
	}
	av.archetypes = CollectArchetypes(world)
	av.generation = world.Generation()
	av.count = world.Len()
	SortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)
}

func (av *ArchetypeViewer) Render(world *ecs.World) {
	if !imgui.BeginV("Archetype Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	av.refresh(world)

	maxEntityCount := 0
	for _, arch := range av.archetypes {
		maxEntityCount = max(maxEntityCount, arch.EntityCount)
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ArchetypeTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Signature")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Comp Count")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			av.sortColumn = int(spec.ColumnIndex())
			av.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortArchetypes(av.archetypes, av.sortColumn, av.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, arch := range av.archetypes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := av.selected != nil && *av.selected == arch.Signature
			if imgui.SelectableBoolV(fmt.Sprintf("0x%02X", uint32(arch.Signature)), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sig := arch.Signature
				av.selected = &sig
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(arch.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.ComponentCount))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", arch.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(arch.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
