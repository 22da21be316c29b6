package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/mirrorworld/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Layer          string
	Tag            string
	ComponentTypes []string
	ComponentCount int
	Pending        bool
}

// CollectEntities snapshots the world's entities in insertion order.
func CollectEntities(world *ecs.World) []EntityInfo {
	entities := world.Entities()
	out := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		kinds := e.Kinds()
		names := make([]string, len(kinds))
		for i, k := range kinds {
			names[i] = k.String()
		}

		info := EntityInfo{
			ID:             e.Id(),
			ComponentTypes: names,
			ComponentCount: len(names),
			Pending:        world.IsPendingRemoval(e),
		}
		if layer := ecs.Get[ecs.WorldLayer](e); layer != nil {
			info.Layer = layer.Layer.String()
		}
		if collider := ecs.Get[ecs.Collider](e); collider != nil {
			info.Tag = string(collider.Tag)
		}
		out = append(out, info)
	}
	return out
}

// Column indexes of the entity table, used for sorting.
const (
	ColumnID = iota
	ColumnLayer
	ColumnTag
	ColumnComponents
)

// SortEntities sorts in place by the given column.
func SortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}
		switch column {
		case ColumnLayer:
			return a.Layer < b.Layer
		case ColumnTag:
			return a.Tag < b.Tag
		case ColumnComponents:
			return a.ComponentCount < b.ComponentCount
		default:
			return a.ID < b.ID
		}
	})
}

// FilterEntities keeps entities whose id, layer, tag or component names
// contain text, case-insensitively.
func FilterEntities(entities []EntityInfo, text string) []EntityInfo {
	if text == "" {
		return entities
	}
	needle := strings.ToLower(text)

	filtered := make([]EntityInfo, 0, len(entities))
	for _, e := range entities {
		haystack := strings.ToLower(strings.Join(append([]string{
			fmt.Sprintf("%d", e.ID), e.Layer, e.Tag,
		}, e.ComponentTypes...), " "))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// EntityBrowser lists entities in a sortable, filterable, paged table.
type EntityBrowser struct {
	entities      []EntityInfo
	generation    uint64
	count         int
	sortColumn    int
	sortAscending bool

	selected    ecs.EntityId
	filterText  string
	perPage     int
	currentPage int
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{sortAscending: true, perPage: perPage}
}

func (eb *EntityBrowser) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowser) refresh(world *ecs.World) {
	if eb.entities != nil && eb.generation == world.Generation() && eb.count == world.Len() {
		return
	}
	eb.entities = CollectEntities(world)
	eb.generation = world.Generation()
	eb.count = world.Len()
	SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	if _, ok := world.Entity(eb.selected); !ok {
		eb.selected = 0
	}
}

func (eb *EntityBrowser) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.refresh(world)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
	}

	filtered := FilterEntities(eb.entities, eb.filterText)
	totalPages := max((len(filtered)+eb.perPage-1)/eb.perPage, 1)
	eb.currentPage = min(eb.currentPage, totalPages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Layer")
		imgui.TableSetupColumn("Tag")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			SortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			filtered = FilterEntities(eb.entities, eb.filterText)
			sortSpecs.SetSpecsDirty(false)
		}

		start := eb.currentPage * eb.perPage
		end := min(start+eb.perPage, len(filtered))
		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			label := entity.ID.String()
			if entity.Pending {
				label += " (removing)"
			}
			if imgui.SelectableBoolV(label, eb.selected == entity.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(entity.Layer)

			imgui.TableNextColumn()
			imgui.Text(entity.Tag)

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if totalPages > 1 {
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d entities", len(filtered)))
	}

	imgui.End()
}
