package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/mirrorworld/ecs"
)

// ComponentInspector edits the components of the selected entity in place.
// Components are held by pointer, so writes through reflection land directly
// in the world.
type ComponentInspector struct{}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{}
}

func (ci *ComponentInspector) Render(world *ecs.World, selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if selected == 0 {
		imgui.Text("No entity selected")
		return
	}

	entity, ok := world.Entity(selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %s not found", selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %s", entity.Id()))
	imgui.Text(fmt.Sprintf("Signature: 0x%02X", uint32(SignatureOf(entity))))
	if world.IsPendingRemoval(entity) {
		imgui.Text("Pending removal")
	}
	imgui.Separator()

	for _, kind := range entity.Kinds() {
		component := entity.GetComponent(kind)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(kind.String()) {
			ci.renderStruct(reflect.ValueOf(component).Elem(), kind.String())
			imgui.TreePop()
		}
	}
}

func (ci *ComponentInspector) renderStruct(val reflect.Value, path string) {
	for _, field := range globalReflectionCache.Fields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, path+"."+field.Name)
	}
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, id string) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.label(name)
		if imgui.InputInt("##"+id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.label(name)
		if imgui.InputInt("##"+id, &v) && val.CanSet() && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.label(name)
		if imgui.InputFloat("##"+id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(fmt.Sprintf("%s##%s", name, id), &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		ci.label(name)
		if imgui.InputTextWithHint("##"+id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderStruct(val, id)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func (ci *ComponentInspector) label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
