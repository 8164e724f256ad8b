package debugui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gazetris/ecs"
)

var durationType = reflect.TypeFor[time.Duration]()

// ResourceInspector shows every resource in storage as a tree of fields.
// Numeric and boolean fields held by value can be edited in place.
func ResourceInspector(storage *ecs.Storage) ImguiItem {
	return ImguiItem{
		Name: "Resources",
		Render: func(*ecs.Commands) {
			if !imgui.BeginV("Resources", nil, imgui.WindowFlagsNone) {
				imgui.End()
				return
			}
			for typ, value := range storage.Singletons() {
				if imgui.TreeNodeStr(typ.String()) {
					renderValue(reflect.ValueOf(value).Elem())
					imgui.TreePop()
				}
			}
			imgui.End()
		},
	}
}

func renderValue(val reflect.Value) {
	fields := fieldCache.Fields(val.Type())
	if len(fields) == 0 {
		imgui.Text(Describe(val))
		return
	}
	for _, field := range fields {
		fv := val.Field(field.Index)
		if field.IsPointer {
			// Pointed-to values may be shared with earlier states.
			imgui.Text(fmt.Sprintf("%s: %s", field.Name, Describe(fv)))
			continue
		}
		renderField(field.Name, fv)
	}
}

func renderField(name string, val reflect.Value) {
	id := fmt.Sprintf("##%s", name)

	switch {
	case val.Type() == durationType:
		imgui.Text(fmt.Sprintf("%s: %s", name, Describe(val)))
		return
	case !val.CanSet():
		imgui.Text(fmt.Sprintf("%s: %s", name, Describe(val)))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && v >= 0 {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(name + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(val)
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, Describe(val)))
	}
}

// Describe is the one-line text the inspector shows for a read-only value.
func Describe(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.Map, reflect.Slice:
		if val.IsNil() {
			return "nil"
		}
	}
	if val.CanInterface() {
		if s, ok := val.Interface().(fmt.Stringer); ok {
			return s.String()
		}
	}
	switch val.Kind() {
	case reflect.Slice, reflect.Array:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Pointer, reflect.Interface:
		return Describe(val.Elem())
	case reflect.Func, reflect.Chan:
		return val.Type().String()
	}
	if val.CanInterface() {
		return fmt.Sprintf("%v", val.Interface())
	}
	return val.Type().String()
}
