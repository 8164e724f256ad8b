// Package debugui draws Dear ImGui overlays from scheduler resources. Panels
// are registered on a Panels singleton and rendered after the frame's
// systems have run.
package debugui

import (
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gazetris/ecs"
)

// ImguiItem is one window of the overlay. Render runs while the frame's
// commands are flushed; changes it queues on cmds apply in the same flush.
type ImguiItem struct {
	Name   string
	Render func(cmds *ecs.Commands)
}

// ImguiInputState tracks whether ImGui is consuming input this frame.
// Game input handlers should skip events ImGui wants. It is only present
// while the overlay is visible.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Panels is the overlay's window list.
type Panels struct {
	Items  []ImguiItem
	Hidden bool
}

func (p *Panels) Add(items ...ImguiItem) {
	p.Items = append(p.Items, items...)
}

// Toggle flips visibility and returns the new state.
func (p *Panels) Toggle() bool {
	p.Hidden = !p.Hidden
	return !p.Hidden
}

// ImguiSystem refreshes ImguiInputState and defers every visible panel's
// render function so windows draw after all systems have updated state.
// Hiding the overlay removes ImguiInputState; showing it adds it back.
type ImguiSystem struct {
	Panels     ecs.Singleton[Panels]
	InputState ecs.Singleton[ImguiInputState]

	// Capture reads the input state. Defaults to CurrentCapture.
	Capture func() ImguiInputState
}

var inputStateType = reflect.TypeFor[ImguiInputState]()

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	panels := i.Panels.Get()
	if panels == nil || panels.Hidden {
		if i.InputState.Exists() {
			frame.Commands.RemoveSingleton(inputStateType)
		}
		return
	}

	capture := i.Capture
	if capture == nil {
		capture = CurrentCapture
	}
	if state := i.InputState.Get(); state != nil {
		*state = capture()
	} else {
		frame.Commands.AddSingleton(capture())
	}

	for _, item := range panels.Items {
		frame.Commands.Defer(func() { item.Render(frame.Commands) })
	}
}

// CurrentCapture reads the capture flags from the current ImGui context.
func CurrentCapture() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// Host is anything that owns a storage and runs systems against it, such as
// an *ecs.Scheduler or a game session.
type Host interface {
	Storage() *ecs.Storage
	Register(system ecs.System)
}

// Install registers the Panels and input resources plus the systems that
// drive them, and returns the panel list for callers to fill. A nil capture
// uses CurrentCapture.
func Install(host Host, capture func() ImguiInputState) *Panels {
	storage := host.Storage()
	panels := ecs.NewSingleton[Panels](storage)
	ecs.NewSingleton[ImguiInputState](storage)
	ecs.NewSingleton(storage, NewPerformanceStats(DefaultHistoryFrames))

	host.Register(&PerformanceSystem{})
	host.Register(&ImguiSystem{Capture: capture})
	return panels.Get()
}
