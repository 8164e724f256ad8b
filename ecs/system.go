package ecs

// System is one step of a frame. Systems may declare Singleton fields,
// which Scheduler.Register wires to the scheduler's storage, and keep any
// other state they need between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }
