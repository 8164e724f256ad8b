package ecs

import "reflect"

// Commands buffers work that must not run while systems are iterating.
// Buffered operations are applied in the order they were queued when the
// frame is flushed.
type Commands struct {
	ops []command
}

type command struct {
	add    any
	remove reflect.Type
	fn     func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after every system of the frame has executed.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{fn: fn})
}

// AddSingleton queues storing value, replacing any value of the same type.
func (c *Commands) AddSingleton(value any) {
	c.ops = append(c.ops, command{add: value})
}

// RemoveSingleton queues removing the resource of type t.
func (c *Commands) RemoveSingleton(t reflect.Type) {
	c.ops = append(c.ops, command{remove: t})
}

// Len is the number of queued operations.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies queued operations to storage and resets the buffer.
// Deferred functions may queue more work; it runs in the same flush.
func (c *Commands) Flush(storage *Storage) {
	for i := 0; i < len(c.ops); i++ {
		op := c.ops[i]
		switch {
		case op.fn != nil:
			op.fn()
		case op.add != nil:
			storage.AddSingleton(op.add)
		case op.remove != nil:
			storage.RemoveSingleton(op.remove)
		}
	}
	c.ops = c.ops[:0]
}
