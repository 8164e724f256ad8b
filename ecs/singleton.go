package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton caches access to one resource of type T. Systems declare
// Singleton fields and the Scheduler wires them on registration.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
	version       uint64
}

// NewSingleton returns an accessor for T, storing initializer (or the zero
// value) first when the storage holds no T yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	if storage.getSingletonEntry(componentType) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{storage: storage, componentType: componentType}
	s.updateCache()
	return s
}

// Init binds the accessor to storage. Called by Scheduler.Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns the stored T, or nil when it has not been added.
func (s *Singleton[T]) Get() *T {
	s.refresh()
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// Exists reports whether a T is stored.
func (s *Singleton[T]) Exists() bool {
	s.refresh()
	return s.componentPtr != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage != nil && s.version != s.storage.version {
		s.updateCache()
	}
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	s.version = s.storage.version
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}
