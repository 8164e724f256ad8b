// Package ecs is a small resource scheduler: systems run in registration
// order against a Storage of typed singleton resources, and structural
// changes are buffered in Commands until the end of the frame.
package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage holds at most one value per Go type. Values live behind stable
// pointers so cached Singleton accessors stay valid across replacements.
type Storage struct {
	typeIds    map[reflect.Type]int
	singletons *intmap.Map[int, *singletonEntry]

	// version changes whenever an entry is created or removed.
	version uint64
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{
		typeIds:    make(map[reflect.Type]int),
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

func (s *Storage) typeId(t reflect.Type) int {
	id, ok := s.typeIds[t]
	if !ok {
		id = len(s.typeIds) + 1
		s.typeIds[t] = id
	}
	return id
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	id, ok := s.typeIds[t]
	if !ok {
		return nil
	}
	entry, ok := s.singletons.Get(id)
	if !ok {
		return nil
	}
	return entry
}

// AddSingleton stores value under its dynamic type. An existing value of the
// same type is overwritten in place.
func (s *Storage) AddSingleton(value any) {
	if value == nil {
		panic("ecs: cannot add a nil singleton")
	}
	rv := reflect.ValueOf(value)
	t := rv.Type()

	if entry := s.getSingletonEntry(t); entry != nil {
		entry.value.Elem().Set(rv)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(rv)
	s.singletons.Put(s.typeId(t), &singletonEntry{
		typ:     t,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	})
	s.version++
}

// ReadSingleton fills target, which must be a **T, with a pointer to the
// stored T. It reports false and leaves target untouched when no T exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(rv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the value of type t. Cached accessors see nil, or
// the replacement if one is added later, on their next Get.
func (s *Storage) RemoveSingleton(t reflect.Type) bool {
	id, ok := s.typeIds[t]
	if !ok {
		return false
	}
	if _, ok := s.singletons.Get(id); !ok {
		return false
	}
	s.singletons.Del(id)
	s.version++
	return true
}

// StorageStats summarises the storage contents.
type StorageStats struct {
	SingletonCount int
	SingletonTypes []string
}

// CollectStats lists the stored singleton types sorted by name.
func (s *Storage) CollectStats() StorageStats {
	var stats StorageStats
	for t, id := range s.typeIds {
		if _, ok := s.singletons.Get(id); ok {
			stats.SingletonTypes = append(stats.SingletonTypes, t.String())
		}
	}
	stats.SingletonCount = len(stats.SingletonTypes)
	sort.Strings(stats.SingletonTypes)
	return stats
}

// Singletons yields each stored type with a pointer to its value, sorted by
// type name. The storage must not change during iteration.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		var entries []*singletonEntry
		for _, id := range s.typeIds {
			if entry, ok := s.singletons.Get(id); ok {
				entries = append(entries, entry)
			}
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].typ.String() < entries[j].typ.String()
		})
		for _, entry := range entries {
			if !yield(entry.typ, entry.value.Interface()) {
				return
			}
		}
	}
}
