package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/gazetris/ecs"
)

type Rules struct {
	Width, Height int
}

type Timer struct {
	Interval time.Duration
	Elapsed  time.Duration
}

// ExampleNewSingleton stores a resource and reaches it through two accessors.
func ExampleNewSingleton() {
	storage := ecs.NewStorage()

	rules := ecs.NewSingleton(storage, Rules{Width: 10, Height: 20})
	fmt.Printf("board %dx%d\n", rules.Get().Width, rules.Get().Height)

	rules.Get().Height = 22

	same := ecs.NewSingleton[Rules](storage)
	fmt.Printf("height %d\n", same.Get().Height)

	// Output:
	// board 10x20
	// height 22
}

// ExampleStorage_ReadSingleton reads resources outside of a system.
func ExampleStorage_ReadSingleton() {
	storage := ecs.NewStorage()
	storage.AddSingleton(Timer{Interval: 800 * time.Millisecond})

	var timer *Timer
	if storage.ReadSingleton(&timer) {
		fmt.Println("interval", timer.Interval)
	}

	var rules *Rules
	if !storage.ReadSingleton(&rules) {
		fmt.Println("no rules")
	}

	// Output:
	// interval 800ms
	// no rules
}

// ExampleScheduler advances a timer resource from a system.
func ExampleScheduler() {
	storage := ecs.NewStorage()
	timer := ecs.NewSingleton(storage, Timer{Interval: 50 * time.Millisecond})

	fired := 0
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		t := timer.Get()
		t.Elapsed += frame.DeltaTime
		for t.Elapsed >= t.Interval {
			t.Elapsed -= t.Interval
			fired++
		}
	}))

	for range 7 {
		scheduler.Once(16 * time.Millisecond)
	}

	fmt.Println("fired", fired, "remaining", timer.Get().Elapsed)
	// Output: fired 2 remaining 12ms
}
