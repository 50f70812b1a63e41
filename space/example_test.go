package space_test

import (
	"fmt"

	"github.com/IvanBrykalov/lockspace/policy/auto"
	"github.com/IvanBrykalov/lockspace/space"
)

func ExampleNew() {
	s := space.New[string, int](space.Options[string, int]{})

	g, err := s.Acquire("user:42", func() int { return 0 })
	if err != nil {
		panic(err)
	}
	*g.Value() = 7
	g.Release()

	n, err := space.Compute(s, "user:42", func() int { return 0 },
		func(v *int) int { return *v })
	if err != nil {
		panic(err)
	}
	fmt.Println("value:", n)
	fmt.Println("resident:", s.Len())
	// Output:
	// value: 7
	// resident: 1
}

func ExampleSpace_TryRemove() {
	s := space.New[string, int](space.Options[string, int]{})

	g, _ := s.Acquire("job:1", func() int { return 0 })
	fmt.Println("while held:", s.TryRemove("job:1"))
	g.Release()
	fmt.Println("after release:", s.TryRemove("job:1"))
	fmt.Println("again:", s.TryRemove("job:1"))
	// Output:
	// while held: would-block
	// after release: success
	// again: not-found
}

func ExampleOptions() {
	// With the auto policy the namespace self-prunes: entries vanish as
	// soon as the last guard goes away.
	s := space.New[string, int](space.Options[string, int]{
		Cleanup: auto.New(),
	})

	_ = s.WithLock("burst", func() int { return 0 }, func(v *int) { *v++ })
	fmt.Println("resident:", s.Len())
	// Output:
	// resident: 0
}
