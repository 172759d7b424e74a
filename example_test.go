package hatstack_test

import (
	"fmt"

	"github.com/kolkov/hatstack"
)

// Example demonstrates basic push/pop usage.
func Example() {
	s := hatstack.New(16)
	defer s.Delete()

	s.Push("first")
	s.Push("second")

	item, empty := s.Pop()
	fmt.Println(item, empty)

	item, empty = s.Pop()
	fmt.Println(item, empty)

	_, empty = s.Pop()
	fmt.Println(empty)

	// Output:
	// second false
	// first false
	// true
}

// Example_view demonstrates taking a consistent snapshot of the
// stack's contents and iterating it in LIFO order.
func Example_view() {
	s := hatstack.New(4)
	defer s.Delete()

	s.Push(1)
	s.Push(2)
	s.Push(3)

	v := s.View()
	defer v.Delete()

	for {
		item, done := v.Next()
		if done {
			break
		}
		fmt.Println(item)
	}

	// Output:
	// 3
	// 2
	// 1
}

// Example_migration demonstrates that pushing past a stack's initial
// capacity triggers a non-blocking migration transparently; every
// pushed item survives the migration and pops back out in order.
func Example_migration() {
	s := hatstack.New(2)
	defer s.Delete()

	for i := 0; i < 5; i++ {
		s.Push(i)
	}
	for i := 4; i >= 0; i-- {
		item, _ := s.Pop()
		fmt.Println(item)
	}

	// Output:
	// 4
	// 3
	// 2
	// 1
	// 0
}
