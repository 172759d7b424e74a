package hatstack_test

import (
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/kolkov/hatstack"
)

func TestPushPopOrdering(t *testing.T) {
	s := hatstack.New(8)
	defer s.Delete()

	for _, item := range []string{"a", "b", "c"} {
		s.Push(item)
	}
	for _, want := range []string{"c", "b", "a"} {
		got, empty := s.Pop()
		if empty || got.(string) != want {
			t.Fatalf("Pop() = (%v, %v), want (%q, false)", got, empty, want)
		}
	}
}

func TestWithWaitFreeDeliversEveryPushUnderContention(t *testing.T) {
	s := hatstack.New(2, hatstack.WithWaitFree(true), hatstack.WithRetryThreshold(1))
	defer s.Delete()

	var wg sync.WaitGroup
	const n = 128
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			s.Push(i)
		}(i)
	}
	wg.Wait()

	count := 0
	for {
		if _, empty := s.Pop(); empty {
			break
		}
		count++
	}
	if count != n {
		t.Fatalf("popped %d items, want %d", count, n)
	}
}

func TestWithLoggerAcceptsNonNopLogger(t *testing.T) {
	logger := zap.NewExample()
	s := hatstack.New(4, hatstack.WithLogger(logger))
	defer s.Delete()

	s.Push("a")
	if item, empty := s.Pop(); empty || item.(string) != "a" {
		t.Fatalf("Pop() = (%v, %v), want (\"a\", false)", item, empty)
	}
}

func TestFlagConstantsMatchBitLayout(t *testing.T) {
	if hatstack.FlagPushed != 1 || hatstack.FlagPopped != 2 || hatstack.FlagMoving != 4 || hatstack.FlagMoved != 8 {
		t.Fatalf("flag constants = %d,%d,%d,%d, want 1,2,4,8",
			hatstack.FlagPushed, hatstack.FlagPopped, hatstack.FlagMoving, hatstack.FlagMoved)
	}
}
