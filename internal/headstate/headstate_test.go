package headstate

import (
	"sync"
	"testing"

	"github.com/kolkov/hatstack/internal/epoch"
)

func TestNewIsInitializing(t *testing.T) {
	w := New()
	if !w.Initializing() {
		t.Fatal("New() word is not initializing")
	}
}

func TestInit(t *testing.T) {
	w := New()
	if !w.Init() {
		t.Fatal("Init() returned false on first call")
	}
	if w.Initializing() {
		t.Fatal("word still initializing after Init()")
	}
	got := w.Load()
	want := Value{Index: 0, Epoch: 0, Moving: false}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
	if w.Init() {
		t.Fatal("Init() returned true on second call")
	}
}

func TestInitConcurrentSingleWinner(t *testing.T) {
	w := New()
	const n = 64
	var wins int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if w.Init() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("Init() succeeded %d times, want 1", wins)
	}
}

func TestReserveIndexForPush(t *testing.T) {
	w := New()
	w.Init()
	cur := w.Load()
	next := ReserveIndexForPush(cur)
	if next.Index != 1 || next.Epoch != 1 {
		t.Fatalf("ReserveIndexForPush(%+v) = %+v", cur, next)
	}
	if !w.CAS(cur, next) {
		t.Fatal("CAS failed on uncontended word")
	}
	if w.CAS(cur, next) {
		t.Fatal("CAS succeeded twice against stale expected value")
	}
}

func TestReserveIndexForPop(t *testing.T) {
	w := New()
	w.Init()
	cur := w.Load()
	cur = ReserveIndexForPush(cur)
	w.CAS(Value{}, cur)

	popped := ReserveIndexForPop(cur)
	if popped.Index != 0 || popped.Epoch != cur.Epoch.Next() {
		t.Fatalf("ReserveIndexForPop(%+v) = %+v", cur, popped)
	}
}

func TestWithMoving(t *testing.T) {
	cur := Value{Index: 3, Epoch: 7}
	moved := WithMoving(cur)
	if !moved.Moving || moved.Index != 3 || moved.Epoch != 7 {
		t.Fatalf("WithMoving(%+v) = %+v", cur, moved)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	vals := []Value{
		{Index: 0, Epoch: 0, Moving: false},
		{Index: 1 << 20, Epoch: 1 << 20, Moving: true},
		{Index: uint32(indexMask), Epoch: epoch.Epoch(epochMask), Moving: true},
	}
	for _, v := range vals {
		raw := v.encode()
		got := decodeRaw(raw)
		if got != v {
			t.Errorf("round trip %+v -> %x -> %+v", v, raw, got)
		}
	}
}

func TestMaxEpochUnaffectedByMovingBit(t *testing.T) {
	v := Value{Index: 5, Epoch: epoch.Max, Moving: true}
	got := decodeRaw(v.encode())
	if got.Epoch != epoch.Max || !got.Moving || got.Index != 5 {
		t.Errorf("decodeRaw(encode(%+v)) = %+v", v, got)
	}
}
