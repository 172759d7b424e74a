package store

import "testing"

func TestNewInitializesHead(t *testing.T) {
	s := New(4)
	if s.Capacity() != 4 {
		t.Fatalf("Capacity() = %d, want 4", s.Capacity())
	}
	got := s.Head().Load()
	want := got
	want.Index, want.Epoch, want.Moving = 0, 0, false
	if got != want {
		t.Fatalf("Head().Load() = %+v, want zero value", got)
	}
}

func TestNewClampsMinCapacity(t *testing.T) {
	s := New(0)
	if s.Capacity() != MinCapacity {
		t.Fatalf("Capacity() = %d, want %d", s.Capacity(), MinCapacity)
	}
}

func TestNewOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New() with capacity beyond 2^31 did not panic")
		}
	}()
	New(1 << 31)
}

func TestCellIndexing(t *testing.T) {
	s := New(4)
	c := s.Cell(2)
	if c.Load() != nil {
		t.Fatal("fresh cell should be empty")
	}
	c.CASPush(nil, "x", 1)
	if s.Cell(2).Load().Item != "x" {
		t.Fatal("Cell(2) did not return a stable pointer into the array")
	}
}

func TestCASNextSingleWinner(t *testing.T) {
	s := New(2)
	succA := New(4)
	succB := New(4)
	if !s.CASNext(succA) {
		t.Fatal("first CASNext failed")
	}
	if s.CASNext(succB) {
		t.Fatal("second CASNext should fail once a successor is installed")
	}
	if s.Next() != succA {
		t.Fatal("Next() should return the first installed successor")
	}
}

func TestClaimSingleWinner(t *testing.T) {
	s := New(2)
	if !s.Claim() {
		t.Fatal("first Claim() should succeed")
	}
	if s.Claim() {
		t.Fatal("second Claim() should fail")
	}
	if !s.Claimed() {
		t.Fatal("Claimed() should be true after a successful Claim()")
	}
}

func TestGrowthCapacityDoublesByDefault(t *testing.T) {
	got := GrowthCapacity(4, 2, 0)
	if got != 8 {
		t.Fatalf("GrowthCapacity(4,2,0) = %d, want 8", got)
	}
}

func TestGrowthCapacityHonorsCompressFloor(t *testing.T) {
	got := GrowthCapacity(4, 100, 2)
	if got != 50 {
		t.Fatalf("GrowthCapacity(4,100,2) = %d, want 50", got)
	}
}

func TestGrowthCapacityNeverBelowMin(t *testing.T) {
	got := GrowthCapacity(0, 0, 10)
	if got < MinCapacity {
		t.Fatalf("GrowthCapacity(0,0,10) = %d, want >= %d", got, MinCapacity)
	}
}
