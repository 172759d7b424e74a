package epoch

import "testing"

func TestEpochNext(t *testing.T) {
	e := Epoch(0)
	for i := 0; i < 10; i++ {
		next := e.Next()
		if next != e+1 {
			t.Fatalf("Next() = %d, want %d", next, e+1)
		}
		e = next
	}
}

func TestEpochNextOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Next() at Max did not panic")
		}
	}()
	Max.Next()
}

func TestEpochBefore(t *testing.T) {
	cases := []struct {
		a, b Epoch
		want bool
	}{
		{0, 1, true},
		{1, 0, false},
		{5, 5, false},
	}
	for _, c := range cases {
		if got := c.a.Before(c.b); got != c.want {
			t.Errorf("%d.Before(%d) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEpochAtLeast(t *testing.T) {
	if !Epoch(5).AtLeast(5) {
		t.Error("5.AtLeast(5) = false, want true")
	}
	if !Epoch(6).AtLeast(5) {
		t.Error("6.AtLeast(5) = false, want true")
	}
	if Epoch(4).AtLeast(5) {
		t.Error("4.AtLeast(5) = true, want false")
	}
}
