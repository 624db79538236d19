package sim

import "testing"

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}
	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"touching corner", Rect{X: 10, Y: 10, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
		{"empty", Rect{X: 2, Y: 2, W: 0, H: 5}, false},
	}
	for _, c := range cases {
		if got := a.Overlaps(c.b); got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
		if got := c.b.Overlaps(a); got != c.want {
			t.Errorf("%s (reversed): Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTickDownClampsAtZero(t *testing.T) {
	v := 0.05
	tickDown(&v, 0.1)
	if v != 0 {
		t.Fatalf("tickDown left %.3f", v)
	}
	tickDown(&v, 0.1)
	if v != 0 {
		t.Fatalf("tickDown went negative: %.3f", v)
	}
}

func TestNormalizeZero(t *testing.T) {
	if !(Vec2{}).Normalize().IsZero() {
		t.Fatal("zero vector should normalise to zero")
	}
	if l := (Vec2{X: 3, Y: 4}).Normalize().Len(); l < 0.999999 || l > 1.000001 {
		t.Fatalf("unit length = %f", l)
	}
}
