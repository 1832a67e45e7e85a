package dist

import "testing"

func TestCurveInterpolatesAndClamps(t *testing.T) {
	c := MustCurve([]Point{{X: 10, Y: 100}, {X: 0, Y: 0}, {X: 20, Y: 50}})
	cases := []struct{ x, want float64 }{
		{-5, 0},
		{0, 0},
		{5, 50},
		{10, 100},
		{15, 75},
		{20, 50},
		{99, 50},
	}
	for _, tc := range cases {
		if got := c.At(tc.x); got != tc.want {
			t.Fatalf("At(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestCurveSinglePoint(t *testing.T) {
	c := MustCurve([]Point{{X: 3, Y: 7}})
	for _, x := range []float64{-1, 3, 100} {
		if got := c.At(x); got != 7 {
			t.Fatalf("At(%v) = %v", x, got)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("len: %d", c.Len())
	}
}

func TestNewCurveRejectsBadInput(t *testing.T) {
	if _, err := NewCurve(nil); err == nil {
		t.Fatalf("expected error for empty curve")
	}
	if _, err := NewCurve([]Point{{X: 1, Y: 1}, {X: 1, Y: 2}}); err == nil {
		t.Fatalf("expected error for duplicate x")
	}
}

func TestNewCurveDoesNotMutateInput(t *testing.T) {
	pts := []Point{{X: 2, Y: 2}, {X: 1, Y: 1}}
	if _, err := NewCurve(pts); err != nil {
		t.Fatalf("new: %v", err)
	}
	if pts[0].X != 2 {
		t.Fatalf("input reordered: %v", pts)
	}
}
