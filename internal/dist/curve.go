package dist

import (
	"fmt"
	"sort"
)

// Point is one (x, y) pair of an empirical curve.
type Point struct {
	X float64
	Y float64
}

// Curve maps a numeric covariate to a statistic through linear interpolation
// between calibration points, clamped at both ends. Used for lookups such as
// driver age to claim rate and vehicle age to mileage statistics.
type Curve struct {
	points []Point
}

// NewCurve builds a curve from calibration points. Points are sorted by X;
// duplicate X values are rejected.
func NewCurve(points []Point) (Curve, error) {
	if len(points) == 0 {
		return Curve{}, fmt.Errorf("dist: curve needs at least one point")
	}
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].X == sorted[i-1].X {
			return Curve{}, fmt.Errorf("dist: duplicate curve point at x=%v", sorted[i].X)
		}
	}
	return Curve{points: sorted}, nil
}

// MustCurve is NewCurve for compiled-in tables.
func MustCurve(points []Point) Curve {
	c, err := NewCurve(points)
	if err != nil {
		panic(err)
	}
	return c
}

// At returns the interpolated value at x. Outside the calibrated range the
// nearest endpoint value is used.
func (c Curve) At(x float64) float64 {
	pts := c.points
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := len(pts) - 1
	if x >= pts[last].X {
		return pts[last].Y
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	lo, hi := pts[i-1], pts[i]
	t := (x - lo.X) / (hi.X - lo.X)
	return lo.Y + t*(hi.Y-lo.Y)
}

// Len returns the number of calibration points.
func (c Curve) Len() int {
	return len(c.points)
}
