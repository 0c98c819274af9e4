// Package diagram turns closed-form beam functions into ordered
// (position, value) series for charting.
package diagram

import "fmt"

// DefaultPoints is the partition size used for smooth curves. 51 points over
// the span keeps the resolution at L/50, matching the charts the frontend
// renders.
const DefaultPoints = 51

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is an ordered sequence of samples over [0, span]: positions strictly
// increasing, first 0, last span. Treated as immutable once built.
type Series []Point

// Sample evaluates f at n evenly spaced positions over [0, span], inclusive
// of both endpoints. Only suited to continuous functions; step functions must
// list their breakpoints explicitly (see Steps).
func Sample(span float64, n int, f func(x float64) float64) (Series, error) {
	if span <= 0 {
		return nil, fmt.Errorf("span must be positive")
	}
	if n < 2 {
		return nil, fmt.Errorf("need at least 2 points")
	}
	s := make(Series, n)
	step := span / float64(n-1)
	for i := 0; i < n; i++ {
		x := float64(i) * step
		if i == n-1 {
			x = span // avoid drifting past the end support
		}
		s[i] = Point{X: x, Y: f(x)}
	}
	return s, nil
}

// Steps builds a sparse series from explicit breakpoints. A uniformly sampled
// step function would smear the jump across an interval, so piecewise-constant
// diagrams carry exactly their defining points.
func Steps(points ...Point) (Series, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 points")
	}
	for i := 1; i < len(points); i++ {
		if points[i].X <= points[i-1].X {
			return nil, fmt.Errorf("positions must be strictly increasing")
		}
	}
	return Series(points), nil
}

// MaxY returns the largest value in the series and its position.
func (s Series) MaxY() (x, y float64) {
	if len(s) == 0 {
		return 0, 0
	}
	x, y = s[0].X, s[0].Y
	for _, p := range s[1:] {
		if p.Y > y {
			x, y = p.X, p.Y
		}
	}
	return x, y
}
