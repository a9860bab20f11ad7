// Package geom defines the planar geometry primitives for trapbox:
// points, path segments, closed paths, and pure coordinate transforms.
// The coordinate system is SVG-style Y-down, and all panel outlines are
// wound clockwise in that space.
package geom

import (
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Epsilon is the fixed tolerance for every floating-point comparison in the
// geometry core (closure, coincidence, zero-length detection). A single value
// keeps overshoot/gap checks consistent across packages.
const Epsilon = 1e-6

// Point is a 2D point or direction vector in Y-down space.
type Point = v2.Vec

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// NearlyEqual reports whether a and b differ by at most Epsilon.
func NearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Coincide reports whether two points coincide within Epsilon.
func Coincide(a, b Point) bool {
	return a.Equals(b, Epsilon)
}

// Unit returns the unit vector in the direction of p. A zero-magnitude input
// is a fatal geometric contradiction.
func Unit(p Point) (Point, error) {
	if NearlyEqual(p.Length(), 0) {
		return Point{}, fmt.Errorf("cannot normalise a zero vector")
	}
	return p.Normalize(), nil
}

// UnitBetween returns the unit vector pointing from a toward b.
func UnitBetween(a, b Point) (Point, error) {
	u, err := Unit(b.Sub(a))
	if err != nil {
		return Point{}, fmt.Errorf("coincident points (%.4f, %.4f): %w", a.X, a.Y, err)
	}
	return u, nil
}

// RotatePoint rotates p around centre by angleDeg. In Y-down space a positive
// angle is a clockwise visual rotation.
func RotatePoint(p, centre Point, angleDeg float64) Point {
	theta := angleDeg * math.Pi / 180
	d := p.Sub(centre)
	return Pt(
		centre.X+d.X*math.Cos(theta)-d.Y*math.Sin(theta),
		centre.Y+d.X*math.Sin(theta)+d.Y*math.Cos(theta),
	)
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// OddCount returns the nearest odd integer to edgeLength/fingerWidth,
// with a floor of min.
func OddCount(edgeLength, fingerWidth float64, min int) int {
	n := int(math.Round(edgeLength / fingerWidth))
	if n%2 == 0 {
		n--
	}
	if n < min {
		return min
	}
	return n
}
