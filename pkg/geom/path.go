package geom

import (
	"fmt"
	"math"
)

// ClosedPath is an ordered, non-empty sequence of segments in which each
// segment's end meets the next segment's start, cyclically, within Epsilon.
// The invariant is enforced at construction; a ClosedPath value is always
// watertight.
type ClosedPath struct {
	Segments []Segment
}

// NewClosedPath validates the closure invariant and returns the path.
// A gap anywhere in the cycle is a constructor-time failure, not a
// later-detected bug.
func NewClosedPath(segments []Segment) (ClosedPath, error) {
	if len(segments) == 0 {
		return ClosedPath{}, fmt.Errorf("closed path must have at least one segment")
	}
	for i, s := range segments {
		next := segments[(i+1)%len(segments)]
		if !Coincide(s.End(), next.Start()) {
			e, ns := s.End(), next.Start()
			return ClosedPath{}, fmt.Errorf(
				"closed path broken at segment %d: ends at (%.4f, %.4f) but next starts at (%.4f, %.4f)",
				i, e.X, e.Y, ns.X, ns.Y)
		}
	}
	return ClosedPath{Segments: segments}, nil
}

// ArcCentre recovers an arc's centre from its two-point/radius/flags form.
// A radius too small to reach the chord is a fatal geometric contradiction.
func ArcCentre(a Arc) (Point, error) {
	mid := a.From.Add(a.To).MulScalar(0.5)
	chord := a.To.Sub(a.From)
	halfChord := chord.Length() / 2
	if halfChord > a.Radius+Epsilon {
		return Point{}, fmt.Errorf("arc radius %.4f too small for chord %.4f", a.Radius, 2*halfChord)
	}
	d := math.Sqrt(math.Max(0, a.Radius*a.Radius-halfChord*halfChord))
	var perp Point
	if halfChord > 0 {
		perp = Pt(-chord.Y, chord.X).DivScalar(2 * halfChord)
	}
	// Sign rule: (largeArc XOR clockwise) puts the centre on the
	// positive-perpendicular side of the chord.
	sign := -1.0
	if a.LargeArc != a.Clockwise {
		sign = 1.0
	}
	return mid.Add(perp.MulScalar(sign * d)), nil
}

// SamplePolyline approximates a closed path as a polygon for area and winding
// computations. Each segment contributes its start point and interior samples
// but not its endpoint, so the polygon has no duplicated vertices.
func SamplePolyline(path ClosedPath, samplesPerCurve int) ([]Point, error) {
	var pts []Point
	for _, seg := range path.Segments {
		switch v := seg.(type) {
		case Line:
			pts = append(pts, v.From)
		case Arc:
			centre, err := ArcCentre(v)
			if err != nil {
				return nil, err
			}
			startAngle := math.Atan2(v.From.Y-centre.Y, v.From.X-centre.X)
			endAngle := math.Atan2(v.To.Y-centre.Y, v.To.X-centre.X)
			if v.Clockwise {
				// Clockwise in Y-down space sweeps toward increasing angle.
				if endAngle < startAngle {
					endAngle += 2 * math.Pi
				}
				if v.LargeArc && endAngle-startAngle < math.Pi {
					endAngle += 2 * math.Pi
				}
			} else {
				if endAngle > startAngle {
					endAngle -= 2 * math.Pi
				}
				if v.LargeArc && startAngle-endAngle < math.Pi {
					endAngle -= 2 * math.Pi
				}
			}
			for i := 0; i < samplesPerCurve; i++ {
				t := float64(i) / float64(samplesPerCurve)
				angle := startAngle + t*(endAngle-startAngle)
				pts = append(pts, Pt(
					centre.X+v.Radius*math.Cos(angle),
					centre.Y+v.Radius*math.Sin(angle),
				))
			}
		case Cubic:
			for i := 0; i < samplesPerCurve; i++ {
				t := float64(i) / float64(samplesPerCurve)
				u := 1 - t
				p := v.From.MulScalar(u * u * u).
					Add(v.CP1.MulScalar(3 * u * u * t)).
					Add(v.CP2.MulScalar(3 * u * t * t)).
					Add(v.To.MulScalar(t * t * t))
				pts = append(pts, p)
			}
		}
	}
	return pts, nil
}

// IsClockwise reports the winding of a closed path using the shoelace formula.
// In Y-down space a positive signed area means clockwise.
func IsClockwise(path ClosedPath) (bool, error) {
	pts, err := SamplePolyline(path, 8)
	if err != nil {
		return false, err
	}
	n := len(pts)
	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area > 0, nil
}
