package joint

import (
	"fmt"

	"github.com/chazu/trapbox/pkg/geom"
)

// BuildOutline stitches finger edges and corner fillets into one watertight
// clockwise outline. edges and corners have equal length n; corners[i] joins
// edges[i-1] to edges[i], cyclically.
//
// Per corner: a line from the previous edge's final point to the arc start
// (omitted if coincident), the arc, a line from the arc end to the current
// edge's zone start (omitted if coincident), then the edge's features. A
// final closing segment is appended if floating-point residue leaves the
// cycle open.
func BuildOutline(edges []FingerEdge, corners []CornerArc) (geom.ClosedPath, error) {
	n := len(edges)
	if len(corners) != n {
		return geom.ClosedPath{}, fmt.Errorf("outline: %d edges but %d corner arcs", n, len(corners))
	}
	if n == 0 {
		return geom.ClosedPath{}, fmt.Errorf("outline: no edges")
	}

	var segs []geom.Segment
	for i := 0; i < n; i++ {
		c := corners[i]
		prevEnd := edges[(i+n-1)%n].lastPoint()

		if !geom.Coincide(prevEnd, c.Start) {
			segs = append(segs, geom.Line{From: prevEnd, To: c.Start})
		}
		segs = append(segs, c.Arc)
		if !geom.Coincide(c.End, edges[i].TermStart) {
			segs = append(segs, geom.Line{From: c.End, To: edges[i].TermStart})
		}
		segs = append(segs, edges[i].Segments()...)
	}

	segs = closeResidue(segs)
	return geom.NewClosedPath(segs)
}

// BuildOutlineStraightCorners assembles an outline from finger edges whose
// corners get no fillet treatment: each corner is the shared vertex itself,
// reached and left by straight segments. Used where the joint geometry
// defines the corner, such as lids. vertices[i] is the corner preceding
// edges[i].
func BuildOutlineStraightCorners(edges []FingerEdge, vertices []geom.Point) (geom.ClosedPath, error) {
	n := len(edges)
	if len(vertices) != n {
		return geom.ClosedPath{}, fmt.Errorf("outline: %d edges but %d vertices", n, len(vertices))
	}
	if n == 0 {
		return geom.ClosedPath{}, fmt.Errorf("outline: no edges")
	}

	var segs []geom.Segment
	for i := 0; i < n; i++ {
		v := vertices[i]
		prevEnd := edges[(i+n-1)%n].lastPoint()

		if !geom.Coincide(prevEnd, v) {
			segs = append(segs, geom.Line{From: prevEnd, To: v})
		}
		if !geom.Coincide(v, edges[i].TermStart) {
			segs = append(segs, geom.Line{From: v, To: edges[i].TermStart})
		}
		segs = append(segs, edges[i].Segments()...)
	}

	segs = closeResidue(segs)
	return geom.NewClosedPath(segs)
}

// BuildPlainOutline builds an unjointed outline from clockwise vertices.
// With radius 0 it is a plain polygon; otherwise lines alternate with corner
// fillets. angles[i] is the interior angle at vertices[i].
func BuildPlainOutline(vertices []geom.Point, radius float64, angles []float64) (geom.ClosedPath, error) {
	n := len(vertices)
	if len(angles) != n {
		return geom.ClosedPath{}, fmt.Errorf("outline: %d vertices but %d angles", n, len(angles))
	}
	if n < 3 {
		return geom.ClosedPath{}, fmt.Errorf("outline: need at least 3 vertices, got %d", n)
	}

	if geom.NearlyEqual(radius, 0) {
		segs := make([]geom.Segment, n)
		for i := 0; i < n; i++ {
			segs[i] = geom.Line{From: vertices[i], To: vertices[(i+1)%n]}
		}
		return geom.NewClosedPath(segs)
	}

	corners := make([]CornerArc, n)
	for i := 0; i < n; i++ {
		prev := vertices[(i+n-1)%n]
		curr := vertices[i]
		next := vertices[(i+1)%n]
		arriving, err := geom.UnitBetween(prev, curr)
		if err != nil {
			return geom.ClosedPath{}, fmt.Errorf("outline vertex %d: %w", i, err)
		}
		departing, err := geom.UnitBetween(curr, next)
		if err != nil {
			return geom.ClosedPath{}, fmt.Errorf("outline vertex %d: %w", i, err)
		}
		corners[i] = CornerArcAt(curr, arriving, departing, radius, angles[i])
	}

	var segs []geom.Segment
	for i := 0; i < n; i++ {
		segs = append(segs, corners[i].Arc)
		nextStart := corners[(i+1)%n].Start
		if !geom.Coincide(corners[i].End, nextStart) {
			segs = append(segs, geom.Line{From: corners[i].End, To: nextStart})
		}
	}
	return geom.NewClosedPath(segs)
}

// closeResidue appends a closing segment if the sequence's last point does
// not meet its first within tolerance.
func closeResidue(segs []geom.Segment) []geom.Segment {
	if len(segs) == 0 {
		return segs
	}
	first := segs[0].Start()
	last := segs[len(segs)-1].End()
	if !geom.Coincide(first, last) {
		segs = append(segs, geom.Line{From: last, To: first})
	}
	return segs
}
