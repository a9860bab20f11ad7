// Package joint computes finger-joint and corner-fillet geometry: tangent
// points where fillet arcs meet panel edges, odd finger counts with
// kerf/tolerance-compensated drawn widths, non-orthogonal joint correction,
// and the assembly of per-panel closed outlines.
package joint

import (
	"fmt"
	"math"

	"github.com/chazu/trapbox/pkg/geom"
)

const (
	// AutoCornerRadiusFactor scales panel thickness to the default fillet radius.
	AutoCornerRadiusFactor = 3.0
	// MinCornerRadius is the floor for the auto fillet radius, in mm.
	MinCornerRadius = 5.0
	// AutoFingerWidthFactor scales panel thickness to the target finger width.
	AutoFingerWidthFactor = 3.0
	// MinFingerCount is the smallest jointed finger count; fewer degrades to a
	// plain edge.
	MinFingerCount = 3
	// MinStructRatio is the minimum remaining structural tab width after
	// tolerance and rotational overcut, as a fraction of panel thickness.
	// Enforced by config validation, not by the builders here.
	MinStructRatio = 0.5
)

// CornerArc is a fillet at one panel corner: the tangent point on the
// incoming edge, the arc, and the tangent point on the outgoing edge.
type CornerArc struct {
	Start geom.Point
	Arc   geom.Arc
	End   geom.Point
}

// AutoCornerRadius returns AutoCornerRadiusFactor × thickness rounded to the
// nearest mm, floored at MinCornerRadius.
func AutoCornerRadius(thickness float64) float64 {
	r := math.Round(AutoCornerRadiusFactor * thickness)
	return math.Max(MinCornerRadius, r)
}

// ResolveCornerRadius returns the explicit radius if given, else the auto
// radius, and rejects radii that cannot fit the panel.
func ResolveCornerRadius(explicit *float64, thickness, shortOuter, depthOuter float64) (float64, error) {
	r := AutoCornerRadius(thickness)
	if explicit != nil {
		r = *explicit
	}
	if r >= shortOuter/2 {
		return 0, fmt.Errorf("corner radius %gmm must be < short_outer/2 (%.3fmm)", r, shortOuter/2)
	}
	if r >= depthOuter/2 {
		return 0, fmt.Errorf("corner radius %gmm must be < depth_outer/2 (%.3fmm)", r, depthOuter/2)
	}
	return r, nil
}

// CornerArcAt computes the fillet at a vertex.
//
// arriving is the unit direction pointing toward the vertex along the
// incoming edge; departing points away from the vertex along the outgoing
// edge. interiorAngleDeg is the interior angle at the vertex, in (0, 180).
//
// The arc centre lies along normalize(-arriving + departing), the inward
// bisector. Negating both directions instead yields the same-magnitude centre
// on the wrong side of the corner — a test-covered pitfall.
//
// All fillets in this system subtend under 180°, so the large-arc flag is
// always false; outlines are wound clockwise in Y-down space, so the sweep
// flag is always true.
func CornerArcAt(vertex, arriving, departing geom.Point, radius, interiorAngleDeg float64) CornerArc {
	tangentDist := TangentDistance(radius, interiorAngleDeg)

	start := vertex.Sub(arriving.MulScalar(tangentDist))
	end := vertex.Add(departing.MulScalar(tangentDist))

	return CornerArc{
		Start: start,
		Arc: geom.Arc{
			From:      start,
			To:        end,
			Radius:    radius,
			LargeArc:  false,
			Clockwise: true,
		},
		End: end,
	}
}

// Centre returns the fillet arc's centre: centreDistance = R/sin(θ/2) along
// the inward bisector from the vertex. Exposed for verification; outline
// assembly only needs the two-point/radius/flags form.
func (c CornerArc) Centre() (geom.Point, error) {
	return geom.ArcCentre(c.Arc)
}

// TangentDistance is the distance from a corner vertex to the point where a
// fillet of the given radius becomes tangent to an adjacent edge.
func TangentDistance(radius, interiorAngleDeg float64) float64 {
	return radius / math.Tan(interiorAngleDeg/2*math.Pi/180)
}

// CentreDistance is the distance from a corner vertex to the fillet centre.
func CentreDistance(radius, interiorAngleDeg float64) float64 {
	return radius / math.Sin(interiorAngleDeg/2*math.Pi/180)
}

// TerminationPoint is the point along an edge where the corner fillet ends
// and the finger-joint zone may begin: tangentDistance from the vertex along
// edgeDir (a unit vector from the vertex toward the edge interior).
func TerminationPoint(vertex, edgeDir geom.Point, radius, interiorAngleDeg float64) geom.Point {
	return vertex.Add(edgeDir.MulScalar(TangentDistance(radius, interiorAngleDeg)))
}
