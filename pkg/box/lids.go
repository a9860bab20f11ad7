package box

import (
	"math"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// makeLid dispatches on lid type. The returned edges are the LID master edges
// the wall top joints derive from; they are nil for lid styles without finger
// joints (none, sliding).
func makeLid(cfg config.Box, g trapezoid.Geometry) (*panel.Panel, *baseEdges, []panel.Warning, error) {
	burn := cfg.Common.Burn
	tol := cfg.Common.Tolerance

	switch cfg.Lid {
	case config.LidNone:
		return nil, nil, nil, nil
	case config.LidLiftOff:
		return fingeredLid(g, burn, tol, "LID (lift-off)", nil, nil)
	case config.LidSliding:
		p, err := slidingLid(g, tol)
		if err != nil {
			return nil, nil, nil, err
		}
		return &p, nil, nil, nil
	case config.LidHinged:
		return fingeredLid(g, burn, tol, "LID (hinged)", hingeHoles(g, cfg.HingeDiameter), nil)
	case config.LidFlap:
		score := []geom.Line{{From: geom.Pt(0, g.LengthOuter), To: geom.Pt(g.LongOuter, g.LengthOuter)}}
		return fingeredLid(g, burn, tol, "LID (flap)", nil, score)
	}
	return nil, nil, nil, nil
}

// fingeredLid builds a trapezoid lid that masters the wall top joints.
// The outline routes through the sharp corner vertices; the edges are
// terminated with a tiny radius 2·burn·tan(θ/2), which puts the tangent
// distance at exactly 2·burn so the first feature clears the corner kerf.
func fingeredLid(g trapezoid.Geometry, burn, tol float64, label string,
	holes []panel.Hole, scoreLines []geom.Line) (*panel.Panel, *baseEdges, []panel.Warning, error) {

	rFor := func(angleDeg float64) float64 {
		return 2 * burn * math.Tan(angleDeg*math.Pi/360)
	}
	edges, ws, err := trapezoidEdges(g, rFor, rFor, burn, tol, false)
	if err != nil {
		return nil, nil, nil, err
	}

	tl, tr, br, bl := trapezoidCorners(g)
	edgeList := []joint.FingerEdge{edges.Short, edges.LegRight, edges.Long, edges.LegLeft}
	outline, err := joint.BuildOutlineStraightCorners(edgeList, []geom.Point{tl, tr, br, bl})
	if err != nil {
		return nil, nil, nil, err
	}

	lo, L := g.LongOuter, g.LengthOuter
	p := panel.Panel{
		Type: panel.Lid, Name: "LID",
		Outline:     outline,
		FingerEdges: edgeList,
		Holes:       holes,
		ScoreLines:  scoreLines,
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(lo/2, L/2)},
			{Type: panel.MarkAssemblyNum, Position: geom.Pt(lo/2, L/2+10), Content: "6"},
			{Type: panel.MarkLabel, Position: geom.Pt(g.LegInset+g.ShortOuter/2, L/2-5), Content: label},
		},
		Width: lo, Height: L,
	}
	return &p, &edges, panel.WrapWarnings("LID", ws), nil
}

// slidingLid builds the plain rectangle that slides into the leg-wall
// grooves. Width clears both grooves: short_inner − 2·(thickness+tolerance).
func slidingLid(g trapezoid.Geometry, tol float64) (panel.Panel, error) {
	w := g.ShortInner - 2*(g.Thickness+tol)
	h := g.LengthOuter

	vertices := []geom.Point{
		geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h),
	}
	outline, err := joint.BuildPlainOutline(vertices, 0, []float64{90, 90, 90, 90})
	if err != nil {
		return panel.Panel{}, err
	}

	return panel.Panel{
		Type: panel.Lid, Name: "LID",
		Outline: outline,
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(w/2, h/2)},
			{Type: panel.MarkLabel, Position: geom.Pt(w/2, h/2-5), Content: "LID (sliding)"},
		},
		Width: w, Height: h,
	}, nil
}

// hingeHoles places barrel-hinge holes along the short edge, evenly spaced,
// one per 80mm of long-edge length with a minimum of two.
func hingeHoles(g trapezoid.Geometry, diameter float64) []panel.Hole {
	lo := g.LongOuter
	n := int(lo / config.HingeSpacing)
	if n < 2 {
		n = 2
	}
	holes := make([]panel.Hole, 0, n)
	for i := 0; i < n; i++ {
		x := lo * float64(i+1) / float64(n+1)
		holes = append(holes, panel.CircleHole{
			Centre:   geom.Pt(x, g.Thickness/2),
			Diameter: diameter,
		})
	}
	return holes
}
