// Package box assembles the panels for box mode: a trapezoid base, four
// walls, an optional lid, and a test strip.
//
// Joint ownership follows the master-edge rule: the BASE trapezoid owns every
// base-to-wall joint and the LID owns every lid-to-wall joint, because their
// non-right corner angles define the exact tangent distances. Walls derive
// their mating edges from those masters rather than computing termination
// points locally; independent computation on both sides shifts the joint zone
// by the difference between the two corners' tangent distances.
package box

import (
	"fmt"
	"math"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// Build assembles all box-mode panels. Box fingers always protrude inward.
func Build(cfg config.Box, g trapezoid.Geometry, radius float64) ([]panel.Panel, []panel.Warning, error) {
	c := cfg.Common
	var panels []panel.Panel
	var warnings []panel.Warning

	base, baseEdges, ws, err := makeBase(g, radius, c.Burn, c.Tolerance)
	if err != nil {
		return nil, nil, fmt.Errorf("BASE: %w", err)
	}
	panels = append(panels, base)
	warnings = append(warnings, ws...)

	lid, lidEdges, ws, err := makeLid(cfg, g)
	if err != nil {
		return nil, nil, fmt.Errorf("LID: %w", err)
	}
	warnings = append(warnings, ws...)

	walls, ws, err := makeWalls(g, radius, c.Burn, c.Tolerance, baseEdges, lidEdges)
	if err != nil {
		return nil, nil, err
	}
	panels = append(panels, walls...)
	warnings = append(warnings, ws...)

	strip, ws, err := makeTestStrip(g, radius, c.Burn, c.Tolerance)
	if err != nil {
		return nil, nil, fmt.Errorf("TEST_STRIP: %w", err)
	}
	panels = append(panels, strip)
	warnings = append(warnings, ws...)

	if lid != nil {
		panels = append(panels, *lid)
	}

	return panels, warnings, nil
}

// baseEdges holds the BASE's four master edges in clockwise order.
type baseEdges struct {
	Short    joint.FingerEdge // TL→TR
	LegRight joint.FingerEdge // TR→BR
	Long     joint.FingerEdge // BR→BL
	LegLeft  joint.FingerEdge // BL→TL
}

// trapezoidCorners returns the four outline vertices, short edge at the top.
func trapezoidCorners(g trapezoid.Geometry) (tl, tr, br, bl geom.Point) {
	tl = geom.Pt(g.LegInset, 0)
	tr = geom.Pt(g.LegInset+g.ShortOuter, 0)
	br = geom.Pt(g.LongOuter, g.LengthOuter)
	bl = geom.Pt(0, g.LengthOuter)
	return
}

// legDir returns the unit direction of travel BL→TL (and TR→BR negated),
// which makes an angle of legAngle with the vertical.
func legDir(g trapezoid.Geometry) geom.Point {
	la := g.LegAngleDeg * math.Pi / 180
	return geom.Pt(math.Sin(la), math.Cos(la))
}

// trapezoidEdges builds the four finger edges of a trapezoid panel in
// clockwise order. Legs get the angled-joint correction.
func trapezoidEdges(g trapezoid.Geometry, rStart, rEnd func(angleDeg float64) float64,
	burn, tol float64, protrudeOutward bool) (baseEdges, []joint.Warning, error) {

	tl, tr, br, bl := trapezoidCorners(g)
	t := g.Thickness
	lea := g.LongEndAngleDeg
	sea := g.ShortEndAngleDeg

	spec := func(a, b geom.Point, angleA, angleB float64) joint.EdgeSpec {
		return joint.EdgeSpec{
			Start: a, End: b,
			Thickness: t, MatingThickness: t,
			ProtrudeOutward: protrudeOutward, Slotted: false,
			Burn: burn, Tolerance: tol,
			RadiusStart: rStart(angleA), RadiusEnd: rEnd(angleB),
			AngleStartDeg: angleA, AngleEndDeg: angleB,
		}
	}

	var all []joint.Warning
	short, ws, err := joint.NewFingerEdge(spec(tl, tr, lea, lea))
	if err != nil {
		return baseEdges{}, nil, err
	}
	all = append(all, ws...)

	legR, ws, err := joint.NewAngledFingerEdge(spec(tr, br, lea, sea), g.LegAngleDeg)
	if err != nil {
		return baseEdges{}, nil, err
	}
	all = append(all, ws...)

	long, ws, err := joint.NewFingerEdge(spec(br, bl, sea, sea))
	if err != nil {
		return baseEdges{}, nil, err
	}
	all = append(all, ws...)

	legL, ws, err := joint.NewAngledFingerEdge(spec(bl, tl, sea, lea), g.LegAngleDeg)
	if err != nil {
		return baseEdges{}, nil, err
	}
	all = append(all, ws...)

	return baseEdges{Short: short, LegRight: legR, Long: long, LegLeft: legL}, all, nil
}

// trapezoidCornerArcs builds the four fillets of a trapezoid outline in
// clockwise order starting at the top-left vertex.
func trapezoidCornerArcs(g trapezoid.Geometry, radius float64) []joint.CornerArc {
	tl, tr, br, bl := trapezoidCorners(g)
	leg := legDir(g)
	lea := g.LongEndAngleDeg
	sea := g.ShortEndAngleDeg

	return []joint.CornerArc{
		joint.CornerArcAt(tl, geom.Pt(leg.X, -leg.Y), geom.Pt(1, 0), radius, lea),
		joint.CornerArcAt(tr, geom.Pt(1, 0), leg, radius, lea),
		joint.CornerArcAt(br, leg, geom.Pt(-1, 0), radius, sea),
		joint.CornerArcAt(bl, geom.Pt(-1, 0), geom.Pt(-leg.X, -leg.Y), radius, sea),
	}
}

func makeBase(g trapezoid.Geometry, radius, burn, tol float64) (panel.Panel, baseEdges, []panel.Warning, error) {
	fixed := func(float64) float64 { return radius }
	edges, ws, err := trapezoidEdges(g, fixed, fixed, burn, tol, false)
	if err != nil {
		return panel.Panel{}, baseEdges{}, nil, err
	}

	edgeList := []joint.FingerEdge{edges.Short, edges.LegRight, edges.Long, edges.LegLeft}
	outline, err := joint.BuildOutline(edgeList, trapezoidCornerArcs(g, radius))
	if err != nil {
		return panel.Panel{}, baseEdges{}, nil, err
	}

	lo, L := g.LongOuter, g.LengthOuter
	p := panel.Panel{
		Type: panel.Base, Name: "BASE",
		Outline:     outline,
		FingerEdges: edgeList,
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(lo/2, L/2)},
			{Type: panel.MarkAssemblyNum, Position: geom.Pt(lo/2, L/2+10), Content: "1"},
			{Type: panel.MarkLabel, Position: geom.Pt(g.LegInset+g.ShortOuter/2, L/2-5), Content: "BASE"},
		},
		Width: lo, Height: L,
	}
	return p, edges, panel.WrapWarnings("BASE", ws), nil
}

func makeWalls(g trapezoid.Geometry, radius, burn, tol float64,
	base baseEdges, lid *baseEdges) ([]panel.Panel, []panel.Warning, error) {

	t := g.Thickness
	d := g.DepthOuter
	var panels []panel.Panel
	var warnings []panel.Warning

	type wallSpec struct {
		ptype  panel.Type
		name   string
		width  float64
		bottom joint.FingerEdge
		top    *joint.FingerEdge
		asm    string
	}

	specs := []wallSpec{
		{panel.WallLong, "WALL_LONG", g.LongOuter, base.Long, nil, "2"},
		{panel.WallShort, "WALL_SHORT", g.ShortOuter, base.Short, nil, "3"},
		{panel.WallLegLeft, "WALL_LEG_LEFT", g.LegLength, base.LegLeft, nil, "4"},
	}
	if lid != nil {
		specs[0].top = &lid.Long
		specs[1].top = &lid.Short
		specs[2].top = &lid.LegLeft
	}

	for _, s := range specs {
		w, ws, err := makeWall(s.ptype, s.name, s.width, d, t, radius, burn, tol, s.bottom, s.top, s.asm)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", s.name, err)
		}
		panels = append(panels, w)
		warnings = append(warnings, ws...)
	}

	// The trapezoid is isosceles: the right leg wall is a copy of the left.
	legRight := panels[2]
	legRight.Type = panel.WallLegRight
	legRight.Name = "WALL_LEG_RIGHT"
	legRight.Marks = relabel(legRight.Marks, "WALL_LEG_RIGHT", "5")
	panels = append(panels, legRight)

	return panels, warnings, nil
}

// makeWall builds one rectangular wall. The bottom edge derives from its BASE
// master; the top edge derives from its LID master when one exists, else it
// is computed locally (still slotted, so a lid cut later matches). Side edges
// are wall-to-wall joints between identical 90° corners and are symmetric by
// construction.
func makeWall(ptype panel.Type, name string, width, height, t, radius, burn, tol float64,
	bottomMaster joint.FingerEdge, topMaster *joint.FingerEdge, asm string) (panel.Panel, []panel.Warning, error) {

	tl := geom.Pt(0, 0)
	tr := geom.Pt(width, 0)
	br := geom.Pt(width, height)
	bl := geom.Pt(0, height)

	corners := rectCornerArcs(width, height, radius)

	local := func(a, b geom.Point, slotted bool) joint.EdgeSpec {
		return joint.EdgeSpec{
			Start: a, End: b,
			Thickness: t, MatingThickness: t,
			Slotted: slotted,
			Burn:    burn, Tolerance: tol,
			RadiusStart: radius, RadiusEnd: radius,
			AngleStartDeg: 90, AngleEndDeg: 90,
		}
	}

	var warnings []joint.Warning

	var top joint.FingerEdge
	var err error
	if topMaster != nil {
		top, err = joint.DeriveMatingEdge(tl, tr, *topMaster, false)
	} else {
		var ws []joint.Warning
		top, ws, err = joint.NewFingerEdge(local(tl, tr, true))
		warnings = append(warnings, ws...)
	}
	if err != nil {
		return panel.Panel{}, nil, err
	}

	right, ws, err := joint.NewFingerEdge(local(tr, br, false))
	if err != nil {
		return panel.Panel{}, nil, err
	}
	warnings = append(warnings, ws...)

	bottom, err := joint.DeriveMatingEdge(br, bl, bottomMaster, false)
	if err != nil {
		return panel.Panel{}, nil, err
	}

	left, ws, err := joint.NewFingerEdge(local(bl, tl, false))
	if err != nil {
		return panel.Panel{}, nil, err
	}
	warnings = append(warnings, ws...)

	edges := []joint.FingerEdge{top, right, bottom, left}
	outline, err := joint.BuildOutline(edges, corners)
	if err != nil {
		return panel.Panel{}, nil, err
	}

	marks := []panel.Mark{
		{Type: panel.MarkGrainArrow, Position: geom.Pt(width/2, height/2)},
	}
	if asm != "" {
		marks = append(marks, panel.Mark{Type: panel.MarkAssemblyNum, Position: geom.Pt(width/2, height/2+10), Content: asm})
	}
	marks = append(marks, panel.Mark{Type: panel.MarkLabel, Position: geom.Pt(width/2, height/2-5), Content: name})

	p := panel.Panel{
		Type: ptype, Name: name,
		Outline:     outline,
		FingerEdges: edges,
		Marks:       marks,
		Width:       width, Height: height,
	}
	return p, panel.WrapWarnings(name, warnings), nil
}

// rectCornerArcs builds the four 90° fillets of a w×h rectangle, clockwise
// from top-left.
func rectCornerArcs(w, h, radius float64) []joint.CornerArc {
	tl := geom.Pt(0, 0)
	tr := geom.Pt(w, 0)
	br := geom.Pt(w, h)
	bl := geom.Pt(0, h)
	return []joint.CornerArc{
		joint.CornerArcAt(tl, geom.Pt(0, -1), geom.Pt(1, 0), radius, 90),
		joint.CornerArcAt(tr, geom.Pt(1, 0), geom.Pt(0, 1), radius, 90),
		joint.CornerArcAt(br, geom.Pt(0, 1), geom.Pt(-1, 0), radius, 90),
		joint.CornerArcAt(bl, geom.Pt(-1, 0), geom.Pt(0, -1), radius, 90),
	}
}

// makeTestStrip builds a 60mm × 3×depth strip whose bottom edge matches the
// WALL_LONG bottom joint profile, for dialing in burn and tolerance on scrap.
func makeTestStrip(g trapezoid.Geometry, radius, burn, tol float64) (panel.Panel, []panel.Warning, error) {
	t := g.Thickness
	w := config.TestStripWidth
	h := 3 * g.DepthOuter

	tl := geom.Pt(0, 0)
	tr := geom.Pt(w, 0)
	br := geom.Pt(w, h)
	bl := geom.Pt(0, h)

	spec := func(a, b geom.Point, slotted bool) joint.EdgeSpec {
		return joint.EdgeSpec{
			Start: a, End: b,
			Thickness: t, MatingThickness: t,
			Slotted: slotted,
			Burn:    burn, Tolerance: tol,
			RadiusStart: radius, RadiusEnd: radius,
			AngleStartDeg: 90, AngleEndDeg: 90,
		}
	}

	var warnings []joint.Warning
	var edges []joint.FingerEdge
	for _, e := range []struct {
		a, b    geom.Point
		slotted bool
	}{
		{tl, tr, true}, {tr, br, false}, {br, bl, true}, {bl, tl, false},
	} {
		edge, ws, err := joint.NewFingerEdge(spec(e.a, e.b, e.slotted))
		if err != nil {
			return panel.Panel{}, nil, err
		}
		edges = append(edges, edge)
		warnings = append(warnings, ws...)
	}

	outline, err := joint.BuildOutline(edges, rectCornerArcs(w, h, radius))
	if err != nil {
		return panel.Panel{}, nil, err
	}

	p := panel.Panel{
		Type: panel.TestStrip, Name: "TEST_STRIP",
		Outline:     outline,
		FingerEdges: edges,
		Marks: []panel.Mark{
			{Type: panel.MarkLabel, Position: geom.Pt(w/2, h/2), Content: "TEST STRIP"},
		},
		Width: w, Height: h,
	}
	return p, panel.WrapWarnings("TEST_STRIP", warnings), nil
}

func relabel(marks []panel.Mark, label, asm string) []panel.Mark {
	out := make([]panel.Mark, len(marks))
	for i, m := range marks {
		switch m.Type {
		case panel.MarkLabel:
			m.Content = label
		case panel.MarkAssemblyNum:
			m.Content = asm
		}
		out[i] = m
	}
	return out
}
