// Package instrument assembles the panels for instrument mode: the trapezoid
// back (BASE), four walls, a soundboard, kerfing stock, and glue blocks.
//
// Instrument outlines cut straight corners (radius 0); the corner radius
// still shapes the finger-joint zones, whose boundaries are etched on BASE
// and SOUNDBOARD as assembly guides. As in box mode the BASE masters every
// base-to-wall joint and walls derive their mating edges from it.
package instrument

import (
	"fmt"
	"math"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/soundhole"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// Build assembles all instrument-mode panels and the soundhole tuning
// result (nil when no soundhole is requested).
func Build(cfg config.Instrument, g trapezoid.Geometry, radius float64) ([]panel.Panel, []panel.Warning, *soundhole.Result, error) {
	outward := cfg.FingerDirection == config.FingerOutward
	burn := cfg.Common.Burn
	tol := cfg.Common.Tolerance

	var panels []panel.Panel
	var warnings []panel.Warning

	base, masters, ws, err := makeBase(g, radius, outward, burn, tol)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("BASE: %w", err)
	}
	panels = append(panels, base)
	warnings = append(warnings, ws...)

	walls, ws, err := makeWalls(g, outward, burn, tol, masters)
	if err != nil {
		return nil, nil, nil, err
	}
	panels = append(panels, walls...)
	warnings = append(warnings, ws...)

	board, holes, result, err := makeSoundboard(cfg, g, radius)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("SOUNDBOARD: %w", err)
	}
	board.Holes = holes
	if cfg.Braces {
		board = addBraceScoreLines(board, g)
	}
	if cfg.ScaleLength != nil {
		board = addScaleMark(board, g, *cfg.ScaleLength)
	}
	panels = append(panels, board)

	strip, ws, err := makeTestStrip(g, outward, burn, tol)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("TEST_STRIP: %w", err)
	}
	panels = append(panels, strip)
	warnings = append(warnings, ws...)

	if cfg.Hardware {
		nb, err := glueBlock(panel.NeckBlock, "NECK_BLOCK",
			"NECK BLOCK — glue inside short end.", cfg.NeckBlockThickness, g.DepthOuter)
		if err != nil {
			return nil, nil, nil, err
		}
		tb, err := glueBlock(panel.TailBlock, "TAIL_BLOCK",
			"TAIL BLOCK — glue inside long end.", cfg.TailBlockThickness, g.DepthOuter)
		if err != nil {
			return nil, nil, nil, err
		}
		panels = append(panels, nb, tb)
	}

	if cfg.Kerfing {
		strips, err := kerfStrips(cfg, g)
		if err != nil {
			return nil, nil, nil, err
		}
		panels = append(panels, strips...)
		fillets, err := kerfFillets(cfg, g)
		if err != nil {
			return nil, nil, nil, err
		}
		panels = append(panels, fillets...)
	}

	panels = addAssemblyMarks(panels)
	return panels, warnings, result, nil
}

// wallMasters holds the BASE's four master edges in clockwise order.
type wallMasters struct {
	Short   joint.FingerEdge
	Long    joint.FingerEdge
	LegLeft joint.FingerEdge
}

func trapezoidCorners(g trapezoid.Geometry) (tl, tr, br, bl geom.Point) {
	tl = geom.Pt(g.LegInset, 0)
	tr = geom.Pt(g.LegInset+g.ShortOuter, 0)
	br = geom.Pt(g.LongOuter, g.LengthOuter)
	bl = geom.Pt(0, g.LengthOuter)
	return
}

// cornerZoneArcs returns the four finger-zone boundary arcs of the trapezoid,
// clockwise from top-left. They are etched, never cut.
func cornerZoneArcs(g trapezoid.Geometry, radius float64) []geom.Arc {
	tl, tr, br, bl := trapezoidCorners(g)
	la := g.LegAngleDeg * math.Pi / 180
	leg := geom.Pt(math.Sin(la), math.Cos(la))
	lea := g.LongEndAngleDeg
	sea := g.ShortEndAngleDeg

	arcs := []joint.CornerArc{
		joint.CornerArcAt(tl, geom.Pt(leg.X, -leg.Y), geom.Pt(1, 0), radius, lea),
		joint.CornerArcAt(tr, geom.Pt(1, 0), leg, radius, lea),
		joint.CornerArcAt(br, leg, geom.Pt(-1, 0), radius, sea),
		joint.CornerArcAt(bl, geom.Pt(-1, 0), geom.Pt(-leg.X, -leg.Y), radius, sea),
	}
	out := make([]geom.Arc, len(arcs))
	for i, c := range arcs {
		out[i] = c.Arc
	}
	return out
}

func makeBase(g trapezoid.Geometry, radius float64, outward bool, burn, tol float64) (panel.Panel, wallMasters, []panel.Warning, error) {
	t := g.Thickness
	tl, tr, br, bl := trapezoidCorners(g)
	lea := g.LongEndAngleDeg
	sea := g.ShortEndAngleDeg

	spec := func(a, b geom.Point, angleA, angleB float64) joint.EdgeSpec {
		return joint.EdgeSpec{
			Start: a, End: b,
			Thickness: t, MatingThickness: t,
			ProtrudeOutward: outward,
			Burn:            burn, Tolerance: tol,
			RadiusStart: radius, RadiusEnd: radius,
			AngleStartDeg: angleA, AngleEndDeg: angleB,
		}
	}

	var all []joint.Warning
	short, ws, err := joint.NewFingerEdge(spec(tl, tr, lea, lea))
	if err != nil {
		return panel.Panel{}, wallMasters{}, nil, err
	}
	all = append(all, ws...)

	legR, ws, err := joint.NewAngledFingerEdge(spec(tr, br, lea, sea), g.LegAngleDeg)
	if err != nil {
		return panel.Panel{}, wallMasters{}, nil, err
	}
	all = append(all, ws...)

	long, ws, err := joint.NewFingerEdge(spec(br, bl, sea, sea))
	if err != nil {
		return panel.Panel{}, wallMasters{}, nil, err
	}
	all = append(all, ws...)

	legL, ws, err := joint.NewAngledFingerEdge(spec(bl, tl, sea, lea), g.LegAngleDeg)
	if err != nil {
		return panel.Panel{}, wallMasters{}, nil, err
	}
	all = append(all, ws...)

	edges := []joint.FingerEdge{short, legR, long, legL}
	outline, err := joint.BuildOutlineStraightCorners(edges, []geom.Point{tl, tr, br, bl})
	if err != nil {
		return panel.Panel{}, wallMasters{}, nil, err
	}

	lo, L := g.LongOuter, g.LengthOuter
	p := panel.Panel{
		Type: panel.Base, Name: "BASE",
		Outline:              outline,
		FingerEdges:          edges,
		FingerZoneBoundaries: cornerZoneArcs(g, radius),
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(lo/2, L/2)},
			{Type: panel.MarkLabel, Position: geom.Pt(g.LegInset+g.ShortOuter/2, L/2-5), Content: "BASE"},
		},
		Width: lo, Height: L,
	}
	masters := wallMasters{Short: short, Long: long, LegLeft: legL}
	return p, masters, panel.WrapWarnings("BASE", all), nil
}

func makeWalls(g trapezoid.Geometry, outward bool, burn, tol float64, m wallMasters) ([]panel.Panel, []panel.Warning, error) {
	t := g.Thickness
	d := g.DepthOuter

	var panels []panel.Panel
	var warnings []panel.Warning

	specs := []struct {
		ptype  panel.Type
		name   string
		width  float64
		bottom joint.FingerEdge
	}{
		{panel.WallLong, "WALL_LONG", g.LongOuter, m.Long},
		{panel.WallShort, "WALL_SHORT", g.ShortOuter, m.Short},
		{panel.WallLegLeft, "WALL_LEG_LEFT", g.LegLength, m.LegLeft},
	}

	for _, s := range specs {
		w, ws, err := wall(s.ptype, s.name, s.width, d, t, outward, burn, tol, s.bottom)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", s.name, err)
		}
		panels = append(panels, w)
		warnings = append(warnings, ws...)
	}

	legRight := panels[2]
	legRight.Type = panel.WallLegRight
	legRight.Name = "WALL_LEG_RIGHT"
	marks := make([]panel.Mark, len(legRight.Marks))
	for i, mk := range legRight.Marks {
		if mk.Type == panel.MarkLabel {
			mk.Content = "WALL_LEG_RIGHT"
		}
		marks[i] = mk
	}
	legRight.Marks = marks
	panels = append(panels, legRight)

	return panels, warnings, nil
}

// wall builds one rectangular wall with straight corners. The bottom edge
// derives from its BASE master; the top edge is slotted locally (the
// soundboard sits on kerfing, not fingers, but the slots vent glue).
func wall(ptype panel.Type, name string, width, height, t float64, outward bool,
	burn, tol float64, bottomMaster joint.FingerEdge) (panel.Panel, []panel.Warning, error) {

	tl := geom.Pt(0, 0)
	tr := geom.Pt(width, 0)
	br := geom.Pt(width, height)
	bl := geom.Pt(0, height)

	local := func(a, b geom.Point, slotted bool) joint.EdgeSpec {
		return joint.EdgeSpec{
			Start: a, End: b,
			Thickness: t, MatingThickness: t,
			ProtrudeOutward: outward, Slotted: slotted,
			Burn: burn, Tolerance: tol,
			AngleStartDeg: 90, AngleEndDeg: 90,
		}
	}

	var warnings []joint.Warning
	top, ws, err := joint.NewFingerEdge(local(tl, tr, true))
	if err != nil {
		return panel.Panel{}, nil, err
	}
	warnings = append(warnings, ws...)

	right, ws, err := joint.NewFingerEdge(local(tr, br, false))
	if err != nil {
		return panel.Panel{}, nil, err
	}
	warnings = append(warnings, ws...)

	bottom, err := joint.DeriveMatingEdge(br, bl, bottomMaster, outward)
	if err != nil {
		return panel.Panel{}, nil, err
	}

	left, ws, err := joint.NewFingerEdge(local(bl, tl, false))
	if err != nil {
		return panel.Panel{}, nil, err
	}
	warnings = append(warnings, ws...)

	edges := []joint.FingerEdge{top, right, bottom, left}
	outline, err := joint.BuildOutlineStraightCorners(edges, []geom.Point{tl, tr, br, bl})
	if err != nil {
		return panel.Panel{}, nil, err
	}

	p := panel.Panel{
		Type: ptype, Name: name,
		Outline:     outline,
		FingerEdges: edges,
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(width/2, height/2)},
			{Type: panel.MarkLabel, Position: geom.Pt(width/2, height/2-5), Content: name},
		},
		Width: width, Height: height,
	}
	return p, panel.WrapWarnings(name, warnings), nil
}

// makeSoundboard builds the plain trapezoid top with etched corner-zone arcs
// and the soundhole cut-outs.
func makeSoundboard(cfg config.Instrument, g trapezoid.Geometry, radius float64) (panel.Panel, []panel.Hole, *soundhole.Result, error) {
	tl, tr, br, bl := trapezoidCorners(g)
	lea := g.LongEndAngleDeg
	sea := g.ShortEndAngleDeg

	outline, err := joint.BuildPlainOutline([]geom.Point{tl, tr, br, bl}, 0, []float64{lea, lea, sea, sea})
	if err != nil {
		return panel.Panel{}, nil, nil, err
	}

	holes, result, err := soundhole.Compute(cfg, g)
	if err != nil {
		return panel.Panel{}, nil, nil, err
	}

	lo, L := g.LongOuter, g.LengthOuter
	p := panel.Panel{
		Type: panel.Soundboard, Name: "SOUNDBOARD",
		Outline:              outline,
		FingerZoneBoundaries: cornerZoneArcs(g, radius),
		Marks: []panel.Mark{
			{Type: panel.MarkGrainArrow, Position: geom.Pt(lo/2, L/2)},
			{Type: panel.MarkLabel, Position: geom.Pt(g.LegInset+g.ShortOuter/2, L/2-5), Content: "SOUNDBOARD"},
		},
		Width: lo, Height: L,
	}
	return p, holes, result, nil
}

func makeTestStrip(g trapezoid.Geometry, outward bool, burn, tol float64) (panel.Panel, []panel.Warning, error) {
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
			ProtrudeOutward: outward, Slotted: slotted,
			Burn: burn, Tolerance: tol,
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

	outline, err := joint.BuildOutlineStraightCorners(edges, []geom.Point{tl, tr, br, bl})
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
