package box

import (
	"math"
	"testing"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

func boxConfig(lid config.LidType) config.Box {
	cfg := config.DefaultBox()
	cfg.Common.Long = 180
	cfg.Common.Short = 120
	cfg.Common.Length = config.Float(380)
	cfg.Common.Depth = 90
	cfg.Lid = lid
	return cfg
}

func buildBox(t *testing.T, lid config.LidType) ([]panel.Panel, config.Box, trapezoid.Geometry) {
	t.Helper()
	cfg := boxConfig(lid)
	if errs := config.ValidateBox(cfg); len(errs) != 0 {
		t.Fatalf("config invalid: %v", errs)
	}
	g := trapezoid.Derive(cfg.Common.Dims())
	radius, err := joint.ResolveCornerRadius(cfg.Common.CornerRadius, cfg.Common.Thickness,
		g.ShortOuter, g.DepthOuter)
	if err != nil {
		t.Fatal(err)
	}
	panels, _, err := Build(cfg, g, radius)
	if err != nil {
		t.Fatal(err)
	}
	return panels, cfg, g
}

func find(t *testing.T, panels []panel.Panel, ptype panel.Type) panel.Panel {
	t.Helper()
	for _, p := range panels {
		if p.Type == ptype {
			return p
		}
	}
	t.Fatalf("no panel of type %s", ptype)
	return panel.Panel{}
}

func TestBuildPanelSet(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidNone)
	if len(panels) != 6 {
		t.Fatalf("panel count = %d, want 6 (base, 4 walls, test strip)", len(panels))
	}

	panels, _, _ = buildBox(t, config.LidLiftOff)
	if len(panels) != 7 {
		t.Fatalf("panel count = %d, want 7 with a lid", len(panels))
	}
	if panels[len(panels)-1].Type != panel.Lid {
		t.Error("lid must be appended last for layout ordering")
	}
}

func TestAssemblyNumbering(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidLiftOff)
	want := map[panel.Type]string{
		panel.Base:         "1",
		panel.WallLong:     "2",
		panel.WallShort:    "3",
		panel.WallLegLeft:  "4",
		panel.WallLegRight: "5",
		panel.Lid:          "6",
	}
	for ptype, num := range want {
		p := find(t, panels, ptype)
		found := ""
		for _, m := range p.Marks {
			if m.Type == panel.MarkAssemblyNum {
				found = m.Content
			}
		}
		if found != num {
			t.Errorf("%s assembly number = %q, want %q", ptype, found, num)
		}
	}
}

func TestWallDimensions(t *testing.T) {
	panels, _, g := buildBox(t, config.LidNone)
	tests := []struct {
		ptype panel.Type
		width float64
	}{
		{panel.WallLong, g.LongOuter},
		{panel.WallShort, g.ShortOuter},
		{panel.WallLegLeft, g.LegLength},
		{panel.WallLegRight, g.LegLength},
	}
	for _, tt := range tests {
		p := find(t, panels, tt.ptype)
		if math.Abs(p.Width-tt.width) > geom.Epsilon {
			t.Errorf("%s width = %g, want %g", tt.ptype, p.Width, tt.width)
		}
		if math.Abs(p.Height-g.DepthOuter) > geom.Epsilon {
			t.Errorf("%s height = %g, want %g", tt.ptype, p.Height, g.DepthOuter)
		}
	}
}

// The alignment that matters at assembly: a wall's bottom joint zone must
// mirror its base master's exactly, offsets reversed end-for-end.
func TestWallBottomDerivesFromBaseMaster(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidNone)
	base := find(t, panels, panel.Base)
	// Base clockwise edge order: short, leg right, long, leg left.
	masters := map[panel.Type]joint.FingerEdge{
		panel.WallShort:   base.FingerEdges[0],
		panel.WallLegLeft: base.FingerEdges[3],
		panel.WallLong:    base.FingerEdges[2],
	}

	for ptype, master := range masters {
		wall := find(t, panels, ptype)
		bottom := wall.FingerEdges[2] // top, right, bottom, left

		if bottom.Count != master.Count {
			t.Errorf("%s: bottom count %d != master count %d", ptype, bottom.Count, master.Count)
		}
		if math.Abs(bottom.FingerWidth-master.FingerWidth) > geom.Epsilon {
			t.Errorf("%s: bottom width %g != master width %g", ptype, bottom.FingerWidth, master.FingerWidth)
		}
		if bottom.Slotted == master.Slotted {
			t.Errorf("%s: bottom polarity must oppose the master", ptype)
		}

		// Reversed term offsets.
		bStart := bottom.TermStart.Sub(bottom.Start).Length()
		mEnd := master.TermEnd.Sub(master.End).Length()
		if math.Abs(bStart-mEnd) > geom.Epsilon {
			t.Errorf("%s: bottom start offset %.4f != master end offset %.4f", ptype, bStart, mEnd)
		}
	}
}

func TestWallTopsWithoutLidAreSlotted(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidNone)
	for _, ptype := range []panel.Type{panel.WallLong, panel.WallShort, panel.WallLegLeft} {
		wall := find(t, panels, ptype)
		top := wall.FingerEdges[0]
		if !top.Slotted {
			t.Errorf("%s: top edge must stay slotted so a lid cut later still fits", ptype)
		}
	}
}

func TestWallTopsDeriveFromLidMasters(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidLiftOff)
	lid := find(t, panels, panel.Lid)
	// Lid clockwise edge order matches the base: short, leg right, long, leg left.
	masters := map[panel.Type]joint.FingerEdge{
		panel.WallShort:   lid.FingerEdges[0],
		panel.WallLong:    lid.FingerEdges[2],
		panel.WallLegLeft: lid.FingerEdges[3],
	}
	for ptype, master := range masters {
		wall := find(t, panels, ptype)
		top := wall.FingerEdges[0]
		if top.Count != master.Count {
			t.Errorf("%s: top count %d != lid master count %d", ptype, top.Count, master.Count)
		}
		if top.Slotted == master.Slotted {
			t.Errorf("%s: top polarity must oppose the lid master", ptype)
		}
	}
}

func TestLegWallsAreIdenticalCopies(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidNone)
	left := find(t, panels, panel.WallLegLeft)
	right := find(t, panels, panel.WallLegRight)

	if len(left.Outline.Segments) != len(right.Outline.Segments) {
		t.Fatal("isosceles legs must produce identical outlines")
	}
	for i := range left.Outline.Segments {
		if !geom.Coincide(left.Outline.Segments[i].Start(), right.Outline.Segments[i].Start()) {
			t.Fatalf("leg outlines diverge at segment %d", i)
		}
	}
}

func TestLegWallBottomUsesAngledDepth(t *testing.T) {
	panels, cfg, g := buildBox(t, config.LidNone)
	leg := find(t, panels, panel.WallLegLeft)
	long := find(t, panels, panel.WallLong)

	alpha := g.LegAngleDeg * math.Pi / 180
	wantDepth := cfg.Common.Thickness / math.Cos(alpha)
	if math.Abs(leg.FingerEdges[2].Depth-wantDepth) > geom.Epsilon {
		t.Errorf("leg bottom depth = %g, want %g (tilted joint)", leg.FingerEdges[2].Depth, wantDepth)
	}
	if math.Abs(long.FingerEdges[2].Depth-cfg.Common.Thickness) > geom.Epsilon {
		t.Errorf("long bottom depth = %g, want plain thickness", long.FingerEdges[2].Depth)
	}
}

func TestOutlinesAreWatertightClockwise(t *testing.T) {
	for _, lid := range []config.LidType{config.LidNone, config.LidLiftOff, config.LidSliding, config.LidHinged, config.LidFlap} {
		panels, _, _ := buildBox(t, lid)
		for _, p := range panels {
			cw, err := geom.IsClockwise(p.Outline)
			if err != nil {
				t.Fatalf("lid %s, panel %s: %v", lid, p.Name, err)
			}
			if !cw {
				t.Errorf("lid %s, panel %s: outline not clockwise", lid, p.Name)
			}
		}
	}
}

func TestSlidingLidGeometry(t *testing.T) {
	panels, cfg, g := buildBox(t, config.LidSliding)
	lid := find(t, panels, panel.Lid)

	wantW := g.ShortInner - 2*(cfg.Common.Thickness+cfg.Common.Tolerance)
	if math.Abs(lid.Width-wantW) > geom.Epsilon {
		t.Errorf("sliding lid width = %g, want %g", lid.Width, wantW)
	}
	if len(lid.FingerEdges) != 0 {
		t.Error("sliding lid has no finger joints")
	}
	if len(lid.Outline.Segments) != 4 {
		t.Errorf("sliding lid outline = %d segments, want a plain rectangle", len(lid.Outline.Segments))
	}

	// No lid masters: wall tops are computed locally and stay slotted.
	top := find(t, panels, panel.WallLong).FingerEdges[0]
	if !top.Slotted {
		t.Error("wall tops must stay slotted with a sliding lid")
	}
}

func TestHingedLidHoles(t *testing.T) {
	panels, cfg, g := buildBox(t, config.LidHinged)
	lid := find(t, panels, panel.Lid)

	wantN := int(g.LongOuter / config.HingeSpacing)
	if wantN < 2 {
		wantN = 2
	}
	if len(lid.Holes) != wantN {
		t.Fatalf("hinge hole count = %d, want %d", len(lid.Holes), wantN)
	}
	for i, h := range lid.Holes {
		c, ok := h.(panel.CircleHole)
		if !ok {
			t.Fatalf("hole %d: hinge holes are circles", i)
		}
		if c.Diameter != cfg.HingeDiameter {
			t.Errorf("hole %d diameter = %g, want %g", i, c.Diameter, cfg.HingeDiameter)
		}
		if math.Abs(c.Centre.Y-cfg.Common.Thickness/2) > geom.Epsilon {
			t.Errorf("hole %d y = %g, want on the hinge line t/2", i, c.Centre.Y)
		}
	}
}

func TestFlapLidScoreLine(t *testing.T) {
	panels, _, g := buildBox(t, config.LidFlap)
	lid := find(t, panels, panel.Lid)
	if len(lid.ScoreLines) != 1 {
		t.Fatalf("score line count = %d, want 1 fold line", len(lid.ScoreLines))
	}
	s := lid.ScoreLines[0]
	if math.Abs(s.From.Y-g.LengthOuter) > geom.Epsilon || math.Abs(s.To.Y-g.LengthOuter) > geom.Epsilon {
		t.Errorf("fold line at y=%g..%g, want %g", s.From.Y, s.To.Y, g.LengthOuter)
	}
	if len(lid.Holes) != 0 {
		t.Error("flap lid has no hinge holes")
	}
}

func TestFingeredLidHasStraightCorners(t *testing.T) {
	panels, _, _ := buildBox(t, config.LidLiftOff)
	lid := find(t, panels, panel.Lid)
	for _, s := range lid.Outline.Segments {
		if _, ok := s.(geom.Arc); ok {
			t.Fatal("fingered lid outlines route through sharp corner vertices")
		}
	}
}

func TestTestStripDimensions(t *testing.T) {
	panels, _, g := buildBox(t, config.LidNone)
	strip := find(t, panels, panel.TestStrip)
	if strip.Width != config.TestStripWidth {
		t.Errorf("strip width = %g, want %g", strip.Width, config.TestStripWidth)
	}
	if math.Abs(strip.Height-3*g.DepthOuter) > geom.Epsilon {
		t.Errorf("strip height = %g, want 3×depth", strip.Height)
	}
}
