package export

import (
	"strings"
	"testing"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/layout"
	"github.com/chazu/trapbox/pkg/panel"
)

func mustPath(t *testing.T, segs []geom.Segment) geom.ClosedPath {
	t.Helper()
	p, err := geom.NewClosedPath(segs)
	if err != nil {
		t.Fatalf("NewClosedPath: %v", err)
	}
	return p
}

func TestPathDataLinesAndArc(t *testing.T) {
	path := mustPath(t, []geom.Segment{
		geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 10, Y: 0}},
		geom.Arc{
			From: geom.Point{X: 10, Y: 0}, To: geom.Point{X: 10, Y: 10},
			Radius: 5, Clockwise: true,
		},
		geom.Line{From: geom.Point{X: 10, Y: 10}, To: geom.Point{X: 0, Y: 0}},
	})
	got := pathData(path, geom.Point{X: 1, Y: 2})
	want := "M 1.0000 2.0000" +
		" L 11.0000 2.0000" +
		" A 5.0000 5.0000 0 0 1 11.0000 12.0000" +
		" L 1.0000 2.0000 Z"
	if got != want {
		t.Errorf("pathData = %q, want %q", got, want)
	}
}

func TestArcData(t *testing.T) {
	a := geom.Arc{
		From: geom.Point{X: 3, Y: 4}, To: geom.Point{X: 7, Y: 4},
		Radius: 2, LargeArc: true, Clockwise: false,
	}
	got := arcData(a, geom.Point{})
	want := "M 3.0000 4.0000 A 2.0000 2.0000 0 1 0 7.0000 4.0000"
	if got != want {
		t.Errorf("arcData = %q, want %q", got, want)
	}
}

func TestFlag(t *testing.T) {
	if flag(true) != 1 || flag(false) != 0 {
		t.Error("flag should map true->1, false->0")
	}
}

func testPanel(t *testing.T, name string) panel.Panel {
	t.Helper()
	return panel.Panel{
		Type: panel.Base,
		Name: name,
		Outline: mustPath(t, []geom.Segment{
			geom.Line{From: geom.Point{X: 0, Y: 0}, To: geom.Point{X: 40, Y: 0}},
			geom.Line{From: geom.Point{X: 40, Y: 0}, To: geom.Point{X: 40, Y: 20}},
			geom.Line{From: geom.Point{X: 40, Y: 20}, To: geom.Point{X: 0, Y: 20}},
			geom.Line{From: geom.Point{X: 0, Y: 20}, To: geom.Point{X: 0, Y: 0}},
		}),
		Width:  40,
		Height: 20,
	}
}

func TestWriteSVGSheetFiltersBySheet(t *testing.T) {
	placements := []layout.Placement{
		{Panel: testPanel(t, "BASE"), Origin: geom.Point{X: 10, Y: 10}, Sheet: 0},
		{Panel: testPanel(t, "LID"), Origin: geom.Point{X: 10, Y: 10}, Sheet: 1},
	}
	var b strings.Builder
	if err := WriteSVGSheet(&b, placements, 0, config.DefaultCommon(), "box"); err != nil {
		t.Fatalf("WriteSVGSheet: %v", err)
	}
	out := b.String()

	if !strings.Contains(out, "Panel: BASE") {
		t.Error("sheet 0 output missing BASE panel")
	}
	if strings.Contains(out, "Panel: LID") {
		t.Error("sheet 0 output should not contain the sheet 1 panel")
	}
	if !strings.Contains(out, config.SVGNamespace) {
		t.Error("metadata namespace missing")
	}
	if !strings.Contains(out, config.ToolVersion) {
		t.Error("tool version missing from metadata")
	}
	// Physical units so the laser driver gets real millimetres.
	if !strings.Contains(out, "mm") {
		t.Error("viewport should be in millimetres")
	}
	// Outline translated by the placement origin.
	if !strings.Contains(out, "M 10.0000 10.0000") {
		t.Errorf("outline not translated to placement origin:\n%s", out)
	}
}

func TestWriteSVGSheetEmbedsConfig(t *testing.T) {
	c := config.DefaultCommon()
	c.Long = 180
	var b strings.Builder
	if err := WriteSVGSheet(&b, nil, 0, c, "instrument"); err != nil {
		t.Fatalf("WriteSVGSheet: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "<trapezoidbox:mode>instrument</trapezoidbox:mode>") {
		t.Error("mode missing from metadata")
	}
	if !strings.Contains(out, "CDATA") || !strings.Contains(out, "180") {
		t.Error("config blob missing from metadata")
	}
}
