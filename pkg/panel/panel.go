// Package panel defines the Panel value: a closed cut outline plus its finger
// edges, holes, score lines, and marks. Panels are built once and never
// mutated; transforms produce new values.
package panel

import (
	"fmt"

	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
)

// Type identifies a panel's role in the assembly.
type Type string

const (
	Base         Type = "BASE"
	WallLong     Type = "WALL_LONG"
	WallShort    Type = "WALL_SHORT"
	WallLegLeft  Type = "WALL_LEG_LEFT"
	WallLegRight Type = "WALL_LEG_RIGHT"
	Soundboard   Type = "SOUNDBOARD"
	Lid          Type = "LID"
	NeckBlock    Type = "NECK_BLOCK"
	TailBlock    Type = "TAIL_BLOCK"
	KerfStrip    Type = "KERF_STRIP"
	KerfFillet   Type = "KERF_FILLET"
	TestStrip    Type = "TEST_STRIP"
)

// MarkType identifies a non-cut annotation.
type MarkType int

const (
	MarkLabel MarkType = iota
	MarkGrainArrow
	MarkAssemblyNum
)

// Mark is an etched or printed annotation on a panel.
type Mark struct {
	Type     MarkType
	Position geom.Point
	Content  string
	AngleDeg float64
}

// Hole is a cut-out inside a panel outline: a circle or an arbitrary closed
// path. The set is sealed; serialisers switch exhaustively.
type Hole interface {
	sealedHole()
}

// CircleHole is a circular cut-out.
type CircleHole struct {
	Centre   geom.Point
	Diameter float64
}

func (CircleHole) sealedHole() {}

// PathHole is an arbitrary closed cut-out.
type PathHole struct {
	Path geom.ClosedPath
}

func (PathHole) sealedHole() {}

// Panel is one laser-cut part.
type Panel struct {
	Type Type
	Name string

	Outline     geom.ClosedPath
	FingerEdges []joint.FingerEdge
	Holes       []Hole
	ScoreLines  []geom.Line
	Marks       []Mark

	// FingerZoneBoundaries are non-cut corner arcs etched where the outline
	// itself has straight corners (instrument base, soundboard).
	FingerZoneBoundaries []geom.Arc

	GrainAngleDeg float64

	// Nominal outer dimensions, used by sheet layout.
	Width  float64
	Height float64
}

// BoundingBox returns the nominal (width, height) used for packing.
func (p Panel) BoundingBox() (w, h float64) {
	return p.Width, p.Height
}

// Warning is a panel-level diagnostic surfaced to the user.
type Warning struct {
	Panel   string
	Message string
}

func (w Warning) String() string {
	if w.Panel == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Panel, w.Message)
}

// WrapWarnings attaches a panel name to joint-level warnings.
func WrapWarnings(name string, ws []joint.Warning) []Warning {
	out := make([]Warning, 0, len(ws))
	for _, w := range ws {
		out = append(out, Warning{Panel: name, Message: w.Message})
	}
	return out
}

// Rotate90CW returns the panel rotated 90° clockwise: (x, y) -> (y, w - x)
// with w the panel's nominal width. The transform is orientation-preserving
// (det = +1), so arc sweep flags are unchanged. Width and height swap and the
// grain angle advances by 90°.
func Rotate90CW(p Panel) Panel {
	w := p.Width
	rot := func(pt geom.Point) geom.Point { return geom.Pt(pt.Y, w-pt.X) }

	rotPath := func(path geom.ClosedPath) geom.ClosedPath {
		segs := make([]geom.Segment, len(path.Segments))
		for i, s := range path.Segments {
			switch v := s.(type) {
			case geom.Line:
				segs[i] = geom.Line{From: rot(v.From), To: rot(v.To)}
			case geom.Arc:
				segs[i] = geom.Arc{From: rot(v.From), To: rot(v.To), Radius: v.Radius, LargeArc: v.LargeArc, Clockwise: v.Clockwise}
			case geom.Cubic:
				segs[i] = geom.Cubic{From: rot(v.From), CP1: rot(v.CP1), CP2: rot(v.CP2), To: rot(v.To)}
			}
		}
		return geom.ClosedPath{Segments: segs}
	}

	holes := make([]Hole, len(p.Holes))
	for i, h := range p.Holes {
		switch v := h.(type) {
		case CircleHole:
			holes[i] = CircleHole{Centre: rot(v.Centre), Diameter: v.Diameter}
		case PathHole:
			holes[i] = PathHole{Path: rotPath(v.Path)}
		}
	}

	scores := make([]geom.Line, len(p.ScoreLines))
	for i, sl := range p.ScoreLines {
		scores[i] = geom.Line{From: rot(sl.From), To: rot(sl.To)}
	}

	marks := make([]Mark, len(p.Marks))
	for i, m := range p.Marks {
		marks[i] = Mark{Type: m.Type, Position: rot(m.Position), Content: m.Content, AngleDeg: m.AngleDeg + 90}
	}

	zones := make([]geom.Arc, len(p.FingerZoneBoundaries))
	for i, a := range p.FingerZoneBoundaries {
		zones[i] = geom.Arc{From: rot(a.From), To: rot(a.To), Radius: a.Radius, LargeArc: a.LargeArc, Clockwise: a.Clockwise}
	}

	out := p
	out.Outline = rotPath(p.Outline)
	out.Holes = holes
	out.ScoreLines = scores
	out.Marks = marks
	out.FingerZoneBoundaries = zones
	out.Width = p.Height
	out.Height = p.Width
	out.GrainAngleDeg = p.GrainAngleDeg + 90
	return out
}
