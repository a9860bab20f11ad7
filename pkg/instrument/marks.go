package instrument

import (
	"strconv"

	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// Fixed assembly order: back first, walls clockwise, soundboard last.
var assemblyOrder = map[panel.Type]string{
	panel.Base:         "1",
	panel.WallLong:     "2",
	panel.WallShort:    "3",
	panel.WallLegLeft:  "4",
	panel.WallLegRight: "5",
	panel.Soundboard:   "6",
}

// addAssemblyMarks numbers the structural panels per the fixed order and the
// kerfing pieces from 7 upward, in build-list order.
func addAssemblyMarks(panels []panel.Panel) []panel.Panel {
	kerfNum := 7
	out := make([]panel.Panel, len(panels))
	for i, p := range panels {
		var num string
		if n, ok := assemblyOrder[p.Type]; ok {
			num = n
		} else if p.Type == panel.KerfStrip || p.Type == panel.KerfFillet {
			num = strconv.Itoa(kerfNum)
			kerfNum++
		} else {
			out[i] = p
			continue
		}
		marks := append([]panel.Mark(nil), p.Marks...)
		marks = append(marks, panel.Mark{
			Type:     panel.MarkAssemblyNum,
			Position: geom.Pt(p.Width/2, p.Height/2),
			Content:  num,
		})
		p.Marks = marks
		out[i] = p
	}
	return out
}

// addBraceScoreLines etches the two brace positions across the soundboard,
// at a quarter and 0.65 of the body length from the short end.
func addBraceScoreLines(board panel.Panel, g trapezoid.Geometry) panel.Panel {
	lo := g.LongOuter
	y1 := 0.25 * g.LengthOuter
	y2 := 0.65 * g.LengthOuter
	board.ScoreLines = append(append([]geom.Line(nil), board.ScoreLines...),
		geom.Line{From: geom.Pt(0, y1), To: geom.Pt(lo, y1)},
		geom.Line{From: geom.Pt(0, y2), To: geom.Pt(lo, y2)},
	)
	return board
}

// addScaleMark etches the bridge position at half the scale length from the
// short end.
func addScaleMark(board panel.Panel, g trapezoid.Geometry, scaleLength float64) panel.Panel {
	y := scaleLength / 2
	board.ScoreLines = append(append([]geom.Line(nil), board.ScoreLines...),
		geom.Line{From: geom.Pt(0, y), To: geom.Pt(g.LongOuter, y)},
	)
	return board
}
