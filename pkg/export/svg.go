// Package export serialises packed sheets to cutter-ready files. It does no
// geometry of its own: everything arrives as placed panels and leaves as SVG
// or DXF text.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo/float"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/layout"
	"github.com/chazu/trapbox/pkg/panel"
)

// svgMeta is the machine-readable config block embedded in each sheet, so a
// cut file can regenerate itself.
type svgMeta struct {
	Version string        `json:"trapezoid_boxes_version"`
	Common  config.Common `json:"common"`
}

// WriteSVGSheet renders one sheet of placements as a standalone SVG
// document, dimensions in millimetres.
func WriteSVGSheet(w io.Writer, placements []layout.Placement, sheet int, c config.Common, mode string) error {
	canvas := svg.New(w)
	canvas.StartviewUnit(c.SheetWidth, c.SheetHeight, "mm", 0, 0, c.SheetWidth, c.SheetHeight)

	fmt.Fprintln(w, "<!-- trapbox v"+config.ToolVersion+" — dimensions in millimetres")
	fmt.Fprintln(w, "     IMPORTANT: Verify scale before cutting.")
	fmt.Fprintln(w, "     Open in Inkscape and confirm Document Properties shows correct physical dimensions. -->")

	if err := writeMetadata(w, c, mode); err != nil {
		return err
	}

	canvas.Def()
	canvas.Marker("arrow", 3, 3, 6, 6, `orient="auto"`, `markerUnits="strokeWidth"`)
	canvas.Path("M0,0 L0,6 L6,3 z", "fill:black")
	canvas.MarkerEnd()
	canvas.DefEnd()

	for _, pl := range placements {
		if pl.Sheet != sheet {
			continue
		}
		fmt.Fprintf(w, "<!-- Panel: %s at (%.3f,%.3f) -->\n", pl.Panel.Name, pl.Origin.X, pl.Origin.Y)
		renderPanel(canvas, pl.Panel, pl.Origin, c)
	}

	canvas.End()
	return nil
}

func writeMetadata(w io.Writer, c config.Common, mode string) error {
	blob, err := json.Marshal(svgMeta{Version: config.ToolVersion, Common: c})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "<metadata xmlns:trapezoidbox=%q>\n", config.SVGNamespace)
	fmt.Fprintf(w, "  <trapezoidbox:version>%s</trapezoidbox:version>\n", config.ToolVersion)
	fmt.Fprintf(w, "  <trapezoidbox:mode>%s</trapezoidbox:mode>\n", mode)
	fmt.Fprintf(w, "  <trapezoidbox:generated>%s</trapezoidbox:generated>\n",
		time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Fprintf(w, "  <trapezoidbox:config><![CDATA[%s]]></trapezoidbox:config>\n", blob)
	fmt.Fprintln(w, "</metadata>")
	return nil
}

func renderPanel(canvas *svg.SVG, p panel.Panel, origin geom.Point, c config.Common) {
	cutColour := config.SVGCutColour
	scoreColour := config.SVGScoreColour
	if c.Colorblind {
		cutColour = config.SVGCBCutColour
		scoreColour = config.SVGCBScoreColour
	}
	cutStroke := c.DisplayStrokeMM
	if cutStroke <= 0 {
		cutStroke = config.SVGHairline
	}
	cutStyle := fmt.Sprintf("stroke:%s;fill:none;stroke-width:%.4f", cutColour, cutStroke)

	canvas.Path(pathData(p.Outline, origin), cutStyle)

	for _, h := range p.Holes {
		switch h := h.(type) {
		case panel.CircleHole:
			canvas.Circle(h.Centre.X+origin.X, h.Centre.Y+origin.Y, h.Diameter/2, cutStyle)
		case panel.PathHole:
			canvas.Path(pathData(h.Path, origin), cutStyle)
		}
	}

	scoreStyle := fmt.Sprintf("stroke:%s;stroke-width:%.4f;stroke-dasharray:%.1f %.1f",
		scoreColour, config.SVGHairline, config.SVGScoreDash, config.SVGScoreGap)
	for _, sl := range p.ScoreLines {
		canvas.Line(sl.From.X+origin.X, sl.From.Y+origin.Y,
			sl.To.X+origin.X, sl.To.Y+origin.Y, scoreStyle)
	}
	etchStyle := fmt.Sprintf("stroke:%s;fill:none;stroke-width:%.4f;stroke-dasharray:%.1f %.1f",
		scoreColour, config.SVGHairline, config.SVGScoreDash, config.SVGScoreGap)
	for _, a := range p.FingerZoneBoundaries {
		canvas.Path(arcData(a, origin), etchStyle)
	}

	renderMarks(canvas, p, origin, c)
}

func renderMarks(canvas *svg.SVG, p panel.Panel, origin geom.Point, c config.Common) {
	cx := origin.X + p.Width/2
	cy := origin.Y + p.Height/2
	arrowLen := math.Max(p.Width, p.Height) * 0.2

	for _, m := range p.Marks {
		switch m.Type {
		case panel.MarkGrainArrow:
			a := (p.GrainAngleDeg) * math.Pi / 180
			dx := math.Cos(a) * arrowLen / 2
			dy := math.Sin(a) * arrowLen / 2
			canvas.Line(cx-dx, cy-dy, cx+dx, cy+dy,
				fmt.Sprintf("stroke:%s;stroke-width:%.2f", config.SVGLabelColour, config.SVGLabelStroke),
				`marker-start="url(#arrow)"`, `marker-end="url(#arrow)"`)
		case panel.MarkLabel:
			if !c.Labels {
				continue
			}
			canvas.Text(m.Position.X+origin.X, m.Position.Y+origin.Y, m.Content,
				textStyle(config.SVGLabelFont, "start"), rotateAttr(m, origin))
		case panel.MarkAssemblyNum:
			if !c.Labels {
				continue
			}
			canvas.Text(m.Position.X+origin.X, m.Position.Y+origin.Y, m.Content,
				textStyle(config.SVGAssemblyFont, "middle"), rotateAttr(m, origin))
		}
	}
}

func textStyle(fontMM float64, anchor string) string {
	return fmt.Sprintf("font-size:%.1fpx;font-family:sans-serif;text-anchor:%s;fill:%s",
		fontMM, anchor, config.SVGLabelColour)
}

func rotateAttr(m panel.Mark, origin geom.Point) string {
	if m.AngleDeg == 0 {
		return ""
	}
	return fmt.Sprintf(`transform="rotate(%.4f,%.4f,%.4f)"`,
		m.AngleDeg, m.Position.X+origin.X, m.Position.Y+origin.Y)
}

// pathData converts a closed path to an SVG d attribute, translated by
// origin. Coordinates at 4 decimal places: a tenth of a micron, past any
// laser's resolution.
func pathData(path geom.ClosedPath, origin geom.Point) string {
	var b strings.Builder
	first := true
	moveTo := func(p geom.Point) {
		if first {
			fmt.Fprintf(&b, "M %.4f %.4f", p.X+origin.X, p.Y+origin.Y)
			first = false
		}
	}
	for _, seg := range path.Segments {
		switch s := seg.(type) {
		case geom.Line:
			moveTo(s.From)
			fmt.Fprintf(&b, " L %.4f %.4f", s.To.X+origin.X, s.To.Y+origin.Y)
		case geom.Arc:
			moveTo(s.From)
			fmt.Fprintf(&b, " A %.4f %.4f 0 %d %d %.4f %.4f",
				s.Radius, s.Radius, flag(s.LargeArc), flag(s.Clockwise),
				s.To.X+origin.X, s.To.Y+origin.Y)
		case geom.Cubic:
			moveTo(s.From)
			fmt.Fprintf(&b, " C %.4f %.4f %.4f %.4f %.4f %.4f",
				s.CP1.X+origin.X, s.CP1.Y+origin.Y,
				s.CP2.X+origin.X, s.CP2.Y+origin.Y,
				s.To.X+origin.X, s.To.Y+origin.Y)
		}
	}
	b.WriteString(" Z")
	return b.String()
}

// arcData renders a lone (open) arc as a path.
func arcData(a geom.Arc, origin geom.Point) string {
	return fmt.Sprintf("M %.4f %.4f A %.4f %.4f 0 %d %d %.4f %.4f",
		a.From.X+origin.X, a.From.Y+origin.Y,
		a.Radius, a.Radius, flag(a.LargeArc), flag(a.Clockwise),
		a.To.X+origin.X, a.To.Y+origin.Y)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
