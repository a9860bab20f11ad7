package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/layout"
	"github.com/chazu/trapbox/pkg/panel"
)

// DXF has no arc-endpoint form matching SVG's, so curved outlines are
// flattened to polylines at this sampling density. 32 points per arc keeps
// chord error under a micron at the radii this tool produces.
const dxfArcSamples = 32

// WriteDXFSheet writes one sheet of placements to filename as a DXF drawing
// with CUT, SCORE and LABEL layers.
func WriteDXFSheet(filename string, placements []layout.Placement, sheet int, c config.Common) error {
	d := dxf.NewDrawing()
	d.AddLayer("CUT", color.Red, table.LT_CONTINUOUS, true)
	d.AddLayer("SCORE", color.Blue, table.LT_HIDDEN, false)
	d.AddLayer("LABEL", color.White, table.LT_CONTINUOUS, false)

	for _, pl := range placements {
		if pl.Sheet != sheet {
			continue
		}
		if err := dxfPanel(d, pl.Panel, pl.Origin, c); err != nil {
			return fmt.Errorf("%s: %w", pl.Panel.Name, err)
		}
	}
	return d.SaveAs(filename)
}

func dxfPanel(d *drawing.Drawing, p panel.Panel, origin geom.Point, c config.Common) error {
	if err := d.ChangeLayer("CUT"); err != nil {
		return err
	}
	if err := dxfClosedPath(d, p.Outline, origin, true); err != nil {
		return err
	}
	for _, h := range p.Holes {
		switch h := h.(type) {
		case panel.CircleHole:
			if _, err := d.Circle(h.Centre.X+origin.X, h.Centre.Y+origin.Y, 0, h.Diameter/2); err != nil {
				return err
			}
		case panel.PathHole:
			if err := dxfClosedPath(d, h.Path, origin, true); err != nil {
				return err
			}
		}
	}

	if err := d.ChangeLayer("SCORE"); err != nil {
		return err
	}
	for _, sl := range p.ScoreLines {
		if _, err := d.Line(sl.From.X+origin.X, sl.From.Y+origin.Y, 0,
			sl.To.X+origin.X, sl.To.Y+origin.Y, 0); err != nil {
			return err
		}
	}
	for _, a := range p.FingerZoneBoundaries {
		if err := dxfArc(d, a, origin); err != nil {
			return err
		}
	}

	if !c.Labels {
		return nil
	}
	if err := d.ChangeLayer("LABEL"); err != nil {
		return err
	}
	for _, m := range p.Marks {
		if m.Type != panel.MarkLabel && m.Type != panel.MarkAssemblyNum {
			continue
		}
		height := config.SVGLabelFont
		if m.Type == panel.MarkAssemblyNum {
			height = config.SVGAssemblyFont
		}
		if _, err := d.Text(m.Content, m.Position.X+origin.X, m.Position.Y+origin.Y, 0, height); err != nil {
			return err
		}
	}
	return nil
}

// dxfClosedPath flattens a closed path into one lightweight polyline.
func dxfClosedPath(d *drawing.Drawing, path geom.ClosedPath, origin geom.Point, closed bool) error {
	points, err := geom.SamplePolyline(path, dxfArcSamples)
	if err != nil {
		return err
	}
	vertices := make([][]float64, len(points))
	for i, pt := range points {
		vertices[i] = []float64{pt.X + origin.X, pt.Y + origin.Y}
	}
	_, err = d.LwPolyline(closed, vertices...)
	return err
}

// dxfArc flattens one open etch arc into a polyline.
func dxfArc(d *drawing.Drawing, a geom.Arc, origin geom.Point) error {
	// Wrap in a throwaway two-segment closed path to reuse the sampler.
	// The sampler emits each segment's start but not its end, so the
	// closing chord contributes exactly the arc's endpoint and nothing
	// else.
	path, err := geom.NewClosedPath([]geom.Segment{a, geom.Line{From: a.To, To: a.From}})
	if err != nil {
		return err
	}
	points, err := geom.SamplePolyline(path, dxfArcSamples)
	if err != nil {
		return err
	}
	vertices := make([][]float64, len(points))
	for i, pt := range points {
		vertices[i] = []float64{pt.X + origin.X, pt.Y + origin.Y}
	}
	_, err = d.LwPolyline(false, vertices...)
	return err
}
