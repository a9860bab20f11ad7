package instrument

import (
	"fmt"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// Kerfing stock is undersized by config.KerfUndersize on every free
// dimension: the builder rounds the ends by hand and the gap takes glue.

// kerfStrips builds one base-level and one soundboard-level kerfing strip
// per wall, eight panels total.
func kerfStrips(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Panel, error) {
	T := g.Thickness
	innerLengths := []struct {
		label string
		value float64
	}{
		{"LONG", g.LongOuter - 2*T},
		{"SHORT", g.ShortOuter - 2*T},
		// Close enough for a hand-fitted strip; the undersize absorbs the
		// difference from the true inner leg length.
		{"LEG_LEFT", g.LegLength - 2*T},
		{"LEG_RIGHT", g.LegLength - 2*T},
	}

	levels := []struct {
		prefix string
		height float64
	}{
		{"BASE", cfg.KerfHeight - config.KerfUndersize},
		{"TOP", cfg.KerfTopHeight - config.KerfUndersize},
	}

	var strips []panel.Panel
	for _, lvl := range levels {
		for _, il := range innerLengths {
			w := il.value - config.KerfUndersize
			p, err := plainRect(panel.KerfStrip,
				fmt.Sprintf("KERF_%s_%s", lvl.prefix, il.label),
				fmt.Sprintf("KERF %s %s", lvl.prefix, il.label),
				w, lvl.height)
			if err != nil {
				return nil, err
			}
			strips = append(strips, p)
		}
	}
	return strips, nil
}

// kerfFillets builds the four corner sealing pieces, one per wall-to-wall
// corner, depth tall. The triangular cross-section is hand-trimmed.
func kerfFillets(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Panel, error) {
	w := cfg.KerfWidth - config.KerfUndersize
	h := g.DepthOuter - config.KerfUndersize

	var fillets []panel.Panel
	for _, label := range []string{"TL", "TR", "BL", "BR"} {
		p, err := plainRect(panel.KerfFillet,
			"KERF_FILLET_"+label, "FILLET "+label, w, h)
		if err != nil {
			return nil, err
		}
		fillets = append(fillets, p)
	}
	return fillets, nil
}

// plainRect builds an unjointed rectangle with a centred label.
func plainRect(ptype panel.Type, name, label string, w, h float64) (panel.Panel, error) {
	vertices := []geom.Point{
		geom.Pt(0, 0), geom.Pt(w, 0), geom.Pt(w, h), geom.Pt(0, h),
	}
	outline, err := joint.BuildPlainOutline(vertices, 0, []float64{90, 90, 90, 90})
	if err != nil {
		return panel.Panel{}, fmt.Errorf("%s: %w", name, err)
	}
	return panel.Panel{
		Type: ptype, Name: name,
		Outline: outline,
		Marks: []panel.Mark{
			{Type: panel.MarkLabel, Position: geom.Pt(w/2, h/2), Content: label},
		},
		Width: w, Height: h,
	}, nil
}
