// Package layout packs panels onto stock sheets with Next Fit Decreasing
// Height. Deterministic and simple beats optimal here: the cut plan must be
// reproducible run to run.
package layout

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/panel"
)

// Placement positions one panel on one sheet. Origin is the top-left corner
// of the panel's bounding box in sheet coordinates.
type Placement struct {
	Panel  panel.Panel
	Origin geom.Point
	Sheet  int
}

// fixedGrain panels are never rotated: their grain must run the length of
// the body.
func fixedGrain(t panel.Type) bool {
	return t == panel.Base || t == panel.Soundboard
}

// Pack lays out panels on sheetWidth × sheetHeight stock. Test strips always
// go on the last sheet so they are cut from the same leftover the real parts
// leave behind. Panels wider than the sheet are placed anyway, on their own
// row, with a warning.
func Pack(panels []panel.Panel, sheetWidth, sheetHeight float64) ([]Placement, []panel.Warning) {
	gap := config.PanelGap

	var strips, other []panel.Panel
	for _, p := range panels {
		if p.Type == panel.TestStrip {
			strips = append(strips, p)
		} else {
			other = append(other, p)
		}
	}

	sorted := append([]panel.Panel(nil), other...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return longestDim(sorted[i]) > longestDim(sorted[j])
	})

	var result []Placement
	var warnings []panel.Warning
	sheet := 0
	x, y := gap, gap
	rowHeight := 0.0

	// tryPlace fits p in the current row, rotating when grain allows.
	tryPlace := func(p panel.Panel) (panel.Panel, bool) {
		if x+p.Width <= sheetWidth {
			return p, true
		}
		if !fixedGrain(p.Type) && x+p.Height <= sheetWidth {
			return panel.Rotate90CW(p), true
		}
		return panel.Panel{}, false
	}

	for _, p := range sorted {
		if p.Width > sheetWidth {
			warnings = append(warnings, panel.Warning{
				Panel: p.Name,
				Message: fmt.Sprintf("%.1fmm wide exceeds sheet width %.1fmm; placing on its own row",
					p.Width, sheetWidth),
			})
			if rowHeight > 0 {
				y += rowHeight + gap
			}
			if y+p.Height+gap > sheetHeight && y > gap {
				sheet++
				y = gap
			}
			result = append(result, Placement{Panel: p, Origin: geom.Pt(gap, y), Sheet: sheet})
			y += p.Height + gap
			rowHeight = 0
			x = gap
			continue
		}

		if placed, ok := tryPlace(p); ok {
			result = append(result, Placement{Panel: placed, Origin: geom.Pt(x, y), Sheet: sheet})
			rowHeight = max(rowHeight, placed.Height)
			x += placed.Width + gap
			continue
		}

		// New row, possibly new sheet.
		y += rowHeight + gap
		x = gap
		rowHeight = 0
		if y+p.Height+gap > sheetHeight {
			sheet++
			x, y = gap, gap
		}
		if placed, ok := tryPlace(p); ok {
			result = append(result, Placement{Panel: placed, Origin: geom.Pt(x, y), Sheet: sheet})
			rowHeight = max(rowHeight, placed.Height)
			x += placed.Width + gap
		} else {
			result = append(result, Placement{Panel: p, Origin: geom.Pt(x, y), Sheet: sheet})
			rowHeight = max(rowHeight, p.Height)
			x += p.Width + gap
		}
	}

	// Test strips: new row at the bottom of the last sheet.
	tsY := gap
	if len(result) > 0 {
		last := 0
		for _, pl := range result {
			if pl.Sheet > last {
				last = pl.Sheet
			}
		}
		sheet = last
		tall := 0.0
		for _, pl := range result {
			if pl.Sheet == last {
				tsY = pl.Origin.Y
				tall = max(tall, pl.Panel.Height)
			}
		}
		tsY += tall + gap
	}
	tsX := gap
	for _, ts := range strips {
		if tsY+ts.Height+gap > sheetHeight {
			sheet++
			tsY = gap
		}
		result = append(result, Placement{Panel: ts, Origin: geom.Pt(tsX, tsY), Sheet: sheet})
		tsX += ts.Width + gap
	}

	return result, warnings
}

func longestDim(p panel.Panel) float64 {
	return max(p.Width, p.Height)
}

type placedBox struct {
	rect rtreego.Rect
	name string
}

func (b *placedBox) Bounds() rtreego.Rect { return b.rect }

// CheckOverlaps indexes the packed bounding boxes per sheet in an R-tree and
// reports every overlapping pair. A non-empty result means the packer is
// broken, not the input.
func CheckOverlaps(placements []Placement) ([]string, error) {
	bySheet := make(map[int][]Placement)
	for _, pl := range placements {
		bySheet[pl.Sheet] = append(bySheet[pl.Sheet], pl)
	}

	var overlaps []string
	for _, sheet := range sortedKeys(bySheet) {
		tree := rtreego.NewTree(2, 4, 8)
		for _, pl := range bySheet[sheet] {
			rect, err := rtreego.NewRect(
				rtreego.Point{pl.Origin.X, pl.Origin.Y},
				[]float64{pl.Panel.Width, pl.Panel.Height},
			)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pl.Panel.Name, err)
			}
			for _, hit := range tree.SearchIntersect(rect) {
				other := hit.(*placedBox)
				overlaps = append(overlaps, fmt.Sprintf("sheet %d: %s overlaps %s",
					sheet, pl.Panel.Name, other.name))
			}
			tree.Insert(&placedBox{rect: rect, name: pl.Panel.Name})
		}
	}
	return overlaps, nil
}

func sortedKeys(m map[int][]Placement) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
