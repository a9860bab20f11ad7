package joint

import (
	"fmt"
	"math"

	"github.com/chazu/trapbox/pkg/geom"
)

// Burn compensation model: every drawn line is a laser centerline and the
// laser removes burn mm on each side of it.
//
//	drawn tab  = fw + 2·burn         → physical tab  = fw
//	drawn slot = fw − 2·burn + 2·tol → physical slot = fw + 2·tol
//	nominal fit = −4·burn + 2·tol    (negative = interference)
//
// Winding convention: outlines are clockwise in Y-down space, and "outward"
// for an edge is 90° clockwise from its travel direction.

// Warning is a non-fatal diagnostic produced while building joint geometry.
// Warnings are returned to the caller, never logged; panel builders add
// context and surface them to the user.
type Warning struct {
	Message string
}

func (w Warning) String() string { return w.Message }

// Warnf creates a formatted Warning.
func Warnf(format string, args ...any) Warning {
	return Warning{Message: fmt.Sprintf(format, args...)}
}

// FingerEdge describes one jointed panel edge. Built once; downstream code
// converts it to path segments on demand and never mutates it.
type FingerEdge struct {
	Start geom.Point
	End   geom.Point

	// Termination points: where the corner fillets end and the joint zone
	// begins. The zone boundary coincides exactly with these points.
	TermStart geom.Point
	TermEnd   geom.Point

	FingerWidth float64 // exact width after odd-count adjustment; 0 if Count == 0
	Count       int     // 0 = plain edge, otherwise odd and >= 1
	Depth       float64 // mating panel thickness (effective depth for angled joints)

	ProtrudeOutward bool // features extend beyond the nominal edge
	Slotted         bool // this edge carries slots; the mating panel's tabs enter it

	Burn      float64
	Tolerance float64
}

// EdgeSpec is the input to the finger-edge builder.
type EdgeSpec struct {
	Start geom.Point
	End   geom.Point

	Thickness       float64 // this panel's thickness
	MatingThickness float64 // the mating panel's thickness

	ProtrudeOutward bool
	Slotted         bool

	Burn      float64
	Tolerance float64

	// Fillet radius and interior angle at each end of the edge. The two ends
	// may differ: trapezoid corners are not all equal.
	RadiusStart   float64
	RadiusEnd     float64
	AngleStartDeg float64
	AngleEndDeg   float64
}

// NewFingerEdge builds a FingerEdge with computed termination points, finger
// count, and exact finger width.
//
// An edge too short for even one feature degrades to a plain edge with a
// warning; a count constrained below target is reduced to the largest
// feasible odd count with a warning. Both outcomes are valid geometry.
func NewFingerEdge(s EdgeSpec) (FingerEdge, []Warning, error) {
	edgeDir, err := geom.UnitBetween(s.Start, s.End)
	if err != nil {
		return FingerEdge{}, nil, fmt.Errorf("finger edge: %w", err)
	}

	termStart := TerminationPoint(s.Start, edgeDir, s.RadiusStart, s.AngleStartDeg)
	termEnd := TerminationPoint(s.End, edgeDir.Neg(), s.RadiusEnd, s.AngleEndDeg)
	available := termEnd.Sub(termStart).Length()

	edge := FingerEdge{
		Start:           s.Start,
		End:             s.End,
		TermStart:       termStart,
		TermEnd:         termEnd,
		Depth:           s.MatingThickness,
		ProtrudeOutward: s.ProtrudeOutward,
		Slotted:         s.Slotted,
		Burn:            s.Burn,
		Tolerance:       s.Tolerance,
	}

	minNeeded := s.MatingThickness + 2*s.Burn
	if available < minNeeded {
		w := Warnf("edge too short for any finger joints after corner termination (available=%.3fmm, need>=%.3fmm); plain edge produced",
			available, minNeeded)
		return edge, []Warning{w}, nil
	}

	var warnings []Warning
	target := geom.OddCount(available, AutoFingerWidthFactor*s.Thickness, MinFingerCount)
	count := target
	if max := int(available / minNeeded); max < target {
		if max < 1 {
			max = 1
		}
		count = max
		if count%2 == 0 {
			count--
		}
		if count < 1 {
			count = 1
		}
		warnings = append(warnings, Warnf("edge available length (%.3fmm) constrains finger count from %d to %d",
			available, target, count))
	}

	edge.Count = count
	edge.FingerWidth = available / float64(count)
	return edge, warnings, nil
}

// NewAngledFingerEdge builds a FingerEdge for a joint whose mating surfaces
// are not perpendicular (leg wall to body). A tilted slot must be cut deeper
// to fully seat the tab, and the tab sweeps through extra lateral material
// during the rotational motion of assembly:
//
//	D_eff  = matingThickness / cos(α)   effective slot depth
//	W_over = matingThickness · tan(α)   rotational overcut
//
// W_over is folded into the effective tolerance; the edge is then built as a
// normal finger edge with D_eff as the mating thickness.
func NewAngledFingerEdge(s EdgeSpec, legAngleDeg float64) (FingerEdge, []Warning, error) {
	alpha := math.Abs(legAngleDeg) * math.Pi / 180
	s.MatingThickness = s.MatingThickness / math.Cos(alpha)
	s.Tolerance += s.MatingThickness * math.Sin(alpha) // = original thickness · tan(α)
	return NewFingerEdge(s)
}

// DeriveMatingEdge builds the FingerEdge for the far side of a joint from its
// master edge. The mating edge never recomputes termination points or counts
// locally: it inherits the master's term offsets (reversed end-for-end, since
// the two clockwise panels traverse the shared joint in opposite directions),
// its count, width, depth, and burn/tolerance, with opposite polarity.
// Local recomputation on both sides would shift the joint zone by the
// difference between the two corners' tangent distances — enough to bind or
// gap at assembly.
func DeriveMatingEdge(start, end geom.Point, master FingerEdge, protrudeOutward bool) (FingerEdge, error) {
	edgeDir, err := geom.UnitBetween(start, end)
	if err != nil {
		return FingerEdge{}, fmt.Errorf("mating edge: %w", err)
	}
	length := end.Sub(start).Length()
	masterLength := master.End.Sub(master.Start).Length()
	if math.Abs(length-masterLength) > geom.Epsilon {
		return FingerEdge{}, fmt.Errorf("mating edge length %.4f does not match master edge length %.4f",
			length, masterLength)
	}

	startOffset := master.TermEnd.Sub(master.End).Length()
	endOffset := master.TermStart.Sub(master.Start).Length()

	return FingerEdge{
		Start:           start,
		End:             end,
		TermStart:       start.Add(edgeDir.MulScalar(startOffset)),
		TermEnd:         end.Sub(edgeDir.MulScalar(endOffset)),
		FingerWidth:     master.FingerWidth,
		Count:           master.Count,
		Depth:           master.Depth,
		ProtrudeOutward: protrudeOutward,
		Slotted:         !master.Slotted,
		Burn:            master.Burn,
		Tolerance:       master.Tolerance,
	}, nil
}

// Segments converts the edge to its cut path from TermStart to TermEnd.
//
// Feature 0 is the leading feature. On an un-slotted edge the leading feature
// is a tab drawn fw + 2·burn wide; on a slotted edge the roles swap so the
// even-indexed features become the recessed ones. A protruding feature is
// three lines (out, across, back); a non-leading feature between two tabs is
// a single line along the edge. A plain edge (Count == 0) is one line from
// Start to End.
func (e FingerEdge) Segments() []geom.Segment {
	if e.Count == 0 {
		return []geom.Segment{geom.Line{From: e.Start, To: e.End}}
	}

	edgeDir := e.End.Sub(e.Start).Normalize()
	// Outward = 90° clockwise from the travel direction in Y-down space.
	outward := geom.Pt(edgeDir.Y, -edgeDir.X)
	if !e.ProtrudeOutward {
		outward = outward.Neg()
	}

	tabWidth := e.FingerWidth + 2*e.Burn
	gapWidth := e.FingerWidth - 2*e.Burn + 2*e.Tolerance
	depthOut := e.Depth + e.Burn
	if e.Slotted {
		tabWidth, gapWidth = gapWidth, tabWidth
	}

	var segs []geom.Segment
	cursor := e.TermStart
	for i := 0; i < e.Count; i++ {
		w := gapWidth
		if i%2 == 0 {
			w = tabWidth
		}
		next := cursor.Add(edgeDir.MulScalar(w))

		if i%2 == 0 {
			out0 := cursor.Add(outward.MulScalar(depthOut))
			out1 := next.Add(outward.MulScalar(depthOut))
			segs = append(segs,
				geom.Line{From: cursor, To: out0},
				geom.Line{From: out0, To: out1},
				geom.Line{From: out1, To: next},
			)
		} else {
			segs = append(segs, geom.Line{From: cursor, To: next})
		}
		cursor = next
	}

	// Close any floating-point residue against the termination point so the
	// zone boundary never overshoots into the fillet.
	if !geom.Coincide(cursor, e.TermEnd) {
		segs = append(segs, geom.Line{From: cursor, To: e.TermEnd})
	}
	return segs
}

// lastPoint returns the final point of the edge's segment sequence.
func (e FingerEdge) lastPoint() geom.Point {
	segs := e.Segments()
	return segs[len(segs)-1].End()
}

// NominalFit returns the physical slot-minus-tab clearance produced by the
// burn/tolerance model: −4·burn + 2·tolerance. Negative is an interference
// (press) fit; zero is an exact hand-press fit.
func NominalFit(burn, tolerance float64) float64 {
	return -4*burn + 2*tolerance
}
