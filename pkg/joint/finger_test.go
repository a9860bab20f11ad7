package joint

import (
	"math"
	"testing"

	"github.com/chazu/trapbox/pkg/geom"
)

// Reference body used across tests: 180/120 across, 380 long, 3mm stock,
// 9mm fillet radius.
const (
	refThickness = 3.0
	refRadius    = 9.0
)

func refAngles() (legAngle, longEnd, shortEnd float64) {
	legAngle = math.Atan2(30, 380) * 180 / math.Pi
	return legAngle, 90 + legAngle, 90 - legAngle
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}

func TestNominalFit(t *testing.T) {
	// burn=0.05, tol=0 is a press fit; tol=0.1 cancels it exactly.
	approx(t, "press fit", NominalFit(0.05, 0), -0.2, 1e-12)
	approx(t, "neutral fit", NominalFit(0.05, 0.1), 0, 1e-12)
}

func TestReferenceFingerCounts(t *testing.T) {
	_, longEnd, shortEnd := refAngles()
	legLen := math.Sqrt(380*380 + 30*30)

	tests := []struct {
		name       string
		length     float64
		angleStart float64
		angleEnd   float64
		wantCount  int
	}{
		// The long (wide-end) edge meets two obtuse-free corners at the
		// short end angle; the short edge the long end angle; legs one of each.
		{"long edge", 180, shortEnd, shortEnd, 17},
		{"short edge", 120, longEnd, longEnd, 11},
		{"leg edge", legLen, longEnd, shortEnd, 39},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edge, warnings, err := NewFingerEdge(EdgeSpec{
				Start:           geom.Pt(0, 0),
				End:             geom.Pt(tt.length, 0),
				Thickness:       refThickness,
				MatingThickness: refThickness,
				Burn:            0.05,
				RadiusStart:     refRadius,
				RadiusEnd:       refRadius,
				AngleStartDeg:   tt.angleStart,
				AngleEndDeg:     tt.angleEnd,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(warnings) != 0 {
				t.Fatalf("unexpected warnings: %v", warnings)
			}
			if edge.Count != tt.wantCount {
				t.Errorf("Count = %d, want %d", edge.Count, tt.wantCount)
			}
			if edge.Count%2 == 0 {
				t.Errorf("Count = %d, want odd", edge.Count)
			}
			available := edge.TermEnd.Sub(edge.TermStart).Length()
			approx(t, "exact width", edge.FingerWidth*float64(edge.Count), available, 1e-9)
		})
	}
}

func TestReferenceTangentDistances(t *testing.T) {
	_, longEnd, shortEnd := refAngles()
	approx(t, "long-end tangent", TangentDistance(refRadius, longEnd), 8.3210, 5e-4)
	approx(t, "short-end tangent", TangentDistance(refRadius, shortEnd), 9.7387, 5e-4)
}

func TestTangentDistanceRightAngle(t *testing.T) {
	approx(t, "90 degrees", TangentDistance(6, 90), 6, 1e-9)
	approx(t, "60 degrees", TangentDistance(6, 60), 6*math.Sqrt(3), 1e-9)
}

func TestNewFingerEdgeDegradesToPlain(t *testing.T) {
	// 20mm edge with 9mm fillets at right angles leaves 2mm of joint zone,
	// below one mating thickness: plain edge plus a warning, not an error.
	edge, warnings, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(20, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		Burn:            0.05,
		RadiusStart:     refRadius,
		RadiusEnd:       refRadius,
		AngleStartDeg:   90,
		AngleEndDeg:     90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning, got %d", len(warnings))
	}
	if edge.Count != 0 {
		t.Errorf("Count = %d, want 0 (plain edge)", edge.Count)
	}
	segs := edge.Segments()
	if len(segs) != 1 {
		t.Fatalf("plain edge segments = %d, want 1", len(segs))
	}
	line, ok := segs[0].(geom.Line)
	if !ok {
		t.Fatal("plain edge segment should be a line")
	}
	if !geom.Coincide(line.From, edge.Start) || !geom.Coincide(line.To, edge.End) {
		t.Error("plain edge line should span the full nominal edge")
	}
}

func TestNewFingerEdgeConstrainedCount(t *testing.T) {
	// An 8mm zone fits two features of 3.1mm, reduced to one to stay odd:
	// below the minimum count of three, so a warning is raised.
	edge, warnings, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(8, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		Burn:            0.05,
		AngleStartDeg:   90,
		AngleEndDeg:     90,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("want a constrained-count warning")
	}
	if edge.Count%2 != 1 {
		t.Errorf("constrained count %d must stay odd", edge.Count)
	}
	if edge.Count >= MinFingerCount {
		t.Errorf("10mm zone cannot hold %d features of >=3.1mm", edge.Count)
	}
}

func TestAngledFingerEdge(t *testing.T) {
	legAngle, longEnd, shortEnd := refAngles()
	alpha := legAngle * math.Pi / 180

	edge, _, err := NewAngledFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(381.18, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		Burn:            0.05,
		RadiusStart:     refRadius,
		RadiusEnd:       refRadius,
		AngleStartDeg:   longEnd,
		AngleEndDeg:     shortEnd,
	}, legAngle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Effective slot depth and rotational overcut for a tilted joint.
	approx(t, "effective depth", edge.Depth, refThickness/math.Cos(alpha), 1e-9)
	approx(t, "rotational overcut", edge.Tolerance, refThickness*math.Tan(alpha), 1e-9)
}

func TestDeriveMatingEdge(t *testing.T) {
	_, longEnd, shortEnd := refAngles()

	master, _, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(120, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		Burn:            0.05,
		Tolerance:       0.1,
		Slotted:         true,
		RadiusStart:     refRadius,
		RadiusEnd:       refRadius,
		AngleStartDeg:   longEnd,
		AngleEndDeg:     shortEnd,
	})
	if err != nil {
		t.Fatalf("master edge: %v", err)
	}

	mate, err := DeriveMatingEdge(geom.Pt(0, 50), geom.Pt(120, 50), master, true)
	if err != nil {
		t.Fatalf("mating edge: %v", err)
	}

	// Everything is inherited, never recomputed.
	if mate.Count != master.Count {
		t.Errorf("Count = %d, want %d", mate.Count, master.Count)
	}
	approx(t, "FingerWidth", mate.FingerWidth, master.FingerWidth, 1e-12)
	approx(t, "Depth", mate.Depth, master.Depth, 1e-12)
	approx(t, "Burn", mate.Burn, master.Burn, 1e-12)
	approx(t, "Tolerance", mate.Tolerance, master.Tolerance, 1e-12)
	if mate.Slotted == master.Slotted {
		t.Error("mating edge polarity must be opposite the master's")
	}

	// The two clockwise panels traverse the shared joint in opposite
	// directions, so term offsets come over reversed end-for-end.
	masterStartOff := master.TermStart.Sub(master.Start).Length()
	masterEndOff := master.TermEnd.Sub(master.End).Length()
	approx(t, "TermStart offset", mate.TermStart.Sub(mate.Start).Length(), masterEndOff, 1e-9)
	approx(t, "TermEnd offset", mate.End.Sub(mate.TermEnd).Length(), masterStartOff, 1e-9)
}

func TestDeriveMatingEdgeLengthMismatch(t *testing.T) {
	master, _, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(120, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		AngleStartDeg:   90,
		AngleEndDeg:     90,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DeriveMatingEdge(geom.Pt(0, 0), geom.Pt(119, 0), master, false); err == nil {
		t.Fatal("expected length-mismatch error")
	}
}

func TestSegmentsTabEdge(t *testing.T) {
	// 45mm edge with no fillets: 5 features of exactly 9mm. Unslotted edge,
	// features protrude outward (negative Y for a left-to-right edge).
	edge, _, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(45, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		ProtrudeOutward: true,
		Burn:            0.1,
		AngleStartDeg:   90,
		AngleEndDeg:     90,
	})
	if err != nil {
		t.Fatal(err)
	}
	if edge.Count != 5 {
		t.Fatalf("Count = %d, want 5", edge.Count)
	}
	approx(t, "FingerWidth", edge.FingerWidth, 9, 1e-9)

	segs := edge.Segments()
	// 3 tabs of 3 lines, 2 single-line gaps, 1 residue close back to the
	// termination point (drawn widths sum to available + 2·burn).
	if len(segs) != 12 {
		t.Fatalf("segment count = %d, want 12", len(segs))
	}

	// First tab: out, across (drawn fw + 2·burn wide), back.
	out0 := segs[0].(geom.Line)
	across := segs[1].(geom.Line)
	approx(t, "tab depth", out0.To.Y, -(refThickness + 0.1), 1e-9)
	approx(t, "drawn tab width", across.To.X-across.From.X, 9+2*0.1, 1e-9)

	// Gap between tabs is one line along the edge, drawn fw − 2·burn.
	gap := segs[3].(geom.Line)
	approx(t, "gap y", gap.From.Y, 0, 1e-12)
	approx(t, "drawn gap width", gap.To.X-gap.From.X, 9-2*0.1, 1e-9)

	if !geom.Coincide(segs[len(segs)-1].End(), edge.TermEnd) {
		t.Error("edge path must terminate exactly at TermEnd")
	}
}

func TestSegmentsSlottedEdge(t *testing.T) {
	// Slotted polarity swaps the feature roles: the leading feature is the
	// recessed one and is drawn narrower, widened further by tolerance.
	edge, _, err := NewFingerEdge(EdgeSpec{
		Start:           geom.Pt(0, 0),
		End:             geom.Pt(45, 0),
		Thickness:       refThickness,
		MatingThickness: refThickness,
		Slotted:         true,
		Burn:            0.1,
		Tolerance:       0.05,
		AngleStartDeg:   90,
		AngleEndDeg:     90,
	})
	if err != nil {
		t.Fatal(err)
	}

	segs := edge.Segments()
	across := segs[1].(geom.Line)
	approx(t, "drawn slot width", across.To.X-across.From.X, 9-2*0.1+2*0.05, 1e-9)

	// Slots recess into the panel: positive Y when not protruding outward.
	out0 := segs[0].(geom.Line)
	approx(t, "slot depth", out0.To.Y, refThickness+0.1, 1e-9)
}
