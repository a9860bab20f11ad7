// Package trapezoid derives the full body geometry of an isosceles trapezoid
// box from user dimensions. Pure math: no paths, no joints, no side effects.
// Inputs are assumed validated upstream.
package trapezoid

import "math"

// Dims are the user-supplied dimensions. Exactly one of Length and Leg is
// non-nil: Length gives the perpendicular distance between the parallel edges
// (mode A), Leg gives the slanted side as a literal spatial distance (mode B).
type Dims struct {
	Long      float64
	Short     float64
	Length    *float64
	Leg       *float64
	Depth     float64
	Thickness float64
	Inner     bool // dimensions are inner, not outer
}

// Geometry is the derived trapezoid geometry. It is computed once per run and
// consumed read-only by every downstream builder.
type Geometry struct {
	// Outer dimensions (mm).
	LongOuter   float64
	ShortOuter  float64
	LengthOuter float64
	DepthOuter  float64
	Thickness   float64

	// Derived.
	LegInset         float64 // (LongOuter - ShortOuter) / 2
	LegLength        float64 // sqrt(LengthOuter² + LegInset²)
	LegAngleDeg      float64 // atan2(LegInset, LengthOuter)
	LongEndAngleDeg  float64 // 90 + LegAngleDeg, at the short/narrow end corners
	ShortEndAngleDeg float64 // 90 - LegAngleDeg, at the long/wide end corners

	// Inner dimensions and enclosed air volume (for the Helmholtz solver).
	LongInner   float64
	ShortInner  float64
	LengthInner float64
	DepthInner  float64
	AirVolume   float64
}

// Derive computes all trapezoid geometry from dimensions.
//
// In inner mode every supplied body dimension is first expanded by 2×thickness
// to obtain outer dimensions. A supplied leg is the exception: it is a
// hypotenuse, not a body dimension, and is never adjusted.
func Derive(d Dims) Geometry {
	t := d.Thickness

	longO, shortO, depthO := d.Long, d.Short, d.Depth
	if d.Inner {
		longO += 2 * t
		shortO += 2 * t
		depthO += 2 * t
	}

	legInset := (longO - shortO) / 2

	var lengthO, legLen float64
	if d.Length != nil {
		lengthO = *d.Length
		if d.Inner {
			lengthO += 2 * t
		}
		legLen = math.Sqrt(lengthO*lengthO + legInset*legInset)
	} else {
		legLen = *d.Leg
		lengthO = math.Sqrt(legLen*legLen - legInset*legInset)
	}

	legAngle := math.Atan2(legInset, lengthO) * 180 / math.Pi

	return Geometry{
		LongOuter:   longO,
		ShortOuter:  shortO,
		LengthOuter: lengthO,
		DepthOuter:  depthO,
		Thickness:   t,

		LegInset:         legInset,
		LegLength:        legLen,
		LegAngleDeg:      legAngle,
		LongEndAngleDeg:  90 + legAngle,
		ShortEndAngleDeg: 90 - legAngle,

		LongInner:   longO - 2*t,
		ShortInner:  shortO - 2*t,
		LengthInner: lengthO - 2*t,
		DepthInner:  depthO - 2*t,
		AirVolume:   0.5 * ((longO - 2*t) + (shortO - 2*t)) * (lengthO - 2*t) * (depthO - 2*t),
	}
}
