// Package config defines the user-facing configuration for trapbox and the
// validation layer that gates the geometry core. The core assumes validated
// input; everything that can be rejected up front is rejected here, with
// coded errors a CLI or UI can render.
package config

// DimMode selects whether supplied dimensions are outer or inner.
type DimMode string

const (
	DimOuter DimMode = "outer"
	DimInner DimMode = "inner"
)

// LidType selects the box lid style.
type LidType string

const (
	LidNone    LidType = "none"
	LidLiftOff LidType = "lift-off"
	LidSliding LidType = "sliding"
	LidHinged  LidType = "hinged"
	LidFlap    LidType = "flap"
)

// FingerDirection selects which way finger tabs protrude.
type FingerDirection string

const (
	FingerInward  FingerDirection = "in"
	FingerOutward FingerDirection = "out"
)

// SoundHoleType selects the instrument soundhole shape.
type SoundHoleType string

const (
	HoleRound            SoundHoleType = "round"
	HoleF                SoundHoleType = "f-hole"
	HoleRoundedTrapezoid SoundHoleType = "rounded-trapezoid"
)

// SoundHoleOrientation orients a rounded-trapezoid hole relative to the body.
type SoundHoleOrientation string

const (
	OrientSame    SoundHoleOrientation = "same"    // long edge toward tail, matching the body
	OrientFlipped SoundHoleOrientation = "flipped" // opposite
)

// Common holds the dimensions and joint parameters shared by both modes.
// Nil pointer fields mean "auto" or "not supplied".
type Common struct {
	Long   float64
	Short  float64
	Length *float64 // mode A; exactly one of Length/Leg
	Leg    *float64 // mode B
	Depth  float64

	Thickness float64
	Burn      float64
	Tolerance float64

	CornerRadius *float64 // nil = auto (3 × thickness)
	FingerWidth  *float64 // nil = auto (3 × thickness)

	SheetWidth  float64
	SheetHeight float64

	Labels     bool
	DimMode    DimMode
	Colorblind bool
	JSONErrors bool

	DisplayStrokeMM float64 // 0 = hairline
	Output          string
}

// DefaultCommon returns a Common with laser/material defaults applied.
func DefaultCommon() Common {
	return Common{
		Thickness:   DefaultThickness,
		Burn:        DefaultBurn,
		Tolerance:   DefaultTolerance,
		SheetWidth:  DefaultSheetWidth,
		SheetHeight: DefaultSheetHeight,
		Labels:      true,
		DimMode:     DimOuter,
		Output:      "trapbox_output.svg",
	}
}

// Box configures box mode.
type Box struct {
	Common        Common
	Lid           LidType
	HingeDiameter float64
}

// DefaultBox returns a Box with defaults applied.
func DefaultBox() Box {
	return Box{
		Common:        DefaultCommon(),
		Lid:           LidNone,
		HingeDiameter: DefaultHingeDiameter,
	}
}

// Instrument configures instrument mode.
type Instrument struct {
	Common Common

	TopThickness float64

	Kerfing       bool
	KerfThickness float64
	KerfHeight    float64
	KerfWidth     float64
	KerfTopHeight float64
	KerfTopWidth  float64

	SoundHole            *SoundHoleType
	SoundHoleOrientation SoundHoleOrientation
	SoundHoleLongRatio   *float64
	SoundHoleAspect      *float64
	SoundHoleRadius      *float64
	HelmholtzFreq        float64
	SoundHoleDiameter    *float64
	SoundHoleSize        *float64
	SoundHoleX           *float64
	SoundHoleY           *float64

	NeckClearance      float64
	Hardware           bool
	NeckBlockThickness float64
	TailBlockThickness float64

	Braces      bool
	ScaleLength *float64

	FingerDirection FingerDirection
}

// DefaultInstrument returns an Instrument with defaults applied.
func DefaultInstrument() Instrument {
	return Instrument{
		Common:               DefaultCommon(),
		TopThickness:         DefaultThickness,
		Kerfing:              true,
		KerfThickness:        DefaultThickness,
		KerfHeight:           DefaultKerfHeight,
		KerfWidth:            DefaultKerfWidth,
		KerfTopHeight:        DefaultKerfTopHeight,
		KerfTopWidth:         DefaultKerfTopWidth,
		SoundHoleOrientation: OrientSame,
		HelmholtzFreq:        DefaultHelmholtzHz,
		NeckClearance:        DefaultNeckClearance,
		NeckBlockThickness:   DefaultNeckBlockThickness,
		TailBlockThickness:   DefaultTailBlockThickness,
		FingerDirection:      FingerOutward,
	}
}

// Float is a convenience for building optional float fields.
func Float(v float64) *float64 { return &v }
