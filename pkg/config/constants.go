package config

// Laser / material defaults (mm).
const (
	DefaultThickness = 3.0
	DefaultBurn      = 0.05 // typical CO2 kerf compensation for 3mm ply
	DefaultTolerance = 0.1  // finger joint fit clearance
)

// Layout / sheet defaults (mm).
const (
	DefaultSheetWidth  = 600.0
	DefaultSheetHeight = 600.0
	PanelGap           = 10.0
)

// Acoustics.
const (
	SpeedOfSound          = 343000.0 // mm/s at 20°C
	DefaultHelmholtzHz    = 110.0    // target A0 for dulcimer/guitar
	DefaultNeckClearance  = 60.0
	HelmholtzLEffFactor   = 0.85 // end-correction factor
	HelmholtzMaxIterations = 20
)

// Instrument hardware defaults (mm).
const (
	DefaultKerfHeight         = 12.0
	DefaultKerfWidth          = 6.0
	DefaultKerfTopHeight      = 10.0
	DefaultKerfTopWidth       = 5.0
	KerfUndersize             = 0.5
	DefaultNeckBlockThickness = 25.0
	DefaultTailBlockThickness = 15.0
	DefaultHingeDiameter      = 6.0
	HingeSpacing              = 80.0 // one hinge per this many mm
)

// Rounded-trapezoid soundhole proportions. The corner radius is a fixed mm
// value, not a ratio: a ratio-based radius fails at steep leg angles where
// the arc sweep exceeds 90° and visually dominates the hole.
const (
	RTrapLongToBodyRatio   = 0.28
	RTrapAspectRatio       = 0.6
	RTrapCornerRadius      = 2.0
	RTrapMaxREdgeFraction  = 0.15
)

// F-hole shape proportions, relative to the f-hole's overall length.
const (
	FHoleUpperEyeYRatio = 0.20
	FHoleLowerEyeYRatio = 0.75
	FHoleUpperEyeDRatio = 0.12
	FHoleLowerEyeDRatio = 0.16
	FHoleWaistRatio     = 0.60
	FHolePairOffsetRatio = 0.45
)

// Test strip.
const TestStripWidth = 60.0

// ToolVersion is embedded in output metadata so a cut file can be traced
// back to the generator that produced it.
const ToolVersion = "2.0"

// SVG output style. The hairline stroke is what Epilog drivers treat as a
// vector cut; DisplayStrokeMM overrides it for human-viewable output.
const (
	SVGNamespace      = "https://trapezoidbox.github.io/ns/1.0"
	SVGHairline       = 0.001
	SVGLabelStroke    = 0.2
	SVGScoreDash      = 5.0
	SVGScoreGap       = 2.0
	SVGLabelFont      = 4.0
	SVGAssemblyFont   = 8.0
	SVGCutColour      = "rgb(255,0,0)"
	SVGScoreColour    = "rgb(0,0,255)"
	SVGLabelColour    = "rgb(0,0,0)"
	SVGCBCutColour    = "rgb(0,0,0)" // colorblind mode: cut solid black
	SVGCBScoreColour  = "rgb(0,0,0)" // colorblind mode: score dashed black
)

// Validation error codes.
const (
	ErrLongShortOrder      = "VALIDATION_LONG_SHORT_ORDER"
	ErrMissingDims         = "VALIDATION_MISSING_DIMS"
	ErrMissingLengthOrLeg  = "VALIDATION_MISSING_LENGTH_OR_LEG"
	ErrExclusiveLengthLeg  = "VALIDATION_EXCLUSIVE_LENGTH_LEG"
	ErrDepthZero           = "VALIDATION_DEPTH_ZERO"
	ErrLegTooShort         = "VALIDATION_LEG_TOO_SHORT"
	ErrThicknessTooLarge   = "VALIDATION_THICKNESS_TOO_LARGE"
	ErrStructTabTooThin    = "VALIDATION_STRUCT_TAB_TOO_THIN"
	ErrTestStripTooTall    = "VALIDATION_TEST_STRIP_TOO_TALL"
	ErrGrooveAngleTooSteep = "VALIDATION_GROOVE_ANGLE_TOO_STEEP"
	ErrCornerRadius        = "VALIDATION_CORNER_RADIUS"
	ErrSoundHoleTooTall    = "VALIDATION_SOUNDHOLE_TOO_TALL"
	ErrSoundHoleLongRatio  = "VALIDATION_SOUNDHOLE_LONG_RATIO"
	ErrSoundHoleAspect     = "VALIDATION_SOUNDHOLE_ASPECT"
	ErrSoundHoleRadius     = "VALIDATION_SOUNDHOLE_RADIUS"
	ErrRuntime             = "ERR_RUNTIME"
)
