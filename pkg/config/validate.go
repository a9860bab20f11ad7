package config

import (
	"fmt"
	"math"

	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// ValidationError is one blocking configuration problem.
type ValidationError struct {
	Code      string
	Message   string
	Parameter string
	Value     string
}

func (e ValidationError) Error() string {
	if e.Parameter != "" {
		return fmt.Sprintf("%s: %s (parameter %s=%s)", e.Code, e.Message, e.Parameter, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Dims converts the Common config into trapezoid deriver input.
func (c Common) Dims() trapezoid.Dims {
	return trapezoid.Dims{
		Long:      c.Long,
		Short:     c.Short,
		Length:    c.Length,
		Leg:       c.Leg,
		Depth:     c.Depth,
		Thickness: c.Thickness,
		Inner:     c.DimMode == DimInner,
	}
}

type errList struct {
	errs []ValidationError
}

func (l *errList) add(code, message, parameter, value string) {
	l.errs = append(l.errs, ValidationError{Code: code, Message: message, Parameter: parameter, Value: value})
}

// validateCommon runs the checks shared by both modes. It returns the derived
// geometry when derivation was possible, since several checks need it.
func validateCommon(c Common, l *errList) *trapezoid.Geometry {
	if c.Long <= c.Short {
		l.add(ErrLongShortOrder,
			fmt.Sprintf("long (%gmm) must be greater than short (%gmm)", c.Long, c.Short),
			"long", fmt.Sprintf("%g", c.Long))
	}
	if c.Short <= 0 {
		l.add(ErrLongShortOrder, "short must be > 0", "short", fmt.Sprintf("%g", c.Short))
	}

	if c.Length == nil && c.Leg == nil {
		l.add(ErrMissingLengthOrLeg, "exactly one of length or leg must be provided", "", "")
		return nil
	}
	if c.Length != nil && c.Leg != nil {
		l.add(ErrExclusiveLengthLeg, "length and leg are mutually exclusive", "", "")
		return nil
	}

	if c.Depth <= 0 {
		l.add(ErrDepthZero, "depth must be > 0", "depth", fmt.Sprintf("%g", c.Depth))
		return nil
	}

	if c.Thickness >= c.Depth/2 {
		l.add(ErrThicknessTooLarge,
			fmt.Sprintf("thickness (%gmm) must be < depth/2 (%.3fmm)", c.Thickness, c.Depth/2),
			"thickness", fmt.Sprintf("%g", c.Thickness))
	}
	if c.Thickness >= c.Short/4 {
		l.add(ErrThicknessTooLarge,
			fmt.Sprintf("thickness (%gmm) must be < short/4 (%.3fmm)", c.Thickness, c.Short/4),
			"thickness", fmt.Sprintf("%g", c.Thickness))
	}

	if 3*c.Depth > c.SheetHeight {
		l.add(ErrTestStripTooTall,
			fmt.Sprintf("depth (%gmm) produces a test strip %gmm tall, exceeding sheet height (%gmm); reduce depth or enlarge the sheet",
				c.Depth, 3*c.Depth, c.SheetHeight),
			"depth", fmt.Sprintf("%g", c.Depth))
	}

	// Mode B: the diagonal must clear the inset or the trapezoid degenerates.
	if c.Leg != nil {
		inset := (c.Long - c.Short) / 2
		if *c.Leg <= inset {
			l.add(ErrLegTooShort,
				fmt.Sprintf("leg (%gmm) must be > leg inset (%.3fmm)", *c.Leg, inset),
				"leg", fmt.Sprintf("%g", *c.Leg))
			return nil
		}
	}

	geom := trapezoid.Derive(c.Dims())

	if _, err := joint.ResolveCornerRadius(c.CornerRadius, c.Thickness, geom.ShortOuter, geom.DepthOuter); err != nil {
		l.add(ErrCornerRadius, err.Error(), "corner-radius", "")
	}

	// Structural safety for non-orthogonal joints: the rotational overcut must
	// not consume the structural tab.
	fw := joint.AutoFingerWidthFactor * c.Thickness
	if c.FingerWidth != nil {
		fw = *c.FingerWidth
	}
	wOver := c.Thickness * math.Tan(geom.LegAngleDeg*math.Pi/180)
	wStruct := fw - c.Tolerance - wOver
	if wStruct < c.Thickness*joint.MinStructRatio {
		l.add(ErrStructTabTooThin,
			fmt.Sprintf("at leg angle %.2f° the rotational overcut (%.3fmm) reduces the structural tab width to %.3fmm, below the minimum (%.3fmm); reduce the trapezoid angle, increase finger width, or reduce thickness",
				geom.LegAngleDeg, wOver, wStruct, c.Thickness*joint.MinStructRatio),
			"", "")
	}

	return &geom
}

// ValidateBox validates a box configuration. An empty result means valid.
// Never exits; the CLI decides how to render errors.
func ValidateBox(cfg Box) []ValidationError {
	var l errList
	geom := validateCommon(cfg.Common, &l)
	if geom == nil {
		return l.errs
	}
	c := cfg.Common

	if cfg.Lid == LidSliding {
		if c.Depth <= 3*c.Thickness {
			l.add(ErrGrooveAngleTooSteep,
				fmt.Sprintf("sliding lid requires depth (%gmm) > 3×thickness (%gmm)", c.Depth, 3*c.Thickness),
				"depth", fmt.Sprintf("%g", c.Depth))
		}
		// Past this angle the lid cannot seat in the tilted groove without binding.
		critical := math.Acos(c.Thickness/(c.Thickness+c.Tolerance)) * 180 / math.Pi
		if geom.LegAngleDeg >= critical {
			l.add(ErrGrooveAngleTooSteep,
				fmt.Sprintf("sliding lid requires leg angle (%.3f°) < groove angle limit (%.3f°)",
					geom.LegAngleDeg, critical),
				"", "")
		}
	}

	return l.errs
}

// ValidateInstrument validates an instrument configuration.
func ValidateInstrument(cfg Instrument) []ValidationError {
	var l errList
	geom := validateCommon(cfg.Common, &l)
	if geom == nil {
		return l.errs
	}

	if cfg.SoundHole != nil && *cfg.SoundHole == HoleRoundedTrapezoid {
		longRatio := RTrapLongToBodyRatio
		if cfg.SoundHoleLongRatio != nil {
			longRatio = *cfg.SoundHoleLongRatio
		}
		if longRatio <= 0 || longRatio > 0.6 {
			l.add(ErrSoundHoleLongRatio,
				fmt.Sprintf("soundhole long ratio (%.3f) must be in (0, 0.6]", longRatio),
				"soundhole-long-ratio", fmt.Sprintf("%g", longRatio))
		}

		aspect := RTrapAspectRatio
		if cfg.SoundHoleAspect != nil {
			aspect = *cfg.SoundHoleAspect
		}
		if aspect < 0.3 || aspect > 2.0 {
			l.add(ErrSoundHoleAspect,
				fmt.Sprintf("soundhole aspect (%.3f) must be in [0.3, 2.0]", aspect),
				"soundhole-aspect", fmt.Sprintf("%g", aspect))
		}

		r := RTrapCornerRadius
		if cfg.SoundHoleRadius != nil {
			r = *cfg.SoundHoleRadius
		}
		holeLong := geom.LongOuter * longRatio
		holeShort := holeLong * geom.ShortOuter / geom.LongOuter
		holeHeight := holeLong * aspect
		minEdge := math.Min(holeShort, holeHeight)
		if r > minEdge*RTrapMaxREdgeFraction {
			l.add(ErrSoundHoleRadius,
				fmt.Sprintf("soundhole corner radius (%gmm) must be <= %.3fmm (%.0f%% of the shortest hole edge)",
					r, minEdge*RTrapMaxREdgeFraction, RTrapMaxREdgeFraction*100),
				"soundhole-radius", fmt.Sprintf("%g", r))
		}

		neckBlock := 0.0
		if cfg.Hardware {
			neckBlock = cfg.NeckBlockThickness
		}
		if neckBlock+cfg.NeckClearance+holeHeight > geom.LengthOuter {
			l.add(ErrSoundHoleTooTall,
				fmt.Sprintf("soundhole height (%.1fmm) plus neck clearance does not fit the body length (%.1fmm)",
					holeHeight, geom.LengthOuter),
				"", "")
		}
	}

	return l.errs
}
