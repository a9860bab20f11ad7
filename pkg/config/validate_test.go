package config

import (
	"math"
	"testing"
)

func validCommon() Common {
	c := DefaultCommon()
	c.Long = 180
	c.Short = 120
	c.Length = Float(380)
	c.Depth = 90
	return c
}

func hasCode(errs []ValidationError, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestValidateBoxAccepts(t *testing.T) {
	cfg := DefaultBox()
	cfg.Common = validCommon()
	if errs := ValidateBox(cfg); len(errs) != 0 {
		t.Fatalf("valid config rejected: %v", errs)
	}
}

func TestValidateCommonRejections(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Common)
		wantCode string
	}{
		{"long not greater than short", func(c *Common) { c.Long = 120 }, ErrLongShortOrder},
		{"neither length nor leg", func(c *Common) { c.Length = nil }, ErrMissingLengthOrLeg},
		{"both length and leg", func(c *Common) { c.Leg = Float(381) }, ErrExclusiveLengthLeg},
		{"zero depth", func(c *Common) { c.Depth = 0 }, ErrDepthZero},
		{"thickness vs depth", func(c *Common) { c.Thickness = 50 }, ErrThicknessTooLarge},
		{"thickness vs short", func(c *Common) { c.Thickness = 31; c.Depth = 300; c.SheetHeight = 1000 }, ErrThicknessTooLarge},
		{"leg shorter than inset", func(c *Common) { c.Length = nil; c.Leg = Float(20) }, ErrLegTooShort},
		{"test strip exceeds sheet", func(c *Common) { c.Depth = 250 }, ErrTestStripTooTall},
		{"corner radius too large", func(c *Common) { c.CornerRadius = Float(70) }, ErrCornerRadius},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBox()
			cfg.Common = validCommon()
			tt.mutate(&cfg.Common)
			errs := ValidateBox(cfg)
			if !hasCode(errs, tt.wantCode) {
				t.Errorf("want code %s, got %v", tt.wantCode, errs)
			}
		})
	}
}

func TestValidateStructuralTab(t *testing.T) {
	// A steep trapezoid with a narrow finger width: the rotational overcut
	// eats the structural tab.
	cfg := DefaultBox()
	cfg.Common = validCommon()
	cfg.Common.Long = 300
	cfg.Common.Short = 100
	cfg.Common.Length = Float(120)
	cfg.Common.FingerWidth = Float(3)

	errs := ValidateBox(cfg)
	if !hasCode(errs, ErrStructTabTooThin) {
		t.Fatalf("want %s, got %v", ErrStructTabTooThin, errs)
	}
}

func TestValidateSlidingLidGrooveAngle(t *testing.T) {
	// The groove angle limit is acos(T/(T+tol)): with the default tolerance
	// of 0.1 on 3mm stock that is about 14.6°, so a 4.5° body passes and a
	// 22° body fails.
	cfg := DefaultBox()
	cfg.Common = validCommon()
	cfg.Lid = LidSliding
	if errs := ValidateBox(cfg); len(errs) != 0 {
		t.Fatalf("shallow body rejected: %v", errs)
	}

	critical := math.Acos(cfg.Common.Thickness/(cfg.Common.Thickness+cfg.Common.Tolerance)) * 180 / math.Pi
	if math.Abs(critical-14.59) > 0.05 {
		t.Fatalf("groove angle limit = %.3f, expected about 14.59", critical)
	}

	// Long/short spread of 160 over a 200mm length is a 21.8° leg angle.
	cfg.Common.Long = 280
	cfg.Common.Short = 120
	cfg.Common.Length = Float(200)
	errs := ValidateBox(cfg)
	if !hasCode(errs, ErrGrooveAngleTooSteep) {
		t.Fatalf("want %s, got %v", ErrGrooveAngleTooSteep, errs)
	}
}

func TestValidateSlidingLidShallowDepth(t *testing.T) {
	cfg := DefaultBox()
	cfg.Common = validCommon()
	cfg.Lid = LidSliding
	cfg.Common.Depth = 9 // not > 3×thickness
	errs := ValidateBox(cfg)
	if !hasCode(errs, ErrGrooveAngleTooSteep) {
		t.Fatalf("want %s, got %v", ErrGrooveAngleTooSteep, errs)
	}
}

func TestValidateInstrumentSoundhole(t *testing.T) {
	base := func() Instrument {
		cfg := DefaultInstrument()
		cfg.Common = validCommon()
		hole := HoleRoundedTrapezoid
		cfg.SoundHole = &hole
		return cfg
	}

	if errs := ValidateInstrument(base()); len(errs) != 0 {
		t.Fatalf("valid instrument rejected: %v", errs)
	}

	cfg := base()
	cfg.SoundHoleLongRatio = Float(0.9)
	if !hasCode(ValidateInstrument(cfg), ErrSoundHoleLongRatio) {
		t.Error("want long-ratio rejection")
	}

	cfg = base()
	cfg.SoundHoleAspect = Float(5)
	if !hasCode(ValidateInstrument(cfg), ErrSoundHoleAspect) {
		t.Error("want aspect rejection")
	}

	cfg = base()
	cfg.SoundHoleRadius = Float(25)
	if !hasCode(ValidateInstrument(cfg), ErrSoundHoleRadius) {
		t.Error("want radius rejection")
	}

	// A hole taller than the space below the neck clearance cannot fit.
	cfg = base()
	cfg.SoundHoleAspect = Float(2.0)
	cfg.SoundHoleLongRatio = Float(0.6)
	cfg.Common.Length = Float(160)
	cfg.Common.Depth = 60
	if !hasCode(ValidateInstrument(cfg), ErrSoundHoleTooTall) {
		t.Error("want too-tall rejection")
	}
}

func TestDimsConversion(t *testing.T) {
	c := validCommon()
	c.DimMode = DimInner
	d := c.Dims()
	if !d.Inner {
		t.Error("DimInner must map to Dims.Inner")
	}
	if d.Long != 180 || d.Short != 120 || *d.Length != 380 {
		t.Error("dimension fields must pass through unchanged")
	}
}

func TestValidationErrorFormat(t *testing.T) {
	e := ValidationError{Code: ErrDepthZero, Message: "depth must be > 0", Parameter: "depth", Value: "0"}
	want := "VALIDATION_DEPTH_ZERO: depth must be > 0 (parameter depth=0)"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}
