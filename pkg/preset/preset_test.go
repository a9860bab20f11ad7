package preset

import (
	"strings"
	"testing"

	"github.com/chazu/trapbox/pkg/config"
)

func TestGetBuiltin(t *testing.T) {
	p, err := Get("dulcimer")
	if err != nil {
		t.Fatalf("Get(dulcimer): %v", err)
	}
	if p.Mode != ModeInstrument {
		t.Errorf("mode = %q, want %q", p.Mode, ModeInstrument)
	}
	if p.Instrument == nil {
		t.Fatal("Instrument config is nil")
	}
	if p.Box != nil {
		t.Error("Box config should be nil for an instrument preset")
	}
	if p.Instrument.SoundHole == nil || *p.Instrument.SoundHole != config.HoleRoundedTrapezoid {
		t.Errorf("soundhole = %v, want rounded-trapezoid", p.Instrument.SoundHole)
	}
	if !p.Instrument.Hardware {
		t.Error("dulcimer preset should include hardware")
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Get("shoebox")
	if err == nil {
		t.Fatal("expected error for unknown preset")
	}
	if !strings.Contains(err.Error(), "shoebox") {
		t.Errorf("error should name the preset: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	got := List()
	want := []string{"dulcimer", "pencil-box", "sliding-box", "storage-box", "tenor-guitar"}
	if len(got) != len(want) {
		t.Fatalf("List returned %d presets, want %d", len(got), len(want))
	}
	for i, p := range got {
		if p.Name != want[i] {
			t.Errorf("List[%d] = %q, want %q", i, p.Name, want[i])
		}
		if p.Description == "" {
			t.Errorf("%s: empty description", p.Name)
		}
	}
}

func TestEvaluateBoxScript(t *testing.T) {
	src := `
; travel-sized box
(preset :name "travel-box" :mode :box :description "Box that fits a tin")
(dimensions :long 160 :short 120 :length 200 :depth 40)
(joinery :burn 0.08 :tolerance 0.1)
(sheet :width 450 :height 300)
(lid :type :sliding)
`
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if p == nil {
		t.Fatal("nil preset on success")
	}
	if p.Name != "travel-box" || p.Mode != ModeBox {
		t.Errorf("name/mode = %q/%q", p.Name, p.Mode)
	}
	if p.Description != "Box that fits a tin" {
		t.Errorf("description = %q", p.Description)
	}
	if p.Box == nil {
		t.Fatal("Box config is nil")
	}
	c := p.Box.Common
	if c.Long != 160 || c.Short != 120 || c.Depth != 40 {
		t.Errorf("dims = %v/%v/%v", c.Long, c.Short, c.Depth)
	}
	if c.Length == nil || *c.Length != 200 {
		t.Errorf("length = %v, want 200", c.Length)
	}
	if c.Burn != 0.08 || c.Tolerance != 0.1 {
		t.Errorf("joinery = %v/%v", c.Burn, c.Tolerance)
	}
	if c.SheetWidth != 450 || c.SheetHeight != 300 {
		t.Errorf("sheet = %v x %v", c.SheetWidth, c.SheetHeight)
	}
	if p.Box.Lid != config.LidSliding {
		t.Errorf("lid = %q, want sliding", p.Box.Lid)
	}
	// Fields the script left out keep their defaults.
	if c.Thickness != config.DefaultThickness {
		t.Errorf("thickness = %v, want default %v", c.Thickness, config.DefaultThickness)
	}
	if c.DimMode != config.DimOuter {
		t.Errorf("dim mode = %q, want outer", c.DimMode)
	}
	if p.Box.HingeDiameter != config.DefaultHingeDiameter {
		t.Errorf("hinge diameter = %v, want default", p.Box.HingeDiameter)
	}
}

func TestEvaluateInstrumentScript(t *testing.T) {
	src := `
(preset :name "alto" :mode :instrument)
(dimensions :long 180 :short 120 :length 380 :depth 90 :dim-mode :inner)
(soundhole :type :rounded-trapezoid :aspect 0.6 :helmholtz 82.4 :orientation :flipped)
(body :hardware true :kerfing false :braces true :scale-length 480 :finger-direction :in)
`
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) != 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	inst := p.Instrument
	if inst == nil {
		t.Fatal("Instrument config is nil")
	}
	if inst.Common.DimMode != config.DimInner {
		t.Errorf("dim mode = %q, want inner", inst.Common.DimMode)
	}
	if inst.SoundHole == nil || *inst.SoundHole != config.HoleRoundedTrapezoid {
		t.Errorf("soundhole = %v, want rounded-trapezoid", inst.SoundHole)
	}
	if inst.SoundHoleAspect == nil || *inst.SoundHoleAspect != 0.6 {
		t.Errorf("aspect = %v, want 0.6", inst.SoundHoleAspect)
	}
	if inst.HelmholtzFreq != 82.4 {
		t.Errorf("helmholtz = %v, want 82.4", inst.HelmholtzFreq)
	}
	if inst.SoundHoleOrientation != config.OrientFlipped {
		t.Errorf("orientation = %q, want flipped", inst.SoundHoleOrientation)
	}
	if !inst.Hardware || inst.Kerfing || !inst.Braces {
		t.Errorf("body flags = hardware %v kerfing %v braces %v", inst.Hardware, inst.Kerfing, inst.Braces)
	}
	if inst.ScaleLength == nil || *inst.ScaleLength != 480 {
		t.Errorf("scale length = %v, want 480", inst.ScaleLength)
	}
	if inst.FingerDirection != config.FingerInward {
		t.Errorf("finger direction = %q, want in", inst.FingerDirection)
	}
}

func TestEvaluateStringTypeArgs(t *testing.T) {
	// Plain strings work anywhere a keyword literal does.
	src := `(preset :name "b" :mode "box")
(lid :type "flap")`
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil || len(evalErrs) != 0 {
		t.Fatalf("evaluate: %v / %v", evalErrs, err)
	}
	if p.Box.Lid != config.LidFlap {
		t.Errorf("lid = %q, want flap", p.Box.Lid)
	}
}

func TestEvaluateEmptyScript(t *testing.T) {
	p, evalErrs, err := NewEngine().Evaluate("  \n\t ")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if p != nil {
		t.Error("expected nil preset")
	}
	if len(evalErrs) != 1 || evalErrs[0].Message != "empty preset script" {
		t.Errorf("eval errors = %v", evalErrs)
	}
}

func TestEvaluateMissingPresetCall(t *testing.T) {
	p, evalErrs, err := NewEngine().Evaluate(`(+ 1 2)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if p != nil {
		t.Error("expected nil preset")
	}
	if len(evalErrs) != 1 || !strings.Contains(evalErrs[0].Message, "never called") {
		t.Errorf("eval errors = %v", evalErrs)
	}
}

func TestEvaluateBadMode(t *testing.T) {
	p, evalErrs, err := NewEngine().Evaluate(`(preset :mode :pyramid)`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if p != nil {
		t.Error("expected nil preset")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors")
	}
	if !strings.Contains(evalErrs[0].Message, "pyramid") {
		t.Errorf("error should name the bad mode: %v", evalErrs[0])
	}
}

func TestEvaluateLidOutsideBoxMode(t *testing.T) {
	src := `(preset :mode :instrument)
(lid :type :sliding)`
	p, evalErrs, err := NewEngine().Evaluate(src)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if p != nil {
		t.Error("expected nil preset")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for lid in instrument mode")
	}
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keyword", `(dimensions :long 180)`, `(dimensions "__kw_long" 180)`},
		{"kebab keyword", `(joinery :corner-radius 9)`, `(joinery "__kw_corner-radius" 9)`},
		{"comment", "; a note\n(preset)", "// a note\n(preset)"},
		{"double semicolon", ";; header", "// header"},
		{"semicolon in string", `(preset :name "a;b")`, `(preset "__kw_name" "a;b")`},
		{"colon in string", `(preset :description "ratio 2:1")`, `(preset "__kw_description" "ratio 2:1")`},
		{"bare colon untouched", `(f : 1)`, `(f : 1)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEvalErrorFormat(t *testing.T) {
	e := EvalError{Line: 3, Message: "bad arg"}
	if got := e.Error(); got != "line 3: bad arg" {
		t.Errorf("Error() = %q", got)
	}
	e = EvalError{Message: "bad arg"}
	if got := e.Error(); got != "bad arg" {
		t.Errorf("Error() = %q", got)
	}
}
