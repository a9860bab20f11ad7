// Preset scripts are small Lisp programs evaluated in a zygomys sandbox:
//
//	(preset :name "travel-box" :mode :box :description "Box that fits a tin")
//	(dimensions :long 160 :short 120 :length 200 :depth 40)
//	(joinery :burn 0.08 :tolerance 0.1)
//	(lid :type "sliding")
//
// Each form overlays fields onto the mode's defaults; omitted fields keep
// their default values.
package preset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/trapbox/pkg/config"
)

// EvalError is a non-fatal script problem: a parse error or a bad argument.
type EvalError struct {
	Line    int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine evaluates preset scripts. Safe for concurrent use; each Evaluate
// call runs in a fresh sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a preset script engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs a preset script and returns the resulting preset.
//
//   - On success: preset + nil errors + nil error
//   - On parse/eval failure: nil + eval errors + nil error
//   - On fatal failure (timeout, panic): nil + nil + error
func (e *Engine) Evaluate(source string) (*Preset, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()
		p, evalErrs, err := e.evaluate(source)
		ch <- evalResult{preset: p, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

func (e *Engine) evaluate(source string) (*Preset, []EvalError, error) {
	if strings.TrimSpace(source) == "" {
		return nil, []EvalError{{Message: "empty preset script"}}, nil
	}

	// Sandbox mode keeps scripts away from the filesystem and syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	p := &Preset{}
	registerBuiltins(env, p)

	if err := env.LoadString(preprocessSource(source)); err != nil {
		return nil, parseZygoError(err), nil
	}
	if _, err := env.Run(); err != nil {
		return nil, parseZygoError(err), nil
	}

	if p.common() == nil {
		return nil, []EvalError{{Message: "script never called (preset :mode ...)"}}, nil
	}
	return p, nil, nil
}

var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

func parseZygoError(err error) []EvalError {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{Line: line, Message: strings.TrimSpace(m[2])}}
	}
	return []EvalError{{Message: strings.TrimSpace(msg)}}
}

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource converts :keyword tokens to "__kw_keyword" string
// literals and ; comments to // before handing the script to zygomys, which
// has neither. String literal boundaries are respected.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]) {
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, []byte(kwPrefix)...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

const kwPrefix = "__kw_"

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs map[string]zygo.Sexp

func parseArgs(args []zygo.Sexp) kwArgs {
	kw := make(kwArgs)
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok && i+1 < len(args) {
			kw[name] = args[i+1]
			i += 2
			continue
		}
		i++
	}
	return kw
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString accepts both plain strings and keyword literals, so
// `:type :sliding` and `:type "sliding"` both work.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return strings.TrimPrefix(str.S, kwPrefix), nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	if b, ok := s.(*zygo.SexpBool); ok {
		return b.Val, nil
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// setFloat / setOptFloat / setBool apply a keyword arg when present.
func setFloat(kw kwArgs, name string, dst *float64) error {
	v, ok := kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = f
	return nil
}

func setOptFloat(kw kwArgs, name string, dst **float64) error {
	v, ok := kw[name]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = &f
	return nil
}

func setBool(kw kwArgs, name string, dst *bool) error {
	v, ok := kw[name]
	if !ok {
		return nil
	}
	b, err := toBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = b
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the preset DSL into a zygomys environment. The
// builtins overlay fields onto p as the script runs.
func registerBuiltins(env *zygo.Zlisp, p *Preset) {

	// (preset :name "x" :mode :box :description "...")
	env.AddFunction("preset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		kw := parseArgs(args)
		if v, ok := kw["name"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("preset: name: %w", err)
			}
			p.Name = s
		}
		if v, ok := kw["description"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("preset: description: %w", err)
			}
			p.Description = s
		}
		mode, ok := kw["mode"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("preset: :mode is required")
		}
		s, err := toString(mode)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("preset: mode: %w", err)
		}
		switch Mode(s) {
		case ModeBox:
			p.Mode = ModeBox
			cfg := config.DefaultBox()
			p.Box = &cfg
		case ModeInstrument:
			p.Mode = ModeInstrument
			cfg := config.DefaultInstrument()
			p.Instrument = &cfg
		default:
			return zygo.SexpNull, fmt.Errorf("preset: mode must be box or instrument, got %q", s)
		}
		return zygo.SexpNull, nil
	})

	// (dimensions :long 180 :short 120 :length 380 :depth 90 :thickness 3 :dim-mode :inner)
	env.AddFunction("dimensions", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c := p.common()
		if c == nil {
			return zygo.SexpNull, fmt.Errorf("dimensions: call (preset :mode ...) first")
		}
		kw := parseArgs(args)
		for _, f := range []struct {
			key string
			dst *float64
		}{
			{"long", &c.Long}, {"short", &c.Short},
			{"depth", &c.Depth}, {"thickness", &c.Thickness},
		} {
			if err := setFloat(kw, f.key, f.dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("dimensions: %w", err)
			}
		}
		if err := setOptFloat(kw, "length", &c.Length); err != nil {
			return zygo.SexpNull, fmt.Errorf("dimensions: %w", err)
		}
		if err := setOptFloat(kw, "leg", &c.Leg); err != nil {
			return zygo.SexpNull, fmt.Errorf("dimensions: %w", err)
		}
		if v, ok := kw["dim-mode"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("dimensions: dim-mode: %w", err)
			}
			switch config.DimMode(s) {
			case config.DimOuter, config.DimInner:
				c.DimMode = config.DimMode(s)
			default:
				return zygo.SexpNull, fmt.Errorf("dimensions: dim-mode must be outer or inner, got %q", s)
			}
		}
		return zygo.SexpNull, nil
	})

	// (joinery :burn 0.05 :tolerance 0.1 :corner-radius 9 :finger-width 9)
	env.AddFunction("joinery", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c := p.common()
		if c == nil {
			return zygo.SexpNull, fmt.Errorf("joinery: call (preset :mode ...) first")
		}
		kw := parseArgs(args)
		if err := setFloat(kw, "burn", &c.Burn); err != nil {
			return zygo.SexpNull, fmt.Errorf("joinery: %w", err)
		}
		if err := setFloat(kw, "tolerance", &c.Tolerance); err != nil {
			return zygo.SexpNull, fmt.Errorf("joinery: %w", err)
		}
		if err := setOptFloat(kw, "corner-radius", &c.CornerRadius); err != nil {
			return zygo.SexpNull, fmt.Errorf("joinery: %w", err)
		}
		if err := setOptFloat(kw, "finger-width", &c.FingerWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("joinery: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (sheet :width 600 :height 400)
	env.AddFunction("sheet", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c := p.common()
		if c == nil {
			return zygo.SexpNull, fmt.Errorf("sheet: call (preset :mode ...) first")
		}
		kw := parseArgs(args)
		if err := setFloat(kw, "width", &c.SheetWidth); err != nil {
			return zygo.SexpNull, fmt.Errorf("sheet: %w", err)
		}
		if err := setFloat(kw, "height", &c.SheetHeight); err != nil {
			return zygo.SexpNull, fmt.Errorf("sheet: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (lid :type :sliding :hinge-diameter 6)
	env.AddFunction("lid", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if p.Box == nil {
			return zygo.SexpNull, fmt.Errorf("lid: only valid in box mode")
		}
		kw := parseArgs(args)
		if v, ok := kw["type"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("lid: type: %w", err)
			}
			switch config.LidType(s) {
			case config.LidNone, config.LidLiftOff, config.LidSliding, config.LidHinged, config.LidFlap:
				p.Box.Lid = config.LidType(s)
			default:
				return zygo.SexpNull, fmt.Errorf("lid: unknown type %q", s)
			}
		}
		if err := setFloat(kw, "hinge-diameter", &p.Box.HingeDiameter); err != nil {
			return zygo.SexpNull, fmt.Errorf("lid: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (soundhole :type :rounded-trapezoid :aspect 0.6 :helmholtz 82.4 :orientation :flipped)
	env.AddFunction("soundhole", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		inst := p.Instrument
		if inst == nil {
			return zygo.SexpNull, fmt.Errorf("soundhole: only valid in instrument mode")
		}
		kw := parseArgs(args)
		if v, ok := kw["type"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("soundhole: type: %w", err)
			}
			switch config.SoundHoleType(s) {
			case config.HoleRound, config.HoleF, config.HoleRoundedTrapezoid:
				t := config.SoundHoleType(s)
				inst.SoundHole = &t
			default:
				return zygo.SexpNull, fmt.Errorf("soundhole: unknown type %q", s)
			}
		}
		if v, ok := kw["orientation"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("soundhole: orientation: %w", err)
			}
			switch config.SoundHoleOrientation(s) {
			case config.OrientSame, config.OrientFlipped:
				inst.SoundHoleOrientation = config.SoundHoleOrientation(s)
			default:
				return zygo.SexpNull, fmt.Errorf("soundhole: orientation must be same or flipped, got %q", s)
			}
		}
		if err := setFloat(kw, "helmholtz", &inst.HelmholtzFreq); err != nil {
			return zygo.SexpNull, fmt.Errorf("soundhole: %w", err)
		}
		for _, f := range []struct {
			key string
			dst **float64
		}{
			{"long-ratio", &inst.SoundHoleLongRatio},
			{"aspect", &inst.SoundHoleAspect},
			{"radius", &inst.SoundHoleRadius},
			{"diameter", &inst.SoundHoleDiameter},
			{"size", &inst.SoundHoleSize},
			{"x", &inst.SoundHoleX},
			{"y", &inst.SoundHoleY},
		} {
			if err := setOptFloat(kw, f.key, f.dst); err != nil {
				return zygo.SexpNull, fmt.Errorf("soundhole: %w", err)
			}
		}
		return zygo.SexpNull, nil
	})

	// (body :hardware true :kerfing true :braces true :scale-length 580 :top-thickness 3)
	env.AddFunction("body", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		inst := p.Instrument
		if inst == nil {
			return zygo.SexpNull, fmt.Errorf("body: only valid in instrument mode")
		}
		kw := parseArgs(args)
		if err := setBool(kw, "hardware", &inst.Hardware); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: %w", err)
		}
		if err := setBool(kw, "kerfing", &inst.Kerfing); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: %w", err)
		}
		if err := setBool(kw, "braces", &inst.Braces); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: %w", err)
		}
		if err := setOptFloat(kw, "scale-length", &inst.ScaleLength); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: %w", err)
		}
		if err := setFloat(kw, "top-thickness", &inst.TopThickness); err != nil {
			return zygo.SexpNull, fmt.Errorf("body: %w", err)
		}
		if v, ok := kw["finger-direction"]; ok {
			s, err := toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("body: finger-direction: %w", err)
			}
			switch config.FingerDirection(s) {
			case config.FingerInward, config.FingerOutward:
				inst.FingerDirection = config.FingerDirection(s)
			default:
				return zygo.SexpNull, fmt.Errorf("body: finger-direction must be in or out, got %q", s)
			}
		}
		return zygo.SexpNull, nil
	})
}
