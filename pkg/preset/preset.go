// Package preset holds named ready-to-cut configurations and a small Lisp
// scripting layer for defining new ones.
package preset

import (
	"fmt"
	"sort"

	"github.com/chazu/trapbox/pkg/config"
)

// Mode selects which build pipeline a preset drives.
type Mode string

const (
	ModeBox        Mode = "box"
	ModeInstrument Mode = "instrument"
)

// Preset is a complete named configuration. Exactly one of Box/Instrument is
// non-nil, matching Mode.
type Preset struct {
	Name        string
	Mode        Mode
	Description string
	Box         *config.Box
	Instrument  *config.Instrument
}

// common returns the shared config section regardless of mode.
func (p *Preset) common() *config.Common {
	if p.Box != nil {
		return &p.Box.Common
	}
	if p.Instrument != nil {
		return &p.Instrument.Common
	}
	return nil
}

func builtins() map[string]Preset {
	pencil := config.DefaultBox()
	pencil.Common.Long = 220
	pencil.Common.Short = 30
	pencil.Common.Length = config.Float(200)
	pencil.Common.Depth = 25

	storage := config.DefaultBox()
	storage.Common.Long = 200
	storage.Common.Short = 150
	storage.Common.Length = config.Float(300)
	storage.Common.Depth = 80
	storage.Lid = config.LidLiftOff

	sliding := config.DefaultBox()
	sliding.Common.Long = 160
	sliding.Common.Short = 120
	sliding.Common.Length = config.Float(200)
	sliding.Common.Depth = 40
	sliding.Lid = config.LidSliding

	dulcimer := config.DefaultInstrument()
	dulcimer.Common.Long = 180
	dulcimer.Common.Short = 120
	dulcimer.Common.Length = config.Float(380)
	dulcimer.Common.Depth = 90
	hole := config.HoleRoundedTrapezoid
	dulcimer.SoundHole = &hole
	dulcimer.SoundHoleAspect = config.Float(0.6)
	dulcimer.Hardware = true

	tenor := config.DefaultInstrument()
	tenor.Common.Long = 280
	tenor.Common.Short = 200
	tenor.Common.Length = config.Float(480)
	tenor.Common.Depth = 100
	tenorHole := config.HoleRoundedTrapezoid
	tenor.SoundHole = &tenorHole
	tenor.SoundHoleAspect = config.Float(0.6)
	tenor.Hardware = true
	tenor.HelmholtzFreq = 82.4 // low E2 for tenor guitar

	return map[string]Preset{
		"pencil-box": {
			Name: "pencil-box", Mode: ModeBox,
			Description: "Small open-top box. Good first project for students.",
			Box:         &pencil,
		},
		"storage-box": {
			Name: "storage-box", Mode: ModeBox,
			Description: "Medium box with lift-off lid.",
			Box:         &storage,
		},
		"sliding-box": {
			Name: "sliding-box", Mode: ModeBox,
			Description: "Compact box with sliding lid.",
			Box:         &sliding,
		},
		"dulcimer": {
			Name: "dulcimer", Mode: ModeInstrument,
			Description: "Dulcimer body with rounded-trapezoid soundhole, hardware and kerfing.",
			Instrument:  &dulcimer,
		},
		"tenor-guitar": {
			Name: "tenor-guitar", Mode: ModeInstrument,
			Description: "Scaled-up dulcimer at tenor guitar proportions, tuned to E2.",
			Instrument:  &tenor,
		},
	}
}

// Get returns a copy of the named built-in preset.
func Get(name string) (Preset, error) {
	p, ok := builtins()[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q; run `trapbox presets` to list them", name)
	}
	return p, nil
}

// List returns all built-in presets sorted by name.
func List() []Preset {
	m := builtins()
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Preset, len(names))
	for i, n := range names {
		out[i] = m[n]
	}
	return out
}
