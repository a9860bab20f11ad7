package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/instrument"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

var (
	instFlags commonFlags

	soundholeType   string
	soundholeOrient string
	helmholtzFreq   float64
	soundholeSize   float64
	scaleLength     float64
	topThickness    float64
	noKerfing       bool
	hardware        bool
	braces          bool
	fingerDirection string
)

var instrumentCmd = &cobra.Command{
	Use:   "instrument",
	Short: "Generate a stringed-instrument body",
	Long: `Generate the cut file for a trapezoid instrument body: back, walls,
soundboard with a Helmholtz-tuned soundhole, kerfing stock and glue blocks.

Examples:
  trapbox instrument --preset dulcimer
  trapbox instrument --long 280 --short 200 --length 480 --depth 100 \
      --soundhole rounded-trapezoid --helmholtz 82.4 --hardware`,
	Args: cobra.NoArgs,
	RunE: runInstrument,
}

func init() {
	rootCmd.AddCommand(instrumentCmd)
	addCommonFlags(instrumentCmd, &instFlags)
	fl := instrumentCmd.Flags()
	fl.StringVar(&soundholeType, "soundhole", "", "soundhole type: round, f-hole, rounded-trapezoid")
	fl.StringVar(&soundholeOrient, "soundhole-orientation", string(config.OrientSame),
		"rounded-trapezoid orientation: same, flipped")
	fl.Float64Var(&helmholtzFreq, "helmholtz", config.DefaultHelmholtzHz, "target resonant frequency, Hz")
	fl.Float64Var(&soundholeSize, "soundhole-size", 0, "explicit soundhole size, mm (overrides tuning)")
	fl.Float64Var(&scaleLength, "scale-length", 0, "scale length for the bridge mark, mm")
	fl.Float64Var(&topThickness, "top-thickness", config.DefaultThickness, "soundboard thickness, mm")
	fl.BoolVar(&noKerfing, "no-kerfing", false, "omit kerfing strips and fillets")
	fl.BoolVar(&hardware, "hardware", false, "cut neck and tail glue blocks")
	fl.BoolVar(&braces, "braces", false, "etch brace positions on the soundboard")
	fl.StringVar(&fingerDirection, "finger-direction", string(config.FingerOutward),
		"finger protrusion: in, out")
}

func runInstrument(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultInstrument()

	p, err := loadPreset(&instFlags)
	if err != nil {
		return err
	}
	if p != nil {
		if p.Instrument == nil {
			return fmt.Errorf("preset %q is not an instrument preset", p.Name)
		}
		cfg = *p.Instrument
	}

	instFlags.apply(cmd, &cfg.Common)
	set := cmd.Flags().Changed
	if set("soundhole") {
		switch config.SoundHoleType(soundholeType) {
		case config.HoleRound, config.HoleF, config.HoleRoundedTrapezoid:
			t := config.SoundHoleType(soundholeType)
			cfg.SoundHole = &t
		default:
			return fmt.Errorf("unknown soundhole type %q", soundholeType)
		}
	}
	if set("soundhole-orientation") {
		switch config.SoundHoleOrientation(soundholeOrient) {
		case config.OrientSame, config.OrientFlipped:
			cfg.SoundHoleOrientation = config.SoundHoleOrientation(soundholeOrient)
		default:
			return fmt.Errorf("soundhole orientation must be same or flipped, got %q", soundholeOrient)
		}
	}
	if set("helmholtz") {
		cfg.HelmholtzFreq = helmholtzFreq
	}
	if set("soundhole-size") {
		cfg.SoundHoleSize = config.Float(soundholeSize)
	}
	if set("scale-length") {
		cfg.ScaleLength = config.Float(scaleLength)
	}
	if set("top-thickness") {
		cfg.TopThickness = topThickness
	}
	if set("no-kerfing") {
		cfg.Kerfing = !noKerfing
	}
	if set("hardware") {
		cfg.Hardware = hardware
	}
	if set("braces") {
		cfg.Braces = braces
	}
	if set("finger-direction") {
		switch config.FingerDirection(fingerDirection) {
		case config.FingerInward, config.FingerOutward:
			cfg.FingerDirection = config.FingerDirection(fingerDirection)
		default:
			return fmt.Errorf("finger direction must be in or out, got %q", fingerDirection)
		}
	}

	if err := reportValidation(config.ValidateInstrument(cfg), cfg.Common.JSONErrors); err != nil {
		return err
	}

	g := trapezoid.Derive(cfg.Common.Dims())
	radius, err := joint.ResolveCornerRadius(cfg.Common.CornerRadius, cfg.Common.Thickness,
		g.ShortOuter, g.DepthOuter)
	if err != nil {
		return err
	}

	panels, warnings, shResult, err := instrument.Build(cfg, g, radius)
	if err != nil {
		return err
	}
	return emit(panels, warnings, cfg.Common, g, "instrument", shResult)
}
