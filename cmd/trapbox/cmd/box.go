package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/trapbox/pkg/box"
	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

var (
	boxFlags      commonFlags
	lidType       string
	hingeDiameter float64
)

var boxCmd = &cobra.Command{
	Use:   "box",
	Short: "Generate a trapezoid box",
	Long: `Generate the cut file for a finger-jointed trapezoid box.

Examples:
  trapbox box --long 200 --short 150 --length 300 --depth 80 --lid lift-off
  trapbox box --preset sliding-box
  trapbox box --long 160 --short 120 --leg 210 --depth 40 --inner`,
	Args: cobra.NoArgs,
	RunE: runBox,
}

func init() {
	rootCmd.AddCommand(boxCmd)
	addCommonFlags(boxCmd, &boxFlags)
	boxCmd.Flags().StringVar(&lidType, "lid", string(config.LidNone),
		"lid style: none, lift-off, sliding, hinged, flap")
	boxCmd.Flags().Float64Var(&hingeDiameter, "hinge-diameter", config.DefaultHingeDiameter,
		"barrel hinge hole diameter, mm (hinged lid)")
}

func runBox(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultBox()

	p, err := loadPreset(&boxFlags)
	if err != nil {
		return err
	}
	if p != nil {
		if p.Box == nil {
			return fmt.Errorf("preset %q is not a box preset", p.Name)
		}
		cfg = *p.Box
	}

	boxFlags.apply(cmd, &cfg.Common)
	if cmd.Flags().Changed("lid") {
		switch config.LidType(lidType) {
		case config.LidNone, config.LidLiftOff, config.LidSliding, config.LidHinged, config.LidFlap:
			cfg.Lid = config.LidType(lidType)
		default:
			return fmt.Errorf("unknown lid type %q", lidType)
		}
	}
	if cmd.Flags().Changed("hinge-diameter") {
		cfg.HingeDiameter = hingeDiameter
	}

	if err := reportValidation(config.ValidateBox(cfg), cfg.Common.JSONErrors); err != nil {
		return err
	}

	g := trapezoid.Derive(cfg.Common.Dims())
	radius, err := joint.ResolveCornerRadius(cfg.Common.CornerRadius, cfg.Common.Thickness,
		g.ShortOuter, g.DepthOuter)
	if err != nil {
		return err
	}

	panels, warnings, err := box.Build(cfg, g, radius)
	if err != nil {
		return err
	}
	return emit(panels, warnings, cfg.Common, g, "box", nil)
}
