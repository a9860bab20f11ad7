// Package cmd implements the trapbox command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/trapbox/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "trapbox",
	Short: "Laser-cut trapezoid box and instrument body generator",
	Long: `trapbox generates laser-ready SVG or DXF cut files for finger-jointed
trapezoid boxes and stringed-instrument bodies, with kerf compensation,
Helmholtz-tuned soundholes, and automatic sheet layout.

Examples:
  trapbox box --long 200 --short 150 --length 300 --depth 80 --lid lift-off
  trapbox box --preset sliding-box --output out.svg
  trapbox instrument --preset dulcimer
  trapbox instrument --script my-preset.zy
  trapbox presets`,
	Version: config.ToolVersion,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commonFlags mirrors config.Common. Optional fields track their own
// presence because zero is a meaningful value for several of them.
type commonFlags struct {
	long, short, length, leg, depth     float64
	thickness, burn, tolerance          float64
	cornerRadius, fingerWidth           float64
	sheetWidth, sheetHeight             float64
	noLabels, inner, colorblind, jsonE  bool
	displayStroke                       float64
	output                              string
	presetName, scriptPath              string
}

func addCommonFlags(cmd *cobra.Command, f *commonFlags) {
	fl := cmd.Flags()
	fl.Float64Var(&f.long, "long", 0, "long parallel edge, mm")
	fl.Float64Var(&f.short, "short", 0, "short parallel edge, mm")
	fl.Float64Var(&f.length, "length", 0, "perpendicular length, mm (exclusive with --leg)")
	fl.Float64Var(&f.leg, "leg", 0, "leg (slanted side) length, mm (exclusive with --length)")
	fl.Float64Var(&f.depth, "depth", 0, "box depth, mm")
	fl.Float64Var(&f.thickness, "thickness", config.DefaultThickness, "material thickness, mm")
	fl.Float64Var(&f.burn, "burn", config.DefaultBurn, "laser kerf compensation, mm")
	fl.Float64Var(&f.tolerance, "tolerance", config.DefaultTolerance, "joint fit clearance, mm")
	fl.Float64Var(&f.cornerRadius, "corner-radius", 0, "corner fillet radius, mm (default 3×thickness)")
	fl.Float64Var(&f.fingerWidth, "finger-width", 0, "finger width, mm (default 3×thickness)")
	fl.Float64Var(&f.sheetWidth, "sheet-width", config.DefaultSheetWidth, "stock sheet width, mm")
	fl.Float64Var(&f.sheetHeight, "sheet-height", config.DefaultSheetHeight, "stock sheet height, mm")
	fl.BoolVar(&f.noLabels, "no-labels", false, "omit panel labels and assembly numbers")
	fl.BoolVar(&f.inner, "inner", false, "treat dimensions as inner (usable) dimensions")
	fl.BoolVar(&f.colorblind, "colorblind", false, "solid/dashed black output instead of red/blue")
	fl.BoolVar(&f.jsonE, "json-errors", false, "print validation errors as JSON")
	fl.Float64Var(&f.displayStroke, "display-stroke", 0, "stroke width for human-viewable output, mm (0 = hairline)")
	fl.StringVarP(&f.output, "output", "o", "trapbox_output.svg", "output file (.svg or .dxf)")
	fl.StringVar(&f.presetName, "preset", "", "start from a named preset")
	fl.StringVar(&f.scriptPath, "script", "", "start from a preset script file")
}

// apply overlays flags the user actually set onto c.
func (f *commonFlags) apply(cmd *cobra.Command, c *config.Common) {
	fl := cmd.Flags()
	set := fl.Changed

	if set("long") {
		c.Long = f.long
	}
	if set("short") {
		c.Short = f.short
	}
	if set("length") {
		c.Length = config.Float(f.length)
		c.Leg = nil
	}
	if set("leg") {
		c.Leg = config.Float(f.leg)
		c.Length = nil
	}
	if set("depth") {
		c.Depth = f.depth
	}
	if set("thickness") {
		c.Thickness = f.thickness
	}
	if set("burn") {
		c.Burn = f.burn
	}
	if set("tolerance") {
		c.Tolerance = f.tolerance
	}
	if set("corner-radius") {
		c.CornerRadius = config.Float(f.cornerRadius)
	}
	if set("finger-width") {
		c.FingerWidth = config.Float(f.fingerWidth)
	}
	if set("sheet-width") {
		c.SheetWidth = f.sheetWidth
	}
	if set("sheet-height") {
		c.SheetHeight = f.sheetHeight
	}
	if set("no-labels") {
		c.Labels = !f.noLabels
	}
	if set("inner") && f.inner {
		c.DimMode = config.DimInner
	}
	if set("colorblind") {
		c.Colorblind = f.colorblind
	}
	if set("json-errors") {
		c.JSONErrors = f.jsonE
	}
	if set("display-stroke") {
		c.DisplayStrokeMM = f.displayStroke
	}
	if set("output") {
		c.Output = f.output
	}
}
