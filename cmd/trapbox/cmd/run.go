package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/export"
	"github.com/chazu/trapbox/pkg/joint"
	"github.com/chazu/trapbox/pkg/layout"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/preset"
	"github.com/chazu/trapbox/pkg/soundhole"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// loadPreset resolves --preset / --script into a starting preset, or nil
// when neither was given.
func loadPreset(f *commonFlags) (*preset.Preset, error) {
	if f.presetName != "" && f.scriptPath != "" {
		return nil, fmt.Errorf("--preset and --script are mutually exclusive")
	}
	if f.presetName != "" {
		p, err := preset.Get(f.presetName)
		if err != nil {
			return nil, err
		}
		return &p, nil
	}
	if f.scriptPath != "" {
		source, err := os.ReadFile(f.scriptPath)
		if err != nil {
			return nil, err
		}
		p, evalErrs, err := preset.NewEngine().Evaluate(string(source))
		if err != nil {
			return nil, err
		}
		if len(evalErrs) > 0 {
			var lines []string
			for _, e := range evalErrs {
				lines = append(lines, e.Error())
			}
			return nil, fmt.Errorf("preset script %s:\n  %s", f.scriptPath, strings.Join(lines, "\n  "))
		}
		return p, nil
	}
	return nil, nil
}

// reportValidation prints validation errors, as JSON when requested.
// Returns a terse error for the cobra exit path.
func reportValidation(errs []config.ValidationError, jsonMode bool) error {
	if len(errs) == 0 {
		return nil
	}
	if jsonMode {
		blob, err := json.Marshal(errs)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, string(blob))
	} else {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", e.Error())
		}
	}
	return fmt.Errorf("%d validation error(s)", len(errs))
}

// emit packs, overlap-checks, writes output files and prints the summary.
func emit(panels []panel.Panel, warnings []panel.Warning, c config.Common,
	g trapezoid.Geometry, mode string, sh *soundhole.Result) error {

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w.String())
	}

	placements, layoutWarnings := layout.Pack(panels, c.SheetWidth, c.SheetHeight)
	for _, w := range layoutWarnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w.String())
	}

	overlaps, err := layout.CheckOverlaps(placements)
	if err != nil {
		return err
	}
	if len(overlaps) > 0 {
		return fmt.Errorf("internal layout error: %s", strings.Join(overlaps, "; "))
	}

	numSheets := 0
	for _, pl := range placements {
		if pl.Sheet+1 > numSheets {
			numSheets = pl.Sheet + 1
		}
	}

	paths := outputPaths(c.Output, numSheets)
	asDXF := strings.EqualFold(filepath.Ext(c.Output), ".dxf")
	for sheet := 0; sheet < numSheets; sheet++ {
		if asDXF {
			if err := export.WriteDXFSheet(paths[sheet], placements, sheet, c); err != nil {
				return err
			}
			continue
		}
		f, err := os.Create(paths[sheet])
		if err != nil {
			return err
		}
		err = export.WriteSVGSheet(f, placements, sheet, c, mode)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}

	printSummary(panels, c, g, mode, sh, numSheets)
	return nil
}

func outputPaths(output string, numSheets int) []string {
	if numSheets <= 1 {
		return []string{output}
	}
	ext := filepath.Ext(output)
	stem := strings.TrimSuffix(output, ext)
	paths := make([]string, numSheets)
	for i := range paths {
		paths[i] = fmt.Sprintf("%s_sheet%d%s", stem, i+1, ext)
	}
	return paths
}

func printSummary(panels []panel.Panel, c config.Common, g trapezoid.Geometry,
	mode string, sh *soundhole.Result, numSheets int) {

	fmt.Printf("trapbox v%s — %s mode\n", config.ToolVersion, mode)
	fmt.Printf("  Geometry: long=%.1f short=%.1f length=%.1f depth=%.1f thickness=%.1f\n",
		g.LongOuter, g.ShortOuter, g.LengthOuter, g.DepthOuter, g.Thickness)
	fmt.Printf("  Leg angle: %.3f°  leg length: %.2fmm  air volume: %.0fmm³\n",
		g.LegAngleDeg, g.LegLength, g.AirVolume)
	fmt.Printf("  Panels: %d\n", len(panels))
	for _, p := range panels {
		if len(p.FingerEdges) == 0 {
			continue
		}
		counts := make([]string, len(p.FingerEdges))
		for i, e := range p.FingerEdges {
			counts[i] = fmt.Sprintf("%d", e.Count)
		}
		fmt.Printf("    %-16s fingers: %s\n", p.Name, strings.Join(counts, "/"))
	}
	if sh != nil {
		fmt.Printf("  Soundhole: %s  size=%.1fmm  area=%.0fmm²  target=%.1fHz  achieved=%.1fHz\n",
			sh.Type, sh.SizeMM, sh.OpenAreaMM, sh.TargetHz, sh.AchievedHz)
	}
	fmt.Printf("  Joint fit at nominal: %.2fmm (burn=%.2f tolerance=%.2f)\n",
		joint.NominalFit(c.Burn, c.Tolerance), c.Burn, c.Tolerance)
	fmt.Printf("  Sheets: %d\n", numSheets)
	fmt.Printf("  Output: %s\n", c.Output)
}
