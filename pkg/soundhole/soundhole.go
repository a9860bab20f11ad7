// Package soundhole computes Helmholtz-tuned soundhole geometry for
// instrument mode: a round hole, a pair of f-holes, or a rounded-trapezoid
// hole echoing the body shape.
//
// The resonance model treats the box as a Helmholtz resonator:
//
//	f = (c / 2π) · √(A / (V · L_eff))
//
// with L_eff = top_thickness + 0.85·D. Solving for the hole size at a target
// frequency is done by fixed-point iteration on the diameter, since L_eff
// depends on the answer.
package soundhole

import (
	"math"

	"github.com/chazu/trapbox/pkg/config"
	"github.com/chazu/trapbox/pkg/geom"
	"github.com/chazu/trapbox/pkg/panel"
	"github.com/chazu/trapbox/pkg/trapezoid"
)

// Result reports the computed soundhole for the build summary.
type Result struct {
	Type       config.SoundHoleType
	SizeMM     float64 // diameter (round) or characteristic length
	OpenAreaMM float64
	TargetHz   float64
	AchievedHz float64
	Iterations int
}

// FreqRound returns the resonant frequency for a round hole of the given
// diameter over an air volume in mm³.
func FreqRound(volume, diameter, topThickness float64) float64 {
	lEff := topThickness + config.HelmholtzLEffFactor*diameter
	area := math.Pi * diameter * diameter / 4
	return config.SpeedOfSound / (2 * math.Pi) * math.Sqrt(area/(volume*lEff))
}

// FreqArbitrary returns the resonant frequency for an arbitrary hole shape,
// using the equivalent diameter of its area for the end correction.
func FreqArbitrary(volume, area, dEquiv, topThickness float64) float64 {
	lEff := topThickness + config.HelmholtzLEffFactor*dEquiv
	return config.SpeedOfSound / (2 * math.Pi) * math.Sqrt(area/(volume*lEff))
}

// SolveDiameter iterates to the round-hole diameter that hits targetHz.
// Converges when successive diameters agree within geom.Epsilon.
func SolveDiameter(targetHz, volume, topThickness float64) (diameter float64, iterations int) {
	c := config.SpeedOfSound
	d := 50.0
	for i := 0; i < config.HelmholtzMaxIterations; i++ {
		lEff := topThickness + config.HelmholtzLEffFactor*d
		k := targetHz * 2 * math.Pi / c
		area := k * k * volume * lEff
		dNew := 2 * math.Sqrt(area/math.Pi)
		if math.Abs(dNew-d) < geom.Epsilon {
			return dNew, i + 1
		}
		d = dNew
	}
	return d, config.HelmholtzMaxIterations
}

// SolveArea iterates to the open area (and equivalent diameter) that hits
// targetHz for a non-round hole.
func SolveArea(targetHz, volume, topThickness float64) (area, dEquiv float64, iterations int) {
	c := config.SpeedOfSound
	dEq := 50.0
	for i := 0; i < config.HelmholtzMaxIterations; i++ {
		lEff := topThickness + config.HelmholtzLEffFactor*dEq
		k := targetHz * 2 * math.Pi / c
		a := k * k * volume * lEff
		dNew := 2 * math.Sqrt(math.Max(0, a)/math.Pi)
		if math.Abs(dNew-dEq) < geom.Epsilon {
			return a, dNew, i + 1
		}
		dEq = dNew
	}
	k := targetHz * 2 * math.Pi / c
	area = k * k * volume * (topThickness + config.HelmholtzLEffFactor*dEq)
	return area, dEq, config.HelmholtzMaxIterations
}

// Compute builds the soundhole cut-outs and the tuning result. Returns
// (nil, nil, nil) when the config requests no soundhole.
func Compute(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Hole, *Result, error) {
	if cfg.SoundHole == nil {
		return nil, nil, nil
	}
	switch *cfg.SoundHole {
	case config.HoleRound:
		return computeRound(cfg, g)
	case config.HoleF:
		return computeFHole(cfg, g)
	case config.HoleRoundedTrapezoid:
		return computeRTrap(cfg, g)
	}
	return nil, nil, nil
}

// holeNearY returns the y coordinate where the hole zone begins: past the
// neck block (when hardware is cut) plus the fretboard clearance.
func holeNearY(cfg config.Instrument) float64 {
	y := cfg.NeckClearance
	if cfg.Hardware {
		y += cfg.NeckBlockThickness
	}
	return y
}

func computeRound(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Hole, *Result, error) {
	volume := g.AirVolume
	top := cfg.TopThickness
	target := cfg.HelmholtzFreq

	var d float64
	var iters int
	if cfg.SoundHoleDiameter != nil {
		d = *cfg.SoundHoleDiameter
	} else {
		d, iters = SolveDiameter(target, volume, top)
	}
	achieved := FreqRound(volume, d, top)

	cx := g.LongOuter / 2
	cy := holeNearY(cfg) + d/2
	if cfg.SoundHoleX != nil {
		cy = *cfg.SoundHoleX
	}
	if cfg.SoundHoleY != nil {
		cx = g.LongOuter/2 + *cfg.SoundHoleY
	}

	hole := panel.CircleHole{Centre: geom.Pt(cx, cy), Diameter: d}
	res := &Result{
		Type:       config.HoleRound,
		SizeMM:     d,
		OpenAreaMM: math.Pi * d * d / 4,
		TargetHz:   target,
		AchievedHz: achieved,
		Iterations: iters,
	}
	return []panel.Hole{hole}, res, nil
}

func computeFHole(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Hole, *Result, error) {
	volume := g.AirVolume
	top := cfg.TopThickness
	target := cfg.HelmholtzFreq

	var length float64
	if cfg.SoundHoleSize != nil {
		length = *cfg.SoundHoleSize
	} else {
		areaTarget, _, _ := SolveArea(target, volume, top)
		// The pair must open areaTarget total; scale the f length from the
		// equivalent round diameter.
		length = math.Sqrt(areaTarget*4/math.Pi) * 2.5
	}

	cx := g.LongOuter / 2
	cy := holeNearY(cfg) + length/2
	xLeft := cx - config.FHolePairOffsetRatio*g.ShortOuter
	xRight := cx + config.FHolePairOffsetRatio*g.ShortOuter

	var holes []panel.Hole
	for _, x := range []float64{xLeft, xRight} {
		h, err := fHoleShape(x, cy, length)
		if err != nil {
			return nil, nil, err
		}
		holes = append(holes, h)
	}

	areaTotal := 2 * fHoleArea(length)
	dEq := 2 * math.Sqrt(areaTotal/math.Pi)
	achieved := FreqArbitrary(volume, areaTotal, dEq, top)

	res := &Result{
		Type:       config.HoleF,
		SizeMM:     length,
		OpenAreaMM: areaTotal,
		TargetHz:   target,
		AchievedHz: achieved,
	}
	return holes, res, nil
}

// fHoleArea approximates a single f-hole's open area as two eye circles plus
// the shaft rectangle between them.
func fHoleArea(length float64) float64 {
	upperD := config.FHoleUpperEyeDRatio * length
	lowerD := config.FHoleLowerEyeDRatio * length
	waistW := config.FHoleWaistRatio * upperD
	shaftLen := length * (config.FHoleLowerEyeYRatio - config.FHoleUpperEyeYRatio)
	eyes := math.Pi*upperD*upperD/4 + math.Pi*lowerD*lowerD/4
	return eyes + waistW*shaftLen
}

// fHoleShape builds one f-hole as a single closed outline. Clockwise
// traversal: top of upper eye, down the right shaft wall, a large clockwise
// arc around the lower eye, back up the left shaft wall.
func fHoleShape(x, yCentre, length float64) (panel.PathHole, error) {
	yTop := yCentre - length/2
	upperY := yTop + config.FHoleUpperEyeYRatio*length
	upperR := config.FHoleUpperEyeDRatio * length / 2
	lowerY := yTop + config.FHoleLowerEyeYRatio*length
	lowerR := config.FHoleLowerEyeDRatio * length / 2

	shaftHalf := math.Min(config.FHoleWaistRatio*upperR, math.Min(upperR*0.95, lowerR*0.95))

	// Vertical clearance from each eye centre to the shaft junction.
	upperGap := math.Sqrt(math.Max(0, upperR*upperR-shaftHalf*shaftHalf))
	lowerGap := math.Sqrt(math.Max(0, lowerR*lowerR-shaftHalf*shaftHalf))

	top := geom.Pt(x, upperY-upperR)
	upperRight := geom.Pt(x+shaftHalf, upperY+upperGap)
	upperLeft := geom.Pt(x-shaftHalf, upperY+upperGap)
	lowerRight := geom.Pt(x+shaftHalf, lowerY-lowerGap)
	lowerLeft := geom.Pt(x-shaftHalf, lowerY-lowerGap)

	// Both shaft junctions sit in the upper half of the lower eye, so the
	// sweep around its bottom is the large arc.
	path, err := geom.NewClosedPath([]geom.Segment{
		geom.Arc{From: top, To: upperRight, Radius: upperR, Clockwise: true},
		geom.Line{From: upperRight, To: lowerRight},
		geom.Arc{From: lowerRight, To: lowerLeft, Radius: lowerR, LargeArc: true, Clockwise: true},
		geom.Line{From: lowerLeft, To: upperLeft},
		geom.Arc{From: upperLeft, To: top, Radius: upperR, Clockwise: true},
	})
	if err != nil {
		return panel.PathHole{}, err
	}
	return panel.PathHole{Path: path}, nil
}

func computeRTrap(cfg config.Instrument, g trapezoid.Geometry) ([]panel.Hole, *Result, error) {
	lo := g.LongOuter
	volume := g.AirVolume
	top := cfg.TopThickness
	target := cfg.HelmholtzFreq

	longRatio := config.RTrapLongToBodyRatio
	if cfg.SoundHoleLongRatio != nil {
		longRatio = *cfg.SoundHoleLongRatio
	}
	aspect := config.RTrapAspectRatio
	if cfg.SoundHoleAspect != nil {
		aspect = *cfg.SoundHoleAspect
	}
	r := config.RTrapCornerRadius
	if cfg.SoundHoleRadius != nil {
		r = *cfg.SoundHoleRadius
	}

	hLong := lo * longRatio
	if cfg.SoundHoleSize != nil {
		hLong = *cfg.SoundHoleSize
	}
	hShort := hLong * (g.ShortOuter / lo) // inherit the body taper
	hHeight := hLong * aspect

	// Trapezoid area less the four corner roundings.
	area := (hLong+hShort)/2*hHeight - 4*r*r*(1-math.Pi/4)
	dEq := 2 * math.Sqrt(math.Max(0, area)/math.Pi)
	achieved := FreqArbitrary(volume, area, dEq, top)

	cx := lo / 2
	yNear := holeNearY(cfg)
	if cfg.SoundHoleX != nil {
		yNear = *cfg.SoundHoleX
	}
	if cfg.SoundHoleY != nil {
		cx = lo/2 + *cfg.SoundHoleY
	}

	flipped := cfg.SoundHoleOrientation == config.OrientFlipped
	path, err := rTrapPath(hLong, hShort, hHeight, r, cx, yNear, flipped)
	if err != nil {
		return nil, nil, err
	}

	res := &Result{
		Type:       config.HoleRoundedTrapezoid,
		SizeMM:     hLong,
		OpenAreaMM: area,
		TargetHz:   target,
		AchievedHz: achieved,
	}
	return []panel.Hole{panel.PathHole{Path: path}}, res, nil
}

// rTrapPath builds the rounded-trapezoid hole outline. In the "same"
// orientation the narrow end faces the neck (top); flipped puts the wide end
// there. Corner arcs are clockwise so each rounds toward its vertex rather
// than biscuiting into the hole.
func rTrapPath(hLong, hShort, hHeight, r, cx, yNear float64, flipped bool) (geom.ClosedPath, error) {
	yFar := yNear + hHeight
	inset := (hLong - hShort) / 2
	legAngle := math.Atan2(inset, hHeight) * 180 / math.Pi
	obtuse := 90 + legAngle
	acute := 90 - legAngle

	var tl, tr, br, bl geom.Point
	var angles [4]float64 // TL, TR, BR, BL
	if !flipped {
		tl = geom.Pt(cx-hShort/2, yNear)
		tr = geom.Pt(cx+hShort/2, yNear)
		br = geom.Pt(cx+hLong/2, yFar)
		bl = geom.Pt(cx-hLong/2, yFar)
		angles = [4]float64{obtuse, obtuse, acute, acute}
	} else {
		tl = geom.Pt(cx-hLong/2, yNear)
		tr = geom.Pt(cx+hLong/2, yNear)
		br = geom.Pt(cx+hShort/2, yFar)
		bl = geom.Pt(cx-hShort/2, yFar)
		angles = [4]float64{acute, acute, obtuse, obtuse}
	}

	dBLTL, err := geom.UnitBetween(bl, tl)
	if err != nil {
		return geom.ClosedPath{}, err
	}
	dTLTR, err := geom.UnitBetween(tl, tr)
	if err != nil {
		return geom.ClosedPath{}, err
	}
	dTRBR, err := geom.UnitBetween(tr, br)
	if err != nil {
		return geom.ClosedPath{}, err
	}
	dBRBL, err := geom.UnitBetween(br, bl)
	if err != nil {
		return geom.ClosedPath{}, err
	}

	arcAt := func(v, arr, dep geom.Point, angleDeg float64) geom.Arc {
		td := r / math.Tan(angleDeg*math.Pi/360)
		from := v.Sub(arr.MulScalar(td))
		to := v.Add(dep.MulScalar(td))
		return geom.Arc{From: from, To: to, Radius: r, Clockwise: true}
	}

	arcs := []geom.Arc{
		arcAt(tl, dBLTL, dTLTR, angles[0]),
		arcAt(tr, dTLTR, dTRBR, angles[1]),
		arcAt(br, dTRBR, dBRBL, angles[2]),
		arcAt(bl, dBRBL, dBLTL, angles[3]),
	}

	var segs []geom.Segment
	for i, a := range arcs {
		segs = append(segs, a)
		next := arcs[(i+1)%4]
		if !geom.Coincide(a.To, next.From) {
			segs = append(segs, geom.Line{From: a.To, To: next.From})
		}
	}
	return geom.NewClosedPath(segs)
}
