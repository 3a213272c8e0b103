package optix

import (
	"fmt"
	"math"
)

// Nearify constants. The target angular size ramps from comfortable to
// generous as defocus grows; the x-height fraction converts font size to
// the lowercase letter height that actually drives legibility.
const (
	defaultXHeightFraction = 0.5
	minXHeightFraction     = 0.35
	maxXHeightFraction     = 0.70

	// minTargetArcmin..maxTargetArcmin bound the target angular size of
	// lowercase letters. 10 arcminutes is roughly 20/40 acuity text.
	minTargetArcmin = 10.0
	maxTargetArcmin = 22.0

	// moveHintScale is the scale factor above which enlarging text stops
	// being a good trade and the guidance suggests moving closer instead.
	moveHintScale = 1.3

	// maxNearifyScale caps recommended UI scaling; beyond 2x the layout
	// reflow cost outweighs the legibility gain.
	maxNearifyScale = 2.0

	// minFocalPowerD is the total focal power below which the far point is
	// effectively at infinity and reported as unbounded.
	minFocalPowerD = 0.01
)

// NearifyGuidance is the output of the distance-aware scaling strategy: a
// recommended UI scale factor and minimum legible font size instead of a
// filtered frame. Guidance carries no persistent identity; it is recomputed
// every call.
type NearifyGuidance struct {
	// Scale is the recommended UI scale factor in [1.0, 2.0].
	Scale float64

	// ExcessDefocusD is the uncompensated defocus in diopters.
	ExcessDefocusD float64

	// MinFontPx is the smallest font size legible at the current distance.
	MinFontPx int

	// TargetArcmin is the angular size the guidance aims for, in
	// arcminutes of lowercase letter height.
	TargetArcmin float64

	// FarPointCM is the farthest distance at which the viewer sees
	// clearly, in centimeters. Zero means unbounded: the viewer has no
	// focal power to run out of.
	FarPointCM int

	// NeedsScaling is false when the viewer is inside their clear range.
	NeedsScaling bool

	// MoveHint suggests repositioning when scaling alone is a poor fix.
	// Empty when no hint applies.
	MoveHint string
}

// NearifyGuidance computes scaling guidance for the given parameters and
// the caller's current font size in pixels. Inside the clear range the
// guidance is a pixel-perfect passthrough: scale 1.0, no hint.
func (e *Engine) NearifyGuidance(p OpticalParams, currentFontPx float64) NearifyGuidance {
	return nearifyGuidance(p, currentFontPx, e.cfg.accommodation, e.cfg.xHeightFrac)
}

func nearifyGuidance(p OpticalParams, currentFontPx, amax, xHeightFrac float64) NearifyGuidance {
	p = p.sanitized()
	if currentFontPx <= 0 {
		currentFontPx = 14
	}
	xHeightFrac = clamp(xHeightFrac, minXHeightFraction, maxXHeightFraction)

	// With no refractive error and no accommodation there is no finite far
	// point; leave it zero and never suggest moving toward it.
	r := math.Abs(p.SphereD)
	farPointCM := 0
	if power := r + amax; power >= minFocalPowerD {
		farPointCM = int(math.Round(100 / power))
	}

	c := ClassifyWith(p.SphereD, p.DistanceCM, amax)
	g := NearifyGuidance{
		Scale:          1.0,
		ExcessDefocusD: c.ExcessDefocusD,
		FarPointCM:     farPointCM,
	}
	if c.Region == RegionInside {
		return g
	}

	// Angular size target grows with defocus: 12 arcmin at 0.5 D up to
	// 20 arcmin at 1.5 D, clamped either side.
	g.TargetArcmin = clamp(12+8*(c.ExcessDefocusD-0.5), minTargetArcmin, maxTargetArcmin)

	pixelsPerDegree := p.DensityPPI * (math.Pi / 180) * (p.DistanceCM / 2.54)
	g.MinFontPx = int(math.Ceil((g.TargetArcmin / 60) * pixelsPerDegree / xHeightFrac))
	g.Scale = clamp(float64(g.MinFontPx)/currentFontPx, 1.0, maxNearifyScale)
	g.NeedsScaling = g.Scale > 1.0

	if g.Scale > moveHintScale && farPointCM > 0 {
		g.MoveHint = fmt.Sprintf("move to within %d cm of the screen for native clarity", farPointCM)
	}
	return g
}
