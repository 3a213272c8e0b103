package wiener

// Unsharp-mask strength bounds. The strength multiplies the high-frequency
// residual (original minus blurred), so values above ~1.5 push bright edges
// into visible overshoot.
const (
	minUnsharpStrength = 0.3
	maxUnsharpStrength = 1.5
)

// UnsharpStrength derives an unsharp-mask strength from the blur radius.
// Stronger blur needs a stronger mask, saturating where overshoot would
// become objectionable. Used as the cheap fallback when a dense 2D inverse
// cannot be designed.
func UnsharpStrength(sigma float64) float64 {
	s := sigma * 0.5
	if s < minUnsharpStrength {
		return minUnsharpStrength
	}
	if s > maxUnsharpStrength {
		return maxUnsharpStrength
	}
	return s
}
