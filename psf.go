package optix

import "math"

// Prescription thresholds below which correction is imperceptible and the
// engine runs in passthrough mode.
const (
	minSphereD   = 0.25
	minCylinderD = 0.50

	// minExcessDefocus is the defocus below which the model resolves to
	// the identity kernel.
	minExcessDefocus = 0.01
)

// BuildKernel converts optical parameters into a point-spread kernel
// description using the default accommodation capacity.
func BuildKernel(p OpticalParams) (Kernel, float64) {
	return buildKernel(p, DefaultAccommodation)
}

// buildKernel is the optical model: prescription + viewing geometry in,
// elliptical Gaussian PSF out. The second return value is the excess
// defocus in diopters.
//
// Near-zero prescriptions bypass the model entirely, and so does any
// viewing distance inside the clear range, because residual defocus under
// 0.01 D produces sub-pixel blur at ordinary display densities.
func buildKernel(p OpticalParams, amax float64) (Kernel, float64) {
	p = p.sanitized()

	absSphere := math.Abs(p.SphereD)
	absCyl := math.Abs(p.CylinderD)
	if absSphere < minSphereD && absCyl < minCylinderD {
		return IdentityKernel(), 0
	}

	c := ClassifyWith(p.SphereD, p.DistanceCM, amax)
	if c.ExcessDefocusD < minExcessDefocus {
		return IdentityKernel(), 0
	}

	// Blur radius grows with defocus and pupil aperture and shrinks as the
	// viewer backs away (the same angular blur spans fewer pixels).
	pupil := estimatePupilMM(p.AmbientLight)
	sigma := c.ExcessDefocusD * (pupil / DefaultPupilMM) * (60 / clamp(p.DistanceCM, 30, 100))
	sigma = clamp(sigma, 0.5, 6.0)

	sigmaX, sigmaY := sigma, sigma
	theta := 0.0
	if absCyl >= minCylinderD {
		// Cylinder elongates the PSF along the prescription axis.
		astig := clamp(absCyl/4.0, 0, 0.5)
		sigmaX = sigma * (1 + astig)
		sigmaY = sigma * (1 - astig)
		theta = p.AxisDeg
	}

	k := Kernel{
		SigmaX:   sigmaX,
		SigmaY:   sigmaY,
		ThetaDeg: theta,
		Size:     kernelSupport(sigmaX, sigmaY),
	}
	// Axis-aligned ellipses separate into independent horizontal and
	// vertical passes; nearly-circular ones are treated as if they do.
	k.Separable = math.Abs(sigmaX-sigmaY) < 0.5 || math.Mod(theta, 90) < 5

	return k, c.ExcessDefocusD
}

// estimatePupilMM estimates pupil diameter from a relative ambient light
// level in [0,1]. Bright light constricts the pupil toward 2 mm, darkness
// dilates it toward 7 mm. Negative (unknown) readings return the default.
func estimatePupilMM(ambient float64) float64 {
	if ambient < 0 {
		return DefaultPupilMM
	}
	return clamp(7.0-5.0*ambient, 2.0, 7.0)
}
