package optix

import "math"

// Default optical constants. These are starting points for a typical adult
// viewer; per-session overrides go through engine [Option] values.
const (
	// DefaultAccommodation is the assumed maximum accommodation (Amax) in
	// diopters: the extra focusing power the eye can recruit at near
	// distances. 1.5 D is a conservative adult value.
	DefaultAccommodation = 1.5

	// DefaultPupilMM is the pupil diameter assumed when no ambient light
	// reading is available.
	DefaultPupilMM = 3.0

	// DefaultRegularization is the Wiener regularization term lambda.
	DefaultRegularization = 0.01

	// DefaultContrastBoost is the post-deconvolution contrast factor
	// applied around mid-gray to limit halo artifacts.
	DefaultContrastBoost = 1.1
)

// OpticalParams describes the viewer and display for one frame tick.
// Values arrive from external collaborators (profile store, distance
// tracker) and are treated as immutable per call.
//
// SphereD is the spherical prescription in diopters; negative values denote
// myopia. CylinderD and AxisDeg describe astigmatism and may be zero when
// the prescription carries none. AmbientLight is a relative illuminance in
// [0,1] used to estimate pupil diameter; negative means unknown.
type OpticalParams struct {
	SphereD    float64
	CylinderD  float64
	AxisDeg    float64
	DistanceCM float64
	DensityPPI float64

	// AmbientLight is optional; pass a negative value when no sensor
	// reading is available.
	AmbientLight float64
}

// sanitized returns a copy with non-finite or out-of-range fields clamped
// to the nearest valid bound. Real-time correction must never halt on
// sensor noise, so invalid input degrades instead of failing.
func (p OpticalParams) sanitized() OpticalParams {
	p.SphereD = clampFinite(p.SphereD, -25, 25, 0)
	p.CylinderD = clampFinite(p.CylinderD, -10, 10, 0)
	p.AxisDeg = math.Mod(clampFinite(p.AxisDeg, -360, 360, 0)+360, 180)
	p.DistanceCM = clampFinite(p.DistanceCM, 10, 500, 60)
	p.DensityPPI = clampFinite(p.DensityPPI, 30, 600, 96)
	if !math.IsInf(p.AmbientLight, 0) && !math.IsNaN(p.AmbientLight) && p.AmbientLight >= 0 {
		p.AmbientLight = math.Min(p.AmbientLight, 1)
	} else {
		p.AmbientLight = -1
	}
	return p
}

// clampFinite clamps v to [lo, hi], substituting def for NaN or Inf.
func clampFinite(v, lo, hi, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp clamps v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
