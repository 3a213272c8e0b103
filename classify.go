package optix

// Region describes where the viewer sits relative to their clear-vision
// range: between the far point set by their refractive error and the near
// point gained through accommodation.
type Region int

const (
	// RegionInside means the viewing distance falls within the clear range;
	// no correction is needed.
	RegionInside Region = iota

	// RegionTooFar means the screen is beyond the viewer's far point
	// (classic myopic blur).
	RegionTooFar

	// RegionTooNear means the screen is closer than accommodation can
	// handle.
	RegionTooNear
)

// String returns the region name.
func (r Region) String() string {
	switch r {
	case RegionInside:
		return "inside"
	case RegionTooFar:
		return "too_far"
	case RegionTooNear:
		return "too_near"
	default:
		return "unknown"
	}
}

// Classification is the result of the two-sided myopia classification.
// ExcessDefocusD is always >= 0 and is zero exactly when Region is
// RegionInside.
type Classification struct {
	Region         Region
	ExcessDefocusD float64
}

// Classify performs the two-sided myopia classification with the default
// accommodation capacity. See [ClassifyWith].
func Classify(sphereD, distanceCM float64) Classification {
	return ClassifyWith(sphereD, distanceCM, DefaultAccommodation)
}

// ClassifyWith compares the focusing power required at the viewing distance
// against the viewer's clear range [R, R+amax], where R is the magnitude of
// the spherical error.
//
// A myope with error -R sees clearly at exactly R diopters of vergence
// (their far point); accommodation extends that range toward the viewer by
// amax diopters. Distances demanding less vergence than R are too far,
// distances demanding more than R+amax are too near, and everything in
// between is in focus.
//
// The earlier one-sided formulation compared only against the far point and
// reported false negatives for screens inside the near limit; both sides
// are checked here.
func ClassifyWith(sphereD, distanceCM, amax float64) Classification {
	r := sphereD
	if r < 0 {
		r = -r
	}
	if distanceCM < 20 {
		distanceCM = 20
	}
	need := 100.0 / distanceCM // diopters of vergence at this distance
	lower := r
	upper := r + amax

	switch {
	case need < lower:
		return Classification{Region: RegionTooFar, ExcessDefocusD: lower - need}
	case need > upper:
		return Classification{Region: RegionTooNear, ExcessDefocusD: need - upper}
	default:
		return Classification{Region: RegionInside, ExcessDefocusD: 0}
	}
}
