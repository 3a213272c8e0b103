package wiener

import (
	"math"

	"github.com/arkankau/optix-sub001/internal/fft"
)

const (
	// MinLambda and MaxLambda bound the regularization term. Smaller
	// values over-amplify noise, larger ones under-correct.
	MinLambda = 0.001
	MaxLambda = 0.1

	// stabilityEpsilon is the smallest acceptable magnitude for the sum of
	// inverse-filter coefficients. Below it the filter has no usable DC
	// response and the caller must substitute an identity kernel.
	stabilityEpsilon = 1e-6

	// MaxCoefficient caps the magnitude of any single inverse-filter tap.
	// Larger taps over-amplify high frequencies into visible ringing.
	MaxCoefficient = 5.0
)

// ClampLambda clamps lambda to the supported regularization range.
func ClampLambda(lambda float64) float64 {
	if lambda < MinLambda {
		return MinLambda
	}
	if lambda > MaxLambda {
		return MaxLambda
	}
	return lambda
}

// Design1D produces a 1D inverse filter for a Gaussian blur of the given
// sigma over an odd support of size taps. The boolean result is false when
// the stability guard rejects the filter; the caller must then fall back to
// an identity kernel.
func Design1D(sigma float64, size int, lambda float64) ([]float32, bool) {
	h := Gaussian1D(sigma, size)
	size = len(h)
	lambda = ClampLambda(lambda)

	// Pad to a power of two at least twice the support: the inverse kernel
	// is wider than the PSF, and padding keeps circular wrap-around from
	// folding its tails back into the extracted taps. Doubling also routes
	// every design through the fast transform.
	n := fft.NextPow2(2 * size)
	buf := make([]complex128, n)
	placeCentered1D(buf, h)

	tr := fft.New(n)
	tr.Forward(buf)
	for i, hf := range buf {
		buf[i] = wienerBin(hf, lambda)
	}
	tr.Inverse(buf)

	inv := extractCentered1D(buf, size)
	return finishFilter(inv)
}

// Design2D produces a dense 2D inverse filter (size*size, row-major) for an
// elliptical Gaussian PSF. Same formula and guards as Design1D, evaluated
// over a 2D transform of the full kernel support.
func Design2D(sigmaX, sigmaY, thetaDeg float64, size int, lambda float64) ([]float32, bool) {
	h := Gaussian2D(sigmaX, sigmaY, thetaDeg, size)
	size = intSqrt(len(h))
	lambda = ClampLambda(lambda)

	n := fft.NextPow2(2 * size)
	buf := make([]complex128, n*n)
	placeCentered2D(buf, h, size, n)

	fft.Forward2D(buf, n, n)
	for i, hf := range buf {
		buf[i] = wienerBin(hf, lambda)
	}
	fft.Inverse2D(buf, n, n)

	inv := extractCentered2D(buf, size, n)
	return finishFilter(inv)
}

// wienerBin evaluates W = H*/(|H|²+λ) for one frequency bin.
func wienerBin(h complex128, lambda float64) complex128 {
	re, im := real(h), imag(h)
	denom := re*re + im*im + lambda
	return complex(re/denom, -im/denom)
}

// finishFilter applies the stability and amplitude guards and converts the
// coefficients to float32 for the pixel pipeline.
//
// The coefficient sum is the filter's DC gain. It is renormalized to one so
// the corrected frame keeps the original brightness; the Wiener formula
// alone leaves a gain of 1/(1+λ). The amplitude guard runs after
// renormalization so its bound is what the pipeline actually applies.
func finishFilter(inv []float64) ([]float32, bool) {
	sum := 0.0
	for _, v := range inv {
		sum += v
	}
	if math.Abs(sum) < stabilityEpsilon {
		return nil, false
	}

	maxAbs := 0.0
	for i := range inv {
		inv[i] /= sum
		if a := math.Abs(inv[i]); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs > MaxCoefficient {
		scale := MaxCoefficient / maxAbs
		for i := range inv {
			inv[i] *= scale
		}
	}

	out := make([]float32, len(inv))
	for i, v := range inv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
		out[i] = float32(v)
	}
	return out, true
}

// placeCentered1D writes a centered kernel into a circular buffer with its
// center tap at index 0, so the transform sees zero phase.
func placeCentered1D(buf []complex128, h []float64) {
	n := len(buf)
	half := len(h) / 2
	for i, v := range h {
		idx := ((i - half) + n) % n
		buf[idx] = complex(v, 0)
	}
}

// extractCentered1D reads size taps back out of the circular buffer,
// restoring the centered layout.
func extractCentered1D(buf []complex128, size int) []float64 {
	n := len(buf)
	half := size / 2
	out := make([]float64, size)
	for i := range out {
		idx := ((i - half) + n) % n
		out[i] = real(buf[idx])
	}
	return out
}

func placeCentered2D(buf []complex128, h []float64, size, n int) {
	half := size / 2
	for y := 0; y < size; y++ {
		dy := ((y - half) + n) % n
		for x := 0; x < size; x++ {
			dx := ((x - half) + n) % n
			buf[dy*n+dx] = complex(h[y*size+x], 0)
		}
	}
}

func extractCentered2D(buf []complex128, size, n int) []float64 {
	half := size / 2
	out := make([]float64, size*size)
	for y := 0; y < size; y++ {
		sy := ((y - half) + n) % n
		for x := 0; x < size; x++ {
			sx := ((x - half) + n) % n
			out[y*size+x] = real(buf[sy*n+sx])
		}
	}
	return out
}

func intSqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r < n {
		r++
	}
	return r
}
