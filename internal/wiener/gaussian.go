package wiener

import "math"

// Gaussian1D builds a centered 1D Gaussian kernel of the given odd size,
// normalized to unit sum. A non-positive sigma yields a discrete impulse.
func Gaussian1D(sigma float64, size int) []float64 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	kernel := make([]float64, size)
	half := size / 2

	if sigma <= 0 {
		kernel[half] = 1
		return kernel
	}

	twoSigmaSq := 2 * sigma * sigma
	sum := 0.0
	for i := range kernel {
		x := float64(i - half)
		v := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Gaussian2D builds a centered elliptical Gaussian of the given odd size,
// rotated by thetaDeg, normalized to unit sum. The result is size*size
// values in row-major order.
func Gaussian2D(sigmaX, sigmaY, thetaDeg float64, size int) []float64 {
	if size < 1 {
		size = 1
	}
	if size%2 == 0 {
		size++
	}
	kernel := make([]float64, size*size)
	half := size / 2

	if sigmaX <= 0 && sigmaY <= 0 {
		kernel[half*size+half] = 1
		return kernel
	}
	if sigmaX <= 0 {
		sigmaX = 1e-3
	}
	if sigmaY <= 0 {
		sigmaY = 1e-3
	}

	theta := thetaDeg * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	twoSxSq := 2 * sigmaX * sigmaX
	twoSySq := 2 * sigmaY * sigmaY

	sum := 0.0
	for y := 0; y < size; y++ {
		fy := float64(y - half)
		for x := 0; x < size; x++ {
			fx := float64(x - half)
			// Rotate into the principal-axis frame.
			u := fx*cos + fy*sin
			v := -fx*sin + fy*cos
			g := math.Exp(-(u*u/twoSxSq + v*v/twoSySq))
			kernel[y*size+x] = g
			sum += g
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
