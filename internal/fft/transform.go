package fft

// Transform computes forward and inverse DFTs of one fixed size.
// Implementations operate in place on a caller-owned buffer of exactly
// Size() elements. A Transform is safe for concurrent use.
type Transform interface {
	// Size returns the transform length.
	Size() int

	// Forward replaces buf with its unscaled discrete Fourier transform.
	// buf must hold exactly Size() elements.
	Forward(buf []complex128)

	// Inverse replaces buf with its inverse transform, scaled by 1/Size().
	Inverse(buf []complex128)
}

// New returns a transform of length n. Power-of-two lengths of 8 or more
// use the radix-2 fast path; everything else uses the direct transform.
// n must be >= 1.
func New(n int) Transform {
	if n >= minFastSize && isPow2(n) {
		return newFast(n)
	}
	return newDirect(n)
}

// NextPow2 returns the smallest power of two >= n.
func NextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func isPow2(n int) bool { return n > 0 && n&(n-1) == 0 }
