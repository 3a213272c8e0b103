package optix

import "math"

// Kernel size bounds. Sizes are always odd so the kernel has a center tap.
const (
	// MinKernelSize is the smallest supported point-spread kernel.
	MinKernelSize = 15

	// MaxKernelSize caps the kernel support to keep per-frame convolution
	// within the frame budget.
	MaxKernelSize = 31
)

// Kernel describes the eye's point-spread function as an elliptical Gaussian
// and, once designed, carries the inverse (deconvolution) filter derived
// from it.
//
// SigmaX and SigmaY are the blur radii in pixels along the principal axes;
// ThetaDeg is the astigmatism axis. Size is the odd support width covering
// at least three standard deviations of the larger radius.
//
// A separable kernel is applied as one horizontal and one vertical 1D pass
// using InvHorizontal and InvVertical. A non-separable kernel either carries
// a dense 2D inverse (InvDense, Size*Size row-major) or falls back to
// unsharp masking with UnsharpStrength.
type Kernel struct {
	SigmaX   float64
	SigmaY   float64
	ThetaDeg float64
	Size     int

	Separable bool
	Identity  bool

	// Inverse filter coefficients, populated by the Wiener designer.
	// For the identity kernel all of these are nil.
	InvHorizontal []float32
	InvVertical   []float32
	InvDense      []float32

	// UnsharpStrength is non-zero when the non-separable fallback uses
	// unsharp masking instead of a dense inverse.
	UnsharpStrength float64
}

// IdentityKernel returns a kernel that acts as an identity convolution.
// Applying it is a pixel-exact passthrough.
func IdentityKernel() Kernel {
	return Kernel{Size: 1, Separable: true, Identity: true}
}

// IsIdentity reports whether the kernel performs no correction.
func (k Kernel) IsIdentity() bool { return k.Identity }

// Designed reports whether an inverse filter has been attached.
func (k Kernel) Designed() bool {
	return k.Identity || k.InvHorizontal != nil || k.InvDense != nil || k.UnsharpStrength > 0
}

// kernelSupport derives the odd support width for the given blur radii:
// three standard deviations on each side, clamped to the supported range.
func kernelSupport(sigmaX, sigmaY float64) int {
	s := sigmaX
	if sigmaY > s {
		s = sigmaY
	}
	size := int(math.Ceil(s*3))*2 + 1
	if size < MinKernelSize {
		size = MinKernelSize
	}
	if size > MaxKernelSize {
		size = MaxKernelSize
	}
	if size%2 == 0 {
		size++
	}
	return size
}
