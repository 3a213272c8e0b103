package pipeline

import (
	"github.com/chewxy/math32"

	"github.com/arkankau/optix-sub001/internal/parallel"
)

// Unsharp sharpens src into dst by masking: blur the frame with the PSF,
// then add back the high-frequency residual scaled by strength:
//
//	out = src + (src - blurred) * strength
//
// The rotated elliptical PSF is approximated by its axis-aligned separable
// projection (sigmaX horizontally, sigmaY vertically), which is the point
// of this fallback: two cheap 1D passes instead of a dense 2D convolution.
func Unsharp(dst, src []byte, w, h int, sigmaX, sigmaY float32, strength float32) {
	if w <= 0 || h <= 0 || len(src) < w*h*4 || len(dst) < w*h*4 {
		return
	}

	hk := gaussian32(sigmaX)
	vk := gaussian32(sigmaY)

	temp := getTempBuffer(w, h)
	defer putTempBuffer(temp)
	blurred := getTempBuffer(w, h)
	defer putTempBuffer(blurred)

	horizontalPass(temp, src, w, h, hk)
	verticalPassFloat(blurred, temp, w, h, vk)

	n := w * h * 4
	for i := 0; i < n; i++ {
		orig := float32(src[i])
		dst[i] = clampUint8(orig + (orig-blurred[i])*strength)
	}
}

// verticalPassFloat is verticalPass without the collapse to bytes, for
// consumers that keep compositing in float.
func verticalPassFloat(dst, temp []float32, w, h int, kernel []float32) {
	half := len(kernel) / 2
	parallel.ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var r, g, b, a float32
				for k, weight := range kernel {
					sy := y + k - half
					if sy < 0 {
						sy = 0
					} else if sy >= h {
						sy = h - 1
					}
					idx := (sy*w + x) * 4
					r += temp[idx+0] * weight
					g += temp[idx+1] * weight
					b += temp[idx+2] * weight
					a += temp[idx+3] * weight
				}
				idx := (y*w + x) * 4
				dst[idx+0] = r
				dst[idx+1] = g
				dst[idx+2] = b
				dst[idx+3] = a
			}
		}
	})
}

// gaussian32 builds a unit-sum float32 Gaussian covering three standard
// deviations. Sub-pixel sigmas collapse to an identity tap.
func gaussian32(sigma float32) []float32 {
	if sigma <= 0 {
		return []float32{1}
	}
	half := int(math32.Ceil(sigma * 3))
	size := half*2 + 1
	kernel := make([]float32, size)
	twoSigmaSq := 2 * sigma * sigma

	var sum float32
	for i := range kernel {
		x := float32(i - half)
		v := math32.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	inv := 1 / sum
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}
