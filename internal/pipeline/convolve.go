package pipeline

import "github.com/arkankau/optix-sub001/internal/parallel"

// Separable applies a separable inverse filter: a horizontal pass with hk
// followed by a vertical pass with vk. src and dst are RGBA buffers of
// w*h*4 bytes; src is never written, dst is fully overwritten. The two may
// not alias.
func Separable(dst, src []byte, w, h int, hk, vk []float32) {
	if w <= 0 || h <= 0 || len(src) < w*h*4 || len(dst) < w*h*4 {
		return
	}

	temp := getTempBuffer(w, h)
	defer putTempBuffer(temp)

	horizontalPass(temp, src, w, h, hk)
	verticalPass(dst, temp, w, h, vk)
}

// horizontalPass convolves each row of src with kernel, writing float32
// RGBA into temp. Out-of-range taps clamp to the row edge. Rows are
// independent, so the pass runs banded across cores.
func horizontalPass(temp []float32, src []byte, w, h int, kernel []float32) {
	half := len(kernel) / 2
	parallel.ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * w
			for x := 0; x < w; x++ {
				var r, g, b, a float32
				for k, weight := range kernel {
					sx := x + k - half
					if sx < 0 {
						sx = 0
					} else if sx >= w {
						sx = w - 1
					}
					idx := (row + sx) * 4
					r += float32(src[idx+0]) * weight
					g += float32(src[idx+1]) * weight
					b += float32(src[idx+2]) * weight
					a += float32(src[idx+3]) * weight
				}
				idx := (row + x) * 4
				temp[idx+0] = r
				temp[idx+1] = g
				temp[idx+2] = b
				temp[idx+3] = a
			}
		}
	})
}

// verticalPass convolves each column of temp with kernel and writes the
// rounded, clamped result into dst. This is the only point where float
// accumulation collapses back to bytes. Bands read temp rows outside their
// own range but only write their own output rows.
func verticalPass(dst []byte, temp []float32, w, h int, kernel []float32) {
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
				dst[idx+0] = clampUint8(r)
				dst[idx+1] = clampUint8(g)
				dst[idx+2] = clampUint8(b)
				dst[idx+3] = clampUint8(a)
			}
		}
	})
}

// Dense applies a dense 2D inverse filter of the given odd support size
// (kernel holds size*size row-major coefficients). Boundary taps clamp to
// the frame edge.
func Dense(dst, src []byte, w, h int, kernel []float32, size int) {
	if w <= 0 || h <= 0 || size < 1 || len(kernel) < size*size ||
		len(src) < w*h*4 || len(dst) < w*h*4 {
		return
	}

	half := size / 2
	parallel.ForRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var r, g, b, a float32
				for ky := 0; ky < size; ky++ {
					sy := y + ky - half
					if sy < 0 {
						sy = 0
					} else if sy >= h {
						sy = h - 1
					}
					krow := ky * size
					srow := sy * w
					for kx := 0; kx < size; kx++ {
						sx := x + kx - half
						if sx < 0 {
							sx = 0
						} else if sx >= w {
							sx = w - 1
						}
						weight := kernel[krow+kx]
						idx := (srow + sx) * 4
						r += float32(src[idx+0]) * weight
						g += float32(src[idx+1]) * weight
						b += float32(src[idx+2]) * weight
						a += float32(src[idx+3]) * weight
					}
				}
				idx := (y*w + x) * 4
				dst[idx+0] = clampUint8(r)
				dst[idx+1] = clampUint8(g)
				dst[idx+2] = clampUint8(b)
				dst[idx+3] = clampUint8(a)
			}
		}
	})
}

// clampUint8 clamps a float32 to [0, 255] and rounds to the nearest uint8.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
