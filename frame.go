package optix

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Frame is a caller-owned contiguous RGBA pixel buffer, tightly packed at
// four bytes per pixel. The engine never retains a reference to a frame
// beyond a single call.
type Frame struct {
	Data   []byte
	Width  int
	Height int
}

// NewFrame allocates a zeroed frame of the given dimensions.
// Non-positive dimensions yield an empty frame.
func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{Data: make([]byte, w*h*4), Width: w, Height: h}
}

// Valid reports whether the buffer covers the declared dimensions.
func (f *Frame) Valid() bool {
	return f != nil && f.Width > 0 && f.Height > 0 && len(f.Data) >= f.Width*f.Height*4
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{Data: make([]byte, len(f.Data)), Width: f.Width, Height: f.Height}
	copy(out.Data, f.Data)
	return out
}

// FrameFromImage converts any image into a tightly packed frame. Source
// images that are not already *image.RGBA, or whose stride carries padding,
// are redrawn into a packed buffer.
func FrameFromImage(img image.Image) *Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return NewFrame(0, 0)
	}

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && b.Min == (image.Point{}) {
		f := NewFrame(w, h)
		copy(f.Data, rgba.Pix[:w*h*4])
		return f
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return &Frame{Data: dst.Pix, Width: w, Height: h}
}

// Image wraps the frame as an *image.RGBA sharing the same pixel memory.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{Pix: f.Data, Stride: f.Width * 4, Rect: image.Rect(0, 0, f.Width, f.Height)}
}

// Scaled resamples the frame by the given factor with bilinear filtering.
// This is the raster half of the Nearify strategy: callers that cannot
// rescale their UI natively can enlarge the frame instead. Factors at or
// below zero, or within rounding distance of one, return a plain clone.
func (f *Frame) Scaled(factor float64) *Frame {
	if !f.Valid() || factor <= 0 {
		return f.Clone()
	}
	w := int(math.Round(float64(f.Width) * factor))
	h := int(math.Round(float64(f.Height) * factor))
	if w == f.Width && h == f.Height {
		return f.Clone()
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), f.Image(), f.Image().Bounds(), xdraw.Src, nil)
	return &Frame{Data: dst.Pix, Width: w, Height: h}
}
