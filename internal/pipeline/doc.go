// Package pipeline applies inverse filters to raw RGBA frames.
//
// The separable path runs one horizontal and one vertical 1D convolution
// pass with clamp-to-edge boundary handling. Accumulation stays in float32
// across both passes; rounding and clamping to [0,255] happen once at the
// very end, so no error compounds between passes. Dense 2D convolution and
// unsharp masking cover non-separable kernels.
//
// All passes filter the alpha channel identically to color, so edges of
// transparent regions sharpen consistently. The tone pass (contrast boost
// around mid-gray) touches RGB only.
//
// Passes split into disjoint output-row bands and run across cores; see
// the parallel package.
package pipeline
