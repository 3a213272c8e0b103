// Package fft provides discrete Fourier transforms for filter design.
//
// Two implementations sit behind the [Transform] interface: a direct O(n²)
// DFT for arbitrary (typically small, odd) sizes, and a radix-2 FFT for
// power-of-two sizes. New selects between them internally; callers never
// need to know which is in use.
//
// Transforms use the engineering convention: Forward applies no scaling,
// Inverse divides by n, so Inverse(Forward(x)) == x up to rounding.
package fft
