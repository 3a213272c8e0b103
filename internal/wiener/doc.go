// Package wiener designs inverse (deconvolution) filters for Gaussian
// point-spread functions.
//
// Given a blur kernel h and a regularization term lambda, the designer
// evaluates the classic Wiener formula per frequency bin,
//
//	W(f) = H*(f) / (|H(f)|² + λ)
//
// and transforms W back to the spatial domain. Two guards keep the result
// usable in a real-time pipeline: a stability guard rejects filters whose
// coefficient sum collapses toward zero (the caller substitutes an identity
// kernel), and an amplitude guard rescales the filter so no coefficient
// exceeds a fixed magnitude, which bounds ringing and halo artifacts.
//
// Separable PSFs are designed as independent horizontal and vertical 1D
// filters; non-separable ones get a dense 2D filter over the full kernel
// support, with unsharp masking available as a cheaper fallback.
package wiener
