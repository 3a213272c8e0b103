// Package optix is a real-time vision correction engine. It pre-compensates
// on-screen content for a viewer's uncorrected refractive error (myopia and
// astigmatism) so that text and images remain legible without glasses.
//
// The engine models the viewer's eye as an optical blur kernel derived from
// their prescription, viewing distance, pupil size and display density, then
// designs a Wiener deconvolution filter that inverts that blur and applies it
// to raw RGBA frames. A runtime controller smooths the noisy distance signal
// and rebuilds the optical model only when it has gone stale, so the expensive
// filter design stays off the per-frame hot path.
//
// Basic usage:
//
//	eng := optix.NewEngine()
//	model := eng.Tick(params)            // smooth distance, rebuild if stale
//	out := eng.Compensate(frame, model)  // corrected frame
//
// For callers that prefer legibility scaling over pixel filtering, the engine
// offers an alternative strategy that classifies the viewer's position against
// their accommodation range and recommends a UI scale factor instead:
//
//	g := eng.NearifyGuidance(params, 14) // current font size 14 px
//	if g.NeedsScaling { applyUIScale(g.Scale) }
//
// The two strategies are mutually exclusive per session; see [StrategyKind].
//
// GPU acceleration is opt-in via blank import of the gpu subpackage:
//
//	import _ "github.com/arkankau/optix-sub001/gpu"
//
// When a GPU accelerator is registered the engine dispatches full-frame
// deconvolution to a compute pipeline and transparently falls back to the
// CPU path if the accelerator declines the operation.
//
// All steady-state operations are total: invalid inputs are clamped to the
// nearest valid bound and numerically unstable filters degrade to an identity
// passthrough, never to an error. Real-time correction must not halt on
// sensor noise.
package optix
