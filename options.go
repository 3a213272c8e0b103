package optix

// Option configures an Engine during creation.
//
// Example:
//
//	// Default deconvolution session
//	eng := optix.NewEngine()
//
//	// Scaling-mode session with personalized accommodation
//	eng := optix.NewEngine(
//	    optix.WithStrategy(optix.StrategyNearify),
//	    optix.WithAccommodation(1.0),
//	)
type Option func(*config)

// config holds per-engine settings. Every field has a working default so
// NewEngine() with no options is a usable deconvolution session.
type config struct {
	accommodation  float64
	lambda         float64
	contrastBoost  float64
	xHeightFrac    float64
	smoothingAlpha float64
	strategy       StrategyKind
	preferUnsharp  bool
	useAccelerator bool
}

func defaultConfig() config {
	return config{
		accommodation:  DefaultAccommodation,
		lambda:         DefaultRegularization,
		contrastBoost:  DefaultContrastBoost,
		xHeightFrac:    defaultXHeightFraction,
		smoothingAlpha: defaultSmoothingAlpha,
		strategy:       StrategyDeconvolution,
		useAccelerator: true,
	}
}

// WithAccommodation sets the viewer's maximum accommodation (Amax) in
// diopters. The default 1.5 D suits a typical adult; older viewers may
// calibrate lower values. Clamped to [0, 4].
func WithAccommodation(amaxD float64) Option {
	return func(c *config) {
		c.accommodation = clamp(amaxD, 0, 4)
	}
}

// WithRegularization sets the Wiener regularization term lambda, clamped
// to [0.001, 0.1]. Smaller values sharpen more aggressively at the cost of
// noise amplification.
func WithRegularization(lambda float64) Option {
	return func(c *config) {
		c.lambda = lambda // designer clamps
	}
}

// WithContrastBoost sets the post-deconvolution contrast factor applied
// around mid-gray, clamped to [0.8, 1.3]. Values above 1 deepen the
// sharpened output; values below 1 soften halos further.
func WithContrastBoost(factor float64) Option {
	return func(c *config) {
		c.contrastBoost = clamp(factor, 0.8, 1.3)
	}
}

// WithXHeightFraction sets the assumed x-height as a fraction of font size
// for Nearify font computations, clamped to [0.35, 0.70].
func WithXHeightFraction(frac float64) Option {
	return func(c *config) {
		c.xHeightFrac = clamp(frac, minXHeightFraction, maxXHeightFraction)
	}
}

// WithSmoothingAlpha sets the exponential-moving-average coefficient for
// the distance signal, clamped to (0, 1]. Higher values track faster but
// jitter more.
func WithSmoothingAlpha(alpha float64) Option {
	return func(c *config) {
		if alpha <= 0 || alpha > 1 {
			return
		}
		c.smoothingAlpha = alpha
	}
}

// WithStrategy selects the correction strategy for this session. The
// deconvolution and Nearify strategies are mutually exclusive; the choice
// is made once here, not per frame.
func WithStrategy(s StrategyKind) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithUnsharpFallback makes non-separable kernels use unsharp masking
// directly instead of attempting the dense 2D Wiener design first. Cheaper
// per rebuild, slightly softer correction.
func WithUnsharpFallback() Option {
	return func(c *config) {
		c.preferUnsharp = true
	}
}

// WithoutAccelerator pins the engine to the CPU pipeline even when a GPU
// accelerator is registered. Useful for parity testing.
func WithoutAccelerator() Option {
	return func(c *config) {
		c.useAccelerator = false
	}
}
