package optix

import (
	"github.com/arkankau/optix-sub001/internal/cache"
	"github.com/arkankau/optix-sub001/internal/wiener"
)

// filterCacheSize bounds the per-engine inverse-filter cache. Distance
// quantization keeps the key space small; 64 entries cover a session of
// ordinary head movement without eviction churn.
const filterCacheSize = 64

// filterKey identifies a designed filter. Sigmas, theta and lambda are
// quantized to 0.01 so float jitter from the distance smoother does not
// defeat the cache.
type filterKey struct {
	sigmaX int32
	sigmaY int32
	theta  int32
	lambda int32
	size   int32
	mode   uint8 // 0 separable, 1 dense, 2 unsharp
}

// designedFilter carries the cacheable output of one design run.
type designedFilter struct {
	invH    []float32
	invV    []float32
	dense   []float32
	unsharp float64
	ok      bool
}

// filterDesigner turns PSF descriptions into inverse filters, memoizing
// results per engine. Not tied to any global state so independent sessions
// never share filters designed with different regularization.
type filterDesigner struct {
	lambda        float64
	preferUnsharp bool
	cache         *cache.Cache[filterKey, designedFilter]
}

func newFilterDesigner(lambda float64, preferUnsharp bool) *filterDesigner {
	return &filterDesigner{
		lambda:        wiener.ClampLambda(lambda),
		preferUnsharp: preferUnsharp,
		cache:         cache.New[filterKey, designedFilter](filterCacheSize),
	}
}

// design attaches an inverse filter to the kernel. Separable kernels get
// per-axis 1D Wiener filters; if either axis is numerically unstable the
// whole kernel degrades to identity rather than shipping a broken filter.
// Non-separable kernels get a dense 2D Wiener filter, or unsharp masking
// when the dense design fails or the engine prefers the cheap fallback.
func (d *filterDesigner) design(k Kernel) Kernel {
	if k.Identity {
		return k
	}

	key := d.keyFor(k)
	if f, ok := d.cache.Get(key); ok {
		Logger().Debug("optix: filter cache hit",
			"sigmaX", k.SigmaX, "sigmaY", k.SigmaY, "size", k.Size)
		return d.attach(k, f)
	}

	f := d.run(k)
	d.cache.Set(key, f)
	return d.attach(k, f)
}

func (d *filterDesigner) run(k Kernel) designedFilter {
	if k.Separable {
		invH, okH := wiener.Design1D(k.SigmaX, k.Size, d.lambda)
		invV, okV := wiener.Design1D(k.SigmaY, k.Size, d.lambda)
		if !okH || !okV {
			Logger().Warn("optix: unstable separable filter, using identity",
				"sigmaX", k.SigmaX, "sigmaY", k.SigmaY, "lambda", d.lambda)
			return designedFilter{}
		}
		return designedFilter{invH: invH, invV: invV, ok: true}
	}

	if !d.preferUnsharp {
		if dense, ok := wiener.Design2D(k.SigmaX, k.SigmaY, k.ThetaDeg, k.Size, d.lambda); ok {
			return designedFilter{dense: dense, ok: true}
		}
		Logger().Warn("optix: unstable dense filter, falling back to unsharp",
			"sigmaX", k.SigmaX, "sigmaY", k.SigmaY, "theta", k.ThetaDeg)
	}

	sigma := k.SigmaX
	if k.SigmaY > sigma {
		sigma = k.SigmaY
	}
	return designedFilter{unsharp: wiener.UnsharpStrength(sigma), ok: true}
}

// attach merges a design result into the kernel, degrading to identity for
// rejected filters.
func (d *filterDesigner) attach(k Kernel, f designedFilter) Kernel {
	if !f.ok {
		return IdentityKernel()
	}
	k.InvHorizontal = f.invH
	k.InvVertical = f.invV
	k.InvDense = f.dense
	k.UnsharpStrength = f.unsharp
	return k
}

func (d *filterDesigner) keyFor(k Kernel) filterKey {
	mode := uint8(0)
	if !k.Separable {
		mode = 1
		if d.preferUnsharp {
			mode = 2
		}
	}
	return filterKey{
		sigmaX: quantize(k.SigmaX),
		sigmaY: quantize(k.SigmaY),
		theta:  quantize(k.ThetaDeg),
		lambda: quantize(d.lambda),
		size:   int32(k.Size),
		mode:   mode,
	}
}

// quantize maps a float to a 0.01-granularity integer key.
func quantize(v float64) int32 {
	return int32(v*100 + 0.5)
}
