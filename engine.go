package optix

import (
	"math"
	"sync/atomic"
	"time"
)

// Runtime adaptation thresholds. The model is rebuilt when any of these
// trips; between rebuilds the cached model is reused unchanged.
const (
	// defaultSmoothingAlpha is the EMA coefficient for the distance
	// signal: smoothed = alpha*new + (1-alpha)*smoothed.
	defaultSmoothingAlpha = 0.2

	// staleDistanceCM is the smoothed-distance drift that invalidates the
	// cached model.
	staleDistanceCM = 2.0

	// staleAge forces a rebuild even without parameter drift, so slow
	// cumulative changes cannot pin an outdated model.
	staleAge = 300 * time.Millisecond

	// Prescription and display deltas that invalidate the model.
	staleDiopterDelta = 0.01
	staleAxisDelta    = 1.0
	staleDensityDelta = 1.0
)

// Engine is a self-contained vision correction session: configuration,
// distance smoothing, the cached vision model, and the filter designer.
// Independent engines share nothing, so multiple sessions (or unit tests)
// can coexist in one process.
//
// The engine assumes a single caller per frame tick; the model pointer is
// still swapped atomically so a concurrent reader holding Model() output
// never observes a half-built model. Concurrent Tick callers must be
// externally serialized.
type Engine struct {
	cfg      config
	designer *filterDesigner
	strat    strategy

	smoothed  float64
	hasSample bool

	model atomic.Pointer[VisionModel]

	// now is the clock source; replaced in tests to drive staleness.
	now func() time.Time
}

// NewEngine creates an engine with the given options. The zero-option
// engine runs the deconvolution strategy with default optics.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{
		cfg:      cfg,
		designer: newFilterDesigner(cfg.lambda, cfg.preferUnsharp),
		strat:    strategyFor(cfg.strategy),
		now:      time.Now,
	}
}

// Strategy returns the session's correction strategy.
func (e *Engine) Strategy() StrategyKind { return e.strat.kind() }

// Process runs one tick through the session's strategy: deconvolution
// returns a corrected frame, Nearify returns scaling guidance.
func (e *Engine) Process(in Input) Result {
	return e.strat.run(e, in)
}

// UpdateDistance feeds one raw distance sample (cm) into the exponential
// moving average and returns the smoothed value. The first sample is
// adopted as-is, skipping the smoothing ramp-up.
func (e *Engine) UpdateDistance(cm float64) float64 {
	cm = clampFinite(cm, 10, 500, 60)
	if !e.hasSample {
		e.smoothed = cm
		e.hasSample = true
		return cm
	}
	a := e.cfg.smoothingAlpha
	e.smoothed = a*cm + (1-a)*e.smoothed
	return e.smoothed
}

// SmoothedDistance returns the current smoothed distance, or zero before
// the first sample.
func (e *Engine) SmoothedDistance() float64 { return e.smoothed }

// Classify runs the two-sided myopia classification with this session's
// accommodation setting.
func (e *Engine) Classify(sphereD, distanceCM float64) Classification {
	return ClassifyWith(sphereD, distanceCM, e.cfg.accommodation)
}

// BuildModel runs the optical model and filter designer for the given
// parameters and atomically installs the result as the session's cached
// model. When the optics resolve to identity, filter design is skipped
// entirely and the model is a zero-cost passthrough.
func (e *Engine) BuildModel(p OpticalParams) *VisionModel {
	p = p.sanitized()
	kernel, excess := buildKernel(p, e.cfg.accommodation)
	if !kernel.Identity {
		kernel = e.designer.design(kernel)
	}

	m := &VisionModel{
		Kernel:         kernel,
		ExcessDefocusD: excess,
		BuiltAt:        e.now(),
		builtFrom:      p,
	}
	e.model.Store(m)

	Logger().Debug("optix: model rebuilt",
		"excessD", excess,
		"identity", kernel.Identity,
		"separable", kernel.Separable,
		"size", kernel.Size)
	return m
}

// Model returns the cached vision model, or nil before the first build.
func (e *Engine) Model() *VisionModel { return e.model.Load() }

// IsStale reports whether the cached model no longer matches the given
// parameters: no model yet, distance drifted more than 2 cm, the model is
// older than 300 ms, or the prescription/display changed meaningfully.
func (e *Engine) IsStale(p OpticalParams) bool {
	m := e.model.Load()
	if m == nil {
		return true
	}
	p = p.sanitized()
	prev := m.builtFrom

	switch {
	case math.Abs(p.DistanceCM-prev.DistanceCM) > staleDistanceCM:
		return true
	case e.now().Sub(m.BuiltAt) > staleAge:
		return true
	case math.Abs(p.SphereD-prev.SphereD) > staleDiopterDelta:
		return true
	case math.Abs(p.CylinderD-prev.CylinderD) > staleDiopterDelta:
		return true
	case math.Abs(p.AxisDeg-prev.AxisDeg) > staleAxisDelta:
		return true
	case math.Abs(p.DensityPPI-prev.DensityPPI) > staleDensityDelta:
		return true
	}
	return false
}

// Tick is the once-per-frame entry point: it smooths the incoming distance
// sample, rebuilds the model if stale, and returns the model to use for
// this frame. The rebuild is synchronous and cheap enough (cached filter
// design, small transforms) to stay within a fraction of a frame budget.
func (e *Engine) Tick(p OpticalParams) *VisionModel {
	p.DistanceCM = e.UpdateDistance(p.DistanceCM)
	if e.IsStale(p) {
		return e.BuildModel(p)
	}
	return e.model.Load()
}
