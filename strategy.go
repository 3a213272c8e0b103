package optix

// StrategyKind tags the two mutually exclusive correction strategies.
// A session runs exactly one; there is no per-frame mode switching.
type StrategyKind int

const (
	// StrategyDeconvolution pre-filters pixels with the inverse of the
	// eye's blur kernel.
	StrategyDeconvolution StrategyKind = iota

	// StrategyNearify leaves pixels alone and recommends a UI scale
	// factor / minimum font size instead.
	StrategyNearify
)

// String returns the strategy name.
func (k StrategyKind) String() string {
	switch k {
	case StrategyDeconvolution:
		return "deconvolution"
	case StrategyNearify:
		return "nearify"
	default:
		return "unknown"
	}
}

// Input is one tick's worth of data handed to the engine: the captured
// frame (deconvolution mode), the current optical parameters, and the
// caller's base font size (Nearify mode).
type Input struct {
	Frame         *Frame
	Params        OpticalParams
	CurrentFontPx float64
}

// Result is the strategy-dependent output of a tick. Exactly one of Frame
// or Guidance is set, matching the session's strategy.
type Result struct {
	Frame    *Frame
	Guidance *NearifyGuidance
}

// strategy is the per-session correction behavior. Selected once at engine
// construction; the frame loop dispatches through it without branching on
// mode.
type strategy interface {
	kind() StrategyKind
	run(e *Engine, in Input) Result
}

// deconvolutionStrategy maintains the vision model and filters frames.
type deconvolutionStrategy struct{}

func (deconvolutionStrategy) kind() StrategyKind { return StrategyDeconvolution }

func (deconvolutionStrategy) run(e *Engine, in Input) Result {
	model := e.Tick(in.Params)
	return Result{Frame: e.Compensate(in.Frame, model)}
}

// nearifyStrategy skips filtering entirely and emits scaling guidance.
// The distance still flows through the smoother so guidance does not
// flicker with sensor noise.
type nearifyStrategy struct{}

func (nearifyStrategy) kind() StrategyKind { return StrategyNearify }

func (nearifyStrategy) run(e *Engine, in Input) Result {
	p := in.Params
	p.DistanceCM = e.UpdateDistance(p.DistanceCM)
	g := e.NearifyGuidance(p, in.CurrentFontPx)
	return Result{Guidance: &g}
}

func strategyFor(k StrategyKind) strategy {
	if k == StrategyNearify {
		return nearifyStrategy{}
	}
	return deconvolutionStrategy{}
}
