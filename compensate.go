package optix

import "github.com/arkankau/optix-sub001/internal/pipeline"

// Compensate applies the model's inverse filter and the session's contrast
// boost to a frame, returning the corrected frame. The input frame is
// never modified.
//
// With a passthrough model (identity kernel) the input frame is returned
// unchanged, pixel-exact; applying it any number of times yields the same
// bytes. A nil model uses the session's cached model.
func (e *Engine) Compensate(frame *Frame, model *VisionModel) *Frame {
	return e.CompensateWith(frame, model, e.cfg.contrastBoost)
}

// CompensateWith is Compensate with a per-call contrast boost override,
// clamped to [0.8, 1.3].
func (e *Engine) CompensateWith(frame *Frame, model *VisionModel, contrastBoost float64) *Frame {
	if model == nil {
		model = e.model.Load()
	}
	if !frame.Valid() || model.IsPassthrough() {
		return frame
	}
	contrastBoost = clamp(contrastBoost, 0.8, 1.3)

	if e.cfg.useAccelerator {
		if out, ok := e.tryAccelerator(frame, model, contrastBoost); ok {
			return out
		}
	}
	return compensateCPU(frame, model, contrastBoost)
}

// tryAccelerator dispatches to the registered GPU accelerator. Any error
// falls back to the CPU path; GPU loss mid-session must not interrupt
// correction.
func (e *Engine) tryAccelerator(frame *Frame, model *VisionModel, contrastBoost float64) (*Frame, bool) {
	a := registeredAccelerator()
	if a == nil || !a.CanCompensate(model.Kernel) {
		return nil, false
	}

	out := NewFrame(frame.Width, frame.Height)
	err := a.Compensate(
		FrameTarget{Data: out.Data, Width: out.Width, Height: out.Height, Stride: out.Width * 4},
		FrameTarget{Data: frame.Data, Width: frame.Width, Height: frame.Height, Stride: frame.Width * 4},
		model,
		float32(contrastBoost),
	)
	if err != nil {
		Logger().Warn("optix: accelerator declined frame, using CPU path",
			"accelerator", a.Name(), "err", err)
		return nil, false
	}
	return out, true
}

// compensateCPU runs the CPU pipeline: convolution with the inverse filter
// followed by the halo-limiting contrast pass.
func compensateCPU(frame *Frame, model *VisionModel, contrastBoost float64) *Frame {
	k := model.Kernel
	out := NewFrame(frame.Width, frame.Height)

	switch {
	case k.InvHorizontal != nil && k.InvVertical != nil:
		pipeline.Separable(out.Data, frame.Data, frame.Width, frame.Height,
			k.InvHorizontal, k.InvVertical)
	case k.InvDense != nil:
		pipeline.Dense(out.Data, frame.Data, frame.Width, frame.Height,
			k.InvDense, k.Size)
	case k.UnsharpStrength > 0:
		pipeline.Unsharp(out.Data, frame.Data, frame.Width, frame.Height,
			float32(k.SigmaX), float32(k.SigmaY), float32(k.UnsharpStrength))
	default:
		// Non-identity kernel without a designed filter: nothing safe to
		// apply, pass the pixels through untouched.
		copy(out.Data, frame.Data)
		return out
	}

	pipeline.ContrastBoost(out.Data, float32(contrastBoost))
	return out
}
