package optix

import "time"

// VisionModel is the cached result of one optical model build: the PSF
// kernel with its designed inverse filter, plus the defocus that produced
// it. Models are immutable once built; a rebuild produces a new VisionModel
// that atomically replaces the previous one inside the engine. Callers may
// hold a model across ticks safely.
type VisionModel struct {
	Kernel         Kernel
	ExcessDefocusD float64
	BuiltAt        time.Time

	// builtFrom records the sanitized parameters the model was derived
	// from, for staleness comparison.
	builtFrom OpticalParams
}

// IsPassthrough reports whether compensation with this model is a
// pixel-exact no-op.
func (m *VisionModel) IsPassthrough() bool {
	return m == nil || m.Kernel.Identity
}
