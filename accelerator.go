package optix

import (
	"errors"
	"sync"
)

// ErrFallbackToCPU indicates the GPU accelerator cannot handle this frame
// or kernel. The engine transparently falls back to CPU compensation.
var ErrFallbackToCPU = errors.New("optix: falling back to CPU compensation")

// FrameTarget provides pixel buffer access for accelerator input and
// output. Data is straight (non-premultiplied) RGBA, 4 bytes per pixel,
// laid out row by row with the given Stride.
type FrameTarget struct {
	Data          []uint8
	Width, Height int
	Stride        int // bytes per row
}

// Accelerator is an optional GPU compensation provider.
//
// When registered via RegisterAccelerator, the engine tries GPU dispatch
// first for supported kernels. If the accelerator returns ErrFallbackToCPU
// or any other error, compensation transparently falls back to the CPU
// pipeline; functional parity between the two paths is required, so the
// fallback is visually seamless.
//
// Implementations are provided by backend packages. Users opt in via blank
// import:
//
//	import _ "github.com/arkankau/optix-sub001/gpu"
type Accelerator interface {
	// Name returns the accelerator name (e.g., "wgpu").
	Name() string

	// Init initializes GPU resources. Called once during registration.
	Init() error

	// Close releases GPU resources.
	Close()

	// CanCompensate reports whether the accelerator supports the given
	// kernel. This is a fast check used to skip GPU dispatch entirely for
	// unsupported shapes (e.g. dense non-separable inverses).
	CanCompensate(k Kernel) bool

	// Compensate applies the model's inverse filter and contrast post-pass
	// to src, writing into dst. Returns ErrFallbackToCPU if the frame
	// cannot be GPU-processed.
	Compensate(dst, src FrameTarget, model *VisionModel, contrast float32) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator registers a GPU accelerator for optional dispatch.
//
// Only one accelerator can be registered; subsequent calls replace the
// previous one. The accelerator's Init() method is called during
// registration, and the current logger is propagated to it. If Init()
// fails the accelerator is not registered and the error is returned.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("optix: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}

	accelMu.Lock()
	prev := accel
	accel = a
	accelMu.Unlock()

	if prev != nil {
		prev.Close()
	}
	propagateLogger(a, Logger())
	Logger().Info("optix: accelerator registered", "name", a.Name())
	return nil
}

// UnregisterAccelerator removes and closes the current accelerator.
// Compensation reverts to the CPU pipeline.
func UnregisterAccelerator() {
	accelMu.Lock()
	prev := accel
	accel = nil
	accelMu.Unlock()

	if prev != nil {
		prev.Close()
	}
}

// registeredAccelerator returns the current accelerator, or nil.
func registeredAccelerator() Accelerator {
	accelMu.RLock()
	defer accelMu.RUnlock()
	return accel
}
