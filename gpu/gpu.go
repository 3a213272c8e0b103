//go:build !nogpu

// Package gpu registers the wgpu compute accelerator for frame compensation.
//
// Import this package to run the inverse-filter convolution and contrast
// pass on the GPU instead of the CPU pipeline. The accelerator handles
// separable kernels; dense and unsharp kernels stay on the CPU.
//
// If GPU initialization fails (no Vulkan available), registration is
// silently skipped and compensation falls back to CPU.
//
// Usage:
//
//	import _ "github.com/arkankau/optix-sub001/gpu" // enable GPU compensation
package gpu

import (
	optix "github.com/arkankau/optix-sub001"
)

func init() {
	if err := optix.RegisterAccelerator(&WienerAccelerator{}); err != nil {
		optix.Logger().Warn("optix/gpu: accelerator not available", "err", err)
	}
}
