//go:build !nogpu

package gpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	optix "github.com/arkankau/optix-sub001"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// WienerAccelerator runs separable inverse-filter convolution as two wgpu
// compute passes (horizontal, then vertical with the contrast post-pass
// fused in). It implements the optix.Accelerator interface.
//
// Dense 2D inverses and unsharp fallbacks are declined via CanCompensate;
// those kernels run on the CPU pipeline.
type WienerAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	horizontal hal.ComputePipeline
	vertical   hal.ComputePipeline

	gpuReady bool
}

var _ optix.Accelerator = (*WienerAccelerator)(nil)

func (a *WienerAccelerator) Name() string { return "wgpu-wiener" }

// Init opens a GPU device and builds the compute pipelines. An error means
// no usable GPU; the caller skips registration and the engine stays on CPU.
func (a *WienerAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initGPU()
}

func (a *WienerAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.destroyPipelines()
	if a.device != nil {
		a.device.Destroy()
		a.device = nil
	}
	if a.instance != nil {
		a.instance.Destroy()
		a.instance = nil
	}
	a.queue = nil
	a.gpuReady = false
}

// SetLogger receives the logger propagated from optix.SetLogger.
func (a *WienerAccelerator) SetLogger(l *slog.Logger) { setLogger(l) }

// CanCompensate reports whether the kernel maps onto the two-pass compute
// shader: separable with designed 1D filters of supported length.
func (a *WienerAccelerator) CanCompensate(k optix.Kernel) bool {
	a.mu.Lock()
	ready := a.gpuReady
	a.mu.Unlock()
	return ready && supportedKernel(k)
}

// supportedKernel is the shape check behind CanCompensate, independent of
// device state.
func supportedKernel(k optix.Kernel) bool {
	return !k.Identity &&
		k.InvHorizontal != nil && k.InvVertical != nil &&
		len(k.InvHorizontal) == k.Size && len(k.InvVertical) == k.Size &&
		k.Size >= 1 && k.Size <= optix.MaxKernelSize
}

// Compensate uploads the frame and filter taps, runs both convolution
// passes in one command encoder, and reads the result back into dst.
func (a *WienerAccelerator) Compensate(dst, src optix.FrameTarget, model *optix.VisionModel, contrast float32) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.gpuReady {
		return optix.ErrFallbackToCPU
	}
	if model == nil || !supportedKernel(model.Kernel) {
		return optix.ErrFallbackToCPU
	}
	if src.Width <= 0 || src.Height <= 0 || dst.Width != src.Width || dst.Height != src.Height {
		return optix.ErrFallbackToCPU
	}
	return a.dispatch(dst, src, model.Kernel, contrast)
}

func (a *WienerAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		a.instance = nil
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		a.instance = nil
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue

	if err := a.createPipelines(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		a.instance.Destroy()
		a.instance = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	slogger().Info("optix/gpu: accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *WienerAccelerator) createPipelines() error {
	spirv, err := compileShaderToSPIRV(wienerShaderSource)
	if err != nil {
		return fmt.Errorf("compile wiener shader: %w", err)
	}
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "wiener",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	a.shader = shader

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "wiener_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 3, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
			{Binding: 4, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "wiener_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	horizontal, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "wiener_horizontal", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "horizontal_pass"},
	})
	if err != nil {
		return fmt.Errorf("create horizontal pipeline: %w", err)
	}
	a.horizontal = horizontal

	vertical, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "wiener_vertical", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "vertical_pass"},
	})
	if err != nil {
		return fmt.Errorf("create vertical pipeline: %w", err)
	}
	a.vertical = vertical

	return nil
}

func (a *WienerAccelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.vertical != nil {
		a.device.DestroyComputePipeline(a.vertical)
		a.vertical = nil
	}
	if a.horizontal != nil {
		a.device.DestroyComputePipeline(a.horizontal)
		a.horizontal = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}
