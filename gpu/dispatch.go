//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	optix "github.com/arkankau/optix-sub001"
)

// workgroupDim is the shader's @workgroup_size in both axes.
const workgroupDim = 8

// gpuTimeout bounds the fence wait; a hung driver degrades to the CPU
// path instead of stalling the frame loop.
const gpuTimeout = 5 * time.Second

// filterParams mirrors the Params uniform in wiener.wgsl. 16 bytes,
// std140-compatible.
type filterParams struct {
	Width    uint32
	Height   uint32
	KSize    uint32
	Contrast float32
}

// packParams serializes the uniform block in little-endian layout.
func packParams(p filterParams) []byte {
	out := make([]byte, 16)
	binary.LittleEndian.PutUint32(out[0:], p.Width)
	binary.LittleEndian.PutUint32(out[4:], p.Height)
	binary.LittleEndian.PutUint32(out[8:], p.KSize)
	binary.LittleEndian.PutUint32(out[12:], math.Float32bits(p.Contrast))
	return out
}

// packTaps concatenates the horizontal and vertical filter taps into one
// float32 buffer: taps[0:size] horizontal, taps[size:2*size] vertical.
func packTaps(k optix.Kernel) []byte {
	out := make([]byte, 8*k.Size)
	for i, v := range k.InvHorizontal {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	for i, v := range k.InvVertical {
		binary.LittleEndian.PutUint32(out[(k.Size+i)*4:], math.Float32bits(v))
	}
	return out
}

// packPixels copies the source rows into a tightly packed RGBA8 buffer the
// shader reads as array<u32>.
func packPixels(src optix.FrameTarget) []byte {
	out := make([]byte, src.Width*src.Height*4)
	for y := 0; y < src.Height; y++ {
		copy(out[y*src.Width*4:(y+1)*src.Width*4], src.Data[y*src.Stride:y*src.Stride+src.Width*4])
	}
	return out
}

// unpackPixels copies the tightly packed readback into the destination,
// honoring its stride.
func unpackPixels(dst optix.FrameTarget, packed []byte) {
	for y := 0; y < dst.Height; y++ {
		copy(dst.Data[y*dst.Stride:y*dst.Stride+dst.Width*4], packed[y*dst.Width*4:(y+1)*dst.Width*4])
	}
}

// workgroups returns the dispatch grid covering w x h pixels.
func workgroups(w, h int) (uint32, uint32) {
	return (uint32(w) + workgroupDim - 1) / workgroupDim,
		(uint32(h) + workgroupDim - 1) / workgroupDim
}

// dispatch runs both convolution passes in one command encoder: upload,
// horizontal pass into the float intermediate, vertical pass with the
// contrast post-pass into the output, copy to staging, fence, readback.
func (a *WienerAccelerator) dispatch(dst, src optix.FrameTarget, k optix.Kernel, contrast float32) error {
	w, h := src.Width, src.Height
	pixelBufSize := uint64(w * h * 4)
	// The intermediate holds one vec4<f32> per pixel.
	interBufSize := uint64(w * h * 16)

	tapsBytes := packTaps(k)
	paramsBytes := packParams(filterParams{
		Width: uint32(w), Height: uint32(h),
		KSize: uint32(k.Size), Contrast: contrast,
	})

	paramsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_params", Size: uint64(len(paramsBytes)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	defer a.device.DestroyBuffer(paramsBuf)

	tapsBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_taps", Size: uint64(len(tapsBytes)),
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create taps buffer: %w", err)
	}
	defer a.device.DestroyBuffer(tapsBuf)

	srcBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_src", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create source buffer: %w", err)
	}
	defer a.device.DestroyBuffer(srcBuf)

	interBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_inter", Size: interBufSize,
		Usage: gputypes.BufferUsageStorage,
	})
	if err != nil {
		return fmt.Errorf("create intermediate buffer: %w", err)
	}
	defer a.device.DestroyBuffer(interBuf)

	dstBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_dst", Size: pixelBufSize,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create output buffer: %w", err)
	}
	defer a.device.DestroyBuffer(dstBuf)

	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "wiener_staging", Size: pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer a.device.DestroyBuffer(stagingBuf)

	a.queue.WriteBuffer(paramsBuf, 0, paramsBytes)
	a.queue.WriteBuffer(tapsBuf, 0, tapsBytes)
	a.queue.WriteBuffer(srcBuf, 0, packPixels(src))

	bindGroup, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "wiener_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: uint64(len(paramsBytes))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: tapsBuf.NativeHandle(), Offset: 0, Size: uint64(len(tapsBytes))}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: srcBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
			{Binding: 3, Resource: gputypes.BufferBinding{Buffer: interBuf.NativeHandle(), Offset: 0, Size: interBufSize}},
			{Binding: 4, Resource: gputypes.BufferBinding{Buffer: dstBuf.NativeHandle(), Offset: 0, Size: pixelBufSize}},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bindGroup)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "wiener_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("wiener"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	gx, gy := workgroups(w, h)

	// Two passes over the same bind group; the storage-buffer barrier
	// between passes orders the intermediate writes before the reads.
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "wiener_horizontal"})
	pass.SetPipeline(a.horizontal)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch(gx, gy, 1)
	pass.End()

	pass = encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "wiener_vertical"})
	pass.SetPipeline(a.vertical)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Dispatch(gx, gy, 1)
	pass.End()

	encoder.CopyBufferToBuffer(dstBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: pixelBufSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, pixelBufSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackPixels(dst, readback)

	slogger().Debug("optix/gpu: frame compensated",
		"width", w, "height", h, "kernelSize", k.Size)
	return nil
}
