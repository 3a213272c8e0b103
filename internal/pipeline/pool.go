package pipeline

import "sync"

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

// Temporary buffer pool for the inter-pass float planes. Sized for a
// 1024x1024 RGBA frame by default; larger frames allocate fresh.
var tempBufferPool = sync.Pool{
	New: func() interface{} {
		return &floatBuffer{data: make([]float32, 1024*1024*4)}
	},
}

// getTempBuffer retrieves a zeroed temporary buffer with at least
// width*height*4 elements.
func getTempBuffer(width, height int) []float32 {
	size := width * height * 4
	wrapper := tempBufferPool.Get().(*floatBuffer)

	if len(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}

	for i := 0; i < size; i++ {
		wrapper.data[i] = 0
	}
	return wrapper.data[:size]
}

// putTempBuffer returns a temporary buffer to the pool. Oversized buffers
// are dropped so a single 4K frame does not pin memory forever.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
