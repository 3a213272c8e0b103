package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolExecuteAll(t *testing.T) {
	p := NewWorkerPool(4)
	defer p.Close()

	var counter atomic.Int64
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	p.ExecuteAll(work)

	if got := counter.Load(); got != 100 {
		t.Errorf("executed %d items, want 100", got)
	}
}

func TestWorkerPoolExecuteAllEmpty(t *testing.T) {
	p := NewWorkerPool(2)
	defer p.Close()
	p.ExecuteAll(nil) // must not block or panic
}

func TestWorkerPoolCloseIdempotent(t *testing.T) {
	p := NewWorkerPool(2)
	p.Close()
	p.Close()
	if p.IsRunning() {
		t.Error("closed pool reports running")
	}
	p.ExecuteAll([]func(){func() { t.Error("closed pool ran work") }})
}

func TestWorkerPoolDefaultSize(t *testing.T) {
	p := NewWorkerPool(0)
	defer p.Close()
	if p.Workers() < 1 {
		t.Errorf("workers = %d, want >= 1", p.Workers())
	}
}

func TestForRowsCoversEveryRowOnce(t *testing.T) {
	for _, h := range []int{1, 7, 63, 64, 100, 1080} {
		var mu sync.Mutex
		seen := make([]int, h)

		ForRows(h, func(y0, y1 int) {
			if y0 < 0 || y1 > h || y0 >= y1 {
				t.Errorf("h=%d: bad band [%d, %d)", h, y0, y1)
				return
			}
			mu.Lock()
			for y := y0; y < y1; y++ {
				seen[y]++
			}
			mu.Unlock()
		})

		for y, n := range seen {
			if n != 1 {
				t.Fatalf("h=%d: row %d visited %d times", h, y, n)
			}
		}
	}
}

func TestForRowsZeroHeight(t *testing.T) {
	ForRows(0, func(y0, y1 int) { t.Error("callback invoked for empty range") })
	ForRows(-3, func(y0, y1 int) { t.Error("callback invoked for negative range") })
}

func BenchmarkForRows(b *testing.B) {
	buf := make([]float64, 1080*1920)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ForRows(1080, func(y0, y1 int) {
			for y := y0; y < y1; y++ {
				row := buf[y*1920 : (y+1)*1920]
				for x := range row {
					row[x] = float64(x) * 0.5
				}
			}
		})
	}
}
