package fft

import (
	"math"
	"strconv"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b complex128) bool {
	return math.Abs(real(a)-real(b)) < epsilon && math.Abs(imag(a)-imag(b)) < epsilon
}

func TestNewSelectsImplementation(t *testing.T) {
	tests := []struct {
		n        int
		wantFast bool
	}{
		{1, false},
		{4, false}, // below minFastSize
		{7, false},
		{8, true},
		{15, false},
		{16, true},
		{31, false},
		{64, true},
	}

	for _, tt := range tests {
		tr := New(tt.n)
		_, isFast := tr.(*fast)
		if isFast != tt.wantFast {
			t.Errorf("New(%d): fast = %v, want %v", tt.n, isFast, tt.wantFast)
		}
		if tr.Size() != tt.n {
			t.Errorf("New(%d).Size() = %d", tt.n, tr.Size())
		}
	}
}

func TestForwardImpulse(t *testing.T) {
	// The DFT of a unit impulse is flat: all ones.
	for _, n := range []int{5, 8, 15, 16, 31} {
		tr := New(n)
		buf := make([]complex128, n)
		buf[0] = 1

		tr.Forward(buf)

		for k, v := range buf {
			if !approxEqual(v, 1) {
				t.Errorf("n=%d bin %d = %v, want 1", n, k, v)
			}
		}
	}
}

func TestForwardConstant(t *testing.T) {
	// The DFT of a constant is an impulse of magnitude n at DC.
	for _, n := range []int{7, 16} {
		tr := New(n)
		buf := make([]complex128, n)
		for i := range buf {
			buf[i] = 1
		}

		tr.Forward(buf)

		if !approxEqual(buf[0], complex(float64(n), 0)) {
			t.Errorf("n=%d DC = %v, want %d", n, buf[0], n)
		}
		for k := 1; k < n; k++ {
			if !approxEqual(buf[k], 0) {
				t.Errorf("n=%d bin %d = %v, want 0", n, k, buf[k])
			}
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, n := range []int{3, 5, 8, 15, 16, 21, 31, 64} {
		tr := New(n)
		buf := make([]complex128, n)
		want := make([]complex128, n)
		for i := range buf {
			v := complex(math.Sin(float64(i)*0.7)+0.25, math.Cos(float64(i)*1.3))
			buf[i] = v
			want[i] = v
		}

		tr.Forward(buf)
		tr.Inverse(buf)

		for i := range buf {
			if math.Abs(real(buf[i])-real(want[i])) > 1e-9 ||
				math.Abs(imag(buf[i])-imag(want[i])) > 1e-9 {
				t.Fatalf("n=%d sample %d: round trip %v, want %v", n, i, buf[i], want[i])
			}
		}
	}
}

func TestFastMatchesDirect(t *testing.T) {
	// Both implementations must agree on power-of-two sizes.
	for _, n := range []int{8, 16, 32} {
		a := make([]complex128, n)
		b := make([]complex128, n)
		for i := range a {
			v := complex(float64(i%5)-2, float64(i%3))
			a[i] = v
			b[i] = v
		}

		newFast(n).Forward(a)
		newDirect(n).Forward(b)

		for i := range a {
			if math.Abs(real(a[i])-real(b[i])) > 1e-8 ||
				math.Abs(imag(a[i])-imag(b[i])) > 1e-8 {
				t.Fatalf("n=%d bin %d: fast %v, direct %v", n, i, a[i], b[i])
			}
		}
	}
}

func TestNextPow2(t *testing.T) {
	tests := []struct{ n, want int }{
		{1, 1}, {2, 2}, {3, 4}, {15, 16}, {16, 16}, {17, 32}, {31, 32},
	}
	for _, tt := range tests {
		if got := NextPow2(tt.n); got != tt.want {
			t.Errorf("NextPow2(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestForward2DRoundTrip(t *testing.T) {
	const w, h = 8, 4
	buf := make([]complex128, w*h)
	want := make([]complex128, w*h)
	for i := range buf {
		v := complex(float64(i)*0.1, 0)
		buf[i] = v
		want[i] = v
	}

	Forward2D(buf, w, h)
	Inverse2D(buf, w, h)

	for i := range buf {
		if math.Abs(real(buf[i])-real(want[i])) > 1e-9 {
			t.Fatalf("sample %d: %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestForward2DSeparability(t *testing.T) {
	// A rank-1 input f(x,y) = g(x)*h(y) transforms to G(u)*H(v).
	const w, h = 4, 4
	g := []float64{1, 2, 0, 1}
	hv := []float64{3, 1, 1, 0}

	buf := make([]complex128, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = complex(g[x]*hv[y], 0)
		}
	}
	Forward2D(buf, w, h)

	gc := make([]complex128, w)
	hc := make([]complex128, h)
	for i := range g {
		gc[i] = complex(g[i], 0)
		hc[i] = complex(hv[i], 0)
	}
	newDirect(w).Forward(gc)
	newDirect(h).Forward(hc)

	for v := 0; v < h; v++ {
		for u := 0; u < w; u++ {
			want := gc[u] * hc[v]
			got := buf[v*w+u]
			if math.Abs(real(got)-real(want)) > 1e-8 ||
				math.Abs(imag(got)-imag(want)) > 1e-8 {
				t.Fatalf("bin (%d,%d): %v, want %v", u, v, got, want)
			}
		}
	}
}

func BenchmarkForward(b *testing.B) {
	for _, n := range []int{15, 31, 64, 256} {
		tr := New(n)
		buf := make([]complex128, n)
		for i := range buf {
			buf[i] = complex(float64(i), 0)
		}
		b.Run("n"+strconv.Itoa(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				tr.Forward(buf)
			}
		})
	}
}
