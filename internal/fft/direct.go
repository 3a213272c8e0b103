package fft

import "math"

// direct is an O(n²) DFT with precomputed twiddle factors. Kernel supports
// are at most a few dozen taps, so the quadratic cost is negligible and the
// implementation works for any length, odd sizes included.
type direct struct {
	n       int
	twiddle []complex128 // twiddle[k] = exp(-2πik/n)
}

func newDirect(n int) *direct {
	if n < 1 {
		n = 1
	}
	tw := make([]complex128, n)
	for k := 0; k < n; k++ {
		angle := -2 * math.Pi * float64(k) / float64(n)
		tw[k] = complex(math.Cos(angle), math.Sin(angle))
	}
	return &direct{n: n, twiddle: tw}
}

func (d *direct) Size() int { return d.n }

func (d *direct) Forward(buf []complex128) {
	d.apply(buf, false)
}

func (d *direct) Inverse(buf []complex128) {
	d.apply(buf, true)
	inv := complex(1/float64(d.n), 0)
	for i := range buf {
		buf[i] *= inv
	}
}

// apply evaluates the DFT sum directly. Twiddle indices are reduced
// modulo n, with conjugation selecting the inverse direction.
func (d *direct) apply(buf []complex128, inverse bool) {
	n := d.n
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for t := 0; t < n; t++ {
			w := d.twiddle[(k*t)%n]
			if inverse {
				w = complex(real(w), -imag(w))
			}
			sum += buf[t] * w
		}
		out[k] = sum
	}
	copy(buf, out)
}
