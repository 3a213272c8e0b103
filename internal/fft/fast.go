package fft

import "github.com/brettbuddin/fourier"

// minFastSize is the smallest length routed to the radix-2 FFT. Below this
// the direct transform is cheaper than the FFT's bookkeeping.
const minFastSize = 8

// fast wraps the radix-2 FFT for power-of-two lengths. The constructor
// guarantees the length is a power of two; if the underlying routine still
// rejects a buffer the transform falls back to the direct implementation
// rather than corrupting the caller's data.
type fast struct {
	n int
}

func newFast(n int) *fast {
	return &fast{n: n}
}

func (f *fast) Size() int { return f.n }

func (f *fast) Forward(buf []complex128) {
	if err := fourier.Forward(buf); err != nil {
		newDirect(f.n).Forward(buf)
	}
}

// Inverse uses the conjugation identity IDFT(x) = conj(DFT(conj(x)))/n,
// which needs only the forward routine and keeps the scaling convention
// identical to the direct transform.
func (f *fast) Inverse(buf []complex128) {
	for i := range buf {
		buf[i] = complex(real(buf[i]), -imag(buf[i]))
	}
	f.Forward(buf)
	inv := 1 / float64(f.n)
	for i := range buf {
		buf[i] = complex(real(buf[i])*inv, -imag(buf[i])*inv)
	}
}
