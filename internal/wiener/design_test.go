package wiener

import (
	"math"
	"testing"
)

func TestGaussian1DUnitSum(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.5, 6} {
		k := Gaussian1D(sigma, 15)
		sum := 0.0
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("sigma=%v: sum = %v, want 1", sigma, sum)
		}
	}
}

func TestGaussian1DSymmetry(t *testing.T) {
	k := Gaussian1D(2, 21)
	for i := 0; i < len(k)/2; i++ {
		if math.Abs(k[i]-k[len(k)-1-i]) > 1e-15 {
			t.Errorf("tap %d = %v, mirror = %v", i, k[i], k[len(k)-1-i])
		}
	}
	// Peak at center.
	center := len(k) / 2
	for i, v := range k {
		if i != center && v >= k[center] {
			t.Errorf("tap %d (%v) >= center (%v)", i, v, k[center])
		}
	}
}

func TestGaussian1DZeroSigma(t *testing.T) {
	k := Gaussian1D(0, 15)
	if k[len(k)/2] != 1 {
		t.Errorf("center tap = %v, want 1", k[len(k)/2])
	}
}

func TestGaussian1DEvenSizeForcedOdd(t *testing.T) {
	k := Gaussian1D(1, 14)
	if len(k)%2 == 0 {
		t.Errorf("size = %d, want odd", len(k))
	}
}

func TestGaussian2DUnitSum(t *testing.T) {
	tests := []struct {
		name          string
		sx, sy, theta float64
		size          int
	}{
		{"circular", 2, 2, 0, 15},
		{"elliptical", 3, 1.5, 0, 21},
		{"rotated", 3, 1.5, 45, 21},
		{"steep axis", 2.5, 1, 170, 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := Gaussian2D(tt.sx, tt.sy, tt.theta, tt.size)
			sum := 0.0
			for _, v := range k {
				sum += v
			}
			if math.Abs(sum-1) > 1e-12 {
				t.Errorf("sum = %v, want 1", sum)
			}
		})
	}
}

func TestGaussian2DRotationMovesMass(t *testing.T) {
	// At theta=0 an elongated-X Gaussian spreads along rows; at theta=90
	// the same kernel spreads along columns.
	const size = 15
	k0 := Gaussian2D(3, 1, 0, size)
	k90 := Gaussian2D(3, 1, 90, size)
	half := size / 2

	rowSpread0 := k0[half*size+half+4]
	colSpread0 := k0[(half+4)*size+half]
	if rowSpread0 <= colSpread0 {
		t.Errorf("theta=0: row tap %v should exceed column tap %v", rowSpread0, colSpread0)
	}

	rowSpread90 := k90[half*size+half+4]
	colSpread90 := k90[(half+4)*size+half]
	if colSpread90 <= rowSpread90 {
		t.Errorf("theta=90: column tap %v should exceed row tap %v", colSpread90, rowSpread90)
	}
}

func TestDesign1DProducesUsableFilter(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2, 4, 6} {
		for _, lambda := range []float64{0.001, 0.01, 0.1} {
			inv, ok := Design1D(sigma, 15, lambda)
			if !ok {
				t.Fatalf("sigma=%v lambda=%v: designer rejected a plain Gaussian", sigma, lambda)
			}
			if len(inv) != 15 {
				t.Fatalf("len = %d, want 15", len(inv))
			}
			sum := float32(0)
			for _, v := range inv {
				if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
					t.Fatalf("sigma=%v lambda=%v: non-finite coefficient", sigma, lambda)
				}
				if v > MaxCoefficient || v < -MaxCoefficient {
					t.Fatalf("sigma=%v lambda=%v: |coeff| %v exceeds %v", sigma, lambda, v, MaxCoefficient)
				}
				sum += v
			}
			if math.Abs(float64(sum)) < stabilityEpsilon {
				t.Fatalf("sigma=%v lambda=%v: degenerate DC gain %v", sigma, lambda, sum)
			}
		}
	}
}

func TestDesign1DSharpensAgainstBlur(t *testing.T) {
	// Convolving the blur kernel with its inverse should land closer to an
	// impulse than the blur kernel itself: the center must dominate more.
	const size = 15
	const sigma = 1.5
	h := Gaussian1D(sigma, size)
	inv, ok := Design1D(sigma, size, 0.01)
	if !ok {
		t.Fatal("designer rejected kernel")
	}

	// Full convolution h*inv evaluated at the center.
	center := 0.0
	total := 0.0
	for lag := -size + 1; lag < size; lag++ {
		acc := 0.0
		for i := 0; i < size; i++ {
			j := i + lag
			if j < 0 || j >= size {
				continue
			}
			acc += h[i] * float64(inv[j])
		}
		if lag == 0 {
			center = acc
		}
		total += math.Abs(acc)
	}

	if center/total <= h[size/2] {
		t.Errorf("center concentration %v not better than blur peak %v", center/total, h[size/2])
	}
}

func TestDesign1DCenterDominates(t *testing.T) {
	inv, ok := Design1D(2, 15, 0.01)
	if !ok {
		t.Fatal("designer rejected kernel")
	}
	center := inv[len(inv)/2]
	if center <= 0 {
		t.Fatalf("center tap = %v, want positive", center)
	}
	for i, v := range inv {
		if i != len(inv)/2 && math.Abs(float64(v)) >= float64(center) {
			t.Errorf("tap %d (%v) >= center (%v)", i, v, center)
		}
	}
}

func TestDesign2DProducesUsableFilter(t *testing.T) {
	inv, ok := Design2D(2.5, 1.2, 30, 15, 0.01)
	if !ok {
		t.Fatal("designer rejected kernel")
	}
	if len(inv) != 15*15 {
		t.Fatalf("len = %d, want %d", len(inv), 15*15)
	}
	for i, v := range inv {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("tap %d non-finite", i)
		}
		if v > MaxCoefficient || v < -MaxCoefficient {
			t.Fatalf("tap %d magnitude %v exceeds %v", i, v, MaxCoefficient)
		}
	}
}

func TestFinishFilterStabilityGuard(t *testing.T) {
	// A zero-sum coefficient set has no DC response and must be rejected.
	_, ok := finishFilter([]float64{1, -1, 1, -1})
	if ok {
		t.Error("zero-sum filter passed the stability guard")
	}
}

func TestFinishFilterAmplitudeGuard(t *testing.T) {
	inv, ok := finishFilter([]float64{-20, 41, -20})
	if !ok {
		t.Fatal("filter rejected")
	}
	maxAbs := float32(0)
	for _, v := range inv {
		if a := float32(math.Abs(float64(v))); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs > MaxCoefficient {
		t.Errorf("max |coeff| = %v, want <= %v", maxAbs, MaxCoefficient)
	}
}

func TestClampLambda(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, MinLambda},
		{0.0005, MinLambda},
		{0.01, 0.01},
		{0.1, 0.1},
		{1, MaxLambda},
	}
	for _, tt := range tests {
		if got := ClampLambda(tt.in); got != tt.want {
			t.Errorf("ClampLambda(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnsharpStrength(t *testing.T) {
	tests := []struct{ sigma, want float64 }{
		{0, minUnsharpStrength},
		{0.5, minUnsharpStrength},
		{1, 0.5},
		{2, 1},
		{6, maxUnsharpStrength},
	}
	for _, tt := range tests {
		if got := UnsharpStrength(tt.sigma); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("UnsharpStrength(%v) = %v, want %v", tt.sigma, got, tt.want)
		}
	}
}

func BenchmarkDesign1D(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Design1D(2.5, 31, 0.01)
	}
}

func BenchmarkDesign2D(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Design2D(2.5, 1.2, 30, 31, 0.01)
	}
}
