package optix

import (
	"testing"

	"github.com/arkankau/optix-sub001/internal/wiener"
)

func separableKernel() Kernel {
	return Kernel{SigmaX: 1.5, SigmaY: 1.5, Size: 15, Separable: true}
}

func obliqueKernel() Kernel {
	return Kernel{SigmaX: 2.0, SigmaY: 0.8, ThetaDeg: 45, Size: 15}
}

func TestDesignSeparableAttachesAxisFilters(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, false)
	k := d.design(separableKernel())

	if k.InvHorizontal == nil || k.InvVertical == nil {
		t.Fatal("separable design missing 1D filters")
	}
	if len(k.InvHorizontal) != k.Size || len(k.InvVertical) != k.Size {
		t.Errorf("filter lengths (%d, %d), want %d",
			len(k.InvHorizontal), len(k.InvVertical), k.Size)
	}
	if k.InvDense != nil || k.UnsharpStrength != 0 {
		t.Error("separable design must not attach dense or unsharp fallbacks")
	}
}

func TestDesignObliqueAttachesDenseFilter(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, false)
	k := d.design(obliqueKernel())

	if k.InvDense == nil {
		t.Fatal("non-separable design missing dense filter")
	}
	if len(k.InvDense) != k.Size*k.Size {
		t.Errorf("dense filter length %d, want %d", len(k.InvDense), k.Size*k.Size)
	}
}

func TestDesignPreferUnsharpSkipsDense(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, true)
	k := d.design(obliqueKernel())

	if k.InvDense != nil {
		t.Error("unsharp preference still attached a dense filter")
	}
	if k.UnsharpStrength <= 0 {
		t.Error("unsharp fallback strength not set")
	}
	// Strength follows the larger radius: clamp(2.0/2, 0.3, 1.5) = 1.0.
	if k.UnsharpStrength != wiener.UnsharpStrength(2.0) {
		t.Errorf("strength = %v, want %v", k.UnsharpStrength, wiener.UnsharpStrength(2.0))
	}
}

func TestDesignIdentityUntouched(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, false)
	k := d.design(IdentityKernel())
	if !k.Identity || d.cache.Len() != 0 {
		t.Error("identity kernel must bypass design and caching")
	}
}

func TestDesignCachesByQuantizedKey(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, false)

	d.design(separableKernel())
	if d.cache.Len() != 1 {
		t.Fatalf("cache size = %d after first design, want 1", d.cache.Len())
	}

	// Sub-quantum sigma jitter maps to the same key.
	jittered := separableKernel()
	jittered.SigmaX += 0.001
	d.design(jittered)
	if d.cache.Len() != 1 {
		t.Errorf("cache size = %d after jittered redesign, want 1", d.cache.Len())
	}

	// A real sigma change is a new entry.
	changed := separableKernel()
	changed.SigmaX = 2.5
	d.design(changed)
	if d.cache.Len() != 2 {
		t.Errorf("cache size = %d after changed sigma, want 2", d.cache.Len())
	}
}

func TestDesignRejectedFilterDegradesToIdentity(t *testing.T) {
	d := newFilterDesigner(DefaultRegularization, false)
	k := d.attach(separableKernel(), designedFilter{})
	if !k.Identity {
		t.Error("rejected design must degrade to the identity kernel")
	}
}

func TestNewFilterDesignerClampsLambda(t *testing.T) {
	if d := newFilterDesigner(10, false); d.lambda != wiener.MaxLambda {
		t.Errorf("lambda = %v, want clamp to %v", d.lambda, wiener.MaxLambda)
	}
	if d := newFilterDesigner(0, false); d.lambda != wiener.MinLambda {
		t.Errorf("lambda = %v, want clamp to %v", d.lambda, wiener.MinLambda)
	}
}
