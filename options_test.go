package optix

import "testing"

func TestDefaultConfig(t *testing.T) {
	e := NewEngine()
	cfg := e.cfg
	if cfg.accommodation != DefaultAccommodation {
		t.Errorf("accommodation = %v, want %v", cfg.accommodation, DefaultAccommodation)
	}
	if cfg.lambda != DefaultRegularization {
		t.Errorf("lambda = %v, want %v", cfg.lambda, DefaultRegularization)
	}
	if cfg.contrastBoost != DefaultContrastBoost {
		t.Errorf("contrastBoost = %v, want %v", cfg.contrastBoost, DefaultContrastBoost)
	}
	if cfg.strategy != StrategyDeconvolution {
		t.Errorf("strategy = %v, want deconvolution", cfg.strategy)
	}
	if !cfg.useAccelerator {
		t.Error("accelerator dispatch must default to enabled")
	}
}

func TestOptionClamps(t *testing.T) {
	e := NewEngine(
		WithAccommodation(99),
		WithContrastBoost(0.1),
		WithXHeightFraction(0.9),
	)
	if e.cfg.accommodation != 4 {
		t.Errorf("accommodation = %v, want clamp 4", e.cfg.accommodation)
	}
	if e.cfg.contrastBoost != 0.8 {
		t.Errorf("contrastBoost = %v, want clamp 0.8", e.cfg.contrastBoost)
	}
	if e.cfg.xHeightFrac != maxXHeightFraction {
		t.Errorf("xHeightFrac = %v, want clamp %v", e.cfg.xHeightFrac, maxXHeightFraction)
	}
}

func TestWithSmoothingAlphaRejectsInvalid(t *testing.T) {
	for _, alpha := range []float64{0, -1, 1.5} {
		e := NewEngine(WithSmoothingAlpha(alpha))
		if e.cfg.smoothingAlpha != defaultSmoothingAlpha {
			t.Errorf("alpha %v accepted; cfg = %v", alpha, e.cfg.smoothingAlpha)
		}
	}
	e := NewEngine(WithSmoothingAlpha(1))
	if e.cfg.smoothingAlpha != 1 {
		t.Errorf("alpha 1 rejected; cfg = %v", e.cfg.smoothingAlpha)
	}
}

func TestWithUnsharpFallback(t *testing.T) {
	e := NewEngine(WithUnsharpFallback())
	if !e.cfg.preferUnsharp || !e.designer.preferUnsharp {
		t.Error("unsharp preference not propagated to the designer")
	}
}
