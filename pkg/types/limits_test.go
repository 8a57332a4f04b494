package types

import "testing"

func TestDefaultLimits(t *testing.T) {
	limits := DefaultLimits()

	if limits.MaxInputSize != MaxInputSize64MB {
		t.Errorf("Expected MaxInputSize=%d, got %d", MaxInputSize64MB, limits.MaxInputSize)
	}
	if limits.MaxDepth != MaxDepthDefault {
		t.Errorf("Expected MaxDepth=%d, got %d", MaxDepthDefault, limits.MaxDepth)
	}
	if limits.IsZero() {
		t.Error("DefaultLimits should not be zero")
	}
}

func TestLimitPresets_Ordering(t *testing.T) {
	strict, def, relaxed := StrictLimits(), DefaultLimits(), RelaxedLimits()

	if !(strict.MaxInputSize < def.MaxInputSize && def.MaxInputSize < relaxed.MaxInputSize) {
		t.Errorf("MaxInputSize presets out of order: %d %d %d", strict.MaxInputSize, def.MaxInputSize, relaxed.MaxInputSize)
	}
	if !(strict.MaxDepth < def.MaxDepth && def.MaxDepth < relaxed.MaxDepth) {
		t.Errorf("MaxDepth presets out of order: %d %d %d", strict.MaxDepth, def.MaxDepth, relaxed.MaxDepth)
	}
	if !(strict.MaxObjects < def.MaxObjects && def.MaxObjects < relaxed.MaxObjects) {
		t.Errorf("MaxObjects presets out of order: %d %d %d", strict.MaxObjects, def.MaxObjects, relaxed.MaxObjects)
	}
}

func TestLimits_IsZero(t *testing.T) {
	if !(Limits{}).IsZero() {
		t.Error("zero Limits should report IsZero")
	}
}
