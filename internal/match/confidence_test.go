package match

import "testing"

func TestClassify_ExactBoundaries(t *testing.T) {
	tests := []struct {
		confidence float64
		want       Tier
	}{
		{1.0, TierHigh},
		{0.85, TierHigh},
		{0.849999, TierMedium},
		{0.60, TierMedium},
		{0.59999, TierLow},
		{0.30, TierLow},
		{0.29999, TierNone},
		{0.0, TierNone},
	}

	for _, tt := range tests {
		if got := Classify(tt.confidence); got != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.confidence, got, tt.want)
		}
	}
}

func TestShouldEscalate(t *testing.T) {
	if ShouldEscalate(TierHigh) || ShouldEscalate(TierMedium) {
		t.Error("high and medium tiers must not escalate")
	}
	if !ShouldEscalate(TierLow) || !ShouldEscalate(TierNone) {
		t.Error("low and none tiers must escalate")
	}
}

func TestLocalConfidence_Clamped(t *testing.T) {
	tests := []struct {
		score, keywords int
		want            float64
	}{
		{1, 1, 1.0},
		{1, 2, 0.5},
		{1, 3, 1.0 / 3.0},
		{5, 3, 1.0}, // clamped
		{0, 3, 0.0},
		{1, 0, 0.0}, // no keywords, no confidence
	}

	for _, tt := range tests {
		if got := LocalConfidence(tt.score, tt.keywords); got != tt.want {
			t.Errorf("LocalConfidence(%d, %d) = %v, want %v", tt.score, tt.keywords, got, tt.want)
		}
	}
}
