package match

// Tier is a discrete confidence bucket used to pick the presentation badge
// and to decide whether to escalate to the remote fallback.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
	TierNone   Tier = "none"
)

// Classify maps a confidence score to its tier. Lower bounds are inclusive.
func Classify(confidence float64) Tier {
	switch {
	case confidence >= 0.85:
		return TierHigh
	case confidence >= 0.60:
		return TierMedium
	case confidence >= 0.30:
		return TierLow
	default:
		return TierNone
	}
}

// ShouldEscalate reports whether a tier is weak enough to justify a remote
// fallback call.
func ShouldEscalate(t Tier) bool {
	return t == TierLow || t == TierNone
}

// LocalConfidence normalizes a matcher score against the keyword-set size,
// clamped to [0,1].
func LocalConfidence(score, keywordCount int) float64 {
	if keywordCount <= 0 {
		return 0
	}
	conf := float64(score) / float64(keywordCount)
	if conf < 0 {
		return 0
	}
	if conf > 1 {
		return 1
	}
	return conf
}
