package scoring

// Band classifies a score for display.
type Band string

// Display bands.
const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

const (
	highBandFloor   = 75
	mediumBandFloor = 60
)

// BandOf returns the display band for s.
func BandOf(s Score) Band {
	switch {
	case s >= highBandFloor:
		return BandHigh
	case s >= mediumBandFloor:
		return BandMedium
	default:
		return BandLow
	}
}

// BelowLowestCutoff reports whether s misses even the lowest threshold.
func BelowLowestCutoff(s Score, lowest float64) bool {
	return s.Value() < lowest
}
