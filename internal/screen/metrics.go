package screen

import (
	"math"

	"peakscan/internal/quote"
)

// Metrics holds the derived proximity-to-high ratios for one snapshot.
// Negative values are valid and mean the current price exceeds the
// reference high (a new high).
type Metrics struct {
	PctToATH float64
	PctTo52w float64
}

// Derive computes proximity metrics from a snapshot.
//
// Pure function. Returns false when either reference high is zero (the
// ratio would be undefined) or when any input is non-finite; the caller
// treats that symbol as absent rather than letting NaN/Inf propagate.
// No rounding happens here — rounding belongs to the reporting boundary
// so threshold comparisons stay exact.
func Derive(snap *quote.Snapshot) (Metrics, bool) {
	if snap == nil || !snap.Complete() {
		return Metrics{}, false
	}

	if snap.AllTimeHigh <= 0 || snap.Week52High <= 0 {
		return Metrics{}, false
	}

	m := Metrics{
		PctToATH: (snap.AllTimeHigh - snap.CurrentPrice) / snap.AllTimeHigh,
		PctTo52w: (snap.Week52High - snap.CurrentPrice) / snap.Week52High,
	}

	if math.IsNaN(m.PctToATH) || math.IsInf(m.PctToATH, 0) ||
		math.IsNaN(m.PctTo52w) || math.IsInf(m.PctTo52w, 0) {
		return Metrics{}, false
	}

	return m, true
}
