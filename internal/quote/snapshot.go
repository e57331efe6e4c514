package quote

import "math"

// Snapshot is a point-in-time data record for one symbol.
// Snapshots are immutable after creation: a re-fetch replaces, never patches.
type Snapshot struct {
	Symbol       string
	CurrentPrice float64
	AllTimeHigh  float64
	Week52High   float64
	MarketCap    float64
	AvgVolume    float64
	Sector       string // optional, best effort
}

// Complete reports whether every required field is populated with a
// finite, non-negative value. A snapshot that fails this check is
// normalized to absent by the fetcher; partial snapshots never enter
// the pipeline.
func (s *Snapshot) Complete() bool {
	if s == nil || s.Symbol == "" {
		return false
	}

	for _, v := range []float64{s.CurrentPrice, s.AllTimeHigh, s.Week52High, s.MarketCap, s.AvgVolume} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return false
		}
	}

	// A zero price means the quote had no usable close
	return s.CurrentPrice > 0
}
