package screen

import (
	"fmt"
	"math"

	"peakscan/internal/quote"
)

// Compiled-in threshold defaults
const (
	DefaultMinMarketCap = 500e6 // $500 million
	DefaultMinAvgVolume = 1e6   // 1 million shares/day
	DefaultMaxPctToHigh = 0.05  // within 5% of a reference high
)

// Thresholds parameterizes the screening criteria. A value is built once
// before a run starts and stays immutable for its duration.
type Thresholds struct {
	MinMarketCap float64 `yaml:"min_market_cap"`
	MinAvgVolume float64 `yaml:"min_avg_volume"`
	MaxPctToHigh float64 `yaml:"max_pct_to_high"`
}

// DefaultThresholds returns the compiled-in defaults
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMarketCap: DefaultMinMarketCap,
		MinAvgVolume: DefaultMinAvgVolume,
		MaxPctToHigh: DefaultMaxPctToHigh,
	}
}

// Validate checks that threshold values are usable
func (t Thresholds) Validate() error {
	for name, v := range map[string]float64{
		"min_market_cap":  t.MinMarketCap,
		"min_avg_volume":  t.MinAvgVolume,
		"max_pct_to_high": t.MaxPctToHigh,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite", name)
		}
	}

	if t.MinMarketCap < 0 {
		return fmt.Errorf("min_market_cap must be non-negative")
	}
	if t.MinAvgVolume < 0 {
		return fmt.Errorf("min_avg_volume must be non-negative")
	}

	return nil
}

// Passes applies the screening criteria to one record.
//
// Pure predicate, boundary-inclusive on every clause. Market cap and
// volume are hard gates; the high-proximity clause is an OR — a symbol
// near either its all-time high or its 52-week high qualifies.
func Passes(snap *quote.Snapshot, m Metrics, t Thresholds) bool {
	return snap.MarketCap >= t.MinMarketCap &&
		snap.AvgVolume >= t.MinAvgVolume &&
		(m.PctToATH <= t.MaxPctToHigh || m.PctTo52w <= t.MaxPctToHigh)
}
