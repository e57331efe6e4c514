package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peakscan/internal/quote"
)

func TestPasses_Boundaries(t *testing.T) {
	th := Thresholds{
		MinMarketCap: 500e6,
		MinAvgVolume: 1e6,
		MaxPctToHigh: 0.05,
	}

	base := &quote.Snapshot{
		Symbol:    "AAA",
		MarketCap: 500e6,
		AvgVolume: 1e6,
	}
	atLimit := Metrics{PctToATH: 0.05, PctTo52w: 0.05}

	tests := []struct {
		name string
		snap quote.Snapshot
		m    Metrics
		want bool
	}{
		{"everything exactly at threshold passes", *base, atLimit, true},
		{"market cap one cent below fails", quote.Snapshot{MarketCap: 500e6 - 0.01, AvgVolume: 1e6}, atLimit, false},
		{"volume just below fails", quote.Snapshot{MarketCap: 500e6, AvgVolume: 1e6 - 1}, atLimit, false},
		{"both proximities just above fail", *base, Metrics{PctToATH: 0.050001, PctTo52w: 0.050001}, false},
		{"well inside all thresholds passes", quote.Snapshot{MarketCap: 1e9, AvgVolume: 2e6}, Metrics{PctToATH: 0.03, PctTo52w: 0.04}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Passes(&tt.snap, tt.m, th))
		})
	}
}

func TestPasses_ORSemantics(t *testing.T) {
	th := DefaultThresholds()
	snap := &quote.Snapshot{Symbol: "AAA", MarketCap: 1e9, AvgVolume: 2e6}

	// far from ATH, near 52-week high
	assert.True(t, Passes(snap, Metrics{PctToATH: 0.40, PctTo52w: 0.02}, th))

	// near ATH, far from 52-week high (cannot happen with real data, the
	// predicate must not care)
	assert.True(t, Passes(snap, Metrics{PctToATH: 0.02, PctTo52w: 0.40}, th))

	// far from both
	assert.False(t, Passes(snap, Metrics{PctToATH: 0.40, PctTo52w: 0.40}, th))
}

func TestPasses_NewHighQualifies(t *testing.T) {
	th := DefaultThresholds()
	snap := &quote.Snapshot{Symbol: "AAA", MarketCap: 1e9, AvgVolume: 2e6}

	assert.True(t, Passes(snap, Metrics{PctToATH: -0.01, PctTo52w: -0.01}, th))
}

func TestPasses_IsPure(t *testing.T) {
	th := DefaultThresholds()
	snap := &quote.Snapshot{Symbol: "AAA", MarketCap: 1e9, AvgVolume: 2e6}
	m := Metrics{PctToATH: 0.03, PctTo52w: 0.06}

	first := Passes(snap, m, th)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Passes(snap, m, th))
	}
}

func TestThresholds_Validate(t *testing.T) {
	require.NoError(t, DefaultThresholds().Validate())

	bad := DefaultThresholds()
	bad.MinMarketCap = -1
	assert.Error(t, bad.Validate())

	bad = DefaultThresholds()
	bad.MinAvgVolume = -1
	assert.Error(t, bad.Validate())
}
