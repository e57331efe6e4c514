package screen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeThresholds(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadThresholds(t *testing.T) {
	path := writeThresholds(t, "min_market_cap: 750000000\nmin_avg_volume: 2000000\nmax_pct_to_high: 0.03\n")

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, 750e6, th.MinMarketCap)
	assert.Equal(t, 2e6, th.MinAvgVolume)
	assert.Equal(t, 0.03, th.MaxPctToHigh)
}

func TestLoadThresholds_PartialFileKeepsDefaults(t *testing.T) {
	path := writeThresholds(t, "max_pct_to_high: 0.10\n")

	th, err := LoadThresholds(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinMarketCap, th.MinMarketCap)
	assert.Equal(t, DefaultMinAvgVolume, th.MinAvgVolume)
	assert.Equal(t, 0.10, th.MaxPctToHigh)
}

func TestLoadThresholds_UnknownFieldFails(t *testing.T) {
	path := writeThresholds(t, "min_market_cap: 1\nmin_markt_cap_typo: 2\n")

	_, err := LoadThresholds(path)
	assert.Error(t, err)
}

func TestLoadThresholds_InvalidValueFails(t *testing.T) {
	path := writeThresholds(t, "min_market_cap: -5\n")

	_, err := LoadThresholds(path)
	assert.Error(t, err)
}

func TestLoadThresholds_MissingFile(t *testing.T) {
	_, err := LoadThresholds(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
