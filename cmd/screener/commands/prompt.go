package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"peakscan/internal/screen"
	"peakscan/pkg/logger"
)

// promptThresholds collects threshold overrides from stdin. Empty input
// keeps the current value; invalid numeric input falls back to it with a
// logged warning instead of aborting.
func promptThresholds(th screen.Thresholds, log *logger.Logger) screen.Thresholds {
	reader := bufio.NewReader(os.Stdin)

	th.MinMarketCap = promptFloat(reader, "Minimum market cap", th.MinMarketCap, log)
	th.MinAvgVolume = promptFloat(reader, "Minimum average volume", th.MinAvgVolume, log)
	th.MaxPctToHigh = promptFloat(reader, "Maximum pct to high", th.MaxPctToHigh, log)

	return th
}

// promptFloat asks for one value, keeping def on blank or bad input
func promptFloat(reader *bufio.Reader, label string, def float64, log *logger.Logger) float64 {
	fmt.Printf("%s [%s]: ", label, strconv.FormatFloat(def, 'f', -1, 64))

	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		log.WithError(err).Warn("Failed to read input, keeping default")
		return def
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}

	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		log.Warnf("Invalid number %q, keeping default %v", line, def)
		return def
	}

	return value
}
