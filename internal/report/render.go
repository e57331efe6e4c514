package report

import (
	"github.com/shopspring/decimal"

	"peakscan/internal/scan"
)

// Columns is the fixed report column order shared by every sink
var Columns = []string{
	"Symbol",
	"Sector",
	"CurrentPrice",
	"AllTimeHigh",
	"PctToATH",
	"Week52High",
	"PctTo52w",
	"MarketCap",
	"AvgVolume",
}

// pctToATHColumn is the spreadsheet column letter holding PctToATH,
// referenced by the conditional highlight formula
const pctToATHColumn = "E"

// round2 rounds a pipeline value for presentation. Rounding happens only
// here, at the reporting boundary; the pipeline itself compares exact
// values.
func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// renderRow formats one accepted record as display strings in column order
func renderRow(rec scan.Record) []string {
	return []string{
		rec.Snapshot.Symbol,
		rec.Snapshot.Sector,
		round2(rec.Snapshot.CurrentPrice).StringFixed(2),
		round2(rec.Snapshot.AllTimeHigh).StringFixed(2),
		round2(rec.Metrics.PctToATH).StringFixed(2),
		round2(rec.Snapshot.Week52High).StringFixed(2),
		round2(rec.Metrics.PctTo52w).StringFixed(2),
		round2(rec.Snapshot.MarketCap).StringFixed(2),
		round2(rec.Snapshot.AvgVolume).StringFixed(2),
	}
}

// renderNumericRow formats one accepted record keeping numeric cells
// numeric, for sinks whose formulas need real numbers
func renderNumericRow(rec scan.Record) []interface{} {
	return []interface{}{
		rec.Snapshot.Symbol,
		rec.Snapshot.Sector,
		round2(rec.Snapshot.CurrentPrice).InexactFloat64(),
		round2(rec.Snapshot.AllTimeHigh).InexactFloat64(),
		round2(rec.Metrics.PctToATH).InexactFloat64(),
		round2(rec.Snapshot.Week52High).InexactFloat64(),
		round2(rec.Metrics.PctTo52w).InexactFloat64(),
		round2(rec.Snapshot.MarketCap).InexactFloat64(),
		round2(rec.Snapshot.AvgVolume).InexactFloat64(),
	}
}
