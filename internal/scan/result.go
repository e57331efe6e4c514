package scan

import (
	"time"

	"peakscan/internal/quote"
	"peakscan/internal/screen"
)

// State is the terminal classification of one symbol occurrence
type State string

const (
	StateAccepted State = "accepted"
	StateRejected State = "rejected"
	StateAbsent   State = "absent"
)

// Record pairs a snapshot with its derived metrics
type Record struct {
	Snapshot quote.Snapshot
	Metrics  screen.Metrics
}

// Result is the outcome of one scan run. Records are appended in
// completion order — consumers must treat their order as arbitrary.
// Once Run returns, the result is frozen; nothing mutates it afterwards.
type Result struct {
	Records    []Record
	Timestamp  time.Time
	Thresholds screen.Thresholds

	Attempted int
	Succeeded int
	Accepted  int
	Rejected  int
}

// Symbols returns the accepted symbols in record order
func (r *Result) Symbols() []string {
	symbols := make([]string, 0, len(r.Records))
	for _, rec := range r.Records {
		symbols = append(symbols, rec.Snapshot.Symbol)
	}
	return symbols
}
