package quote

import "context"

// Fetcher retrieves a point-in-time snapshot for a symbol.
//
// Fetch is a total function: any transport, parsing, or missing-field
// condition is absorbed and reported as (nil, false) — "absent". It never
// returns an error to the caller and makes exactly one attempt; retry
// policy, pacing, and timeouts belong to the orchestrator via ctx.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (*Snapshot, bool)
	Name() string
}
