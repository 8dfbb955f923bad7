package mockapi

import (
	"context"
	"time"
)

// Baseline latencies per operation class, mirroring a slow-ish REST backend.
// Scaled by Options.LatencyScale; a zero scale disables the delay entirely.
const (
	latencyList     = 600 * time.Millisecond
	latencyScoped   = 400 * time.Millisecond
	latencyGet      = 300 * time.Millisecond
	latencyCreate   = 800 * time.Millisecond
	latencyUpdate   = 600 * time.Millisecond
	latencyDelete   = 500 * time.Millisecond
	latencyLogin    = 800 * time.Millisecond
	latencyRegister = time.Second
	latencyWhoami   = 500 * time.Millisecond
)

// simulate blocks for the scaled latency, or until the context is done.
func (r *Repository) simulate(ctx context.Context, d time.Duration) error {
	d = time.Duration(float64(d) * r.opts.LatencyScale)
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
