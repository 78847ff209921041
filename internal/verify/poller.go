package verify

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotReady indicates the readiness bound was exhausted.
var ErrNotReady = errors.New("database did not become ready")

// Probe checks once whether the service inside the container accepts
// requests. A nil error means ready.
type Probe func(ctx context.Context) error

// PollConfig controls the readiness poll. No backoff: the interval
// between attempts is fixed.
type PollConfig struct {
	// Attempts is the maximum number of probe invocations.
	Attempts int

	// Interval is the fixed sleep between failed probes.
	Interval time.Duration
}

// WaitReady invokes probe until it succeeds or the attempt bound is
// exhausted, sleeping cfg.Interval between failures. It stops
// immediately on the first success and returns the number of attempts
// made. Context cancellation aborts the wait.
func WaitReady(ctx context.Context, probe Probe, cfg PollConfig) (int, error) {
	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		if err := probe(ctx); err == nil {
			return attempt, nil
		} else {
			lastErr = err
		}

		if attempt < cfg.Attempts {
			select {
			case <-ctx.Done():
				return attempt, ctx.Err()
			case <-time.After(cfg.Interval):
			}
		}
	}

	return cfg.Attempts, fmt.Errorf("%w after %d attempts: %v", ErrNotReady, cfg.Attempts, lastErr)
}
