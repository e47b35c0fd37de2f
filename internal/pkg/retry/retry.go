package retry

import (
	"context"
	"log/slog"
	"time"
)

// Do runs fn up to maxAttempts times, sleeping delay between attempts. It
// returns nil on the first success, the last error once attempts are
// exhausted, and the context error as soon as ctx is done.
func Do(ctx context.Context, maxAttempts int, delay time.Duration, fn func(ctx context.Context) error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt < maxAttempts {
			slog.Warn("Retrying after failure", "attempt", attempt, "max_attempts", maxAttempts, "error", lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return lastErr
}
