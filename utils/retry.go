package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds the parameters for a bounded retry loop.
// Delay is the pause between attempts; Multiplier > 1 grows it after each
// failure, anything else keeps it fixed.
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
	Multiplier  float64
	Logger      *Logger
}

// Do runs fn until it returns nil or MaxAttempts is reached. fn receives the
// 1-based attempt number. The wait between attempts is cut short when ctx is
// done, in which case ctx's error is returned.
func (r *RetryConfig) Do(ctx context.Context, operationName string, fn func(attempt int) error) error {
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := r.Delay

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(attempt)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		if r.Logger != nil {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v - retrying in %v",
				operationName, attempt, attempts, lastErr, delay)
		}
		if err := Sleep(ctx, delay); err != nil {
			return err
		}
		if r.Multiplier > 1 {
			delay = time.Duration(float64(delay) * r.Multiplier)
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, attempts, lastErr)
}

// Sleep pauses for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
