package utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

var errFlaky = errors.New("flaky")

func TestRetryStopsOnSuccess(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Logger: Discard()}

	calls := 0
	err := r.Do(context.Background(), "op", func(attempt int) error {
		calls++
		if attempt < 2 {
			return errFlaky
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls: got %d, want 2", calls)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, Logger: Discard()}

	calls := 0
	err := r.Do(context.Background(), "op", func(int) error {
		calls++
		return errFlaky
	})
	if !errors.Is(err, errFlaky) {
		t.Fatalf("want wrapped errFlaky, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryZeroAttemptsRunsOnce(t *testing.T) {
	r := &RetryConfig{}
	calls := 0
	_ = r.Do(context.Background(), "op", func(int) error {
		calls++
		return errFlaky
	})
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestRetryWaitsBetweenAttempts(t *testing.T) {
	delay := 30 * time.Millisecond
	r := &RetryConfig{MaxAttempts: 3, Delay: delay, Logger: Discard()}

	var stamps []time.Time
	_ = r.Do(context.Background(), "op", func(int) error {
		stamps = append(stamps, time.Now())
		return errFlaky
	})

	for i := 1; i < len(stamps); i++ {
		if gap := stamps[i].Sub(stamps[i-1]); gap < delay {
			t.Errorf("gap between attempt %d and %d: %v < %v", i, i+1, gap, delay)
		}
	}
}

func TestRetryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := &RetryConfig{MaxAttempts: 5, Delay: time.Hour, Logger: Discard()}

	calls := 0
	err := r.Do(ctx, "op", func(int) error {
		calls++
		cancel()
		return errFlaky
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestRetryGrowsDelayWithMultiplier(t *testing.T) {
	var out bytes.Buffer
	r := &RetryConfig{MaxAttempts: 3, Delay: 10 * time.Millisecond, Multiplier: 3, Logger: NewLoggerTo(&out, &out, false)}

	var stamps []time.Time
	_ = r.Do(context.Background(), "op", func(int) error {
		stamps = append(stamps, time.Now())
		return errFlaky
	})

	for _, want := range []string{"retrying in 10ms", "retrying in 30ms"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("log should contain %q: %q", want, out.String())
		}
	}
	if len(stamps) != 3 {
		t.Fatalf("calls: got %d, want 3", len(stamps))
	}
	if gap := stamps[2].Sub(stamps[1]); gap < 30*time.Millisecond {
		t.Errorf("second wait %v should have grown to 30ms", gap)
	}
}
