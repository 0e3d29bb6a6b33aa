package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := fromEnv()

	if got := cfg.RankingColumns.MinColumns(); got != 10 {
		t.Errorf("ranking MinColumns: got %d, want 10", got)
	}
	if got := cfg.ReservationColumns.MinColumns(); got != 7 {
		t.Errorf("reservation MinColumns: got %d, want 7", got)
	}
	if cfg.RankingColumns.DailyAudience != 7 || cfg.RankingColumns.TotalAudience != 9 {
		t.Errorf("audience columns: got %d/%d, want 7/9",
			cfg.RankingColumns.DailyAudience, cfg.RankingColumns.TotalAudience)
	}
	if cfg.ReservationMaxAttempts != 3 {
		t.Errorf("ReservationMaxAttempts: got %d, want 3", cfg.ReservationMaxAttempts)
	}
	if cfg.TimeZone != "Asia/Seoul" {
		t.Errorf("TimeZone: got %q", cfg.TimeZone)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RANKING_COL_DAILY", "8")
	t.Setenv("RANKING_COL_TOTAL", "10")
	t.Setenv("RESERVATION_RETRY_DELAY_MS", "250")
	t.Setenv("PAGE_LOAD_TIMEOUT_SEC", "5")
	t.Setenv("HEADLESS", "false")
	t.Setenv("FUZZY_MATCH_THRESHOLD", "0.9")

	cfg := fromEnv()

	if got := cfg.RankingColumns.MinColumns(); got != 11 {
		t.Errorf("MinColumns after drift: got %d, want 11", got)
	}
	if cfg.ReservationRetryDelay != 250*time.Millisecond {
		t.Errorf("ReservationRetryDelay: got %v", cfg.ReservationRetryDelay)
	}
	if cfg.PageLoadTimeout != 5*time.Second {
		t.Errorf("PageLoadTimeout: got %v", cfg.PageLoadTimeout)
	}
	if cfg.Headless {
		t.Errorf("Headless should be false")
	}
	if cfg.FuzzyThreshold != 0.9 {
		t.Errorf("FuzzyThreshold: got %v", cfg.FuzzyThreshold)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RANKING_LIMIT", "ten")
	t.Setenv("PAGE_SETTLE_MS", "-5")

	cfg := fromEnv()
	if cfg.RankingLimit != MaxRankingLimit {
		t.Errorf("RankingLimit: got %d, want %d", cfg.RankingLimit, MaxRankingLimit)
	}
	if cfg.PageSettleDelay != 10*time.Second {
		t.Errorf("PageSettleDelay: got %v", cfg.PageSettleDelay)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	cfg := fromEnv()
	cfg.RankingURL = "not a url"
	cfg.RankingLimit = 11
	cfg.ReservationMaxAttempts = 0
	cfg.TimeZone = "Mars/Olympus"
	cfg.RankingColumns.DailyAudience = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"KOBIS_RANKING_URL", "RANKING_LIMIT", "RESERVATION_MAX_ATTEMPTS", "REPORT_TIMEZONE", "negative"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}
