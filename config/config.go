package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const (
	defaultRankingURL     = "https://www.kobis.or.kr/kobis/business/stat/boxs/findDailyBoxOfficeList.do"
	defaultReservationURL = "https://www.kobis.or.kr/kobis/business/stat/boxs/findRealTicketList.do"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MaxRankingLimit is the largest number of ranks a report carries.
	MaxRankingLimit = 10
)

// RankingColumns is the positional layout of the ranking table. The upstream
// site has moved the audience columns between revisions, so every index lives here.
type RankingColumns struct {
	Rank          int
	Title         int
	OpenDate      int
	DailyAudience int
	TotalAudience int
}

// MinColumns is the smallest cell count a row needs to be read with this layout.
func (c RankingColumns) MinColumns() int {
	return maxIndex(c.Rank, c.Title, c.OpenDate, c.DailyAudience, c.TotalAudience) + 1
}

// ReservationColumns is the positional layout of the reservation table.
type ReservationColumns struct {
	Title    int
	Reserved int
}

// MinColumns is the smallest cell count a row needs to be read with this layout.
func (c ReservationColumns) MinColumns() int {
	return maxIndex(c.Title, c.Reserved) + 1
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	RankingURL             string
	RankingRowSelector     string
	RankingReadySelector   string
	RankingColumns         RankingColumns
	RankingLimit           int
	ReservationURL         string
	ReservationRowSelector string
	ReservationReady       string
	ReservationColumns     ReservationColumns

	ReservationMaxAttempts int
	ReservationRetryDelay  time.Duration
	PageLoadTimeout        time.Duration
	PageSettleDelay        time.Duration

	TimeZone       string
	FuzzyThreshold float64

	TelegramToken  string
	ChatID         string
	TelegramAPIURL string

	ChromeBin string
	Headless  bool
	UserAgent string

	SnapshotDir string
	Debug       bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		RankingURL:           getEnv("KOBIS_RANKING_URL", defaultRankingURL),
		RankingRowSelector:   getEnv("RANKING_ROW_SELECTOR", "#tbody_0 tr"),
		RankingReadySelector: getEnv("RANKING_READY_SELECTOR", "#tbody_0 tr td"),
		RankingColumns: RankingColumns{
			Rank:          getEnvInt("RANKING_COL_RANK", 0),
			Title:         getEnvInt("RANKING_COL_TITLE", 1),
			OpenDate:      getEnvInt("RANKING_COL_OPEN_DATE", 2),
			DailyAudience: getEnvInt("RANKING_COL_DAILY", 7),
			TotalAudience: getEnvInt("RANKING_COL_TOTAL", 9),
		},
		RankingLimit: getEnvInt("RANKING_LIMIT", MaxRankingLimit),

		ReservationURL:         getEnv("KOBIS_RESERVATION_URL", defaultReservationURL),
		ReservationRowSelector: getEnv("RESERVATION_ROW_SELECTOR", "table.tbl_comm tbody tr"),
		ReservationReady:       getEnv("RESERVATION_READY_SELECTOR", "table.tbl_comm tbody tr td"),
		ReservationColumns: ReservationColumns{
			Title:    getEnvInt("RESERVATION_COL_TITLE", 1),
			Reserved: getEnvInt("RESERVATION_COL_COUNT", 6),
		},

		ReservationMaxAttempts: getEnvInt("RESERVATION_MAX_ATTEMPTS", 3),
		ReservationRetryDelay:  getEnvDuration("RESERVATION_RETRY_DELAY_MS", time.Millisecond, 5*time.Second),
		PageLoadTimeout:        getEnvDuration("PAGE_LOAD_TIMEOUT_SEC", time.Second, 60*time.Second),
		PageSettleDelay:        getEnvDuration("PAGE_SETTLE_MS", time.Millisecond, 10*time.Second),

		TimeZone:       getEnv("REPORT_TIMEZONE", "Asia/Seoul"),
		FuzzyThreshold: getEnvFloat("FUZZY_MATCH_THRESHOLD", 0),

		TelegramToken:  getEnv("TELEGRAM_TOKEN", ""),
		ChatID:         getEnv("CHAT_ID", ""),
		TelegramAPIURL: getEnv("TELEGRAM_API_URL", "https://api.telegram.org"),

		ChromeBin: getEnv("CHROME_BIN", ""),
		Headless:  getEnvBool("HEADLESS", true),
		UserAgent: getEnv("USER_AGENT", defaultUserAgent),

		SnapshotDir: getEnv("SNAPSHOT_DIR", ""),
		Debug:       getEnvBool("LOG_DEBUG", false),
	}
}

// Validate reports every setting that would make a run meaningless.
func (c *Config) Validate() error {
	var errs []error

	for name, raw := range map[string]string{
		"KOBIS_RANKING_URL":     c.RankingURL,
		"KOBIS_RESERVATION_URL": c.ReservationURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("%s: invalid url %q", name, raw))
		}
	}

	if strings.TrimSpace(c.RankingRowSelector) == "" || strings.TrimSpace(c.ReservationRowSelector) == "" {
		errs = append(errs, errors.New("row selectors must not be empty"))
	}

	rc := c.RankingColumns
	for _, idx := range []int{rc.Rank, rc.Title, rc.OpenDate, rc.DailyAudience, rc.TotalAudience} {
		if idx < 0 {
			errs = append(errs, fmt.Errorf("ranking column index %d is negative", idx))
		}
	}
	if c.ReservationColumns.Title < 0 || c.ReservationColumns.Reserved < 0 {
		errs = append(errs, errors.New("reservation column indices must not be negative"))
	}

	if c.RankingLimit < 1 || c.RankingLimit > MaxRankingLimit {
		errs = append(errs, fmt.Errorf("RANKING_LIMIT must be within 1..%d, got %d", MaxRankingLimit, c.RankingLimit))
	}
	if c.ReservationMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("RESERVATION_MAX_ATTEMPTS must be at least 1, got %d", c.ReservationMaxAttempts))
	}
	if c.PageLoadTimeout <= 0 {
		errs = append(errs, errors.New("PAGE_LOAD_TIMEOUT_SEC must be positive"))
	}
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		errs = append(errs, fmt.Errorf("FUZZY_MATCH_THRESHOLD must be within 0..1, got %v", c.FuzzyThreshold))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Location resolves the time zone used for report dates.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("REPORT_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration reads an integer count of unit.
func getEnvDuration(key string, unit, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil && n >= 0 {
			return time.Duration(n) * unit
		}
	}
	return fallback
}

func maxIndex(first int, rest ...int) int {
	m := first
	for _, v := range rest {
		if v > m {
			m = v
		}
	}
	return m
}
