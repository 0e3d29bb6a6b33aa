package kobis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"boxoffice-report/config"
	"boxoffice-report/models"
	"boxoffice-report/scraper/browser"
	"boxoffice-report/scraper/table"
	"boxoffice-report/utils"
)

// RankingCollector reads the daily box-office ranking table.
type RankingCollector struct {
	page     Page
	columns  config.RankingColumns
	limit    int
	recorder RowRecorder
	logger   *utils.Logger
}

// NewRankingCollector creates a RankingCollector from the run config.
func NewRankingCollector(cfg *config.Config, recorder RowRecorder, logger *utils.Logger) *RankingCollector {
	limit := cfg.RankingLimit
	if limit < 1 || limit > config.MaxRankingLimit {
		limit = config.MaxRankingLimit
	}
	return &RankingCollector{
		page: Page{
			URL:         cfg.RankingURL,
			Ready:       browser.ReadyCondition{Selector: cfg.RankingReadySelector},
			RowSelector: cfg.RankingRowSelector,
			Timeout:     cfg.PageLoadTimeout,
		},
		columns:  cfg.RankingColumns,
		limit:    limit,
		recorder: recorder,
		logger:   logger,
	}
}

// Collect returns the top ranking entries in table order. It does not retry:
// any load or extract failure yields no entries and the error.
func (c *RankingCollector) Collect(ctx context.Context, session browser.Session) ([]models.RankingEntry, error) {
	c.logger.Info("[kobis] Loading ranking table")

	if err := session.Load(ctx, c.page.URL, c.page.Ready, c.page.Timeout); err != nil {
		return nil, err
	}
	rows, err := table.Extract(ctx, session, c.page.RowSelector, c.columns.MinColumns())
	if err != nil {
		return nil, fmt.Errorf("ranking: extract: %w", err)
	}
	if c.recorder != nil {
		if err := c.recorder.RecordRows(sourceRanking, rows); err != nil {
			c.logger.Warn("[kobis] Ranking snapshot failed: %v", err)
		}
	}

	entries := c.parse(rows)
	if len(entries) == 0 {
		return nil, ErrEmptyRanking
	}
	c.logger.Info("[kobis] Ranking table: %d entries", len(entries))
	return entries, nil
}

// parse keeps rows with a numeric rank that is higher than the previous one,
// stopping at the first rank past the limit or once the limit is reached.
func (c *RankingCollector) parse(rows []models.RawTableRow) []models.RankingEntry {
	entries := make([]models.RankingEntry, 0, c.limit)
	last := 0

	for _, row := range rows {
		if len(entries) == c.limit {
			break
		}

		rankText := strings.TrimSpace(cell(row, c.columns.Rank))
		rank, err := strconv.Atoi(rankText)
		if err != nil || rank < 1 {
			c.logger.Debug("[kobis] Skipping ranking row with rank %q", rankText)
			continue
		}
		if rank <= last {
			c.logger.Warn("[kobis] Skipping out-of-order rank %d after %d", rank, last)
			continue
		}
		last = rank
		if rank > c.limit {
			break
		}

		entries = append(entries, models.RankingEntry{
			Rank:          rank,
			RawTitle:      strings.TrimSpace(cell(row, c.columns.Title)),
			OpenDate:      strings.TrimSpace(cell(row, c.columns.OpenDate)),
			DailyAudience: strings.TrimSpace(cell(row, c.columns.DailyAudience)),
			TotalAudience: strings.TrimSpace(cell(row, c.columns.TotalAudience)),
		})
	}
	return entries
}
