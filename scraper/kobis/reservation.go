package kobis

import (
	"context"
	"fmt"
	"strings"

	"boxoffice-report/config"
	"boxoffice-report/models"
	"boxoffice-report/scraper/browser"
	"boxoffice-report/scraper/table"
	"boxoffice-report/services"
	"boxoffice-report/utils"
)

// ReservationCollector reads the real-time reservation table into a
// normalized-title -> reserved-count mapping.
type ReservationCollector struct {
	page     Page
	columns  config.ReservationColumns
	retry    *utils.RetryConfig
	recorder RowRecorder
	logger   *utils.Logger
}

// NewReservationCollector creates a ReservationCollector from the run config.
func NewReservationCollector(cfg *config.Config, recorder RowRecorder, logger *utils.Logger) *ReservationCollector {
	return &ReservationCollector{
		page: Page{
			URL:         cfg.ReservationURL,
			Ready:       browser.ReadyCondition{Selector: cfg.ReservationReady},
			RowSelector: cfg.ReservationRowSelector,
			Timeout:     cfg.PageLoadTimeout,
		},
		columns: cfg.ReservationColumns,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.ReservationMaxAttempts,
			Delay:       cfg.ReservationRetryDelay,
			Logger:      logger,
		},
		recorder: recorder,
		logger:   logger,
	}
}

// Collect loads and parses the reservation page, retrying the whole
// load-and-extract sequence when it fails or yields an empty mapping (the page
// sometimes renders a stale, empty table first). When every attempt comes up
// empty it returns an empty mapping together with the last error; callers go on
// without reservation data.
func (c *ReservationCollector) Collect(ctx context.Context, session browser.Session) (*models.Reservations, error) {
	result := models.NewReservations()

	err := c.retry.Do(ctx, "reservation-fetch", func(attempt int) error {
		c.logger.Info("[kobis] Loading reservation table (attempt %d/%d)", attempt, c.retry.MaxAttempts)

		res, err := c.fetch(ctx, session)
		if err != nil {
			return err
		}
		if res.Len() == 0 {
			return ErrNoReservationData
		}
		result = res
		return nil
	})
	if err != nil {
		return models.NewReservations(), err
	}

	c.logger.Info("[kobis] Reservation table: %d titles", result.Len())
	return result, nil
}

func (c *ReservationCollector) fetch(ctx context.Context, session browser.Session) (*models.Reservations, error) {
	if err := session.Load(ctx, c.page.URL, c.page.Ready, c.page.Timeout); err != nil {
		return nil, err
	}

	rows, err := table.Extract(ctx, session, c.page.RowSelector, c.columns.MinColumns())
	if err != nil {
		return nil, fmt.Errorf("reservation: extract: %w", err)
	}
	if c.recorder != nil {
		if err := c.recorder.RecordRows(sourceReservation, rows); err != nil {
			c.logger.Warn("[kobis] Reservation snapshot failed: %v", err)
		}
	}

	res := models.NewReservations()
	for _, row := range rows {
		key := services.NormalizeTitle(cell(row, c.columns.Title))
		if key == "" {
			c.logger.Debug("[kobis] Reservation row without usable title: %q", cell(row, c.columns.Title))
			continue
		}
		res.Set(key, strings.TrimSpace(cell(row, c.columns.Reserved)))
	}
	return res, nil
}
