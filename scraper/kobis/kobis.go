// Package kobis collects the daily box-office ranking and the real-time
// reservation table from the KOBIS statistics pages.
package kobis

import (
	"errors"
	"time"

	"boxoffice-report/models"
	"boxoffice-report/scraper/browser"
)

const (
	sourceRanking     = "ranking"
	sourceReservation = "reservation"
)

var (
	// ErrNoReservationData means the reservation table rendered without a single usable row.
	ErrNoReservationData = errors.New("kobis: no reservation data")
	// ErrEmptyRanking means the ranking table rendered without a single usable row.
	ErrEmptyRanking = errors.New("kobis: empty ranking")
)

// Page describes one source table: where it lives, when it counts as
// rendered, and which rows hold data.
type Page struct {
	URL         string
	Ready       browser.ReadyCondition
	RowSelector string
	Timeout     time.Duration
}

// RowRecorder receives every extracted table, e.g. to snapshot it for
// checking column drift. Errors are logged, never fatal.
type RowRecorder interface {
	RecordRows(source string, rows []models.RawTableRow) error
}

func cell(row models.RawTableRow, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
