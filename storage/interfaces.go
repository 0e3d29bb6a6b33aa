package storage

import "boxoffice-report/models"

// RowSnapshotWriter persists raw extracted table rows for later inspection.
type RowSnapshotWriter interface {
	RecordRows(source string, rows []models.RawTableRow) error
	Paths() []string
}

var _ RowSnapshotWriter = (*CSVSnapshotWriter)(nil)
