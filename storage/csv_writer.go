package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"boxoffice-report/models"
)

// CSVSnapshotWriter dumps every extracted table to its own CSV file so the
// rendered column layout can be compared against the configured one.
// Files are named <date>_<runID>_<source>[_<n>].csv; repeated loads of the same
// source (retries) get an increasing suffix instead of overwriting.
type CSVSnapshotWriter struct {
	mu    sync.Mutex
	dir   string
	runID string
	stamp string
	seen  map[string]int
	paths []string
}

// NewCSVSnapshotWriter creates dir if needed and returns a writer for one run.
func NewCSVSnapshotWriter(dir, runID string, startedAt time.Time) (*CSVSnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create snapshot dir: %w", err)
	}
	return &CSVSnapshotWriter{
		dir:   dir,
		runID: runID,
		stamp: startedAt.Format("20060102-150405"),
		seen:  make(map[string]int),
	}, nil
}

// RecordRows writes rows for source. The first column is the row's position in
// the extracted table; the remaining columns are the raw cells, one per column.
func (c *CSVSnapshotWriter) RecordRows(source string, rows []models.RawTableRow) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seen[source]++
	name := fmt.Sprintf("%s_%s_%s", c.stamp, c.runID, source)
	if n := c.seen[source]; n > 1 {
		name += "_" + strconv.Itoa(n)
	}
	path := filepath.Join(c.dir, name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	header := make([]string, 0, width+1)
	header = append(header, "row")
	for i := 0; i < width; i++ {
		header = append(header, "col"+strconv.Itoa(i))
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for i, r := range rows {
		record := make([]string, 0, len(r)+1)
		record = append(record, strconv.Itoa(i))
		record = append(record, r...)
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csv: flush %q: %w", path, err)
	}
	c.paths = append(c.paths, path)
	return nil
}

// Paths lists the files written so far.
func (c *CSVSnapshotWriter) Paths() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.paths...)
}
