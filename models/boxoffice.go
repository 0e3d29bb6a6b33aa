package models

import "time"

// RawTableRow is the text of each rendered cell of one table row, in document
// order. It carries no typing yet.
type RawTableRow []string

// RankingEntry is one row of the daily box-office ranking table.
type RankingEntry struct {
	Rank          int
	RawTitle      string
	OpenDate      string
	DailyAudience string
	TotalAudience string
}

// MatchMethod records which reconciliation tier resolved a reservation count.
type MatchMethod string

const (
	MatchExact    MatchMethod = "exact"
	MatchContains MatchMethod = "contains"
	MatchFuzzy    MatchMethod = "fuzzy"
	MatchNone     MatchMethod = "none"
)

// ReportEntry is the final merged unit handed to the renderer.
// ReservedCount and DDayLabel are always populated.
type ReportEntry struct {
	Rank          int
	Title         string
	RawTitle      string
	OpenDate      string
	DDayLabel     string
	DailyAudience string
	TotalAudience string
	ReservedCount string
	MatchMethod   MatchMethod
}

// Report is one run's ordered box-office report.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Source      string
	Entries     []ReportEntry
}
