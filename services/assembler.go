package services

import (
	"boxoffice-report/models"
)

// Assembler merges reconciled ranking entries and computed fields into report
// entries. It never sorts or renumbers; ranks pass through as the source gave them.
type Assembler struct {
	fields *FieldComputer
}

// NewAssembler creates an Assembler that labels entries with fields.
func NewAssembler(fields *FieldComputer) *Assembler {
	return &Assembler{fields: fields}
}

// Assemble returns exactly one ReportEntry per ranking entry, in the same
// order. matches must be the Reconcile output for entries; a missing match
// is treated as unmatched.
func (a *Assembler) Assemble(entries []models.RankingEntry, matches []Match) []models.ReportEntry {
	today := a.fields.Today()
	out := make([]models.ReportEntry, 0, len(entries))

	for i, e := range entries {
		reserved, method := NoReservation, models.MatchNone
		if i < len(matches) {
			reserved, method = matches[i].ReservedCount, matches[i].Method
		}
		if reserved == "" {
			reserved = NoReservation
		}

		out = append(out, models.ReportEntry{
			Rank:          e.Rank,
			Title:         DisplayTitle(e.RawTitle),
			RawTitle:      e.RawTitle,
			OpenDate:      e.OpenDate,
			DDayLabel:     ComputeDDay(e.OpenDate, today),
			DailyAudience: e.DailyAudience,
			TotalAudience: e.TotalAudience,
			ReservedCount: reserved,
			MatchMethod:   method,
		})
	}
	return out
}
