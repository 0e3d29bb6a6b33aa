// Package pipeline runs one extraction-and-reconciliation pass: reservations,
// then ranking, then reconcile, then assemble.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"boxoffice-report/config"
	"boxoffice-report/models"
	"boxoffice-report/scraper/browser"
	"boxoffice-report/scraper/kobis"
	"boxoffice-report/services"
	"boxoffice-report/utils"
)

// ErrEmptyRanking means the run produced nothing worth reporting. No report is
// returned and nothing should be dispatched.
var ErrEmptyRanking = kobis.ErrEmptyRanking

// ReservationSource yields the reservation mapping for a run.
type ReservationSource interface {
	Collect(ctx context.Context, session browser.Session) (*models.Reservations, error)
}

// RankingSource yields the ranking entries for a run.
type RankingSource interface {
	Collect(ctx context.Context, session browser.Session) ([]models.RankingEntry, error)
}

// Pipeline wires the collectors and services for a single run. It borrows the
// session; opening and closing it is the caller's job.
type Pipeline struct {
	Reservations ReservationSource
	Ranking      RankingSource
	Reconciler   *services.Reconciler
	Fields       *services.FieldComputer
	Assembler    *services.Assembler
	Source       string
	RunID        string
	logger       *utils.Logger
}

// New builds a Pipeline for the run identified by runID. recorder may be nil.
func New(cfg *config.Config, runID string, fields *services.FieldComputer, recorder kobis.RowRecorder, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		Reservations: kobis.NewReservationCollector(cfg, recorder, logger),
		Ranking:      kobis.NewRankingCollector(cfg, recorder, logger),
		Reconciler:   services.NewReconciler(cfg.FuzzyThreshold, logger),
		Fields:       fields,
		Assembler:    services.NewAssembler(fields),
		Source:       "KOBIS",
		RunID:        runID,
		logger:       logger,
	}
}

// Run executes the stages strictly in order on session. Reservation failures
// degrade to an empty mapping; a ranking failure ends the run with
// ErrEmptyRanking (wrapping the cause, if any).
func (p *Pipeline) Run(ctx context.Context, session browser.Session) (*models.Report, error) {
	p.logger.Info("[pipeline] Run %s starting", p.RunID)

	reservations, err := p.Reservations.Collect(ctx, session)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		p.logger.Warn("[pipeline] No reservation data, every entry falls back to %q: %v", services.NoReservation, err)
		reservations = models.NewReservations()
	}

	entries, err := p.Ranking.Collect(ctx, session)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, ErrEmptyRanking) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrEmptyRanking, err)
	}
	if len(entries) == 0 {
		return nil, ErrEmptyRanking
	}

	matches := p.Reconciler.Reconcile(entries, reservations)
	report := &models.Report{
		RunID:       p.RunID,
		GeneratedAt: p.Fields.Today(),
		Source:      p.Source,
		Entries:     p.Assembler.Assemble(entries, matches),
	}

	counts := make(map[models.MatchMethod]int)
	for _, e := range report.Entries {
		counts[e.MatchMethod]++
	}
	p.logger.Info("[pipeline] Run %s assembled %d entries (exact %d, contains %d, fuzzy %d, none %d)",
		p.RunID, len(report.Entries),
		counts[models.MatchExact], counts[models.MatchContains], counts[models.MatchFuzzy], counts[models.MatchNone])

	return report, nil
}
