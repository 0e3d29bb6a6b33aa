package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"boxoffice-report/config"
	"boxoffice-report/notify"
	"boxoffice-report/pipeline"
	"boxoffice-report/scraper/browser"
	"boxoffice-report/scraper/kobis"
	"boxoffice-report/services"
	"boxoffice-report/storage"
	"boxoffice-report/utils"
)

type flags struct {
	dryRun      bool
	verbose     bool
	snapshotDir string
}

func main() {
	var f flags

	rootCmd := &cobra.Command{
		Use:           "boxoffice-report",
		Short:         "Collect the KOBIS daily box office and reservations and send a ranked report",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}
	rootCmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the report instead of sending it")
	rootCmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVar(&f.snapshotDir, "snapshot-dir", "", "write raw table rows as CSV into this directory (overrides SNAPSHOT_DIR)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	cfg := config.Load()
	if f.snapshotDir != "" {
		cfg.SnapshotDir = f.snapshotDir
	}
	logger := utils.NewLogger(f.verbose || cfg.Debug)

	logger.Info("=== Box office report starting ===")
	logger.Info("Config - ranking cols: %+v | reservation cols: %+v | attempts: %d | timeout: %v | zone: %s",
		cfg.RankingColumns, cfg.ReservationColumns, cfg.ReservationMaxAttempts, cfg.PageLoadTimeout, cfg.TimeZone)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	var dispatcher notify.Dispatcher
	if !f.dryRun {
		tg, err := notify.NewTelegram(cfg.TelegramAPIURL, cfg.TelegramToken, cfg.ChatID)
		if err != nil {
			return err
		}
		dispatcher = tg
	}

	fields := services.NewFieldComputer(loc, time.Now)
	runID := uuid.NewString()

	var recorder kobis.RowRecorder
	if cfg.SnapshotDir != "" {
		var snapshots storage.RowSnapshotWriter
		snapshots, err = storage.NewCSVSnapshotWriter(cfg.SnapshotDir, runID, fields.Today())
		if err != nil {
			return err
		}
		recorder = snapshots
		defer func() {
			for _, path := range snapshots.Paths() {
				logger.Info("Raw rows saved to %s", path)
			}
		}()
	}

	p := pipeline.New(cfg, runID, fields, recorder, logger)

	session, err := browser.NewChromeSession(ctx, browser.Options{
		ChromeBin:   cfg.ChromeBin,
		Headless:    cfg.Headless,
		UserAgent:   cfg.UserAgent,
		SettleDelay: cfg.PageSettleDelay,
	}, logger)
	if err != nil {
		return err
	}
	defer session.Close()

	report, err := p.Run(ctx, session)
	if errors.Is(err, pipeline.ErrEmptyRanking) {
		logger.Error("No ranking data collected - nothing to report: %v", err)
		return nil
	}
	if err != nil {
		return err
	}

	// Release the browser before the network call; Close is idempotent.
	session.Close()

	text := services.RenderText(report)
	if f.dryRun {
		services.PrintTable(os.Stdout, report)
		fmt.Println(text)
		return nil
	}

	if err := dispatcher.Send(ctx, text); err != nil {
		return fmt.Errorf("dispatch report: %w", err)
	}
	logger.Info("Report with %d entries sent (run %s)", len(report.Entries), report.RunID)
	return nil
}
