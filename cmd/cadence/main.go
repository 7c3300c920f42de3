package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evanmoray/cadence/internal/audit"
	"github.com/evanmoray/cadence/internal/calendar"
	"github.com/evanmoray/cadence/internal/cli"
	"github.com/evanmoray/cadence/internal/db"
	"github.com/evanmoray/cadence/internal/planner"
	"github.com/evanmoray/cadence/internal/repository"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.cadence/cadence.db
	dbPath := os.Getenv("CADENCE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".cadence", "cadence.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	checkInRepo := repository.NewSQLiteCheckInRepo(database)
	waveRepo := repository.NewSQLiteWaveRepo(database)
	prefsRepo := repository.NewSQLitePreferencesRepo(database)
	suggestionRepo := repository.NewSQLiteSuggestionRepo(database)
	stateRepo := repository.NewSQLitePlannerStateRepo(database)
	auditRepo := repository.NewSQLiteAuditRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	// The audit trail always lands in SQLite; structured log output is
	// opt-in for debugging.
	var sink audit.Sink = auditRepo
	if v := os.Getenv("CADENCE_AUDIT_LOG"); v == "1" || v == "true" {
		sink = audit.MultiSink{auditRepo, audit.NewLogSink(os.Stderr)}
	}

	// Wire the calendar gateway (only when enabled); the planner degrades
	// to proposal-only suggestions without it.
	var gateway calendar.Gateway
	calCfg := calendar.LoadConfig()
	if calCfg.Enabled {
		var observer calendar.Observer = calendar.NoopObserver{}
		if calCfg.LogCalls {
			observer = calendar.NewLogObserver(os.Stderr)
		}
		gateway = calendar.NewRESTGateway(calCfg, observer)
		if !gateway.Available(context.Background()) {
			fmt.Fprintln(os.Stderr,
				"Warning: calendar service unreachable; suggestions stay proposals until it returns.")
		}
	}

	plannerSvc := planner.NewPlannerService(
		checkInRepo, prefsRepo, suggestionRepo, stateRepo,
		uow, gateway, sink, nil,
	)

	app := &cli.App{
		Planner:  plannerSvc,
		CheckIns: planner.NewCheckInService(checkInRepo, plannerSvc),
		Waves:    planner.NewWaveService(waveRepo),
		Prefs:    prefsRepo,
		Audit:    auditRepo,
	}

	// Detect interactive terminal for confirmation prompts.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
