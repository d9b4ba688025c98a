// Command chancellor runs a headless play session: one simulated month per
// turn until the turn limit or a terminal condition.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"chancellor/internal/api"
	"chancellor/internal/config"
	"chancellor/internal/engine"
	"chancellor/internal/persistence"
	"chancellor/internal/state"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	interval := flag.Duration("interval", 0, "pause between turns (0 = run flat out)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ss := engine.NewSession(cfg.Seed, state.Difficulty(cfg.Difficulty), cfg.FiscalRule)
	if err := db.CreateSession(ss.ID, ss.Seed, ss.State.Difficulty, cfg.FiscalRule); err != nil {
		slog.Error("failed to register session", "error", err)
		os.Exit(1)
	}

	slog.Info("session started",
		"id", ss.ID,
		"seed", cfg.Seed,
		"difficulty", cfg.Difficulty,
		"rule", cfg.FiscalRule,
		"months", cfg.Months,
	)

	if cfg.APIPort > 0 {
		srv := &api.Server{Session: ss, DB: db, Port: cfg.APIPort}
		srv.Start()
	}

	for turn := 1; cfg.Months == 0 || turn <= cfg.Months; turn++ {
		_, over := ss.AdvanceTurn()
		db.SaveSession(ss)
		if over {
			slog.Info("session over", "turn", ss.State.Turn, "reason", ss.State.OverReason)
			break
		}
		if *interval > 0 {
			time.Sleep(*interval)
		}
	}

	if !ss.State.Over {
		slog.Info("session survived to the turn limit",
			"turn", ss.State.Turn,
			"approval", ss.State.Politics.Approval,
			"debt_pct", ss.State.Fiscal.DebtPctGDP,
		)
	}
}
