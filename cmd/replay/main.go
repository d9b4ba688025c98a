// Command replay re-runs a stored session from its seed and compares the
// regenerated history against the persisted snapshots. Any divergence
// means a determinism bug.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"chancellor/internal/engine"
	"chancellor/internal/persistence"
	"chancellor/internal/state"
)

func main() {
	dbPath := flag.String("db", "data/chancellor.db", "path to the session database")
	sessionID := flag.String("session", "", "session id (default: most recent)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	db, err := persistence.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	var info persistence.SessionInfo
	if *sessionID != "" {
		info, err = db.Session(*sessionID)
	} else {
		info, err = db.LatestSession()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load session: %v\n", err)
		os.Exit(1)
	}

	stored, err := db.Snapshots(info.ID)
	if err != nil || len(stored) == 0 {
		fmt.Fprintf(os.Stderr, "no snapshots for session %s\n", info.ID)
		os.Exit(1)
	}

	ss := engine.NewSession(info.Seed, state.Difficulty(info.Difficulty), info.FiscalRule)
	diverged := 0
	for i := 0; i < len(stored); i++ {
		_, over := ss.AdvanceTurn()
		replayed := ss.State.History[len(ss.State.History)-1]
		if !match(replayed, stored[i]) {
			diverged++
			fmt.Printf("turn %d diverged: replay growth=%.4f debt=%.2f vs stored growth=%.4f debt=%.2f\n",
				stored[i].Turn, replayed.AnnualGrowth, replayed.DebtPctGDP,
				stored[i].AnnualGrowth, stored[i].DebtPctGDP)
		}
		if over {
			break
		}
	}

	if diverged == 0 {
		fmt.Printf("session %s: %d turns replayed, deterministic\n", info.ID, len(stored))
		return
	}
	fmt.Printf("session %s: %d of %d turns diverged\n", info.ID, diverged, len(stored))
	os.Exit(1)
}

func match(a, b state.Snapshot) bool {
	const eps = 1e-9
	return a.Turn == b.Turn &&
		math.Abs(a.AnnualGrowth-b.AnnualGrowth) < eps &&
		math.Abs(a.Inflation-b.Inflation) < eps &&
		math.Abs(a.DebtPctGDP-b.DebtPctGDP) < eps &&
		math.Abs(a.Approval-b.Approval) < eps
}
