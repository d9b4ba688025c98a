package persistence

import (
	"path/filepath"
	"testing"

	"chancellor/internal/engine"
	"chancellor/internal/state"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigratesIdempotently(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	db.Close()
}

func TestSessionRecordRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateSession("s-1", 42, state.DifficultyHard, "debt-falling"); err != nil {
		t.Fatal(err)
	}

	info, err := db.Session("s-1")
	if err != nil {
		t.Fatal(err)
	}
	if info.ID != "s-1" || info.Seed != 42 || info.Difficulty != "hard" || info.FiscalRule != "debt-falling" {
		t.Fatalf("got %+v", info)
	}
	if info.CreatedAt == "" {
		t.Fatal("created_at not populated")
	}

	if _, err := db.Session("absent"); err == nil {
		t.Fatal("want error for unknown session")
	}
}

func TestLatestSession(t *testing.T) {
	db := openTestDB(t)

	if err := db.CreateSession("a", 1, state.DifficultyStandard, "golden-rule"); err != nil {
		t.Fatal(err)
	}
	if err := db.CreateSession("b", 2, state.DifficultyEasy, "golden-rule"); err != nil {
		t.Fatal(err)
	}

	info, err := db.LatestSession()
	if err != nil {
		t.Fatal(err)
	}
	// Same-second inserts fall back to the id tiebreak.
	if info.ID != "b" {
		t.Fatalf("latest = %q, want b", info.ID)
	}
}

func TestSaveTurnRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ss := engine.NewSession(7, state.DifficultyStandard, "golden-rule")
	if err := db.CreateSession(ss.ID, ss.Seed, state.DifficultyStandard, "golden-rule"); err != nil {
		t.Fatal(err)
	}

	var want []state.Snapshot
	for i := 0; i < 5; i++ {
		s, _ := ss.AdvanceTurn()
		want = append(want, state.SnapshotOf(s))
		if err := db.SaveTurn(ss.ID, s, ss.TurnEvents); err != nil {
			t.Fatalf("save turn %d: %v", s.Turn, err)
		}
	}

	got, err := db.Snapshots(ss.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(want) {
		t.Fatalf("stored %d snapshots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snapshot %d mismatch:\ngot  %+v\nwant %+v", i, got[i], want[i])
		}
	}

	loaded, err := db.LatestState(ss.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Turn != ss.State.Turn {
		t.Fatalf("loaded turn %d, want %d", loaded.Turn, ss.State.Turn)
	}
	if loaded.Fiscal.DebtNominal != ss.State.Fiscal.DebtNominal {
		t.Fatalf("loaded debt %v, want %v", loaded.Fiscal.DebtNominal, ss.State.Fiscal.DebtNominal)
	}
	if loaded.Politics.Approval != ss.State.Politics.Approval {
		t.Fatalf("loaded approval %v, want %v", loaded.Politics.Approval, ss.State.Politics.Approval)
	}
	if len(loaded.History) != len(ss.State.History) {
		t.Fatalf("loaded %d history rows, want %d", len(loaded.History), len(ss.State.History))
	}
	if state.SnapshotOf(loaded) != state.SnapshotOf(ss.State) {
		t.Fatal("loaded state projects a different snapshot")
	}
}

func TestSaveTurnIsReplaceable(t *testing.T) {
	db := openTestDB(t)
	s := state.New(state.DifficultyStandard, "golden-rule")
	s.Turn = 1

	if err := db.SaveTurn("s-1", s, nil); err != nil {
		t.Fatal(err)
	}
	s.Politics.Approval = 55
	if err := db.SaveTurn("s-1", s, nil); err != nil {
		t.Fatal(err)
	}

	snaps, err := db.Snapshots("s-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("resaving a turn should replace, got %d rows", len(snaps))
	}
	if snaps[0].Approval != 55 {
		t.Fatalf("approval = %v, want the resaved 55", snaps[0].Approval)
	}
}

func TestRecentEventsNewestFirstAndLimited(t *testing.T) {
	db := openTestDB(t)
	s := state.New(state.DifficultyStandard, "golden-rule")

	s.Turn = 1
	if err := db.SaveTurn("s-1", s, []engine.Event{
		{Turn: 1, Category: "fiscal", Description: "first"},
		{Turn: 1, Category: "market", Description: "second"},
	}); err != nil {
		t.Fatal(err)
	}
	s.Turn = 2
	if err := db.SaveTurn("s-1", s, []engine.Event{
		{Turn: 2, Category: "politics", Description: "third"},
	}); err != nil {
		t.Fatal(err)
	}

	events, err := db.RecentEvents("s-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Description != "third" || events[1].Description != "second" {
		t.Fatalf("order wrong: %+v", events)
	}

	all, err := db.RecentEvents("s-1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
}
