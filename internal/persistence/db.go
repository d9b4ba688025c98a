// Package persistence provides SQLite-based session storage: the session
// record, the append-only monthly snapshot history, the event log and the
// latest full state.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"chancellor/internal/engine"
	"chancellor/internal/state"
)

// DB wraps a SQLite connection for session persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		difficulty TEXT NOT NULL,
		fiscal_rule TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		monthly_growth REAL NOT NULL,
		annual_growth REAL NOT NULL,
		inflation REAL NOT NULL,
		unemployment REAL NOT NULL,
		deficit_pct REAL NOT NULL,
		debt_pct REAL NOT NULL,
		approval REAL NOT NULL,
		yield10 REAL NOT NULL,
		productivity REAL NOT NULL,
		policy_rate REAL NOT NULL,
		currency REAL NOT NULL,
		PRIMARY KEY (session_id, turn)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS latest_state (
		session_id TEXT PRIMARY KEY,
		turn INTEGER NOT NULL,
		state_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session_turn ON events(session_id, turn);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateSession registers a new session.
func (db *DB) CreateSession(id string, seed int64, difficulty state.Difficulty, rule string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sessions (id, seed, difficulty, fiscal_rule) VALUES (?, ?, ?, ?)",
		id, seed, string(difficulty), rule,
	)
	return err
}

// SessionInfo is the stored session record.
type SessionInfo struct {
	ID         string `db:"id"`
	Seed       int64  `db:"seed"`
	Difficulty string `db:"difficulty"`
	FiscalRule string `db:"fiscal_rule"`
	CreatedAt  string `db:"created_at"`
}

// Session loads a stored session record.
func (db *DB) Session(id string) (SessionInfo, error) {
	var info SessionInfo
	err := db.conn.Get(&info, "SELECT * FROM sessions WHERE id = ?", id)
	return info, err
}

// LatestSession returns the most recently created session record.
func (db *DB) LatestSession() (SessionInfo, error) {
	var info SessionInfo
	err := db.conn.Get(&info, "SELECT * FROM sessions ORDER BY created_at DESC, id DESC LIMIT 1")
	return info, err
}

// SaveTurn persists a completed turn: the snapshot row, the turn's events
// and the full latest state.
func (db *DB) SaveTurn(sessionID string, s state.State, events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	snap := state.SnapshotOf(s)
	_, err = tx.Exec(`INSERT OR REPLACE INTO snapshots
		(session_id, turn, monthly_growth, annual_growth, inflation, unemployment,
		 deficit_pct, debt_pct, approval, yield10, productivity, policy_rate, currency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, snap.Turn, snap.MonthlyGrowth, snap.AnnualGrowth, snap.Inflation,
		snap.Unemployment, snap.DeficitPctGDP, snap.DebtPctGDP, snap.Approval,
		snap.Yield10, snap.Productivity, snap.PolicyRate, snap.CurrencyIndex,
	)
	if err != nil {
		return fmt.Errorf("insert snapshot turn %d: %w", snap.Turn, err)
	}

	for _, e := range events {
		if _, err := tx.Exec(
			"INSERT INTO events (session_id, turn, category, description) VALUES (?, ?, ?, ?)",
			sessionID, e.Turn, e.Category, e.Description,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	stateJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO latest_state (session_id, turn, state_json) VALUES (?, ?, ?)",
		sessionID, s.Turn, string(stateJSON),
	); err != nil {
		return fmt.Errorf("save latest state: %w", err)
	}

	return tx.Commit()
}

// LatestState loads the most recently saved full state for a session.
func (db *DB) LatestState(sessionID string) (state.State, error) {
	var raw string
	if err := db.conn.Get(&raw, "SELECT state_json FROM latest_state WHERE session_id = ?", sessionID); err != nil {
		return state.State{}, err
	}
	var s state.State
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return state.State{}, fmt.Errorf("unmarshal state: %w", err)
	}
	return s, nil
}

// Snapshots returns the stored snapshot history for a session, oldest
// first.
func (db *DB) Snapshots(sessionID string) ([]state.Snapshot, error) {
	rows := []struct {
		Turn          int     `db:"turn"`
		MonthlyGrowth float64 `db:"monthly_growth"`
		AnnualGrowth  float64 `db:"annual_growth"`
		Inflation     float64 `db:"inflation"`
		Unemployment  float64 `db:"unemployment"`
		DeficitPct    float64 `db:"deficit_pct"`
		DebtPct       float64 `db:"debt_pct"`
		Approval      float64 `db:"approval"`
		Yield10       float64 `db:"yield10"`
		Productivity  float64 `db:"productivity"`
		PolicyRate    float64 `db:"policy_rate"`
		Currency      float64 `db:"currency"`
	}{}
	err := db.conn.Select(&rows,
		"SELECT turn, monthly_growth, annual_growth, inflation, unemployment, deficit_pct, debt_pct, approval, yield10, productivity, policy_rate, currency FROM snapshots WHERE session_id = ? ORDER BY turn",
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	out := make([]state.Snapshot, len(rows))
	for i, r := range rows {
		out[i] = state.Snapshot{
			Turn:          r.Turn,
			MonthlyGrowth: r.MonthlyGrowth,
			AnnualGrowth:  r.AnnualGrowth,
			Inflation:     r.Inflation,
			Unemployment:  r.Unemployment,
			DeficitPctGDP: r.DeficitPct,
			DebtPctGDP:    r.DebtPct,
			Approval:      r.Approval,
			Yield10:       r.Yield10,
			Productivity:  r.Productivity,
			PolicyRate:    r.PolicyRate,
			CurrencyIndex: r.Currency,
		}
	}
	return out, nil
}

// RecentEvents returns the most recent N events for a session, newest
// first.
func (db *DB) RecentEvents(sessionID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT turn, category, description FROM events WHERE session_id = ? ORDER BY id DESC LIMIT ?",
		sessionID, limit,
	)
	return events, err
}

// SaveSession persists the session record and current turn in one call,
// logging rather than failing the simulation on error.
func (db *DB) SaveSession(ss *engine.Session) {
	if err := db.SaveTurn(ss.ID, ss.State, ss.TurnEvents); err != nil {
		slog.Error("failed to save turn", "session", ss.ID, "turn", ss.State.Turn, "error", err)
	}
}
