package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hexapawn/agent"
	"hexapawn/policy"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// a policy row owns its history and candidates; children are replaced wholesale on every save, in recorded order.
var schemaStmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`PRAGMA foreign_keys=ON;`,
	`CREATE TABLE IF NOT EXISTS policies (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		games INTEGER NOT NULL DEFAULT 0,
		wins INTEGER NOT NULL DEFAULT 0,
		benchmark INTEGER NOT NULL DEFAULT 0,
		saved_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		UNIQUE(name),
		CHECK (games >= 0),
		CHECK (wins >= 0 AND wins <= games)
	);`,
	`CREATE TABLE IF NOT EXISTS benchmark_history (
		policy_id INTEGER NOT NULL REFERENCES policies(id) ON UPDATE CASCADE ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		score INTEGER NOT NULL,
		PRIMARY KEY (policy_id, seq)
	);`,
	`CREATE TABLE IF NOT EXISTS candidates (
		policy_id INTEGER NOT NULL REFERENCES policies(id) ON UPDATE CASCADE ON DELETE CASCADE,
		state_seq INTEGER NOT NULL,
		state TEXT NOT NULL,
		seq INTEGER NOT NULL,
		move TEXT NOT NULL,
		weight REAL NOT NULL,
		outcome INTEGER NOT NULL,
		PRIMARY KEY (policy_id, state_seq, seq),
		CHECK (length(state) = 9),
		CHECK (outcome IN (-1, 0, 1))
	);`,
}

type policyRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Games     int    `db:"games"`
	Wins      int    `db:"wins"`
	Benchmark int    `db:"benchmark"`
	SavedAt   string `db:"saved_at"`
}

type candidateRow struct {
	State   string  `db:"state"`
	Move    string  `db:"move"`
	Weight  float64 `db:"weight"`
	Outcome int     `db:"outcome"`
}

// SQLite stores named policy records in one database file.
type SQLite struct {
	db   *sqlx.DB
	path string
	name string
}

// OpenSQLite opens or creates the database at path and binds the store to the policy called name.
func OpenSQLite(path, name string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// one connection keeps the pragmas in effect for every statement
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schemaStmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init sqlite schema: %w", err)
		}
	}

	return &SQLite{db: db, path: path, name: name}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// Named returns a store for another policy in the same database. Only the original store needs closing.
func (s *SQLite) Named(name string) *SQLite {
	return &SQLite{db: s.db, path: s.path, name: name}
}

// Names lists the stored policies, oldest first.
func (s *SQLite) Names(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, `SELECT name FROM policies ORDER BY id ASC`)
	return names, err
}

// Save replaces the bound policy inside a single transaction.
func (s *SQLite) Save(ctx context.Context, r agent.Record) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid record: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.GetContext(ctx, &id, `
		INSERT INTO policies (name, games, wins, benchmark)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			games = excluded.games,
			wins = excluded.wins,
			benchmark = excluded.benchmark,
			saved_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
		RETURNING id
	`, s.name, r.Games, r.Wins, r.Benchmark)
	if err != nil {
		return fmt.Errorf("save policy %s: %w", s.name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM benchmark_history WHERE policy_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM candidates WHERE policy_id = ?`, id); err != nil {
		return err
	}

	history, err := tx.PreparexContext(ctx, `INSERT INTO benchmark_history (policy_id, seq, score) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer history.Close()
	for seq, score := range r.History {
		if _, err := history.ExecContext(ctx, id, seq, score); err != nil {
			return fmt.Errorf("save benchmark history: %w", err)
		}
	}

	candidates, err := tx.PreparexContext(ctx, `
		INSERT INTO candidates (policy_id, state_seq, state, seq, move, weight, outcome)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer candidates.Close()
	for stateSeq, e := range r.Table.Entries() {
		for seq, c := range e.Candidates {
			if _, err := candidates.ExecContext(ctx, id, stateSeq, e.State, seq, c.Move, c.Weight, c.Outcome); err != nil {
				return fmt.Errorf("save candidates of %s: %w", e.State, err)
			}
		}
	}

	return tx.Commit()
}

// Load reads the bound policy back in recorded order. An unknown name is ErrNotFound.
func (s *SQLite) Load(ctx context.Context) (agent.Record, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return agent.Record{}, err
	}
	defer tx.Rollback()

	var row policyRow
	err = tx.GetContext(ctx, &row, `SELECT id, name, games, wins, benchmark, saved_at FROM policies WHERE name = ?`, s.name)
	if errors.Is(err, sql.ErrNoRows) {
		return agent.Record{}, fmt.Errorf("policy %s in %s: %w", s.name, s.path, ErrNotFound)
	}
	if err != nil {
		return agent.Record{}, err
	}

	var history []int
	if err := tx.SelectContext(ctx, &history, `SELECT score FROM benchmark_history WHERE policy_id = ? ORDER BY seq ASC`, row.ID); err != nil {
		return agent.Record{}, err
	}

	var rows []candidateRow
	err = tx.SelectContext(ctx, &rows, `
		SELECT state, move, weight, outcome
		FROM candidates
		WHERE policy_id = ?
		ORDER BY state_seq ASC, seq ASC
	`, row.ID)
	if err != nil {
		return agent.Record{}, err
	}

	table := policy.NewTable()
	var entry *policy.Entry
	for _, c := range rows {
		if entry == nil || entry.State != c.State {
			if entry != nil {
				table.Set(entry.State, entry.Candidates)
			}
			entry = &policy.Entry{State: c.State}
		}
		entry.Candidates = append(entry.Candidates, policy.Candidate{Move: c.Move, Weight: c.Weight, Outcome: c.Outcome})
	}
	if entry != nil {
		table.Set(entry.State, entry.Candidates)
	}

	r := agent.Record{
		Games:     row.Games,
		Wins:      row.Wins,
		Benchmark: row.Benchmark,
		History:   history,
		Table:     table,
	}
	if err := r.Validate(); err != nil {
		return agent.Record{}, &CorruptDataError{Source: fmt.Sprintf("%s#%s", s.path, s.name), Err: err}
	}
	return r, nil
}
