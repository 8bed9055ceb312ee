package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/leadscore/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given DSN and configures WAL
// mode. Use ":memory:" for an ephemeral store.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS offers (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	payload    TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS leads (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	payload TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS scoring_runs (
	id         TEXT PRIMARY KEY,
	offer_name TEXT NOT NULL,
	lead_count INTEGER NOT NULL,
	results    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scoring_runs_created_at ON scoring_runs(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SetOffer(ctx context.Context, offer model.Offer) error {
	payload, err := json.Marshal(offer)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal offer")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO offers (id, payload, updated_at) VALUES (1, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload),
	)
	return eris.Wrap(err, "sqlite: set offer")
}

func (s *SQLiteStore) GetOffer(ctx context.Context) (*model.Offer, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM offers WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get offer")
	}

	var offer model.Offer
	if err := json.Unmarshal([]byte(payload), &offer); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal offer")
	}
	return &offer, nil
}

// SetLeads replaces the stored lead set and clears previous scoring runs;
// results for an old lead set are not meaningful for a new one.
func (s *SQLiteStore) SetLeads(ctx context.Context, leads []model.Lead) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM leads`); err != nil {
		return eris.Wrap(err, "sqlite: clear leads")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scoring_runs`); err != nil {
		return eris.Wrap(err, "sqlite: clear runs")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO leads (payload) VALUES (?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert lead")
	}
	defer stmt.Close()

	for _, lead := range leads {
		payload, err := json.Marshal(lead)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal lead")
		}
		if _, err := stmt.ExecContext(ctx, string(payload)); err != nil {
			return eris.Wrap(err, "sqlite: insert lead")
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit leads")
}

func (s *SQLiteStore) GetLeads(ctx context.Context) ([]model.Lead, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM leads ORDER BY id`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query leads")
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan lead")
		}
		var lead model.Lead
		if err := json.Unmarshal([]byte(payload), &lead); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal lead")
		}
		leads = append(leads, lead)
	}
	return leads, eris.Wrap(rows.Err(), "sqlite: iterate leads")
}

func (s *SQLiteStore) SaveRun(ctx context.Context, offerName string, results []model.ScoringResult) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		OfferName: offerName,
		LeadCount: len(results),
		Results:   results,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal results")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scoring_runs (id, offer_name, lead_count, results, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.OfferName, run.LeadCount, string(payload), run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	var (
		run     Run
		payload string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, offer_name, lead_count, results, created_at
		FROM scoring_runs ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&run.ID, &run.OfferName, &run.LeadCount, &payload, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: latest run")
	}

	if err := json.Unmarshal([]byte(payload), &run.Results); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal results")
	}
	return &run, nil
}
