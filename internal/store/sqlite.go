package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/roi-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
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
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scenarios (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	path       TEXT NOT NULL,
	inputs     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_scenarios_path ON scenarios(path);
CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateScenario(ctx context.Context, name string, in model.CalculatorInputs) (*model.Scenario, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal inputs")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, path, inputs, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, in.Path, string(inputsJSON), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert scenario")
	}

	return &model.Scenario{
		ID:        id,
		Name:      name,
		Inputs:    in,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateScenario(ctx context.Context, id string, name string, in model.CalculatorInputs) error {
	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal inputs")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE scenarios SET name = ?, path = ?, inputs = ?, updated_at = ? WHERE id = ?`,
		name, in.Path, string(inputsJSON), time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update scenario %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) GetScenario(ctx context.Context, id string) (*model.Scenario, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, inputs, created_at, updated_at FROM scenarios WHERE id = ?`,
		id,
	)
	sc, err := scanScenario(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	return sc, err
}

func (s *SQLiteStore) ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error) {
	query := `SELECT id, name, inputs, created_at, updated_at FROM scenarios WHERE 1=1`
	var args []any

	if filter.Path != "" {
		query += ` AND path = ?`
		args = append(args, filter.Path)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, limitOrDefault(filter.Limit))

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list scenarios")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Scenario
	for rows.Next() {
		sc, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sc)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list scenarios iterate")
}

func (s *SQLiteStore) DeleteScenario(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete scenario %s", id)
	}
	return checkRowsAffected(res, id)
}

func (s *SQLiteStore) ImportScenarios(ctx context.Context, scenarios []model.Scenario) (int64, error) {
	if len(scenarios) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scenarios (id, name, path, inputs, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			path = excluded.path,
			inputs = excluded.inputs,
			updated_at = excluded.updated_at`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close() //nolint:errcheck

	rows, err := importRows(scenarios)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, row := range rows {
		// inputs is stored as TEXT in SQLite.
		row[3] = string(row[3].([]byte))
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import scenario %v", row[0])
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return n, nil
}

// helpers

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanScenario(row scannable) (*model.Scenario, error) {
	var sc model.Scenario
	var inputsJSON string

	err := row.Scan(&sc.ID, &sc.Name, &inputsJSON, &sc.CreatedAt, &sc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan scenario")
	}
	if err := json.Unmarshal([]byte(inputsJSON), &sc.Inputs); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal inputs")
	}
	return &sc, nil
}
