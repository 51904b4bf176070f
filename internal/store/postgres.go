package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/db"
	"github.com/sells-group/roi-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"insert_scenario": `INSERT INTO scenarios (id, name, path, inputs, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
	"update_scenario": `UPDATE scenarios SET name = $1, path = $2, inputs = $3, updated_at = $4 WHERE id = $5`,
	"get_scenario":    `SELECT id, name, inputs, created_at, updated_at FROM scenarios WHERE id = $1`,
	"delete_scenario": `DELETE FROM scenarios WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS scenarios (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	path       TEXT NOT NULL,
	inputs     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_scenarios_path ON scenarios(path);
CREATE INDEX IF NOT EXISTS idx_scenarios_created_at ON scenarios(created_at DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateScenario(ctx context.Context, name string, in model.CalculatorInputs) (*model.Scenario, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal inputs")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO scenarios (id, name, path, inputs, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, in.Path, inputsJSON, now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert scenario")
	}

	return &model.Scenario{
		ID:        id,
		Name:      name,
		Inputs:    in,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) UpdateScenario(ctx context.Context, id string, name string, in model.CalculatorInputs) error {
	inputsJSON, err := json.Marshal(in)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal inputs")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE scenarios SET name = $1, path = $2, inputs = $3, updated_at = $4 WHERE id = $5`,
		name, in.Path, inputsJSON, time.Now().UTC(), id,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update scenario %s", id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *PostgresStore) GetScenario(ctx context.Context, id string) (*model.Scenario, error) {
	var sc model.Scenario
	var inputsJSON []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, name, inputs, created_at, updated_at FROM scenarios WHERE id = $1`,
		id,
	).Scan(&sc.ID, &sc.Name, &inputsJSON, &sc.CreatedAt, &sc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get scenario %s", id)
	}
	if err := json.Unmarshal(inputsJSON, &sc.Inputs); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal inputs")
	}
	return &sc, nil
}

func (s *PostgresStore) ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error) {
	query := `SELECT id, name, inputs, created_at, updated_at FROM scenarios WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Path != "" {
		query += fmt.Sprintf(` AND path = $%d`, argIdx)
		args = append(args, filter.Path)
		argIdx++
	}
	query += ` ORDER BY created_at DESC, id`

	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limitOrDefault(filter.Limit))
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list scenarios")
	}
	defer rows.Close()

	var out []model.Scenario
	for rows.Next() {
		var sc model.Scenario
		var inputsJSON []byte
		if err := rows.Scan(&sc.ID, &sc.Name, &inputsJSON, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan scenario")
		}
		if err := json.Unmarshal(inputsJSON, &sc.Inputs); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal inputs")
		}
		out = append(out, sc)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list scenarios iterate")
}

func (s *PostgresStore) DeleteScenario(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete scenario %s", id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *PostgresStore) ImportScenarios(ctx context.Context, scenarios []model.Scenario) (int64, error) {
	rows, err := importRows(scenarios)
	if err != nil {
		return 0, err
	}
	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "scenarios",
		Columns:      importColumns,
		ConflictKeys: []string{"id"},
		UpdateCols:   []string{"name", "path", "inputs", "updated_at"},
	}, rows)
	return n, eris.Wrap(err, "postgres: import scenarios")
}
