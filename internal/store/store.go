// Package store persists saved calculator scenarios in SQLite or Postgres.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/roi-cli/internal/model"
)

// ErrNotFound is returned, wrapped, when a scenario ID does not exist.
var ErrNotFound = eris.New("store: not found")

// ScenarioFilter specifies criteria for listing scenarios.
type ScenarioFilter struct {
	Path   string `json:"path,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// defaultLimit caps list results when no limit is given.
const defaultLimit = 100

// Store defines the persistence interface for saved scenarios.
type Store interface {
	CreateScenario(ctx context.Context, name string, in model.CalculatorInputs) (*model.Scenario, error)
	UpdateScenario(ctx context.Context, id string, name string, in model.CalculatorInputs) error
	GetScenario(ctx context.Context, id string) (*model.Scenario, error)
	ListScenarios(ctx context.Context, filter ScenarioFilter) ([]model.Scenario, error)
	DeleteScenario(ctx context.Context, id string) error
	// ImportScenarios inserts scenarios, replacing any with the same ID.
	ImportScenarios(ctx context.Context, scenarios []model.Scenario) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

func limitOrDefault(n int) int {
	if n <= 0 {
		return defaultLimit
	}
	return n
}

func notFound(id string) error {
	return eris.Wrapf(ErrNotFound, "scenario %s", id)
}

// importColumns is the column order of importRows.
var importColumns = []string{"id", "name", "path", "inputs", "created_at", "updated_at"}

// importRows flattens scenarios into rows ordered as importColumns. Missing
// IDs and timestamps are filled in.
func importRows(scenarios []model.Scenario) ([][]any, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(scenarios))
	for _, sc := range scenarios {
		if sc.ID == "" {
			sc.ID = uuid.New().String()
		}
		if sc.CreatedAt.IsZero() {
			sc.CreatedAt = now
		}
		if sc.UpdatedAt.IsZero() {
			sc.UpdatedAt = now
		}
		inputsJSON, err := json.Marshal(sc.Inputs)
		if err != nil {
			return nil, eris.Wrapf(err, "store: marshal inputs for %s", sc.ID)
		}
		rows = append(rows, []any{sc.ID, sc.Name, sc.Inputs.Path, inputsJSON, sc.CreatedAt, sc.UpdatedAt})
	}
	return rows, nil
}
