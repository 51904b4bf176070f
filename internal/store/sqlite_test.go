package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestSQLite_MigrateIdempotent(t *testing.T) {
	st := newTestSQLiteStore(t)
	require.NoError(t, st.Migrate(context.Background()))
}

func TestSQLite_StoresInputsAsText(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	sc, err := st.CreateScenario(ctx, "tech", techInputs())
	require.NoError(t, err)

	var raw, path string
	err = st.db.QueryRowContext(ctx, `SELECT inputs, path FROM scenarios WHERE id = ?`, sc.ID).Scan(&raw, &path)
	require.NoError(t, err)
	assert.Equal(t, "college_tech", path)
	assert.Contains(t, raw, `"school_tier":"average"`)
}

func TestSQLite_CorruptInputs(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	now := time.Now().UTC()
	_, err := st.db.ExecContext(ctx,
		`INSERT INTO scenarios (id, name, path, inputs, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"bad", "bad", "college_tech", "not json", now, now)
	require.NoError(t, err)

	_, err = st.GetScenario(ctx, "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal inputs")
}

func TestSQLite_OpenBadPath(t *testing.T) {
	_, err := NewSQLite(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	assert.Error(t, err)
}
