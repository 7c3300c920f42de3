package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMigratedDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openMigratedDB(t)

	// Run migrations a second time — should succeed without error.
	require.NoError(t, Migrate(db))

	// Third time for good measure.
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openMigratedDB(t)

	expected := []string{"waves", "check_ins", "preferences", "suggestions", "planner_state", "audit_log"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_SuggestionKindConstraint(t *testing.T) {
	db := openMigratedDB(t)

	_, err := db.Exec(`INSERT INTO suggestions (id, kind, title, created_at, expires_at)
		VALUES ('s-1', 'not_a_kind', 'x', '2026-03-02T10:00:00Z', '2026-03-02T11:00:00Z')`)
	assert.Error(t, err, "invalid suggestion kinds must be rejected")
}

func TestMigrate_PlannerStateSingleRow(t *testing.T) {
	db := openMigratedDB(t)

	_, err := db.Exec(`INSERT INTO planner_state (id, rhythm_state, updated_at)
		VALUES ('other', 'open', '2026-03-02T10:00:00Z')`)
	assert.Error(t, err, "planner_state only accepts the default row")
}
