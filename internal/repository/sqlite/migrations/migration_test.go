package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations_CreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	for _, table := range []string{"users", "auth_tokens", "credentials", "company_profiles", "tasks"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))
}

func TestGetStatus(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	status, err := GetStatus(db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), status.LatestVersion)
	assert.Equal(t, status.LatestVersion, status.CurrentVersion)
	assert.False(t, status.Dirty)
	assert.False(t, status.Pending)
}

func TestRunMigrations_RefusesDirtySchema(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec("UPDATE schema_migrations SET dirty = 1")
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty at version 1")
}
