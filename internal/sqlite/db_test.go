package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"settings",
		"flags",
		"sessions",
		"sessions_fts",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsIdempotent verifies the schema can be applied to an existing database
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())
}

// TestSettingsSingleRow verifies only row id 1 is accepted
func TestSettingsSingleRow(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(
		`INSERT INTO settings (id, work_duration, short_break, long_break, daily_goal, theme)
		 VALUES (2, 1500, 300, 900, 4, 'system')`)
	require.Error(t, err, "should fail with id other than 1")
}

// TestFlagValueConstraint verifies flag values are restricted to true/false text
func TestFlagValueConstraint(t *testing.T) {
	db := NewTestDB(t)

	_, err := db.Exec(`INSERT INTO flags (key, value) VALUES ('k', 'yes')`)
	require.Error(t, err)
}
