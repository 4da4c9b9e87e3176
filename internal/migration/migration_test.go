package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/gymsimple/migrations"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	return db, func() { db.Close() }
}

func mapFS(files map[string]string) fstest.MapFS {
	out := fstest.MapFS{}
	for name, content := range files {
		out[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return out
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&n)
	require.NoError(t, err)
	return n == 1
}

func TestCurrentVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	runner := NewRunner(db, mapFS(map[string]string{"001_init.sql": "CREATE TABLE items (key TEXT);"}))

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	require.NoError(t, runner.SetVersion(ctx, 4))
	version, err = runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, version)
}

func TestReadMigrationFiles_SortedByVersion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, mapFS(map[string]string{
		"003_reminders.sql": "CREATE TABLE reminders (id TEXT);",
		"001_init.sql":      "CREATE TABLE items (key TEXT);",
		"002_index.sql":     "CREATE INDEX idx_items ON items(key);",
		"README.md":         "not a migration",
	}))

	got, err := runner.ReadMigrationFiles()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, Migration{Version: 1, Name: "init", SQL: "CREATE TABLE items (key TEXT);"}, got[0])
	assert.Equal(t, "index", got[1].Name)
	assert.Equal(t, 3, got[2].Version)

	latest, err := runner.LatestVersion()
	require.NoError(t, err)
	assert.Equal(t, 3, latest)
}

func TestApply_FromScratchThenIncremental(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	files := mapFS(map[string]string{"001_init.sql": "CREATE TABLE items (key TEXT PRIMARY KEY);"})
	runner := NewRunner(db, files)

	var logs []string
	count, err := runner.Apply(ctx, func(s string) { logs = append(logs, s) })
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NotEmpty(t, logs)
	assert.True(t, tableExists(t, db, "items"))

	files["002_history.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE history (id TEXT);")}
	count, err = runner.Apply(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.True(t, tableExists(t, db, "history"))

	count, err = runner.Apply(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count, "second run must be a no-op")

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

func TestApply_RollsBackFailedMigration(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	runner := NewRunner(db, mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE items (key TEXT);\nTHIS IS INVALID SQL;",
	}))

	_, err := runner.Apply(ctx, nil)
	require.Error(t, err)

	version, err := runner.CurrentVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)
	assert.False(t, tableExists(t, db, "items"))
}

func TestValidate_NewerDatabase(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	runner := NewRunner(db, mapFS(map[string]string{"001_init.sql": "CREATE TABLE items (key TEXT);"}))
	require.NoError(t, runner.SetVersion(ctx, 10))

	assert.ErrorContains(t, runner.Validate(ctx), "newer than supported")
	_, err := runner.Apply(ctx, nil)
	assert.Error(t, err)
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{"missing underscore", map[string]string{"001init.sql": "SELECT 1;"}, "invalid migration filename"},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}, "version must be at least 1"},
		{"non numeric", map[string]string{"abc_init.sql": "SELECT 1;"}, "invalid version number"},
		{"duplicate", map[string]string{"001_init.sql": "SELECT 1;", "001_other.sql": "SELECT 2;"}, "duplicate migration version"},
	}

	db, cleanup := setupTestDB(t)
	defer cleanup()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(db, mapFS(tt.files)).ReadMigrationFiles()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestEmbeddedMigrationsCreateItemsTable(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	runner := NewRunner(db, migrations.SQLite())
	_, err := runner.Apply(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, tableExists(t, db, "items"))
}
