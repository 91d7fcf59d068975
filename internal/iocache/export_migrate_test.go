package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SimoneSapienza/dev-wrapped/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateExport_NoneBackend(t *testing.T) {
	err := MigrateExport(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateExport_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest
	require.NoError(t, MigrateExport(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)

	// No-op
	assert.NoError(t, MigrateExport(schema.SQLiteBackend, dbPath, -1))

	// Step down, to zero, and back up
	assert.NoError(t, MigrateExport(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateExport(schema.SQLiteBackend, dbPath, 0))
	assert.NoError(t, MigrateExport(schema.SQLiteBackend, dbPath, 2))

	store, err := NewExportStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.SchemaVersion)
}

func TestMigrateExport_UnknownVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")
	assert.Error(t, MigrateExport(schema.SQLiteBackend, dbPath, 9))
}

func TestMigrationsEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir("migrations/" + string(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 4, "every dialect ships up and down files for each version")
	}
}
