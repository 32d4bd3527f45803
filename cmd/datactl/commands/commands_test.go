package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/sqlstore"
)

// execute runs rootCmd with args against the SQLite file at path and returns
// what it printed.
func execute(t *testing.T, path string, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--db", "", "--db-path", path}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	return out.String()
}

func TestMigrateUpAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")

	out := execute(t, path, "migrate", "up")
	assert.Contains(t, out, "sqlite schema version 1")

	out = execute(t, path, "migrate", "version")
	assert.Contains(t, out, "sqlite schema version 1")
}

func TestHeartbeatRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.db")
	execute(t, path, "migrate", "up")

	out := execute(t, path, "heartbeat", "run")
	assert.Contains(t, out, "heartbeat row")
	execute(t, path, "heartbeat", "run")

	db, err := sqlstore.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := sqlstore.NewTables(db).Dummy.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1, "each run replaces the previous row")
}
