package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDatabaseVersion(t *testing.T) {
	dbPath := t.TempDir()

	require.NoError(t, checkDatabaseVersion(dbPath))
	versionBytes, err := os.ReadFile(filepath.Join(dbPath, "version"))
	require.NoError(t, err)
	require.Equal(t, "1", string(versionBytes))

	require.NoError(t, checkDatabaseVersion(dbPath))

	require.NoError(t, os.WriteFile(filepath.Join(dbPath, "version"), []byte("7"), 0600))
	require.Error(t, checkDatabaseVersion(dbPath))

	require.NoError(t, os.WriteFile(filepath.Join(dbPath, "version"), []byte("seven"), 0600))
	require.Error(t, checkDatabaseVersion(dbPath))
}
