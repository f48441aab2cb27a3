package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDir(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("MIGRATIONS_DIR", "")
		assert.Equal(t, "db/migrations", migrationsDir())
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("MIGRATIONS_DIR", "/srv/library/migrations")
		assert.Equal(t, "/srv/library/migrations", migrationsDir())
	})
}

func TestLoadEnvFiles_KeepsExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte("DB_DSN=from_file\nMIGRATIONS_DIR=from_file\n"), 0o644))

	t.Setenv("DB_DSN", "from_env")
	os.Unsetenv("MIGRATIONS_DIR")
	t.Cleanup(func() { _ = os.Unsetenv("MIGRATIONS_DIR") })

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	assert.Equal(t, "from_env", os.Getenv("DB_DSN"))
	assert.Equal(t, "from_file", os.Getenv("MIGRATIONS_DIR"))
}
