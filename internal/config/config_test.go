package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"omegaboard"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	withArgs(t)
	cfg := LoadConfig()

	assert.Equal(t, BackendSQLite, cfg.DurableBackend)
	assert.Equal(t, "board.db", cfg.DatabaseDSN)
	assert.False(t, cfg.LegacyHash)
	assert.Equal(t, AvatarBackendKV, cfg.AvatarBackend)
	assert.Equal(t, "avatars", cfg.S3Bucket)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-b", "postgres", "-d", "postgres://localhost/board", "-l=true")
	cfg := LoadConfig()

	assert.Equal(t, BackendPostgres, cfg.DurableBackend)
	assert.Equal(t, "postgres://localhost/board", cfg.DatabaseDSN)
	assert.True(t, cfg.LegacyHash)
	// Untouched fields keep their defaults.
	assert.Equal(t, AvatarBackendKV, cfg.AvatarBackend)
}

func TestJsonOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"durable_backend": "memory",
		"legacy_hash": true,
		"s3_bucket": "media"
	}`), 0o600))

	withArgs(t, "-c", path)
	cfg := LoadConfig()

	assert.Equal(t, BackendMemory, cfg.DurableBackend)
	assert.True(t, cfg.LegacyHash)
	assert.Equal(t, "media", cfg.S3Bucket)
	// Absent JSON fields leave the defaults alone.
	assert.Equal(t, "board.db", cfg.DatabaseDSN)
}

func TestFlagsTakePrecedenceOverJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"durable_backend": "memory"}`), 0o600))

	withArgs(t, "-c", path, "-b", "sqlite")
	cfg := LoadConfig()

	assert.Equal(t, BackendSQLite, cfg.DurableBackend)
}

func TestJsonMissingFilePanics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))
	assert.Panics(t, func() { LoadConfig() })
}
