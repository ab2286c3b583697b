package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestLoadPath(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		path := writeConfig(t, `
dsn: postgres://u:p@localhost:5432/spotguide
auth:
  jwt_secret: secret
`)

		cfg, err := LoadPath(path)
		require.NoError(t, err)

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "8080", cfg.HTTP.Port)
		assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
		assert.Equal(t, "./uploads", cfg.FileStorage.BaseDir)
		assert.Equal(t, int64(10485760), cfg.FileStorage.MaxSize)
		assert.Equal(t, 30*time.Second, cfg.Redis.LockTTL)
		assert.Equal(t, "admin", cfg.Auth.AdminRole)
		assert.False(t, cfg.Photos.StrictJSONCreate)
		assert.Equal(t, 24*time.Hour, cfg.Geocoding.CacheTTL)
		assert.Empty(t, cfg.Log.File)
		assert.Equal(t, 100, cfg.Log.MaxSizeMB)
		assert.True(t, cfg.Log.Compress)
	})

	t.Run("explicit values", func(t *testing.T) {
		path := writeConfig(t, `
env: prod
dsn: postgres://u:p@db:5432/spotguide
http:
  port: "9000"
file_storage:
  base_dir: /var/lib/spotguide
  base_url: https://cdn.example.com/photos
redis:
  redis_addr: redis:6379
auth:
  jwt_secret: secret
photos:
  strict_json_create: true
`)

		cfg, err := LoadPath(path)
		require.NoError(t, err)

		assert.Equal(t, "prod", cfg.Env)
		assert.Equal(t, "9000", cfg.HTTP.Port)
		assert.Equal(t, "https://cdn.example.com/photos", cfg.FileStorage.BaseURL)
		assert.Equal(t, "redis:6379", cfg.Redis.RedisAddr)
		assert.True(t, cfg.Photos.StrictJSONCreate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing dsn", func(t *testing.T) {
		t.Setenv("DSN", "unused")
		require.NoError(t, os.Unsetenv("DSN"))
		path := writeConfig(t, "auth:\n  jwt_secret: secret\n")

		_, err := LoadPath(path)
		assert.Error(t, err)
	})
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/spotguide/config.yaml")

	assert.Equal(t, "./local.yaml", ResolvePath("./local.yaml"))
	assert.Equal(t, "/etc/spotguide/config.yaml", ResolvePath(""))
}
