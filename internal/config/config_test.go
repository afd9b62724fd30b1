package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/timeboxd/internal/storage"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, storage.BackendSQLite, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.DataDir)
	assert.Equal(t, 64, cfg.SchedulerBuffer)
	assert.Equal(t, 60, cfg.WarningSeconds)
	assert.Empty(t, cfg.Log.Path)
	require.NoError(t, cfg.Validate())
}

func TestLoadLayersFileDotenvAndEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "timeboxd.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
storage:
  backend: file
  data_dir: /tmp/from-yaml
log:
  level: debug
scheduler_buffer: 16
`), 0o644))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TIMEBOXD_WARNING_SECONDS=90\nTIMEBOXD_DESKTOP_NOTIFICATIONS=yes\n"), 0o644))

	t.Setenv(EnvConfigPath, yamlPath)
	t.Setenv("TIMEBOXD_DATA_DIR", filepath.Join(dir, "data"))
	// Registered so the values godotenv sets are restored after the test.
	t.Setenv("TIMEBOXD_WARNING_SECONDS", "")
	t.Setenv("TIMEBOXD_DESKTOP_NOTIFICATIONS", "")
	require.NoError(t, os.Unsetenv("TIMEBOXD_WARNING_SECONDS"))
	require.NoError(t, os.Unsetenv("TIMEBOXD_DESKTOP_NOTIFICATIONS"))

	cfg, err := Load(envPath)
	require.NoError(t, err)
	assert.Equal(t, storage.BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.Storage.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 16, cfg.SchedulerBuffer)
	assert.Equal(t, 90, cfg.WarningSeconds)
	assert.True(t, cfg.DesktopNotifications)
}

func TestDotenvNeverOverridesProcessEnv(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "timeboxd.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("warning_seconds: 45\nscheduler_buffer: 8\n"), 0o644))
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TIMEBOXD_WARNING_SECONDS=90\nTIMEBOXD_SCHEDULER_BUFFER=32\n"), 0o644))

	t.Setenv(EnvConfigPath, yamlPath)
	t.Setenv("TIMEBOXD_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("TIMEBOXD_WARNING_SECONDS", "120")
	t.Setenv("TIMEBOXD_SCHEDULER_BUFFER", "")
	require.NoError(t, os.Unsetenv("TIMEBOXD_SCHEDULER_BUFFER"))

	cfg, err := Load(envPath)
	require.NoError(t, err)
	// Process env beats .env, and either beats the YAML file.
	assert.Equal(t, 120, cfg.WarningSeconds)
	assert.Equal(t, 32, cfg.SchedulerBuffer)
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("TIMEBOXD_STORAGE", "postgres")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), Default())
	require.Error(t, err)
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("TIMEBOXD_SCHEDULER_BUFFER", "lots")
	t.Setenv("TIMEBOXD_WARNING_SECONDS", "-3")
	t.Setenv("TIMEBOXD_DESKTOP_NOTIFICATIONS", "maybe")
	cfg := FromEnv(Default())
	assert.Equal(t, 64, cfg.SchedulerBuffer)
	assert.Equal(t, 60, cfg.WarningSeconds)
	assert.False(t, cfg.DesktopNotifications)
}
