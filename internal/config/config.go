// Package config resolves runtime settings. Later layers win: defaults, the
// optional YAML file, then TIMEBOXD_* variables. A .env file only fills in
// variables the process environment does not already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/timeboxd/internal/storage"
)

const (
	EnvPrefix     = "TIMEBOXD_"
	EnvConfigPath = EnvPrefix + "CONFIG"
)

type Config struct {
	Storage              StorageConfig `yaml:"storage"`
	Log                  LogConfig     `yaml:"log"`
	DesktopNotifications bool          `yaml:"desktop_notifications"`
	SchedulerBuffer      int           `yaml:"scheduler_buffer"`
	WarningSeconds       int           `yaml:"warning_seconds"`
}

type StorageConfig struct {
	Backend storage.Backend `yaml:"backend"`
	DataDir string          `yaml:"data_dir"`
	DBPath  string          `yaml:"db_path"`
}

type LogConfig struct {
	// Path is empty when logging is disabled.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

func Default() Config {
	dataDir := ".timeboxd"
	if dir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(dir, "timeboxd")
	}
	return Config{
		Storage: StorageConfig{
			Backend: storage.BackendSQLite,
			DataDir: dataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
		DesktopNotifications: false,
		SchedulerBuffer:      64,
		WarningSeconds:       60,
	}
}

// Load first loads envFile, when it exists, into the environment without
// overriding variables that are already set. It then overlays the YAML file
// named by TIMEBOXD_CONFIG on the defaults, and TIMEBOXD_* variables on top.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		var err error
		cfg, err = LoadFile(path, cfg)
		if err != nil {
			return Config{}, err
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto base. Keys absent from the
// file keep their base value.
func LoadFile(path string, base Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv(EnvPrefix + "STORAGE"); ok {
		cfg.Storage.Backend = storage.Backend(strings.ToLower(v))
	}
	if v, ok := getEnv(EnvPrefix + "DATA_DIR"); ok {
		cfg.Storage.DataDir = v
	}
	if v, ok := getEnv(EnvPrefix + "DB_PATH"); ok {
		cfg.Storage.DBPath = v
	}
	if v, ok := getEnv(EnvPrefix + "LOG_FILE"); ok {
		cfg.Log.Path = v
	}
	if v, ok := getEnv(EnvPrefix + "LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := getEnvBool(EnvPrefix + "DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt(EnvPrefix + "SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvInt(EnvPrefix + "WARNING_SECONDS"); ok && v > 0 {
		cfg.WarningSeconds = v
	}
	return cfg
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case storage.BackendSQLite, storage.BackendFile, storage.BackendMemory:
	default:
		return fmt.Errorf("config: unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend != storage.BackendMemory && strings.TrimSpace(c.Storage.DataDir) == "" && strings.TrimSpace(c.Storage.DBPath) == "" {
		return errors.New("config: data_dir is required")
	}
	if c.SchedulerBuffer <= 0 {
		return errors.New("config: scheduler_buffer must be positive")
	}
	if c.WarningSeconds <= 0 {
		return errors.New("config: warning_seconds must be positive")
	}
	return nil
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
