package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	appLog "confview/internal/log"
)

// defaultEndpoint is the conference schedule feed fetched at startup.
const defaultEndpoint = "https://cssconf.us/abstractions.json"

// Config is the top-level application configuration.
type Config struct {
	// Endpoint is the URL of the JSON talk feed.
	Endpoint string `yaml:"endpoint" json:"endpoint"`

	// Timezone is the IANA timezone the day filter evaluates talk
	// start times in (e.g. "America/New_York"). Default "UTC".
	Timezone string `yaml:"timezone" json:"timezone"`

	// DefaultDay is the day-of-month selected when the viewer starts.
	DefaultDay int `yaml:"default_day" json:"default_day"`

	// FetchTimeoutSeconds bounds the single schedule fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds" json:"fetch_timeout_seconds"`

	// LogFile, when non-empty, redirects log records to this path so
	// they cannot corrupt the alternate-screen display.
	LogFile string `yaml:"log_file" json:"log_file"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:            defaultEndpoint,
		Timezone:            "UTC",
		DefaultDay:          21,
		FetchTimeoutSeconds: 15,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.DefaultDay <= 0 || c.DefaultDay > 31 {
		c.DefaultDay = 21
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = 15
	}
}

// FetchTimeout returns the fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Location resolves the configured timezone. An unknown zone falls back
// to UTC rather than failing startup.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		appLog.Error("failed to load timezone; falling back to UTC", err, "name", c.Timezone)
		return time.UTC
	}
	return loc
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	// Atomic write: write to temp file in same directory then rename.
	tmp, err := os.CreateTemp(dir, ".confview-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	return nil
}

// Save is a convenience method on Config that delegates to the
// package-level Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
