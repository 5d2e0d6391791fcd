// Package config handles the firstissue configuration file.
//
// Settings live in a TOML file under the user config directory
// (~/.config/firstissue/config.toml). Missing files and missing keys fall
// back to defaults, so a partial or absent config is never an error. The
// GitHub token can also come from the GITHUB_TOKEN environment variable;
// an explicit value always wins over the environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/quantumpixelator/firstissue/pkg/errors"
)

// appName is used for config and cache directory names.
const appName = "firstissue"

// DefaultLabels are the beginner-issue labels offered when the user has not
// configured their own.
var DefaultLabels = []string{"good first issue", "good-first-issue", "beginner"}

// Config holds persisted user settings.
type Config struct {
	// Labels are the issue labels to offer as search tags.
	Labels []string `toml:"labels"`

	// Token is the GitHub API token, stored in plain text like gh does.
	Token string `toml:"token"`

	// Days is the default recency window for searches.
	Days int `toml:"days"`

	// Languages are the default language filters.
	Languages []string `toml:"languages"`

	// Cache selects the cache backend: "file" (default) or "redis".
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	RedisAddr string `toml:"redis_addr"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Labels: append([]string(nil), DefaultLabels...),
		Days:   90,
		Cache:  CacheConfig{Backend: "file"},
	}
}

// Path returns the config file path, honoring XDG_CONFIG_HOME.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path. A missing file returns defaults.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if len(cfg.Labels) == 0 {
		cfg.Labels = append([]string(nil), DefaultLabels...)
	}
	if cfg.Days <= 0 {
		cfg.Days = 90
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "file"
	}
	return cfg, nil
}

// Save writes the config file at path, creating parent directories.
// The file is written 0600 because it may contain a token.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// ResolveToken picks the effective GitHub token: explicit flag value first,
// then the stored config value, then the GITHUB_TOKEN environment variable.
func ResolveToken(flagValue string, cfg Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg.Token != "" {
		return cfg.Token
	}
	return os.Getenv("GITHUB_TOKEN")
}
