// Package config loads indexer settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/sdindex/internal/musicdb"
)

const appName = "sdindex"

type Config struct {
	RootLabel string    `koanf:"root_label"` // first segment of every stored song path
	BatchSize int       `koanf:"batch_size"` // songs per committed transaction
	DBName    string    `koanf:"db_name"`    // file name used when the output is a directory or omitted
	Verbose   bool      `koanf:"verbose"`
	Verify    bool      `koanf:"verify"` // verify the database after indexing
	Log       LogConfig `koanf:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // "debug", "info", "warn", "error"
	Format string `koanf:"format"` // "text" or "json"
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		RootLabel: musicdb.DefaultRootLabel,
		BatchSize: musicdb.DefaultBatchSize,
		DBName:    "music.db",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the config files that exist, in order of priority (last wins),
// over the defaults. explicit, when not empty, is loaded last and must exist.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	if explicit != "" {
		path := expandPath(explicit)
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.RootLabel = strings.Trim(cfg.RootLabel, "/")
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("batch_size must be positive, got %d", c.BatchSize))
	}
	if c.RootLabel == "" {
		errs = append(errs, errors.New("root_label must not be empty"))
	} else if strings.Contains(c.RootLabel, `\`) {
		errs = append(errs, fmt.Errorf("root_label %q must use forward slashes", c.RootLabel))
	}
	if c.DBName == "" || strings.ContainsAny(c.DBName, `/\`) {
		errs = append(errs, fmt.Errorf("db_name %q must be a plain file name", c.DBName))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q is not text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// OutputPath resolves where the database goes. An empty output puts DBName
// next to the music folder, where the device expects it; an existing
// directory gets DBName inside it.
func (c *Config) OutputPath(musicFolder, output string) string {
	if output == "" {
		abs, err := filepath.Abs(musicFolder)
		if err != nil {
			abs = musicFolder
		}
		return filepath.Join(filepath.Dir(abs), c.DBName)
	}
	output = expandPath(output)
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, c.DBName)
	}
	return output
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/sdindex/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./sdindex.toml (pwd, highest priority)
		appName + ".toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
