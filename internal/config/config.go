// Package config loads funcselector settings from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LocalFile is the override looked up in the working directory when no
// explicit config path is given.
const LocalFile = "funcselector.toml"

//go:embed default.toml
var defaultData []byte

// Config holds the application configuration.
type Config struct {
	Scan       ScanConfig     `toml:"scan"`
	Unsafe     UnsafeConfig   `toml:"unsafe"`
	Categories []CategoryRule `toml:"category"`
}

// ScanConfig controls directory mode.
type ScanConfig struct {
	MaxFileSize int64    `toml:"max_file_size"`
	Workers     int      `toml:"workers"`
	SkipDirs    []string `toml:"skip_dirs"`
}

// UnsafeConfig controls unsafe region recognition.
type UnsafeConfig struct {
	CountTerminated bool `toml:"count_terminated"`
}

// CategoryRule maps type tags to a coarse category.
type CategoryRule struct {
	Name     string   `toml:"name"`
	Exact    []string `toml:"exact"`
	Prefixes []string `toml:"prefixes"`
	Suffixes []string `toml:"suffixes"`
}

// DefaultTOML returns the commented default configuration file.
func DefaultTOML() []byte {
	return append([]byte(nil), defaultData...)
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(defaultData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded config: %w", err)
	}
	return &cfg, nil
}

// Load returns the configuration at path layered over the defaults. With an
// empty path it uses LocalFile when present and the defaults otherwise.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	if _, err := os.Stat(LocalFile); err == nil {
		return LoadFile(LocalFile)
	}
	return Default()
}

// LoadFile decodes the TOML file at path over the defaults. Keys present in
// the file replace the default values; a [[category]] list replaces the
// default rules as a whole.
func LoadFile(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	defaults := cfg.Categories
	cfg.Categories = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown config key %q", path, undecoded[0].String())
	}
	if !md.IsDefined("category") {
		cfg.Categories = defaults
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Scan.MaxFileSize <= 0 {
		return errors.New("scan.max_file_size must be positive")
	}
	if c.Scan.Workers < 0 {
		return errors.New("scan.workers must not be negative")
	}
	for i, r := range c.Categories {
		if r.Name == "" {
			return fmt.Errorf("category %d has no name", i+1)
		}
	}
	return nil
}
