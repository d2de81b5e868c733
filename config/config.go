// Package config loads the yaml configuration for the crawlpage CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures the full configuration of the tool.
type Config struct {
	Page    PageConfig    `yaml:"page"`
	DB      DBConfig      `yaml:"db"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// PageConfig carries page-engine settings applied to every constructed page.
type PageConfig struct {
	// DomainAliases are hostnames treated as the same site as the page host.
	DomainAliases []string `yaml:"domain_aliases"`
	// SuccessCodes, when set, replaces the default successful status range.
	SuccessCodes []int `yaml:"success_codes"`
}

// DBConfig describes the SQLite page store.
type DBConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig controls where rendered artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Structured bool   `yaml:"structured"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DB:      DBConfig{Path: "crawlpage.db"},
		Output:  OutputConfig{Dir: "."},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the yaml file at path on top of the defaults. A missing file is
// not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the rest of the tool cannot act on.
func (c Config) Validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unsupported log level %q", c.Logging.Level)
	}
	for _, code := range c.Page.SuccessCodes {
		if code < 100 || code > 599 {
			return fmt.Errorf("success code %d out of range", code)
		}
	}
	return nil
}
