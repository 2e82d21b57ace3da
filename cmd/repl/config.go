package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bawdo/pearsql/managers"
)

// replConfig is the on-disk REPL configuration. Flags and environment
// variables override the file.
type replConfig struct {
	Engine           string `yaml:"engine"`
	DSN              string `yaml:"dsn"`
	LogLevel         string `yaml:"log_level"`
	Pretty           bool   `yaml:"pretty"`
	QuoteIdentifiers *bool  `yaml:"quote_identifiers"`
	ResolveAliases   *bool  `yaml:"resolve_aliases"`
	IgnoreNullValues *bool  `yaml:"ignore_null_values"`
	HistoryFile      string `yaml:"history_file"`
}

func defaultReplConfig() replConfig {
	return replConfig{
		Engine:      "sqlite",
		LogLevel:    "warn",
		HistoryFile: historyPath(),
	}
}

// loadConfig reads path over the defaults. A missing file is not an error
// when path is the default location. Unknown keys are rejected.
func loadConfig(path string, required bool) (replConfig, error) {
	cfg := defaultReplConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Engine = strings.ToLower(strings.TrimSpace(cfg.Engine))
	if !isValidEngine(cfg.Engine) {
		return cfg, fmt.Errorf("config %s: unknown engine %q", path, cfg.Engine)
	}
	return cfg, nil
}

// applyEnv layers PEARSQL_ENGINE and DATABASE_URL over cfg.
func (c *replConfig) applyEnv(getenv func(string) string) error {
	if engine := strings.TrimSpace(strings.ToLower(getenv("PEARSQL_ENGINE"))); engine != "" {
		if !isValidEngine(engine) {
			return fmt.Errorf("invalid PEARSQL_ENGINE=%q", engine)
		}
		c.Engine = engine
	}
	if dsn := getenv("DATABASE_URL"); dsn != "" {
		c.DSN = dsn
	}
	return nil
}

// builderConfig turns the formatting keys into a managers.Config,
// keeping the library defaults for keys that are not set.
func (c replConfig) builderConfig() managers.Config {
	bc := managers.DefaultConfig()
	if c.QuoteIdentifiers != nil {
		bc.QuoteIdentifiers = *c.QuoteIdentifiers
	}
	if c.ResolveAliases != nil {
		bc.ResolveAliases = *c.ResolveAliases
	}
	if c.IgnoreNullValues != nil {
		bc.IgnoreNullValues = *c.IgnoreNullValues
	}
	return bc
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// newLogger returns a text logger on w at the given level.
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func isValidEngine(engine string) bool {
	switch engine {
	case "postgres", "mysql", "sqlite":
		return true
	}
	return false
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pearsql", "repl.yaml")
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pearsql_history")
}
