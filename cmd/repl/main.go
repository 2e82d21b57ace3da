// REPL binary for interactively building SQL statements with pearsql and
// running them against a database.
//
// Configuration is layered: defaults, then the YAML file
// ($XDG_CONFIG_HOME/pearsql/repl.yaml or --config), then the environment
//
//	PEARSQL_ENGINE=postgres|mysql|sqlite
//	DATABASE_URL=<dsn>                    (auto-connects if set)
//
// and finally command-line flags.
//
// Usage:
//
//	go run ./cmd/repl [--engine sqlite] [--dsn :memory:] [--log-level debug]
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ergochat/readline"
	"github.com/spf13/cobra"
)

const replPrompt = "pearsql> "

// rootOptions holds the command-line flags.
type rootOptions struct {
	ConfigFile string
	Engine     string
	DSN        string
	LogLevel   string
	NoQuotes   bool
	Pretty     bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "pearsql",
		Short:        "Interactive SQL query builder",
		Long:         "Build SELECT, INSERT, UPDATE and DELETE statements one clause at a time and run them against PostgreSQL, MySQL or SQLite.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts, os.Getenv)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			logger.Debug("config loaded", "engine", cfg.Engine, "pretty", cfg.Pretty, "history", cfg.HistoryFile)
			return runREPL(cfg, logger)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "", "path to a YAML config file (default "+configPath()+")")
	cmd.Flags().StringVar(&opts.Engine, "engine", "", "database engine (postgres|mysql|sqlite)")
	cmd.Flags().StringVar(&opts.DSN, "dsn", "", "connect to this DSN on startup")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.Flags().BoolVar(&opts.NoQuotes, "no-quotes", false, "render identifiers without double quotes")
	cmd.Flags().BoolVar(&opts.Pretty, "pretty", false, "render one clause per line")

	return cmd
}

// resolveConfig layers the config file, environment and flags.
func resolveConfig(cmd *cobra.Command, opts *rootOptions, getenv func(string) string) (replConfig, error) {
	path, required := opts.ConfigFile, true
	if path == "" {
		path, required = configPath(), false
	}
	cfg, err := loadConfig(path, required)
	if err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("engine") {
		engine := strings.ToLower(strings.TrimSpace(opts.Engine))
		if !isValidEngine(engine) {
			return cfg, fmt.Errorf("invalid --engine %q (choose: postgres, mysql, sqlite)", opts.Engine)
		}
		cfg.Engine = engine
	}
	if flags.Changed("dsn") {
		cfg.DSN = opts.DSN
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.LogLevel
	}
	if flags.Changed("no-quotes") {
		quote := !opts.NoQuotes
		cfg.QuoteIdentifiers = &quote
	}
	if flags.Changed("pretty") {
		cfg.Pretty = opts.Pretty
	}
	return cfg, nil
}

func runREPL(cfg replConfig, logger *slog.Logger) error {
	rl, err := readline.NewFromConfig(&readline.Config{
		Prompt:          "[Config] ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer func() { _ = rl.Close() }()

	sess := NewSession(cfg.Engine, rl)
	sess.applyConfig(cfg)
	sess.log = logger
	fmt.Printf("[Config] Engine: %s\n", sess.engine)

	// Set up the completer now that we have a session.
	comp := &replCompleter{sess: sess}
	_ = rl.SetConfig(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     cfg.HistoryFile,
		HistoryLimit:    500,
		AutoComplete:    comp,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})

	if cfg.DSN != "" {
		fmt.Printf("[Config] Connecting to %s...\n", sanitizeDSN(cfg.DSN))
		if err := sess.Execute("connect " + cfg.DSN); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: connect failed: %v\n", err)
		}
	} else {
		loadConnection(rl, sess)
	}

	fmt.Println()
	fmt.Println("pearsql REPL: type 'help' for commands, 'exit' to quit")
	fmt.Println()

	rl.SetPrompt(replPrompt)
	for {
		line, err := rl.ReadLine()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if lower == "exit" || lower == "quit" {
			break
		}
		if err := sess.Execute(line); err != nil {
			logger.Debug("command failed", "line", line, "err", err)
			fmt.Fprintf(os.Stderr, "  Error: %v\n", err)
		}
	}
	if sess.conn != nil {
		_ = sess.conn.close()
	}
	fmt.Println()
	return nil
}

func loadConnection(rl *readline.Instance, sess *Session) {
	answer := strings.ToLower(readlineAsk(rl)("Connect to a database? (y/N)", ""))
	if answer != "y" && answer != "yes" {
		fmt.Println("[Config] Skipped, use 'connect <dsn>' later to connect")
		return
	}
	if err := sess.connectViaWizard(); err != nil {
		fmt.Fprintf(os.Stderr, "  Warning: connect failed: %v\n", err)
		fmt.Println("[Config] Use 'connect <dsn>' later to retry")
	}
}
