package main

import (
	"fmt"
	"io"
	"net"
	"net/url"
	"os/user"
	"strings"

	"github.com/ergochat/readline"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
)

// askFunc prompts for one value and returns def when the answer is empty.
type askFunc func(label, def string) string

// readlineAsk prompts on rl. Without a terminal every question takes its
// default.
func readlineAsk(rl *readline.Instance) askFunc {
	return func(label, def string) string {
		if rl == nil {
			return def
		}
		p := "[Config]   " + label
		if def != "" {
			p += " [" + def + "]"
		}
		rl.SetPrompt(p + ": ")
		defer rl.SetPrompt(replPrompt)

		line, err := rl.ReadLine()
		if answer := strings.TrimSpace(line); err == nil && answer != "" {
			return answer
		}
		return def
	}
}

// dsnWizard asks for connection details and assembles an engine-specific
// DSN. An empty DSN means the user gave up.
type dsnWizard struct {
	ask askFunc
	out io.Writer
}

func (w dsnWizard) dsn(engine string) (string, error) {
	switch engine {
	case "sqlite":
		_, _ = fmt.Fprintln(w.out, "[Config] SQLite connection setup:")
		return w.ask("Database path", ":memory:"), nil
	case "mysql":
		return w.mysqlDSN(), nil
	default:
		return w.postgresDSN()
	}
}

func (w dsnWizard) postgresDSN() (string, error) {
	_, _ = fmt.Fprintln(w.out, "[Config] PostgreSQL connection setup:")

	defUser := "postgres"
	if u, err := user.Current(); err == nil && u.Username != "" {
		defUser = u.Username
	}
	name := w.ask("User", defUser)
	pass := w.ask("Password", "")
	addr := net.JoinHostPort(w.ask("Host", "localhost"), w.ask("Port", "5432"))
	db := w.ask("Database", name)
	sslMode := w.ask("SSL mode (disable/require/verify-full)", "disable")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.User(name),
		Host:     addr,
		Path:     "/" + db,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	if pass != "" {
		u.User = url.UserPassword(name, pass)
	}
	dsn := u.String()
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return "", fmt.Errorf("postgres settings: %w", err)
	}
	return dsn, nil
}

func (w dsnWizard) mysqlDSN() string {
	_, _ = fmt.Fprintln(w.out, "[Config] MySQL connection setup:")

	cfg := mysql.NewConfig()
	cfg.User = w.ask("User", "root")
	cfg.Passwd = w.ask("Password", "")
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(w.ask("Host", "localhost"), w.ask("Port", "3306"))
	cfg.DBName = w.ask("Database", "")
	if cfg.DBName == "" {
		return ""
	}
	return cfg.FormatDSN()
}
