package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var driverName = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// catalog holds the introspection statements for one engine. columns
// takes the table name as its only parameter.
type catalog struct {
	tables  string
	columns string
}

var catalogs = map[string]catalog{
	"postgres": {
		tables:  "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name",
		columns: "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position",
	},
	"mysql": {
		tables:  "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name",
		columns: "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position",
	},
	"sqlite": {
		tables:  "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
		columns: "SELECT name FROM pragma_table_info(?)",
	},
}

const (
	maxRows      = 1000
	queryTimeout = 30 * time.Second
)

type dbConn struct {
	db      *sql.DB
	dsn     string
	engine  string
	tables  []string
	columns map[string][]string // table name -> column names, filled lazily
	log     *slog.Logger
}

func connect(engine, dsn string, log *slog.Logger) (*dbConn, error) {
	driver, ok := driverName[engine]
	if !ok {
		return nil, fmt.Errorf("no driver for engine %q", engine)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	conn := &dbConn{db: db, dsn: dsn, engine: engine, columns: make(map[string][]string), log: log}
	// Introspection only feeds tab completion; a failure is not fatal.
	if err := conn.loadSchema(); err != nil {
		log.Warn("schema introspection failed", "engine", engine, "err", err)
	}
	log.Info("connected", "engine", engine, "dsn", sanitizeDSN(dsn), "tables", len(conn.tables))
	return conn, nil
}

func (c *dbConn) close() error {
	err := c.db.Close()
	c.log.Info("disconnected", "engine", c.engine, "dsn", sanitizeDSN(c.dsn), "err", err)
	return err
}

// execQuery runs a row-returning statement and formats the result.
func (c *dbConn) execQuery(sqlStr string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := c.db.QueryContext(ctx, sqlStr)
	if err != nil {
		c.log.Debug("query failed", "sql", sqlStr, "err", err)
		return "", fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, data, truncated, err := scanRows(rows)
	if err != nil {
		return "", err
	}
	c.log.Debug("query", "sql", sqlStr, "rows", len(data), "elapsed", time.Since(start))

	out := formatTable(columns, data)
	if truncated {
		out += fmt.Sprintf("(truncated at %d rows)\n", maxRows)
	}
	return out, nil
}

// execStatement runs INSERT, UPDATE or DELETE and returns the number of
// affected rows.
func (c *dbConn) execStatement(sqlStr string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	start := time.Now()
	res, err := c.db.ExecContext(ctx, sqlStr)
	if err != nil {
		c.log.Debug("exec failed", "sql", sqlStr, "err", err)
		return 0, fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	c.log.Debug("exec", "sql", sqlStr, "rows", n, "elapsed", time.Since(start))
	return n, nil
}

// scanRows reads at most maxRows rows as strings; NULL becomes "NULL".
func scanRows(rows *sql.Rows) (columns []string, data [][]string, truncated bool, err error) {
	columns, err = rows.Columns()
	if err != nil {
		return nil, nil, false, fmt.Errorf("columns: %w", err)
	}
	cells := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	for rows.Next() {
		if len(data) == maxRows {
			truncated = true
			break
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, false, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(cells))
		for i, cell := range cells {
			row[i] = "NULL"
			if cell.Valid {
				row[i] = cell.String
			}
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, false, fmt.Errorf("rows: %w", err)
	}
	return columns, data, truncated, nil
}

// formatTable renders rows as a boxed, left-aligned text table followed
// by a row count.
func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for _, row := range append([][]string{columns}, rows...) {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	rule := func() {
		b.WriteByte('+')
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteByte('+')
		}
		b.WriteByte('\n')
	}
	line := func(cells []string) {
		b.WriteByte('|')
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s |", widths[i], cell)
		}
		b.WriteByte('\n')
	}

	rule()
	line(columns)
	rule()
	for _, row := range rows {
		line(row)
	}
	rule()

	if len(rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	}
	return b.String()
}

func (c *dbConn) loadSchema() error {
	cat, ok := catalogs[c.engine]
	if !ok {
		return fmt.Errorf("unsupported engine: %s", c.engine)
	}
	tables, err := c.queryStrings(cat.tables)
	if err != nil {
		return err
	}
	c.tables = tables
	return nil
}

func (c *dbConn) schemaTables() []string {
	return c.tables
}

// schemaColumns returns the column names of table, caching successful
// lookups.
func (c *dbConn) schemaColumns(table string) []string {
	if cols, ok := c.columns[table]; ok {
		return cols
	}
	cat, ok := catalogs[c.engine]
	if !ok {
		return nil
	}
	cols, err := c.queryStrings(cat.columns, table)
	if err != nil {
		c.log.Debug("column introspection failed", "table", table, "err", err)
		return nil
	}
	c.columns[table] = cols
	return cols
}

// queryStrings runs a single-column query and collects its values.
func (c *dbConn) queryStrings(query string, args ...any) ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// sanitizeDSN masks the password of a URL-style or MySQL-style DSN so it
// can be printed and logged.
func sanitizeDSN(dsn string) string {
	if u, err := url.Parse(dsn); err == nil && u.Scheme != "" && u.User != nil {
		if _, ok := u.User.Password(); !ok {
			return dsn
		}
		// Built by hand so the mask is not percent-encoded.
		masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
		if u.RawQuery != "" {
			masked += "?" + u.RawQuery
		}
		return masked
	}

	// user:pass@tcp(host)/db
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	user, _, hasPass := strings.Cut(dsn[:at], ":")
	if !hasPass {
		return dsn
	}
	return user + ":****" + dsn[at:]
}
