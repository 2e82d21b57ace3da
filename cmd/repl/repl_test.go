package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bawdo/pearsql/internal/testutil"
	"github.com/bawdo/pearsql/managers"
)

func newTestSession() (*Session, *bytes.Buffer) {
	sess := NewSession("sqlite", nil)
	out := &bytes.Buffer{}
	sess.out = out
	return sess, out
}

func execAll(t *testing.T, sess *Session, commands ...string) {
	t.Helper()
	for _, cmd := range commands {
		if err := sess.Execute(cmd); err != nil {
			t.Fatalf("command %q failed: %v", cmd, err)
		}
	}
}

// helper executes commands then returns GenerateSQL output.
func execSQL(t *testing.T, commands ...string) string {
	t.Helper()
	sess := NewSession("sqlite", nil)
	sess.out = io.Discard
	execAll(t, sess, commands...)
	sql, err := sess.GenerateSQL()
	if err != nil {
		t.Fatalf("GenerateSQL failed: %v", err)
	}
	return sql
}

// execErr runs commands and returns the error of the last one.
func execErr(t *testing.T, commands ...string) error {
	t.Helper()
	sess := NewSession("sqlite", nil)
	sess.out = io.Discard
	execAll(t, sess, commands[:len(commands)-1]...)
	return sess.Execute(commands[len(commands)-1])
}

// --- Scenarios ---

func TestREPLSelectScenario(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select book as b",
		"distinct",
		"join author as a on a.id = b.author_id",
		"columns b.title as title, a.name as author_name",
		"where a.gender <> 1",
		"where a.nation = 'Germany'",
		"having count(a.publications) > 5",
		"group b.category",
		"order b.title",
		"limit 100",
		"offset 50",
	)
	testutil.AssertEqual(t, got,
		"SELECT DISTINCT b.title AS title, a.name AS author_name FROM book AS b "+
			"INNER JOIN author AS a ON (a.id = b.author_id) "+
			"WHERE (a.gender <> 1) AND (a.nation = 'Germany') "+
			"HAVING (COUNT(a.publications) > 5) GROUP BY b.category "+
			"ORDER BY b.title ASC LIMIT 100 OFFSET 50;")
}

func TestREPLUpdateScenario(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"update author as a",
		"set a.name = 'Heinrich Böll'",
		"where a.id = 27",
		"limit 1",
	)
	testutil.AssertEqual(t, got, "UPDATE author AS a SET name = 'Heinrich Böll' WHERE (a.id = 27) LIMIT 1;")
}

func TestREPLInsertScenario(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"insert author",
		"set author.name = 'Friedrich Schiller', author.gender = default",
	)
	testutil.AssertEqual(t, got, "INSERT INTO author (name, gender) VALUES ('Friedrich Schiller', DEFAULT);")
}

func TestREPLDeleteScenario(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"delete author",
		"where author.id = 27",
	)
	testutil.AssertEqual(t, got, "DELETE FROM author WHERE (id = 27);")
}

// --- Statements and clauses ---

func TestSelectStarQuoted(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, execSQL(t, "select users"), `SELECT * FROM "users";`)
}

func TestSelectMultipleTablesAndTableCommand(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"select users as u",
		"table posts as p",
		"where u.id = p.user_id",
	)
	testutil.AssertEqual(t, got,
		`SELECT * FROM "users" AS "u", "posts" AS "p" WHERE ("u"."id" = "p"."user_id");`)
}

func TestTableBeforeQueryOnlyDeclares(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	execAll(t, sess, "table author as a")
	if sess.head != nil {
		t.Fatal("table should not start a query")
	}
	if !strings.Contains(out.String(), "Declared author as a") {
		t.Errorf("unexpected output: %q", out.String())
	}
	testutil.AssertEqual(t, execSQL(t, "table author as a", "select a", "columns a.name"),
		`SELECT "a"."name" FROM "author" AS "a";`)
}

func TestWhereAndOrPrecedence(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"select users",
		"where users.age >= 18 and users.active = true or users.admin = true",
	)
	testutil.AssertEqual(t, got,
		`SELECT * FROM "users" WHERE ((("users"."age" >= 18) AND ("users"."active" = TRUE)) OR ("users"."admin" = TRUE));`)
}

func TestWhereNotInBetween(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select t",
		"where not t.status in ('a', 'b')",
		"where t.score between 1.5 and 10",
		"where t.name like 'J%'",
	)
	testutil.AssertEqual(t, got,
		"SELECT * FROM t WHERE (NOT (t.status IN ('a', 'b'))) AND (t.score BETWEEN 1.5 AND 10) AND (t.name LIKE 'J%');")
}

func TestWhereParenthesisedGroup(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select t",
		"where (t.a = 1 or t.b = 2) and t.c = 3",
	)
	testutil.AssertEqual(t, got, "SELECT * FROM t WHERE (((t.a = 1) OR (t.b = 2)) AND (t.c = 3));")
}

func TestOrderDirections(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select t",
		"order t.a, t.b desc",
		"order t.c",
		"desc",
		"asc t.a",
	)
	testutil.AssertEqual(t, got, "SELECT * FROM t ORDER BY t.a ASC, t.b DESC, t.c DESC;")
}

func TestOrderByAggregate(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select t",
		"group t.kind",
		"order count(*) desc",
	)
	testutil.AssertEqual(t, got, "SELECT * FROM t GROUP BY t.kind ORDER BY COUNT(*) DESC;")
}

func TestJoinKinds(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"select users as u",
		"left join posts as p on p.user_id = u.id",
		"right join likes on likes.post_id = p.id",
		"full join tags",
	)
	testutil.AssertEqual(t, got,
		"SELECT * FROM users AS u LEFT OUTER JOIN posts AS p ON (p.user_id = u.id) "+
			"RIGHT OUTER JOIN likes ON (likes.post_id = p.id) FULL OUTER JOIN tags;")
}

func TestUnionArms(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"select users",
		"where users.id = 1",
		"union",
		"select admins",
		"union",
		"select guests",
	)
	testutil.AssertEqual(t, got,
		`SELECT * FROM "users" WHERE ("users"."id" = 1) UNION SELECT * FROM "admins" UNION SELECT * FROM "guests";`)
}

func TestUnionPendingBlocksSQL(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession()
	execAll(t, sess, "select users", "union")
	if _, err := sess.GenerateSQL(); err != errUnionPending {
		t.Fatalf("expected errUnionPending, got %v", err)
	}
	if err := sess.Execute("insert users"); err != errUnionPending {
		t.Fatalf("expected errUnionPending for insert, got %v", err)
	}
}

func TestUnionOnDMLDoesNotPoisonQuery(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession()
	execAll(t, sess, "delete users")
	err := sess.Execute("union")
	testutil.AssertErrorIs(t, err, managers.ErrWrongOperationForClause)
	testutil.AssertNoError(t, sess.query.Err())
	execAll(t, sess, "where users.id = 1")
	sql, err := sess.GenerateSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `DELETE FROM "users" WHERE ("id" = 1);`)
}

func TestPrettyOutput(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"pretty on",
		"select t",
		"where t.id = 1",
	)
	testutil.AssertEqual(t, got, "SELECT\n*\nFROM t\nWHERE (t.id = 1);")
}

func TestSQLCommandIndentsLines(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	execAll(t, sess, "flag quote off", "pretty on", "select t")
	out.Reset()
	execAll(t, sess, "sql")
	testutil.AssertEqual(t, out.String(), "  SELECT\n  *\n  FROM t;\n")
}

func TestFlagAppliesToAllArms(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"select a",
		"union",
		"select b",
		"flag quote off",
	)
	testutil.AssertEqual(t, got, "SELECT * FROM a UNION SELECT * FROM b;")
}

func TestFlagAliasesOff(t *testing.T) {
	t.Parallel()
	got := execSQL(t,
		"flag quote off",
		"flag aliases off",
		"select book as b",
		"columns b.title",
	)
	testutil.AssertEqual(t, got, "SELECT book.title FROM book;")
}

func TestSetNullRejectedUnlessIgnored(t *testing.T) {
	t.Parallel()
	err := execErr(t, "update author", "set author.name = null")
	testutil.AssertErrorIs(t, err, managers.ErrNullValueRejected)

	got := execSQL(t, "flag quote off", "flag nulls on", "update author", "set author.name = null")
	testutil.AssertEqual(t, got, "UPDATE author SET name = NULL;")
}

func TestStickyErrorHint(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession()
	execAll(t, sess, "insert author")
	err := sess.Execute("distinct")
	testutil.AssertErrorIs(t, err, managers.ErrWrongOperationForClause)
	if !strings.Contains(err.Error(), "use 'reset'") {
		t.Errorf("missing reset hint: %v", err)
	}
	// The query stays poisoned until reset.
	err = sess.Execute("set author.name = 'x'")
	testutil.AssertErrorIs(t, err, managers.ErrWrongOperationForClause)
	_, err = sess.GenerateSQL()
	testutil.AssertErrorIs(t, err, managers.ErrWrongOperationForClause)

	execAll(t, sess, "reset")
	if _, err := sess.GenerateSQL(); err != errNoQuery {
		t.Fatalf("expected errNoQuery after reset, got %v", err)
	}
}

func TestAscWithoutOrderFails(t *testing.T) {
	t.Parallel()
	err := execErr(t, "select t", "asc")
	testutil.AssertErrorIs(t, err, managers.ErrNoPriorOrderBy)
}

func TestColumnsOnDeleteRejected(t *testing.T) {
	t.Parallel()
	err := execErr(t, "delete t", "columns t.id")
	testutil.AssertErrorIs(t, err, managers.ErrWrongOperationForClause)
}

func TestClauseWithoutQuery(t *testing.T) {
	t.Parallel()
	for _, cmd := range []string{"where t.a = 1", "columns t.a", "limit 5", "distinct", "order t.a", "union"} {
		sess, _ := newTestSession()
		_ = sess.Execute("table t")
		if err := sess.Execute(cmd); err != errNoQuery {
			t.Errorf("%q: expected errNoQuery, got %v", cmd, err)
		}
	}
}

func TestUnknownTableReference(t *testing.T) {
	t.Parallel()
	err := execErr(t, "select t", "where missing.id = 1")
	if err == nil || !strings.Contains(err.Error(), `unknown table or alias "missing"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		commands []string
		contains string
	}{
		{[]string{"bogus"}, "unknown command: bogus"},
		{[]string{"select t", "limit x"}, "limit requires an integer"},
		{[]string{"select t", "offset -"}, "offset requires an integer"},
		{[]string{"flag quote maybe"}, "expected on or off"},
		{[]string{"flag colour on"}, "unknown flag"},
		{[]string{"flag quote"}, "usage: flag"},
		{[]string{"pretty sometimes"}, "expected on or off"},
		{[]string{"engine oracle"}, "unknown engine"},
		{[]string{"select a b c d"}, "expected <table> [as <alias>]"},
		{[]string{"select t", "columns t.a as"}, "expected <table.column> [as <alias>]"},
		{[]string{"update t", "set t.a 1"}, "expected <table.column> = <value>"},
		{[]string{"select t", "where t.a ="}, "missing value after operator"},
		{[]string{"select t", "where t.a = 1 and"}, "expected condition after AND"},
		{[]string{"select t", "where t.a ~ 1"}, "unknown operator"},
		{[]string{"select t", "order t.a sideways"}, "unexpected token"},
		{[]string{"dot"}, "usage: dot"},
		{[]string{"sql"}, "no query defined"},
	}
	for _, tt := range tests {
		err := execErr(t, tt.commands...)
		if err == nil || !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("%v: expected error containing %q, got %v", tt.commands, tt.contains, err)
		}
	}
}

func TestCommandsAreCaseInsensitive(t *testing.T) {
	t.Parallel()
	got := execSQL(t, "FLAG quote off", "SELECT users", "WHERE users.id = 1", "LIMIT 2")
	testutil.AssertEqual(t, got, "SELECT * FROM users WHERE (users.id = 1) LIMIT 2;")
}

// --- Output commands ---

func TestDotWritesFile(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	path := filepath.Join(t.TempDir(), "query.dot")
	execAll(t, sess, "select users", "where users.id = 1", "dot "+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dot file: %v", err)
	}
	dot := string(data)
	if !strings.HasPrefix(dot, "digraph") {
		t.Errorf("expected a digraph, got:\n%s", dot)
	}
	if !strings.Contains(dot, "WHERE") {
		t.Errorf("missing WHERE edge:\n%s", dot)
	}
	if !strings.Contains(out.String(), "Wrote DOT to "+path) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestTablesListing(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	execAll(t, sess, "table users", "table author as a")
	out.Reset()
	execAll(t, sess, "tables")
	testutil.AssertEqual(t, out.String(),
		"  alias: a -> author\n  table: author (as a)\n  table: users\n")
}

func TestTablesEmpty(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	execAll(t, sess, "tables")
	testutil.AssertEqual(t, out.String(), "  No tables declared\n")
}

func TestHelpMentionsCommands(t *testing.T) {
	t.Parallel()
	sess, out := newTestSession()
	execAll(t, sess, "help")
	for _, want := range []string{"select <t>", "flag quote", "union", "exec", "dot <filepath>"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("help missing %q", want)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession()
	off := false
	cfg := defaultReplConfig()
	cfg.Engine = "postgres"
	cfg.Pretty = true
	cfg.QuoteIdentifiers = &off
	sess.applyConfig(cfg)
	testutil.AssertEqual(t, sess.engine, "postgres")
	testutil.AssertEqual(t, sess.pretty, true)
	testutil.AssertEqual(t, sess.config.QuoteIdentifiers, false)
	testutil.AssertEqual(t, sess.config.ResolveAliases, true)
}

func TestCommandNamesSortedAndVisible(t *testing.T) {
	t.Parallel()
	sess, _ := newTestSession()
	names := sess.commandNames()
	seen := map[string]bool{}
	for i, n := range names {
		if i > 0 && names[i-1] > n {
			t.Errorf("names not sorted at %d: %q > %q", i, names[i-1], n)
		}
		seen[n] = true
	}
	for _, want := range []string{"select", "insert", "left join", "flag", "exit", "quit"} {
		if !seen[want] {
			t.Errorf("missing command %q", want)
		}
	}
	for _, hidden := range []string{"t", "take", "tosql", "insert into"} {
		if seen[hidden] {
			t.Errorf("hidden command %q listed", hidden)
		}
	}
}
