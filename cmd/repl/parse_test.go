package main

import (
	"slices"
	"testing"

	"github.com/bawdo/pearsql/internal/testutil"
	"github.com/bawdo/pearsql/nodes"
	"github.com/bawdo/pearsql/visitors"
)

// --- Tokenizer ---

func TestTokenizeSimple(t *testing.T) {
	t.Parallel()
	tokens := tokenize("users.age > 18")
	expected := []string{"users.age", ">", "18"}
	if !slices.Equal(tokens, expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
}

func TestTokenizeQuotedString(t *testing.T) {
	t.Parallel()
	tokens := tokenize("users.name = 'John Smith'")
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, got %d: %v", len(tokens), tokens)
	}
	if tokens[2] != "'John Smith'" {
		t.Errorf("expected 'John Smith', got %q", tokens[2])
	}
}

func TestTokenizeEscapedQuote(t *testing.T) {
	t.Parallel()
	tokens := tokenize("t.name = 'O''Brien'")
	if len(tokens) != 3 || tokens[2] != "'O''Brien'" {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
}

func TestTokenizeOperators(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected []string
	}{
		{"a != b", []string{"a", "!=", "b"}},
		{"a <> b", []string{"a", "<>", "b"}},
		{"a >= b", []string{"a", ">=", "b"}},
		{"a <= b", []string{"a", "<=", "b"}},
		{"a = b", []string{"a", "=", "b"}},
		{"a > b", []string{"a", ">", "b"}},
		{"a < b", []string{"a", "<", "b"}},
		{"a=b", []string{"a", "=", "b"}},
		{"count(t.c)>5", []string{"count", "(", "t.c", ")", ">", "5"}},
		{"t.c in (1,2)", []string{"t.c", "in", "(", "1", ",", "2", ")"}},
	}
	for _, tt := range tests {
		tokens := tokenize(tt.input)
		if !slices.Equal(tokens, tt.expected) {
			t.Errorf("tokenize(%q): expected %v, got %v", tt.input, tt.expected, tokens)
		}
	}
}

// --- Values ---

func TestParseValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  any
	}{
		{"42", 42},
		{"-7", -7},
		{"2.5", 2.5},
		{"true", true},
		{"FALSE", false},
		{"null", nil},
		{"'hello'", "hello"},
		{"'it''s'", "it's"},
		{"''", ""},
	}
	for _, tt := range tests {
		got, err := parseValue(tt.token)
		if err != nil {
			t.Errorf("parseValue(%q): %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseValue(%q): got %#v, want %#v", tt.token, got, tt.want)
		}
	}
}

func TestParseValueRejectsBareWords(t *testing.T) {
	t.Parallel()
	if _, err := parseValue("bareword"); err == nil {
		t.Fatal("expected error for unquoted word")
	}
}

// --- Expressions ---

func exprSession(tables ...string) *Session {
	sess, _ := newTestSession()
	for _, name := range tables {
		sess.ensureTable(name)
	}
	return sess
}

func renderExpr(t *testing.T, sess *Session, input string) string {
	t.Helper()
	n, err := sess.parseExpression(input)
	testutil.AssertNoError(t, err)
	return visitors.Key(n)
}

func TestParseExpression(t *testing.T) {
	t.Parallel()
	sess := exprSession("t", "u")
	tests := []struct {
		input string
		want  string
	}{
		{"t.a = 1", "(t.a = 1)"},
		{"t.a != 'x'", "(t.a <> 'x')"},
		{"t.a <> u.b", "(t.a <> u.b)"},
		{"t.a <= 2.5", "(t.a <= 2.5)"},
		{"t.a LIKE 'J%'", "(t.a LIKE 'J%')"},
		{"t.a in (1, 2, 3)", "(t.a IN (1, 2, 3))"},
		{"t.a between 1 and 5", "(t.a BETWEEN 1 AND 5)"},
		{"not t.a = 1", "(NOT (t.a = 1))"},
		{"t.a = 1 and t.b = 2", "((t.a = 1) AND (t.b = 2))"},
		{"t.a = 1 or t.b = 2 and t.c = 3", "((t.a = 1) OR ((t.b = 2) AND (t.c = 3)))"},
		{"t.a between 1 and 5 and t.b = 2", "((t.a BETWEEN 1 AND 5) AND (t.b = 2))"},
		{"(t.a = 1)", "(t.a = 1)"},
		{"not (t.a = 1 or t.b = 2)", "(NOT ((t.a = 1) OR (t.b = 2)))"},
		{"count(t.a) > 5", "(COUNT(t.a) > 5)"},
		{"max(t.a) >= min(u.b)", "(MAX(t.a) >= MIN(u.b))"},
		{"count(*) = 0", "(COUNT(*) = 0)"},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, renderExpr(t, sess, tt.input), tt.want)
	}
}

func TestParseExpressionResolvesAlias(t *testing.T) {
	t.Parallel()
	sess := exprSession()
	sess.declareTable("author", "a")
	n, err := sess.parseExpression("a.id = 1")
	testutil.AssertNoError(t, err)
	cond := n.(*nodes.Condition)
	col := cond.Left.(*nodes.Column)
	testutil.AssertEqual(t, col.Table.Name, "author")
	testutil.AssertEqual(t, col.Table.Alias, "a")
}

func TestParseExpressionErrors(t *testing.T) {
	t.Parallel()
	sess := exprSession("t")
	for _, input := range []string{
		"",
		"t.a",
		"t.a =",
		"t.a = 1 or",
		"t.a in 1, 2",
		"t.a in ()",
		"t.a between 1",
		"t.a between 1 or 2",
		"t.a = 1 2",
		"nope(t.a) = 1",
		"count(t.a = 1",
		"x.a = 1",
		"t.a = bare",
	} {
		if _, err := sess.parseExpression(input); err == nil {
			t.Errorf("parseExpression(%q): expected error", input)
		}
	}
}

func TestParseOperandDefault(t *testing.T) {
	t.Parallel()
	sess := exprSession()
	n, next, err := sess.parseOperand([]string{"DEFAULT"}, 0)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, next, 1)
	fn, ok := n.(*nodes.Function)
	if !ok || fn.Kind != nodes.FuncDefault {
		t.Fatalf("expected DEFAULT, got %#v", n)
	}
}

func TestParseOperandFloatIsNotColumn(t *testing.T) {
	t.Parallel()
	sess := exprSession()
	n, _, err := sess.parseOperand([]string{"3.14"}, 0)
	testutil.AssertNoError(t, err)
	lit, ok := n.(*nodes.LiteralNode)
	if !ok || lit.Value != 3.14 {
		t.Fatalf("expected literal 3.14, got %#v", n)
	}
}

func TestResolveColRefErrors(t *testing.T) {
	t.Parallel()
	sess := exprSession("t")
	for _, ref := range []string{"t.", ".c", "t", "t.a, t.b", "missing.c"} {
		if _, err := sess.resolveColRef(ref); err == nil {
			t.Errorf("resolveColRef(%q): expected error", ref)
		}
	}
}

// --- Declarations and splitting ---

func TestParseTableDecl(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input       string
		name, alias string
	}{
		{"author", "author", ""},
		{" author ", "author", ""},
		{"author as a", "author", "a"},
		{"author AS a", "author", "a"},
		{"author a", "author", "a"},
	}
	for _, tt := range tests {
		name, alias, err := parseTableDecl(tt.input)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, name, tt.name)
		testutil.AssertEqual(t, alias, tt.alias)
	}
	for _, bad := range []string{"", "a as", "a b c d"} {
		if _, _, err := parseTableDecl(bad); err == nil {
			t.Errorf("parseTableDecl(%q): expected error", bad)
		}
	}
}

func TestSplitTopLevelCommas(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  []string
	}{
		{"a, b", []string{"a", " b"}},
		{"count(t.a), t.b", []string{"count(t.a)", " t.b"}},
		{"t.a = 'x, y', t.b = 1", []string{"t.a = 'x, y'", " t.b = 1"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitTopLevelCommas(tt.input)
		if !slices.Equal(got, tt.want) {
			t.Errorf("splitTopLevelCommas(%q): got %q, want %q", tt.input, got, tt.want)
		}
	}
}
