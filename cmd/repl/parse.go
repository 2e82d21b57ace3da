package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/bawdo/pearsql/nodes"
)

var twoCharOps = []string{"!=", "<>", "<=", ">="}

// tokenize splits a command argument into words, quoted strings,
// operators and the punctuation ( ) ,. A quoted token keeps its quotes
// and any doubled '' inside it.
func tokenize(input string) []string {
	var tokens []string
	word := -1
	endWord := func(i int) {
		if word >= 0 {
			tokens = append(tokens, input[word:i])
			word = -1
		}
	}

	for i := 0; i < len(input); {
		c := input[i]
		switch {
		case c == '\'':
			endWord(i)
			end := quoteEnd(input, i)
			tokens = append(tokens, input[i:end])
			i = end
			continue
		case i+1 < len(input) && slices.Contains(twoCharOps, input[i:i+2]):
			endWord(i)
			tokens = append(tokens, input[i:i+2])
			i += 2
			continue
		case strings.IndexByte("=<>(),", c) >= 0:
			endWord(i)
			tokens = append(tokens, input[i:i+1])
		case c == ' ' || c == '\t':
			endWord(i)
		case word < 0:
			word = i
		}
		i++
	}
	endWord(len(input))
	return tokens
}

// quoteEnd returns the index just past the string literal opening at
// start. An unterminated literal runs to the end of s.
func quoteEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		if s[i] != '\'' {
			continue
		}
		if i+1 < len(s) && s[i+1] == '\'' {
			i++
			continue
		}
		return i + 1
	}
	return len(s)
}

// parseValue turns a literal token into a boolean, nil, string, int or
// float64.
func parseValue(token string) (any, error) {
	switch strings.ToLower(token) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if len(token) >= 2 && token[0] == '\'' && token[len(token)-1] == '\'' {
		return strings.ReplaceAll(token[1:len(token)-1], "''", "'"), nil
	}
	if n, err := strconv.Atoi(token); err == nil {
		return n, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("not a value: %s (quote strings with '...')", token)
}

// aggregateFunc maps a lowercase function name to a constructor.
func aggregateFunc(name string) (func(any) *nodes.Function, bool) {
	switch name {
	case "count":
		return nodes.Count, true
	case "sum":
		return nodes.Sum, true
	case "avg":
		return nodes.Avg, true
	case "min":
		return nodes.Min, true
	case "max":
		return nodes.Max, true
	default:
		return nil, false
	}
}

// parseOperand parses a single operand: aggregate call, DEFAULT, column
// reference, or literal value. It returns the node and the next position.
func (s *Session) parseOperand(tokens []string, pos int) (nodes.Node, int, error) {
	if pos >= len(tokens) {
		return nil, pos, errors.New("expected expression")
	}

	token := tokens[pos]
	lower := strings.ToLower(token)

	if pos+1 < len(tokens) && tokens[pos+1] == "(" {
		fn, ok := aggregateFunc(lower)
		if !ok {
			return nil, pos, fmt.Errorf("unknown function: %s", token)
		}
		return s.parseAggregateCall(tokens, pos, fn)
	}

	if lower == "default" {
		return nodes.Default(), pos + 1, nil
	}

	// Column reference.
	if strings.Contains(token, ".") && !strings.HasPrefix(token, "'") {
		if _, err := strconv.ParseFloat(token, 64); err != nil {
			col, err := s.resolveColRef(token)
			if err != nil {
				return nil, pos, err
			}
			return col, pos + 1, nil
		}
	}

	val, err := parseValue(token)
	if err != nil {
		return nil, pos, err
	}
	return nodes.Literal(val), pos + 1, nil
}

// parseAggregateCall parses NAME(operand) or NAME(*).
func (s *Session) parseAggregateCall(tokens []string, pos int, fn func(any) *nodes.Function) (nodes.Node, int, error) {
	name := strings.ToUpper(tokens[pos])
	pos += 2 // skip name and (
	if pos >= len(tokens) {
		return nil, pos, fmt.Errorf("expected argument to %s", name)
	}

	var arg any
	if tokens[pos] == "*" {
		pos++
	} else {
		operand, next, err := s.parseOperand(tokens, pos)
		if err != nil {
			return nil, pos, err
		}
		arg = operand
		pos = next
	}

	if pos >= len(tokens) || tokens[pos] != ")" {
		return nil, pos, fmt.Errorf("expected ) after %s argument", name)
	}
	return fn(arg), pos + 1, nil
}

// resolveColRef resolves "table.column" into a *Column using tables
// registered in the session, by name or alias.
func (s *Session) resolveColRef(ref string) (*nodes.Column, error) {
	if strings.ContainsAny(ref, ", \t") {
		return nil, fmt.Errorf("expected table.column, got %q (use commas to separate multiple columns)", ref)
	}
	parts := strings.SplitN(ref, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("expected table.column, got %q", ref)
	}
	t, ok := s.lookupTable(parts[0])
	if !ok {
		return nil, fmt.Errorf("unknown table or alias %q (register with 'table %s' first)", parts[0], parts[0])
	}
	return t.Col(parts[1]), nil
}

// comparison builds a binary comparison for an operator token.
func comparison(op string, left nodes.Node, right nodes.Node) (*nodes.Condition, bool) {
	var kind nodes.ConditionKind
	switch op {
	case "=":
		kind = nodes.CondEq
	case "!=", "<>":
		kind = nodes.CondNotEq
	case ">":
		kind = nodes.CondGt
	case ">=":
		kind = nodes.CondGtEq
	case "<":
		kind = nodes.CondLt
	case "<=":
		kind = nodes.CondLtEq
	case "like":
		kind = nodes.CondLike
	default:
		return nil, false
	}
	return nodes.NewCondition(kind, left, right), true
}

func isComparisonOp(op string) bool {
	switch op {
	case "=", "!=", "<>", ">", ">=", "<", "<=", "like":
		return true
	}
	return false
}

// splitBoolean splits tokens on top-level AND and OR. ops[i] joins
// terms[i] to terms[i+1]; the AND of a BETWEEN range is not a split point.
func splitBoolean(tokens []string) (terms [][]string, ops []string) {
	var cur []string
	depth, between := 0, false
	for _, tok := range tokens {
		word := strings.ToLower(tok)
		switch {
		case word == "(":
			depth++
		case word == ")":
			depth--
		case depth > 0:
		case word == "between":
			between = true
		case word == "and" && between:
			between = false
		case word == "and" || word == "or":
			terms = append(terms, cur)
			ops = append(ops, word)
			cur = nil
			continue
		}
		cur = append(cur, tok)
	}
	if len(cur) > 0 {
		terms = append(terms, cur)
	}
	return terms, ops
}

// parseExpression parses conditions joined by AND and OR, with AND
// binding tighter.
func (s *Session) parseExpression(input string) (nodes.Node, error) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, errors.New("empty expression")
	}
	return s.parseExpressionTokens(tokens)
}

func (s *Session) parseExpressionTokens(tokens []string) (nodes.Node, error) {
	terms, ops := splitBoolean(tokens)
	if len(terms) == 0 {
		return nil, errors.New("empty expression")
	}
	if len(ops) == len(terms) {
		return nil, fmt.Errorf("expected condition after %s", strings.ToUpper(ops[len(ops)-1]))
	}

	// Each OR starts a new group; the groups' members are ANDed.
	var groups []any
	var group []any
	for i, term := range terms {
		cond, err := s.parseSingleCondition(term)
		if err != nil {
			return nil, err
		}
		group = append(group, cond)
		if i == len(ops) || ops[i] == "or" {
			groups = append(groups, nodes.And(group...))
			group = nil
		}
	}
	return nodes.Or(groups...), nil
}

// parseSingleCondition handles a NOT prefix and parenthesised groups, then
// delegates to parseConditionFromTokens.
func (s *Session) parseSingleCondition(tokens []string) (nodes.Node, error) {
	if len(tokens) == 0 {
		return nil, errors.New("empty condition")
	}

	if strings.ToLower(tokens[0]) == "not" {
		inner, err := s.parseSingleCondition(tokens[1:])
		if err != nil {
			return nil, err
		}
		return nodes.Not(inner), nil
	}

	if tokens[0] == "(" && closingParen(tokens, 0) == len(tokens)-1 {
		return s.parseExpressionTokens(tokens[1 : len(tokens)-1])
	}

	return s.parseConditionFromTokens(tokens)
}

// closingParen returns the index of the parenthesis matching tokens[open],
// or -1.
func closingParen(tokens []string, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i] {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseConditionFromTokens parses "<operand> <op> <operand>",
// "<operand> between <low> and <high>" or "<operand> in (v, ...)".
func (s *Session) parseConditionFromTokens(tokens []string) (nodes.Node, error) {
	if len(tokens) < 2 {
		return nil, errors.New("expected: <table.column> <operator> <value>")
	}

	left, pos, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, err
	}
	if pos >= len(tokens) {
		return nil, errors.New("expected operator after expression")
	}

	op := strings.ToLower(tokens[pos])
	pos++

	if isComparisonOp(op) {
		if pos >= len(tokens) {
			return nil, errors.New("missing value after operator")
		}
		right, end, err := s.parseOperand(tokens, pos)
		if err != nil {
			return nil, err
		}
		if end != len(tokens) {
			return nil, fmt.Errorf("unexpected token %q", tokens[end])
		}
		cond, _ := comparison(op, left, right)
		return cond, nil
	}

	switch op {
	case "in":
		return s.parseInCondition(left, tokens[pos:])
	case "between":
		return s.parseBetweenCondition(left, tokens[pos:])
	default:
		return nil, fmt.Errorf("unknown operator: %s", op)
	}
}

func (s *Session) parseInCondition(left nodes.Node, tokens []string) (nodes.Node, error) {
	if len(tokens) < 2 || tokens[0] != "(" || tokens[len(tokens)-1] != ")" {
		return nil, errors.New("expected: IN (<value>, ...)")
	}
	var vals []any
	for _, t := range tokens[1 : len(tokens)-1] {
		if t == "," {
			continue
		}
		val, err := parseValue(t)
		if err != nil {
			return nil, err
		}
		vals = append(vals, val)
	}
	if len(vals) == 0 {
		return nil, errors.New("IN requires at least one value")
	}
	cond := nodes.NewCondition(nodes.CondIn, left, nil)
	cond.List = make([]nodes.Node, len(vals))
	for i, v := range vals {
		cond.List[i] = nodes.Literal(v)
	}
	return cond, nil
}

func (s *Session) parseBetweenCondition(left nodes.Node, tokens []string) (nodes.Node, error) {
	if len(tokens) != 3 {
		return nil, errors.New("expected: BETWEEN <low> AND <high>")
	}
	low, _, err := s.parseOperand(tokens, 0)
	if err != nil {
		return nil, err
	}
	if strings.ToLower(tokens[1]) != "and" {
		return nil, errors.New("expected AND between BETWEEN values")
	}
	high, _, err := s.parseOperand(tokens, 2)
	if err != nil {
		return nil, err
	}
	cond := nodes.NewCondition(nodes.CondBetween, left, nil)
	cond.Low = low
	cond.High = high
	return cond, nil
}

// parseTableDecl parses "name [as alias]".
func parseTableDecl(input string) (name, alias string, err error) {
	fields := strings.Fields(input)
	switch {
	case len(fields) == 1:
		return fields[0], "", nil
	case len(fields) == 3 && strings.EqualFold(fields[1], "as"):
		return fields[0], fields[2], nil
	case len(fields) == 2 && !strings.EqualFold(fields[1], "as"):
		return fields[0], fields[1], nil
	default:
		return "", "", fmt.Errorf("expected <table> [as <alias>], got %q", strings.TrimSpace(input))
	}
}

// splitTopLevelCommas splits s on commas outside parentheses and string
// literals, so count(t.c) and 'a, b' stay whole. A trailing empty part is
// dropped.
func splitTopLevelCommas(s string) []string {
	var parts []string
	start, depth, quoted := 0, 0, false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\'':
			quoted = !quoted
		case quoted:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}
