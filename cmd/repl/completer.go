package main

import (
	"maps"
	"slices"
	"strings"
)

// completionContext classifies the word under the cursor.
type completionContext int

const (
	contextCommand completionContext = iota
	contextTableName
	contextColumnRef
	contextEngine
	contextOrderDir
	contextOperator
	contextFlag
	contextOnOff
)

var (
	engineNames   = []string{"mysql", "postgres", "sqlite"}
	flagNames     = []string{"aliases", "nulls", "quote"}
	onOffValues   = []string{"off", "on"}
	orderDirs     = []string{"asc", "desc"}
	functionNames = []string{"AVG(", "COUNT(", "MAX(", "MIN(", "SUM("}
	operators     = []string{
		"!=", "<", "<=", "<>", "=", ">", ">=",
		"and", "between", "in", "like", "not", "on", "or",
	}
)

// fixedCandidates holds the contexts whose candidates do not depend on
// session state.
var fixedCandidates = map[completionContext][]string{
	contextEngine:   engineNames,
	contextOrderDir: orderDirs,
	contextOperator: operators,
	contextFlag:     flagNames,
	contextOnOff:    onOffValues,
}

// replCompleter implements readline.AutoCompleter over a session.
type replCompleter struct {
	sess *Session
}

// Do returns, for each candidate, the text still to be typed after the
// prefix under the cursor, plus the prefix length in runes.
func (c *replCompleter) Do(line []rune, pos int) ([][]rune, int) {
	ctx, prefix := c.parseContext(string(line[:pos]))

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = c.completeCommands(prefix)
	case contextTableName:
		candidates = c.completeTableNames(prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	default:
		candidates = filterPrefix(fixedCandidates[ctx], prefix)
	}

	suffixes := make([][]rune, 0, len(candidates))
	for _, cand := range candidates {
		suffixes = append(suffixes, []rune(cand[len(prefix):]+" "))
	}
	return suffixes, len([]rune(prefix))
}

// parseContext finds the command the line starts with and lets it
// classify its arguments. Anything else is a partial command name.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)
	for _, cmd := range c.sess.commands {
		if cmd.complete != nil && strings.HasPrefix(lower, cmd.prefix) {
			return cmd.complete(line[len(cmd.prefix):])
		}
	}
	return contextCommand, strings.TrimSpace(line)
}

func (c *replCompleter) completeCommands(prefix string) []string {
	return filterPrefix(c.sess.commandNames(), prefix)
}

// completeTableNames offers declared names and aliases, then the tables
// of the connected database.
func (c *replCompleter) completeTableNames(prefix string) []string {
	names := slices.Collect(maps.Keys(c.sess.tables))
	if c.sess.conn != nil {
		names = append(names, c.sess.conn.schemaTables()...)
	}
	slices.Sort(names)
	return filterPrefix(slices.Compact(names), prefix)
}

// completeColumnRef offers table names and aggregates until a dot is
// typed, then the columns of that table. An alias is looked up under its
// table's name; columns need a connection.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	ref, _, dotted := strings.Cut(prefix, ".")
	if !dotted {
		return append(c.completeTableNames(prefix), filterPrefix(functionNames, prefix)...)
	}
	if c.sess.conn == nil {
		return nil
	}
	table := ref
	if t, ok := c.sess.lookupTable(ref); ok {
		table = t.Name
	}
	var refs []string
	for _, col := range c.sess.conn.schemaColumns(table) {
		refs = append(refs, ref+"."+col)
	}
	return filterPrefix(refs, prefix)
}

// --- argument classifiers ---

// tableArgs: a table name, then whatever follows it.
func tableArgs(args string) (completionContext, string) {
	trimmed := strings.TrimSpace(args)
	if !strings.Contains(trimmed, " ") {
		return contextTableName, trimmed
	}
	if strings.HasSuffix(args, " ") {
		return contextOperator, ""
	}
	return contextColumnRef, lastToken(trimmed)
}

// joinArgs: the joined table, then the ON condition.
func joinArgs(args string) (completionContext, string) {
	if !strings.Contains(args, " ") {
		return contextTableName, args
	}
	if strings.HasSuffix(args, " ") {
		return contextOperator, ""
	}
	return contextColumnRef, lastToken(args)
}

// columnArgs: column refs, with operators offered after a complete ref.
func columnArgs(args string) (completionContext, string) {
	if !strings.HasSuffix(args, " ") {
		return contextColumnRef, lastToken(args)
	}
	if strings.Contains(lastWord(args), ".") {
		return contextOperator, ""
	}
	return contextColumnRef, ""
}

// orderArgs: column refs, each optionally followed by a direction.
func orderArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") {
		if strings.Contains(lastWord(args), ".") {
			return contextOrderDir, ""
		}
		return contextColumnRef, ""
	}
	last := lastToken(args)
	if last != "" && !strings.Contains(last, ".") && len(filterPrefix(orderDirs, last)) > 0 {
		return contextOrderDir, last
	}
	return contextColumnRef, last
}

func engineArgs(args string) (completionContext, string) {
	return contextEngine, strings.TrimSpace(args)
}

// flagArgs: the flag name, then its value.
func flagArgs(args string) (completionContext, string) {
	trimmed := strings.TrimLeft(args, " ")
	if !strings.Contains(trimmed, " ") {
		return contextFlag, trimmed
	}
	return onOffArgs(lastToken(trimmed))
}

func onOffArgs(args string) (completionContext, string) {
	return contextOnOff, strings.TrimSpace(args)
}

// --- helpers ---

// filterPrefix returns a new slice of the items starting with prefix,
// ignoring case.
func filterPrefix(items []string, prefix string) []string {
	lowered := strings.ToLower(prefix)
	return slices.DeleteFunc(slices.Clone(items), func(item string) bool {
		return !strings.HasPrefix(strings.ToLower(item), lowered)
	})
}

// lastToken returns the text after the last space, tab or comma.
func lastToken(s string) string {
	return s[strings.LastIndexAny(s, " \t,")+1:]
}

// lastWord returns the last whitespace-separated word, lower-cased.
func lastWord(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[len(words)-1])
}
