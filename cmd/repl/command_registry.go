package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/bawdo/pearsql/managers"
	"github.com/bawdo/pearsql/nodes"
)

// commandEntry binds a line prefix to its handler. A prefix ending in a
// space takes arguments; complete, when set, classifies the argument text
// for tab completion.
type commandEntry struct {
	prefix   string
	handler  func(args string) error
	complete func(args string) (completionContext, string)
	hidden   bool
}

// noArgs adapts a handler that ignores its arguments.
func noArgs(f func() error) func(string) error {
	return func(string) error { return f() }
}

func (s *Session) initCommands() {
	insert := func(a string) error { return s.cmdStatement(a, managers.OpInsert) }
	update := func(a string) error { return s.cmdStatement(a, managers.OpUpdate) }
	del := func(a string) error { return s.cmdStatement(a, managers.OpDelete) }
	join := func(fn joinFunc) func(string) error {
		return func(a string) error { return s.cmdJoin(a, fn) }
	}
	direction := func(dir nodes.OrderDirection) func(string) error {
		return func(a string) error { return s.cmdDirection(a, dir) }
	}

	s.commands = []commandEntry{
		// output and session
		{prefix: "sql", handler: noArgs(s.cmdSQL)},
		{prefix: "tosql", handler: noArgs(s.cmdSQL), hidden: true},
		{prefix: "dot ", handler: s.cmdDot},
		{prefix: "dot", handler: func(string) error { return fmt.Errorf("usage: dot <filepath>") }},
		{prefix: "reset", handler: noArgs(s.cmdReset)},
		{prefix: "tables", handler: noArgs(s.cmdTables)},
		{prefix: "help", handler: func(string) error { s.cmdHelp(); return nil }},

		// statements
		{prefix: "select ", handler: s.cmdSelect, complete: tableArgs},
		{prefix: "insert into ", handler: insert, complete: tableArgs, hidden: true},
		{prefix: "insert ", handler: insert, complete: tableArgs},
		{prefix: "update ", handler: update, complete: tableArgs},
		{prefix: "delete from ", handler: del, complete: tableArgs, hidden: true},
		{prefix: "delete ", handler: del, complete: tableArgs},
		{prefix: "table ", handler: s.cmdTable, complete: tableArgs},
		{prefix: "t ", handler: s.cmdTable, hidden: true},

		// clauses
		{prefix: "columns ", handler: s.cmdColumns, complete: columnArgs},
		{prefix: "set ", handler: s.cmdSet, complete: columnArgs},
		{prefix: "distinct", handler: noArgs(s.cmdDistinct)},
		{prefix: "where ", handler: s.cmdWhere, complete: columnArgs},
		{prefix: "having ", handler: s.cmdHaving, complete: columnArgs},
		{prefix: "group ", handler: s.cmdGroup, complete: columnArgs},
		{prefix: "order ", handler: s.cmdOrder, complete: orderArgs},
		{prefix: "asc ", handler: direction(nodes.Asc), complete: columnArgs},
		{prefix: "asc", handler: direction(nodes.Asc)},
		{prefix: "desc ", handler: direction(nodes.Desc), complete: columnArgs},
		{prefix: "desc", handler: direction(nodes.Desc)},
		{prefix: "limit ", handler: s.cmdLimit},
		{prefix: "take ", handler: s.cmdLimit, hidden: true},
		{prefix: "offset ", handler: s.cmdOffset},
		{prefix: "union", handler: noArgs(s.cmdUnion)},

		// joins
		{prefix: "join ", handler: join((*managers.Query).Join), complete: joinArgs},
		{prefix: "inner join ", handler: join((*managers.Query).Join), complete: joinArgs, hidden: true},
		{prefix: "left join ", handler: join((*managers.Query).LeftJoin), complete: joinArgs},
		{prefix: "outer join ", handler: join((*managers.Query).LeftJoin), complete: joinArgs, hidden: true},
		{prefix: "right join ", handler: join((*managers.Query).RightJoin), complete: joinArgs},
		{prefix: "full join ", handler: join((*managers.Query).FullJoin), complete: joinArgs},

		// settings
		{prefix: "flag ", handler: s.cmdFlag, complete: flagArgs},
		{prefix: "pretty ", handler: s.cmdPretty, complete: onOffArgs},
		{prefix: "pretty", handler: func(string) error { return s.cmdPretty(onOff(!s.pretty)) }},
		{prefix: "engine ", handler: s.cmdEngine, complete: engineArgs},
		{prefix: "set_engine ", handler: s.cmdEngine, complete: engineArgs, hidden: true},

		// database
		{prefix: "connect ", handler: s.cmdConnect},
		{prefix: "connect", handler: func(string) error { return s.cmdConnect("") }},
		{prefix: "disconnect", handler: noArgs(s.cmdDisconnect)},
		{prefix: "exec", handler: noArgs(s.cmdExec)},
		{prefix: "run", handler: noArgs(s.cmdExec)},
	}

	// Longest prefix first, so "left join " wins over "join " and
	// "select " over "sql".
	slices.SortStableFunc(s.commands, func(a, b commandEntry) int {
		return len(b.prefix) - len(a.prefix)
	})
}

// commandNames lists the visible commands plus the loop's exit words.
func (s *Session) commandNames() []string {
	names := map[string]struct{}{"exit": {}, "quit": {}}
	for _, cmd := range s.commands {
		if !cmd.hidden {
			names[strings.TrimSuffix(cmd.prefix, " ")] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(names))
}

