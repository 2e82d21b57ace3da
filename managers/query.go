// Package managers provides the fluent Query builder that accumulates the
// clauses of one SQL statement and renders them.
package managers

import (
	"fmt"

	"github.com/bawdo/pearsql/nodes"
	"github.com/bawdo/pearsql/visitors"
)

// Query accumulates the clauses of a single SELECT, INSERT, UPDATE or
// DELETE statement. The operation is fixed at construction.
//
// Every mutator returns the same *Query. A mutator that is not valid for
// the operation (or whose arguments are rejected) records an error and
// leaves the query unchanged; later mutators are then no-ops and Build
// returns the recorded error.
//
// A Query is not safe for concurrent mutation. Independent queries may be
// used from different goroutines.
type Query struct {
	op       Operation
	config   Config
	tables   []*nodes.Table
	columns  []*nodes.Column
	wheres   []nodes.Node
	havings  []nodes.Node
	groups   []nodes.Node
	orders   orderList
	joins    []*nodes.Join
	distinct bool
	limit    int
	offset   int
	union    *Query
	err      error
}

var (
	_ nodes.Statement        = (*Query)(nil)
	_ visitors.AliasResolver = (*Query)(nil)
	_ visitors.Graphable     = (*Query)(nil)
)

func newQuery(c Config, op Operation, tables []*nodes.Table) *Query {
	q := &Query{op: op, config: c}
	return q.Tables(tables...)
}

// Operation returns the statement kind.
func (q *Query) Operation() Operation {
	return q.op
}

// Err returns the error recorded by the first failing mutator, if any.
func (q *Query) Err() error {
	return q.err
}

// Config returns the flags currently in effect for this query.
func (q *Query) Config() Config {
	return q.config
}

func (q *Query) fail(err error) *Query {
	q.err = err
	return q
}

// selectOnly reports whether a SELECT-only clause may be applied, recording
// ErrWrongOperationForClause otherwise.
func (q *Query) selectOnly(clause string) bool {
	if q.err != nil {
		return false
	}
	if q.op != OpSelect {
		q.fail(fmt.Errorf("%w: %s on %s", ErrWrongOperationForClause, clause, q.op))
		return false
	}
	return true
}

// IgnoreNullValues overrides Config.IgnoreNullValues for this query.
func (q *Query) IgnoreNullValues(on bool) *Query {
	if q.err == nil {
		q.config.IgnoreNullValues = on
	}
	return q
}

// QuoteIdentifiers overrides Config.QuoteIdentifiers for this query.
func (q *Query) QuoteIdentifiers(on bool) *Query {
	if q.err == nil {
		q.config.QuoteIdentifiers = on
	}
	return q
}

// ResolveAliases overrides Config.ResolveAliases for this query.
func (q *Query) ResolveAliases(on bool) *Query {
	if q.err == nil {
		q.config.ResolveAliases = on
	}
	return q
}

// Tables appends tables to the FROM (or target) list. Nil tables are skipped.
func (q *Query) Tables(tables ...*nodes.Table) *Query {
	if q.err != nil {
		return q
	}
	for _, t := range tables {
		if t != nil {
			q.tables = append(q.tables, t)
		}
	}
	return q
}

// Columns appends columns. On SELECT they form the projection list; on
// INSERT and UPDATE they are assignments whose values come from
// Column.Set. An assignment without a value fails with
// ErrNullValueRejected unless null values are ignored. DELETE takes no
// columns.
func (q *Query) Columns(cols ...*nodes.Column) *Query {
	if q.err != nil {
		return q
	}
	switch q.op {
	case OpDelete:
		return q.fail(fmt.Errorf("%w: columns on %s", ErrWrongOperationForClause, q.op))
	case OpInsert, OpUpdate:
		for _, c := range cols {
			if c != nil && !q.config.IgnoreNullValues && c.Value == nil {
				return q.fail(fmt.Errorf("%w: column %s", ErrNullValueRejected, c.Name))
			}
		}
	}
	for _, c := range cols {
		if c != nil {
			q.columns = append(q.columns, c)
		}
	}
	return q
}

// Where appends conditions, combined with AND when rendered. Nil
// conditions are skipped.
func (q *Query) Where(conds ...nodes.Node) *Query {
	if q.err != nil {
		return q
	}
	q.wheres = appendNodes(q.wheres, conds)
	return q
}

// Having appends HAVING conditions, combined with AND when rendered.
func (q *Query) Having(conds ...nodes.Node) *Query {
	if q.err != nil {
		return q
	}
	q.havings = appendNodes(q.havings, conds)
	return q
}

func appendNodes(dst, src []nodes.Node) []nodes.Node {
	for _, n := range src {
		if n != nil {
			dst = append(dst, n)
		}
	}
	return dst
}

// Limit sets the LIMIT count. Values <= 0 omit the clause.
func (q *Query) Limit(n int) *Query {
	if q.err == nil {
		q.limit = n
	}
	return q
}

// Offset sets the OFFSET count. Values <= 0 omit the clause.
func (q *Query) Offset(n int) *Query {
	if q.err == nil {
		q.offset = n
	}
	return q
}

// Distinct adds the DISTINCT modifier. SELECT only.
func (q *Query) Distinct() *Query {
	if q.selectOnly("DISTINCT") {
		q.distinct = true
	}
	return q
}

// GroupBy appends GROUP BY operands. SELECT only.
func (q *Query) GroupBy(operands ...nodes.Node) *Query {
	if q.selectOnly("GROUP BY") {
		q.groups = appendNodes(q.groups, operands)
	}
	return q
}

// OrderBy adds ascending ORDER BY entries. An operand that is already
// ordered keeps its position and is reset to ASC. The last operand becomes
// the target of a following Asc or Desc. SELECT only.
func (q *Query) OrderBy(operands ...nodes.Node) *Query {
	return q.order("ORDER BY", nodes.Asc, operands)
}

// Asc without arguments makes the most recent ORDER BY entry ascending.
// With arguments it behaves like OrderBy.
func (q *Query) Asc(operands ...nodes.Node) *Query {
	return q.order("ASC", nodes.Asc, operands)
}

// Desc without arguments makes the most recent ORDER BY entry descending.
// With arguments it adds descending entries.
func (q *Query) Desc(operands ...nodes.Node) *Query {
	return q.order("DESC", nodes.Desc, operands)
}

func (q *Query) order(clause string, dir nodes.OrderDirection, operands []nodes.Node) *Query {
	if !q.selectOnly(clause) {
		return q
	}
	if len(operands) == 0 && clause != "ORDER BY" {
		if !q.orders.setLast(dir) {
			return q.fail(fmt.Errorf("%w: %s", ErrNoPriorOrderBy, clause))
		}
		return q
	}
	for _, n := range operands {
		if n != nil {
			q.orders.put(visitors.Key(n), nodes.Ordering{Expr: n, Direction: dir})
		}
	}
	return q
}

// Join adds an INNER JOIN of table on cond. SELECT only.
func (q *Query) Join(table *nodes.Table, cond nodes.Node) *Query {
	return q.join(nodes.InnerJoin, table, cond)
}

// LeftJoin adds a LEFT OUTER JOIN. SELECT only.
func (q *Query) LeftJoin(table *nodes.Table, cond nodes.Node) *Query {
	return q.join(nodes.LeftOuterJoin, table, cond)
}

// RightJoin adds a RIGHT OUTER JOIN. SELECT only.
func (q *Query) RightJoin(table *nodes.Table, cond nodes.Node) *Query {
	return q.join(nodes.RightOuterJoin, table, cond)
}

// FullJoin adds a FULL OUTER JOIN. SELECT only.
func (q *Query) FullJoin(table *nodes.Table, cond nodes.Node) *Query {
	return q.join(nodes.FullOuterJoin, table, cond)
}

func (q *Query) join(kind nodes.JoinKind, table *nodes.Table, cond nodes.Node) *Query {
	if !q.selectOnly(kind.String()) {
		return q
	}
	if table == nil {
		return q.fail(fmt.Errorf("%w: %s", ErrMissingTable, kind))
	}
	q.joins = append(q.joins, &nodes.Join{Table: table, On: cond, Kind: kind})
	return q
}

// Union links other as the next UNION arm. Both queries must be SELECTs
// and a query takes at most one partner. Longer chains are built by
// calling Union on the partner.
func (q *Query) Union(other *Query) *Query {
	if !q.selectOnly("UNION") {
		return q
	}
	if other == nil || other.op != OpSelect {
		return q.fail(ErrUnionPartnerNotSelect)
	}
	if q.union != nil {
		return q.fail(ErrUnionPartnerAlreadySet)
	}
	for p := other; p != nil; p = p.union {
		if p == q {
			return q.fail(fmt.Errorf("%w: union chain would loop", ErrUnionPartnerAlreadySet))
		}
	}
	q.union = other
	return q
}
