package managers

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/bawdo/pearsql/nodes"
	"github.com/bawdo/pearsql/visitors"
)

// Tree is a snapshot of a query's clauses. The slices are copies; the
// nodes they hold are shared with the query.
type Tree struct {
	Operation Operation
	Distinct  bool
	Tables    []*nodes.Table
	Columns   []*nodes.Column
	Joins     []*nodes.Join
	Wheres    []nodes.Node
	Havings   []nodes.Node
	Groups    []nodes.Node
	Orders    []nodes.Ordering
	Limit     int
	Offset    int
	Union     *Query
}

// Tree returns a snapshot of the accumulated clauses.
func (q *Query) Tree() Tree {
	return Tree{
		Operation: q.op,
		Distinct:  q.distinct,
		Tables:    slices.Clone(q.tables),
		Columns:   slices.Clone(q.columns),
		Joins:     slices.Clone(q.joins),
		Wheres:    slices.Clone(q.wheres),
		Havings:   slices.Clone(q.havings),
		Groups:    slices.Clone(q.groups),
		Orders:    q.orders.entries(),
		Limit:     q.limit,
		Offset:    q.offset,
		Union:     q.union,
	}
}

// Graph adds the query and its clauses to dv. It implements
// visitors.Graphable, so a Query embedded as a subquery or union arm is
// drawn as a subtree.
func (q *Query) Graph(dv *visitors.DotVisitor) string {
	t := q.Tree()
	label := t.Operation.String()
	if t.Distinct {
		label += " DISTINCT"
	}
	id := dv.Statement(label)

	for i, tbl := range t.Tables {
		dv.Child(id, fmt.Sprintf("TABLE[%d]", i), tbl)
	}
	colEdge := "COLUMN"
	if t.Operation != OpSelect {
		colEdge = "SET"
	}
	for i, c := range t.Columns {
		dv.Child(id, fmt.Sprintf("%s[%d]", colEdge, i), c)
	}
	for i, j := range t.Joins {
		dv.Child(id, fmt.Sprintf("JOIN[%d]", i), j)
	}
	dv.ChildList(id, "WHERE", t.Wheres)
	dv.ChildList(id, "HAVING", t.Havings)
	dv.ChildList(id, "GROUP", t.Groups)
	for i, o := range t.Orders {
		dv.Ordering(id, fmt.Sprintf("ORDER[%d]", i), o)
	}
	if t.Limit > 0 {
		dv.Leaf(id, "LIMIT", strconv.Itoa(t.Limit))
	}
	if t.Offset > 0 {
		dv.Leaf(id, "OFFSET", strconv.Itoa(t.Offset))
	}
	if t.Union != nil {
		dv.Child(id, "UNION", t.Union)
	}
	if q.err != nil {
		dv.Leaf(id, "ERROR", q.err.Error())
	}
	return id
}

// Dot renders the query as a Graphviz DOT graph.
func (q *Query) Dot() string {
	dv := visitors.NewDotVisitor()
	q.Accept(dv)
	return dv.ToDot()
}
