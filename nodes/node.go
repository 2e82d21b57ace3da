// Package nodes defines the expression tree used to describe SQL statements.
package nodes

import "errors"

// ErrUnknownNodeKind is raised (as a panic) when a renderer meets a
// Condition, Function or Join whose kind tag it does not recognise.
var ErrUnknownNodeKind = errors.New("pearsql: unknown node kind")

// Node is the interface that all tree nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the tree and producing output.
// The SQL renderer and the DOT exporter in the visitors package implement it.
type Visitor interface {
	VisitTable(node *Table) string
	VisitColumn(node *Column) string
	VisitLiteral(node *LiteralNode) string
	VisitCondition(node *Condition) string
	VisitFunction(node *Function) string
	VisitJoin(node *Join) string
	VisitStatement(node Statement) string
}

// Statement is a complete query that can be embedded as an operand,
// e.g. as the source of IN or EXISTS.
type Statement interface {
	Node
	Build(pretty, complete bool) (string, error)
}

// Literal wraps a raw Go value into a LiteralNode. If val already
// implements Node, it is returned as-is.
func Literal(val any) Node {
	if n, ok := val.(Node); ok {
		return n
	}
	lit := &LiteralNode{Value: val}
	lit.Predications.self = lit
	return lit
}

func literals(vals []any) []Node {
	wrapped := make([]Node, len(vals))
	for i, v := range vals {
		wrapped[i] = Literal(v)
	}
	return wrapped
}
