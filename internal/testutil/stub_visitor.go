// Package testutil provides shared test helpers for the pearsql project.
package testutil

import "github.com/bawdo/pearsql/nodes"

// StubVisitor implements nodes.Visitor with minimal return values for testing.
// Methods return meaningful short strings to aid in test assertions.
type StubVisitor struct{}

var _ nodes.Visitor = StubVisitor{}

func (sv StubVisitor) VisitTable(n *nodes.Table) string   { return n.Name }
func (sv StubVisitor) VisitColumn(n *nodes.Column) string { return n.Table.Name + "." + n.Name }
func (sv StubVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return "lit"
}
func (sv StubVisitor) VisitCondition(n *nodes.Condition) string {
	return n.Left.Accept(sv) + " " + n.Kind.String() + " ?"
}
func (sv StubVisitor) VisitFunction(n *nodes.Function) string { return n.Kind.String() }
func (sv StubVisitor) VisitJoin(n *nodes.Join) string         { return "join" }
func (sv StubVisitor) VisitStatement(n nodes.Statement) string {
	return "statement"
}
