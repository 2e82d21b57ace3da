package visitors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/pearsql/nodes"
)

// Fill colors by node category.
const (
	colorStatement = "#FF6961"
	colorTable     = "#6CA6CD"
	colorColumn    = "#B0D4E8"
	colorCondition = "#FFB347"
	colorLogical   = "#FFEB80"
	colorLiteral   = "#D3D3D3"
	colorJoin      = "#77DD77"
	colorOrdering  = "#CDA0E0"
	colorFunction  = "#87CEEB"
)

const dotHeader = `digraph AST {
  rankdir=TB;
  node [shape=box, style=filled, fontname="Helvetica"];
  edge [fontname="Helvetica", fontsize=10];
`

type vertex struct {
	label, color string
}

type arc struct {
	from, to int
	label    string
}

// Graphable is implemented by statements that draw their own clauses.
// Graph adds the statement under the visitor's current parent and returns
// its node ID.
type Graphable interface {
	Graph(dv *DotVisitor) string
}

// DotVisitor renders a tree as a Graphviz digraph. Node IDs are "n0",
// "n1", ... in visiting order.
type DotVisitor struct {
	vertices []vertex
	arcs     []arc
	parent   int // index of the current parent, -1 at the root
	via      string
}

var _ nodes.Visitor = (*DotVisitor)(nil)

func NewDotVisitor() *DotVisitor {
	return &DotVisitor{parent: -1}
}

func vertexID(i int) string { return "n" + strconv.Itoa(i) }

func vertexIndex(id string) int {
	i, _ := strconv.Atoi(strings.TrimPrefix(id, "n"))
	return i
}

// add appends a vertex and links it from the current parent.
func (dv *DotVisitor) add(label, color string) string {
	idx := len(dv.vertices)
	dv.vertices = append(dv.vertices, vertex{label: label, color: color})
	if dv.parent >= 0 {
		dv.arcs = append(dv.arcs, arc{from: dv.parent, to: idx, label: dv.via})
	}
	return vertexID(idx)
}

// Child visits child as a descendant of parentID along an edge labelled
// label.
func (dv *DotVisitor) Child(parentID, label string, child nodes.Node) string {
	return dv.under(parentID, label, func() string { return child.Accept(dv) })
}

// ChildList visits items under parentID with edges prefix[0], prefix[1], ...
func (dv *DotVisitor) ChildList(parentID, prefix string, items []nodes.Node) {
	for i, item := range items {
		dv.Child(parentID, prefix+"["+strconv.Itoa(i)+"]", item)
	}
}

// Statement adds a statement node under the current parent.
func (dv *DotVisitor) Statement(label string) string {
	return dv.add(label, colorStatement)
}

// Leaf adds a plain value, such as a LIMIT count, under parentID.
func (dv *DotVisitor) Leaf(parentID, edge, label string) string {
	return dv.under(parentID, edge, func() string { return dv.add(label, colorLiteral) })
}

// Ordering adds an ORDER BY entry and its expression under parentID.
func (dv *DotVisitor) Ordering(parentID, edge string, o nodes.Ordering) string {
	return dv.under(parentID, edge, func() string {
		id := dv.add("Ordering\\n"+o.Direction.String(), colorOrdering)
		dv.Child(id, "EXPR", o.Expr)
		return id
	})
}

// under runs fn with parentID as the current parent and edge as the label
// of the next link.
func (dv *DotVisitor) under(parentID, edge string, fn func() string) string {
	prevParent, prevVia := dv.parent, dv.via
	dv.parent, dv.via = vertexIndex(parentID), edge
	defer func() { dv.parent, dv.via = prevParent, prevVia }()
	return fn()
}

// ToDot returns the graph collected so far.
func (dv *DotVisitor) ToDot() string {
	var b strings.Builder
	b.WriteString(dotHeader)
	for i, v := range dv.vertices {
		fmt.Fprintf(&b, "  %s [label=\"%s\", fillcolor=\"%s\"];\n", vertexID(i), quoteLabel(v.label), v.color)
	}
	for _, a := range dv.arcs {
		fmt.Fprintf(&b, "  %s -> %s", vertexID(a.from), vertexID(a.to))
		if a.label != "" {
			fmt.Fprintf(&b, " [label=\"%s\"]", a.label)
		}
		b.WriteString(";\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// quoteLabel escapes double quotes; \n sequences are DOT line breaks and
// pass through.
func quoteLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func (dv *DotVisitor) VisitTable(n *nodes.Table) string {
	label := "Table\\n" + n.Name
	if n.Alias != "" {
		label += " AS " + n.Alias
	}
	return dv.add(label, colorTable)
}

func (dv *DotVisitor) VisitColumn(n *nodes.Column) string {
	label := "Column\\n" + n.Table.Name + "." + n.Name
	if n.Alias != "" {
		label += " AS " + n.Alias
	}
	id := dv.add(label, colorColumn)
	if n.Bound {
		dv.Child(id, "VALUE", nodes.Literal(n.Value))
	}
	return id
}

func (dv *DotVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return dv.add(fmt.Sprintf("Literal\\n%v", n.Value), colorLiteral)
}

func (dv *DotVisitor) VisitCondition(n *nodes.Condition) string {
	color := colorCondition
	switch n.Kind {
	case nodes.CondAnd, nodes.CondOr, nodes.CondNot:
		color = colorLogical
	}
	id := dv.add(n.Kind.String(), color)
	dv.Child(id, "LEFT", n.Left)
	if n.Right != nil {
		dv.Child(id, "RIGHT", n.Right)
	}
	if n.Low != nil {
		dv.Child(id, "LOW", n.Low)
	}
	if n.High != nil {
		dv.Child(id, "HIGH", n.High)
	}
	dv.ChildList(id, "VAL", n.List)
	return id
}

func (dv *DotVisitor) VisitFunction(n *nodes.Function) string {
	id := dv.add(n.Kind.String(), colorFunction)
	if n.Operand != nil {
		dv.Child(id, "ARG", n.Operand)
	}
	return id
}

func (dv *DotVisitor) VisitJoin(n *nodes.Join) string {
	id := dv.add(n.Kind.String(), colorJoin)
	dv.Child(id, "TABLE", n.Table)
	if n.On != nil {
		dv.Child(id, "ON", n.On)
	}
	return id
}

// VisitStatement delegates to the statement when it is Graphable and
// otherwise shows its compact SQL as a single node.
func (dv *DotVisitor) VisitStatement(n nodes.Statement) string {
	if g, ok := n.(Graphable); ok {
		return g.Graph(dv)
	}
	sql, err := n.Build(false, false)
	if err != nil {
		sql = "error: " + err.Error()
	}
	return dv.Statement("Statement\\n" + sql)
}
