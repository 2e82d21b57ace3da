// Package visitors turns the expression tree into text: SQL through
// Renderer, Graphviz DOT through DotVisitor.
package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/pearsql/internal/quoting"
	"github.com/bawdo/pearsql/nodes"
)

// AliasResolver looks up aliases declared on the statement being rendered.
// Both methods return "" when no alias applies.
type AliasResolver interface {
	AliasForTable(t *nodes.Table) string
	AliasForColumn(c *nodes.Column) string
}

// Option configures a Renderer at construction time.
type Option func(*Renderer)

// WithQuotes enables or disables double-quoting of identifiers.
func WithQuotes(on bool) Option {
	return func(r *Renderer) {
		r.quote = on
	}
}

// WithResolver enables alias substitution against res. Without a resolver
// tables render by name and declarations carry no AS clause.
func WithResolver(res AliasResolver) Option {
	return func(r *Renderer) {
		r.resolver = res
	}
}

// WithUnqualifiedColumns renders column references as bare column names,
// as single-table INSERT and DELETE statements do.
func WithUnqualifiedColumns() Option {
	return func(r *Renderer) {
		r.unqualified = true
	}
}

// Renderer produces SQL text for tree nodes. It implements nodes.Visitor.
//
// A Renderer is used for a single render pass; the first error met while
// rendering an embedded statement is kept and reported by Err.
type Renderer struct {
	resolver    AliasResolver
	quote       bool
	unqualified bool
	err         error
}

var _ nodes.Visitor = (*Renderer)(nil)

// NewRenderer creates a Renderer. With no options it renders unquoted
// identifiers without alias substitution.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Err returns the first error recorded during rendering.
func (r *Renderer) Err() error {
	return r.err
}

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Identifier quotes name when quoting is enabled.
func (r *Renderer) Identifier(name string) string {
	if r.quote {
		return quoting.DoubleQuote(name)
	}
	return name
}

// Operand renders n as it appears inside an expression. A nil node
// renders NULL.
func (r *Renderer) Operand(n nodes.Node) string {
	if n == nil {
		return "NULL"
	}
	return n.Accept(r)
}

// Operands renders each node and joins them with sep.
func (r *Renderer) Operands(ns []nodes.Node, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = r.Operand(n)
	}
	return strings.Join(parts, sep)
}

// TableDeclaration renders t as it appears in FROM, UPDATE and JOIN:
// its name, followed by AS and its alias when aliases are in use.
func (r *Renderer) TableDeclaration(t *nodes.Table) string {
	if r.resolver != nil && t.Alias != "" {
		return r.Identifier(t.Name) + " AS " + r.Identifier(t.Alias)
	}
	return r.Identifier(t.Name)
}

// Projection renders c as a SELECT list entry, with its own alias.
func (r *Renderer) Projection(c *nodes.Column) string {
	s := r.qualified(c)
	if c.Alias != "" {
		s += " AS " + r.Identifier(c.Alias)
	}
	return s
}

// Ordering renders one ORDER BY entry.
func (r *Renderer) Ordering(o nodes.Ordering) string {
	return r.Operand(o.Expr) + " " + o.Direction.String()
}

func (r *Renderer) tableAlias(t *nodes.Table) string {
	if r.resolver == nil {
		return ""
	}
	return r.resolver.AliasForTable(t)
}

func (r *Renderer) columnAlias(c *nodes.Column) string {
	if r.resolver == nil {
		return ""
	}
	return r.resolver.AliasForColumn(c)
}

func (r *Renderer) qualified(c *nodes.Column) string {
	if r.unqualified {
		return r.Identifier(c.Name)
	}
	return r.Operand(c.Table) + "." + r.Identifier(c.Name)
}

func (r *Renderer) VisitTable(n *nodes.Table) string {
	if alias := r.tableAlias(n); alias != "" {
		return r.Identifier(alias)
	}
	return r.Identifier(n.Name)
}

// VisitColumn renders a column reference. When the resolver reports a
// projection alias for the column and that alias differs from the column
// name, the alias replaces the reference, so ORDER BY and HAVING can name
// "author_name" for a.name AS author_name. An alias equal to the column
// name (b.title AS title) is not substituted and the column stays
// qualified by its table's alias or name, as in ORDER BY b.title.
func (r *Renderer) VisitColumn(n *nodes.Column) string {
	if alias := r.columnAlias(n); alias != "" && alias != n.Name {
		return r.Identifier(alias)
	}
	return r.qualified(n)
}

func (r *Renderer) VisitLiteral(n *nodes.LiteralNode) string {
	return literalToSQL(n.Value)
}

func literalToSQL(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case string:
		return quoting.SingleQuote(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprint(v)
	}
}

func (r *Renderer) VisitCondition(n *nodes.Condition) string {
	left := r.Operand(n.Left)
	switch n.Kind {
	case nodes.CondEq, nodes.CondNotEq, nodes.CondGt, nodes.CondLt,
		nodes.CondGtEq, nodes.CondLtEq, nodes.CondLike, nodes.CondAnd, nodes.CondOr:
		return "(" + left + " " + n.Kind.String() + " " + r.Operand(n.Right) + ")"
	case nodes.CondBetween:
		return "(" + left + " BETWEEN " + r.Operand(n.Low) + " AND " + r.Operand(n.High) + ")"
	case nodes.CondIn:
		if n.Right != nil {
			return "(" + left + " IN " + r.Operand(n.Right) + ")"
		}
		return "(" + left + " IN (" + r.Operands(n.List, ", ") + "))"
	case nodes.CondExists:
		return "(EXISTS " + left + ")"
	case nodes.CondNot:
		return "(NOT " + left + ")"
	default:
		panic(fmt.Errorf("%w: condition kind %d", nodes.ErrUnknownNodeKind, int(n.Kind)))
	}
}

func (r *Renderer) VisitFunction(n *nodes.Function) string {
	switch n.Kind {
	case nodes.FuncDefault:
		return "DEFAULT"
	case nodes.FuncMax, nodes.FuncMin, nodes.FuncAvg, nodes.FuncCount, nodes.FuncSum:
		arg := "*"
		if n.Operand != nil {
			arg = r.Operand(n.Operand)
		}
		return n.Kind.String() + "(" + arg + ")"
	default:
		panic(fmt.Errorf("%w: function kind %d", nodes.ErrUnknownNodeKind, int(n.Kind)))
	}
}

func (r *Renderer) VisitJoin(n *nodes.Join) string {
	switch n.Kind {
	case nodes.InnerJoin, nodes.LeftOuterJoin, nodes.RightOuterJoin, nodes.FullOuterJoin:
		s := n.Kind.String() + " " + r.TableDeclaration(n.Table)
		if n.On != nil {
			s += " ON " + r.Operand(n.On)
		}
		return s
	default:
		panic(fmt.Errorf("%w: join kind %d", nodes.ErrUnknownNodeKind, int(n.Kind)))
	}
}

// VisitStatement renders an embedded statement compactly, without the
// trailing semicolon, in parentheses. The statement resolves its own aliases.
func (r *Renderer) VisitStatement(n nodes.Statement) string {
	sql, err := n.Build(false, false)
	if err != nil {
		r.fail(err)
	}
	return "(" + sql + ")"
}

// Key returns a neutral rendering of n (no quoting, no alias substitution)
// suitable for identifying an operand, e.g. as an ORDER BY key.
func Key(n nodes.Node) string {
	return NewRenderer().Operand(n)
}
