package nodes

// ConditionKind identifies the operator of a Condition.
type ConditionKind int

const (
	CondEq ConditionKind = iota
	CondNotEq
	CondGt
	CondLt
	CondGtEq
	CondLtEq
	CondBetween
	CondLike
	CondIn
	CondExists
	CondAnd
	CondOr
	CondNot
)

// String returns the SQL keyword or operator for this kind.
func (k ConditionKind) String() string {
	switch k {
	case CondEq:
		return "="
	case CondNotEq:
		return "<>"
	case CondGt:
		return ">"
	case CondLt:
		return "<"
	case CondGtEq:
		return ">="
	case CondLtEq:
		return "<="
	case CondBetween:
		return "BETWEEN"
	case CondLike:
		return "LIKE"
	case CondIn:
		return "IN"
	case CondExists:
		return "EXISTS"
	case CondAnd:
		return "AND"
	case CondOr:
		return "OR"
	case CondNot:
		return "NOT"
	default:
		return "UNKNOWN"
	}
}

// Condition is a boolean expression node. It always renders fully
// parenthesized.
//
// Binary kinds use Left and Right. BETWEEN uses Left, Low and High. IN uses
// Left and either List (a value list) or Right (a table or subquery source).
// EXISTS and NOT use Left only.
type Condition struct {
	Predications
	Combinable
	Kind  ConditionKind
	Left  Node
	Right Node
	Low   Node
	High  Node
	List  []Node
}

func (n *Condition) Accept(v Visitor) string { return v.VisitCondition(n) }

// NewCondition creates a Condition with properly initialised embedded structs.
// Binary kinds expect both operands; a nil operand renders as NULL.
func NewCondition(kind ConditionKind, left, right Node) *Condition {
	n := &Condition{Kind: kind, Left: left, Right: right}
	n.Predications.self = n
	n.Combinable.self = n
	return n
}
