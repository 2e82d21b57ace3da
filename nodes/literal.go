package nodes

// LiteralNode wraps a raw Go value (string, int, float, bool, nil, ...).
type LiteralNode struct {
	Predications
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }
