package nodes

// Combinable provides logical chaining methods to types that embed it.
// The self field must be set to the embedding node.
type Combinable struct {
	self Node
}

// And creates a condition combining self with other: (self AND other).
func (c Combinable) And(other any) *Condition {
	return NewCondition(CondAnd, c.self, Literal(other))
}

// Or creates a condition combining self with other: (self OR other).
func (c Combinable) Or(other any) *Condition {
	return NewCondition(CondOr, c.self, Literal(other))
}

// Not creates a condition negating self: (NOT self).
func (c Combinable) Not() *Condition {
	return NewCondition(CondNot, c.self, nil)
}
