package nodes

// Exists creates an EXISTS condition over operand, normally a subquery.
func Exists(operand any) *Condition {
	return NewCondition(CondExists, Literal(operand), nil)
}

// Not creates a NOT condition negating operand.
func Not(operand any) *Condition {
	return NewCondition(CondNot, Literal(operand), nil)
}

// And combines all operands with AND, left to right. It returns nil when
// called without operands.
func And(operands ...any) Node {
	return chain(CondAnd, operands)
}

// Or combines all operands with OR, left to right. It returns nil when
// called without operands.
func Or(operands ...any) Node {
	return chain(CondOr, operands)
}

func chain(kind ConditionKind, operands []any) Node {
	if len(operands) == 0 {
		return nil
	}
	result := Literal(operands[0])
	for _, o := range operands[1:] {
		result = NewCondition(kind, result, Literal(o))
	}
	return result
}
