package nodes

// Predications provides comparison methods to types that embed it.
// The self field must be set to the embedding node so that comparisons
// reference the correct left-hand side.
type Predications struct {
	self Node
}

func (p Predications) compare(kind ConditionKind, val any) *Condition {
	return NewCondition(kind, p.self, Literal(val))
}

// Eq creates an equality comparison: (self = val).
func (p Predications) Eq(val any) *Condition {
	return p.compare(CondEq, val)
}

// Ne creates an inequality comparison: (self <> val).
func (p Predications) Ne(val any) *Condition {
	return p.compare(CondNotEq, val)
}

// Gt creates a greater-than comparison: (self > val).
func (p Predications) Gt(val any) *Condition {
	return p.compare(CondGt, val)
}

// Ge creates a greater-than-or-equal comparison: (self >= val).
func (p Predications) Ge(val any) *Condition {
	return p.compare(CondGtEq, val)
}

// Lt creates a less-than comparison: (self < val).
func (p Predications) Lt(val any) *Condition {
	return p.compare(CondLt, val)
}

// Le creates a less-than-or-equal comparison: (self <= val).
func (p Predications) Le(val any) *Condition {
	return p.compare(CondLtEq, val)
}

// Like creates a LIKE comparison: (self LIKE pattern).
func (p Predications) Like(pattern any) *Condition {
	return p.compare(CondLike, pattern)
}

// Between creates a range predicate: (self BETWEEN low AND high).
func (p Predications) Between(low, high any) *Condition {
	n := NewCondition(CondBetween, p.self, nil)
	n.Low = Literal(low)
	n.High = Literal(high)
	return n
}

// In creates a membership predicate over a value list: (self IN (v1, v2)).
// A single table or statement argument is a source, as with InSelect.
func (p Predications) In(vals ...any) *Condition {
	if len(vals) == 1 {
		switch src := vals[0].(type) {
		case *Table:
			return p.InSelect(src)
		case Statement:
			return p.InSelect(src)
		}
	}
	n := NewCondition(CondIn, p.self, nil)
	n.List = literals(vals)
	return n
}

// InSelect creates a membership predicate over a table or subquery:
// (self IN source).
func (p Predications) InSelect(source Node) *Condition {
	return NewCondition(CondIn, p.self, source)
}
