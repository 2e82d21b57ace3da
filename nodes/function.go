package nodes

// FunctionKind identifies an aggregate function or marker keyword.
type FunctionKind int

const (
	FuncMax FunctionKind = iota
	FuncMin
	FuncAvg
	FuncCount
	FuncSum
	FuncDefault
)

// String returns the SQL keyword for this kind.
func (k FunctionKind) String() string {
	switch k {
	case FuncMax:
		return "MAX"
	case FuncMin:
		return "MIN"
	case FuncAvg:
		return "AVG"
	case FuncCount:
		return "COUNT"
	case FuncSum:
		return "SUM"
	case FuncDefault:
		return "DEFAULT"
	default:
		return "UNKNOWN"
	}
}

// Function wraps an operand with an aggregate (MAX, MIN, AVG, COUNT, SUM)
// or stands alone as the DEFAULT marker used in INSERT value lists.
type Function struct {
	Predications
	Combinable
	Kind    FunctionKind
	Operand Node // nil for DEFAULT and COUNT(*)
}

func (n *Function) Accept(v Visitor) string { return v.VisitFunction(n) }

// NewFunction creates a Function with properly initialised embedded structs.
func NewFunction(kind FunctionKind, operand Node) *Function {
	n := &Function{Kind: kind, Operand: operand}
	n.Predications.self = n
	n.Combinable.self = n
	return n
}

func aggregate(kind FunctionKind, operand any) *Function {
	if operand == nil {
		return NewFunction(kind, nil)
	}
	return NewFunction(kind, Literal(operand))
}

// Max creates a MAX aggregate.
func Max(operand any) *Function { return aggregate(FuncMax, operand) }

// Min creates a MIN aggregate.
func Min(operand any) *Function { return aggregate(FuncMin, operand) }

// Avg creates an AVG aggregate.
func Avg(operand any) *Function { return aggregate(FuncAvg, operand) }

// Count creates a COUNT aggregate. Pass nil for COUNT(*).
func Count(operand any) *Function { return aggregate(FuncCount, operand) }

// Sum creates a SUM aggregate.
func Sum(operand any) *Function { return aggregate(FuncSum, operand) }

// Default creates the DEFAULT marker.
func Default() *Function { return NewFunction(FuncDefault, nil) }
