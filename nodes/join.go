package nodes

// JoinKind represents the type of SQL JOIN.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
)

// String returns the SQL keywords for this join kind.
func (k JoinKind) String() string {
	switch k {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case RightOuterJoin:
		return "RIGHT OUTER JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	default:
		return "UNKNOWN JOIN"
	}
}

// Join represents a JOIN clause: another table plus its ON condition.
type Join struct {
	Table *Table
	On    Node
	Kind  JoinKind
}

func (n *Join) Accept(v Visitor) string { return v.VisitJoin(n) }
