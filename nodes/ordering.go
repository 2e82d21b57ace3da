package nodes

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// String returns the SQL keyword for this direction.
func (d OrderDirection) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}

// Ordering is one ORDER BY entry.
type Ordering struct {
	Expr      Node
	Direction OrderDirection
}
