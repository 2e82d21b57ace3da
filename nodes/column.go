package nodes

// Column represents a column of a table. Value is only read when the column
// is part of an INSERT or UPDATE assignment list.
type Column struct {
	Predications
	Combinable
	Table *Table
	Name  string
	Alias string
	Value any
	Bound bool // Set was called
}

// NewColumn creates a Column with Predications and Combinable
// properly initialized to reference the new Column as self.
func NewColumn(table *Table, name string) *Column {
	c := &Column{Table: table, Name: name}
	c.Predications.self = c
	c.Combinable.self = c
	return c
}

func (c *Column) Accept(v Visitor) string { return v.VisitColumn(c) }

// As sets the column alias and returns the same column.
func (c *Column) As(alias string) *Column {
	c.Alias = alias
	return c
}

// Set binds the value assigned to this column by INSERT or UPDATE.
// Use Default() to emit the DEFAULT keyword.
func (c *Column) Set(value any) *Column {
	c.Value = value
	c.Bound = true
	return c
}
