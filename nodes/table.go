package nodes

// Table names a table and an optional alias. Alias lookups compare tables
// by Name, so two Table values with the same name refer to the same table.
type Table struct {
	Name  string
	Alias string
}

// NewTable returns a reference to the named table. Any name is accepted;
// nothing is checked against a real schema.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

func (t *Table) Accept(v Visitor) string { return v.VisitTable(t) }

// As sets the table alias and returns the same table.
func (t *Table) As(alias string) *Table {
	t.Alias = alias
	return t
}

// Col creates a Column bound to this table.
func (t *Table) Col(name string) *Column {
	return NewColumn(t, name)
}
