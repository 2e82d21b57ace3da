package managers

import "github.com/bawdo/pearsql/nodes"

// AliasForTable returns the alias declared for a table with t's name,
// looking at the query's tables first and then its joins. The first
// table with a matching name decides. It returns "" when aliases are not
// resolved or no table matches.
func (q *Query) AliasForTable(t *nodes.Table) string {
	if !q.config.ResolveAliases || t == nil {
		return ""
	}
	for _, tbl := range q.tables {
		if tbl.Name == t.Name {
			return tbl.Alias
		}
	}
	for _, j := range q.joins {
		if j.Table.Name == t.Name {
			return j.Table.Alias
		}
	}
	return ""
}

// AliasForColumn returns the alias of the first listed column with the
// same table name and column name as c.
func (q *Query) AliasForColumn(c *nodes.Column) string {
	if !q.config.ResolveAliases || c == nil || c.Table == nil {
		return ""
	}
	for _, col := range q.columns {
		if col.Table != nil && col.Table.Name == c.Table.Name && col.Name == c.Name {
			return col.Alias
		}
	}
	return ""
}
