package managers

import "github.com/bawdo/pearsql/nodes"

// Config holds the formatting flags a Query starts with. It is a plain
// value: factories copy it, and per-query overrides never touch the
// original.
type Config struct {
	// IgnoreNullValues renders NULL for a nil assignment instead of
	// rejecting it with ErrNullValueRejected.
	IgnoreNullValues bool
	// QuoteIdentifiers wraps table, column and alias names in double quotes.
	QuoteIdentifiers bool
	// ResolveAliases substitutes declared aliases for table and column
	// references.
	ResolveAliases bool
}

// DefaultConfig returns the conventional defaults: identifiers quoted,
// aliases resolved, nil assignments rejected.
func DefaultConfig() Config {
	return Config{
		QuoteIdentifiers: true,
		ResolveAliases:   true,
	}
}

// Select creates a SELECT builder over tables using c.
func (c Config) Select(tables ...*nodes.Table) *Query {
	return newQuery(c, OpSelect, tables)
}

// Insert creates an INSERT builder over tables using c.
func (c Config) Insert(tables ...*nodes.Table) *Query {
	return newQuery(c, OpInsert, tables)
}

// Update creates an UPDATE builder over tables using c.
func (c Config) Update(tables ...*nodes.Table) *Query {
	return newQuery(c, OpUpdate, tables)
}

// Delete creates a DELETE builder over tables using c.
func (c Config) Delete(tables ...*nodes.Table) *Query {
	return newQuery(c, OpDelete, tables)
}

// Select creates a SELECT builder with DefaultConfig.
func Select(tables ...*nodes.Table) *Query {
	return DefaultConfig().Select(tables...)
}

// Insert creates an INSERT builder with DefaultConfig.
func Insert(tables ...*nodes.Table) *Query {
	return DefaultConfig().Insert(tables...)
}

// Update creates an UPDATE builder with DefaultConfig.
func Update(tables ...*nodes.Table) *Query {
	return DefaultConfig().Update(tables...)
}

// Delete creates a DELETE builder with DefaultConfig.
func Delete(tables ...*nodes.Table) *Query {
	return DefaultConfig().Delete(tables...)
}
