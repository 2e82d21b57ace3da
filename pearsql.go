// Package pearsql provides a fluent SQL query builder for Go.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/pearsql/managers (query builder, configuration, errors)
//   - github.com/bawdo/pearsql/nodes (expression tree)
//   - github.com/bawdo/pearsql/visitors (SQL and DOT rendering)
//
// A typical statement:
//
//	book := pearsql.Table("book").As("b")
//	sql, err := pearsql.Select(book).
//		Columns(book.Col("title")).
//		Where(book.Col("year").Gt(1950)).
//		SQL()
//
// String literals are wrapped in single quotes without escaping. Never
// pass untrusted input as a value.
package pearsql

import (
	"github.com/bawdo/pearsql/managers"
	"github.com/bawdo/pearsql/nodes"
)

// --- Builder Types ---

// Query accumulates the clauses of one statement.
type Query = managers.Query

// Config holds the formatting flags a Query starts with.
type Config = managers.Config

// Operation is the statement kind of a Query.
type Operation = managers.Operation

// --- Builder Constructors ---

// DefaultConfig returns the default flags: identifiers quoted, aliases
// resolved, nil assignments rejected.
func DefaultConfig() Config {
	return managers.DefaultConfig()
}

// Select creates a SELECT builder over tables.
func Select(tables ...*nodes.Table) *managers.Query {
	return managers.Select(tables...)
}

// Insert creates an INSERT builder for the given table.
func Insert(tables ...*nodes.Table) *managers.Query {
	return managers.Insert(tables...)
}

// Update creates an UPDATE builder over tables.
func Update(tables ...*nodes.Table) *managers.Query {
	return managers.Update(tables...)
}

// Delete creates a DELETE builder for the given table.
func Delete(tables ...*nodes.Table) *managers.Query {
	return managers.Delete(tables...)
}

// --- Core Node Types ---

// Node is the base interface all tree nodes implement.
type Node = nodes.Node

// TableRef is a table handle with an optional alias.
type TableRef = nodes.Table

// Column is a column handle of a table.
type Column = nodes.Column

// Condition is a predicate or logical combination.
type Condition = nodes.Condition

// Table returns a handle for the named table. Any name is accepted.
func Table(name string) *nodes.Table {
	return nodes.NewTable(name)
}

// Literal wraps a Go value as an operand.
func Literal(value any) nodes.Node {
	return nodes.Literal(value)
}

// --- Functions ---

// Count creates COUNT(operand); a nil operand gives COUNT(*).
func Count(operand any) *nodes.Function { return nodes.Count(operand) }

// Sum creates SUM(operand).
func Sum(operand any) *nodes.Function { return nodes.Sum(operand) }

// Avg creates AVG(operand).
func Avg(operand any) *nodes.Function { return nodes.Avg(operand) }

// Min creates MIN(operand).
func Min(operand any) *nodes.Function { return nodes.Min(operand) }

// Max creates MAX(operand).
func Max(operand any) *nodes.Function { return nodes.Max(operand) }

// Default creates the DEFAULT marker for INSERT and UPDATE values.
func Default() *nodes.Function { return nodes.Default() }

// --- Logical Constructors ---

// Exists creates (EXISTS operand).
func Exists(operand any) *nodes.Condition { return nodes.Exists(operand) }

// Not creates (NOT operand).
func Not(operand any) *nodes.Condition { return nodes.Not(operand) }

// And combines operands with AND, left to right.
func And(operands ...any) nodes.Node { return nodes.And(operands...) }

// Or combines operands with OR, left to right.
func Or(operands ...any) nodes.Node { return nodes.Or(operands...) }

// --- Errors ---

var (
	ErrWrongOperationForClause = managers.ErrWrongOperationForClause
	ErrMissingTable            = managers.ErrMissingTable
	ErrNullValueRejected       = managers.ErrNullValueRejected
	ErrNoPriorOrderBy          = managers.ErrNoPriorOrderBy
	ErrUnionPartnerAlreadySet  = managers.ErrUnionPartnerAlreadySet
	ErrUnionPartnerNotSelect   = managers.ErrUnionPartnerNotSelect
	ErrUnknownNodeKind         = managers.ErrUnknownNodeKind
)
