package managers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bawdo/pearsql/nodes"
	"github.com/bawdo/pearsql/visitors"
)

// Build renders the statement. Clauses are separated by a newline when
// pretty is set and by a space otherwise; a trailing ";" is added when
// complete is set. Build returns the error recorded by a failed mutator,
// ErrMissingTable when no table was given, or ErrNullValueRejected for an
// assignment without a value. Rendering does not modify the query.
func (q *Query) Build(pretty, complete bool) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	if len(q.tables) == 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingTable, q.op)
	}

	r := q.renderer()
	var (
		clauses []string
		err     error
	)
	switch q.op {
	case OpSelect:
		clauses, err = q.selectClauses(r, pretty)
	case OpInsert:
		clauses, err = q.insertClauses(r)
	case OpUpdate:
		clauses, err = q.updateClauses(r)
	case OpDelete:
		clauses = q.deleteClauses(r)
	default:
		panic(fmt.Errorf("%w: operation %d", ErrUnknownNodeKind, int(q.op)))
	}
	if err != nil {
		return "", err
	}
	if err := r.Err(); err != nil {
		return "", err
	}

	sep := " "
	if pretty {
		sep = "\n"
	}
	sql := strings.Join(clauses, sep)
	if complete {
		sql += ";"
	}
	return sql, nil
}

// SQL renders the complete statement on a single line.
func (q *Query) SQL() (string, error) {
	return q.Build(false, true)
}

// String renders the complete statement, or the error that prevents it.
func (q *Query) String() string {
	sql, err := q.SQL()
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return sql
}

// Accept lets a Query be used as an operand, e.g. the source of IN or EXISTS.
func (q *Query) Accept(v nodes.Visitor) string {
	return v.VisitStatement(q)
}

// renderer configures a Renderer for this query. INSERT and DELETE name
// a single table, so their columns render unqualified and no alias is used.
func (q *Query) renderer() *visitors.Renderer {
	opts := []visitors.Option{visitors.WithQuotes(q.config.QuoteIdentifiers)}
	switch q.op {
	case OpInsert, OpDelete:
		opts = append(opts, visitors.WithUnqualifiedColumns())
	default:
		if q.config.ResolveAliases {
			opts = append(opts, visitors.WithResolver(q))
		}
	}
	return visitors.NewRenderer(opts...)
}

func (q *Query) selectClauses(r *visitors.Renderer, pretty bool) ([]string, error) {
	head := "SELECT"
	if q.distinct {
		head += " DISTINCT"
	}
	projection := "*"
	if len(q.columns) > 0 {
		parts := make([]string, len(q.columns))
		for i, c := range q.columns {
			parts[i] = r.Projection(c)
		}
		projection = strings.Join(parts, ", ")
	}
	clauses := []string{head, projection, "FROM " + q.tableList(r)}
	clauses = q.appendJoins(clauses, r)
	clauses = q.appendFilters(clauses, r)
	if len(q.groups) > 0 {
		clauses = append(clauses, "GROUP BY "+r.Operands(q.groups, ", "))
	}
	clauses = q.appendTail(clauses, r)
	if q.union != nil {
		partner, err := q.union.Build(pretty, false)
		if err != nil {
			return nil, fmt.Errorf("union: %w", err)
		}
		clauses = append(clauses, "UNION "+partner)
	}
	return clauses, nil
}

func (q *Query) insertClauses(r *visitors.Renderer) ([]string, error) {
	target := "INSERT INTO " + q.tableList(r)
	if len(q.columns) == 0 {
		return []string{target + " DEFAULT VALUES"}, nil
	}
	names := make([]string, len(q.columns))
	values := make([]string, len(q.columns))
	for i, c := range q.columns {
		v, err := q.value(r, c)
		if err != nil {
			return nil, err
		}
		names[i] = r.Identifier(c.Name)
		values[i] = v
	}
	return []string{
		target + " (" + strings.Join(names, ", ") + ")",
		"VALUES (" + strings.Join(values, ", ") + ")",
	}, nil
}

func (q *Query) updateClauses(r *visitors.Renderer) ([]string, error) {
	clauses := []string{"UPDATE " + q.tableList(r)}
	if len(q.columns) > 0 {
		sets := make([]string, len(q.columns))
		for i, c := range q.columns {
			v, err := q.value(r, c)
			if err != nil {
				return nil, err
			}
			sets[i] = r.Identifier(c.Name) + " = " + v
		}
		clauses = append(clauses, "SET "+strings.Join(sets, ", "))
	}
	clauses = q.appendJoins(clauses, r)
	clauses = q.appendFilters(clauses, r)
	return q.appendTail(clauses, r), nil
}

func (q *Query) deleteClauses(r *visitors.Renderer) []string {
	clauses := []string{"DELETE FROM " + q.tableList(r)}
	if len(q.wheres) > 0 {
		clauses = append(clauses, "WHERE "+r.Operands(q.wheres, " AND "))
	}
	return q.appendTail(clauses, r)
}

func (q *Query) tableList(r *visitors.Renderer) string {
	parts := make([]string, len(q.tables))
	for i, t := range q.tables {
		parts[i] = r.TableDeclaration(t)
	}
	return strings.Join(parts, ", ")
}

func (q *Query) appendJoins(clauses []string, r *visitors.Renderer) []string {
	if len(q.joins) == 0 {
		return clauses
	}
	parts := make([]string, len(q.joins))
	for i, j := range q.joins {
		parts[i] = j.Accept(r)
	}
	return append(clauses, strings.Join(parts, " "))
}

func (q *Query) appendFilters(clauses []string, r *visitors.Renderer) []string {
	if len(q.wheres) > 0 {
		clauses = append(clauses, "WHERE "+r.Operands(q.wheres, " AND "))
	}
	if len(q.havings) > 0 {
		clauses = append(clauses, "HAVING "+r.Operands(q.havings, " AND "))
	}
	return clauses
}

// appendTail adds ORDER BY, LIMIT and OFFSET.
func (q *Query) appendTail(clauses []string, r *visitors.Renderer) []string {
	if q.orders.len() > 0 {
		entries := q.orders.entries()
		parts := make([]string, len(entries))
		for i, o := range entries {
			parts[i] = r.Ordering(o)
		}
		clauses = append(clauses, "ORDER BY "+strings.Join(parts, ", "))
	}
	if q.limit > 0 {
		clauses = append(clauses, "LIMIT "+strconv.Itoa(q.limit))
	}
	if q.offset > 0 {
		clauses = append(clauses, "OFFSET "+strconv.Itoa(q.offset))
	}
	return clauses
}

// value renders the assigned value of c. A missing value renders NULL
// only when null values are ignored.
func (q *Query) value(r *visitors.Renderer, c *nodes.Column) (string, error) {
	if c.Value == nil {
		if !q.config.IgnoreNullValues {
			return "", fmt.Errorf("%w: column %s", ErrNullValueRejected, c.Name)
		}
		return "NULL", nil
	}
	return r.Operand(nodes.Literal(c.Value)), nil
}
