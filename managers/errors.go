package managers

import (
	"errors"

	"github.com/bawdo/pearsql/nodes"
)

// Sentinel errors returned by Query. Check them with errors.Is; the
// returned errors wrap them with the offending clause or column.
var (
	// ErrWrongOperationForClause is returned when a clause is used on a
	// statement kind that does not support it (e.g. DISTINCT on UPDATE).
	ErrWrongOperationForClause = errors.New("pearsql: clause not allowed for this operation")

	// ErrMissingTable is returned when a statement is rendered without tables.
	ErrMissingTable = errors.New("pearsql: no table given")

	// ErrNullValueRejected is returned when a nil assignment is attached
	// while IgnoreNullValues is off.
	ErrNullValueRejected = errors.New("pearsql: nil value given")

	// ErrNoPriorOrderBy is returned by Asc or Desc without arguments when no
	// ORDER BY entry exists yet.
	ErrNoPriorOrderBy = errors.New("pearsql: no previous order by")

	// ErrUnionPartnerAlreadySet is returned when Union is called twice.
	ErrUnionPartnerAlreadySet = errors.New("pearsql: union partner already set")

	// ErrUnionPartnerNotSelect is returned when the union partner is not a SELECT.
	ErrUnionPartnerNotSelect = errors.New("pearsql: union partner must be a select")
)

// ErrUnknownNodeKind is the panic value wrapped when rendering meets an
// unrecognised condition, function, join or operation kind.
var ErrUnknownNodeKind = nodes.ErrUnknownNodeKind
