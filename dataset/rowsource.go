package dataset

import "context"

// Row is one result row keyed by column name.
type Row map[string]any

// Rows is a forward-only cursor over a result set.
type Rows interface {
	Next() bool
	Row() (Row, error)
	Err() error
	Close() error
}

// Result reports the outcome of a statement that returns no rows.
type Result interface {
	LastInsertId() (int64, error)
	RowsAffected() (int64, error)
}

// RowSource executes rendered SQL. The database package provides one over
// database/sql; anything else able to run SQL can be plugged in.
type RowSource interface {
	Query(ctx context.Context, sql string) (Rows, error)
	Exec(ctx context.Context, sql string) (Result, error)
}

// SliceRows is a Rows over rows already in memory.
type SliceRows struct {
	rows []Row
	pos  int
}

// NewSliceRows returns a cursor over rows.
func NewSliceRows(rows ...Row) *SliceRows {
	return &SliceRows{rows: rows}
}

func (r *SliceRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *SliceRows) Row() (Row, error) { return r.rows[r.pos-1], nil }

func (r *SliceRows) Err() error { return nil }

func (r *SliceRows) Close() error {
	r.pos = len(r.rows)
	return nil
}
