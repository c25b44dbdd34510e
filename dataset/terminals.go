package dataset

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

func (d *Dataset) rowSource() (RowSource, error) {
	if d.db == nil {
		return nil, fmt.Errorf("%w: dataset has no row source", sqlerr.ErrInvalidOperation)
	}
	return d.db, nil
}

// Each runs the SELECT and calls fn for every row. Iteration stops at the
// first error returned by fn.
func (d *Dataset) Each(ctx context.Context, fn func(Row) error) error {
	db, err := d.rowSource()
	if err != nil {
		return err
	}
	sql, err := d.SelectSQL()
	if err != nil {
		return err
	}
	rows, err := db.Query(ctx, sql)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		row, err := rows.Row()
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// All returns every row.
func (d *Dataset) All(ctx context.Context) ([]Row, error) {
	var out []Row
	err := d.Each(ctx, func(r Row) error {
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// First returns the first row, or ErrNoRows.
func (d *Dataset) First(ctx context.Context) (Row, error) {
	rows, err := d.limited(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, sqlerr.ErrNoRows
	}
	return rows[0], nil
}

// Last returns the last row in the dataset's order by reversing it. The
// dataset must be ordered.
func (d *Dataset) Last(ctx context.Context) (Row, error) {
	if len(d.core.Orders) == 0 {
		return nil, fmt.Errorf("%w: Last needs an ordered dataset", sqlerr.ErrInvalidOperation)
	}
	return d.Reverse().First(ctx)
}

// Get selects a single expression and returns its value in the first row.
func (d *Dataset) Get(ctx context.Context, col any) (any, error) {
	row, err := d.Select(col).First(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range row {
		return v, nil
	}
	return nil, sqlerr.ErrNoRows
}

// Map returns the value of col in every row.
func (d *Dataset) Map(ctx context.Context, col string) ([]any, error) {
	var out []any
	err := d.Each(ctx, func(r Row) error {
		out = append(out, r[col])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToHash maps the key column of every row to its value column. Byte slice
// keys are converted to strings.
func (d *Dataset) ToHash(ctx context.Context, key, value string) (map[any]any, error) {
	out := make(map[any]any)
	err := d.Each(ctx, func(r Row) error {
		k := r[key]
		if b, ok := k.([]byte); ok {
			k = string(b)
		}
		out[k] = r[value]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of rows the dataset selects. Datasets whose row
// count a plain COUNT(*) would change (grouped, distinct, limited, raw or
// compound) are counted as a subquery.
func (d *Dataset) Count(ctx context.Context) (int64, error) {
	q := d.Unordered()
	if d.countNeedsSubquery() {
		q = d.FromSelf()
	}
	v, err := q.Get(ctx, nodes.CountAll().As("count"))
	if err != nil {
		return 0, err
	}
	return toInt64(v)
}

func (d *Dataset) countNeedsSubquery() bool {
	c := d.core
	return c.SQL != "" || len(c.Groups) > 0 || c.Distinct || len(c.DistinctOn) > 0 ||
		c.Limit != nil || c.Offset != nil || len(c.Compounds) > 0
}

// Empty reports whether the dataset selects no rows.
func (d *Dataset) Empty(ctx context.Context) (bool, error) {
	_, err := d.Unordered().Select(nodes.NewSqlLiteral("1").As("one")).First(ctx)
	if sqlerr.IsNoRowsErr(err) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Sum returns SUM(col).
func (d *Dataset) Sum(ctx context.Context, col any) (any, error) {
	return d.aggregate(ctx, nodes.Sum(column(col)).As("sum"))
}

// Avg returns AVG(col).
func (d *Dataset) Avg(ctx context.Context, col any) (any, error) {
	return d.aggregate(ctx, nodes.Avg(column(col)).As("avg"))
}

// Min returns MIN(col).
func (d *Dataset) Min(ctx context.Context, col any) (any, error) {
	return d.aggregate(ctx, nodes.Min(column(col)).As("min"))
}

// Max returns MAX(col).
func (d *Dataset) Max(ctx context.Context, col any) (any, error) {
	return d.aggregate(ctx, nodes.Max(column(col)).As("max"))
}

func (d *Dataset) aggregate(ctx context.Context, expr nodes.Node) (any, error) {
	return d.Unordered().Get(ctx, expr)
}

// Insert executes InsertSQL.
func (d *Dataset) Insert(ctx context.Context, values ...any) (Result, error) {
	sql, err := d.InsertSQL(values...)
	if err != nil {
		return nil, err
	}
	return d.exec(ctx, sql)
}

// Update executes UpdateSQL and returns the number of rows changed.
func (d *Dataset) Update(ctx context.Context, values any) (int64, error) {
	sql, err := d.UpdateSQL(values)
	if err != nil {
		return 0, err
	}
	return d.execAffected(ctx, sql)
}

// Delete executes DeleteSQL and returns the number of rows removed.
func (d *Dataset) Delete(ctx context.Context) (int64, error) {
	sql, err := d.DeleteSQL()
	if err != nil {
		return 0, err
	}
	return d.execAffected(ctx, sql)
}

func (d *Dataset) exec(ctx context.Context, sql string) (Result, error) {
	db, err := d.rowSource()
	if err != nil {
		return nil, err
	}
	return db.Exec(ctx, sql)
}

func (d *Dataset) execAffected(ctx context.Context, sql string) (int64, error) {
	res, err := d.exec(ctx, sql)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// toInt64 converts the integer representations drivers return for
// COUNT(*).
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	}
	return 0, fmt.Errorf("%w: cannot read %T as a count", sqlerr.ErrUnsupportedLiteral, v)
}
