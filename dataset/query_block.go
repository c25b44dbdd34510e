package dataset

import (
	"fmt"

	"github.com/bawdo/gosequel/sqlerr"
)

// QueryBuilder accumulates read-only clauses inside a Query block. Each call
// replaces the builder's dataset with the derived one; modifying statements
// are refused.
type QueryBuilder struct {
	ds *Dataset
}

// Query runs fn against a builder seeded with d and returns the resulting
// dataset. The first error returned by fn is returned unchanged.
func (d *Dataset) Query(fn func(q *QueryBuilder) error) (*Dataset, error) {
	q := &QueryBuilder{ds: d}
	if err := fn(q); err != nil {
		return nil, err
	}
	return q.ds, nil
}

// Dataset returns the dataset built so far.
func (q *QueryBuilder) Dataset() *Dataset { return q.ds }

func (q *QueryBuilder) From(sources ...any) { q.ds = q.ds.From(sources...) }
func (q *QueryBuilder) Select(cols ...any)  { q.ds = q.ds.Select(cols...) }
func (q *QueryBuilder) Distinct(on ...any)  { q.ds = q.ds.Distinct(on...) }
func (q *QueryBuilder) Order(cols ...any)   { q.ds = q.ds.Order(cols...) }
func (q *QueryBuilder) Group(cols ...any)   { q.ds = q.ds.Group(cols...) }

func (q *QueryBuilder) Join(table, cond any, alias ...string) {
	q.ds = q.ds.Join(table, cond, alias...)
}

func (q *QueryBuilder) Where(cond any, args ...any) error {
	return q.apply(q.ds.Where(cond, args...))
}

func (q *QueryBuilder) Or(cond any, args ...any) error {
	return q.apply(q.ds.Or(cond, args...))
}

func (q *QueryBuilder) Exclude(cond any, args ...any) error {
	return q.apply(q.ds.Exclude(cond, args...))
}

func (q *QueryBuilder) Having(cond any, args ...any) error {
	return q.apply(q.ds.Having(cond, args...))
}

func (q *QueryBuilder) Limit(n int, offset ...int) error {
	return q.apply(q.ds.Limit(n, offset...))
}

func (q *QueryBuilder) apply(ds *Dataset, err error) error {
	if err != nil {
		return err
	}
	q.ds = ds
	return nil
}

// Insert always fails: a query block only builds SELECTs.
func (q *QueryBuilder) Insert(...any) error { return readOnly("Insert") }

// Update always fails: a query block only builds SELECTs.
func (q *QueryBuilder) Update(any) error { return readOnly("Update") }

// Delete always fails: a query block only builds SELECTs.
func (q *QueryBuilder) Delete() error { return readOnly("Delete") }

// Each always fails: a query block does not execute its dataset.
func (q *QueryBuilder) Each(func(Row) error) error { return readOnly("Each") }

func readOnly(op string) error {
	return fmt.Errorf("%w: %s is not allowed inside a query block", sqlerr.ErrInvalidOperation, op)
}
