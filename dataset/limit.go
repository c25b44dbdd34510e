package dataset

import (
	"fmt"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

// Limit sets LIMIT n and, optionally, OFFSET. n must be positive and the
// offset must not be negative.
func (d *Dataset) Limit(n int, offset ...int) (*Dataset, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: limit must be at least 1, got %d", sqlerr.ErrInvalidOperation, n)
	}
	c := d.clone()
	c.core.Limit = nodes.Literal(n)
	if len(offset) > 0 {
		return c.Offset(offset[0])
	}
	return c, nil
}

// LimitRange limits the dataset to the rows of an integer range:
// LimitRange(nodes.RangeOf(3, 7)) gives LIMIT 5 OFFSET 3.
func (d *Dataset) LimitRange(r nodes.Range) (*Dataset, error) {
	begin, ok1 := r.Begin.(int)
	end, ok2 := r.End.(int)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: limit range bounds must be ints, got %T..%T",
			sqlerr.ErrInvalidOperation, r.Begin, r.End)
	}
	n := end - begin
	if !r.ExcludeEnd {
		n++
	}
	return d.Limit(n, begin)
}

// Offset sets OFFSET n.
func (d *Dataset) Offset(n int) (*Dataset, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative, got %d", sqlerr.ErrInvalidOperation, n)
	}
	c := d.clone()
	c.core.Offset = nodes.Literal(n)
	return c, nil
}

// limited returns d with LIMIT n; n is known to be valid.
func (d *Dataset) limited(n int) *Dataset {
	c := d.clone()
	c.core.Limit = nodes.Literal(n)
	return c
}
