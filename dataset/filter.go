package dataset

import (
	"fmt"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

// Pair is one column = value entry of an ordered condition list.
type Pair struct {
	Column any // column name or node
	Value  any
}

// Pairs is an ordered list of equality conditions. Use it instead of a map
// when the rendered order matters.
type Pairs []Pair

// clause selects the predicate a filter operation works on.
type clause int

const (
	whereClause clause = iota
	havingClause
)

func (d *Dataset) predicate(cl clause) nodes.Node {
	if cl == havingClause {
		return d.core.Having
	}
	return d.core.Where
}

func (d *Dataset) withPredicate(cl clause, n nodes.Node) *Dataset {
	c := d.clone()
	if cl == havingClause {
		c.core.Having = n
	} else {
		c.core.Where = n
	}
	return c
}

// combinableClause is HAVING once one is set and WHERE otherwise.
func (d *Dataset) combinableClause() clause {
	if d.core.Having != nil {
		return havingClause
	}
	return whereClause
}

// Where ANDs a condition into the WHERE clause. cond may be a
// map[string]any (keys sorted), Pairs, a raw SQL string with ? or :name
// placeholders bound to args, a node, or a func(*nodes.VirtualRow) nodes.Node.
func (d *Dataset) Where(cond any, args ...any) (*Dataset, error) {
	n, err := filterExpr(cond, args)
	if err != nil {
		return nil, err
	}
	return d.withPredicate(whereClause, nodes.And(d.core.Where, n)), nil
}

// Filter is an alias for Where.
func (d *Dataset) Filter(cond any, args ...any) (*Dataset, error) {
	return d.Where(cond, args...)
}

// And ANDs a condition into the existing filter. It fails with
// ErrNoExistingFilter when there is none.
func (d *Dataset) And(cond any, args ...any) (*Dataset, error) {
	cl := d.combinableClause()
	existing := d.predicate(cl)
	if existing == nil {
		return nil, fmt.Errorf("%w: And needs a prior filter", sqlerr.ErrNoExistingFilter)
	}
	n, err := filterExpr(cond, args)
	if err != nil {
		return nil, err
	}
	return d.withPredicate(cl, nodes.And(existing, n)), nil
}

// Or ORs a condition with the existing filter. It fails with
// ErrNoExistingFilter when there is none.
func (d *Dataset) Or(cond any, args ...any) (*Dataset, error) {
	cl := d.combinableClause()
	existing := d.predicate(cl)
	if existing == nil {
		return nil, fmt.Errorf("%w: Or needs a prior filter", sqlerr.ErrNoExistingFilter)
	}
	n, err := filterExpr(cond, args)
	if err != nil {
		return nil, err
	}
	return d.withPredicate(cl, nodes.Or(existing, n)), nil
}

// Exclude ANDs NOT (cond) into the filter. The condition is negated as a
// whole rather than by inverting its operators.
func (d *Dataset) Exclude(cond any, args ...any) (*Dataset, error) {
	n, err := filterExpr(cond, args)
	if err != nil {
		return nil, err
	}
	cl := d.combinableClause()
	return d.withPredicate(cl, nodes.And(d.predicate(cl), nodes.NewNot(n))), nil
}

// Invert negates the WHERE and HAVING clauses.
func (d *Dataset) Invert() (*Dataset, error) {
	if d.core.Where == nil && d.core.Having == nil {
		return nil, fmt.Errorf("%w: nothing to invert", sqlerr.ErrNoExistingFilter)
	}
	c := d.clone()
	if c.core.Where != nil {
		c.core.Where = nodes.Negate(c.core.Where)
	}
	if c.core.Having != nil {
		c.core.Having = nodes.Negate(c.core.Having)
	}
	return c, nil
}

// Having ANDs a condition into the HAVING clause of a grouped dataset.
func (d *Dataset) Having(cond any, args ...any) (*Dataset, error) {
	if len(d.core.Groups) == 0 {
		return nil, sqlerr.ErrRequiresGrouping
	}
	n, err := filterExpr(cond, args)
	if err != nil {
		return nil, err
	}
	return d.withPredicate(havingClause, nodes.And(d.core.Having, n)), nil
}

// filterExpr turns a filter argument into a validated boolean expression.
func filterExpr(cond any, args []any) (nodes.Node, error) {
	n, err := buildFilter(cond, args)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, fmt.Errorf("%w: empty filter", sqlerr.ErrInvalidOperation)
	}
	if err := nodes.Validate(n); err != nil {
		return nil, err
	}
	if k := nodes.KindOf(n); k == nodes.KindNumeric || k == nodes.KindString {
		return nil, fmt.Errorf("%w: filter on a %s expression", sqlerr.ErrInvalidExpressionType, k)
	}
	return n, nil
}

func buildFilter(cond any, args []any) (nodes.Node, error) {
	switch v := cond.(type) {
	case map[string]any:
		return buildFilter(sortedPairs(v), nil)
	case Pairs:
		conds := make([]nodes.Node, len(v))
		for i, p := range v {
			conds[i] = equality(column(p.Column), p.Value)
		}
		return nodes.And(conds...), nil
	case string:
		if len(args) == 0 {
			return nodes.NewGrouping(nodes.NewSqlLiteral(v)), nil
		}
		ph, err := nodes.NewPlaceholder(v, args...)
		if err != nil {
			return nil, err
		}
		return nodes.NewGrouping(ph), nil
	case func(*nodes.VirtualRow) nodes.Node:
		return v(&nodes.VirtualRow{}), nil
	case bool:
		return nodes.Literal(v), nil
	case nodes.Node:
		return v, nil
	}
	return nil, fmt.Errorf("%w: unsupported filter %T", sqlerr.ErrInvalidOperation, cond)
}

// equalizer is implemented by every node that can be compared with Eq.
type equalizer interface {
	Eq(val any) nodes.Condition
}

func equality(col nodes.Node, val any) nodes.Node {
	if e, ok := col.(equalizer); ok {
		return e.Eq(val)
	}
	return nodes.NewComparisonNode(col, nodes.Literal(val), nodes.OpEq)
}
