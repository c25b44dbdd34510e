package dataset

import "github.com/bawdo/gosequel/nodes"

// column resolves a projection, grouping or ordering argument. Strings are
// column names ("t.c" qualifies, "*" is the star); datasets become
// subqueries and other values literals.
func column(v any) nodes.Node {
	if s, ok := v.(string); ok {
		if s == "*" {
			return nodes.Star()
		}
		return nodes.Col(s)
	}
	return nodes.Literal(v)
}

func columns(vs []any) []nodes.Node {
	if len(vs) == 0 {
		return nil
	}
	out := make([]nodes.Node, len(vs))
	for i, v := range vs {
		out[i] = column(v)
	}
	return out
}

// Select replaces the selected columns. No arguments selects *.
func (d *Dataset) Select(cols ...any) *Dataset {
	c := d.clone()
	c.core.Projections = columns(cols)
	return c
}

// SelectMore adds columns to the existing selection.
func (d *Dataset) SelectMore(cols ...any) *Dataset {
	c := d.clone()
	c.core.Projections = append(c.core.Projections, columns(cols)...)
	return c
}

// SelectAll selects * or, given table names, table.* for each of them.
func (d *Dataset) SelectAll(tables ...string) *Dataset {
	c := d.clone()
	c.core.Projections = nil
	for _, t := range tables {
		c.core.Projections = append(c.core.Projections, nodes.NewTable(t).Star())
	}
	return c
}

// Distinct adds DISTINCT, or DISTINCT ON (cols) when columns are given.
func (d *Dataset) Distinct(on ...any) *Dataset {
	c := d.clone()
	c.core.Distinct = true
	c.core.DistinctOn = columns(on)
	return c
}

// Order replaces the ORDER BY clause. No arguments removes it.
func (d *Dataset) Order(cols ...any) *Dataset {
	c := d.clone()
	c.core.Orders = columns(cols)
	return c
}

// OrderMore appends to the ORDER BY clause.
func (d *Dataset) OrderMore(cols ...any) *Dataset {
	c := d.clone()
	c.core.Orders = append(c.core.Orders, columns(cols)...)
	return c
}

// Reverse orders by cols in descending direction, or inverts the existing
// order when no columns are given.
func (d *Dataset) Reverse(cols ...any) *Dataset {
	orders := columns(cols)
	if len(orders) == 0 {
		orders = d.core.Orders
	}
	c := d.clone()
	c.core.Orders = nil
	for _, o := range orders {
		c.core.Orders = append(c.core.Orders, nodes.ReverseOrder(o))
	}
	return c
}

// Unordered removes the ORDER BY clause.
func (d *Dataset) Unordered() *Dataset {
	c := d.clone()
	c.core.Orders = nil
	return c
}

// Group replaces the GROUP BY clause.
func (d *Dataset) Group(cols ...any) *Dataset {
	c := d.clone()
	c.core.Groups = columns(cols)
	return c
}

// GroupAndCount groups by cols and selects them along with COUNT(*) AS count.
func (d *Dataset) GroupAndCount(cols ...any) *Dataset {
	c := d.Group(cols...)
	c.core.Projections = append(columns(cols), nodes.CountAll().As("count"))
	return c
}

// Ungrouped removes GROUP BY and HAVING.
func (d *Dataset) Ungrouped() *Dataset {
	c := d.clone()
	c.core.Groups = nil
	c.core.Having = nil
	return c
}

// Unfiltered removes WHERE and HAVING.
func (d *Dataset) Unfiltered() *Dataset {
	c := d.clone()
	c.core.Where = nil
	c.core.Having = nil
	return c
}

// Unlimited removes LIMIT and OFFSET.
func (d *Dataset) Unlimited() *Dataset {
	c := d.clone()
	c.core.Limit = nil
	c.core.Offset = nil
	return c
}

// FromSelf returns a dataset selecting from this one as the subquery t1.
func (d *Dataset) FromSelf() *Dataset {
	outer := &Dataset{core: &nodes.SelectCore{}, db: d.db, dialect: d.dialect, quote: d.quote}
	outer.core.Sources = []nodes.Node{&nodes.TableAlias{Relation: d, AliasName: outer.nextAlias()}}
	return outer
}

// With adds a common table expression named name. Columns optionally name
// the CTE's columns.
func (d *Dataset) With(name string, ds *Dataset, cols ...string) *Dataset {
	return d.with(&nodes.CTENode{Name: name, Query: ds, Columns: cols})
}

// WithRecursive adds a recursive common table expression.
func (d *Dataset) WithRecursive(name string, ds *Dataset, cols ...string) *Dataset {
	return d.with(&nodes.CTENode{Name: name, Query: ds, Columns: cols, Recursive: true})
}

func (d *Dataset) with(cte *nodes.CTENode) *Dataset {
	c := d.clone()
	c.core.CTEs = append(c.core.CTEs, cte)
	return c
}

// Union appends UNION other.
func (d *Dataset) Union(other *Dataset) *Dataset { return d.compound(nodes.Union, other) }

// UnionAll appends UNION ALL other.
func (d *Dataset) UnionAll(other *Dataset) *Dataset { return d.compound(nodes.UnionAll, other) }

// Intersect appends INTERSECT other.
func (d *Dataset) Intersect(other *Dataset) *Dataset { return d.compound(nodes.Intersect, other) }

// IntersectAll appends INTERSECT ALL other.
func (d *Dataset) IntersectAll(other *Dataset) *Dataset {
	return d.compound(nodes.IntersectAll, other)
}

// Except appends EXCEPT other.
func (d *Dataset) Except(other *Dataset) *Dataset { return d.compound(nodes.Except, other) }

// ExceptAll appends EXCEPT ALL other.
func (d *Dataset) ExceptAll(other *Dataset) *Dataset { return d.compound(nodes.ExceptAll, other) }

func (d *Dataset) compound(t nodes.SetOpType, other *Dataset) *Dataset {
	c := d.clone()
	c.core.Compounds = append(c.core.Compounds, &nodes.Compound{Type: t, Query: other})
	return c
}

// ForUpdate locks the selected rows with FOR UPDATE.
func (d *Dataset) ForUpdate() *Dataset { return d.lock(nodes.ForUpdate) }

// ForShare locks the selected rows with FOR SHARE.
func (d *Dataset) ForShare() *Dataset { return d.lock(nodes.ForShare) }

func (d *Dataset) lock(m nodes.LockMode) *Dataset {
	c := d.clone()
	c.core.Lock = m
	return c
}
