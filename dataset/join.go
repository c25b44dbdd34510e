package dataset

import (
	"slices"

	"github.com/bawdo/gosequel/nodes"
)

// Join is InnerJoin.
func (d *Dataset) Join(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.InnerJoin, table, cond, alias...)
}

// InnerJoin adds an INNER JOIN.
func (d *Dataset) InnerJoin(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.InnerJoin, table, cond, alias...)
}

// LeftOuterJoin adds a LEFT OUTER JOIN.
func (d *Dataset) LeftOuterJoin(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.LeftOuterJoin, table, cond, alias...)
}

// RightOuterJoin adds a RIGHT OUTER JOIN.
func (d *Dataset) RightOuterJoin(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.RightOuterJoin, table, cond, alias...)
}

// FullOuterJoin adds a FULL OUTER JOIN.
func (d *Dataset) FullOuterJoin(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.FullOuterJoin, table, cond, alias...)
}

// StraightJoin adds a MySQL STRAIGHT_JOIN.
func (d *Dataset) StraightJoin(table, cond any, alias ...string) *Dataset {
	return d.JoinTable(nodes.StraightJoin, table, cond, alias...)
}

// NaturalJoin adds a NATURAL JOIN.
func (d *Dataset) NaturalJoin(table any, alias ...string) *Dataset {
	return d.JoinTable(nodes.NaturalJoin, table, nil, alias...)
}

// CrossJoin adds a CROSS JOIN.
func (d *Dataset) CrossJoin(table any, alias ...string) *Dataset {
	return d.JoinTable(nodes.CrossJoin, table, nil, alias...)
}

// StringJoin appends a raw join fragment.
//
// SECURITY: raw is injected verbatim. Never pass user-controlled input.
func (d *Dataset) StringJoin(raw string) *Dataset {
	c := d.clone()
	c.core.Joins = append(c.core.Joins, &nodes.JoinNode{Right: nodes.NewSqlLiteral(raw), Type: nodes.StringJoin})
	return c
}

// JoinTable adds a join of the given type. table is a table name, a node or
// a dataset (joined as an auto-aliased subquery unless it only names a
// table). cond builds the ON clause:
//
//   - nil: no ON clause
//   - string key: joined.key = last.id
//   - map[string]any or Pairs: joined.key = last.value for each entry
//   - a node: used as-is
//
// "last" is the most recently joined table, or the first FROM source before
// any join, so chained implicit keys follow the join chain.
func (d *Dataset) JoinTable(jt nodes.JoinType, table, cond any, alias ...string) *Dataset {
	c := d.clone()
	var right nodes.Node
	if len(alias) > 0 && alias[0] != "" {
		right = &nodes.TableAlias{Relation: aliasTarget(table), AliasName: alias[0]}
	} else {
		right = c.source(table)
	}
	c.core.Joins = append(c.core.Joins, &nodes.JoinNode{
		Right: right,
		Type:  jt,
		On:    joinCondition(cond, relationOf(right), d.lastJoined()),
	})
	return c
}

// aliasTarget resolves a join argument that is given an explicit alias.
func aliasTarget(table any) nodes.Node {
	switch v := table.(type) {
	case string:
		return nodes.NewTable(v)
	case *Dataset:
		if t, ok := v.bareTable(); ok {
			return t
		}
		return v
	case nodes.Node:
		return v
	}
	return nodes.Literal(table)
}

// lastJoined is the relation implicit join values are qualified with.
func (d *Dataset) lastJoined() nodes.Node {
	for _, j := range slices.Backward(d.core.Joins) {
		if r := relationOf(j.Right); r != nil {
			return r
		}
	}
	return d.firstRelation()
}

// relationOf returns n when it can qualify columns.
func relationOf(n nodes.Node) nodes.Node {
	switch n.(type) {
	case *nodes.Table, *nodes.TableAlias:
		return n
	}
	return nil
}

func joinCondition(cond any, joined, last nodes.Node) nodes.Node {
	switch v := cond.(type) {
	case nil:
		return nil
	case string:
		return joinPairs(Pairs{{Column: v, Value: "id"}}, joined, last)
	case map[string]any:
		return joinPairs(sortedPairs(v), joined, last)
	case Pairs:
		return joinPairs(v, joined, last)
	case nodes.Node:
		return v
	}
	return nodes.Literal(cond)
}

// joinPairs qualifies unqualified keys with the joined table and
// unqualified string values with the last table.
func joinPairs(pairs Pairs, joined, last nodes.Node) nodes.Node {
	conds := make([]nodes.Node, len(pairs))
	for i, p := range pairs {
		left := qualify(column(p.Column), joined)
		var right nodes.Node
		if s, ok := p.Value.(string); ok {
			right = qualify(nodes.Col(s), last)
		} else {
			right = nodes.Literal(p.Value)
		}
		conds[i] = nodes.NewComparisonNode(left, right, nodes.OpEq)
	}
	return nodes.And(conds...)
}

func qualify(n nodes.Node, rel nodes.Node) nodes.Node {
	if a, ok := n.(*nodes.Attribute); ok && !a.Qualified() && rel != nil {
		return a.Qualify(rel)
	}
	return n
}
