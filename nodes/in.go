package nodes

import "reflect"

// InNode represents an IN or NOT IN set predicate. An empty Vals list renders
// as IN (NULL) so it never produces invalid SQL nor matches every row; a
// single SubqueryNode renders as IN (SELECT ...).
type InNode struct {
	Combinable
	Expr   Node
	Vals   []Node
	Negate bool
}

func (n *InNode) Accept(v Visitor) string { return v.VisitIn(n) }

func newIn(expr Node, vals []Node, negate bool) *InNode {
	n := &InNode{Expr: expr, Vals: vals, Negate: negate}
	n.self = n
	return n
}

// NewIn creates an IN predicate over already-built value nodes.
func NewIn(expr Node, vals ...Node) *InNode {
	return newIn(expr, vals, false)
}

// expandSlice returns the elements of a slice or array value as literal
// nodes. Byte slices are blobs, not collections, and are not expanded.
func expandSlice(val any) ([]Node, bool) {
	if val == nil {
		return nil, false
	}
	rv := reflect.ValueOf(val)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	items := make([]Node, rv.Len())
	for i := range items {
		items[i] = Literal(rv.Index(i).Interface())
	}
	return items, true
}

// setMembership builds the IN predicate for vals, honouring the single
// argument forms: a subquery, a Range or a slice.
func setMembership(expr Node, vals []any, negate bool) Condition {
	if len(vals) == 1 {
		switch v := vals[0].(type) {
		case Query:
			return newIn(expr, []Node{NewSubquery(v)}, negate)
		case Range:
			return maybeNegate(v.Cover(expr), negate)
		case *Range:
			return maybeNegate(v.Cover(expr), negate)
		}
		if items, ok := expandSlice(vals[0]); ok {
			return newIn(expr, items, negate)
		}
	}
	items := make([]Node, len(vals))
	for i, v := range vals {
		items[i] = Literal(v)
	}
	return newIn(expr, items, negate)
}

func maybeNegate(c Condition, negate bool) Condition {
	if negate {
		return Negate(c)
	}
	return c
}
