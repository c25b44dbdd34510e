package nodes

// OrderDirection represents ASC or DESC ordering.
type OrderDirection int

const (
	Asc OrderDirection = iota
	Desc
)

// NullsDirection controls NULLS FIRST/LAST positioning.
type NullsDirection int

const (
	NullsDefault NullsDirection = iota
	NullsFirst
	NullsLast
)

// OrderingNode represents an ORDER BY expression with a direction.
type OrderingNode struct {
	Expr      Node
	Direction OrderDirection
	Nulls     NullsDirection
}

func (n *OrderingNode) Accept(v Visitor) string { return v.VisitOrdering(n) }

// Reverse returns the ordering with the opposite direction. NULLS placement
// flips along with it.
func (n *OrderingNode) Reverse() *OrderingNode {
	r := &OrderingNode{Expr: n.Expr, Direction: Asc}
	if n.Direction == Asc {
		r.Direction = Desc
	}
	switch n.Nulls {
	case NullsFirst:
		r.Nulls = NullsLast
	case NullsLast:
		r.Nulls = NullsFirst
	}
	return r
}

// WithNulls returns a copy with the given NULLS placement.
func (n *OrderingNode) WithNulls(nulls NullsDirection) *OrderingNode {
	return &OrderingNode{Expr: n.Expr, Direction: n.Direction, Nulls: nulls}
}

// ReverseOrder inverts one ORDER BY entry. An unmarked expression counts as
// ascending and becomes DESC.
func ReverseOrder(n Node) Node {
	if o, ok := n.(*OrderingNode); ok {
		return o.Reverse()
	}
	return &OrderingNode{Expr: n, Direction: Desc}
}
