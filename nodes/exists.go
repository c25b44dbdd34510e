package nodes

// ExistsNode represents an EXISTS or NOT EXISTS subquery expression.
type ExistsNode struct {
	Combinable
	Subquery Node
	Negated  bool
}

func (n *ExistsNode) Accept(v Visitor) string { return v.VisitExists(n) }

func newExists(subquery Node, negated bool) *ExistsNode {
	n := &ExistsNode{Subquery: subquery, Negated: negated}
	n.self = n
	return n
}

// Exists creates an EXISTS (subquery) node.
func Exists(subquery Query) *ExistsNode {
	return newExists(subquery, false)
}

// NotExists creates a NOT EXISTS (subquery) node.
func NotExists(subquery Query) *ExistsNode {
	return newExists(subquery, true)
}
