package nodes

// GroupingNode wraps an expression in parentheses.
type GroupingNode struct {
	Combinable
	Expr Node
}

func (n *GroupingNode) Accept(v Visitor) string { return v.VisitGrouping(n) }

// NewGrouping creates a GroupingNode around expr.
func NewGrouping(expr Node) *GroupingNode {
	n := &GroupingNode{Expr: expr}
	n.self = n
	return n
}

// SubqueryNode is a nested SELECT used as a value: (SELECT ...).
type SubqueryNode struct {
	Predications
	Query Query
}

func (n *SubqueryNode) Accept(v Visitor) string { return v.VisitSubquery(n) }

// NewSubquery wraps q as a parenthesized subquery expression.
func NewSubquery(q Query) *SubqueryNode {
	n := &SubqueryNode{Query: q}
	n.Predications.self = n
	return n
}
