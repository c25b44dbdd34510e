package nodes

// AndNode represents a logical AND between two expressions. Chains are
// stored pairwise; the visitor flattens them when rendering.
type AndNode struct {
	Combinable
	Left  Node
	Right Node
}

func (n *AndNode) Accept(v Visitor) string { return v.VisitAnd(n) }

// NewAnd creates an AndNode.
func NewAnd(left, right Node) *AndNode {
	n := &AndNode{Left: left, Right: right}
	n.self = n
	return n
}

// OrNode represents a logical OR between two expressions.
type OrNode struct {
	Combinable
	Left  Node
	Right Node
}

func (n *OrNode) Accept(v Visitor) string { return v.VisitOr(n) }

// NewOr creates an OrNode.
func NewOr(left, right Node) *OrNode {
	n := &OrNode{Left: left, Right: right}
	n.self = n
	return n
}

// NotNode represents a logical NOT of an expression.
type NotNode struct {
	Combinable
	Expr Node
}

func (n *NotNode) Accept(v Visitor) string { return v.VisitNot(n) }

// NewNot creates a NotNode wrapping expr as a whole.
func NewNot(expr Node) *NotNode {
	n := &NotNode{Expr: expr}
	n.self = n
	return n
}

// And folds conds left to right into an AND chain. It returns nil for no
// conditions and the condition itself for one.
func And(conds ...Node) Node {
	return fold(conds, func(l, r Node) Node { return NewAnd(l, r) })
}

// Or folds conds left to right into an OR chain.
func Or(conds ...Node) Node {
	return fold(conds, func(l, r Node) Node { return NewOr(l, r) })
}

func fold(conds []Node, join func(l, r Node) Node) Node {
	var result Node
	for _, c := range conds {
		if c == nil {
			continue
		}
		if result == nil {
			result = c
			continue
		}
		result = join(result, c)
	}
	return result
}
