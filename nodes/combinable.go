package nodes

// Combinable provides logical chaining methods to types that embed it.
// The self field must be set to the embedding node.
type Combinable struct {
	self Node
}

// And creates an AndNode combining self with other.
func (c Combinable) And(other Node) *AndNode {
	return NewAnd(c.self, other)
}

// Or creates an OrNode combining self with other.
func (c Combinable) Or(other Node) *OrNode {
	return NewOr(c.self, other)
}

// Not returns the negation of self. See Negate.
func (c Combinable) Not() Condition {
	return Negate(c.self)
}

// Negate returns the logical inverse of n. Comparisons, IN and EXISTS
// predicates are inverted in closed form (> becomes <=, IN becomes NOT IN,
// IS NULL becomes IS NOT NULL) and a NOT is unwrapped. Raw fragments and
// boolean combinations are wrapped in a generic NOT.
func Negate(n Node) Condition {
	switch x := n.(type) {
	case *ComparisonNode:
		return NewComparisonNode(x.Left, x.Right, x.Op.Inverse())
	case *InNode:
		return newIn(x.Expr, x.Vals, !x.Negate)
	case *ExistsNode:
		return newExists(x.Subquery, !x.Negated)
	case *NotNode:
		if c, ok := x.Expr.(Condition); ok {
			return c
		}
	}
	return NewNot(n)
}
