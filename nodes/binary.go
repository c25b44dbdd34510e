package nodes

// ComparisonOp represents a binary comparison operator.
type ComparisonOp int

const (
	OpEq ComparisonOp = iota
	OpNotEq
	OpGt
	OpGtEq
	OpLt
	OpLtEq
	OpLike
	OpNotLike
	OpILike
	OpNotILike
	OpRegexp
	OpNotRegexp
	OpIRegexp
	OpNotIRegexp
	OpIs
	OpIsNot
)

// inverseOps maps each comparison operator to its logical inverse.
var inverseOps = map[ComparisonOp]ComparisonOp{
	OpEq:         OpNotEq,
	OpNotEq:      OpEq,
	OpGt:         OpLtEq,
	OpLtEq:       OpGt,
	OpGtEq:       OpLt,
	OpLt:         OpGtEq,
	OpLike:       OpNotLike,
	OpNotLike:    OpLike,
	OpILike:      OpNotILike,
	OpNotILike:   OpILike,
	OpRegexp:     OpNotRegexp,
	OpNotRegexp:  OpRegexp,
	OpIRegexp:    OpNotIRegexp,
	OpNotIRegexp: OpIRegexp,
	OpIs:         OpIsNot,
	OpIsNot:      OpIs,
}

// Inverse returns the operator that negates op.
func (op ComparisonOp) Inverse() ComparisonOp {
	return inverseOps[op]
}

// IsOrdering reports whether op is one of <, <=, >, >=.
func (op ComparisonOp) IsOrdering() bool {
	return op >= OpGt && op <= OpLtEq
}

// IsPattern reports whether op is a LIKE or regular expression match.
func (op ComparisonOp) IsPattern() bool {
	return op >= OpLike && op <= OpNotIRegexp
}

// IsRegexp reports whether op is a regular expression match.
func (op ComparisonOp) IsRegexp() bool {
	return op >= OpRegexp && op <= OpNotIRegexp
}

// ComparisonNode represents a binary comparison: Left Op Right.
type ComparisonNode struct {
	Combinable
	Left  Node
	Right Node
	Op    ComparisonOp
}

func (n *ComparisonNode) Accept(v Visitor) string { return v.VisitComparison(n) }

// NewComparisonNode creates a ComparisonNode with its mixin bound to the new node.
func NewComparisonNode(left, right Node, op ComparisonOp) *ComparisonNode {
	n := &ComparisonNode{Left: left, Right: right, Op: op}
	n.self = n
	return n
}
