package nodes

// InfixOp identifies the binary math or bitwise operator.
type InfixOp int

const (
	OpPlus InfixOp = iota
	OpMinus
	OpMultiply
	OpDivide
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
)

// InfixNode represents a numeric binary expression.
type InfixNode struct {
	Predications
	Arithmetics
	Left  Node
	Right Node
	Op    InfixOp
}

func (n *InfixNode) Accept(v Visitor) string { return v.VisitInfix(n) }

// NewInfixNode creates an InfixNode with its mixins bound to the new node.
func NewInfixNode(left, right Node, op InfixOp) *InfixNode {
	n := &InfixNode{Left: left, Right: right, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	return n
}

// UnaryMathOp identifies the unary math operator.
type UnaryMathOp int

const (
	OpBitwiseNot UnaryMathOp = iota
)

// UnaryMathNode represents a unary numeric expression (bitwise NOT).
type UnaryMathNode struct {
	Predications
	Arithmetics
	Expr Node
	Op   UnaryMathOp
}

func (n *UnaryMathNode) Accept(v Visitor) string { return v.VisitUnaryMath(n) }

// NewUnaryMathNode creates a UnaryMathNode with its mixins bound to the new node.
func NewUnaryMathNode(expr Node, op UnaryMathOp) *UnaryMathNode {
	n := &UnaryMathNode{Expr: expr, Op: op}
	n.Predications.self = n
	n.Arithmetics.self = n
	return n
}

// ConcatNode represents string concatenation of Parts, with Joiner (when
// set) placed between consecutive parts.
type ConcatNode struct {
	Predications
	Parts  []Node
	Joiner Node
}

func (n *ConcatNode) Accept(v Visitor) string { return v.VisitConcat(n) }

// NewConcat creates a ConcatNode.
func NewConcat(parts []Node, joiner Node) *ConcatNode {
	n := &ConcatNode{Parts: parts, Joiner: joiner}
	n.Predications.self = n
	return n
}

// Concat appends vals to the concatenation.
func (n *ConcatNode) Concat(vals ...any) *ConcatNode {
	parts := make([]Node, len(n.Parts), len(n.Parts)+len(vals))
	copy(parts, n.Parts)
	for _, v := range vals {
		parts = append(parts, Literal(v))
	}
	return NewConcat(parts, n.Joiner)
}

// JoinStrings concatenates parts with joiner between each pair. A nil joiner
// concatenates directly.
func JoinStrings(parts []any, joiner any) *ConcatNode {
	nds := make([]Node, len(parts))
	for i, p := range parts {
		nds[i] = Literal(p)
	}
	var j Node
	if joiner != nil {
		j = Literal(joiner)
	}
	return NewConcat(nds, j)
}
