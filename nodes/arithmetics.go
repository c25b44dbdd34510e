package nodes

// Arithmetics provides math, bitwise and concatenation methods to types that
// embed it. The self field must be set to the embedding node. Boolean nodes do
// not embed it, so arithmetic on a comparison does not compile; operands that
// are only known at run time are checked by Validate.
type Arithmetics struct {
	self Node
}

func (a Arithmetics) newInfix(op InfixOp, val any) *InfixNode {
	return NewInfixNode(a.self, Literal(val), op)
}

func (a Arithmetics) Plus(val any) *InfixNode       { return a.newInfix(OpPlus, val) }
func (a Arithmetics) Minus(val any) *InfixNode      { return a.newInfix(OpMinus, val) }
func (a Arithmetics) Multiply(val any) *InfixNode   { return a.newInfix(OpMultiply, val) }
func (a Arithmetics) Divide(val any) *InfixNode     { return a.newInfix(OpDivide, val) }
func (a Arithmetics) BitwiseAnd(val any) *InfixNode { return a.newInfix(OpBitwiseAnd, val) }
func (a Arithmetics) BitwiseOr(val any) *InfixNode  { return a.newInfix(OpBitwiseOr, val) }
func (a Arithmetics) BitwiseXor(val any) *InfixNode { return a.newInfix(OpBitwiseXor, val) }
func (a Arithmetics) ShiftLeft(val any) *InfixNode  { return a.newInfix(OpShiftLeft, val) }
func (a Arithmetics) ShiftRight(val any) *InfixNode { return a.newInfix(OpShiftRight, val) }

func (a Arithmetics) BitwiseNot() *UnaryMathNode {
	return NewUnaryMathNode(a.self, OpBitwiseNot)
}

// Concat creates a string concatenation of self followed by vals.
func (a Arithmetics) Concat(vals ...any) *ConcatNode {
	parts := make([]Node, 0, len(vals)+1)
	parts = append(parts, a.self)
	for _, v := range vals {
		parts = append(parts, Literal(v))
	}
	return NewConcat(parts, nil)
}
