package nodes

// CaseWhen represents a single WHEN ... THEN ... pair in a CASE expression.
type CaseWhen struct {
	Condition Node
	Result    Node
}

// CaseNode represents a SQL CASE expression:
//
//	CASE [operand] WHEN cond THEN result ... [ELSE val] END
//
// If Operand is nil, it is a "searched CASE" (CASE WHEN cond THEN ...).
type CaseNode struct {
	Predications
	Arithmetics
	Combinable
	Operand Node
	Whens   []CaseWhen
	ElseVal Node
}

func (n *CaseNode) Accept(v Visitor) string { return v.VisitCase(n) }

// NewCase creates a CaseNode. Pass an operand for simple CASE, or nothing for searched CASE.
func NewCase(operand ...Node) *CaseNode {
	var op Node
	if len(operand) > 0 {
		op = operand[0]
	}
	return newCase(op, nil, nil)
}

func newCase(operand Node, whens []CaseWhen, elseVal Node) *CaseNode {
	n := &CaseNode{Operand: operand, Whens: whens, ElseVal: elseVal}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// When returns a copy with an extra WHEN ... THEN ... pair.
func (n *CaseNode) When(cond, result any) *CaseNode {
	whens := make([]CaseWhen, len(n.Whens), len(n.Whens)+1)
	copy(whens, n.Whens)
	whens = append(whens, CaseWhen{Condition: Literal(cond), Result: Literal(result)})
	return newCase(n.Operand, whens, n.ElseVal)
}

// Else returns a copy with the ELSE value set.
func (n *CaseNode) Else(result any) *CaseNode {
	return newCase(n.Operand, n.Whens, Literal(result))
}
