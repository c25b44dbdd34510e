package nodes

// FunctionNode represents an SQL function call: name(arg, ...).
type FunctionNode struct {
	Predications
	Arithmetics
	Combinable
	Name     string
	Args     []Node
	Distinct bool
}

func (n *FunctionNode) Accept(v Visitor) string { return v.VisitFunction(n) }

// NewFunction creates a FunctionNode. Arguments that are not nodes become
// literals.
func NewFunction(name string, args ...any) *FunctionNode {
	nds := make([]Node, len(args))
	for i, a := range args {
		nds[i] = Literal(a)
	}
	return newFunction(name, nds, false)
}

func newFunction(name string, args []Node, distinct bool) *FunctionNode {
	n := &FunctionNode{Name: name, Args: args, Distinct: distinct}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

// CountAll creates COUNT(*).
func CountAll() *FunctionNode {
	return newFunction("COUNT", []Node{Star()}, false)
}

// Count creates COUNT(expr).
func Count(expr Node) *FunctionNode {
	return newFunction("COUNT", []Node{expr}, false)
}

// CountDistinct creates COUNT(DISTINCT expr).
func CountDistinct(expr Node) *FunctionNode {
	return newFunction("COUNT", []Node{expr}, true)
}

// Sum creates SUM(expr).
func Sum(expr Node) *FunctionNode { return newFunction("SUM", []Node{expr}, false) }

// Avg creates AVG(expr).
func Avg(expr Node) *FunctionNode { return newFunction("AVG", []Node{expr}, false) }

// Min creates MIN(expr).
func Min(expr Node) *FunctionNode { return newFunction("MIN", []Node{expr}, false) }

// Max creates MAX(expr).
func Max(expr Node) *FunctionNode { return newFunction("MAX", []Node{expr}, false) }

// Coalesce creates COALESCE(args...).
func Coalesce(args ...any) *FunctionNode {
	return NewFunction("COALESCE", args...)
}

// Lower creates LOWER(expr).
func Lower(expr Node) *FunctionNode { return newFunction("LOWER", []Node{expr}, false) }

// Upper creates UPPER(expr).
func Upper(expr Node) *FunctionNode { return newFunction("UPPER", []Node{expr}, false) }

// Cast creates CAST(expr AS typeName). The type name is validated by the
// visitor before it is written.
func Cast(expr Node, typeName string) *FunctionNode {
	return newFunction("CAST", []Node{expr, NewSqlLiteral(typeName)}, false)
}

// ExtractField is the date part named in EXTRACT(field FROM expr).
type ExtractField int

const (
	ExtractYear ExtractField = iota
	ExtractMonth
	ExtractDay
	ExtractHour
	ExtractMinute
	ExtractSecond
	ExtractDow
	ExtractDoy
	ExtractEpoch
)

// ExtractNode represents EXTRACT(field FROM expr).
type ExtractNode struct {
	Predications
	Arithmetics
	Field ExtractField
	Expr  Node
}

func (n *ExtractNode) Accept(v Visitor) string { return v.VisitExtract(n) }

// Extract creates an ExtractNode.
func Extract(field ExtractField, expr Node) *ExtractNode {
	n := &ExtractNode{Field: field, Expr: expr}
	n.Predications.self = n
	n.Arithmetics.self = n
	return n
}
