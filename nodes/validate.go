package nodes

import (
	"fmt"
	"reflect"

	"github.com/bawdo/gosequel/sqlerr"
	"github.com/shopspring/decimal"
)

// Kind is the semantic category of an expression.
type Kind int

const (
	KindGeneric Kind = iota // columns, functions, raw SQL: may be anything
	KindBoolean
	KindNumeric
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindBoolean:
		return "boolean"
	case KindNumeric:
		return "numeric"
	case KindString:
		return "string"
	default:
		return "generic"
	}
}

// KindOf returns the category of n.
func KindOf(n Node) Kind {
	switch x := n.(type) {
	case *ComparisonNode, *AndNode, *OrNode, *NotNode, *InNode, *ExistsNode:
		return KindBoolean
	case *InfixNode, *UnaryMathNode, *ExtractNode:
		return KindNumeric
	case *ConcatNode:
		return KindString
	case *GroupingNode:
		return KindOf(x.Expr)
	case *AliasNode:
		return KindOf(x.Expr)
	case *LiteralNode:
		return literalKind(x.Value)
	}
	return KindGeneric
}

func literalKind(v any) Kind {
	switch v.(type) {
	case bool:
		return KindBoolean
	case string:
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64,
		float32, float64, decimal.Decimal:
		return KindNumeric
	}
	return KindGeneric
}

// CheckOperands reports an ErrInvalidExpressionType error when the direct
// operands of n have a category its operator does not accept. It does not
// descend into the operands; Validate does.
func CheckOperands(n Node) error {
	switch x := n.(type) {
	case *InfixNode:
		return requireNot(x.Left, x.Right, "arithmetic", KindBoolean, KindString)
	case *UnaryMathNode:
		return requireNot(x.Expr, nil, "bitwise not", KindBoolean, KindString)
	case *ConcatNode:
		for _, p := range x.Parts {
			if err := requireNot(p, nil, "concatenation", KindBoolean); err != nil {
				return err
			}
		}
	case *ComparisonNode:
		switch {
		case x.Op.IsOrdering():
			return requireNot(x.Left, x.Right, "ordering comparison", KindBoolean)
		case x.Op.IsPattern():
			return requireNot(x.Left, nil, "pattern match", KindBoolean, KindNumeric)
		}
	case *AndNode:
		return requireNot(x.Left, x.Right, "AND", KindNumeric, KindString)
	case *OrNode:
		return requireNot(x.Left, x.Right, "OR", KindNumeric, KindString)
	case *NotNode:
		return requireNot(x.Expr, nil, "NOT", KindNumeric, KindString)
	}
	return nil
}

func requireNot(left, right Node, op string, banned ...Kind) error {
	for _, operand := range []Node{left, right} {
		if operand == nil {
			continue
		}
		k := KindOf(operand)
		for _, b := range banned {
			if k == b {
				return fmt.Errorf("%w: %s on a %s expression", sqlerr.ErrInvalidExpressionType, op, k)
			}
		}
	}
	return nil
}

// Validate walks the expression tree rooted at n and returns the first
// category error found. Nested queries are validated when they render.
func Validate(n Node) error {
	if n == nil {
		return nil
	}
	if err := CheckOperands(n); err != nil {
		return err
	}
	for _, child := range children(n) {
		if err := Validate(child); err != nil {
			return err
		}
	}
	return nil
}

func children(n Node) []Node {
	switch x := n.(type) {
	case *ComparisonNode:
		return []Node{x.Left, x.Right}
	case *AndNode:
		return []Node{x.Left, x.Right}
	case *OrNode:
		return []Node{x.Left, x.Right}
	case *NotNode:
		return []Node{x.Expr}
	case *InNode:
		return append([]Node{x.Expr}, x.Vals...)
	case *GroupingNode:
		return []Node{x.Expr}
	case *AliasNode:
		return []Node{x.Expr}
	case *OrderingNode:
		return []Node{x.Expr}
	case *InfixNode:
		return []Node{x.Left, x.Right}
	case *UnaryMathNode:
		return []Node{x.Expr}
	case *ConcatNode:
		if x.Joiner != nil {
			return append([]Node{x.Joiner}, x.Parts...)
		}
		return x.Parts
	case *FunctionNode:
		return x.Args
	case *ExtractNode:
		return []Node{x.Expr}
	case *CaseNode:
		var out []Node
		if x.Operand != nil {
			out = append(out, x.Operand)
		}
		for _, w := range x.Whens {
			out = append(out, w.Condition, w.Result)
		}
		if x.ElseVal != nil {
			out = append(out, x.ElseVal)
		}
		return out
	}
	return nil
}

// Equal reports whether two expression trees are structurally identical:
// same node kinds, operators, names and literal values.
func Equal(a, b Node) bool {
	return reflect.DeepEqual(a, b)
}
