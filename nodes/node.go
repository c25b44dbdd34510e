// Package nodes defines the expression tree used to describe SQL statements.
//
// Trees are immutable: every combinator allocates new nodes and never
// modifies its receiver, so a built expression can be shared freely.
package nodes

// Node is the interface that all AST nodes implement.
type Node interface {
	Accept(visitor Visitor) string
}

// Visitor defines the interface for walking the AST and producing output.
// Concrete visitors (one per SQL dialect) implement this interface.
type Visitor interface {
	VisitTable(node *Table) string
	VisitTableAlias(node *TableAlias) string
	VisitAttribute(node *Attribute) string
	VisitLiteral(node *LiteralNode) string
	VisitStar(node *StarNode) string
	VisitSqlLiteral(node *SqlLiteral) string
	VisitPlaceholder(node *PlaceholderNode) string
	VisitBindParam(node *BindParamNode) string
	VisitComparison(node *ComparisonNode) string
	VisitAnd(node *AndNode) string
	VisitOr(node *OrNode) string
	VisitNot(node *NotNode) string
	VisitIn(node *InNode) string
	VisitGrouping(node *GroupingNode) string
	VisitSubquery(node *SubqueryNode) string
	VisitJoin(node *JoinNode) string
	VisitOrdering(node *OrderingNode) string
	VisitSelectCore(node *SelectCore) string
	VisitInsertStatement(node *InsertStatement) string
	VisitUpdateStatement(node *UpdateStatement) string
	VisitDeleteStatement(node *DeleteStatement) string
	VisitAssignment(node *AssignmentNode) string
	VisitInfix(node *InfixNode) string
	VisitUnaryMath(node *UnaryMathNode) string
	VisitConcat(node *ConcatNode) string
	VisitFunction(node *FunctionNode) string
	VisitExtract(node *ExtractNode) string
	VisitCase(node *CaseNode) string
	VisitExists(node *ExistsNode) string
	VisitCTE(node *CTENode) string
	VisitAlias(node *AliasNode) string
}

// Parameterizer is implemented by visitors that support parameterized queries.
// Callers use type assertion to extract collected parameters after SQL generation.
type Parameterizer interface {
	Params() []any
	Reset()
}

// ErrorRecorder is implemented by visitors that collect rendering errors.
// Only the first recorded error is kept; output produced after it is discarded
// by the caller.
type ErrorRecorder interface {
	RecordError(err error)
	Err() error
}

// ReportError records err on v if v is an ErrorRecorder.
func ReportError(v Visitor, err error) {
	if r, ok := v.(ErrorRecorder); ok && err != nil {
		r.RecordError(err)
	}
}

// Query is implemented by nodes that render a complete SELECT statement and
// can therefore be nested as a subquery.
type Query interface {
	Node
	QueryNode()
}

// Condition is a boolean-valued expression that can be combined further.
type Condition interface {
	Node
	And(other Node) *AndNode
	Or(other Node) *OrNode
	Not() Condition
}

// Literal wraps a Go value as a node. Nodes are returned as-is, queries are
// wrapped as parenthesized subqueries and every other value is boxed in a
// LiteralNode for the visitor to encode.
func Literal(val any) Node {
	if q, ok := val.(Query); ok {
		return NewSubquery(q)
	}
	if n, ok := val.(Node); ok {
		return n
	}
	lit := &LiteralNode{Value: val}
	lit.Predications.self = lit
	lit.Arithmetics.self = lit
	lit.Combinable.self = lit
	return lit
}
