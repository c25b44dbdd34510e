// Package visitors compiles expression trees and datasets into SQL text for
// each supported dialect.
package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

// Operator SQL strings for InfixOp values.
var infixOpSQL = [...]string{
	nodes.OpPlus:       "+",
	nodes.OpMinus:      "-",
	nodes.OpMultiply:   "*",
	nodes.OpDivide:     "/",
	nodes.OpBitwiseAnd: "&",
	nodes.OpBitwiseOr:  "|",
	nodes.OpBitwiseXor: "^",
	nodes.OpShiftLeft:  "<<",
	nodes.OpShiftRight: ">>",
}

// Operator SQL strings for ComparisonOp values. Regular expression
// operators come from the dialect.
var comparisonOpSQL = [...]string{
	nodes.OpEq:       "=",
	nodes.OpNotEq:    "!=",
	nodes.OpGt:       ">",
	nodes.OpGtEq:     ">=",
	nodes.OpLt:       "<",
	nodes.OpLtEq:     "<=",
	nodes.OpLike:     "LIKE",
	nodes.OpNotLike:  "NOT LIKE",
	nodes.OpILike:    "ILIKE",
	nodes.OpNotILike: "NOT ILIKE",
	nodes.OpIs:       "IS",
	nodes.OpIsNot:    "IS NOT",
}

// Extract field SQL names.
var extractFieldSQL = [...]string{
	nodes.ExtractYear:   "YEAR",
	nodes.ExtractMonth:  "MONTH",
	nodes.ExtractDay:    "DAY",
	nodes.ExtractHour:   "HOUR",
	nodes.ExtractMinute: "MINUTE",
	nodes.ExtractSecond: "SECOND",
	nodes.ExtractDow:    "DOW",
	nodes.ExtractDoy:    "DOY",
	nodes.ExtractEpoch:  "EPOCH",
}

// Option configures a visitor at construction time.
type Option func(*baseVisitor)

// WithParams enables parameterized mode: literal values are replaced with
// bind placeholders and collected for retrieval through Params.
func WithParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = true
	}
}

// WithoutParams selects inline mode, where values are encoded into the SQL
// text. This is the default.
func WithoutParams() Option {
	return func(b *baseVisitor) {
		b.parameterize = false
	}
}

// WithQuoteIdentifiers turns identifier quoting on or off, overriding the
// dialect default.
func WithQuoteIdentifiers(on bool) Option {
	return func(b *baseVisitor) {
		b.quoteIdentifiers = on
	}
}

// WithBooleanTokens sets the literal text used for true and false.
func WithBooleanTokens(trueToken, falseToken string) Option {
	return func(b *baseVisitor) {
		b.trueToken = trueToken
		b.falseToken = falseToken
	}
}

// WithTimestampFormat sets the keyword prefix and the time layout of
// timestamp literals. An empty prefix renders a plain quoted string.
func WithTimestampFormat(prefix, layout string) Option {
	return func(b *baseVisitor) {
		b.timestampPrefix = prefix
		b.timestampLayout = layout
	}
}

// WithDateFormat sets the keyword prefix of DATE literals.
func WithDateFormat(prefix string) Option {
	return func(b *baseVisitor) {
		b.datePrefix = prefix
	}
}

// baseVisitor implements the SQL generation shared by all dialects.
// Dialect visitors embed *baseVisitor and set outer to themselves so that
// recursive Accept calls reach their overrides.
type baseVisitor struct {
	outer nodes.Visitor

	// quoteIdentifiers enables quoting through quoteFn.
	quoteIdentifiers bool
	quoteFn          func(string) string

	parameterize bool
	params       []any
	paramIndex   int
	placeholder  func(int) string

	// err is the first error met while rendering. Output produced after it
	// is meaningless and discarded by Compile.
	err error

	trueToken       string
	falseToken      string
	timestampPrefix string
	timestampLayout string
	datePrefix      string
	blob            func([]byte) string
	quoteString     func(string) string

	// regexpOps maps the regular expression operators to SQL. A nil map
	// means the dialect cannot match regular expressions.
	regexpOps map[nodes.ComparisonOp]string
	// ilike is false for dialects without ILIKE, which fall back to LIKE.
	ilike bool
	// statementLimits renders ORDER BY and LIMIT on UPDATE and DELETE.
	statementLimits bool
	// locking renders FOR UPDATE and FOR SHARE.
	locking bool
}

// layout places the breaks between statement clauses and list items.
type layout struct {
	clause string
	item   string
	// and splits a top-level WHERE or HAVING conjunction when non-empty.
	and string
	// self renders compound legs and INSERT sources.
	self nodes.Visitor
}

func (b *baseVisitor) inline() layout {
	return layout{clause: " ", item: ", ", self: b.outer}
}

// core exposes the shared renderer to wrappers such as FormattingVisitor.
func (b *baseVisitor) core() *baseVisitor { return b }

func (b *baseVisitor) applyOptions(opts []Option) {
	for _, o := range opts {
		o(b)
	}
}

// Params returns the bind parameters collected by the last generation.
func (b *baseVisitor) Params() []any {
	return b.params
}

// Reset clears collected parameters and any recorded error.
func (b *baseVisitor) Reset() {
	b.params = nil
	b.paramIndex = 0
	b.err = nil
}

// RecordError keeps the first error reported during generation.
func (b *baseVisitor) RecordError(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first recorded error.
func (b *baseVisitor) Err() error {
	return b.err
}

func (b *baseVisitor) fail(err error) string {
	b.RecordError(err)
	return ""
}

func (b *baseVisitor) quoteIdent(name string) string {
	if b.quoteIdentifiers {
		return b.quoteFn(name)
	}
	return name
}

func (b *baseVisitor) bind(val any) string {
	b.paramIndex++
	b.params = append(b.params, val)
	return b.placeholder(b.paramIndex)
}

func (b *baseVisitor) VisitTable(n *nodes.Table) string {
	return b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitTableAlias(n *nodes.TableAlias) string {
	if tbl, ok := n.Relation.(*nodes.Table); ok {
		return b.quoteIdent(tbl.Name) + " AS " + b.quoteIdent(n.AliasName)
	}
	return "(" + n.Relation.Accept(b.outer) + ") AS " + b.quoteIdent(n.AliasName)
}

func (b *baseVisitor) VisitAttribute(n *nodes.Attribute) string {
	if n.Relation == nil {
		return b.quoteIdent(n.Name)
	}
	return b.quoteIdent(nodes.RelationName(n.Relation)) + "." + b.quoteIdent(n.Name)
}

func (b *baseVisitor) VisitLiteral(n *nodes.LiteralNode) string {
	return b.literalSQL(n.Value)
}

func (b *baseVisitor) VisitStar(n *nodes.StarNode) string {
	if n.Relation != nil {
		return b.quoteIdent(nodes.RelationName(n.Relation)) + ".*"
	}
	return "*"
}

func (b *baseVisitor) VisitSqlLiteral(n *nodes.SqlLiteral) string {
	if b.parameterize && len(n.Binds) > 0 {
		b.params = append(b.params, n.Binds...)
		b.paramIndex += len(n.Binds)
	}
	return n.Raw
}

func (b *baseVisitor) VisitPlaceholder(n *nodes.PlaceholderNode) string {
	var sb strings.Builder
	for _, p := range n.Parts {
		switch {
		case p.Name != "":
			sb.WriteString(b.literalSQL(n.Named[p.Name]))
		case p.Arg >= 0:
			sb.WriteString(b.literalSQL(n.Args[p.Arg]))
		default:
			sb.WriteString(p.Text)
		}
	}
	return sb.String()
}

func (b *baseVisitor) VisitBindParam(n *nodes.BindParamNode) string {
	if b.parameterize {
		return b.bind(n.Value)
	}
	return b.literalSQL(n.Value)
}

func (b *baseVisitor) VisitComparison(n *nodes.ComparisonNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	op, err := b.comparisonOp(n.Op)
	if err != nil {
		return b.fail(err)
	}
	left := n.Left.Accept(b.outer)
	var right string
	if n.Op == nodes.OpIs || n.Op == nodes.OpIsNot {
		right = b.isOperand(n.Right)
	} else {
		right = n.Right.Accept(b.outer)
	}
	return "(" + left + " " + op + " " + right + ")"
}

func (b *baseVisitor) comparisonOp(op nodes.ComparisonOp) (string, error) {
	if op.IsRegexp() {
		sql, ok := b.regexpOps[op]
		if !ok {
			return "", fmt.Errorf("%w: regular expression matching", sqlerr.ErrUnsupportedOperation)
		}
		return sql, nil
	}
	if !b.ilike {
		switch op {
		case nodes.OpILike:
			return "LIKE", nil
		case nodes.OpNotILike:
			return "NOT LIKE", nil
		}
	}
	return comparisonOpSQL[op], nil
}

// isOperand renders the right side of IS / IS NOT. NULL, TRUE and FALSE are
// keywords there and are never bound.
func (b *baseVisitor) isOperand(n nodes.Node) string {
	if lit, ok := n.(*nodes.LiteralNode); ok {
		switch lit.Value {
		case nil:
			return "NULL"
		case true:
			return "TRUE"
		case false:
			return "FALSE"
		}
	}
	return n.Accept(b.outer)
}

func (b *baseVisitor) VisitAnd(n *nodes.AndNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return b.junction(flattenAnd(n, nil), " AND ")
}

func (b *baseVisitor) VisitOr(n *nodes.OrNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return b.junction(flattenOr(n, nil), " OR ")
}

// flattenAnd collects the operands of a left- or right-nested AND chain.
func flattenAnd(n nodes.Node, out []nodes.Node) []nodes.Node {
	if a, ok := n.(*nodes.AndNode); ok {
		out = flattenAnd(a.Left, out)
		return flattenAnd(a.Right, out)
	}
	return append(out, n)
}

func flattenOr(n nodes.Node, out []nodes.Node) []nodes.Node {
	if o, ok := n.(*nodes.OrNode); ok {
		out = flattenOr(o.Left, out)
		return flattenOr(o.Right, out)
	}
	return append(out, n)
}

func (b *baseVisitor) junction(operands []nodes.Node, sep string) string {
	parts := make([]string, len(operands))
	for i, op := range operands {
		parts[i] = b.operand(op)
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// operand renders n as an operand of a boolean operator. Raw fragments may
// hold any SQL and are parenthesized; every compound node parenthesizes
// itself and leaves never need it.
func (b *baseVisitor) operand(n nodes.Node) string {
	switch n.(type) {
	case *nodes.SqlLiteral, *nodes.PlaceholderNode:
		return "(" + n.Accept(b.outer) + ")"
	}
	return n.Accept(b.outer)
}

func (b *baseVisitor) VisitNot(n *nodes.NotNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return "NOT " + b.operand(n.Expr)
}

func (b *baseVisitor) VisitIn(n *nodes.InNode) string {
	keyword := " IN "
	if n.Negate {
		keyword = " NOT IN "
	}
	expr := n.Expr.Accept(b.outer)
	if len(n.Vals) == 1 {
		if sub, ok := n.Vals[0].(*nodes.SubqueryNode); ok {
			return "(" + expr + keyword + sub.Accept(b.outer) + ")"
		}
	}
	if len(n.Vals) == 0 {
		return "(" + expr + keyword + "(NULL))"
	}
	vals := make([]string, len(n.Vals))
	for i, v := range n.Vals {
		vals[i] = v.Accept(b.outer)
	}
	return "(" + expr + keyword + "(" + strings.Join(vals, ", ") + "))"
}

func (b *baseVisitor) VisitGrouping(n *nodes.GroupingNode) string {
	switch n.Expr.(type) {
	case *nodes.ComparisonNode, *nodes.AndNode, *nodes.OrNode, *nodes.InNode, *nodes.GroupingNode:
		return n.Expr.Accept(b.outer)
	}
	return "(" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitSubquery(n *nodes.SubqueryNode) string {
	return "(" + n.Query.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitOrdering(n *nodes.OrderingNode) string {
	expr := n.Expr.Accept(b.outer)
	if n.Direction == nodes.Desc {
		expr += " DESC"
	} else {
		expr += " ASC"
	}
	switch n.Nulls {
	case nodes.NullsFirst:
		expr += " NULLS FIRST"
	case nodes.NullsLast:
		expr += " NULLS LAST"
	}
	return expr
}

func (b *baseVisitor) VisitJoin(n *nodes.JoinNode) string {
	if n.Type == nodes.StringJoin {
		return n.Right.Accept(b.outer)
	}

	rightSQL := n.Right.Accept(b.outer)
	if _, ok := n.Right.(nodes.Query); ok {
		rightSQL = "(" + rightSQL + ")"
	}

	var sb strings.Builder
	sb.WriteString(n.Type.String())
	sb.WriteString(" ")
	sb.WriteString(rightSQL)
	if n.On != nil {
		sb.WriteString(" ON ")
		sb.WriteString(n.On.Accept(b.outer))
	}
	return sb.String()
}

func (b *baseVisitor) VisitInsertStatement(n *nodes.InsertStatement) string {
	return b.insertSQL(n, b.inline())
}

func (b *baseVisitor) insertSQL(n *nodes.InsertStatement, l layout) string {
	var sb strings.Builder

	sb.WriteString("INSERT INTO ")
	sb.WriteString(n.Into.Accept(b.outer))

	if n.Select == nil && len(n.Values) == 0 {
		sb.WriteString(" DEFAULT VALUES")
		return sb.String()
	}

	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		cols := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			cols[i] = b.columnName(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
		sb.WriteString(")")
	}

	if n.Select != nil {
		sb.WriteString(l.clause)
		sb.WriteString(n.Select.Accept(l.self))
		return sb.String()
	}

	sb.WriteString(l.clause + "VALUES ")
	rows := make([]string, len(n.Values))
	for i, row := range n.Values {
		vals := make([]string, len(row))
		for j, v := range row {
			vals[j] = v.Accept(b.outer)
		}
		rows[i] = "(" + strings.Join(vals, ", ") + ")"
	}
	sb.WriteString(strings.Join(rows, ", "))
	return sb.String()
}

// columnName renders an insert or assignment target without its qualifier.
func (b *baseVisitor) columnName(n nodes.Node) string {
	if a, ok := n.(*nodes.Attribute); ok {
		return b.quoteIdent(a.Name)
	}
	return n.Accept(b.outer)
}

func (b *baseVisitor) VisitUpdateStatement(n *nodes.UpdateStatement) string {
	return b.updateSQL(n, b.inline())
}

func (b *baseVisitor) updateSQL(n *nodes.UpdateStatement, l layout) string {
	var sb strings.Builder

	sb.WriteString("UPDATE ")
	sb.WriteString(n.Table.Accept(b.outer))

	sb.WriteString(l.clause + "SET ")
	assigns := make([]string, len(n.Assignments))
	for i, a := range n.Assignments {
		assigns[i] = a.Accept(b.outer)
	}
	sb.WriteString(strings.Join(assigns, l.item))

	b.writeCondition(&sb, l, "WHERE ", n.Where)
	if b.statementLimits {
		b.writeClause(&sb, l.clause+"ORDER BY ", n.Orders, l.item)
		b.writeNodeClause(&sb, l.clause+"LIMIT ", n.Limit)
	}
	return sb.String()
}

func (b *baseVisitor) VisitDeleteStatement(n *nodes.DeleteStatement) string {
	return b.deleteSQL(n, b.inline())
}

func (b *baseVisitor) deleteSQL(n *nodes.DeleteStatement, l layout) string {
	var sb strings.Builder

	sb.WriteString("DELETE FROM ")
	sb.WriteString(n.From.Accept(b.outer))

	b.writeCondition(&sb, l, "WHERE ", n.Where)
	if b.statementLimits {
		b.writeClause(&sb, l.clause+"ORDER BY ", n.Orders, l.item)
		b.writeNodeClause(&sb, l.clause+"LIMIT ", n.Limit)
	}
	return sb.String()
}

func (b *baseVisitor) VisitAssignment(n *nodes.AssignmentNode) string {
	return b.columnName(n.Left) + " = " + n.Right.Accept(b.outer)
}

func (b *baseVisitor) VisitInfix(n *nodes.InfixNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return "(" + n.Left.Accept(b.outer) + " " + infixOpSQL[n.Op] + " " + n.Right.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitUnaryMath(n *nodes.UnaryMathNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return "(~" + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitConcat(n *nodes.ConcatNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return b.fail(err)
	}
	return "(" + strings.Join(b.concatParts(n), " || ") + ")"
}

// concatParts renders the parts with the joiner interleaved.
func (b *baseVisitor) concatParts(n *nodes.ConcatNode) []string {
	var out []string
	for i, p := range n.Parts {
		if i > 0 && n.Joiner != nil {
			out = append(out, n.Joiner.Accept(b.outer))
		}
		out = append(out, p.Accept(b.outer))
	}
	return out
}

func (b *baseVisitor) VisitFunction(n *nodes.FunctionNode) string {
	if err := validateSQLFunctionName(n.Name); err != nil {
		return b.fail(err)
	}
	var sb strings.Builder
	if n.Name == "CAST" && len(n.Args) == 2 {
		typeName := n.Args[1].Accept(b.outer)
		if err := validateSQLTypeName(typeName); err != nil {
			return b.fail(err)
		}
		sb.WriteString("CAST(")
		sb.WriteString(n.Args[0].Accept(b.outer))
		sb.WriteString(" AS ")
		sb.WriteString(typeName)
		sb.WriteString(")")
		return sb.String()
	}
	sb.WriteString(n.Name)
	sb.WriteString("(")
	if n.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.Accept(b.outer))
	}
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitExtract(n *nodes.ExtractNode) string {
	return "EXTRACT(" + extractFieldSQL[n.Field] + " FROM " + n.Expr.Accept(b.outer) + ")"
}

func (b *baseVisitor) VisitCase(n *nodes.CaseNode) string {
	var sb strings.Builder
	sb.WriteString("(CASE")
	if n.Operand != nil {
		sb.WriteString(" ")
		sb.WriteString(n.Operand.Accept(b.outer))
	}
	for _, w := range n.Whens {
		sb.WriteString(" WHEN ")
		sb.WriteString(w.Condition.Accept(b.outer))
		sb.WriteString(" THEN ")
		sb.WriteString(w.Result.Accept(b.outer))
	}
	if n.ElseVal != nil {
		sb.WriteString(" ELSE ")
		sb.WriteString(n.ElseVal.Accept(b.outer))
	}
	sb.WriteString(" END)")
	return sb.String()
}

func (b *baseVisitor) VisitExists(n *nodes.ExistsNode) string {
	var sb strings.Builder
	if n.Negated {
		sb.WriteString("NOT ")
	}
	sb.WriteString("EXISTS (")
	sb.WriteString(n.Subquery.Accept(b.outer))
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitCTE(n *nodes.CTENode) string {
	var sb strings.Builder
	sb.WriteString(b.quoteIdent(n.Name))
	if len(n.Columns) > 0 {
		sb.WriteString(" (")
		quoted := make([]string, len(n.Columns))
		for i, c := range n.Columns {
			quoted[i] = b.quoteIdent(c)
		}
		sb.WriteString(strings.Join(quoted, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(" AS (")
	sb.WriteString(n.Query.Accept(b.outer))
	sb.WriteString(")")
	return sb.String()
}

func (b *baseVisitor) VisitAlias(n *nodes.AliasNode) string {
	return n.Expr.Accept(b.outer) + " AS " + b.quoteIdent(n.Name)
}

// validateSQLTypeName rejects type names containing characters outside
// letters, digits, spaces, parentheses, commas and underscores.
func validateSQLTypeName(name string) error {
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != ' ' && c != '(' &&
			c != ')' && c != ',' && c != '_' {
			return fmt.Errorf("%w: invalid SQL type name character %q in %q",
				sqlerr.ErrInvalidOperation, string(c), name)
		}
	}
	return nil
}

// validateSQLFunctionName rejects function names containing characters
// outside letters, digits, underscores and dots.
func validateSQLFunctionName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty function name", sqlerr.ErrInvalidOperation)
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') &&
			(c < '0' || c > '9') && c != '_' && c != '.' {
			return fmt.Errorf("%w: invalid SQL function name character %q in %q",
				sqlerr.ErrInvalidOperation, string(c), name)
		}
	}
	return nil
}

func (b *baseVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	return b.selectSQL(n, b.inline())
}

func (b *baseVisitor) selectSQL(n *nodes.SelectCore, l layout) string {
	if n.SQL != "" {
		return n.SQL
	}
	if len(n.Sources) == 0 {
		return b.fail(sqlerr.ErrMissingSource)
	}

	var sb strings.Builder

	b.writeCTEs(&sb, n.CTEs, l.clause)
	sb.WriteString("SELECT ")
	b.writeDistinct(&sb, n.Distinct, n.DistinctOn)
	b.writeProjections(&sb, n.Projections, l.item)
	b.writeClause(&sb, l.clause+"FROM ", n.Sources, l.item)
	b.writeJoins(&sb, n.Joins, l.clause)
	b.writeCondition(&sb, l, "WHERE ", n.Where)
	b.writeClause(&sb, l.clause+"GROUP BY ", n.Groups, l.item)
	b.writeCondition(&sb, l, "HAVING ", n.Having)
	b.writeClause(&sb, l.clause+"ORDER BY ", n.Orders, l.item)
	b.writeNodeClause(&sb, l.clause+"LIMIT ", n.Limit)
	b.writeNodeClause(&sb, l.clause+"OFFSET ", n.Offset)
	b.writeCompounds(&sb, n.Compounds, l)
	b.writeLock(&sb, n.Lock, l.clause)

	return sb.String()
}

// writeClause writes "keyword item1 sep item2 sep ..." if items is non-empty.
func (b *baseVisitor) writeClause(sb *strings.Builder, keyword string, items []nodes.Node, sep string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(keyword)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(item.Accept(b.outer))
	}
}

// writeNodeClause writes "keyword node" if node is non-nil.
func (b *baseVisitor) writeNodeClause(sb *strings.Builder, keyword string, n nodes.Node) {
	if n != nil {
		sb.WriteString(keyword)
		sb.WriteString(n.Accept(b.outer))
	}
}

// writeCondition writes a WHERE or HAVING clause, breaking a top-level
// conjunction into one operand per line when the layout asks for it.
func (b *baseVisitor) writeCondition(sb *strings.Builder, l layout, keyword string, n nodes.Node) {
	if n == nil {
		return
	}
	sb.WriteString(l.clause + keyword)
	a, ok := n.(*nodes.AndNode)
	if !ok || l.and == "" {
		sb.WriteString(n.Accept(b.outer))
		return
	}
	if err := nodes.CheckOperands(a); err != nil {
		b.fail(err)
		return
	}
	for i, op := range flattenAnd(a, nil) {
		if i > 0 {
			sb.WriteString(l.and)
		}
		sb.WriteString(b.operand(op))
	}
}

func (b *baseVisitor) writeCTEs(sb *strings.Builder, ctes []*nodes.CTENode, sep string) {
	if len(ctes) == 0 {
		return
	}
	hasRecursive := false
	for _, cte := range ctes {
		if cte.Recursive {
			hasRecursive = true
			break
		}
	}
	if hasRecursive {
		sb.WriteString("WITH RECURSIVE ")
	} else {
		sb.WriteString("WITH ")
	}
	for i, cte := range ctes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(cte.Accept(b.outer))
	}
	sb.WriteString(sep)
}

func (b *baseVisitor) writeDistinct(sb *strings.Builder, distinct bool, distinctOn []nodes.Node) {
	if len(distinctOn) > 0 {
		sb.WriteString("DISTINCT ON (")
		for i, c := range distinctOn {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.Accept(b.outer))
		}
		sb.WriteString(") ")
	} else if distinct {
		sb.WriteString("DISTINCT ")
	}
}

func (b *baseVisitor) writeProjections(sb *strings.Builder, projections []nodes.Node, sep string) {
	if len(projections) == 0 {
		sb.WriteString("*")
		return
	}
	for i, p := range projections {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(p.Accept(b.outer))
	}
}

func (b *baseVisitor) writeJoins(sb *strings.Builder, joins []*nodes.JoinNode, sep string) {
	for _, j := range joins {
		sb.WriteString(sep)
		sb.WriteString(j.Accept(b.outer))
	}
}

func (b *baseVisitor) writeCompounds(sb *strings.Builder, compounds []*nodes.Compound, l layout) {
	for _, c := range compounds {
		sb.WriteString(l.clause)
		sb.WriteString(c.Type.String())
		sb.WriteString(l.clause)
		sb.WriteString(c.Query.Accept(l.self))
	}
}

func (b *baseVisitor) writeLock(sb *strings.Builder, lock nodes.LockMode, sep string) {
	if lock != nodes.NoLock && b.locking {
		sb.WriteString(sep)
		sb.WriteString(lock.String())
	}
}
