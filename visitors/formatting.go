package visitors

import (
	"github.com/bawdo/gosequel/nodes"
)

// FormattingVisitor wraps a dialect compiler and renders statements as
// human-readable multi-line SQL. Each major clause starts a new line, list
// items use leading-comma continuation and a top-level AND in WHERE or
// HAVING puts one operand per line. Expressions, subqueries included, are
// rendered by the wrapped compiler on a single line.
type FormattingVisitor struct {
	Compiler
	base *baseVisitor
}

var _ Compiler = (*FormattingVisitor)(nil)

// NewFormattingVisitor wraps inner, which must be one of this package's
// dialect compilers.
func NewFormattingVisitor(inner Compiler) *FormattingVisitor {
	c, ok := inner.(interface{ core() *baseVisitor })
	if !ok {
		panic("gosequel: FormattingVisitor requires a dialect compiler")
	}
	return &FormattingVisitor{Compiler: inner, base: c.core()}
}

func (f *FormattingVisitor) pretty() layout {
	return layout{clause: "\n", item: "\n\t,", and: "\n\tAND ", self: f}
}

func (f *FormattingVisitor) VisitSelectCore(n *nodes.SelectCore) string {
	return f.base.selectSQL(n, f.pretty())
}

func (f *FormattingVisitor) VisitInsertStatement(n *nodes.InsertStatement) string {
	return f.base.insertSQL(n, f.pretty())
}

func (f *FormattingVisitor) VisitUpdateStatement(n *nodes.UpdateStatement) string {
	return f.base.updateSQL(n, f.pretty())
}

func (f *FormattingVisitor) VisitDeleteStatement(n *nodes.DeleteStatement) string {
	return f.base.deleteSQL(n, f.pretty())
}
