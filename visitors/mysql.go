package visitors

import (
	"strings"

	"github.com/bawdo/gosequel/internal/quoting"
	"github.com/bawdo/gosequel/nodes"
)

// MySQLVisitor generates MySQL-dialect SQL.
// Identifiers are quoted with backticks: `table`.`column`.
type MySQLVisitor struct {
	*baseVisitor
}

// NewMySQLVisitor creates a MySQLVisitor ready for use.
func NewMySQLVisitor(opts ...Option) *MySQLVisitor {
	v := &MySQLVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:            v,
		quoteIdentifiers: true,
		quoteFn:          quoting.Backtick,
		placeholder:      func(_ int) string { return "?" },
		trueToken:        "1",
		falseToken:       "0",
		timestampLayout:  timestampLayout,
		blob:             quoting.HexBlob,
		quoteString:      quoting.QuoteString,
		// MySQL has no case-sensitive REGEXP operator; the collation decides.
		regexpOps: map[nodes.ComparisonOp]string{
			nodes.OpRegexp:     "REGEXP",
			nodes.OpIRegexp:    "REGEXP",
			nodes.OpNotRegexp:  "NOT REGEXP",
			nodes.OpNotIRegexp: "NOT REGEXP",
		},
		statementLimits: true,
		locking:         true,
	}
	v.applyOptions(opts)
	return v
}

// VisitConcat renders CONCAT(a, b, ...) since || is logical OR in MySQL.
func (v *MySQLVisitor) VisitConcat(n *nodes.ConcatNode) string {
	if err := nodes.CheckOperands(n); err != nil {
		return v.fail(err)
	}
	return "CONCAT(" + strings.Join(v.concatParts(n), ", ") + ")"
}
