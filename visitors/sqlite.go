package visitors

import (
	"github.com/bawdo/gosequel/internal/quoting"
	"github.com/bawdo/gosequel/nodes"
)

// SQLiteVisitor generates SQLite-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column" (ANSI SQL).
type SQLiteVisitor struct {
	*baseVisitor
}

// NewSQLiteVisitor creates a SQLiteVisitor ready for use. SQLite has no
// built-in REGEXP function, no ILIKE and no row locks.
func NewSQLiteVisitor(opts ...Option) *SQLiteVisitor {
	v := &SQLiteVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:            v,
		quoteIdentifiers: true,
		quoteFn:          quoting.DoubleQuote,
		placeholder:      func(_ int) string { return "?" },
		trueToken:        "1",
		falseToken:       "0",
		timestampLayout:  timestampLayout,
		blob:             quoting.HexBlob,
		quoteString:      quoting.QuoteStandardString,
	}
	v.applyOptions(opts)
	return v
}

// VisitExtract renders EXTRACT through strftime, which is all SQLite offers.
func (v *SQLiteVisitor) VisitExtract(n *nodes.ExtractNode) string {
	format, ok := sqliteExtractFormat[n.Field]
	if !ok {
		return v.baseVisitor.VisitExtract(n)
	}
	return "CAST(strftime('" + format + "', " + n.Expr.Accept(v) + ") AS INTEGER)"
}

var sqliteExtractFormat = map[nodes.ExtractField]string{
	nodes.ExtractYear:   "%Y",
	nodes.ExtractMonth:  "%m",
	nodes.ExtractDay:    "%d",
	nodes.ExtractHour:   "%H",
	nodes.ExtractMinute: "%M",
	nodes.ExtractSecond: "%S",
	nodes.ExtractDow:    "%w",
	nodes.ExtractDoy:    "%j",
	nodes.ExtractEpoch:  "%s",
}
