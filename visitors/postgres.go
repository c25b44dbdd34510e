package visitors

import (
	"fmt"

	"github.com/bawdo/gosequel/internal/quoting"
	"github.com/bawdo/gosequel/nodes"
)

// PostgresVisitor generates PostgreSQL-dialect SQL.
// Identifiers are quoted with double quotes: "table"."column".
type PostgresVisitor struct {
	*baseVisitor
}

// NewPostgresVisitor creates a PostgresVisitor ready for use.
// Pass WithParams() to emit $1, $2 placeholders instead of inline values.
func NewPostgresVisitor(opts ...Option) *PostgresVisitor {
	v := &PostgresVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:            v,
		quoteIdentifiers: true,
		quoteFn:          quoting.DoubleQuote,
		placeholder:      func(i int) string { return fmt.Sprintf("$%d", i) },
		trueToken:        "true",
		falseToken:       "false",
		timestampPrefix:  "TIMESTAMP ",
		timestampLayout:  timestampLayout,
		datePrefix:       "DATE ",
		blob:             quoting.ByteaBlob,
		quoteString:      quoting.QuoteStandardString,
		regexpOps: map[nodes.ComparisonOp]string{
			nodes.OpRegexp:     "~",
			nodes.OpIRegexp:    "~*",
			nodes.OpNotRegexp:  "!~",
			nodes.OpNotIRegexp: "!~*",
		},
		ilike:   true,
		locking: true,
	}
	v.applyOptions(opts)
	return v
}
