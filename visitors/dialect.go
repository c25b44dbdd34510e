package visitors

import (
	"fmt"
	"strings"

	"github.com/bawdo/gosequel/internal/quoting"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

// Dialect names an SQL flavour.
type Dialect string

const (
	Generic  Dialect = "generic"
	Postgres Dialect = "postgres"
	MySQL    Dialect = "mysql"
	SQLite   Dialect = "sqlite"
)

// Dialects lists every supported dialect.
var Dialects = []Dialect{Generic, Postgres, MySQL, SQLite}

// ParseDialect resolves a dialect name. Common aliases such as "pg" and
// "postgresql" are accepted; the empty string means Generic.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "generic", "default":
		return Generic, nil
	case "postgres", "postgresql", "pg", "pgx":
		return Postgres, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("%w: unknown dialect %q", sqlerr.ErrUnsupportedOperation, name)
}

func (d Dialect) String() string { return string(d) }

// Compiler is a dialect visitor that also exposes bind parameters and the
// first rendering error.
type Compiler interface {
	nodes.Visitor
	nodes.Parameterizer
	nodes.ErrorRecorder
}

// NewVisitor returns a fresh compiler for the dialect. Unknown dialects
// fall back to Generic.
func (d Dialect) NewVisitor(opts ...Option) Compiler {
	switch d {
	case Postgres:
		return NewPostgresVisitor(opts...)
	case MySQL:
		return NewMySQLVisitor(opts...)
	case SQLite:
		return NewSQLiteVisitor(opts...)
	default:
		return NewGenericVisitor(opts...)
	}
}

// Compile renders n with c and returns the SQL and its bind parameters.
// Any error recorded during rendering is returned instead of the SQL.
func Compile(c Compiler, n nodes.Node) (string, []any, error) {
	c.Reset()
	sql := n.Accept(c)
	if err := c.Err(); err != nil {
		return "", nil, err
	}
	return sql, c.Params(), nil
}

// GenericVisitor renders ANSI-flavoured SQL with no identifier quoting.
// It is the default dialect for datasets without a database.
type GenericVisitor struct {
	*baseVisitor
}

// NewGenericVisitor creates a GenericVisitor.
func NewGenericVisitor(opts ...Option) *GenericVisitor {
	v := &GenericVisitor{}
	v.baseVisitor = &baseVisitor{
		outer:           v,
		quoteFn:         quoting.DoubleQuote,
		placeholder:     func(_ int) string { return "?" },
		trueToken:       "'t'",
		falseToken:      "'f'",
		timestampPrefix: "TIMESTAMP ",
		timestampLayout: timestampLayout,
		datePrefix:      "DATE ",
		blob:            quoting.HexBlob,
		quoteString:     quoting.QuoteString,
		ilike:           true,
		locking:         true,
	}
	v.applyOptions(opts)
	return v
}

// timestampLayout keeps up to microsecond precision and drops trailing zeros.
const timestampLayout = "2006-01-02 15:04:05.999999"
