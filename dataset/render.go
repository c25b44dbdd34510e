package dataset

import (
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/visitors"
)

// compiler returns a fresh visitor for the dataset's dialect. Visitors carry
// per-render state, so one is created for every statement.
func (d *Dataset) compiler(opts ...visitors.Option) visitors.Compiler {
	if d.quote != nil {
		opts = append([]visitors.Option{visitors.WithQuoteIdentifiers(*d.quote)}, opts...)
	}
	return d.dialect.NewVisitor(opts...)
}

// SelectSQL renders the dataset as a SELECT with inline literals.
func (d *Dataset) SelectSQL() (string, error) {
	sql, _, err := visitors.Compile(d.compiler(visitors.WithoutParams()), d)
	return sql, err
}

// FormattedSQL renders the SELECT like SelectSQL with each clause on its
// own line.
func (d *Dataset) FormattedSQL() (string, error) {
	f := visitors.NewFormattingVisitor(d.compiler(visitors.WithoutParams()))
	sql, _, err := visitors.Compile(f, d)
	return sql, err
}

// FormattedToSQL is the multi-line form of ToSQL.
func (d *Dataset) FormattedToSQL() (string, []any, error) {
	return visitors.Compile(visitors.NewFormattingVisitor(d.compiler(visitors.WithParams())), d)
}

// SQL is an alias for SelectSQL.
func (d *Dataset) SQL() (string, error) {
	return d.SelectSQL()
}

// String renders the SELECT, or the error text when rendering fails.
func (d *Dataset) String() string {
	sql, err := d.SelectSQL()
	if err != nil {
		return err.Error()
	}
	return sql
}

// ToSQL renders the SELECT in parameterized mode and returns the bind
// values in placeholder order.
func (d *Dataset) ToSQL() (string, []any, error) {
	return visitors.Compile(d.compiler(visitors.WithParams()), d)
}

// Literal renders a single value as an SQL literal in the dataset's dialect.
func (d *Dataset) Literal(v any) (string, error) {
	sql, _, err := visitors.Compile(d.compiler(visitors.WithoutParams()), nodes.Literal(v))
	return sql, err
}

// render compiles a statement node with inline literals.
func (d *Dataset) render(n nodes.Node) (string, error) {
	sql, _, err := visitors.Compile(d.compiler(visitors.WithoutParams()), n)
	return sql, err
}
