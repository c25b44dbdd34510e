package dataset

import (
	"fmt"
	"slices"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins"
	"github.com/bawdo/gosequel/sqlerr"
)

// InsertSQL renders an INSERT into the dataset's table. values may be empty
// (DEFAULT VALUES), a single map[string]any or Pairs naming the columns, a
// single dataset (INSERT ... SELECT), or positional values for every column.
// Filters, order and limit are ignored.
func (d *Dataset) InsertSQL(values ...any) (string, error) {
	stmt, err := d.insertStatement(values)
	if err != nil {
		return "", err
	}
	return d.render(stmt)
}

// MultiInsertSQL renders one INSERT with a VALUES row per entry of rows.
func (d *Dataset) MultiInsertSQL(cols []string, rows [][]any) (string, error) {
	stmt, err := d.multiInsertStatement(cols, rows)
	if err != nil {
		return "", err
	}
	return d.render(stmt)
}

// UpdateSQL renders an UPDATE of the dataset's table. values is a
// map[string]any or Pairs of column assignments; node values such as
// nodes.Col("n").Plus(1) are used as expressions.
func (d *Dataset) UpdateSQL(values any) (string, error) {
	stmt, err := d.updateStatement(values)
	if err != nil {
		return "", err
	}
	return d.render(stmt)
}

// DeleteSQL renders a DELETE of the rows the dataset selects.
func (d *Dataset) DeleteSQL() (string, error) {
	stmt, err := d.deleteStatement()
	if err != nil {
		return "", err
	}
	return d.render(stmt)
}

func (d *Dataset) insertStatement(values []any) (*nodes.InsertStatement, error) {
	table, err := d.singleTable()
	if err != nil {
		return nil, err
	}
	stmt := &nodes.InsertStatement{Into: table}
	if len(values) == 1 {
		switch v := values[0].(type) {
		case map[string]any:
			pairs := sortedPairs(v)
			if len(pairs) > 0 {
				stmt.Columns, stmt.Values = pairColumns(pairs)
			}
			return plugins.ApplyInsert(d.transformers, stmt)
		case Pairs:
			if len(v) > 0 {
				stmt.Columns, stmt.Values = pairColumns(v)
			}
			return plugins.ApplyInsert(d.transformers, stmt)
		case *Dataset:
			stmt.Select = v
			return plugins.ApplyInsert(d.transformers, stmt)
		}
	}
	if len(values) > 0 {
		stmt.Values = [][]nodes.Node{literals(values)}
	}
	return plugins.ApplyInsert(d.transformers, stmt)
}

func (d *Dataset) multiInsertStatement(cols []string, rows [][]any) (*nodes.InsertStatement, error) {
	table, err := d.singleTable()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows to insert", sqlerr.ErrInvalidOperation)
	}
	stmt := &nodes.InsertStatement{Into: table}
	for _, c := range cols {
		stmt.Columns = append(stmt.Columns, nodes.Col(c))
	}
	for i, row := range rows {
		if len(cols) > 0 && len(row) != len(cols) {
			return nil, fmt.Errorf("%w: row %d has %d values for %d columns",
				sqlerr.ErrInvalidOperation, i, len(row), len(cols))
		}
		stmt.Values = append(stmt.Values, literals(row))
	}
	return plugins.ApplyInsert(d.transformers, stmt)
}

func (d *Dataset) updateStatement(values any) (*nodes.UpdateStatement, error) {
	table, err := d.modifiable("update")
	if err != nil {
		return nil, err
	}
	var pairs Pairs
	switch v := values.(type) {
	case map[string]any:
		pairs = sortedPairs(v)
	case Pairs:
		pairs = v
	default:
		return nil, fmt.Errorf("%w: unsupported update values %T", sqlerr.ErrInvalidOperation, values)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no columns to update", sqlerr.ErrInvalidOperation)
	}
	stmt := &nodes.UpdateStatement{
		Table:  table,
		Where:  d.core.Where,
		Orders: slices.Clone(d.core.Orders),
		Limit:  d.core.Limit,
	}
	for _, p := range pairs {
		stmt.Assignments = append(stmt.Assignments, &nodes.AssignmentNode{
			Left:  column(p.Column),
			Right: nodes.Literal(p.Value),
		})
	}
	return plugins.ApplyUpdate(d.transformers, stmt)
}

func (d *Dataset) deleteStatement() (*nodes.DeleteStatement, error) {
	table, err := d.modifiable("delete")
	if err != nil {
		return nil, err
	}
	stmt := &nodes.DeleteStatement{
		From:   table,
		Where:  d.core.Where,
		Orders: slices.Clone(d.core.Orders),
		Limit:  d.core.Limit,
	}
	return plugins.ApplyDelete(d.transformers, stmt)
}

// modifiable checks the dataset can be the target of an UPDATE or DELETE.
func (d *Dataset) modifiable(verb string) (*nodes.Table, error) {
	table, err := d.singleTable()
	if err != nil {
		return nil, err
	}
	switch {
	case len(d.core.Groups) > 0 || d.core.Having != nil:
		return nil, fmt.Errorf("%w: cannot %s a grouped dataset", sqlerr.ErrInvalidOperation, verb)
	case len(d.core.Joins) > 0:
		return nil, fmt.Errorf("%w: cannot %s a joined dataset", sqlerr.ErrInvalidOperation, verb)
	case d.core.Distinct || len(d.core.DistinctOn) > 0:
		return nil, fmt.Errorf("%w: cannot %s a distinct dataset", sqlerr.ErrInvalidOperation, verb)
	case len(d.core.Compounds) > 0:
		return nil, fmt.Errorf("%w: cannot %s a compound dataset", sqlerr.ErrInvalidOperation, verb)
	}
	return table, nil
}

func sortedPairs(m map[string]any) Pairs {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	pairs := make(Pairs, len(keys))
	for i, k := range keys {
		pairs[i] = Pair{Column: k, Value: m[k]}
	}
	return pairs
}

func pairColumns(pairs Pairs) ([]nodes.Node, [][]nodes.Node) {
	cols := make([]nodes.Node, len(pairs))
	row := make([]nodes.Node, len(pairs))
	for i, p := range pairs {
		cols[i] = column(p.Column)
		row[i] = nodes.Literal(p.Value)
	}
	return cols, [][]nodes.Node{row}
}

func literals(vals []any) []nodes.Node {
	out := make([]nodes.Node, len(vals))
	for i, v := range vals {
		out[i] = nodes.Literal(v)
	}
	return out
}
