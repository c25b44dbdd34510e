// Package softdelete provides a Transformer that hides soft-deleted rows by
// ANDing "column IS NULL" into the WHERE clause of every statement that reads
// or modifies them.
//
// By default the condition is added for every table referenced in the FROM
// and JOIN clauses of a SELECT, and for the target table of an UPDATE or
// DELETE. Both the column name and the set of tables can be customised.
//
// # Basic usage
//
//	ds := dataset.From("users").Use(softdelete.New())
//	// SELECT * FROM users WHERE (users.deleted_at IS NULL)
//
// # Custom column
//
//	softdelete.New(softdelete.WithColumn("removed_at"))
//	// ... WHERE (users.removed_at IS NULL)
//
// # Restrict to specific tables
//
//	softdelete.New(softdelete.WithTables("users"))
//	// Only users gets the IS NULL condition; other joined tables are unchanged.
//
// # Per-table columns
//
//	softdelete.New(
//	    softdelete.WithTableColumn("users", "deleted_at"),
//	    softdelete.WithTableColumn("posts", "removed_at"),
//	)
//
// # REPL usage
//
//	gosequel> softdelete
//	gosequel> softdelete removed_at
//	gosequel> softdelete removed_at on users posts
//	gosequel> softdelete off
package softdelete

import (
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins"
)

// DefaultColumn is the soft-delete column used when none is configured.
const DefaultColumn = "deleted_at"

// SoftDelete is a Transformer that appends IS NULL conditions for a
// soft-delete column on every referenced table (or a configured subset).
type SoftDelete struct {
	plugins.BaseTransformer
	Column  string
	Columns map[string]string // per-table column overrides (table name → column name)
	tables  map[string]bool   // nil means apply to all tables
}

// Option configures a SoftDelete transformer.
type Option func(*SoftDelete)

// WithColumn sets the soft-delete column name. Default is "deleted_at".
func WithColumn(name string) Option {
	return func(sd *SoftDelete) { sd.Column = name }
}

// WithTables restricts the plugin to only the named tables.
func WithTables(names ...string) Option {
	return func(sd *SoftDelete) {
		sd.tables = make(map[string]bool, len(names))
		for _, n := range names {
			sd.tables[n] = true
		}
	}
}

// WithTableColumn sets a per-table column override. The table is
// added to the whitelist, restricting the plugin's scope.
func WithTableColumn(table, column string) Option {
	return func(sd *SoftDelete) {
		if sd.Columns == nil {
			sd.Columns = make(map[string]string)
		}
		sd.Columns[table] = column
		if sd.tables == nil {
			sd.tables = make(map[string]bool)
		}
		sd.tables[table] = true
	}
}

// New creates a SoftDelete transformer with the given options.
func New(opts ...Option) *SoftDelete {
	sd := &SoftDelete{Column: DefaultColumn}
	for _, o := range opts {
		o(sd)
	}
	return sd
}

// TransformSelect ANDs "column IS NULL" into the WHERE clause for each
// matching table referenced in the query (FROM and JOINs).
func (sd *SoftDelete) TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error) {
	if core.SQL != "" {
		return core, nil
	}
	for _, ref := range plugins.CollectTables(core) {
		core.Where = nodes.And(core.Where, sd.condition(ref))
	}
	return core, nil
}

// TransformUpdate keeps UPDATE away from soft-deleted rows.
func (sd *SoftDelete) TransformUpdate(stmt *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	if ref, ok := plugins.TableRefOf(stmt.Table); ok {
		stmt.Where = nodes.And(stmt.Where, sd.condition(ref))
	}
	return stmt, nil
}

// TransformDelete keeps DELETE away from rows that are already soft-deleted.
func (sd *SoftDelete) TransformDelete(stmt *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	if ref, ok := plugins.TableRefOf(stmt.From); ok {
		stmt.Where = nodes.And(stmt.Where, sd.condition(ref))
	}
	return stmt, nil
}

// condition returns the IS NULL check for ref, or nil when the table is out
// of scope. nodes.And skips nil operands.
func (sd *SoftDelete) condition(ref plugins.TableRef) nodes.Node {
	if !sd.appliesTo(ref.Name) {
		return nil
	}
	return nodes.NewAttribute(ref.Relation, sd.columnFor(ref.Name)).IsNull()
}

func (sd *SoftDelete) appliesTo(tableName string) bool {
	if sd.tables == nil {
		return true
	}
	return sd.tables[tableName]
}

// columnFor returns the column name to use for the given table.
func (sd *SoftDelete) columnFor(tableName string) string {
	if col, ok := sd.Columns[tableName]; ok {
		return col
	}
	return sd.Column
}
