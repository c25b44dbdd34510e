// Package dataset provides an immutable, chainable query builder. Every
// builder method returns a new Dataset and leaves its receiver untouched, so
// datasets can be shared between goroutines and reused as templates.
package dataset

import (
	"fmt"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"
)

// Dataset describes a SELECT statement and, through its table source, the
// INSERT, UPDATE and DELETE statements that target the same rows.
type Dataset struct {
	core         *nodes.SelectCore
	db           RowSource
	dialect      visitors.Dialect
	quote        *bool
	transformers []plugins.Transformer
	aliases      int // auto-generated subquery aliases handed out so far
}

// From creates a dataset selecting from the given sources using the generic
// dialect. Strings name tables; datasets become subqueries.
func From(sources ...any) *Dataset {
	d := &Dataset{core: &nodes.SelectCore{}, dialect: visitors.Generic}
	return d.From(sources...)
}

// FromSQL creates a dataset whose SELECT is the given raw SQL. Adding
// clauses to it selects from the raw query as a subquery.
//
// SECURITY: sql is used verbatim. Never pass user-controlled input.
func FromSQL(sql string) *Dataset {
	return &Dataset{core: &nodes.SelectCore{SQL: sql}, dialect: visitors.Generic}
}

// New creates an empty dataset bound to a row source and dialect. Use From
// to pick the tables.
func New(db RowSource, dialect visitors.Dialect) *Dataset {
	return &Dataset{core: &nodes.SelectCore{}, db: db, dialect: dialect}
}

// clone returns a copy of d whose core can be modified freely.
func (d *Dataset) clone() *Dataset {
	c := *d
	c.core = d.core.Clone()
	return &c
}

// Dialect returns the dataset's SQL dialect.
func (d *Dataset) Dialect() visitors.Dialect { return d.dialect }

// RowSource returns the row source the dataset executes against, or nil.
func (d *Dataset) RowSource() RowSource { return d.db }

// Core returns a copy of the dataset's clause set.
func (d *Dataset) Core() *nodes.SelectCore { return d.core.Clone() }

// From replaces the FROM sources.
func (d *Dataset) From(sources ...any) *Dataset {
	c := d.clone()
	c.core.SQL = ""
	c.core.Sources = nil
	for _, s := range sources {
		c.core.Sources = append(c.core.Sources, c.source(s))
	}
	return c
}

// WithSQL replaces the whole dataset with a raw SELECT, keeping the row
// source, dialect and transformers.
func (d *Dataset) WithSQL(sql string) *Dataset {
	c := d.clone()
	c.core = &nodes.SelectCore{SQL: sql}
	return c
}

// WithDialect returns a copy that renders in the given dialect.
func (d *Dataset) WithDialect(dialect visitors.Dialect) *Dataset {
	c := d.clone()
	c.dialect = dialect
	return c
}

// WithRowSource returns a copy bound to db.
func (d *Dataset) WithRowSource(db RowSource) *Dataset {
	c := d.clone()
	c.db = db
	return c
}

// QuoteIdentifiers overrides the dialect's identifier quoting default.
func (d *Dataset) QuoteIdentifiers(on bool) *Dataset {
	c := d.clone()
	c.quote = &on
	return c
}

// Use registers transformer plugins applied to every statement the dataset
// renders.
func (d *Dataset) Use(ts ...plugins.Transformer) *Dataset {
	c := d.clone()
	c.transformers = append(append([]plugins.Transformer(nil), d.transformers...), ts...)
	return c
}

// Transformers returns the registered transformer pipeline.
func (d *Dataset) Transformers() []plugins.Transformer {
	return d.transformers
}

// nextAlias hands out t1, t2, ... for subqueries used as sources.
func (d *Dataset) nextAlias() string {
	d.aliases++
	return fmt.Sprintf("t%d", d.aliases)
}

// source resolves a FROM or JOIN argument. A dataset that only names a
// table collapses to that table; any other dataset becomes an aliased
// subquery.
func (d *Dataset) source(s any) nodes.Node {
	switch v := s.(type) {
	case string:
		return nodes.NewTable(v)
	case *Dataset:
		if t, ok := v.bareTable(); ok {
			return t
		}
		return &nodes.TableAlias{Relation: v, AliasName: d.nextAlias()}
	case nodes.Node:
		return v
	}
	return nodes.Literal(s)
}

// bareTable reports the single table of a dataset with no other clauses.
func (d *Dataset) bareTable() (*nodes.Table, bool) {
	if len(d.core.Sources) != 1 || len(d.transformers) > 0 || hasClauses(d.core) {
		return nil, false
	}
	t, ok := d.core.Sources[0].(*nodes.Table)
	return t, ok
}

// hasClauses reports whether c carries anything beyond its sources.
func hasClauses(c *nodes.SelectCore) bool {
	return len(c.CTEs) > 0 || c.Distinct || len(c.DistinctOn) > 0 ||
		len(c.Projections) > 0 || len(c.Joins) > 0 || c.Where != nil ||
		len(c.Groups) > 0 || c.Having != nil || len(c.Orders) > 0 ||
		c.Limit != nil || c.Offset != nil || len(c.Compounds) > 0 ||
		c.Lock != nodes.NoLock
}

// build returns the clause set to render: raw SQL with added clauses is
// wrapped as a subquery and the transformer pipeline is applied to a copy.
func (d *Dataset) build() (*nodes.SelectCore, error) {
	core := d.core.Clone()
	if core.SQL != "" && hasClauses(core) {
		raw := &nodes.SelectCore{SQL: core.SQL}
		core.SQL = ""
		core.Sources = []nodes.Node{&nodes.TableAlias{Relation: raw, AliasName: fmt.Sprintf("t%d", d.aliases+1)}}
	}
	if core.SQL == "" && len(core.Sources) == 0 {
		return nil, sqlerr.ErrMissingSource
	}
	return plugins.ApplySelect(d.transformers, core)
}

// Accept renders the dataset as a SELECT with v, so a dataset can be used
// anywhere a query node is accepted.
func (d *Dataset) Accept(v nodes.Visitor) string {
	core, err := d.build()
	if err != nil {
		nodes.ReportError(v, err)
		return ""
	}
	return v.VisitSelectCore(core)
}

// QueryNode marks Dataset as a nestable query.
func (d *Dataset) QueryNode() {}

// As wraps the dataset in a named subquery for use as a source.
func (d *Dataset) As(alias string) *nodes.TableAlias {
	return &nodes.TableAlias{Relation: d, AliasName: alias}
}

// firstRelation is the relation unqualified join values refer to before any
// join has been added.
func (d *Dataset) firstRelation() nodes.Node {
	if len(d.core.Sources) == 0 {
		return nil
	}
	switch s := d.core.Sources[0].(type) {
	case *nodes.Table, *nodes.TableAlias:
		return s
	}
	return nil
}

// singleTable returns the only source when it is a plain table, as required
// by INSERT, UPDATE and DELETE.
func (d *Dataset) singleTable() (*nodes.Table, error) {
	if d.core.SQL != "" {
		return nil, fmt.Errorf("%w: cannot modify a dataset built from raw SQL", sqlerr.ErrInvalidOperation)
	}
	if len(d.core.Sources) != 1 {
		return nil, fmt.Errorf("%w: statement needs exactly one table, dataset has %d sources",
			sqlerr.ErrInvalidOperation, len(d.core.Sources))
	}
	t, ok := d.core.Sources[0].(*nodes.Table)
	if !ok {
		return nil, fmt.Errorf("%w: statement target must be a table", sqlerr.ErrInvalidOperation)
	}
	return t, nil
}
