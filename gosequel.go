// Package gosequel builds SQL through immutable, chainable datasets.
//
// This package re-exports commonly used types and functions from subpackages
// for convenience. Advanced users can import subpackages directly:
//   - github.com/bawdo/gosequel/dataset (the Dataset builder and terminals)
//   - github.com/bawdo/gosequel/nodes (expression tree)
//   - github.com/bawdo/gosequel/visitors (per-dialect SQL rendering)
//   - github.com/bawdo/gosequel/database (database/sql row source)
//   - github.com/bawdo/gosequel/plugins (dataset transformers)
package gosequel

import (
	"github.com/bawdo/gosequel/dataset"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"
)

// --- Datasets ---

// Dataset is an immutable SELECT description.
type Dataset = dataset.Dataset

// Row is one result row keyed by column name.
type Row = dataset.Row

// Pairs is an ordered list of column = value conditions.
type Pairs = dataset.Pairs

// Pair is one entry of Pairs.
type Pair = dataset.Pair

// From creates a generic-dialect dataset over the given tables or datasets.
func From(sources ...any) *dataset.Dataset {
	return dataset.From(sources...)
}

// FromSQL creates a dataset over a raw SELECT.
//
// SECURITY: sql is used verbatim. Never pass user-controlled input.
func FromSQL(sql string) *dataset.Dataset {
	return dataset.FromSQL(sql)
}

// --- Dialects ---

// Dialect names a SQL dialect.
type Dialect = visitors.Dialect

const (
	Generic  = visitors.Generic
	Postgres = visitors.Postgres
	MySQL    = visitors.MySQL
	SQLite   = visitors.SQLite
)

// ParseDialect resolves a dialect name such as "postgres" or "sqlite3".
func ParseDialect(name string) (Dialect, error) {
	return visitors.ParseDialect(name)
}

// --- Expressions ---

// Node is the interface every expression implements.
type Node = nodes.Node

// Col references a column; "table.column" is qualified.
func Col(name string) *nodes.Attribute {
	return nodes.Col(name)
}

// Lit embeds raw SQL.
//
// SECURITY: raw is used verbatim. Never pass user-controlled input.
func Lit(raw string) *nodes.SqlLiteral {
	return nodes.NewSqlLiteral(raw)
}

// Placeholder embeds SQL with ? or :name placeholders bound to args.
func Placeholder(template string, args ...any) (*nodes.PlaceholderNode, error) {
	return nodes.NewPlaceholder(template, args...)
}

// And joins conditions with AND, skipping nils.
func And(conds ...Node) Node { return nodes.And(conds...) }

// Or joins conditions with OR, skipping nils.
func Or(conds ...Node) Node { return nodes.Or(conds...) }

// Not negates a condition by inverting its operator where it can.
func Not(n Node) Node { return nodes.Negate(n) }

// Function calls a SQL function by name.
func Function(name string, args ...any) *nodes.FunctionNode {
	return nodes.NewFunction(name, args...)
}

// CountAll is COUNT(*).
func CountAll() *nodes.FunctionNode { return nodes.CountAll() }

// Count is COUNT(expr).
func Count(expr Node) *nodes.FunctionNode { return nodes.Count(expr) }

// Sum is SUM(expr).
func Sum(expr Node) *nodes.FunctionNode { return nodes.Sum(expr) }

// Avg is AVG(expr).
func Avg(expr Node) *nodes.FunctionNode { return nodes.Avg(expr) }

// Min is MIN(expr).
func Min(expr Node) *nodes.FunctionNode { return nodes.Min(expr) }

// Max is MAX(expr).
func Max(expr Node) *nodes.FunctionNode { return nodes.Max(expr) }

// Coalesce is COALESCE(args...).
func Coalesce(args ...any) *nodes.FunctionNode { return nodes.Coalesce(args...) }

// --- Errors ---

var (
	ErrInvalidOperation     = sqlerr.ErrInvalidOperation
	ErrNoExistingFilter     = sqlerr.ErrNoExistingFilter
	ErrRequiresGrouping     = sqlerr.ErrRequiresGrouping
	ErrMissingSource        = sqlerr.ErrMissingSource
	ErrUnsupportedOperation = sqlerr.ErrUnsupportedOperation
	ErrNoRows               = sqlerr.ErrNoRows
)
