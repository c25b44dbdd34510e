package nodes

import (
	"fmt"
	"time"
)

// LiteralNode wraps a Go value (string, number, bool, time, slice...) that the
// visitor encodes as an SQL literal.
type LiteralNode struct {
	Predications
	Arithmetics
	Combinable
	Value any
}

func (n *LiteralNode) Accept(v Visitor) string { return v.VisitLiteral(n) }

// StarNode represents a SQL star (*) or qualified star (table.*).
type StarNode struct {
	Relation Node // nil for unqualified *
}

func (n *StarNode) Accept(v Visitor) string { return v.VisitStar(n) }

// Star returns an unqualified StarNode representing SQL *.
func Star() *StarNode {
	return &StarNode{}
}

// SqlLiteral represents a raw SQL fragment injected verbatim into the query.
//
// SECURITY: Raw is rendered without escaping or parameterization. Never pass
// user-controlled input as raw SQL; use PlaceholderNode or BindParamNode for
// values.
type SqlLiteral struct {
	Predications
	Arithmetics
	Combinable
	Raw   string
	Binds []any // optional bind parameters for parameterized mode
}

func NewSqlLiteral(raw string) *SqlLiteral {
	n := &SqlLiteral{Raw: raw}
	n.Predications.self = n
	n.Arithmetics.self = n
	n.Combinable.self = n
	return n
}

func (n *SqlLiteral) Accept(v Visitor) string { return v.VisitSqlLiteral(n) }

// NewBoundSqlLiteral creates a SqlLiteral with bind parameters.
// In parameterized mode, the binds are added to the parameter list.
func NewBoundSqlLiteral(raw string, binds ...any) *SqlLiteral {
	n := NewSqlLiteral(raw)
	n.Binds = binds
	return n
}

// Date is a calendar date without a time of day. It encodes as a DATE literal.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}
