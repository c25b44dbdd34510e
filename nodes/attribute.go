package nodes

import "strings"

// Attribute represents a column reference, optionally qualified by a table
// or table alias.
type Attribute struct {
	Predications
	Arithmetics
	Combinable
	Name     string
	Relation Node // nil, *Table or *TableAlias
}

// NewAttribute creates an Attribute with its mixins bound to the new node.
func NewAttribute(relation Node, name string) *Attribute {
	a := &Attribute{Name: name, Relation: relation}
	a.Predications.self = a
	a.Arithmetics.self = a
	a.Combinable.self = a
	return a
}

// Col creates a column reference from a name. "table.column" produces a
// qualified column; a bare name stays unqualified.
func Col(name string) *Attribute {
	if i := strings.LastIndexByte(name, '.'); i > 0 && i < len(name)-1 {
		return NewAttribute(NewTable(name[:i]), name[i+1:])
	}
	return NewAttribute(nil, name)
}

func (a *Attribute) Accept(v Visitor) string { return v.VisitAttribute(a) }

// Qualify returns a copy of the column qualified by relation.
func (a *Attribute) Qualify(relation Node) *Attribute {
	return NewAttribute(relation, a.Name)
}

// Qualified reports whether the column carries a table qualifier.
func (a *Attribute) Qualified() bool {
	return a.Relation != nil
}
