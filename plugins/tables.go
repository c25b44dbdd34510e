package plugins

import "github.com/bawdo/gosequel/nodes"

// TableRef holds a reference to a table relation and its underlying name.
// Relation is the node used to qualify column references (preserving
// aliases) and Name is the underlying table name, used for matching.
type TableRef struct {
	Relation nodes.Node // *nodes.Table or *nodes.TableAlias
	Name     string
}

// CollectTables returns the tables a SELECT reads directly: every FROM
// source followed by every JOIN target. Subquery sources are reported under
// their alias; raw SQL joins and other expressions are skipped.
func CollectTables(core *nodes.SelectCore) []TableRef {
	var refs []TableRef
	for _, src := range core.Sources {
		if ref, ok := TableRefOf(src); ok {
			refs = append(refs, ref)
		}
	}
	for _, j := range core.Joins {
		if j.Type == nodes.StringJoin {
			continue
		}
		if ref, ok := TableRefOf(j.Right); ok {
			refs = append(refs, ref)
		}
	}
	return refs
}

// TableRefOf describes a single relation node.
func TableRefOf(n nodes.Node) (TableRef, bool) {
	switch r := n.(type) {
	case *nodes.Table:
		return TableRef{Relation: r, Name: r.Name}, true
	case *nodes.TableAlias:
		return TableRef{Relation: r, Name: nodes.TableSourceName(r)}, true
	default:
		return TableRef{}, false
	}
}
