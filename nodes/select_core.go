package nodes

import "slices"

// LockMode represents row-level locking for SELECT queries.
type LockMode int

const (
	NoLock    LockMode = iota
	ForUpdate          // FOR UPDATE
	ForShare           // FOR SHARE
)

// String returns the SQL keyword for this lock mode.
func (m LockMode) String() string {
	switch m {
	case ForUpdate:
		return "FOR UPDATE"
	case ForShare:
		return "FOR SHARE"
	default:
		return ""
	}
}

// SelectCore holds every clause of a SELECT statement. The dataset package
// treats it as an immutable options map: it is cloned before each change.
type SelectCore struct {
	CTEs        []*CTENode
	Distinct    bool
	DistinctOn  []Node // DISTINCT ON expressions; implies Distinct
	Projections []Node // empty means *
	Sources     []Node
	Joins       []*JoinNode
	Where       Node
	Groups      []Node
	Having      Node
	Orders      []Node
	Limit       Node
	Offset      Node
	Compounds   []*Compound
	Lock        LockMode
	SQL         string // raw SELECT overriding every other field
}

func (n *SelectCore) Accept(v Visitor) string { return v.VisitSelectCore(n) }

// QueryNode marks SelectCore as a nestable query.
func (n *SelectCore) QueryNode() {}

// Clone returns a copy whose slices can be appended to without affecting n.
func (n *SelectCore) Clone() *SelectCore {
	c := *n
	c.CTEs = slices.Clone(n.CTEs)
	c.DistinctOn = slices.Clone(n.DistinctOn)
	c.Projections = slices.Clone(n.Projections)
	c.Sources = slices.Clone(n.Sources)
	c.Joins = slices.Clone(n.Joins)
	c.Groups = slices.Clone(n.Groups)
	c.Orders = slices.Clone(n.Orders)
	c.Compounds = slices.Clone(n.Compounds)
	return &c
}
