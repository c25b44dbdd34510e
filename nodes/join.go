package nodes

// JoinType represents the type of SQL JOIN.
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
	NaturalJoin
	CrossJoin
	StraightJoin
	StringJoin // raw SQL join fragment
)

// String returns the SQL keyword for this join type.
func (t JoinType) String() string {
	switch t {
	case InnerJoin:
		return "INNER JOIN"
	case LeftOuterJoin:
		return "LEFT OUTER JOIN"
	case RightOuterJoin:
		return "RIGHT OUTER JOIN"
	case FullOuterJoin:
		return "FULL OUTER JOIN"
	case NaturalJoin:
		return "NATURAL JOIN"
	case CrossJoin:
		return "CROSS JOIN"
	case StraightJoin:
		return "STRAIGHT_JOIN"
	default:
		return ""
	}
}

// JoinNode represents a SQL JOIN clause.
type JoinNode struct {
	Right Node     // joined table, alias or subquery alias
	Type  JoinType // join type
	On    Node     // join condition (nil for NATURAL and CROSS)
}

func (n *JoinNode) Accept(v Visitor) string { return v.VisitJoin(n) }
