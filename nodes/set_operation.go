package nodes

// SetOpType represents the type of set operation.
type SetOpType int

const (
	Union SetOpType = iota
	UnionAll
	Intersect
	IntersectAll
	Except
	ExceptAll
)

// String returns the SQL keyword for this set operation type.
func (t SetOpType) String() string {
	switch t {
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case IntersectAll:
		return "INTERSECT ALL"
	case Except:
		return "EXCEPT"
	case ExceptAll:
		return "EXCEPT ALL"
	default:
		return "UNION"
	}
}

// Compound is a set operation appended to a SELECT: UNION <query> and so on.
type Compound struct {
	Type  SetOpType
	Query Node
}
