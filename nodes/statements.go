package nodes

// AssignmentNode represents a column = value pair in SET clauses.
type AssignmentNode struct {
	Left  Node // column (Attribute)
	Right Node // value
}

func (n *AssignmentNode) Accept(v Visitor) string { return v.VisitAssignment(n) }

// InsertStatement represents INSERT INTO ... VALUES / SELECT / DEFAULT VALUES.
// With no columns, no values and no select it renders DEFAULT VALUES.
type InsertStatement struct {
	Into    Node     // *Table
	Columns []Node   // column list, may be empty for positional values
	Values  [][]Node // rows of values (multi-row)
	Select  Node     // INSERT ... SELECT (mutually exclusive with Values)
}

func (n *InsertStatement) Accept(v Visitor) string { return v.VisitInsertStatement(n) }

// UpdateStatement represents UPDATE ... SET ... WHERE. Orders and Limit are
// only rendered by dialects that accept them on UPDATE.
type UpdateStatement struct {
	Table       Node
	Assignments []*AssignmentNode
	Where       Node
	Orders      []Node
	Limit       Node
}

func (n *UpdateStatement) Accept(v Visitor) string { return v.VisitUpdateStatement(n) }

// DeleteStatement represents DELETE FROM ... WHERE.
type DeleteStatement struct {
	From   Node
	Where  Node
	Orders []Node
	Limit  Node
}

func (n *DeleteStatement) Accept(v Visitor) string { return v.VisitDeleteStatement(n) }
