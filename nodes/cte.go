package nodes

// CTENode represents a common table expression: name [(cols)] AS (query).
type CTENode struct {
	Name      string
	Query     Node
	Recursive bool
	Columns   []string
}

func (n *CTENode) Accept(v Visitor) string { return v.VisitCTE(n) }
