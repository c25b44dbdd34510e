package nodes

// VirtualRow is handed to block-style filter callbacks as a small vocabulary
// for building expressions.
//
//	ds.Where(func(r *nodes.VirtualRow) nodes.Node {
//	    return r.Col("price").Gt(100).And(r.Fn("lower", r.Col("name")).Eq("abc"))
//	})
type VirtualRow struct{}

// Col returns a column reference; "t.c" is qualified.
func (VirtualRow) Col(name string) *Attribute { return Col(name) }

// Q returns the column qualified by table.
func (VirtualRow) Q(table, column string) *Attribute {
	return NewTable(table).Col(column)
}

// Fn returns a function call.
func (VirtualRow) Fn(name string, args ...any) *FunctionNode {
	return NewFunction(name, args...)
}

// Lit returns a raw SQL fragment.
func (VirtualRow) Lit(raw string) *SqlLiteral { return NewSqlLiteral(raw) }

// Val returns a literal value node.
func (VirtualRow) Val(v any) Node { return Literal(v) }
