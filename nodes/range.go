package nodes

// Range is an interval of values. Comparing an expression with a Range
// produces (expr >= Begin) AND (expr <= End), or < End when ExcludeEnd is set.
type Range struct {
	Begin      any
	End        any
	ExcludeEnd bool
}

// RangeOf returns the closed range [begin, end].
func RangeOf(begin, end any) Range {
	return Range{Begin: begin, End: end}
}

// RangeExclusive returns the half-open range [begin, end).
func RangeExclusive(begin, end any) Range {
	return Range{Begin: begin, End: end, ExcludeEnd: true}
}

// Cover returns the condition that expr lies within the range.
func (r Range) Cover(expr Node) Condition {
	upper := OpLtEq
	if r.ExcludeEnd {
		upper = OpLt
	}
	return NewAnd(
		NewComparisonNode(expr, Literal(r.Begin), OpGtEq),
		NewComparisonNode(expr, Literal(r.End), upper),
	)
}
