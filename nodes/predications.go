package nodes

import (
	"reflect"
	"regexp"
	"strings"
)

// Predications provides comparison methods to types that embed it.
// The self field must be set to the embedding node so that comparisons
// reference the correct left-hand side.
type Predications struct {
	self Node
}

// Eq creates an equality predicate. The value decides the shape:
// nil gives IS NULL, a slice gives IN (...), a Range gives a bounds
// conjunction, a query gives IN (subquery) and a *regexp.Regexp gives a
// regular expression match. Anything else is self = val. A nil pointer
// is treated as nil and other pointers are compared by their target.
func (p Predications) Eq(val any) Condition {
	return equality(p.self, val)
}

// NotEq is the negation of Eq for the same value.
func (p Predications) NotEq(val any) Condition {
	return Negate(equality(p.self, val))
}

func equality(left Node, val any) Condition {
	rv := reflect.ValueOf(val)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return NewComparisonNode(left, Literal(nil), OpIs)
	}
	switch v := val.(type) {
	case nil:
		return NewComparisonNode(left, Literal(nil), OpIs)
	case Range:
		return v.Cover(left)
	case *Range:
		return v.Cover(left)
	case *regexp.Regexp:
		return regexpMatch(left, v, false)
	case Query:
		return newIn(left, []Node{NewSubquery(v)}, false)
	case Node:
		return NewComparisonNode(left, v, OpEq)
	}
	if rv.Kind() == reflect.Pointer {
		return equality(left, rv.Elem().Interface())
	}
	if items, ok := expandSlice(val); ok {
		return newIn(left, items, false)
	}
	return NewComparisonNode(left, Literal(val), OpEq)
}

// Gt creates a greater-than comparison: self > val.
func (p Predications) Gt(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpGt)
}

// Gte creates a greater-than-or-equal comparison: self >= val.
func (p Predications) Gte(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpGtEq)
}

// Lt creates a less-than comparison: self < val.
func (p Predications) Lt(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpLt)
}

// Lte creates a less-than-or-equal comparison: self <= val.
func (p Predications) Lte(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpLtEq)
}

// Like matches self against one or more patterns. Several patterns produce
// an OR chain of individual LIKE comparisons. A *regexp.Regexp pattern
// produces a regular expression match instead of LIKE.
func (p Predications) Like(pattern any, more ...any) Condition {
	return p.patterns(false, append([]any{pattern}, more...))
}

// NotLike negates Like.
func (p Predications) NotLike(pattern any, more ...any) Condition {
	return Negate(p.Like(pattern, more...))
}

// ILike is the case-insensitive form of Like.
func (p Predications) ILike(pattern any, more ...any) Condition {
	return p.patterns(true, append([]any{pattern}, more...))
}

// NotILike negates ILike.
func (p Predications) NotILike(pattern any, more ...any) Condition {
	return Negate(p.ILike(pattern, more...))
}

func (p Predications) patterns(caseInsensitive bool, pats []any) Condition {
	var result Condition
	for _, pat := range pats {
		var c Condition
		if re, ok := pat.(*regexp.Regexp); ok {
			c = regexpMatch(p.self, re, caseInsensitive)
		} else {
			op := OpLike
			if caseInsensitive {
				op = OpILike
			}
			c = NewComparisonNode(p.self, Literal(pat), op)
		}
		if result == nil {
			result = c
		} else {
			result = NewOr(result, c)
		}
	}
	return result
}

// regexpMatch builds a regular expression comparison. A leading (?i) flag
// selects the case-insensitive operator and is removed from the pattern.
func regexpMatch(left Node, re *regexp.Regexp, caseInsensitive bool) *ComparisonNode {
	src := re.String()
	if rest, ok := strings.CutPrefix(src, "(?i)"); ok {
		src = rest
		caseInsensitive = true
	}
	op := OpRegexp
	if caseInsensitive {
		op = OpIRegexp
	}
	return NewComparisonNode(left, Literal(src), op)
}

// In creates an IN predicate. A single query argument gives IN (subquery),
// a single slice is expanded into the value list and a single Range becomes
// a bounds conjunction.
func (p Predications) In(vals ...any) Condition {
	return setMembership(p.self, vals, false)
}

// NotIn negates In.
func (p Predications) NotIn(vals ...any) Condition {
	return setMembership(p.self, vals, true)
}

// Is creates an IS comparison against nil, true or false.
func (p Predications) Is(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpIs)
}

// IsNot creates an IS NOT comparison against nil, true or false.
func (p Predications) IsNot(val any) *ComparisonNode {
	return NewComparisonNode(p.self, Literal(val), OpIsNot)
}

// IsNull creates an IS NULL predicate.
func (p Predications) IsNull() *ComparisonNode {
	return p.Is(nil)
}

// IsNotNull creates an IS NOT NULL predicate.
func (p Predications) IsNotNull() *ComparisonNode {
	return p.IsNot(nil)
}

// As creates an AliasNode wrapping self with the given alias name.
func (p Predications) As(name string) *AliasNode {
	return NewAliasNode(p.self, name)
}

// Asc creates an ascending ordering node.
func (p Predications) Asc() *OrderingNode {
	return &OrderingNode{Expr: p.self, Direction: Asc}
}

// Desc creates a descending ordering node.
func (p Predications) Desc() *OrderingNode {
	return &OrderingNode{Expr: p.self, Direction: Desc}
}
