package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bawdo/gosequel/nodes"
)

// identRe matches a column reference: name, table.name or table.*.
var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.([A-Za-z_][A-Za-z0-9_]*|\*))?$`)

// tokenize splits input into tokens, respecting single-quoted strings and
// recognising the comparison operators and punctuation.
func tokenize(input string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(input); i++ {
		ch := input[i]

		if inQuote {
			cur.WriteByte(ch)
			if ch == '\'' {
				if i+1 < len(input) && input[i+1] == '\'' {
					cur.WriteByte('\'')
					i++
				} else {
					inQuote = false
					flush()
				}
			}
			continue
		}

		switch {
		case ch == '\'':
			flush()
			cur.WriteByte(ch)
			inQuote = true
		case ch == '(' || ch == ')' || ch == ',':
			flush()
			tokens = append(tokens, string(ch))
		case (ch == '!' || ch == '<' || ch == '>') && i+1 < len(input) && input[i+1] == '=':
			flush()
			tokens = append(tokens, input[i:i+2])
			i++
		case ch == '<' && i+1 < len(input) && input[i+1] == '>':
			flush()
			tokens = append(tokens, "<>")
			i++
		case ch == '=' || ch == '>' || ch == '<':
			flush()
			tokens = append(tokens, string(ch))
		case ch == ' ' || ch == '\t':
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	flush()
	return tokens
}

// parseValue converts a literal token to a Go value.
func parseValue(token string) (any, error) {
	switch strings.ToLower(token) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null":
		return nil, nil
	}
	if len(token) >= 2 && strings.HasPrefix(token, "'") && strings.HasSuffix(token, "'") {
		return strings.ReplaceAll(token[1:len(token)-1], "''", "'"), nil
	}
	if i, err := strconv.ParseInt(token, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f, nil
	}
	return nil, fmt.Errorf("cannot parse value: %s", token)
}

// parseOperand reads a column reference or a literal value.
func parseOperand(token string) (any, error) {
	if identRe.MatchString(token) {
		switch strings.ToLower(token) {
		case "true", "false", "null":
		default:
			return nodes.Col(token), nil
		}
	}
	return parseValue(token)
}

// parseCondition parses "col op value" terms joined by AND and OR, with AND
// binding tighter. Supported forms per term:
//
//	col = 1, col != 'x', col >= other_col, col like 'a%'
//	col is null, col is not null
//	col in (1, 2), col not in ('a')
func parseCondition(input string) (nodes.Node, error) {
	tokens := tokenize(input)
	if len(tokens) == 0 {
		return nil, errors.New("empty condition")
	}
	var ors []nodes.Node
	for _, orPart := range splitKeyword(tokens, "or") {
		var ands []nodes.Node
		for _, term := range splitKeyword(orPart, "and") {
			n, err := parseTerm(term)
			if err != nil {
				return nil, err
			}
			ands = append(ands, n)
		}
		ors = append(ors, nodes.And(ands...))
	}
	return nodes.Or(ors...), nil
}

// splitKeyword splits tokens on a keyword outside parentheses.
func splitKeyword(tokens []string, kw string) [][]string {
	var parts [][]string
	depth, start := 0, 0
	for i, t := range tokens {
		switch {
		case t == "(":
			depth++
		case t == ")":
			depth--
		case depth == 0 && strings.EqualFold(t, kw):
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	return append(parts, tokens[start:])
}

func parseTerm(tokens []string) (nodes.Node, error) {
	if len(tokens) < 2 {
		return nil, fmt.Errorf("incomplete condition: %q", strings.Join(tokens, " "))
	}
	if !identRe.MatchString(tokens[0]) {
		return nil, fmt.Errorf("expected column, got %q", tokens[0])
	}
	col := nodes.Col(tokens[0])
	rest := tokens[1:]
	op := strings.ToLower(rest[0])

	switch op {
	case "is":
		return parseIs(col, rest[1:])
	case "in":
		return parseIn(col, rest[1:], false)
	case "not":
		if len(rest) > 1 && strings.EqualFold(rest[1], "in") {
			return parseIn(col, rest[2:], true)
		}
		if len(rest) == 3 && strings.EqualFold(rest[1], "like") {
			v, err := parseValue(rest[2])
			if err != nil {
				return nil, err
			}
			return col.NotLike(v), nil
		}
		return nil, errors.New("expected IN or LIKE after NOT")
	}

	if len(rest) != 2 {
		return nil, fmt.Errorf("expected: <column> <op> <value>, got %q", strings.Join(tokens, " "))
	}
	right, err := parseOperand(rest[1])
	if err != nil {
		return nil, err
	}
	switch op {
	case "=":
		return col.Eq(right), nil
	case "!=", "<>":
		return col.NotEq(right), nil
	case ">":
		return col.Gt(right), nil
	case ">=":
		return col.Gte(right), nil
	case "<":
		return col.Lt(right), nil
	case "<=":
		return col.Lte(right), nil
	case "like":
		return col.Like(right), nil
	case "ilike":
		return col.ILike(right), nil
	}
	return nil, fmt.Errorf("unknown operator %q", rest[0])
}

func parseIs(col *nodes.Attribute, tokens []string) (nodes.Node, error) {
	switch {
	case len(tokens) == 1 && strings.EqualFold(tokens[0], "null"):
		return col.IsNull(), nil
	case len(tokens) == 2 && strings.EqualFold(tokens[0], "not") && strings.EqualFold(tokens[1], "null"):
		return col.IsNotNull(), nil
	}
	return nil, errors.New("expected NULL or NOT NULL after IS")
}

func parseIn(col *nodes.Attribute, tokens []string, negate bool) (nodes.Node, error) {
	var vals []any
	for _, t := range tokens {
		if t == "(" || t == ")" || t == "," {
			continue
		}
		v, err := parseValue(t)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if negate {
		return col.NotIn(vals...), nil
	}
	return col.In(vals...), nil
}

// splitTopLevelCommas splits on commas outside parentheses so function calls
// such as COALESCE(a, b) stay intact.
func splitTopLevelCommas(s string) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '(':
			depth++
			cur.WriteByte(ch)
		case ch == ')':
			depth--
			cur.WriteByte(ch)
		case ch == ',' && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if last := strings.TrimSpace(cur.String()); last != "" {
		parts = append(parts, last)
	}
	return parts
}

// parseColumns reads a comma-separated projection or grouping list. Plain
// references stay strings for the dataset to resolve; anything else, such as
// "count(*) as n", is passed through as raw SQL.
func parseColumns(input string) []any {
	var cols []any
	for _, p := range splitTopLevelCommas(input) {
		if p == "" {
			continue
		}
		if p == "*" || identRe.MatchString(p) {
			cols = append(cols, p)
		} else {
			cols = append(cols, nodes.NewSqlLiteral(p))
		}
	}
	return cols
}

// parseOrder reads "col [asc|desc], ..." into ordering nodes.
func parseOrder(input string) ([]any, error) {
	var out []any
	for _, p := range splitTopLevelCommas(input) {
		fields := strings.Fields(p)
		if len(fields) == 0 {
			continue
		}
		var expr nodes.Node = nodes.NewSqlLiteral(fields[0])
		if identRe.MatchString(fields[0]) {
			expr = nodes.Col(fields[0])
		}
		if len(fields) > 2 {
			return nil, fmt.Errorf("unexpected %q in order", strings.Join(fields[2:], " "))
		}
		if len(fields) == 1 {
			out = append(out, expr)
			continue
		}
		switch strings.ToLower(fields[1]) {
		case "asc":
			out = append(out, &nodes.OrderingNode{Expr: expr, Direction: nodes.Asc})
		case "desc":
			out = append(out, &nodes.OrderingNode{Expr: expr, Direction: nodes.Desc})
		default:
			return nil, fmt.Errorf("unknown direction %q", fields[1])
		}
	}
	if len(out) == 0 {
		return nil, errors.New("usage: order <col> [asc|desc], ...")
	}
	return out, nil
}

// filterArg turns condition text into a dataset filter: a parsed expression
// when the text fits the condition grammar, otherwise the raw SQL string.
func filterArg(input string) any {
	if n, err := parseCondition(input); err == nil {
		return n
	}
	return input
}
