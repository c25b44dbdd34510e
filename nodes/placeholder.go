package nodes

import (
	"fmt"
	"strings"

	"github.com/bawdo/gosequel/sqlerr"
)

// TemplatePart is one piece of a placeholder template: literal SQL text, or a
// reference to a positional (Arg >= 0) or named (Name != "") value.
type TemplatePart struct {
	Text string
	Arg  int
	Name string
}

// PlaceholderNode is a raw SQL template whose ? markers (or :name markers when
// the arguments are a single map) are replaced by encoded values at render
// time. Markers inside single-quoted strings are left alone, and a doubled
// colon (a PostgreSQL cast) never starts a named marker.
type PlaceholderNode struct {
	Predications
	Combinable
	Template string
	Args     []any
	Named    map[string]any
	Parts    []TemplatePart
}

func (n *PlaceholderNode) Accept(v Visitor) string { return v.VisitPlaceholder(n) }

// NewPlaceholder parses template and binds args to its markers. The number of
// positional markers must match len(args), and every named marker must have a
// value.
func NewPlaceholder(template string, args ...any) (*PlaceholderNode, error) {
	n := &PlaceholderNode{Template: template, Args: args}
	if len(args) == 1 {
		if named, ok := args[0].(map[string]any); ok {
			n.Named = named
			n.Args = nil
		}
	}
	parts, positional := parseTemplate(template, n.Named != nil)
	if n.Named == nil && positional != len(n.Args) {
		return nil, fmt.Errorf("%w: template %q has %d placeholders but %d arguments were given",
			sqlerr.ErrInvalidOperation, template, positional, len(n.Args))
	}
	for _, p := range parts {
		if p.Name == "" {
			continue
		}
		if _, ok := n.Named[p.Name]; !ok {
			return nil, fmt.Errorf("%w: no value for placeholder :%s", sqlerr.ErrInvalidOperation, p.Name)
		}
	}
	n.Parts = parts
	n.Predications.self = n
	n.Combinable.self = n
	return n, nil
}

func parseTemplate(template string, named bool) ([]TemplatePart, int) {
	var parts []TemplatePart
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, TemplatePart{Text: text.String(), Arg: -1})
			text.Reset()
		}
	}
	positional := 0
	inString := false
	for i := 0; i < len(template); i++ {
		c := template[i]
		switch {
		case c == '\'':
			inString = !inString
			text.WriteByte(c)
		case inString:
			text.WriteByte(c)
		case c == '?' && !named:
			flush()
			parts = append(parts, TemplatePart{Arg: positional})
			positional++
		case c == ':' && named && i+1 < len(template) && isIdentStart(template[i+1]) &&
			(i == 0 || template[i-1] != ':'):
			j := i + 1
			for j < len(template) && isIdentPart(template[j]) {
				j++
			}
			flush()
			parts = append(parts, TemplatePart{Arg: -1, Name: template[i+1 : j]})
			i = j - 1
		default:
			text.WriteByte(c)
		}
	}
	flush()
	return parts, positional
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// BindParamNode represents an explicit bind parameter. Its Value is emitted as
// a placeholder in parameterized mode and encoded as a literal otherwise.
type BindParamNode struct {
	Predications
	Value any
}

func (n *BindParamNode) Accept(v Visitor) string { return v.VisitBindParam(n) }

// NewBindParam creates a BindParamNode.
func NewBindParam(value any) *BindParamNode {
	n := &BindParamNode{Value: value}
	n.Predications.self = n
	return n
}
