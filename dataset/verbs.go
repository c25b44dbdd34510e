package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

// Verb names a column-parameterized dataset operation, such as order_by in
// "order_by_name".
type Verb string

const (
	OrderBy  Verb = "order_by"
	FilterBy Verb = "filter_by"
	GroupBy  Verb = "group_by"
	CountBy  Verb = "count_by"
	FindBy   Verb = "find_by"
	FirstBy  Verb = "first_by"
	LastBy   Verb = "last_by"
)

// builderVerbs derive a new dataset from a column.
var builderVerbs = map[Verb]func(d *Dataset, col nodes.Node, args []any) (*Dataset, error){
	OrderBy: func(d *Dataset, col nodes.Node, _ []any) (*Dataset, error) {
		return d.Order(col), nil
	},
	FilterBy: func(d *Dataset, col nodes.Node, args []any) (*Dataset, error) {
		v, err := verbValue(FilterBy, args)
		if err != nil {
			return nil, err
		}
		return d.Where(equality(col, v))
	},
	GroupBy: func(d *Dataset, col nodes.Node, _ []any) (*Dataset, error) {
		return d.Group(col), nil
	},
	CountBy: func(d *Dataset, col nodes.Node, _ []any) (*Dataset, error) {
		return d.GroupAndCount(col).Order(nodes.Col("count")), nil
	},
}

// fetchVerbs return a single row.
var fetchVerbs = map[Verb]func(ctx context.Context, d *Dataset, col nodes.Node, args []any) (Row, error){
	FindBy: func(ctx context.Context, d *Dataset, col nodes.Node, args []any) (Row, error) {
		v, err := verbValue(FindBy, args)
		if err != nil {
			return nil, err
		}
		f, err := d.Where(equality(col, v))
		if err != nil {
			return nil, err
		}
		return f.First(ctx)
	},
	FirstBy: func(ctx context.Context, d *Dataset, col nodes.Node, _ []any) (Row, error) {
		return d.Order(col).First(ctx)
	},
	LastBy: func(ctx context.Context, d *Dataset, col nodes.Node, _ []any) (Row, error) {
		return d.Order(col).Last(ctx)
	},
}

// verbOrder is the prefix match order for ParseVerb.
var verbOrder = []Verb{OrderBy, FilterBy, GroupBy, CountBy, FindBy, FirstBy, LastBy}

func verbValue(v Verb, args []any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: %s takes exactly one value, got %d", sqlerr.ErrInvalidOperation, v, len(args))
	}
	return args[0], nil
}

// ParseVerb splits a method name such as "order_by_name" into its verb and
// column.
func ParseVerb(method string) (Verb, string, error) {
	for _, v := range verbOrder {
		col, ok := strings.CutPrefix(method, string(v)+"_")
		if ok && col != "" {
			return v, col, nil
		}
	}
	return "", "", fmt.Errorf("%w: unknown method %q", sqlerr.ErrInvalidOperation, method)
}

// IsFetch reports whether the verb returns a row rather than a dataset.
func (v Verb) IsFetch() bool {
	_, ok := fetchVerbs[v]
	return ok
}

// ByColumn applies a builder verb: OrderBy, FilterBy (one value), GroupBy
// or CountBy.
func (d *Dataset) ByColumn(verb Verb, col string, args ...any) (*Dataset, error) {
	fn, ok := builderVerbs[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a builder verb", sqlerr.ErrInvalidOperation, verb)
	}
	return fn(d, nodes.Col(col), args)
}

// FetchByColumn applies a fetch verb: FindBy (one value), FirstBy or LastBy.
func (d *Dataset) FetchByColumn(ctx context.Context, verb Verb, col string, args ...any) (Row, error) {
	fn, ok := fetchVerbs[verb]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a fetch verb", sqlerr.ErrInvalidOperation, verb)
	}
	return fn(ctx, d, nodes.Col(col), args)
}
