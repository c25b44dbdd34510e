// Package plugins defines the Transformer interface: middleware that rewrites
// a dataset's statement tree just before it is rendered.
package plugins

import "github.com/bawdo/gosequel/nodes"

// Transformer is the interface that AST transformation plugins implement.
// Plugins embed BaseTransformer and override only the methods they need.
// Transformers receive a private copy of the tree and may modify it.
type Transformer interface {
	TransformSelect(core *nodes.SelectCore) (*nodes.SelectCore, error)
	TransformInsert(stmt *nodes.InsertStatement) (*nodes.InsertStatement, error)
	TransformUpdate(stmt *nodes.UpdateStatement) (*nodes.UpdateStatement, error)
	TransformDelete(stmt *nodes.DeleteStatement) (*nodes.DeleteStatement, error)
}

// BaseTransformer provides no-op defaults for all Transformer methods.
type BaseTransformer struct{}

func (BaseTransformer) TransformSelect(c *nodes.SelectCore) (*nodes.SelectCore, error) {
	return c, nil
}
func (BaseTransformer) TransformInsert(s *nodes.InsertStatement) (*nodes.InsertStatement, error) {
	return s, nil
}
func (BaseTransformer) TransformUpdate(s *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	return s, nil
}
func (BaseTransformer) TransformDelete(s *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	return s, nil
}

// SelectFunc adapts a function to a Transformer that only rewrites SELECTs.
type SelectFunc func(core *nodes.SelectCore) (*nodes.SelectCore, error)

func (f SelectFunc) TransformSelect(c *nodes.SelectCore) (*nodes.SelectCore, error) { return f(c) }
func (SelectFunc) TransformInsert(s *nodes.InsertStatement) (*nodes.InsertStatement, error) {
	return s, nil
}
func (SelectFunc) TransformUpdate(s *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	return s, nil
}
func (SelectFunc) TransformDelete(s *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	return s, nil
}

// ApplySelect runs core through each transformer in order, stopping at the
// first error.
func ApplySelect(ts []Transformer, core *nodes.SelectCore) (*nodes.SelectCore, error) {
	var err error
	for _, t := range ts {
		if core, err = t.TransformSelect(core); err != nil {
			return nil, err
		}
	}
	return core, nil
}

// ApplyInsert runs stmt through each transformer in order.
func ApplyInsert(ts []Transformer, stmt *nodes.InsertStatement) (*nodes.InsertStatement, error) {
	var err error
	for _, t := range ts {
		if stmt, err = t.TransformInsert(stmt); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ApplyUpdate runs stmt through each transformer in order.
func ApplyUpdate(ts []Transformer, stmt *nodes.UpdateStatement) (*nodes.UpdateStatement, error) {
	var err error
	for _, t := range ts {
		if stmt, err = t.TransformUpdate(stmt); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ApplyDelete runs stmt through each transformer in order.
func ApplyDelete(ts []Transformer, stmt *nodes.DeleteStatement) (*nodes.DeleteStatement, error) {
	var err error
	for _, t := range ts {
		if stmt, err = t.TransformDelete(stmt); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}
