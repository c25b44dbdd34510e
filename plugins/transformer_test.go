package plugins

import (
	"errors"
	"testing"

	"github.com/bawdo/gosequel/nodes"
)

// --- BaseTransformer no-op behaviour ---

func TestBaseTransformerReturnsInputs(t *testing.T) {
	t.Parallel()
	bt := BaseTransformer{}
	items := nodes.NewTable("items")

	core := &nodes.SelectCore{Sources: []nodes.Node{items}}
	if got, err := bt.TransformSelect(core); err != nil || got != core {
		t.Errorf("select: expected input unchanged, got %v, %v", got, err)
	}
	ins := &nodes.InsertStatement{Into: items}
	if got, err := bt.TransformInsert(ins); err != nil || got != ins {
		t.Errorf("insert: expected input unchanged, got %v, %v", got, err)
	}
	upd := &nodes.UpdateStatement{Table: items}
	if got, err := bt.TransformUpdate(upd); err != nil || got != upd {
		t.Errorf("update: expected input unchanged, got %v, %v", got, err)
	}
	del := &nodes.DeleteStatement{From: items}
	if got, err := bt.TransformDelete(del); err != nil || got != del {
		t.Errorf("delete: expected input unchanged, got %v, %v", got, err)
	}
}

// --- Pipelines ---

func TestApplySelectRunsInOrder(t *testing.T) {
	t.Parallel()
	var seen []string
	mark := func(name string) Transformer {
		return SelectFunc(func(c *nodes.SelectCore) (*nodes.SelectCore, error) {
			seen = append(seen, name)
			c.Orders = append(c.Orders, nodes.Col(name))
			return c, nil
		})
	}
	core := &nodes.SelectCore{Sources: []nodes.Node{nodes.NewTable("items")}}

	got, err := ApplySelect([]Transformer{mark("a"), mark("b")}, core)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("expected a then b, got %v", seen)
	}
	if len(got.Orders) != 2 {
		t.Errorf("expected two orders, got %d", len(got.Orders))
	}
}

func TestApplySelectStopsAtError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	calls := 0
	failing := SelectFunc(func(*nodes.SelectCore) (*nodes.SelectCore, error) { return nil, boom })
	counting := SelectFunc(func(c *nodes.SelectCore) (*nodes.SelectCore, error) {
		calls++
		return c, nil
	})

	_, err := ApplySelect([]Transformer{failing, counting}, &nodes.SelectCore{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected pipeline to stop, later transformer ran %d times", calls)
	}
}

func TestSelectFuncLeavesStatementsAlone(t *testing.T) {
	t.Parallel()
	f := SelectFunc(func(c *nodes.SelectCore) (*nodes.SelectCore, error) { return nil, errors.New("unused") })
	items := nodes.NewTable("items")

	ins := &nodes.InsertStatement{Into: items}
	if got, err := ApplyInsert([]Transformer{f}, ins); err != nil || got != ins {
		t.Errorf("insert: expected unchanged, got %v, %v", got, err)
	}
	upd := &nodes.UpdateStatement{Table: items}
	if got, err := ApplyUpdate([]Transformer{f}, upd); err != nil || got != upd {
		t.Errorf("update: expected unchanged, got %v, %v", got, err)
	}
	del := &nodes.DeleteStatement{From: items}
	if got, err := ApplyDelete([]Transformer{f}, del); err != nil || got != del {
		t.Errorf("delete: expected unchanged, got %v, %v", got, err)
	}
}
