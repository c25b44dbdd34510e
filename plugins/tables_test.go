package plugins

import (
	"testing"

	"github.com/bawdo/gosequel/nodes"
)

func TestCollectTablesFromSources(t *testing.T) {
	t.Parallel()
	users := nodes.NewTable("users")
	posts := nodes.NewTable("posts")
	core := &nodes.SelectCore{Sources: []nodes.Node{users, posts}}

	refs := CollectTables(core)
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Name != "users" || refs[0].Relation != users {
		t.Errorf("expected users first, got %+v", refs[0])
	}
	if refs[1].Name != "posts" {
		t.Errorf("expected posts second, got %q", refs[1].Name)
	}
}

func TestCollectTablesFromAlias(t *testing.T) {
	t.Parallel()
	u := nodes.NewTable("users").Alias("u")
	refs := CollectTables(&nodes.SelectCore{Sources: []nodes.Node{u}})
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	if refs[0].Name != "users" {
		t.Errorf("expected underlying name 'users', got %q", refs[0].Name)
	}
	if refs[0].Relation != u {
		t.Error("expected relation to be the alias")
	}
}

func TestCollectTablesIncludesJoins(t *testing.T) {
	t.Parallel()
	sub := &nodes.SelectCore{Sources: []nodes.Node{nodes.NewTable("x")}}
	core := &nodes.SelectCore{
		Sources: []nodes.Node{nodes.NewTable("users")},
		Joins: []*nodes.JoinNode{
			{Right: nodes.NewTable("posts"), Type: nodes.InnerJoin},
			{Right: &nodes.TableAlias{Relation: sub, AliasName: "t1"}, Type: nodes.InnerJoin},
			{Right: nodes.NewSqlLiteral("JOIN raw"), Type: nodes.StringJoin},
		},
	}

	refs := CollectTables(core)
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	want := []string{"users", "posts", "t1"}
	for i, w := range want {
		if refs[i].Name != w {
			t.Errorf("ref %d: expected %q, got %q", i, w, refs[i].Name)
		}
	}
}

func TestCollectTablesSkipsNonTables(t *testing.T) {
	t.Parallel()
	core := &nodes.SelectCore{Sources: []nodes.Node{nodes.NewSqlLiteral("generate_series(1, 3)")}}
	if refs := CollectTables(core); len(refs) != 0 {
		t.Errorf("expected no refs, got %d", len(refs))
	}
}
