package dataset

import (
	"testing"

	"github.com/bawdo/gosequel/internal/testutil"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins/softdelete"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"
)

func assertSelect(t *testing.T, ds *Dataset, want string) {
	t.Helper()
	got, err := ds.SelectSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, want)
}

// must unwraps a failing builder in tests that expect it to succeed:
// must(t)(ds.Where(...)).
func must(t *testing.T) func(*Dataset, error) *Dataset {
	return func(ds *Dataset, err error) *Dataset {
		t.Helper()
		testutil.AssertNoError(t, err)
		return ds
	}
}

// --- Sources ---

func TestFromTable(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("items"), "SELECT * FROM items")
}

func TestFromSeveralTables(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("a", "b"), "SELECT * FROM a, b")
}

func TestFromBareDatasetCollapsesToTable(t *testing.T) {
	t.Parallel()
	assertSelect(t, From(From("items")), "SELECT * FROM items")
}

func TestFromFilteredDatasetIsAliasedSubquery(t *testing.T) {
	t.Parallel()
	inner := must(t)(From("items").Where(map[string]any{"a": 1}))
	assertSelect(t, From(inner), "SELECT * FROM (SELECT * FROM items WHERE (a = 1)) AS t1")
}

func TestMissingSource(t *testing.T) {
	t.Parallel()
	_, err := From().SelectSQL()
	testutil.AssertErrorIs(t, err, sqlerr.ErrMissingSource)
}

func TestFromSQL(t *testing.T) {
	t.Parallel()
	ds := FromSQL("SELECT * FROM x")
	assertSelect(t, ds, "SELECT * FROM x")

	filtered := must(t)(ds.Where(map[string]any{"a": 1}))
	assertSelect(t, filtered, "SELECT * FROM (SELECT * FROM x) AS t1 WHERE (a = 1)")
}

func TestFromSelf(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").Where(map[string]any{"a": 1}))
	assertSelect(t, ds.FromSelf(), "SELECT * FROM (SELECT * FROM items WHERE (a = 1)) AS t1")
}

// --- Immutability ---

func TestBuildersDoNotModifyReceiver(t *testing.T) {
	t.Parallel()
	base := From("items")
	_ = base.Select("id").Order("name").Group("type").Distinct()
	_ = base.Join("users", "item_id").Join(must(t)(From("x").Where(map[string]any{"a": 1})), nil)
	_, _ = base.Where(map[string]any{"a": 1})
	_, _ = base.Limit(5, 10)
	_ = base.Use(softdelete.New())
	assertSelect(t, base, "SELECT * FROM items")

	filtered := must(t)(base.Where(map[string]any{"a": 1}))
	_, _ = filtered.Or(map[string]any{"b": 2})
	_, _ = filtered.Invert()
	assertSelect(t, filtered, "SELECT * FROM items WHERE (a = 1)")
}

// --- Projection and ordering ---

func TestSelectColumns(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("items").Select("id", "items.name"), "SELECT id, items.name FROM items")
	assertSelect(t, From("items").Select("id").SelectMore(nodes.CountAll().As("n")),
		"SELECT id, COUNT(*) AS n FROM items")
	assertSelect(t, From("items").Select("id").Select(), "SELECT * FROM items")
	assertSelect(t, From("items").Select("id").SelectAll("items"), "SELECT items.* FROM items")
}

func TestDistinct(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("t").Distinct(), "SELECT DISTINCT * FROM t")
	assertSelect(t, From("t").Distinct("a").Select("a", "b"), "SELECT DISTINCT ON (a) a, b FROM t")
}

func TestOrderAndReverse(t *testing.T) {
	t.Parallel()
	ds := From("items").Order("name")
	assertSelect(t, ds, "SELECT * FROM items ORDER BY name")
	assertSelect(t, ds.OrderMore(nodes.Col("id").Desc()), "SELECT * FROM items ORDER BY name, id DESC")
	assertSelect(t, ds.Reverse(), "SELECT * FROM items ORDER BY name DESC")
	assertSelect(t, From("items").Order(nodes.Col("a").Desc()).Reverse(), "SELECT * FROM items ORDER BY a ASC")
	assertSelect(t, ds.Reverse("price"), "SELECT * FROM items ORDER BY price DESC")
	assertSelect(t, ds.Unordered(), "SELECT * FROM items")
}

func TestGroupAndCount(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("t").GroupAndCount("type"), "SELECT type, COUNT(*) AS count FROM t GROUP BY type")
}

func TestUngroupedUnfilteredUnlimited(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("t").Group("a").Having(nodes.CountAll().Gt(1)))
	ds = must(t)(ds.Where(map[string]any{"b": 2}))
	ds = must(t)(ds.Limit(3, 4))
	assertSelect(t, ds.Ungrouped(), "SELECT * FROM t WHERE (b = 2) LIMIT 3 OFFSET 4")
	assertSelect(t, ds.Unfiltered(), "SELECT * FROM t GROUP BY a LIMIT 3 OFFSET 4")
	assertSelect(t, ds.Unlimited(), "SELECT * FROM t WHERE (b = 2) GROUP BY a HAVING (COUNT(*) > 1)")
}

// --- Limits ---

func TestLimit(t *testing.T) {
	t.Parallel()
	assertSelect(t, must(t)(From("test").Limit(10)), "SELECT * FROM test LIMIT 10")
	assertSelect(t, must(t)(From("test").Limit(10, 20)), "SELECT * FROM test LIMIT 10 OFFSET 20")
	assertSelect(t, must(t)(From("test").Offset(5)), "SELECT * FROM test OFFSET 5")
}

func TestLimitRange(t *testing.T) {
	t.Parallel()
	assertSelect(t, must(t)(From("test").LimitRange(nodes.RangeOf(3, 7))), "SELECT * FROM test LIMIT 5 OFFSET 3")
	assertSelect(t, must(t)(From("test").LimitRange(nodes.RangeExclusive(3, 7))), "SELECT * FROM test LIMIT 4 OFFSET 3")
}

func TestLimitRejectsInvalidValues(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		fn   func() (*Dataset, error)
	}{
		{"zero limit", func() (*Dataset, error) { return From("t").Limit(0) }},
		{"negative limit", func() (*Dataset, error) { return From("t").Limit(-1) }},
		{"negative offset", func() (*Dataset, error) { return From("t").Offset(-1) }},
		{"negative offset with limit", func() (*Dataset, error) { return From("t").Limit(1, -1) }},
		{"empty range", func() (*Dataset, error) { return From("t").LimitRange(nodes.RangeExclusive(3, 3)) }},
		{"non-int range", func() (*Dataset, error) { return From("t").LimitRange(nodes.RangeOf("a", "b")) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.fn()
			testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
		})
	}
}

// --- Set operations, CTEs, locks ---

func TestCompounds(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("a").Union(From("b")), "SELECT * FROM a UNION SELECT * FROM b")
	assertSelect(t, From("a").UnionAll(From("b")), "SELECT * FROM a UNION ALL SELECT * FROM b")
	assertSelect(t, From("a").Intersect(From("b")), "SELECT * FROM a INTERSECT SELECT * FROM b")
	assertSelect(t, From("a").Except(From("b")).ExceptAll(From("c")),
		"SELECT * FROM a EXCEPT SELECT * FROM b EXCEPT ALL SELECT * FROM c")
}

func TestWith(t *testing.T) {
	t.Parallel()
	cheap := must(t)(From("items").Where(nodes.Col("price").Lt(10)))
	assertSelect(t, From("cheap").With("cheap", cheap),
		"WITH cheap AS (SELECT * FROM items WHERE (price < 10)) SELECT * FROM cheap")
	assertSelect(t, From("tree").WithRecursive("tree", From("nodes"), "id", "parent_id"),
		"WITH RECURSIVE tree (id, parent_id) AS (SELECT * FROM nodes) SELECT * FROM tree")
}

func TestLocks(t *testing.T) {
	t.Parallel()
	assertSelect(t, From("t").ForUpdate(), "SELECT * FROM t FOR UPDATE")
	assertSelect(t, From("t").ForShare(), "SELECT * FROM t FOR SHARE")
	assertSelect(t, From("t").ForUpdate().WithDialect(visitors.SQLite), `SELECT * FROM "t"`)
}

// --- Dialects and rendering modes ---

func TestDialectQuoting(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").WithDialect(visitors.Postgres).Where(map[string]any{"name": "x"}))
	assertSelect(t, ds, `SELECT * FROM "items" WHERE ("name" = 'x')`)
	assertSelect(t, ds.QuoteIdentifiers(false), `SELECT * FROM items WHERE (name = 'x')`)
	assertSelect(t, ds.WithDialect(visitors.MySQL), "SELECT * FROM `items` WHERE (`name` = 'x')")
	assertSelect(t, From("items").QuoteIdentifiers(true), `SELECT * FROM "items"`)
}

func TestToSQLBindsValues(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").WithDialect(visitors.Postgres).Where(nodes.Col("price").Gt(100)))
	ds = must(t)(ds.Limit(5))
	sql, params, err := ds.ToSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, `SELECT * FROM "items" WHERE ("price" > $1) LIMIT $2`)
	testutil.AssertDiff(t, params, []any{100, 5})

	// Inline rendering is unaffected by a previous parameterized render.
	assertSelect(t, ds, `SELECT * FROM "items" WHERE ("price" > 100) LIMIT 5`)
}

func TestLiteral(t *testing.T) {
	t.Parallel()
	got, err := From("t").Literal("a'b")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "'a''b'")

	got, err = From("t").WithDialect(visitors.Postgres).Literal(true)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "true")

	_, err = From("t").Literal(struct{}{})
	testutil.AssertErrorIs(t, err, sqlerr.ErrUnsupportedLiteral)
}

func TestDatasetAsSubqueryValue(t *testing.T) {
	t.Parallel()
	ids := From("orders").Select("user_id")
	ds := must(t)(From("users").Where(map[string]any{"id": ids}))
	assertSelect(t, ds, "SELECT * FROM users WHERE (id IN (SELECT user_id FROM orders))")

	ds = From("users").Select("name", ids.Select(nodes.CountAll()).As("n"))
	assertSelect(t, ds, "SELECT name, (SELECT COUNT(*) FROM orders) AS n FROM users")
}

func TestNestedRenderErrorPropagates(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("users").Where(map[string]any{"id": From().Select("id")}))
	_, err := ds.SelectSQL()
	testutil.AssertErrorIs(t, err, sqlerr.ErrMissingSource)
}

func TestFormattedSQL(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").Select("id", "name").Where(map[string]any{"price": 1, "kind": "a"}))
	ds = ds.Order("name")
	sql, err := ds.FormattedSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "SELECT id\n\t,name\nFROM items\nWHERE (kind = 'a')\n\tAND (price = 1)\nORDER BY name")

	sql, params, err := ds.WithDialect(visitors.Postgres).FormattedToSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "SELECT \"id\"\n\t,\"name\"\nFROM \"items\"\nWHERE (\"kind\" = $1)\n\tAND (\"price\" = $2)\nORDER BY \"name\"")
	testutil.AssertDiff(t, params, []any{"a", 1})

	// The single-line form is unchanged.
	assertSelect(t, ds, "SELECT id, name FROM items WHERE ((kind = 'a') AND (price = 1)) ORDER BY name")
}

func TestStringer(t *testing.T) {
	t.Parallel()
	testutil.AssertEqual(t, From("t").String(), "SELECT * FROM t")
	testutil.AssertEqual(t, From().String(), sqlerr.ErrMissingSource.Error())
}

// --- Transformers ---

func TestUseAppliesTransformers(t *testing.T) {
	t.Parallel()
	ds := From("users").Use(softdelete.New())
	assertSelect(t, ds, "SELECT * FROM users WHERE (users.deleted_at IS NULL)")

	sql, err := ds.DeleteSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, sql, "DELETE FROM users WHERE (users.deleted_at IS NULL)")

	// A transformed dataset is never collapsed to its bare table.
	assertSelect(t, From(ds),
		"SELECT * FROM (SELECT * FROM users WHERE (users.deleted_at IS NULL)) AS t1")
}
