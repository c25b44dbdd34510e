package dataset

import (
	"testing"

	"github.com/bawdo/gosequel/internal/testutil"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"
)

func TestInsertSQL(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").Where(map[string]any{"ignored": 1}))
	cases := []struct {
		name   string
		values []any
		want   string
	}{
		{"default values", nil, "INSERT INTO items DEFAULT VALUES"},
		{"map", []any{map[string]any{"price": 1.5, "name": "x"}}, "INSERT INTO items (name, price) VALUES ('x', 1.5)"},
		{"pairs", []any{Pairs{{"price", 2}, {"name", nil}}}, "INSERT INTO items (price, name) VALUES (2, NULL)"},
		{"empty map", []any{map[string]any{}}, "INSERT INTO items DEFAULT VALUES"},
		{"positional", []any{1, "x"}, "INSERT INTO items VALUES (1, 'x')"},
		{"select", []any{From("old").Select("name")}, "INSERT INTO items SELECT name FROM old"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ds.InsertSQL(tc.values...)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestMultiInsertSQL(t *testing.T) {
	t.Parallel()
	got, err := From("t").MultiInsertSQL([]string{"a", "b"}, [][]any{{1, 2}, {3, 4}})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "INSERT INTO t (a, b) VALUES (1, 2), (3, 4)")

	_, err = From("t").MultiInsertSQL([]string{"a", "b"}, [][]any{{1}})
	testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)

	_, err = From("t").MultiInsertSQL([]string{"a"}, nil)
	testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
}

func TestUpdateSQL(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").Where(map[string]any{"id": 1}))
	got, err := ds.UpdateSQL(map[string]any{"name": "x", "price": nil})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "UPDATE items SET name = 'x', price = NULL WHERE (id = 1)")

	got, err = From("items").UpdateSQL(Pairs{{"n", nodes.Col("n").Plus(1)}})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "UPDATE items SET n = (n + 1)")
}

func TestUpdateOrderAndLimitByDialect(t *testing.T) {
	t.Parallel()
	ds := must(t)(From("items").Order("id").Limit(5))

	got, err := ds.UpdateSQL(Pairs{{"n", 0}})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "UPDATE items SET n = 0")

	got, err = ds.WithDialect(visitors.MySQL).UpdateSQL(Pairs{{"n", nodes.Col("n").Plus(1)}})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "UPDATE `items` SET `n` = (`n` + 1) ORDER BY `id` LIMIT 5")

	got, err = ds.WithDialect(visitors.MySQL).DeleteSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "DELETE FROM `items` ORDER BY `id` LIMIT 5")
}

func TestDeleteSQL(t *testing.T) {
	t.Parallel()
	got, err := From("items").DeleteSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "DELETE FROM items")

	ds := must(t)(From("items").Exclude(map[string]any{"keep": true}))
	got, err = ds.WithDialect(visitors.Postgres).DeleteSQL()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, `DELETE FROM "items" WHERE NOT ("keep" = true)`)
}

func TestStatementShapeErrors(t *testing.T) {
	t.Parallel()
	grouped := From("test").Group("type_id")
	cases := []struct {
		name string
		fn   func() (string, error)
	}{
		{"update grouped", func() (string, error) { return grouped.UpdateSQL(map[string]any{"a": 1}) }},
		{"delete grouped", func() (string, error) { return grouped.DeleteSQL() }},
		{"update joined", func() (string, error) {
			return From("a").Join("b", "a_id").UpdateSQL(map[string]any{"x": 1})
		}},
		{"delete joined", func() (string, error) { return From("a").CrossJoin("b").DeleteSQL() }},
		{"update two tables", func() (string, error) { return From("a", "b").UpdateSQL(map[string]any{"x": 1}) }},
		{"insert two tables", func() (string, error) { return From("a", "b").InsertSQL() }},
		{"insert raw", func() (string, error) { return FromSQL("SELECT 1").InsertSQL() }},
		{"delete subquery", func() (string, error) { return From("a").Distinct().FromSelf().DeleteSQL() }},
		{"delete distinct", func() (string, error) { return From("a").Distinct().DeleteSQL() }},
		{"update union", func() (string, error) { return From("a").Union(From("b")).UpdateSQL(map[string]any{"x": 1}) }},
		{"empty update", func() (string, error) { return From("a").UpdateSQL(map[string]any{}) }},
		{"update with bad values", func() (string, error) { return From("a").UpdateSQL([]int{1}) }},
		{"no source", func() (string, error) { return From().DeleteSQL() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := tc.fn()
			testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
		})
	}
}
