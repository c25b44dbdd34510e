package gosequel_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bawdo/gosequel"
)

func ExampleFrom() {
	ds, err := gosequel.From("items").Where(map[string]any{"price": 342, "name": "xyz"})
	if err != nil {
		panic(err)
	}
	ds, err = ds.Limit(5)
	if err != nil {
		panic(err)
	}
	sql, err := ds.Order("name").SelectSQL()
	if err != nil {
		panic(err)
	}
	fmt.Println(sql)
	// Output: SELECT * FROM items WHERE ((name = 'xyz') AND (price = 342)) ORDER BY name LIMIT 5
}

func ExampleDataset_ToSQL() {
	ds, err := gosequel.From("users").
		WithDialect(gosequel.Postgres).
		Where(gosequel.Col("age").Gt(18))
	if err != nil {
		panic(err)
	}
	sql, params, err := ds.ToSQL()
	if err != nil {
		panic(err)
	}
	fmt.Println(sql)
	fmt.Println(params)
	// Output:
	// SELECT * FROM "users" WHERE ("age" > $1)
	// [18]
}

func TestReExports(t *testing.T) {
	t.Parallel()

	d, err := gosequel.ParseDialect("sqlite3")
	if err != nil || d != gosequel.SQLite {
		t.Fatalf("ParseDialect(sqlite3) = %v, %v", d, err)
	}

	cond := gosequel.Or(gosequel.Col("a").Eq(1), gosequel.Not(gosequel.Col("b").Eq(2)))
	ds, err := gosequel.From("t").Where(cond)
	if err != nil {
		t.Fatal(err)
	}
	sql, err := ds.Select(gosequel.Coalesce(gosequel.Col("x"), 0)).SelectSQL()
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT COALESCE(x, 0) FROM t WHERE ((a = 1) OR (b != 2))"
	if sql != want {
		t.Errorf("got:\n%s\nwant:\n%s", sql, want)
	}
}

func TestReExportedErrors(t *testing.T) {
	t.Parallel()
	_, err := gosequel.From("t").Having(gosequel.Col("a").Eq(1))
	if !errors.Is(err, gosequel.ErrRequiresGrouping) {
		t.Errorf("expected ErrRequiresGrouping, got %v", err)
	}
	_, err = gosequel.From("t").Or(gosequel.Col("a").Eq(1))
	if !errors.Is(err, gosequel.ErrNoExistingFilter) {
		t.Errorf("expected ErrNoExistingFilter, got %v", err)
	}
}
