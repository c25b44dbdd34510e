package dataset

import (
	"testing"

	"github.com/bawdo/gosequel/internal/testutil"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
)

func TestQueryBlock(t *testing.T) {
	t.Parallel()
	ds, err := From("items").Query(func(q *QueryBuilder) error {
		q.Select("id", "name")
		q.Join("users", map[string]any{"id": "user_id"})
		if err := q.Where(map[string]any{"users.active": true}); err != nil {
			return err
		}
		if err := q.Or(nodes.Col("items.public").Eq(true)); err != nil {
			return err
		}
		q.Order("name")
		return q.Limit(5)
	})
	testutil.AssertNoError(t, err)
	assertSelect(t, ds,
		"SELECT id, name FROM items INNER JOIN users ON (users.id = items.user_id) "+
			"WHERE ((users.active = 't') OR (items.public = 't')) ORDER BY name LIMIT 5")
}

func TestQueryBlockGrouping(t *testing.T) {
	t.Parallel()
	ds, err := From("items").Query(func(q *QueryBuilder) error {
		q.Group("type")
		q.Distinct()
		if err := q.Exclude(map[string]any{"type": nil}); err != nil {
			return err
		}
		return q.Having(nodes.CountAll().Gt(1))
	})
	testutil.AssertNoError(t, err)
	assertSelect(t, ds, "SELECT DISTINCT * FROM items WHERE NOT (type IS NULL) GROUP BY type HAVING (COUNT(*) > 1)")
	assertSelect(t, From("x"), "SELECT * FROM x")
}

func TestQueryBlockPropagatesBuilderErrors(t *testing.T) {
	t.Parallel()
	_, err := From("items").Query(func(q *QueryBuilder) error {
		return q.Having(nodes.CountAll().Gt(1))
	})
	testutil.AssertErrorIs(t, err, sqlerr.ErrRequiresGrouping)
}

func TestQueryBlockIsReadOnly(t *testing.T) {
	t.Parallel()
	cases := map[string]func(q *QueryBuilder) error{
		"insert": func(q *QueryBuilder) error { return q.Insert(map[string]any{"a": 1}) },
		"update": func(q *QueryBuilder) error { return q.Update(map[string]any{"a": 1}) },
		"delete": func(q *QueryBuilder) error { return q.Delete() },
		"each":   func(q *QueryBuilder) error { return q.Each(func(Row) error { return nil }) },
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := From("items").Query(fn)
			testutil.AssertErrorIs(t, err, sqlerr.ErrInvalidOperation)
		})
	}
}

func TestQueryBuilderFrom(t *testing.T) {
	t.Parallel()
	ds, err := From("a").Query(func(q *QueryBuilder) error {
		q.From("b")
		testutil.AssertEqual(t, q.Dataset().String(), "SELECT * FROM b")
		return nil
	})
	testutil.AssertNoError(t, err)
	assertSelect(t, ds, "SELECT * FROM b")
}
