package dataset

import (
	"testing"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins/softdelete"
	"github.com/bawdo/gosequel/visitors"
)

func benchDataset(b *testing.B) func(*Dataset, error) *Dataset {
	return func(ds *Dataset, err error) *Dataset {
		if err != nil {
			b.Fatal(err)
		}
		return ds
	}
}

// BenchmarkSimpleSelect benchmarks a basic single-table SELECT query.
func BenchmarkSimpleSelect(b *testing.B) {
	ds := benchDataset(b)(From("users").
		WithDialect(visitors.Postgres).
		Select("id", "name", "email").
		Order(nodes.Col("name").Asc()).
		Where(map[string]any{"active": true}))
	ds = benchDataset(b)(ds.Limit(10))

	b.ResetTimer()
	for b.Loop() {
		_, _ = ds.SelectSQL()
	}
}

// BenchmarkComplexJoinQuery benchmarks a multi-join query with a subquery.
func BenchmarkComplexJoinQuery(b *testing.B) {
	published := benchDataset(b)(From("posts").Where(map[string]any{"published": true}))
	ds := From("users").
		WithDialect(visitors.Postgres).
		Select("users.name", nodes.Count(nodes.Col("t1.id")).As("post_count")).
		Join(published, map[string]any{"user_id": "id"}).
		LeftOuterJoin("comments", map[string]any{"post_id": "id"}).
		Group("users.name")
	ds = benchDataset(b)(ds.Where(map[string]any{"users.active": true}))
	ds = benchDataset(b)(ds.Having(nodes.Count(nodes.Col("t1.id")).Gt(5)))
	ds = benchDataset(b)(ds.Order("users.name").Limit(20, 10))

	b.ResetTimer()
	for b.Loop() {
		_, _ = ds.SelectSQL()
	}
}

// BenchmarkParameterizedQuery benchmarks parameterized mode overhead.
func BenchmarkParameterizedQuery(b *testing.B) {
	ds := benchDataset(b)(From("users").
		WithDialect(visitors.Postgres).
		Select("id", "name").
		Where(Pairs{{"active", true}, {"role", []string{"admin", "editor"}}}))
	ds = benchDataset(b)(ds.Where(nodes.Col("age").Gt(18)))

	b.ResetTimer()
	for b.Loop() {
		_, _, _ = ds.ToSQL()
	}
}

// BenchmarkChaining benchmarks the clone cost of deriving datasets.
func BenchmarkChaining(b *testing.B) {
	base := From("users").Select("id", "name", "email").Join("posts", "user_id").Order("name")

	b.ResetTimer()
	for b.Loop() {
		_ = base.Group("role").SelectMore("role").Distinct()
	}
}

// BenchmarkWithTransformers benchmarks the plugin pipeline cost.
func BenchmarkWithTransformers(b *testing.B) {
	ds := benchDataset(b)(From("users").
		Select("id", "name").
		Use(softdelete.New(softdelete.WithTables("users"))).
		Where(map[string]any{"role": "admin"}))

	b.ResetTimer()
	for b.Loop() {
		_, _ = ds.SelectSQL()
	}
}

// BenchmarkMySQL benchmarks MySQL dialect output.
func BenchmarkMySQL(b *testing.B) {
	ds := benchDataset(b)(From("users").
		WithDialect(visitors.MySQL).
		Select("id", "name", "email").
		Where(map[string]any{"active": true}))
	ds = benchDataset(b)(ds.Order("name").Limit(10))

	b.ResetTimer()
	for b.Loop() {
		_, _ = ds.SelectSQL()
	}
}
