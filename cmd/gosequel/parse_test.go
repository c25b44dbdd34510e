package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bawdo/gosequel/dataset"
	"github.com/bawdo/gosequel/nodes"
)

func TestTokenize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  []string
	}{
		{"a = 1", []string{"a", "=", "1"}},
		{"a>=1", []string{"a", ">=", "1"}},
		{"a <> b", []string{"a", "<>", "b"}},
		{"name = 'it''s here'", []string{"name", "=", "'it''s here'"}},
		{"id in (1,2)", []string{"id", "in", "(", "1", ",", "2", ")"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tokenize(tt.input))
		})
	}
}

func TestParseValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		token string
		want  any
	}{
		{"42", int64(42)},
		{"-3", int64(-3)},
		{"1.5", 1.5},
		{"'x'", "x"},
		{"'it''s'", "it's"},
		{"TRUE", true},
		{"false", false},
		{"null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			t.Parallel()
			got, err := parseValue(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseValue("bare")
	require.Error(t, err)
}

func TestParseCondition(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		want  string
	}{
		{"a = 1", "SELECT * FROM t WHERE (a = 1)"},
		{"a != 'x'", "SELECT * FROM t WHERE (a != 'x')"},
		{"a <> b", "SELECT * FROM t WHERE (a != b)"},
		{"t.a >= u.b", "SELECT * FROM t WHERE (t.a >= u.b)"},
		{"name like 'a%'", "SELECT * FROM t WHERE (name LIKE 'a%')"},
		{"name not like 'a%'", "SELECT * FROM t WHERE (name NOT LIKE 'a%')"},
		{"a is null", "SELECT * FROM t WHERE (a IS NULL)"},
		{"a IS NOT NULL", "SELECT * FROM t WHERE (a IS NOT NULL)"},
		{"id in (1, 2)", "SELECT * FROM t WHERE (id IN (1, 2))"},
		{"id not in ('a')", "SELECT * FROM t WHERE (id NOT IN ('a'))"},
		{"a = 1 and b = 2", "SELECT * FROM t WHERE ((a = 1) AND (b = 2))"},
		{"a = 1 or b = 2 and c = 3", "SELECT * FROM t WHERE ((a = 1) OR ((b = 2) AND (c = 3)))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			n, err := parseCondition(tt.input)
			require.NoError(t, err)
			ds, err := dataset.From("t").Where(n)
			require.NoError(t, err)
			sql, err := ds.SelectSQL()
			require.NoError(t, err)
			assert.Equal(t, tt.want, sql)
		})
	}
}

func TestParseConditionRejects(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"",
		"a",
		"count(*) > 1",
		"a = 1 + 2",
		"a is maybe",
		"a not between 1",
		"a ~ 1",
		"1 = a",
	} {
		t.Run(input, func(t *testing.T) {
			t.Parallel()
			_, err := parseCondition(input)
			assert.Error(t, err)
		})
	}
}

func TestFilterArgFallsBackToRawSQL(t *testing.T) {
	t.Parallel()
	_, ok := filterArg("a = 1").(nodes.Node)
	assert.True(t, ok)
	assert.Equal(t, "lower(name) = 'x'", filterArg("lower(name) = 'x'"))
}

func TestParseColumns(t *testing.T) {
	t.Parallel()
	cols := parseColumns("id, users.name, *, coalesce(a, b) AS c")
	require.Len(t, cols, 4)
	assert.Equal(t, "id", cols[0])
	assert.Equal(t, "users.name", cols[1])
	assert.Equal(t, "*", cols[2])
	assert.Equal(t, nodes.NewSqlLiteral("coalesce(a, b) AS c"), cols[3])

	assert.Empty(t, parseColumns(" "))
}

func TestSplitTopLevelCommas(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "f(b, c)", "d"}, splitTopLevelCommas("a, f(b, c), d"))
	assert.Nil(t, splitTopLevelCommas(""))
}

func TestParseOrder(t *testing.T) {
	t.Parallel()
	order, err := parseOrder("name, price desc, id ASC")
	require.NoError(t, err)
	sql, err := dataset.From("t").Order(order...).SelectSQL()
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t ORDER BY name, price DESC, id ASC", sql)

	_, err = parseOrder("name sideways")
	assert.ErrorContains(t, err, "unknown direction")
	_, err = parseOrder("name desc nulls")
	assert.ErrorContains(t, err, "unexpected")
	_, err = parseOrder(",")
	assert.ErrorContains(t, err, "usage")
}

func TestParseArgsAndInts(t *testing.T) {
	t.Parallel()
	vals, err := parseArgs("1 'two' null")
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "two", nil}, vals)

	_, err = parseArgs("bare")
	require.Error(t, err)

	n, err := parseInts("5 10", 2, "usage")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 10}, n)

	_, err = parseInts("", 2, "usage")
	assert.EqualError(t, err, "usage")
	_, err = parseInts("1 2 3", 2, "usage")
	assert.EqualError(t, err, "usage")
}
