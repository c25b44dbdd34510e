package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bawdo/gosequel/dataset"
)

func TestFormatRows(t *testing.T) {
	t.Parallel()
	rows := []dataset.Row{
		{"name": "abc", "id": int64(1)},
		{"name": "longer", "id": int64(22), "note": nil},
	}
	want := "" +
		"+----+--------+------+\n" +
		"| id | name   | note |\n" +
		"+----+--------+------+\n" +
		"| 1  | abc    | NULL |\n" +
		"| 22 | longer | NULL |\n" +
		"+----+--------+------+\n" +
		"(2 rows)\n"
	assert.Equal(t, want, formatRows(rows))
}

func TestFormatRowsSingleAndEmpty(t *testing.T) {
	t.Parallel()
	assert.Contains(t, formatRows([]dataset.Row{{"n": 1}}), "(1 row)\n")
	assert.Equal(t, "(0 rows)\n", formatRows(nil))
}

func TestFormatValue(t *testing.T) {
	t.Parallel()
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"bytes", []byte("raw"), "raw"},
		{"time", ts, "2024-03-01T12:00:00Z"},
		{"string", "s", "s"},
		{"int", int64(7), "7"},
		{"float", 1.5, "1.5"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatValue(tt.in))
		})
	}
}

func TestFormatTableUnicodeWidth(t *testing.T) {
	t.Parallel()
	out := formatTable([]string{"name"}, [][]string{{"héllo"}})
	assert.Contains(t, out, "| héllo |\n")
	assert.Contains(t, out, "+-------+\n")
}
