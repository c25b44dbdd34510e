package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bawdo/gosequel/dataset"
)

const (
	maxRows         = 1000
	defaultPageSize = 20
)

var errTruncated = errors.New("row limit reached")

// formatRows renders rows as an ASCII table. Columns appear in name order
// since rows carry no column order of their own.
func formatRows(rows []dataset.Row) string {
	seen := make(map[string]bool)
	var columns []string
	for _, r := range rows {
		for c := range r {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	sort.Strings(columns)

	data := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(columns))
		for j, c := range columns {
			cells[j] = formatValue(r[c])
		}
		data[i] = cells
	}
	return formatTable(columns, data)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case string:
		return x
	}
	return fmt.Sprint(v)
}

func formatTable(columns []string, rows [][]string) string {
	if len(columns) == 0 {
		return "(0 rows)\n"
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = utf8.RuneCountInString(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	var b strings.Builder
	sep := separator(widths)

	b.WriteString(sep)
	writeRow(&b, columns, widths)
	b.WriteString(sep)
	for _, row := range rows {
		writeRow(&b, row, widths)
	}
	b.WriteString(sep)

	if len(rows) == 1 {
		b.WriteString("(1 row)\n")
	} else {
		fmt.Fprintf(&b, "(%d rows)\n", len(rows))
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteByte('|')
	for i, cell := range cells {
		fmt.Fprintf(b, " %s%s |", cell, strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
	}
	b.WriteByte('\n')
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}
