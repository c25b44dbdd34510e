package main

import (
	"sort"
	"strings"

	"github.com/bawdo/gosequel/visitors"
)

// completionContext describes what kind of completion is appropriate.
type completionContext int

const (
	contextCommand   completionContext = iota // start of line or partial command
	contextTableName                          // after from/join/columns
	contextColumnRef                          // after select/where/order/group/having
	contextDialect                            // after dialect
	contextNone                               // free text, no candidates
)

var functionNames = []string{"AVG(", "COALESCE(", "COUNT(", "LOWER(", "MAX(", "MIN(", "SUM(", "UPPER("}

// replCompleter implements readline's AutoCompleter interface.
type replCompleter struct {
	sess *Session
}

// Do returns completion candidates for line[:pos]. length is the number of
// runes before pos that form the prefix being completed; each candidate is
// the suffix to append.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	ctx, prefix := c.parseContext(string(line[:pos]))

	var candidates []string
	switch ctx {
	case contextCommand:
		candidates = filterPrefix(c.sess.commandNames(), prefix)
	case contextTableName:
		candidates = filterPrefix(c.sess.schemaTables(), prefix)
	case contextColumnRef:
		candidates = c.completeColumnRef(prefix)
	case contextDialect:
		names := make([]string, len(visitors.Dialects))
		for i, d := range visitors.Dialects {
			names[i] = d.String()
		}
		candidates = filterPrefix(names, prefix)
	}

	for _, cand := range candidates {
		newLine = append(newLine, []rune(cand[len(prefix):]+" "))
	}
	return newLine, len([]rune(prefix))
}

// parseContext finds the command being typed and asks its completer what
// the current word is.
func (c *replCompleter) parseContext(line string) (completionContext, string) {
	lower := strings.ToLower(line)
	for _, cmd := range c.sess.commands {
		if !strings.HasSuffix(cmd.prefix, " ") || !strings.HasPrefix(lower, cmd.prefix) {
			continue
		}
		if cmd.completer == nil {
			return contextNone, ""
		}
		return cmd.completer(line[len(cmd.prefix):])
	}
	return contextCommand, strings.TrimSpace(line)
}

// completeColumnRef completes "table." to the table's columns, and anything
// else to table names and functions.
func (c *replCompleter) completeColumnRef(prefix string) []string {
	if table, _, ok := strings.Cut(prefix, "."); ok {
		candidates := []string{table + ".*"}
		for _, col := range c.sess.schemaColumns(table) {
			candidates = append(candidates, table+"."+col)
		}
		return filterPrefix(candidates, prefix)
	}
	names := append([]string(nil), c.sess.schemaTables()...)
	sort.Strings(names)
	return append(filterPrefix(names, prefix), filterPrefix(functionNames, prefix)...)
}

// completeTableArgs completes the first word as a table name.
func completeTableArgs(args string) (completionContext, string) {
	if strings.Contains(args, " ") {
		return contextNone, ""
	}
	return contextTableName, args
}

// completeColumnArgs completes the word under the cursor as a column ref.
func completeColumnArgs(args string) (completionContext, string) {
	if strings.HasSuffix(args, " ") || strings.HasSuffix(args, ",") {
		return contextColumnRef, ""
	}
	return contextColumnRef, lastToken(args)
}

func completeDialectArgs(args string) (completionContext, string) {
	return contextDialect, strings.TrimSpace(args)
}

// filterPrefix returns items that start with prefix, case-insensitively.
func filterPrefix(items []string, prefix string) []string {
	lowerPrefix := strings.ToLower(prefix)
	var result []string
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), lowerPrefix) {
			result = append(result, item)
		}
	}
	return result
}

// lastToken returns the text after the last space, tab or comma.
func lastToken(s string) string {
	if i := strings.LastIndexAny(s, " \t,"); i >= 0 {
		return s[i+1:]
	}
	return s
}
