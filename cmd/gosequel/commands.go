package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bawdo/gosequel/dataset"
	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/plugins/softdelete"
	"github.com/bawdo/gosequel/visitors"
)

// commandEntry maps a REPL prefix to its handler and optional tab-completer.
// A prefix ending in a space takes arguments; any other prefix must match
// the whole line.
type commandEntry struct {
	prefix    string
	handler   func(args string) error
	completer func(args string) (completionContext, string)
	hidden    bool
}

// initCommands builds the command registry sorted by prefix length
// descending so the longest prefix wins.
func (s *Session) initCommands() {
	s.commands = []commandEntry{
		// --- display ---
		{prefix: "sql", handler: func(_ string) error { return s.cmdSQL() }},
		{prefix: "pretty", handler: func(_ string) error { return s.cmdPretty() }},
		{prefix: "params", handler: func(_ string) error { return s.cmdParams() }},
		{prefix: "help", handler: func(_ string) error { s.cmdHelp(); return nil }},

		// --- history ---
		{prefix: "undo", handler: func(_ string) error { return s.cmdUndo() }},
		{prefix: "reset", handler: func(_ string) error { return s.cmdReset() }},

		// --- query building ---
		{prefix: "from ", handler: s.cmdFrom, completer: completeTableArgs},
		{prefix: "select ", handler: s.cmdSelect, completer: completeColumnArgs},
		{prefix: "distinct", handler: func(_ string) error {
			return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.Distinct() })
		}},
		{prefix: "where ", handler: s.filter((*dataset.Dataset).Where), completer: completeColumnArgs},
		{prefix: "filter ", handler: s.filter((*dataset.Dataset).Where), completer: completeColumnArgs, hidden: true},
		{prefix: "and ", handler: s.filter((*dataset.Dataset).And), completer: completeColumnArgs},
		{prefix: "or ", handler: s.filter((*dataset.Dataset).Or), completer: completeColumnArgs},
		{prefix: "exclude ", handler: s.filter((*dataset.Dataset).Exclude), completer: completeColumnArgs},
		{prefix: "having ", handler: s.filter((*dataset.Dataset).Having), completer: completeColumnArgs},
		{prefix: "invert", handler: func(_ string) error { return s.derive((*dataset.Dataset).Invert) }},
		{prefix: "unfiltered", handler: func(_ string) error { return s.with((*dataset.Dataset).Unfiltered) }},
		{prefix: "group ", handler: s.cmdGroup, completer: completeColumnArgs},
		{prefix: "group_and_count ", handler: s.cmdGroupAndCount, completer: completeColumnArgs},
		{prefix: "ungrouped", handler: func(_ string) error { return s.with((*dataset.Dataset).Ungrouped) }},
		{prefix: "order ", handler: s.cmdOrder, completer: completeColumnArgs},
		{prefix: "reverse", handler: func(_ string) error { return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.Reverse() }) }},
		{prefix: "unordered", handler: func(_ string) error { return s.with((*dataset.Dataset).Unordered) }},
		{prefix: "limit ", handler: s.cmdLimit},
		{prefix: "offset ", handler: s.cmdOffset},
		{prefix: "unlimited", handler: func(_ string) error { return s.with((*dataset.Dataset).Unlimited) }},
		{prefix: "from_self", handler: func(_ string) error { return s.with((*dataset.Dataset).FromSelf) }},
		{prefix: "for update", handler: func(_ string) error { return s.with((*dataset.Dataset).ForUpdate) }},
		{prefix: "for share", handler: func(_ string) error { return s.with((*dataset.Dataset).ForShare) }},

		// --- joins ---
		{prefix: "join ", handler: s.join(nodes.InnerJoin), completer: completeTableArgs},
		{prefix: "inner join ", handler: s.join(nodes.InnerJoin), completer: completeTableArgs, hidden: true},
		{prefix: "left join ", handler: s.join(nodes.LeftOuterJoin), completer: completeTableArgs},
		{prefix: "right join ", handler: s.join(nodes.RightOuterJoin), completer: completeTableArgs},
		{prefix: "full join ", handler: s.join(nodes.FullOuterJoin), completer: completeTableArgs},
		{prefix: "cross join ", handler: s.join(nodes.CrossJoin), completer: completeTableArgs},
		{prefix: "natural join ", handler: s.join(nodes.NaturalJoin), completer: completeTableArgs},

		// --- rendering ---
		{prefix: "dialect ", handler: s.cmdDialect, completer: completeDialectArgs},
		{prefix: "dialect", handler: func(_ string) error { return s.cmdDialect("") }},
		{prefix: "quote ", handler: s.cmdQuote},
		{prefix: "softdelete ", handler: s.cmdSoftDelete},
		{prefix: "softdelete", handler: func(_ string) error { return s.cmdSoftDelete("") }},

		// --- database ---
		{prefix: "connect ", handler: s.connect},
		{prefix: "disconnect", handler: func(_ string) error { return s.cmdDisconnect() }},
		{prefix: "tables", handler: func(_ string) error { return s.cmdTables() }},
		{prefix: "columns ", handler: s.cmdColumns, completer: completeTableArgs},
		{prefix: "run", handler: func(_ string) error { return s.cmdRun() }},
		{prefix: "count", handler: func(_ string) error { return s.cmdCount() }},
		{prefix: "first", handler: func(_ string) error { return s.cmdFetch((*dataset.Dataset).First) }},
		{prefix: "last", handler: func(_ string) error { return s.cmdFetch((*dataset.Dataset).Last) }},
		{prefix: "page ", handler: s.cmdPage},
	}

	sort.SliceStable(s.commands, func(i, j int) bool {
		return len(s.commands[i].prefix) > len(s.commands[j].prefix)
	})
}

// commandNames derives the command names for tab completion.
func (s *Session) commandNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cmd := range s.commands {
		if cmd.hidden {
			continue
		}
		name := strings.TrimRight(cmd.prefix, " ")
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	// exit/quit are handled by the REPL loop, not Execute().
	names = append(names, "exit", "quit")
	sort.Strings(names)
	return names
}

// --- builders ---

func (s *Session) cmdFrom(args string) error {
	tables := parseColumns(args)
	if len(tables) == 0 {
		return errors.New("usage: from <table>[, <table> ...]")
	}
	s.push(dataset.From(tables...))
	return nil
}

func (s *Session) cmdSelect(args string) error {
	cols := parseColumns(args)
	if len(cols) == 0 {
		return errors.New("usage: select <col>[, <col> ...]")
	}
	return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.Select(cols...) })
}

// filter adapts a dataset filter method to a command handler.
func (s *Session) filter(fn func(*dataset.Dataset, any, ...any) (*dataset.Dataset, error)) func(string) error {
	return func(args string) error {
		if args == "" {
			return errors.New("usage: <filter command> <condition>")
		}
		return s.derive(func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return fn(d, filterArg(args))
		})
	}
}

func (s *Session) cmdGroup(args string) error {
	cols := parseColumns(args)
	if len(cols) == 0 {
		return errors.New("usage: group <col>[, <col> ...]")
	}
	return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.Group(cols...) })
}

func (s *Session) cmdGroupAndCount(args string) error {
	cols := parseColumns(args)
	if len(cols) == 0 {
		return errors.New("usage: group_and_count <col>[, <col> ...]")
	}
	return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.GroupAndCount(cols...) })
}

func (s *Session) cmdOrder(args string) error {
	order, err := parseOrder(args)
	if err != nil {
		return err
	}
	return s.with(func(d *dataset.Dataset) *dataset.Dataset { return d.Order(order...) })
}

func (s *Session) cmdLimit(args string) error {
	n, err := parseInts(args, 2, "usage: limit <n> [offset]")
	if err != nil {
		return err
	}
	return s.derive(func(d *dataset.Dataset) (*dataset.Dataset, error) {
		return d.Limit(n[0], n[1:]...)
	})
}

func (s *Session) cmdOffset(args string) error {
	n, err := parseInts(args, 1, "usage: offset <n>")
	if err != nil {
		return err
	}
	return s.derive(func(d *dataset.Dataset) (*dataset.Dataset, error) { return d.Offset(n[0]) })
}

// join parses "<table> [as <alias>] [on <condition> | using <key> | <key>]".
// A key joins <table>.<key> to the previous table's id.
func (s *Session) join(jt nodes.JoinType) func(string) error {
	return func(args string) error {
		head, on := args, ""
		if i := strings.Index(strings.ToLower(args), " on "); i >= 0 {
			head, on = args[:i], strings.TrimSpace(args[i+4:])
		}
		fields := strings.Fields(head)
		if len(fields) == 0 {
			return errors.New("usage: join <table> [as <alias>] [on <condition> | using <key>]")
		}
		table := fields[0]
		fields = fields[1:]

		var alias []string
		if len(fields) >= 2 && strings.EqualFold(fields[0], "as") {
			alias = []string{fields[1]}
			fields = fields[2:]
		}

		var cond any
		switch {
		case on != "":
			if n, err := parseCondition(on); err == nil {
				cond = n
			} else {
				cond = nodes.NewGrouping(nodes.NewSqlLiteral(on))
			}
		case len(fields) == 2 && strings.EqualFold(fields[0], "using"):
			cond = fields[1]
		case len(fields) == 1:
			cond = fields[0]
		case len(fields) != 0:
			return fmt.Errorf("unexpected %q in join", strings.Join(fields, " "))
		}
		if cond != nil && (jt == nodes.CrossJoin || jt == nodes.NaturalJoin) {
			return fmt.Errorf("%s takes no join condition", jt)
		}
		return s.with(func(d *dataset.Dataset) *dataset.Dataset {
			return d.JoinTable(jt, table, cond, alias...)
		})
	}
}

// cmdVerb routes order_by_<col>, filter_by_<col> <v>, find_by_<col> <v> and
// the other column verbs.
func (s *Session) cmdVerb(verb dataset.Verb, col, args string) error {
	vals, err := parseArgs(args)
	if err != nil {
		return err
	}
	if !verb.IsFetch() {
		return s.derive(func(d *dataset.Dataset) (*dataset.Dataset, error) {
			return d.ByColumn(verb, col, vals...)
		})
	}
	if err := s.requireDB(); err != nil {
		return err
	}
	ds, err := s.current()
	if err != nil {
		return err
	}
	row, err := ds.FetchByColumn(s.ctx, verb, col, vals...)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, formatRows([]dataset.Row{row}))
	return nil
}

// --- history and display ---

func (s *Session) cmdUndo() error {
	if len(s.history) == 0 {
		return errors.New("nothing to undo")
	}
	s.ds = s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	if s.ds == nil {
		_, _ = fmt.Fprintln(s.out, "  Query cleared")
		return nil
	}
	s.printSQL()
	return nil
}

func (s *Session) cmdReset() error {
	s.ds = nil
	s.history = nil
	_, _ = fmt.Fprintln(s.out, "  Query cleared")
	return nil
}

func (s *Session) cmdSQL() error {
	ds, err := s.current()
	if err != nil {
		return err
	}
	sql, err := ds.SelectSQL()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %s;\n", sql)
	return nil
}

func (s *Session) cmdPretty() error {
	ds, err := s.current()
	if err != nil {
		return err
	}
	sql, err := ds.FormattedSQL()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %s;\n", strings.ReplaceAll(sql, "\n", "\n  "))
	return nil
}

func (s *Session) cmdParams() error {
	ds, err := s.current()
	if err != nil {
		return err
	}
	sql, params, err := ds.ToSQL()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %s;\n", sql)
	for i, p := range params {
		_, _ = fmt.Fprintf(s.out, "  -- $%d = %#v\n", i+1, p)
	}
	return nil
}

func (s *Session) cmdDialect(args string) error {
	if args == "" {
		_, _ = fmt.Fprintf(s.out, "  Dialect: %s\n", s.dialect)
		return nil
	}
	d, err := visitors.ParseDialect(args)
	if err != nil {
		return err
	}
	if s.db != nil && d != s.db.Dialect() {
		_, _ = fmt.Fprintf(s.out, "  Warning: connected to %s but rendering %s\n", s.db.Dialect(), d)
	}
	s.dialect = d
	_, _ = fmt.Fprintf(s.out, "  Dialect: %s\n", d)
	s.printSQL()
	return nil
}

func (s *Session) cmdQuote(args string) error {
	var on bool
	switch strings.ToLower(args) {
	case "on", "true", "yes":
		on = true
	case "off", "false", "no":
	case "default":
		s.quote = nil
		_, _ = fmt.Fprintln(s.out, "  Identifier quoting: dialect default")
		return nil
	default:
		return errors.New("usage: quote on|off|default")
	}
	s.quote = &on
	_, _ = fmt.Fprintf(s.out, "  Identifier quoting: %s\n", args)
	s.printSQL()
	return nil
}

// cmdSoftDelete configures the soft-delete plugin:
//
//	softdelete                          deleted_at on every table
//	softdelete removed_at               custom column
//	softdelete removed_at on users posts
//	softdelete users.deleted_at, posts.removed_at
//	softdelete off
func (s *Session) cmdSoftDelete(args string) error {
	rest := strings.TrimSpace(args)
	cfg := &softDeleteConfig{}
	lower := strings.ToLower(rest)

	switch {
	case lower == "off":
		s.softDelete = nil
		_, _ = fmt.Fprintln(s.out, "  Soft-delete disabled")
		s.printSQL()
		return nil

	case strings.Contains(rest, "."):
		var pairs []string
		for _, pair := range strings.Split(rest, ",") {
			pair = strings.TrimSpace(pair)
			if pair == "" {
				continue
			}
			table, col, ok := strings.Cut(pair, ".")
			if !ok || table == "" || col == "" {
				return fmt.Errorf("invalid table.column pair: %q", pair)
			}
			cfg.opts = append(cfg.opts, softdelete.WithTableColumn(table, col))
			pairs = append(pairs, pair)
		}
		sort.Strings(pairs)
		cfg.status = "per-table columns: " + strings.Join(pairs, ", ")

	case strings.Contains(lower, " on "):
		idx := strings.Index(lower, " on ")
		col := strings.TrimSpace(rest[:idx])
		tables := strings.Fields(rest[idx+4:])
		if col == "" || len(tables) == 0 {
			return errors.New("usage: softdelete <column> on <table1> [table2 ...]")
		}
		cfg.opts = append(cfg.opts, softdelete.WithColumn(col), softdelete.WithTables(tables...))
		cfg.status = fmt.Sprintf("column: %s, tables: %s", col, strings.Join(tables, ", "))

	case rest != "":
		col := strings.Fields(rest)[0]
		cfg.opts = append(cfg.opts, softdelete.WithColumn(col))
		cfg.status = "column: " + col

	default:
		cfg.status = "column: " + softdelete.DefaultColumn
	}

	s.softDelete = cfg
	_, _ = fmt.Fprintf(s.out, "  Soft-delete enabled (%s)\n", cfg.status)
	s.printSQL()
	return nil
}

// --- database ---

func (s *Session) cmdDisconnect() error {
	if err := s.requireDB(); err != nil {
		return err
	}
	if err := s.Close(); err != nil {
		return err
	}
	s.schema = schemaCache{columns: make(map[string][]string)}
	_, _ = fmt.Fprintln(s.out, "  Disconnected")
	return nil
}

func (s *Session) cmdTables() error {
	if err := s.requireDB(); err != nil {
		return err
	}
	tables, err := s.db.Tables(s.ctx)
	if err != nil {
		return err
	}
	s.schema.tables = tables
	if len(tables) == 0 {
		_, _ = fmt.Fprintln(s.out, "  No tables")
		return nil
	}
	for _, t := range tables {
		_, _ = fmt.Fprintf(s.out, "  %s\n", t)
	}
	return nil
}

func (s *Session) cmdColumns(args string) error {
	if err := s.requireDB(); err != nil {
		return err
	}
	cols, err := s.db.Columns(s.ctx, args)
	if err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("no columns found for %q", args)
	}
	s.schema.columns[args] = cols
	_, _ = fmt.Fprintf(s.out, "  %s\n", strings.Join(cols, ", "))
	return nil
}

func (s *Session) connected() (*dataset.Dataset, error) {
	if err := s.requireDB(); err != nil {
		return nil, err
	}
	return s.current()
}

func (s *Session) cmdRun() error {
	ds, err := s.connected()
	if err != nil {
		return err
	}
	var rows []dataset.Row
	err = ds.Each(s.ctx, func(r dataset.Row) error {
		if len(rows) == maxRows {
			return errTruncated
		}
		rows = append(rows, r)
		return nil
	})
	if err != nil && !errors.Is(err, errTruncated) {
		return err
	}
	_, _ = fmt.Fprint(s.out, formatRows(rows))
	if err != nil {
		_, _ = fmt.Fprintf(s.out, "(truncated at %d rows)\n", maxRows)
	}
	return nil
}

func (s *Session) cmdCount() error {
	ds, err := s.connected()
	if err != nil {
		return err
	}
	n, err := ds.Count(s.ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(s.out, "  %d\n", n)
	return nil
}

func (s *Session) cmdFetch(fetch func(*dataset.Dataset, context.Context) (dataset.Row, error)) error {
	ds, err := s.connected()
	if err != nil {
		return err
	}
	row, err := fetch(ds, s.ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, formatRows([]dataset.Row{row}))
	return nil
}

// cmdPage runs one page of the current dataset: page <n> [size].
func (s *Session) cmdPage(args string) error {
	n, err := parseInts(args, 2, "usage: page <n> [size]")
	if err != nil {
		return err
	}
	size := defaultPageSize
	if len(n) == 2 {
		size = n[1]
	}
	ds, err := s.connected()
	if err != nil {
		return err
	}
	page, err := ds.PaginateContext(s.ctx, n[0], size)
	if err != nil {
		return err
	}
	rows, err := page.All(s.ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(s.out, formatRows(rows))
	first, last := page.CurrentPageRecordRange()
	_, _ = fmt.Fprintf(s.out, "Page %d of %d (records %d-%d of %d)\n",
		page.CurrentPage, page.PageCount, first, last, page.RecordCount)
	return nil
}

func (s *Session) cmdHelp() {
	_, _ = fmt.Fprintln(s.out, `
  Query Building:
    from <table>[, ...]        Start a new query
    select <cols>              Set projections (col, table.col, *, raw SQL)
    distinct                   SELECT DISTINCT
    where <condition>          AND a condition into WHERE
    and <condition>            AND into the current filter (HAVING once set)
    or <condition>             OR with the current filter
    exclude <condition>        AND NOT (condition)
    invert                     Negate the whole filter
    unfiltered                 Drop WHERE and HAVING
    group <cols>               GROUP BY
    group_and_count <cols>     GROUP BY with COUNT(*) AS count
    ungrouped                  Drop GROUP BY and HAVING
    having <condition>         AND into HAVING (needs group)
    order <col> [asc|desc],..  Replace ORDER BY
    reverse                    Reverse the order
    unordered                  Drop ORDER BY
    limit <n> [offset]         LIMIT and OFFSET
    offset <n>                 OFFSET
    unlimited                  Drop LIMIT and OFFSET
    from_self                  Wrap the query as a subquery
    for update | for share     Row locks
    [left|right|full] join <table> [as <alias>] [on <cond> | using <key>]
    cross join <table> | natural join <table>

  Column verbs:
    order_by_<col>             ORDER BY col
    filter_by_<col> <value>    WHERE col = value
    group_by_<col>             GROUP BY col
    count_by_<col>             Rows per distinct col value
    find_by_<col> <value>      First row where col = value (connected)
    first_by_<col>             First row ordered by col (connected)
    last_by_<col>              Last row ordered by col (connected)

  Conditions:
    col = 1, col != 'x', col >= other_col, col like 'a%', col is [not] null,
    col [not] in (1, 2), joined with and/or. Anything else is sent as raw SQL.

  Rendering:
    sql                        Show the SELECT
    pretty                     Show the SELECT with one clause per line
    params                     Show the SELECT with bind parameters
    dialect [name]             Show or set dialect (generic, postgres, mysql, sqlite)
    quote on|off|default       Identifier quoting
    softdelete [col] [on <tables>] | <t.col>, ... | off

  Database:
    connect [engine] <dsn>     Connect (engine defaults to the dialect)
    disconnect                 Close the connection
    tables                     List tables
    columns <table>            List columns
    run                        Execute and print rows
    count                      COUNT(*) of the query
    first | last               Fetch one row
    page <n> [size]            Fetch one page

  Session:
    undo                       Revert the last change
    reset                      Clear the query
    help                       Show this help
    exit | quit                Leave the REPL`)
}
