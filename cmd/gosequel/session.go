package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bawdo/gosequel/database"
	"github.com/bawdo/gosequel/dataset"
	"github.com/bawdo/gosequel/plugins/softdelete"
	"github.com/bawdo/gosequel/visitors"
)

var (
	errNoQuery      = errors.New("no query defined (use 'from <table>' first)")
	errNotConnected = errors.New("not connected (use 'connect [engine] <dsn>' first)")
)

// softDeleteConfig is the REPL's soft-delete plugin state.
type softDeleteConfig struct {
	opts   []softdelete.Option
	status string
}

// schemaCache holds introspected names for tab completion.
type schemaCache struct {
	tables  []string
	columns map[string][]string
}

// Session holds the REPL state: the current dataset with its undo history,
// the render settings and the optional database connection.
type Session struct {
	ctx        context.Context
	ds         *dataset.Dataset
	history    []*dataset.Dataset
	dialect    visitors.Dialect
	quote      *bool
	softDelete *softDeleteConfig
	db         *database.DB
	dsn        string
	schema     schemaCache
	commands   []commandEntry
	logger     *slog.Logger
	out        io.Writer
}

// NewSession creates a session rendering in dialect.
func NewSession(ctx context.Context, dialect visitors.Dialect, out io.Writer, logger *slog.Logger) *Session {
	s := &Session{
		ctx:     ctx,
		dialect: dialect,
		logger:  logger,
		out:     out,
	}
	s.schema.columns = make(map[string][]string)
	s.initCommands()
	return s
}

// Execute parses and runs a single REPL command.
func (s *Session) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	lower := strings.ToLower(line)

	for _, cmd := range s.commands {
		if strings.HasSuffix(cmd.prefix, " ") {
			if strings.HasPrefix(lower, cmd.prefix) {
				return cmd.handler(strings.TrimSpace(line[len(cmd.prefix):]))
			}
		} else if lower == cmd.prefix {
			return cmd.handler("")
		}
	}

	word := strings.Fields(line)[0]
	if verb, col, err := dataset.ParseVerb(word); err == nil {
		return s.cmdVerb(verb, col, strings.TrimSpace(line[len(word):]))
	}
	return fmt.Errorf("unknown command: %s (type 'help' for commands)", word)
}

// current is the dataset as it will be rendered or run: the built query plus
// the session's dialect, quoting, plugins and connection.
func (s *Session) current() (*dataset.Dataset, error) {
	if s.ds == nil {
		return nil, errNoQuery
	}
	ds := s.ds.WithDialect(s.dialect)
	if s.quote != nil {
		ds = ds.QuoteIdentifiers(*s.quote)
	}
	if s.softDelete != nil {
		ds = ds.Use(softdelete.New(s.softDelete.opts...))
	}
	if s.db != nil {
		ds = ds.WithRowSource(s.db)
	}
	return ds, nil
}

// push records ds as the new current dataset and echoes its SQL.
func (s *Session) push(ds *dataset.Dataset) {
	s.history = append(s.history, s.ds)
	s.ds = ds
	s.printSQL()
}

// derive applies fn to the current dataset and pushes the result.
func (s *Session) derive(fn func(*dataset.Dataset) (*dataset.Dataset, error)) error {
	if s.ds == nil {
		return errNoQuery
	}
	next, err := fn(s.ds)
	if err != nil {
		return err
	}
	s.push(next)
	return nil
}

// with is derive for operations that cannot fail.
func (s *Session) with(fn func(*dataset.Dataset) *dataset.Dataset) error {
	return s.derive(func(d *dataset.Dataset) (*dataset.Dataset, error) { return fn(d), nil })
}

func (s *Session) printSQL() {
	ds, err := s.current()
	if err != nil {
		return
	}
	sql, err := ds.SelectSQL()
	if err != nil {
		_, _ = fmt.Fprintf(s.out, "  (not renderable yet: %v)\n", err)
		return
	}
	_, _ = fmt.Fprintf(s.out, "  %s\n", sql)
}

func (s *Session) requireDB() error {
	if s.db == nil {
		return errNotConnected
	}
	return nil
}

// Close releases the database connection, if any.
func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// --- connection ---

// connect opens a connection. args is "<dsn>" (engine from the session
// dialect) or "<engine> <dsn>".
func (s *Session) connect(args string) error {
	if s.db != nil {
		return fmt.Errorf("already connected to %s (use 'disconnect' first)", database.SanitizeDSN(s.dsn))
	}
	engine, dsn := s.dialect.String(), args
	if fields := strings.Fields(args); len(fields) == 2 {
		if _, err := visitors.ParseDialect(fields[0]); err == nil {
			engine, dsn = fields[0], fields[1]
		}
	}
	if dsn == "" {
		return errors.New("usage: connect [engine] <dsn>")
	}

	db, err := database.Open(s.ctx, engine, dsn, database.WithLogger(s.logger))
	if err != nil {
		return err
	}
	s.db = db
	s.dsn = dsn
	s.dialect = db.Dialect()
	s.schema = schemaCache{columns: make(map[string][]string)}
	if tables, err := db.Tables(s.ctx); err == nil {
		s.schema.tables = tables
	} else {
		s.logger.Warn("schema introspection failed", "error", err)
	}
	_, _ = fmt.Fprintf(s.out, "  Connected to %s (%s)\n", database.SanitizeDSN(dsn), s.dialect)
	return nil
}

func (s *Session) schemaTables() []string {
	return s.schema.tables
}

func (s *Session) schemaColumns(table string) []string {
	if s.db == nil {
		return nil
	}
	if cols, ok := s.schema.columns[table]; ok {
		return cols
	}
	cols, err := s.db.Columns(s.ctx, table)
	if err != nil {
		return nil
	}
	s.schema.columns[table] = cols
	return cols
}

// --- values ---

// parseArgs reads whitespace-separated literal values for verb commands.
func parseArgs(input string) ([]any, error) {
	var vals []any
	for _, tok := range tokenize(input) {
		if tok == "," {
			continue
		}
		v, err := parseValue(tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func parseInts(input string, n int, usage string) ([]int, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 || len(fields) > n {
		return nil, errors.New(usage)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", usage, f)
		}
		out[i] = v
	}
	return out, nil
}
