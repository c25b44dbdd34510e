// Package database adapts database/sql handles to the dataset row-source
// contract so datasets can be executed against PostgreSQL, MySQL or SQLite.
//
//	db, err := database.Open(ctx, "sqlite", ":memory:")
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	rows, err := db.From("items").Where("price > 10")
//	...
package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/bawdo/gosequel/dataset"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var driverName = map[visitors.Dialect]string{
	visitors.Postgres: "pgx",
	visitors.MySQL:    "mysql",
	visitors.SQLite:   "sqlite",
}

// DB is a row source over a *sql.DB bound to one dialect.
type DB struct {
	db      *sql.DB
	dialect visitors.Dialect
	logger  *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for executed statements.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) {
		if l != nil {
			db.logger = l
		}
	}
}

var _ dataset.RowSource = (*DB)(nil)

// New wraps an open handle.
func New(db *sql.DB, dialect visitors.Dialect, opts ...Option) *DB {
	d := &DB{
		db:      db,
		dialect: dialect,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open connects to the engine named by engine ("postgres", "mysql" or
// "sqlite") and verifies the connection.
func Open(ctx context.Context, engine, dsn string, opts ...Option) (*DB, error) {
	dialect, err := visitors.ParseDialect(engine)
	if err != nil {
		return nil, err
	}
	driver, ok := driverName[dialect]
	if !ok {
		return nil, fmt.Errorf("%w: no driver for engine %q", sqlerr.ErrUnsupportedOperation, engine)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// Every connection to :memory: gets its own empty database.
	if dialect == visitors.SQLite && isMemoryDSN(dsn) {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	d := New(sqlDB, dialect, opts...)
	d.logger.Debug("connected", "engine", dialect.String(), "dsn", SanitizeDSN(dsn))
	return d, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == "" || strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// Dialect reports the dialect datasets built from db render in.
func (db *DB) Dialect() visitors.Dialect { return db.dialect }

// SQLDB exposes the underlying handle.
func (db *DB) SQLDB() *sql.DB { return db.db }

func (db *DB) Close() error {
	return db.db.Close()
}

// From starts a dataset over sources bound to db.
func (db *DB) From(sources ...any) *dataset.Dataset {
	return dataset.New(db, db.dialect).From(sources...)
}

// Fetch starts a dataset over a raw SELECT bound to db.
func (db *DB) Fetch(sql string) *dataset.Dataset {
	return dataset.New(db, db.dialect).WithSQL(sql)
}

// Query runs a SELECT and returns a cursor of column-keyed rows.
func (db *DB) Query(ctx context.Context, query string) (dataset.Rows, error) {
	start := time.Now()
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		db.logger.Error("query failed", "sql", query, "error", err)
		return nil, fmt.Errorf("query: %w", err)
	}
	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("columns: %w", err)
	}
	return &sqlRows{rows: rows, columns: columns, sql: query, start: start, logger: db.logger}, nil
}

// Exec runs a statement that returns no rows.
func (db *DB) Exec(ctx context.Context, query string) (dataset.Result, error) {
	start := time.Now()
	res, err := db.db.ExecContext(ctx, query)
	if err != nil {
		db.logger.Error("exec failed", "sql", query, "error", err)
		return nil, fmt.Errorf("exec: %w", err)
	}
	affected, _ := res.RowsAffected()
	db.logger.Debug("exec", "sql", query, "duration", time.Since(start), "rows", affected)
	return res, nil
}

type sqlRows struct {
	rows    *sql.Rows
	columns []string
	sql     string
	start   time.Time
	count   int
	closed  bool
	logger  *slog.Logger
}

func (r *sqlRows) Next() bool {
	if r.rows.Next() {
		r.count++
		return true
	}
	return false
}

func (r *sqlRows) Row() (dataset.Row, error) {
	vals := make([]any, len(r.columns))
	ptrs := make([]any, len(r.columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := r.rows.Scan(ptrs...); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	row := make(dataset.Row, len(r.columns))
	for i, c := range r.columns {
		row[c] = vals[i]
	}
	return row, nil
}

func (r *sqlRows) Err() error {
	if err := r.rows.Err(); err != nil {
		return fmt.Errorf("rows: %w", err)
	}
	return nil
}

func (r *sqlRows) Close() error {
	if !r.closed {
		r.closed = true
		r.logger.Debug("query", "sql", r.sql, "duration", time.Since(r.start), "rows", r.count)
	}
	return r.rows.Close()
}
