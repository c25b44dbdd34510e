package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/bawdo/gosequel/sqlerr"
	"github.com/bawdo/gosequel/visitors"
)

// Tables lists the user tables of the connected database in name order.
func (db *DB) Tables(ctx context.Context) ([]string, error) {
	var query string
	switch db.dialect {
	case visitors.Postgres:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case visitors.MySQL:
		query = "SELECT table_name FROM information_schema.tables WHERE table_schema = DATABASE() ORDER BY table_name"
	case visitors.SQLite:
		query = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return nil, fmt.Errorf("%w: schema introspection for %s", sqlerr.ErrUnsupportedOperation, db.dialect)
	}
	return db.stringColumn(ctx, query)
}

// Columns lists the columns of table in declaration order.
func (db *DB) Columns(ctx context.Context, table string) ([]string, error) {
	var query string
	switch db.dialect {
	case visitors.Postgres:
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1 ORDER BY ordinal_position"
	case visitors.MySQL:
		query = "SELECT column_name FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? ORDER BY ordinal_position"
	case visitors.SQLite:
		query = "SELECT name FROM pragma_table_info(?) ORDER BY cid"
	default:
		return nil, fmt.Errorf("%w: schema introspection for %s", sqlerr.ErrUnsupportedOperation, db.dialect)
	}
	return db.stringColumn(ctx, query, table)
}

func (db *DB) stringColumn(ctx context.Context, query string, params ...any) ([]string, error) {
	rows, err := db.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("introspect: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SanitizeDSN masks the password of a URL-style or MySQL-style DSN.
func SanitizeDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err == nil && u.Scheme != "" && u.User != nil {
		if _, hasPass := u.User.Password(); hasPass {
			// Rebuilt by hand so the mask is not percent-encoded.
			masked := u.Scheme + "://" + u.User.Username() + ":****@" + u.Host + u.Path
			if u.RawQuery != "" {
				masked += "?" + u.RawQuery
			}
			return masked
		}
		return dsn
	}

	// user:pass@tcp(host)/db
	if at := strings.Index(dsn, "@"); at > 0 {
		userPass := dsn[:at]
		if colon := strings.Index(userPass, ":"); colon >= 0 {
			return userPass[:colon+1] + "****" + dsn[at:]
		}
	}
	return dsn
}
