// Package quoting provides identifier quoting and literal escaping shared by
// the dialect visitors.
package quoting

import (
	"encoding/hex"
	"strings"
)

// DoubleQuote quotes an identifier with double quotes (PostgreSQL, SQLite, ANSI SQL).
// Embedded double quotes are doubled.
func DoubleQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Backtick quotes an identifier with backticks (MySQL).
// Embedded backticks are doubled.
func Backtick(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

// EscapeString escapes the body of a string literal for dialects that honor
// backslash escapes: single quotes and backslashes are doubled.
func EscapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteString returns s as a complete single-quoted SQL string literal with
// backslashes escaped (generic SQL, MySQL).
func QuoteString(s string) string {
	return "'" + EscapeString(s) + "'"
}

// QuoteStandardString returns s as a standard SQL string literal where only
// single quotes are doubled. Backslashes are ordinary characters in SQLite
// and in PostgreSQL with standard_conforming_strings on.
func QuoteStandardString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// HexBlob renders b as an SQL standard hex blob literal: X'0aff'.
func HexBlob(b []byte) string {
	return "X'" + hex.EncodeToString(b) + "'"
}

// ByteaBlob renders b as a PostgreSQL bytea literal in hex format.
func ByteaBlob(b []byte) string {
	return `'\x` + hex.EncodeToString(b) + `'::bytea`
}
