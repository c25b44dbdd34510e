package visitors

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/bawdo/gosequel/nodes"
	"github.com/bawdo/gosequel/sqlerr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// literalSQL encodes a Go value as SQL. In parameterized mode scalar values
// become bind placeholders; NULL, collections and queries are always
// rendered in place. Unsupported values record ErrUnsupportedLiteral.
func (b *baseVisitor) literalSQL(val any) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case nodes.Query:
		return "(" + v.Accept(b.outer) + ")"
	case nodes.Node:
		return v.Accept(b.outer)
	case nodes.Range, *nodes.Range:
		return b.unsupportedLiteral(val)
	}

	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "NULL"
		}
		return b.literalSQL(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() != reflect.Uint8 {
			return b.collectionSQL(rv)
		}
	}

	sql, ok := b.scalarSQL(val)
	if !ok {
		return b.unsupportedLiteral(val)
	}
	if b.parameterize {
		return b.bind(bindValue(val))
	}
	return sql
}

func (b *baseVisitor) unsupportedLiteral(val any) string {
	return b.fail(fmt.Errorf("%w: %T", sqlerr.ErrUnsupportedLiteral, val))
}

// collectionSQL renders a slice or array as (v1, v2, ...). An empty
// collection renders (NULL) so IN () is never produced.
func (b *baseVisitor) collectionSQL(rv reflect.Value) string {
	if rv.Len() == 0 {
		return "(NULL)"
	}
	items := make([]string, rv.Len())
	for i := range items {
		items[i] = b.literalSQL(rv.Index(i).Interface())
	}
	return "(" + strings.Join(items, ", ") + ")"
}

// scalarSQL is the inline encoding of a single value.
func (b *baseVisitor) scalarSQL(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return b.quoteString(v), true
	case bool:
		if v {
			return b.trueToken, true
		}
		return b.falseToken, true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		return formatFloat(v, 64)
	case decimal.Decimal:
		return withFraction(v.String()), true
	case time.Time:
		return b.timestampPrefix + b.quoteString(v.Format(b.timestampLayout)), true
	case nodes.Date:
		return b.datePrefix + b.quoteString(v.String()), true
	case []byte:
		return b.blob(v), true
	case uuid.UUID:
		return b.quoteString(v.String()), true
	}
	if base, ok := underlyingScalar(val); ok {
		return b.scalarSQL(base)
	}
	return "", false
}

// underlyingScalar converts a value of a named string, bool or numeric type
// such as `type Status string` to its builtin equivalent.
func underlyingScalar(val any) (any, bool) {
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Bool:
		return rv.Bool(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Float32:
		return float32(rv.Float()), true
	case reflect.Float64:
		return rv.Float(), true
	}
	return nil, false
}

// formatFloat renders f in plain decimal form with a fractional part.
// NaN and the infinities have no portable literal.
func formatFloat(f float64, bits int) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return withFraction(strconv.FormatFloat(f, 'f', -1, bits)), true
}

func withFraction(s string) string {
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// bindValue converts values without a database/sql representation into one
// drivers accept.
func bindValue(val any) any {
	switch v := val.(type) {
	case nodes.Date:
		return time.Date(v.Year, v.Month, v.Day, 0, 0, 0, 0, time.UTC)
	case string, bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return val
	}
	if base, ok := underlyingScalar(val); ok {
		return base
	}
	return val
}
