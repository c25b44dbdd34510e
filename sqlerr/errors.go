// Package sqlerr defines the error kinds reported while building and
// rendering SQL. Every failure is detected before any SQL is emitted.
package sqlerr

import "errors"

// Sentinel errors. Builders and visitors wrap them with fmt.Errorf("%w: ...")
// so the Is* helpers keep working on the detailed error.
var (
	// ErrUnsupportedLiteral is returned when a value has no SQL literal form.
	ErrUnsupportedLiteral = errors.New("gosequel: unsupported literal")

	// ErrInvalidExpressionType is returned when an operator is applied to an
	// expression of the wrong category, such as arithmetic on a boolean.
	ErrInvalidExpressionType = errors.New("gosequel: invalid expression type")

	// ErrNoExistingFilter is returned by Or/And/Invert on an unfiltered dataset.
	ErrNoExistingFilter = errors.New("gosequel: no existing filter")

	// ErrRequiresGrouping is returned by Having on an ungrouped dataset.
	ErrRequiresGrouping = errors.New("gosequel: having requires grouping")

	// ErrInvalidOperation is returned when a statement cannot be built from
	// the dataset's shape (update of a grouped dataset, insert from a query
	// block, a non-positive limit and so on).
	ErrInvalidOperation = errors.New("gosequel: invalid operation")

	// ErrMissingSource is returned when a SELECT has nothing to select from.
	ErrMissingSource = errors.New("gosequel: no source specified for query")

	// ErrUnsupportedOperation is returned when the active dialect lacks a
	// capability, for example regular expression matching.
	ErrUnsupportedOperation = errors.New("gosequel: operation not supported by dialect")

	// ErrNoRows is returned by single-row fetches that match nothing.
	ErrNoRows = errors.New("gosequel: no rows in result set")
)

// IsUnsupportedLiteralErr returns true if err is or wraps ErrUnsupportedLiteral.
func IsUnsupportedLiteralErr(err error) bool {
	return errors.Is(err, ErrUnsupportedLiteral)
}

// IsInvalidExpressionTypeErr returns true if err is or wraps ErrInvalidExpressionType.
func IsInvalidExpressionTypeErr(err error) bool {
	return errors.Is(err, ErrInvalidExpressionType)
}

// IsNoExistingFilterErr returns true if err is or wraps ErrNoExistingFilter.
func IsNoExistingFilterErr(err error) bool {
	return errors.Is(err, ErrNoExistingFilter)
}

// IsRequiresGroupingErr returns true if err is or wraps ErrRequiresGrouping.
func IsRequiresGroupingErr(err error) bool {
	return errors.Is(err, ErrRequiresGrouping)
}

// IsInvalidOperationErr returns true if err is or wraps ErrInvalidOperation.
func IsInvalidOperationErr(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsMissingSourceErr returns true if err is or wraps ErrMissingSource.
func IsMissingSourceErr(err error) bool {
	return errors.Is(err, ErrMissingSource)
}

// IsUnsupportedOperationErr returns true if err is or wraps ErrUnsupportedOperation.
func IsUnsupportedOperationErr(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// IsNoRowsErr returns true if err is or wraps ErrNoRows.
func IsNoRowsErr(err error) bool {
	return errors.Is(err, ErrNoRows)
}
