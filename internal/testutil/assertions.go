// Package testutil provides shared test helpers for the gosequel project.
package testutil

import (
	"errors"
	"testing"

	"github.com/bawdo/gosequel/nodes"
	"github.com/google/go-cmp/cmp"
)

// AssertEqual checks that got == want and reports a descriptive error if not.
func AssertEqual[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("expected:\n  %v\ngot:\n  %v", want, got)
	}
}

// AssertDiff compares two values structurally and reports the diff.
func AssertDiff(t *testing.T, got, want any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

// render resets v, accepts node and returns the SQL and the recorded error.
func render(v nodes.Visitor, node nodes.Node) (string, error) {
	if p, ok := v.(nodes.Parameterizer); ok {
		p.Reset()
	}
	sql := node.Accept(v)
	if r, ok := v.(nodes.ErrorRecorder); ok {
		return sql, r.Err()
	}
	return sql, nil
}

// AssertSQL accepts a visitor and node, renders the SQL, and compares it with the expected string.
// A rendering error recorded by the visitor fails the test.
func AssertSQL(t *testing.T, v nodes.Visitor, node nodes.Node, expected string) {
	t.Helper()
	got, err := render(v, node)
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if got != expected {
		t.Errorf("expected:\n  %s\ngot:\n  %s", expected, got)
	}
}

// AssertRenderError renders node and checks that the visitor recorded an
// error matching target.
func AssertRenderError(t *testing.T, v nodes.Visitor, node nodes.Node, target error) {
	t.Helper()
	_, err := render(v, node)
	AssertErrorIs(t, err, target)
}

// AssertNoError fails the test if err is non-nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error but got nil")
	}
}

// AssertErrorIs fails the test unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}
