package rstate

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// =============================================================================
// Test Fragments
// =============================================================================

// color is a fragment compared by name only; shade stands in for cached
// derived data that does not take part in identity.
type color struct {
	name  string
	shade int
}

func (c color) Compare(o color) int { return strings.Compare(c.name, o.name) }
func (c color) Clone() color        { return c }

// palette has no Clone method, so tables deep-copy it reflectively.
type palette struct {
	Colors []string
}

func (p palette) Compare(o palette) int { return slices.Compare(p.Colors, o.Colors) }

// unstable never compares equal, not even to itself.
type unstable struct{ n int }

func (u unstable) Compare(unstable) int { return 1 }
func (u unstable) Clone() unstable      { return u }

// newColorTable creates a registry with one category and its color table.
func newColorTable(t testing.TB, opts ...TableOption[color]) *Table[color] {
	t.Helper()
	reg := NewRegistry()
	cat := reg.MustRegister("color")
	return NewTable(reg, cat, opts...)
}

// expectPanic fails the test unless fn panics with an error matching target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic with %v, got none", target)
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, target) {
			t.Errorf("expected panic with %v, got %v", target, r)
		}
	}()
	fn()
}
