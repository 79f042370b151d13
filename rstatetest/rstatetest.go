// Package rstatetest provides conformance checks for rstate fragment types.
package rstatetest

import (
	"testing"

	"github.com/gogpu/rstate"
)

// CheckFragment verifies that Compare is a total order over samples and
// that Clone, when implemented, yields a value comparing equal to the
// original.
//
// Every ordered pair and triple of samples is checked, so keep samples
// small (a few dozen values). Include values that differ only in fields
// Compare is meant to ignore; those must compare equal.
func CheckFragment[F rstate.Fragment[F]](t testing.TB, samples ...F) {
	t.Helper()

	for i, a := range samples {
		if c := a.Compare(a); c != 0 {
			t.Errorf("sample %d: Compare with itself = %d, want 0", i, c)
		}
		if cl, ok := any(a).(rstate.Cloner[F]); ok {
			b := cl.Clone()
			if c := a.Compare(b); c != 0 {
				t.Errorf("sample %d: Compare with its clone = %d, want 0", i, c)
			}
			if c := b.Compare(a); c != 0 {
				t.Errorf("sample %d: clone Compare with original = %d, want 0", i, c)
			}
		}
	}

	for i, a := range samples {
		for j, b := range samples {
			ab, ba := sign(a.Compare(b)), sign(b.Compare(a))
			if ab != -ba {
				t.Errorf("samples %d, %d: not antisymmetric: Compare = %d, reverse = %d", i, j, ab, ba)
			}
		}
	}

	for i, a := range samples {
		for j, b := range samples {
			ab := sign(a.Compare(b))
			if ab > 0 {
				continue
			}
			for k, c := range samples {
				bc := sign(b.Compare(c))
				if bc > 0 {
					continue
				}
				ac := sign(a.Compare(c))
				if ac > 0 {
					t.Errorf("samples %d <= %d <= %d but %d > %d", i, j, k, i, k)
				}
				if ab == 0 && bc == 0 && ac != 0 {
					t.Errorf("samples %d == %d == %d but %d != %d", i, j, k, i, k)
				}
			}
		}
	}
}

// CheckInterning verifies that interning samples into a fresh table yields
// one entry per distinct value, with ids assigned in first-seen order.
func CheckInterning[F rstate.Fragment[F]](t testing.TB, samples ...F) {
	t.Helper()

	reg := rstate.NewRegistry()
	cat := reg.MustRegister("conformance")
	table := rstate.NewTable(reg, cat, rstate.WithComparatorChecks[F](true))

	var distinct []F
	for i, s := range samples {
		want := -1
		for d, v := range distinct {
			if v.Compare(s) == 0 {
				want = d
				break
			}
		}
		if want < 0 {
			want = len(distinct)
			distinct = append(distinct, s)
		}

		e := table.Intern(s)
		if got := int(e.ID()); got != want {
			t.Errorf("sample %d: id = %d, want %d", i, got, want)
		}
		if e.Value().Compare(s) != 0 {
			t.Errorf("sample %d: canonical value does not compare equal to the sample", i)
		}
	}

	if got := table.Len(); got != len(distinct) {
		t.Errorf("table has %d entries, want %d distinct values", got, len(distinct))
	}
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	default:
		return 0
	}
}
