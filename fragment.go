package rstate

import "github.com/brunoga/deep"

// Fragment is a value describing one category of render state.
//
// Compare must define a total order over F: it returns a negative number
// when the receiver sorts before other, zero when they are equal, and a
// positive number otherwise. It must be reflexive, antisymmetric and
// transitive. Tables trust this contract; a comparator that violates it
// silently corrupts deduplication.
//
// Equality is defined entirely by Compare. Fields that Compare ignores
// (debug labels, cached derived data) do not take part in identity, and
// callers must not rely on them being preserved across Intern.
type Fragment[F any] interface {
	Compare(other F) int
}

// Cloner is implemented by fragments that know how to deep-copy themselves.
// Tables prefer Clone over reflective copying when it is available.
type Cloner[F any] interface {
	Clone() F
}

// cloneFragment returns an independent deep copy of f.
func cloneFragment[F any](f F) F {
	if c, ok := any(f).(Cloner[F]); ok {
		return c.Clone()
	}
	return deep.MustCopy(f)
}
