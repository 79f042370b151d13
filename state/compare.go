package state

import "cmp"

// RGBA is a linear color with components in [0, 1].
type RGBA [4]float32

// compareRGBA orders colors component by component.
// NaN components sort first and compare equal to each other.
func compareRGBA(a, b RGBA) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
