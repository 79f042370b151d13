package rstate

import (
	"math/bits"
	"strconv"
)

// CategorySet is a set of categories. The zero value is the empty set.
type CategorySet uint32

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return c < MaxCategories && s&(1<<c) != 0
}

// Add returns s with c added.
func (s CategorySet) Add(c Category) CategorySet {
	checkCategory(c)
	return s | 1<<c
}

// Remove returns s with c removed.
func (s CategorySet) Remove(c Category) CategorySet {
	if c >= MaxCategories {
		return s
	}
	return s &^ (1 << c)
}

// Union returns the categories in s or o.
func (s CategorySet) Union(o CategorySet) CategorySet {
	return s | o
}

// Intersect returns the categories in both s and o.
func (s CategorySet) Intersect(o CategorySet) CategorySet {
	return s & o
}

// Len returns the number of categories in the set.
func (s CategorySet) Len() int {
	return bits.OnesCount32(uint32(s))
}

// Empty reports whether the set has no members.
func (s CategorySet) Empty() bool {
	return s == 0
}

// Each calls fn for every category in the set in ascending order, which is
// the order state must be applied in.
func (s CategorySet) Each(fn func(Category)) {
	for v := uint32(s); v != 0; v &= v - 1 {
		fn(Category(bits.TrailingZeros32(v)))
	}
}

// String formats the set as category indices, e.g. "{0,3,5}".
func (s CategorySet) String() string {
	buf := make([]byte, 0, 32)
	buf = append(buf, '{')
	first := true
	s.Each(func(c Category) {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		buf = strconv.AppendUint(buf, uint64(c), 10)
	})
	buf = append(buf, '}')
	return string(buf)
}
