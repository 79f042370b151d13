package rstate

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// SortKey is the composite key of one render atom: one slot per category,
// in registry order.
//
// Every slot is a full 32 bits wide, so distinct per-category ids can never
// alias. A slot holds id+1 for a present category and 0 for an absent one;
// the zero SortKey is the "all default" key.
//
// SortKey is a comparable value: == is exact equality over every category,
// and it can be used as a map key. Compare orders keys lexicographically by
// category index, which groups atoms sharing early-applied state first.
type SortKey [MaxCategories]uint32

// Compose builds the key for a sparse category → id mapping. Categories
// missing from ids take the default slot.
//
// Compose panics with ErrCategoryRange for a category outside
// [0, MaxCategories).
func Compose(ids map[Category]ID) SortKey {
	var b KeyBuilder
	for c, id := range ids {
		b.Set(c, id)
	}
	return b.Key()
}

// Slot returns the id stored for c and whether c is present.
func (k SortKey) Slot(c Category) (ID, bool) {
	checkCategory(c)
	v := k[c]
	if v == 0 {
		return 0, false
	}
	return ID(v - 1), true
}

// Categories returns the set of categories present in the key.
func (k SortKey) Categories() CategorySet {
	var s CategorySet
	for i, v := range k {
		if v != 0 {
			s |= 1 << i
		}
	}
	return s
}

// IsZero reports whether every category is default.
func (k SortKey) IsZero() bool {
	return k == SortKey{}
}

// Compare orders keys lexicographically in category order. Absent
// categories sort before present ones.
func (k SortKey) Compare(o SortKey) int {
	for i := range k {
		if k[i] != o[i] {
			if k[i] < o[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Less reports whether k sorts before o.
func (k SortKey) Less(o SortKey) bool {
	return k.Compare(o) < 0
}

// Hash computes an xxHash64 over all slots.
// Equal keys hash equally; the hash is for bucketing, never for equality.
func (k SortKey) Hash() uint64 {
	var buf [MaxCategories * 4]byte
	for i, v := range k {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return xxhash.Sum64(buf[:])
}

// String formats the present slots as "category:id" pairs,
// e.g. "[0:3 4:0 7:12]".
func (k SortKey) String() string {
	buf := make([]byte, 0, 64)
	buf = append(buf, '[')
	first := true
	for i, v := range k {
		if v == 0 {
			continue
		}
		if !first {
			buf = append(buf, ' ')
		}
		first = false
		buf = strconv.AppendInt(buf, int64(i), 10)
		buf = append(buf, ':')
		buf = strconv.AppendUint(buf, uint64(v-1), 10)
	}
	buf = append(buf, ']')
	return string(buf)
}

// Mask returns k with every category outside set cleared. It derives the
// key of a subset of state, e.g. the categories a backend pipeline depends on.
func (k SortKey) Mask(set CategorySet) SortKey {
	for i := range k {
		if !set.Has(Category(i)) {
			k[i] = 0
		}
	}
	return k
}

// Diff returns the categories whose slot differs between a and b.
//
// When moving from one sorted atom to the next, the hardware layer only has
// to touch the categories in Diff(prev, next), in ascending order.
func Diff(a, b SortKey) CategorySet {
	var s CategorySet
	for i := range a {
		if a[i] != b[i] {
			s |= 1 << i
		}
	}
	return s
}

// Pack64 folds k into one 64-bit word with bitsPerSlot bits per category,
// category c occupying bits [c*bitsPerSlot, (c+1)*bitsPerSlot).
//
// Pack64 reports ok=false instead of truncating: when bitsPerSlot is outside
// [1, 32], when a present slot's value does not fit in bitsPerSlot bits, or
// when a present category's field would lie past bit 63. When ok is true the
// packing is injective over all keys that pack with the same width, so the
// word may stand in for k in equality tests.
func Pack64(k SortKey, bitsPerSlot uint) (packed uint64, ok bool) {
	if bitsPerSlot < 1 || bitsPerSlot > 32 {
		return 0, false
	}
	limit := uint64(1) << bitsPerSlot
	for i, v := range k {
		if v == 0 {
			continue
		}
		shift := uint(i) * bitsPerSlot
		if shift+bitsPerSlot > 64 || uint64(v) >= limit {
			return 0, false
		}
		packed |= uint64(v) << shift
	}
	return packed, true
}

// KeyBuilder accumulates per-category ids for one atom.
// The zero value is an empty builder whose Key is the zero SortKey.
type KeyBuilder struct {
	ids [MaxCategories]ID
	set CategorySet
}

// Set stores id for category c. The id math.MaxUint32 has no slot
// encoding; tables never assign it.
func (b *KeyBuilder) Set(c Category, id ID) {
	checkCategory(c)
	if id == math.MaxUint32 {
		panic(fmt.Errorf("%w: id %d cannot be stored in a sort key", ErrIDSpaceExhausted, id))
	}
	b.ids[c] = id
	b.set |= 1 << c
}

// Clear resets category c to default.
func (b *KeyBuilder) Clear(c Category) {
	checkCategory(c)
	b.ids[c] = 0
	b.set &^= 1 << c
}

// Get returns the id stored for c and whether c is set.
func (b *KeyBuilder) Get(c Category) (ID, bool) {
	checkCategory(c)
	return b.ids[c], b.set.Has(c)
}

// Categories returns the categories that have an id.
func (b *KeyBuilder) Categories() CategorySet {
	return b.set
}

// Reset clears every category.
func (b *KeyBuilder) Reset() {
	*b = KeyBuilder{}
}

// Key composes the sort key, walking categories in registry order.
func (b *KeyBuilder) Key() SortKey {
	var k SortKey
	b.set.Each(func(c Category) {
		k[c] = uint32(b.ids[c]) + 1
	})
	return k
}

// checkCategory panics if c is not a valid category index.
func checkCategory(c Category) {
	if c >= MaxCategories {
		panic(fmt.Errorf("%w: %d", ErrCategoryRange, c))
	}
}
