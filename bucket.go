package rstate

import "slices"

// Bucket collects atoms for one render pass and orders them by sort key.
//
// Sorting is stable: atoms with equal keys keep the order they were added
// in. After Sort, atoms sharing a category's entry are adjacent within each
// run of equal earlier categories, and Walk reports exactly which categories
// change from one atom to the next.
//
// Bucket is not safe for concurrent use. Reset keeps the backing storage so
// that a bucket reused every frame does not allocate after warm-up.
type Bucket struct {
	atoms []*Atom
}

// NewBucket creates a bucket with room for capacity atoms.
func NewBucket(capacity int) *Bucket {
	return &Bucket{
		atoms: make([]*Atom, 0, capacity),
	}
}

// Add appends a to the bucket.
func (b *Bucket) Add(a *Atom) {
	b.atoms = append(b.atoms, a)
}

// Len returns the number of atoms in the bucket.
func (b *Bucket) Len() int {
	return len(b.atoms)
}

// Atoms returns the bucket's atoms in their current order.
// The slice is owned by the bucket and valid until the next Add or Reset.
func (b *Bucket) Atoms() []*Atom {
	return b.atoms
}

// Reset removes all atoms, keeping capacity.
func (b *Bucket) Reset() {
	clear(b.atoms)
	b.atoms = b.atoms[:0]
}

// Sort refreshes every stale key and stably orders atoms by key.
func (b *Bucket) Sort() {
	for _, a := range b.atoms {
		a.Key()
	}
	slices.SortStableFunc(b.atoms, func(x, y *Atom) int {
		return x.key.Compare(y.key)
	})
}

// Walk calls fn for every atom in the current order with the categories
// whose entry differs from the previous atom. The first atom is compared
// against the zero key, i.e. default state. Walk stops when fn returns false.
func (b *Bucket) Walk(fn func(a *Atom, changed CategorySet) bool) {
	var prev SortKey
	for _, a := range b.atoms {
		k := a.Key()
		if !fn(a, Diff(prev, k)) {
			return
		}
		prev = k
	}
}

// Transitions returns the total number of category changes Walk would
// report for the current order.
func (b *Bucket) Transitions() int {
	n := 0
	b.Walk(func(_ *Atom, changed CategorySet) bool {
		n += changed.Len()
		return true
	})
	return n
}

// Runs returns the lengths of consecutive runs of atoms with equal keys in
// the current order. After Sort every distinct key forms exactly one run.
func (b *Bucket) Runs() []int {
	var runs []int
	var prev SortKey
	for i, a := range b.atoms {
		k := a.Key()
		if i > 0 && k == prev {
			runs[len(runs)-1]++
			continue
		}
		runs = append(runs, 1)
		prev = k
	}
	return runs
}
