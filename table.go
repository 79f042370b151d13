package rstate

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"

	"github.com/google/btree"
)

// Table is the deduplicating cache for one state category.
//
// Intern maps every fragment value to a single canonical Entry, using the
// fragment's own comparator for an ordered lookup. The first time a value is
// seen the table stores a deep copy of it and assigns the next id; later
// calls with an equal value return the same entry.
//
// Thread Safety:
// Table is safe for concurrent use. A single mutex per table makes the
// lookup-then-insert sequence atomic, so concurrent loaders can never create
// two entries for one value. Hit and miss counters are atomic for lock-free
// reads.
//
// Tables never evict: entries live as long as the table, because atoms keep
// their ids in cached sort keys.
type Table[F Fragment[F]] struct {
	mu sync.Mutex

	cat  Category
	name string

	// tree orders entries by the fragment comparator.
	tree *btree.BTreeG[*Entry[F]]

	// byID holds entries in id order; len(byID) is the next id.
	byID []*Entry[F]

	// probe is reused for lookups to avoid allocating a search key.
	probe Entry[F]

	clone   func(F) F
	checks  bool
	idLimit uint64

	hits   atomic.Uint64
	misses atomic.Uint64
}

// TableStats contains table statistics.
type TableStats struct {
	// Category is the table's category index.
	Category Category
	// Name is the category name.
	Name string
	// Len is the number of canonical entries.
	Len int
	// NextID is the id the next new entry will receive.
	NextID ID
	// Refs is the sum of advisory reference counts over all entries.
	Refs int64
	// Hits is the number of Intern calls that found an existing entry.
	Hits uint64
	// Misses is the number of Intern calls that created an entry.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0.0 to 1.0.
	HitRate float64
}

// NewTable creates the table for category cat.
//
// NewTable panics with ErrUnknownCategory if cat is not registered in reg;
// tables are created at startup and a wrong category is a programming error.
func NewTable[F Fragment[F]](reg *Registry, cat Category, opts ...TableOption[F]) *Table[F] {
	if !reg.Has(cat) {
		panic(fmt.Errorf("%w: %d", ErrUnknownCategory, cat))
	}

	o := defaultTableOptions[F]()
	for _, opt := range opts {
		opt(&o)
	}

	return &Table[F]{
		cat:     cat,
		name:    reg.Name(cat),
		tree:    btree.NewG[*Entry[F]](o.degree, lessEntry[F]),
		clone:   o.clone,
		checks:  o.checks,
		idLimit: math.MaxUint32,
	}
}

// lessEntry orders entries by their fragment values.
func lessEntry[F Fragment[F]](a, b *Entry[F]) bool {
	return a.value.Compare(b.value) < 0
}

// Intern returns the canonical entry for f, creating it if needed.
//
// On a hit the entry's reference count is incremented. On a miss the table
// stores a deep copy of f under the next id with a reference count of one.
// The caller keeps ownership of f and may modify it afterwards.
func (t *Table[F]) Intern(f F) *Entry[F] {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.checks {
		t.checkReflexive(f)
	}

	if e, ok := t.find(f); ok {
		e.refs.Add(1)
		t.hits.Add(1)
		return e
	}

	if uint64(len(t.byID)) >= t.idLimit {
		panic(fmt.Errorf("%w: category %q has %d entries", ErrIDSpaceExhausted, t.name, len(t.byID)))
	}

	owned := t.clone(f)
	if t.checks && (owned.Compare(f) != 0 || f.Compare(owned) != 0) {
		panic(fmt.Errorf("%w: copy of %q fragment does not compare equal to the original",
			ErrInconsistentComparator, t.name))
	}

	e := &Entry[F]{
		value: owned,
		id:    ID(len(t.byID)),
		cat:   t.cat,
	}
	e.refs.Store(1)
	t.tree.ReplaceOrInsert(e)
	t.byID = append(t.byID, e)
	t.misses.Add(1)

	Logger().Debug("rstate: new state entry",
		slog.String("category", t.name),
		slog.Uint64("id", uint64(e.id)))

	return e
}

// Lookup returns the canonical entry equal to f without inserting it and
// without changing its reference count.
func (t *Table[F]) Lookup(f F) (*Entry[F], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.find(f)
}

// find performs the ordered lookup. Caller must hold t.mu.
func (t *Table[F]) find(f F) (*Entry[F], bool) {
	t.probe.value = f
	e, ok := t.tree.Get(&t.probe)
	var zero F
	t.probe.value = zero
	return e, ok
}

// checkReflexive panics if f does not compare equal to itself.
func (t *Table[F]) checkReflexive(f F) {
	if f.Compare(f) != 0 {
		panic(fmt.Errorf("%w: %q fragment does not compare equal to itself",
			ErrInconsistentComparator, t.name))
	}
}

// Release drops one advisory reference to e. The count never goes below
// zero and the entry is never removed.
//
// Release panics with ErrCategoryMismatch if e belongs to another category.
func (t *Table[F]) Release(e *Entry[F]) {
	if e == nil {
		return
	}
	if e.cat != t.cat {
		panic(fmt.Errorf("%w: entry of category %d released into %q", ErrCategoryMismatch, e.cat, t.name))
	}
	releaseHandle(e)
}

// releaseHandle drops one reference and logs an underflow.
func releaseHandle(h handle) {
	if !h.release() {
		Logger().Warn("rstate: reference count underflow",
			slog.Int("category", int(h.Category())),
			slog.Uint64("id", uint64(h.ID())))
	}
}

// ByID returns the entry with the given id.
func (t *Table[F]) ByID(id ID) (*Entry[F], bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if uint64(id) >= uint64(len(t.byID)) {
		return nil, false
	}
	return t.byID[id], true
}

// Category returns the table's category.
func (t *Table[F]) Category() Category {
	return t.cat
}

// Name returns the table's category name.
func (t *Table[F]) Name() string {
	return t.name
}

// Len returns the number of canonical entries.
func (t *Table[F]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.byID)
}

// Ascend calls fn for every entry in comparator order until fn returns
// false. fn must not call back into the table.
func (t *Table[F]) Ascend(fn func(*Entry[F]) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tree.Ascend(btree.ItemIteratorG[*Entry[F]](fn))
}

// Entries returns a snapshot of all entries in id order.
func (t *Table[F]) Entries() []*Entry[F] {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]*Entry[F], len(t.byID))
	copy(out, t.byID)
	return out
}

// Stats returns current table statistics.
func (t *Table[F]) Stats() TableStats {
	t.mu.Lock()
	n := len(t.byID)
	var refs int64
	for _, e := range t.byID {
		refs += e.refs.Load()
	}
	t.mu.Unlock()

	hits := t.hits.Load()
	misses := t.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return TableStats{
		Category: t.cat,
		Name:     t.name,
		Len:      n,
		NextID:   ID(n),
		Refs:     refs,
		Hits:     hits,
		Misses:   misses,
		HitRate:  hitRate,
	}
}

// ResetStats resets the hit and miss counters. Entries and ids are kept.
func (t *Table[F]) ResetStats() {
	t.hits.Store(0)
	t.misses.Store(0)
}
