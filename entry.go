package rstate

import "sync/atomic"

// ID identifies a canonical entry within its category. Ids are assigned in
// first-seen order starting at 0 and are never reused.
type ID uint32

// Entry is the canonical, table-owned instance of an interned fragment.
//
// The fragment returned by Value is shared by every atom that interned an
// equal value; callers must treat it as read-only. Entries are never
// evicted, so an Entry and its ID stay valid for the lifetime of the table.
type Entry[F any] struct {
	value F
	id    ID
	cat   Category

	// refs is advisory: how many atoms currently reference the entry.
	refs atomic.Int64
}

// Value returns the table's owned copy of the fragment.
func (e *Entry[F]) Value() F {
	return e.value
}

// ID returns the entry's identifier within its category.
func (e *Entry[F]) ID() ID {
	return e.id
}

// Category returns the category of the table that owns the entry.
func (e *Entry[F]) Category() Category {
	return e.cat
}

// Refs returns the advisory reference count.
func (e *Entry[F]) Refs() int64 {
	return e.refs.Load()
}

// release decrements the reference count without letting it go negative.
// It reports false if the count was already zero.
func (e *Entry[F]) release() bool {
	for {
		n := e.refs.Load()
		if n <= 0 {
			return false
		}
		if e.refs.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

// handle is the non-owning view of an entry that atoms keep per category.
type handle interface {
	ID() ID
	Category() Category
	release() bool
}
