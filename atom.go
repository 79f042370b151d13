package rstate

// Atom is the state assignment of one drawable.
//
// An atom keeps a non-owning reference to one canonical entry per category
// it uses, plus a cached SortKey. Changing any category marks the key stale;
// Key recomposes it on the next call. The zero Atom has no state and the
// zero key.
//
// Atom is not safe for concurrent mutation.
type Atom struct {
	// Payload is the caller's drawable. rstate never touches it.
	Payload any

	refs  [MaxCategories]handle
	ids   KeyBuilder
	key   SortKey
	stale bool
}

// NewAtom creates an atom carrying payload.
func NewAtom(payload any) *Atom {
	return &Atom{Payload: payload}
}

// SetState interns f into t and makes the result a's state for t's
// category. The previously referenced entry, if any, is released.
func SetState[F Fragment[F]](a *Atom, t *Table[F], f F) *Entry[F] {
	e := t.Intern(f)
	a.setHandle(t.Category(), e)
	return e
}

// setHandle swaps the handle for category c.
func (a *Atom) setHandle(c Category, h handle) {
	old := a.refs[c]
	if old != nil {
		releaseHandle(old)
	}
	a.refs[c] = h
	if old == nil || old.ID() != h.ID() {
		a.ids.Set(c, h.ID())
		a.stale = true
	}
}

// ClearState releases a's state for category c and resets it to default.
func ClearState(a *Atom, c Category) {
	checkCategory(c)
	old := a.refs[c]
	if old == nil {
		return
	}
	releaseHandle(old)
	a.refs[c] = nil
	a.ids.Clear(c)
	a.stale = true
}

// Reset releases every category and leaves a with the zero key.
// Payload is kept.
func (a *Atom) Reset() {
	for c, h := range a.refs {
		if h != nil {
			releaseHandle(h)
			a.refs[c] = nil
		}
	}
	a.ids.Reset()
	a.key = SortKey{}
	a.stale = false
}

// Key returns the atom's composite sort key, recomposing it if any category
// changed since the last call.
func (a *Atom) Key() SortKey {
	if a.stale {
		a.key = a.ids.Key()
		a.stale = false
	}
	return a.key
}

// Stale reports whether the cached key must be recomposed before the atom
// takes part in a sort.
func (a *Atom) Stale() bool {
	return a.stale
}

// Has reports whether a has state for category c.
func (a *Atom) Has(c Category) bool {
	return a.ids.Categories().Has(c)
}

// ID returns the entry id a uses for category c.
func (a *Atom) ID(c Category) (ID, bool) {
	return a.ids.Get(c)
}

// Categories returns the categories a has state for.
func (a *Atom) Categories() CategorySet {
	return a.ids.Categories()
}
