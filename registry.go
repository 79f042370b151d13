package rstate

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// MaxCategories is the hard upper bound on the number of state categories.
const MaxCategories = 17

// Category is the dense index of a state category in its Registry.
// Categories are applied and compared in ascending index order.
type Category uint8

// Registry assigns category indices at startup.
//
// Each call to Register hands out the next free index, so registration
// order is application order. Indices are never reused or rewritten, and a
// failed registration leaves the registry unchanged.
//
// Names are compared in Unicode NFC form, so "café" spelled with a
// precomposed or a combining accent is one category.
//
// Registry is safe for concurrent use, although registration is expected to
// happen once, before any table is used.
type Registry struct {
	mu     sync.RWMutex
	names  []string
	index  map[string]Category
	limit  int
	sealed bool
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := defaultRegistryOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{
		names: make([]string, 0, o.limit),
		index: make(map[string]Category, o.limit),
		limit: o.limit,
	}
}

// Register assigns the next category index to name.
//
// Returns an error wrapping:
//   - ErrRegistrySealed if Seal has been called
//   - ErrDuplicateCategory if name is already registered
//   - ErrTooManyCategories if the registry limit is reached
//
// A registration error is a configuration error; callers should abort
// initialization rather than continue with a partial category set.
func (r *Registry) Register(name string) (Category, error) {
	name = norm.NFC.String(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return 0, fmt.Errorf("%w: cannot register %q", ErrRegistrySealed, name)
	}
	if c, ok := r.index[name]; ok {
		return 0, fmt.Errorf("%w: %q already has index %d", ErrDuplicateCategory, name, c)
	}
	if len(r.names) >= r.limit {
		return 0, fmt.Errorf("%w: %q would be category %d, limit is %d",
			ErrTooManyCategories, name, len(r.names), r.limit)
	}

	c := Category(len(r.names))
	r.names = append(r.names, name)
	r.index[name] = c

	Logger().Debug("rstate: category registered", "name", name, "index", int(c))
	return c, nil
}

// MustRegister is like Register but panics on error.
// It is intended for package-level and startup registration.
func (r *Registry) MustRegister(name string) Category {
	c, err := r.Register(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Seal freezes the registry. Later calls to Register fail with
// ErrRegistrySealed. Sealing twice is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return
	}
	r.sealed = true
	Logger().Info("rstate: registry sealed", slog.Int("categories", len(r.names)))
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Len returns the number of registered categories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

// Limit returns the maximum number of categories the registry accepts.
func (r *Registry) Limit() int {
	return r.limit
}

// Categories returns every registered category in application order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cats := make([]Category, len(r.names))
	for i := range cats {
		cats[i] = Category(i)
	}
	return cats
}

// All returns the set of every registered category.
func (r *Registry) All() CategorySet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return CategorySet(1)<<len(r.names) - 1
}

// Name returns the name a category was registered with, or "" if c is not
// registered.
func (r *Registry) Name(c Category) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(c) >= len(r.names) {
		return ""
	}
	return r.names[c]
}

// Lookup returns the category registered under name.
func (r *Registry) Lookup(name string) (Category, bool) {
	name = norm.NFC.String(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.index[name]
	return c, ok
}

// Has reports whether c has been registered.
func (r *Registry) Has(c Category) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int(c) < len(r.names)
}

// Format renders a category set using registered names, in application
// order. Unregistered members are printed by index.
func (r *Registry) Format(s CategorySet) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	buf := make([]byte, 0, 64)
	buf = append(buf, '{')
	first := true
	s.Each(func(c Category) {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		if int(c) < len(r.names) {
			buf = append(buf, r.names[c]...)
		} else {
			buf = fmt.Appendf(buf, "%d", c)
		}
	})
	buf = append(buf, '}')
	return string(buf)
}
