package rstate

// RegistryOption configures a Registry during creation.
//
// Example:
//
//	// Leave room for only 8 categories
//	reg := rstate.NewRegistry(rstate.WithLimit(8))
type RegistryOption func(*registryOptions)

// registryOptions holds optional configuration for Registry creation.
type registryOptions struct {
	limit int
}

// defaultRegistryOptions returns the default registry options.
func defaultRegistryOptions() registryOptions {
	return registryOptions{
		limit: MaxCategories,
	}
}

// WithLimit lowers the number of categories the registry accepts.
// Values above MaxCategories are clamped to MaxCategories; values below 1
// are ignored.
func WithLimit(n int) RegistryOption {
	return func(o *registryOptions) {
		if n < 1 {
			return
		}
		o.limit = min(n, MaxCategories)
	}
}

// TableOption configures a Table during creation.
//
// Example:
//
//	shaders := rstate.NewTable(reg, cat,
//	    rstate.WithComparatorChecks[state.Shader](true),
//	)
type TableOption[F any] func(*tableOptions[F])

// tableOptions holds optional configuration for Table creation.
type tableOptions[F any] struct {
	clone  func(F) F
	checks bool
	degree int
}

// defaultTableDegree is the B-tree degree used for table indexes.
const defaultTableDegree = 16

// defaultTableOptions returns the default table options.
func defaultTableOptions[F any]() tableOptions[F] {
	return tableOptions[F]{
		clone:  cloneFragment[F],
		degree: defaultTableDegree,
	}
}

// WithClone sets the function used to make the table's owned copy of a
// newly interned fragment. By default the table calls Clone when the
// fragment implements Cloner, and performs a reflective deep copy otherwise.
func WithClone[F any](clone func(F) F) TableOption[F] {
	return func(o *tableOptions[F]) {
		if clone != nil {
			o.clone = clone
		}
	}
}

// WithComparatorChecks enables debug assertions on every Intern: the
// fragment must compare equal to itself, and the owned copy must compare
// equal to the original. A failed assertion panics with
// ErrInconsistentComparator.
func WithComparatorChecks[F any](enabled bool) TableOption[F] {
	return func(o *tableOptions[F]) {
		o.checks = enabled
	}
}

// WithBTreeDegree sets the degree of the B-tree indexing the table.
// Values below 2 are ignored.
func WithBTreeDegree[F any](degree int) TableOption[F] {
	return func(o *tableOptions[F]) {
		if degree >= 2 {
			o.degree = degree
		}
	}
}
