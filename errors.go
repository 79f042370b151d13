package rstate

import "errors"

// Configuration and precondition errors.
//
// Registration errors are returned to the caller and are meant to abort
// startup. The remaining errors describe programmer mistakes; they are
// raised as panic values so that errors.Is still works on a recovered value.
var (
	// ErrTooManyCategories is returned when registering more categories than
	// the registry limit (at most MaxCategories) allows.
	ErrTooManyCategories = errors.New("rstate: too many state categories")

	// ErrDuplicateCategory is returned when a category name is registered twice.
	ErrDuplicateCategory = errors.New("rstate: duplicate state category")

	// ErrRegistrySealed is returned when registering after Seal.
	ErrRegistrySealed = errors.New("rstate: registry is sealed")

	// ErrUnknownCategory is raised when a category was not registered in the
	// registry it is used with.
	ErrUnknownCategory = errors.New("rstate: unknown state category")

	// ErrCategoryRange is raised when a category index lies outside
	// [0, MaxCategories).
	ErrCategoryRange = errors.New("rstate: category index out of range")

	// ErrInconsistentComparator is raised by tables with comparator checks
	// enabled when a fragment's Compare is not a valid total order.
	ErrInconsistentComparator = errors.New("rstate: inconsistent fragment comparator")

	// ErrIDSpaceExhausted is raised when a table has assigned every storable id.
	ErrIDSpaceExhausted = errors.New("rstate: state id space exhausted")

	// ErrCategoryMismatch is raised when an entry is released into a table
	// of a different category.
	ErrCategoryMismatch = errors.New("rstate: entry belongs to another category")
)
