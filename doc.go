// Package rstate canonicalizes render state and composes per-atom sort keys.
//
// # Overview
//
// A renderer applies many independent pieces of GPU state (shader program,
// texture bindings, material, blend, depth, fog, lighting, polygon mode) to
// every visible render atom every frame. Fragments describing that state are
// value-equal but instance-distinct, and comparing them deeply per atom is
// expensive. rstate interns each fragment into a per-category [Table], which
// hands out one shared [Entry] per distinct value together with a small
// monotonic [ID]. The ids of an atom's categories form a [SortKey]; sorting
// atoms by that key places atoms sharing GPU state next to each other.
//
// # Quick Start
//
//	reg := rstate.NewRegistry()
//	shaderCat := reg.MustRegister("shader")
//	materialCat := reg.MustRegister("material")
//	reg.Seal()
//
//	shaders := rstate.NewTable[state.Shader](reg, shaderCat)
//	materials := rstate.NewTable[state.Material](reg, materialCat)
//
//	var a rstate.Atom
//	rstate.SetState(&a, shaders, phong)
//	rstate.SetState(&a, materials, red)
//
//	bucket.Add(&a)
//	bucket.Sort()
//	bucket.Walk(func(a *rstate.Atom, changed rstate.CategorySet) bool {
//	    // apply only the categories in changed, in ascending order
//	    return true
//	})
//
// # Categories
//
// A [Registry] assigns dense category indices at startup, at most
// [MaxCategories] of them. Registration order is application order: later
// categories may depend on earlier ones already being set on the GPU, so
// every consumer iterates categories in ascending index order.
//
// # Sort Keys
//
// A [SortKey] holds one full 32-bit slot per category. It is compared
// lexicographically in registry order and is a comparable Go value, so two
// keys are equal exactly when every category id is equal. Packing into a
// single machine word is available through [Pack64], which refuses to pack
// instead of letting categories alias into the same bits.
//
// # Thread Safety
//
// Tables are safe for concurrent use; each table serializes its own
// lookup-then-insert sequence. Atoms, key builders and buckets belong to the
// render thread and must not be mutated concurrently.
package rstate
