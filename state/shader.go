package state

import (
	"cmp"
	"hash/fnv"
	"slices"
	"strings"
)

// Default shader entry points.
const (
	DefaultVertexEntry   = "vs_main"
	DefaultFragmentEntry = "fs_main"
)

// Shader identifies a shader program by the hashes of its stage code, its
// entry points and its preprocessor defines.
//
// Label is a debug name and does not take part in Compare: two programs
// built from the same code under different labels share one entry, and the
// entry keeps the first label it was interned with.
type Shader struct {
	Label string

	VertexHash    uint64
	VertexEntry   string
	FragmentHash  uint64
	FragmentEntry string

	// Defines must be sorted and free of duplicates; NewShader ensures this.
	Defines []string
}

// NewShader creates a program fragment from stage code. Entry points take
// their defaults; defines are sorted and deduplicated.
func NewShader(label string, vertexCode, fragmentCode []byte, defines ...string) Shader {
	d := slices.Clone(defines)
	slices.Sort(d)
	d = slices.Compact(d)
	return Shader{
		Label:         label,
		VertexHash:    HashCode(vertexCode),
		VertexEntry:   DefaultVertexEntry,
		FragmentHash:  HashCode(fragmentCode),
		FragmentEntry: DefaultFragmentEntry,
		Defines:       d,
	}
}

// HashCode computes the FNV-1a hash used to identify shader code.
func HashCode(code []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(code) // fnv.Write never returns an error
	return h.Sum64()
}

// Compare orders programs by code, entry points, then defines.
func (s Shader) Compare(o Shader) int {
	return cmp.Or(
		cmp.Compare(s.VertexHash, o.VertexHash),
		cmp.Compare(s.FragmentHash, o.FragmentHash),
		strings.Compare(s.VertexEntry, o.VertexEntry),
		strings.Compare(s.FragmentEntry, o.FragmentEntry),
		slices.Compare(s.Defines, o.Defines),
	)
}

// Clone returns a copy that shares no memory with s.
func (s Shader) Clone() Shader {
	s.Defines = slices.Clone(s.Defines)
	return s
}
