package state

import (
	"cmp"
	"slices"
)

// Lighting describes which lights affect an atom.
//
// Lights holds the caller's light handles. It must be sorted and free of
// duplicates; NewLighting ensures this.
type Lighting struct {
	Enabled bool
	Lights  []uint32
	Ambient RGBA
}

// NoLighting returns lighting disabled.
func NoLighting() Lighting {
	return Lighting{}
}

// NewLighting enables lighting with the given lights and global ambient.
func NewLighting(ambient RGBA, lights ...uint32) Lighting {
	l := slices.Clone(lights)
	slices.Sort(l)
	return Lighting{
		Enabled: true,
		Lights:  slices.Compact(l),
		Ambient: ambient,
	}
}

// Compare ignores lights and ambient while lighting is disabled.
func (l Lighting) Compare(o Lighting) int {
	if c := compareBool(l.Enabled, o.Enabled); c != 0 || !l.Enabled {
		return c
	}
	return cmp.Or(
		slices.Compare(l.Lights, o.Lights),
		compareRGBA(l.Ambient, o.Ambient),
	)
}

// Clone returns a copy that shares no memory with l.
func (l Lighting) Clone() Lighting {
	l.Lights = slices.Clone(l.Lights)
	return l
}
