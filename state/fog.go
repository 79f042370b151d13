package state

import "cmp"

// FogMode selects the fog attenuation equation.
type FogMode uint8

const (
	FogOff FogMode = iota
	FogLinear
	FogExp
	FogExp2
)

// Fog describes distance fog. Only the parameters used by Mode take part in
// Compare, so e.g. two linear fogs with different densities are equal.
type Fog struct {
	Mode    FogMode
	Color   RGBA
	Density float32
	Start   float32
	End     float32
}

// NoFog returns disabled fog.
func NoFog() Fog {
	return Fog{}
}

// LinearFog returns fog growing linearly between start and end.
func LinearFog(color RGBA, start, end float32) Fog {
	return Fog{Mode: FogLinear, Color: color, Start: start, End: end}
}

// ExpFog returns exponential fog with the given density.
func ExpFog(color RGBA, density float32) Fog {
	return Fog{Mode: FogExp, Color: color, Density: density}
}

// Compare orders by mode, then by the parameters that mode uses.
func (f Fog) Compare(o Fog) int {
	if c := cmp.Compare(f.Mode, o.Mode); c != 0 || f.Mode == FogOff {
		return c
	}
	if c := compareRGBA(f.Color, o.Color); c != 0 {
		return c
	}
	if f.Mode == FogLinear {
		return cmp.Or(cmp.Compare(f.Start, o.Start), cmp.Compare(f.End, o.End))
	}
	return cmp.Compare(f.Density, o.Density)
}

// Clone returns f.
func (f Fog) Clone() Fog {
	return f
}
