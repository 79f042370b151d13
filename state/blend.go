package state

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// BlendComponent describes a blend component (color or alpha).
type BlendComponent struct {
	// SrcFactor is the source blend factor.
	SrcFactor gputypes.BlendFactor

	// DstFactor is the destination blend factor.
	DstFactor gputypes.BlendFactor

	// Operation is the blend operation.
	Operation gputypes.BlendOperation
}

func (c BlendComponent) compare(o BlendComponent) int {
	return cmp.Or(
		cmp.Compare(c.SrcFactor, o.SrcFactor),
		cmp.Compare(c.DstFactor, o.DstFactor),
		cmp.Compare(c.Operation, o.Operation),
	)
}

// Blend describes the color blending configuration.
//
// When Enabled is false the components are ignored by Compare, so every
// disabled blend shares one entry.
type Blend struct {
	Enabled   bool
	Color     BlendComponent
	Alpha     BlendComponent
	WriteMask gputypes.ColorWriteMask
}

// Opaque returns blending disabled with all channels written.
func Opaque() Blend {
	return Blend{WriteMask: gputypes.ColorWriteMaskAll}
}

// AlphaBlend returns straight (non-premultiplied) alpha blending.
func AlphaBlend() Blend {
	c := BlendComponent{
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	return Blend{Enabled: true, Color: c, Alpha: c, WriteMask: gputypes.ColorWriteMaskAll}
}

// Premultiplied returns source-over blending for premultiplied alpha.
func Premultiplied() Blend {
	c := BlendComponent{
		SrcFactor: gputypes.BlendFactorOne,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	return Blend{Enabled: true, Color: c, Alpha: c, WriteMask: gputypes.ColorWriteMaskAll}
}

// Compare orders disabled blending first.
func (b Blend) Compare(o Blend) int {
	if c := compareBool(b.Enabled, o.Enabled); c != 0 {
		return c
	}
	if b.Enabled {
		if c := cmp.Or(b.Color.compare(o.Color), b.Alpha.compare(o.Alpha)); c != 0 {
			return c
		}
	}
	return cmp.Compare(b.WriteMask, o.WriteMask)
}

// Clone returns b; Blend holds no references.
func (b Blend) Clone() Blend {
	return b
}
