package state

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// TextureUnits is the number of texture unit categories in the standard set.
const TextureUnits = 4

// TextureUnit binds one texture and its sampling state to a texture unit.
// Texture is the caller's handle for the texture object; 0 means unbound.
type TextureUnit struct {
	Texture uint64
	Format  gputypes.TextureFormat

	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	AddressU  gputypes.AddressMode
	AddressV  gputypes.AddressMode
	Mipmaps   bool
}

// NewTextureUnit binds texture with linear filtering and clamped addressing.
func NewTextureUnit(texture uint64, format gputypes.TextureFormat) TextureUnit {
	return TextureUnit{
		Texture:   texture,
		Format:    format,
		MinFilter: gputypes.FilterModeLinear,
		MagFilter: gputypes.FilterModeLinear,
		AddressU:  gputypes.AddressModeClampToEdge,
		AddressV:  gputypes.AddressModeClampToEdge,
	}
}

// Compare orders bindings by texture first, then sampling state.
func (t TextureUnit) Compare(o TextureUnit) int {
	return cmp.Or(
		cmp.Compare(t.Texture, o.Texture),
		cmp.Compare(t.Format, o.Format),
		cmp.Compare(t.MinFilter, o.MinFilter),
		cmp.Compare(t.MagFilter, o.MagFilter),
		cmp.Compare(t.AddressU, o.AddressU),
		cmp.Compare(t.AddressV, o.AddressV),
		compareBool(t.Mipmaps, o.Mipmaps),
	)
}

// Clone returns t; TextureUnit holds no references.
func (t TextureUnit) Clone() TextureUnit {
	return t
}
