package state

import "cmp"

// Material holds fixed-function surface colors.
type Material struct {
	Ambient   RGBA
	Diffuse   RGBA
	Specular  RGBA
	Emissive  RGBA
	Shininess float32

	// ColorTracking makes the vertex color drive the diffuse term.
	ColorTracking bool
}

// DefaultMaterial returns the OpenGL default material.
func DefaultMaterial() Material {
	return Material{
		Ambient:  RGBA{0.2, 0.2, 0.2, 1},
		Diffuse:  RGBA{0.8, 0.8, 0.8, 1},
		Specular: RGBA{0, 0, 0, 1},
		Emissive: RGBA{0, 0, 0, 1},
	}
}

// Compare orders materials color by color, then by shininess.
func (m Material) Compare(o Material) int {
	return cmp.Or(
		compareRGBA(m.Diffuse, o.Diffuse),
		compareRGBA(m.Ambient, o.Ambient),
		compareRGBA(m.Specular, o.Specular),
		compareRGBA(m.Emissive, o.Emissive),
		cmp.Compare(m.Shininess, o.Shininess),
		compareBool(m.ColorTracking, o.ColorTracking),
	)
}

// Clone returns m; Material holds no references.
func (m Material) Clone() Material {
	return m
}
