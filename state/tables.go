package state

import (
	"fmt"
	"strconv"

	"github.com/gogpu/rstate"
)

// Standard category names, in application order.
const (
	CategoryShader   = "shader"
	CategoryMaterial = "material"
	CategoryBlend    = "blend"
	CategoryDepth    = "depth"
	CategoryRaster   = "raster"
	CategoryFog      = "fog"
	CategoryLighting = "lighting"
)

// TextureCategory returns the category name of texture unit unit.
func TextureCategory(unit int) string {
	return "texture" + strconv.Itoa(unit)
}

// StandardCategories is the number of categories RegisterStandard adds.
const StandardCategories = 7 + TextureUnits

// Tables holds one table per standard category.
type Tables struct {
	Shader   *rstate.Table[Shader]
	Textures [TextureUnits]*rstate.Table[TextureUnit]
	Material *rstate.Table[Material]
	Blend    *rstate.Table[Blend]
	Depth    *rstate.Table[Depth]
	Raster   *rstate.Table[Raster]
	Fog      *rstate.Table[Fog]
	Lighting *rstate.Table[Lighting]
}

// StandardOption configures RegisterStandard.
type StandardOption func(*standardOptions)

type standardOptions struct {
	checks bool
}

// WithComparatorChecks enables comparator assertions on every standard
// table. See rstate.WithComparatorChecks.
func WithComparatorChecks() StandardOption {
	return func(o *standardOptions) {
		o.checks = true
	}
}

// RegisterStandard registers the standard categories in application order
// and creates their tables: the shader program first, since texture unit
// state depends on it, then texture units, material, blend, depth, raster,
// fog and lighting.
//
// The registry must have room for StandardCategories more categories. On
// error the registry may hold a prefix of the standard categories and
// should be discarded.
func RegisterStandard(reg *rstate.Registry, opts ...StandardOption) (*Tables, error) {
	var o standardOptions
	for _, opt := range opts {
		opt(&o)
	}

	var (
		ts     Tables
		regErr error
	)
	register := func(name string) rstate.Category {
		if regErr != nil {
			return 0
		}
		c, err := reg.Register(name)
		if err != nil {
			regErr = fmt.Errorf("state: register standard categories: %w", err)
		}
		return c
	}

	shader := register(CategoryShader)
	var textures [TextureUnits]rstate.Category
	for i := range textures {
		textures[i] = register(TextureCategory(i))
	}
	material := register(CategoryMaterial)
	blend := register(CategoryBlend)
	depth := register(CategoryDepth)
	raster := register(CategoryRaster)
	fog := register(CategoryFog)
	lighting := register(CategoryLighting)
	if regErr != nil {
		return nil, regErr
	}

	ts.Shader = rstate.NewTable(reg, shader, rstate.WithComparatorChecks[Shader](o.checks))
	for i, c := range textures {
		ts.Textures[i] = rstate.NewTable(reg, c, rstate.WithComparatorChecks[TextureUnit](o.checks))
	}
	ts.Material = rstate.NewTable(reg, material, rstate.WithComparatorChecks[Material](o.checks))
	ts.Blend = rstate.NewTable(reg, blend, rstate.WithComparatorChecks[Blend](o.checks))
	ts.Depth = rstate.NewTable(reg, depth, rstate.WithComparatorChecks[Depth](o.checks))
	ts.Raster = rstate.NewTable(reg, raster, rstate.WithComparatorChecks[Raster](o.checks))
	ts.Fog = rstate.NewTable(reg, fog, rstate.WithComparatorChecks[Fog](o.checks))
	ts.Lighting = rstate.NewTable(reg, lighting, rstate.WithComparatorChecks[Lighting](o.checks))

	rstate.Logger().Debug("state: standard categories registered", "count", StandardCategories)
	return &ts, nil
}

// SetShader binds program s.
func (ts *Tables) SetShader(a *rstate.Atom, s Shader) *rstate.Entry[Shader] {
	return rstate.SetState(a, ts.Shader, s)
}

// SetTexture binds t on texture unit unit. It panics if unit is not in
// [0, TextureUnits).
func (ts *Tables) SetTexture(a *rstate.Atom, unit int, t TextureUnit) *rstate.Entry[TextureUnit] {
	if unit < 0 || unit >= TextureUnits {
		panic(fmt.Sprintf("state: texture unit %d out of range [0, %d)", unit, TextureUnits))
	}
	return rstate.SetState(a, ts.Textures[unit], t)
}

// ClearTexture unbinds texture unit unit.
func (ts *Tables) ClearTexture(a *rstate.Atom, unit int) {
	if unit < 0 || unit >= TextureUnits {
		panic(fmt.Sprintf("state: texture unit %d out of range [0, %d)", unit, TextureUnits))
	}
	rstate.ClearState(a, ts.Textures[unit].Category())
}

// SetMaterial binds material m.
func (ts *Tables) SetMaterial(a *rstate.Atom, m Material) *rstate.Entry[Material] {
	return rstate.SetState(a, ts.Material, m)
}

// SetBlend binds blend state b.
func (ts *Tables) SetBlend(a *rstate.Atom, b Blend) *rstate.Entry[Blend] {
	return rstate.SetState(a, ts.Blend, b)
}

// SetDepth binds depth state d.
func (ts *Tables) SetDepth(a *rstate.Atom, d Depth) *rstate.Entry[Depth] {
	return rstate.SetState(a, ts.Depth, d)
}

// SetRaster binds raster state r.
func (ts *Tables) SetRaster(a *rstate.Atom, r Raster) *rstate.Entry[Raster] {
	return rstate.SetState(a, ts.Raster, r)
}

// SetFog binds fog f.
func (ts *Tables) SetFog(a *rstate.Atom, f Fog) *rstate.Entry[Fog] {
	return rstate.SetState(a, ts.Fog, f)
}

// SetLighting binds lighting l.
func (ts *Tables) SetLighting(a *rstate.Atom, l Lighting) *rstate.Entry[Lighting] {
	return rstate.SetState(a, ts.Lighting, l)
}

// Stats returns the statistics of every standard table in application order.
func (ts *Tables) Stats() []rstate.TableStats {
	stats := make([]rstate.TableStats, 0, StandardCategories)
	stats = append(stats, ts.Shader.Stats())
	for _, t := range ts.Textures {
		stats = append(stats, t.Stats())
	}
	return append(stats,
		ts.Material.Stats(),
		ts.Blend.Stats(),
		ts.Depth.Stats(),
		ts.Raster.Stats(),
		ts.Fog.Stats(),
		ts.Lighting.Stats(),
	)
}
