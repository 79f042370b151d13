// Package state defines the standard render-state fragments and the
// standard category set.
//
// Each fragment kind is a plain value type with a total order (Compare) and
// a deep copy (Clone), so it can be interned in an [rstate.Table] of its own
// type. GPU enumerations come from github.com/gogpu/gputypes.
//
// The standard categories are registered in application order: the shader
// program first, then texture units, then material and fixed-function state.
//
//	reg := rstate.NewRegistry()
//	tables, err := state.RegisterStandard(reg)
//	if err != nil {
//	    return err
//	}
//	reg.Seal()
//
//	var a rstate.Atom
//	tables.SetShader(&a, state.NewShader("phong", vsCode, fsCode))
//	tables.SetTexture(&a, 0, state.TextureUnit{Texture: 42})
//	tables.SetMaterial(&a, state.DefaultMaterial())
package state
