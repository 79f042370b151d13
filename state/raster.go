package state

import (
	"cmp"

	"github.com/gogpu/gputypes"
)

// PolygonMode selects how polygons are rasterized.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// String returns the mode name.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "fill"
	case PolygonLine:
		return "line"
	case PolygonPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Raster describes polygon rasterization: polygon mode, face culling and
// depth offset.
type Raster struct {
	Mode      PolygonMode
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace
	LineWidth float32

	// OffsetFactor and OffsetUnits configure polygon offset; both zero
	// disables it.
	OffsetFactor float32
	OffsetUnits  float32
}

// DefaultRaster returns filled, back-face culled, counter-clockwise polygons.
func DefaultRaster() Raster {
	return Raster{
		Mode:      PolygonFill,
		CullMode:  gputypes.CullModeBack,
		FrontFace: gputypes.FrontFaceCCW,
		LineWidth: 1,
	}
}

// Compare orders rasterization field by field, polygon mode first.
func (r Raster) Compare(o Raster) int {
	return cmp.Or(
		cmp.Compare(r.Mode, o.Mode),
		cmp.Compare(r.CullMode, o.CullMode),
		cmp.Compare(r.FrontFace, o.FrontFace),
		cmp.Compare(r.LineWidth, o.LineWidth),
		cmp.Compare(r.OffsetFactor, o.OffsetFactor),
		cmp.Compare(r.OffsetUnits, o.OffsetUnits),
	)
}

// Clone returns r.
func (r Raster) Clone() Raster {
	return r
}
