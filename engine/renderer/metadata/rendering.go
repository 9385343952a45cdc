package metadata

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/lumen/engine/math"
)

/**
 * @brief The outputs a multi-pass renderer produces. The values are
 * dense from zero so they can index per-pass arrays; RenderTypeCount is
 * the number of passes.
 */
type RenderType int

const (
	RenderTypeColor RenderType = iota
	RenderTypeLabel
	RenderTypeDepth

	RenderTypeCount int = iota
)

// RenderTypes lists every pass in index order.
var RenderTypes = [RenderTypeCount]RenderType{RenderTypeColor, RenderTypeLabel, RenderTypeDepth}

func (rt RenderType) String() string {
	switch rt {
	case RenderTypeColor:
		return "color"
	case RenderTypeLabel:
		return "label"
	case RenderTypeDepth:
		return "depth"
	}
	return fmt.Sprintf("RenderType(%d)", int(rt))
}

func (rt RenderType) IsValid() bool {
	return rt >= 0 && int(rt) < RenderTypeCount
}

/**
 * @brief Everything a render pass needs to issue one draw call for one
 * instance.
 */
type DrawItem struct {
	/** @brief The instance being drawn. */
	InstanceID uuid.UUID
	/** @brief The registry index of the geometry. */
	GeometryIndex int
	/** @brief A copy of the defined geometry record. */
	Geometry GeometryRecord
	/** @brief Geometry-to-world matrix, scale applied before the pose. */
	Model math.Mat4
	/** @brief Indicates the model matrix mirrors, so winding is reversed. */
	FlipWinding bool
	/** @brief The program state for the pass. */
	Binding ShaderBinding
}
