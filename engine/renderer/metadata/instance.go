package metadata

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

/**
 * @brief One placed occurrence of a registered geometry.
 *
 * Geometry is an index into the geometry registry and does not own the
 * record; the instance dangles if that index stops being valid. When
 * drawn, the geometry is scaled about its own origin by Scale and then
 * posed by Pose. Scale may be non-uniform and may be negative, which
 * mirrors the geometry and turns it inside out.
 */
type SceneInstance struct {
	/** @brief Unique identifier assigned at creation. */
	ID uuid.UUID
	/** @brief The registry index of the geometry. */
	Geometry int
	/** @brief The pose of the geometry frame in the world. */
	Pose math.RigidTransform
	/** @brief Per-axis scale in the geometry frame. */
	Scale math.Vec3

	bindings [RenderTypeCount]ShaderBinding
}

// NewSceneInstance validates and builds an instance. It fails with
// core.ErrPreconditionViolation when geometry is negative or when any of
// the three bindings carries an invalid shader id.
func NewSceneInstance(geometry int, pose math.RigidTransform, scale math.Vec3, color, depth, label ShaderBinding) (*SceneInstance, error) {
	if geometry < 0 {
		return nil, fmt.Errorf("%w: geometry index must be non-negative, got %d", core.ErrPreconditionViolation, geometry)
	}
	inst := &SceneInstance{
		ID:       uuid.New(),
		Geometry: geometry,
		Pose:     pose,
		Scale:    scale,
	}
	inst.bindings[RenderTypeColor] = color
	inst.bindings[RenderTypeDepth] = depth
	inst.bindings[RenderTypeLabel] = label

	for _, rt := range RenderTypes {
		if !inst.bindings[rt].ShaderID().IsValid() {
			return nil, fmt.Errorf("%w: %s binding has an invalid shader id", core.ErrPreconditionViolation, rt)
		}
	}
	return inst, nil
}

// BindingFor returns the binding supplied at construction for rt.
// rt must be one of RenderTypes.
func (i *SceneInstance) BindingFor(rt RenderType) ShaderBinding {
	return i.bindings[rt]
}

// ModelMatrix maps geometry-frame points to the world: scale, then pose.
func (i *SceneInstance) ModelMatrix() math.Mat4 {
	return i.Pose.ScaledMat4(i.Scale)
}

// FlipsWinding reports whether the scale mirrors the geometry, which
// reverses triangle winding and therefore back-face culling.
func (i *SceneInstance) FlipsWinding() bool {
	negatives := 0
	for _, s := range [3]float32{i.Scale.X, i.Scale.Y, i.Scale.Z} {
		if s < 0 {
			negatives++
		}
	}
	return negatives%2 == 1
}

// DrawItem assembles the per-pass draw data for i against record.
func (i *SceneInstance) DrawItem(rt RenderType, record GeometryRecord) DrawItem {
	return DrawItem{
		InstanceID:    i.ID,
		GeometryIndex: i.Geometry,
		Geometry:      record,
		Model:         i.ModelMatrix(),
		FlipWinding:   i.FlipsWinding(),
		Binding:       i.BindingFor(rt),
	}
}
