package systems

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// recordChecker is implemented by contexts able to verify a record
// against what they actually hold (see renderer.HeadlessContext).
type recordChecker interface {
	CheckRecord(record metadata.GeometryRecord) error
}

// SystemManager ties the geometry registry and the instance set to the
// graphics context that owns their handles. All methods must be called
// from the context thread.
type SystemManager struct {
	context        renderer.GraphicsContext
	registryConfig GeometryRegistryConfig
	geometry       *GeometryRegistry
	instances      *InstanceSet
	// handles created through UploadGeometry, released on Shutdown
	owned []metadata.GeometryHandles
}

func NewSystemManager(config core.Config, ctx renderer.GraphicsContext) (*SystemManager, error) {
	if ctx == nil {
		return nil, fmt.Errorf("%w: NewSystemManager needs a graphics context", core.ErrInvalidArgument)
	}
	rc := GeometryRegistryConfig{
		InitialCapacity: config.Registry.InitialCapacity,
		DebugChecks:     config.Registry.DebugChecks,
	}
	if checker, ok := ctx.(recordChecker); ok {
		rc.Checker = checker.CheckRecord
	}
	gs, err := NewGeometryRegistry(rc, ctx.Generation())
	if err != nil {
		return nil, err
	}
	return &SystemManager{
		context:        ctx,
		registryConfig: rc,
		geometry:       gs,
		instances:      NewInstanceSet(),
	}, nil
}

func (sm *SystemManager) Geometry() *GeometryRegistry { return sm.geometry }

func (sm *SystemManager) Instances() *InstanceSet { return sm.instances }

// UploadGeometry asks the context to upload config and registers the
// resulting handles.
func (sm *SystemManager) UploadGeometry(config *metadata.GeometryConfig) (int, error) {
	if err := sm.checkContext(); err != nil {
		return -1, err
	}
	handles, err := sm.context.CreateGeometry(config)
	if err != nil {
		core.LogError("failed to upload geometry: %s", err)
		return -1, err
	}
	index, err := sm.geometry.Register(handles, config.IndexCount(), config.HasTexCoords, config.VertexCount())
	if err != nil {
		sm.context.DestroyGeometry(handles)
		return -1, err
	}
	sm.owned = append(sm.owned, handles)
	return index, nil
}

// AddInstance creates an instance of the geometry at index and adds it to
// the scene. The geometry must be defined.
func (sm *SystemManager) AddInstance(geometry int, pose math.RigidTransform, scale math.Vec3, color, depth, label metadata.ShaderBinding) (*metadata.SceneInstance, error) {
	if err := sm.checkContext(); err != nil {
		return nil, err
	}
	inst, err := metadata.NewSceneInstance(geometry, pose, scale, color, depth, label)
	if err != nil {
		core.LogError("failed to create scene instance: %s", err)
		return nil, err
	}
	if err := sm.geometry.RequireDefined(geometry, "scene instance references undefined geometry"); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	if err := sm.instances.Add(inst); err != nil {
		return nil, err
	}
	core.LogDebug("added instance %s of geometry %d", inst.ID, geometry)
	return inst, nil
}

func (sm *SystemManager) RemoveInstance(id uuid.UUID) bool {
	return sm.instances.Remove(id)
}

// Gather returns the draw list for one render pass.
func (sm *SystemManager) Gather(rt metadata.RenderType) ([]metadata.DrawItem, error) {
	if err := sm.checkContext(); err != nil {
		return nil, err
	}
	return sm.instances.Gather(sm.geometry, rt)
}

// Rebuild discards the registry and every instance after the context was
// destroyed or reset. Uploaded handles from the old generation are
// forgotten, not released: they no longer name anything.
func (sm *SystemManager) Rebuild() error {
	gs, err := NewGeometryRegistry(sm.registryConfig, sm.context.Generation())
	if err != nil {
		return err
	}
	core.LogInfo("rebuilding scene for context generation %d (dropping %d geometries, %d instances)",
		gs.Generation(), sm.geometry.Len(), sm.instances.Len())
	sm.geometry = gs
	sm.instances = NewInstanceSet()
	sm.owned = nil
	return nil
}

// Shutdown releases every geometry uploaded through the manager.
func (sm *SystemManager) Shutdown() error {
	if !sm.geometry.Stale(sm.context.Generation()) {
		for _, h := range sm.owned {
			sm.context.DestroyGeometry(h)
		}
	}
	sm.owned = nil
	return nil
}

func (sm *SystemManager) checkContext() error {
	if sm.geometry.Stale(sm.context.Generation()) {
		err := fmt.Errorf("%w: graphics context changed (registry generation %d, context %d); call Rebuild",
			core.ErrPreconditionViolation, sm.geometry.Generation(), sm.context.Generation())
		core.LogError("%s", err)
		return err
	}
	return nil
}
