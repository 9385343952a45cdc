package systems

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func newManager(t *testing.T, debugChecks bool) (*SystemManager, *renderer.HeadlessContext) {
	t.Helper()
	ctx := renderer.NewHeadlessContext()
	cfg := core.DefaultConfig()
	cfg.Registry.DebugChecks = debugChecks
	sm, err := NewSystemManager(cfg, ctx)
	if err != nil {
		t.Fatal(err)
	}
	return sm, ctx
}

func TestSystemManagerScene(t *testing.T) {
	sm, ctx := newManager(t, true)

	cube, err := sm.UploadGeometry(GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
	if err != nil {
		t.Fatal(err)
	}
	if cube != 0 || !sm.Geometry().IsDefined(cube) {
		t.Fatalf("cube index %d, defined %t", cube, sm.Geometry().IsDefined(cube))
	}
	record, _ := sm.Geometry().Get(cube)
	if !ctx.Live(record.Handles()) {
		t.Error("uploaded handles are not live")
	}

	broken, err := sm.Geometry().Register(metadata.GeometryHandles{VertexArray: 90, VertexBuffer: metadata.InvalidHandleName, IndexBuffer: 91}, 36, true, 24)
	if err != nil {
		t.Fatal(err)
	}
	if broken != 1 || sm.Geometry().IsDefined(broken) {
		t.Fatalf("broken index %d, defined %t", broken, sm.Geometry().IsDefined(broken))
	}

	c, d, l := testBindings()
	inst, err := sm.AddInstance(cube, math.NewRigidTransformIdentity(), math.NewVec3(2, 2, 2), c, d, l)
	if err != nil {
		t.Fatal(err)
	}
	if inst.Geometry != cube {
		t.Errorf("instance geometry = %d", inst.Geometry)
	}
	if _, err := sm.AddInstance(broken, math.NewRigidTransformIdentity(), math.NewVec3One(), c, d, l); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("instance of undefined geometry: %v", err)
	}
	if _, err := sm.AddInstance(-1, math.NewRigidTransformIdentity(), math.NewVec3One(), c, d, l); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("instance of negative geometry: %v", err)
	}

	items, err := sm.Gather(metadata.RenderTypeLabel)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Binding.Data != int16(5) {
		t.Errorf("items = %+v", items)
	}

	if !sm.RemoveInstance(inst.ID) || sm.Instances().Len() != 0 {
		t.Error("RemoveInstance failed")
	}

	if err := sm.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if ctx.Live(record.Handles()) {
		t.Error("Shutdown must release uploaded geometry")
	}
}

func TestSystemManagerDebugChecker(t *testing.T) {
	sm, _ := newManager(t, true)
	idx, err := sm.UploadGeometry(GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
	if err != nil {
		t.Fatal(err)
	}
	record, _ := sm.Geometry().Get(idx)

	// Same buffers, wrong vertex count: the context knows better.
	if _, err := sm.Geometry().Register(record.Handles(), 36, true, 23); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("mismatched vertex count: %v", err)
	}
	if _, err := sm.Geometry().Register(record.Handles(), 36, false, 24); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("mismatched texcoords: %v", err)
	}
	if _, err := sm.Geometry().Register(record.Handles(), 36, true, 24); err != nil {
		t.Errorf("matching record rejected: %v", err)
	}

	// Without debug checks the same lie is accepted.
	sm, _ = newManager(t, false)
	if _, err := sm.Geometry().Register(record.Handles(), 36, true, 23); err != nil {
		t.Errorf("release registry ran the checker: %v", err)
	}
}

func TestSystemManagerContextReset(t *testing.T) {
	sm, ctx := newManager(t, false)
	cube, err := sm.UploadGeometry(GenerateCubeConfig(1, 1, 1, 1, 1, "cube"))
	if err != nil {
		t.Fatal(err)
	}
	c, d, l := testBindings()
	if _, err := sm.AddInstance(cube, math.NewRigidTransformIdentity(), math.NewVec3One(), c, d, l); err != nil {
		t.Fatal(err)
	}

	ctx.Reset()

	// records survive the reset untouched, they just no longer mean anything
	if !sm.Geometry().IsDefined(cube) {
		t.Error("records are not invalidated automatically")
	}
	if _, err := sm.Gather(metadata.RenderTypeColor); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("gather on stale registry: %v", err)
	}
	if _, err := sm.UploadGeometry(GenerateCubeConfig(1, 1, 1, 1, 1, "cube")); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("upload on stale registry: %v", err)
	}

	if err := sm.Rebuild(); err != nil {
		t.Fatal(err)
	}
	if sm.Geometry().Len() != 0 || sm.Instances().Len() != 0 {
		t.Errorf("rebuild kept %d geometries, %d instances", sm.Geometry().Len(), sm.Instances().Len())
	}
	if sm.Geometry().Generation() != ctx.Generation() {
		t.Errorf("generation %d, context %d", sm.Geometry().Generation(), ctx.Generation())
	}
	if _, err := sm.UploadGeometry(GenerateCubeConfig(1, 1, 1, 1, 1, "cube")); err != nil {
		t.Errorf("upload after rebuild: %v", err)
	}
}

func TestUploadGeometryRejectsBadConfig(t *testing.T) {
	sm, _ := newManager(t, false)
	if _, err := sm.UploadGeometry(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil config: %v", err)
	}
	config := GenerateCubeConfig(1, 1, 1, 1, 1, "cube")
	config.Indices = config.Indices[:35]
	if _, err := sm.UploadGeometry(config); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("non-triangle index count: %v", err)
	}
	if sm.Geometry().Len() != 0 {
		t.Errorf("failed uploads registered %d records", sm.Geometry().Len())
	}
}
