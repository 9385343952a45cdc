package systems

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

func testBindings() (color, depth, label metadata.ShaderBinding) {
	return metadata.NewShaderBinding(10, nil), metadata.NewShaderBinding(11, nil), metadata.NewShaderBinding(12, int16(5))
}

func newInstance(t *testing.T, geometry int) *metadata.SceneInstance {
	t.Helper()
	c, d, l := testBindings()
	inst, err := metadata.NewSceneInstance(geometry, math.NewRigidTransformIdentity(), math.NewVec3One(), c, d, l)
	if err != nil {
		t.Fatal(err)
	}
	return inst
}

func TestInstanceSetAddRemove(t *testing.T) {
	s := NewInstanceSet()
	a, b, c := newInstance(t, 0), newInstance(t, 2), newInstance(t, 0)
	for _, inst := range []*metadata.SceneInstance{a, b, c} {
		if err := s.Add(inst); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Add(a); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("duplicate Add = %v", err)
	}
	if err := s.Add(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("nil Add = %v", err)
	}

	ids := s.IDs()
	if len(ids) != 3 || ids[0] != a.ID || ids[1] != b.ID || ids[2] != c.ID {
		t.Errorf("IDs = %v", ids)
	}
	if got := s.ReferencedGeometries(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("ReferencedGeometries = %v", got)
	}

	if !s.Remove(b.ID) || s.Remove(b.ID) || s.Remove(uuid.New()) {
		t.Error("Remove must report presence")
	}
	if _, ok := s.Get(b.ID); ok || s.Len() != 2 {
		t.Errorf("removed instance still present, Len = %d", s.Len())
	}
	if got := s.IDs(); got[0] != a.ID || got[1] != c.ID {
		t.Errorf("order after Remove = %v", got)
	}
}

func TestGather(t *testing.T) {
	gr := newRegistry(t, GeometryRegistryConfig{})
	defined, _ := gr.Register(metadata.GeometryHandles{VertexArray: 1, VertexBuffer: 2, IndexBuffer: 3}, 36, true, 24)
	undefined, _ := gr.Register(metadata.GeometryHandles{VertexArray: 4, VertexBuffer: metadata.InvalidHandleName, IndexBuffer: 6}, 36, true, 24)

	s := NewInstanceSet()
	a := newInstance(t, defined)
	if err := s.Add(a); err != nil {
		t.Fatal(err)
	}

	for _, rt := range metadata.RenderTypes {
		items, err := s.Gather(gr, rt)
		if err != nil {
			t.Fatalf("%s: %v", rt, err)
		}
		if len(items) != 1 || items[0].InstanceID != a.ID || items[0].Binding != a.BindingFor(rt) {
			t.Errorf("%s: items = %+v", rt, items)
		}
	}

	if _, err := s.Gather(gr, metadata.RenderType(7)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("unknown render type: %v", err)
	}

	if err := s.Add(newInstance(t, undefined)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Gather(gr, metadata.RenderTypeColor); !errors.Is(err, core.ErrPreconditionViolation) {
		t.Errorf("gather over undefined geometry: %v", err)
	}
}
