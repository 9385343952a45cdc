package systems

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// InstanceSet holds the scene instances a renderer draws, in insertion
// order. Instances reference geometry by registry index and own nothing.
// Not safe for concurrent use.
type InstanceSet struct {
	order     []uuid.UUID
	instances map[uuid.UUID]*metadata.SceneInstance
}

func NewInstanceSet() *InstanceSet {
	return &InstanceSet{
		instances: make(map[uuid.UUID]*metadata.SceneInstance),
	}
}

// Add inserts inst. Adding an instance twice is an error.
func (s *InstanceSet) Add(inst *metadata.SceneInstance) error {
	if inst == nil {
		return fmt.Errorf("%w: nil scene instance", core.ErrInvalidArgument)
	}
	if _, ok := s.instances[inst.ID]; ok {
		return fmt.Errorf("%w: instance %s already added", core.ErrInvalidArgument, inst.ID)
	}
	s.instances[inst.ID] = inst
	s.order = append(s.order, inst.ID)
	return nil
}

// Remove drops the instance with id and reports whether it was present.
func (s *InstanceSet) Remove(id uuid.UUID) bool {
	if _, ok := s.instances[id]; !ok {
		return false
	}
	delete(s.instances, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return true
}

func (s *InstanceSet) Get(id uuid.UUID) (*metadata.SceneInstance, bool) {
	inst, ok := s.instances[id]
	return inst, ok
}

func (s *InstanceSet) Len() int { return len(s.order) }

// IDs returns the instance ids in insertion order.
func (s *InstanceSet) IDs() []uuid.UUID {
	return slices.Clone(s.order)
}

// ReferencedGeometries returns the sorted, de-duplicated registry indices
// the set refers to.
func (s *InstanceSet) ReferencedGeometries() []int {
	out := make([]int, 0, len(s.instances))
	for _, inst := range s.instances {
		out = append(out, inst.Geometry)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Gather builds the draw list for one render pass. Every instance must
// reference a defined geometry; the first that does not aborts the
// gather with core.ErrPreconditionViolation.
func (s *InstanceSet) Gather(registry *GeometryRegistry, rt metadata.RenderType) ([]metadata.DrawItem, error) {
	if !rt.IsValid() {
		return nil, fmt.Errorf("%w: unknown render type %d", core.ErrInvalidArgument, int(rt))
	}
	items := make([]metadata.DrawItem, 0, len(s.order))
	for _, id := range s.order {
		inst := s.instances[id]
		msg := fmt.Sprintf("instance %s: cannot draw %s pass", inst.ID, rt)
		if err := registry.RequireDefined(inst.Geometry, msg); err != nil {
			core.LogError("%s", err)
			return nil, err
		}
		record, _ := registry.Get(inst.Geometry)
		items = append(items, inst.DrawItem(rt, record))
	}
	return items, nil
}
