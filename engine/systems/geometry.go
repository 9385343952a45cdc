package systems

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

// ContractChecker verifies what a GeometryRecord cannot verify by itself
// (buffer sizes against counts, texture coordinate layout, ...).
type ContractChecker func(record metadata.GeometryRecord) error

type GeometryRegistryConfig struct {
	// InitialCapacity preallocates storage; the registry grows past it.
	InitialCapacity int
	// DebugChecks turns on Checker during Register. Release builds leave
	// it off and trust the caller.
	DebugChecks bool
	Checker     ContractChecker
}

// GeometryRegistry stores geometry records under stable indices. Indices
// are assigned in increasing order from zero and never reused; there is
// no removal. The registry never talks to a graphics context.
//
// The registry is only valid for the context generation it was created
// against. It is not safe for concurrent use.
type GeometryRegistry struct {
	config     GeometryRegistryConfig
	records    []metadata.GeometryRecord
	generation uint64
}

func NewGeometryRegistry(config GeometryRegistryConfig, contextGeneration uint64) (*GeometryRegistry, error) {
	if config.InitialCapacity < 0 {
		err := fmt.Errorf("%w: NewGeometryRegistry - InitialCapacity must be >= 0", core.ErrInvalidArgument)
		core.LogWarn("%s", err)
		return nil, err
	}
	if config.DebugChecks && config.Checker == nil {
		core.LogWarn("geometry registry: debug checks enabled without a checker, nothing will be verified")
	}
	return &GeometryRegistry{
		config:     config,
		records:    make([]metadata.GeometryRecord, 0, config.InitialCapacity),
		generation: contextGeneration,
	}, nil
}

// Register stores a new record and returns its index. It fails with
// core.ErrInvalidArgument when a count is negative, or when debug checks
// are on and the checker rejects a defined record. Undefined records are
// stored unchecked.
func (gr *GeometryRegistry) Register(handles metadata.GeometryHandles, indexCount int, hasTexCoords bool, vertexCount int) (int, error) {
	record, err := metadata.NewGeometryRecord(handles, indexCount, hasTexCoords, vertexCount)
	if err != nil {
		core.LogError("geometry registry: %s", err)
		return -1, err
	}
	if gr.config.DebugChecks && gr.config.Checker != nil && record.IsDefined() {
		if err := gr.config.Checker(record); err != nil {
			err = fmt.Errorf("%w: geometry contract: %v", core.ErrInvalidArgument, err)
			core.LogError("geometry registry: %s", err)
			return -1, err
		}
	}

	index := len(gr.records)
	gr.records = append(gr.records, record)
	if !record.IsDefined() {
		core.LogWarn("geometry registry: index %d registered undefined (vao=%s vbo=%s ibo=%s)",
			index, record.VertexArray, record.VertexBuffer, record.IndexBuffer)
	} else {
		core.LogDebug("geometry registry: index %d registered (%d indices, %d vertices)", index, indexCount, vertexCount)
	}
	return index, nil
}

// IsDefined reports whether index names a record whose three handles are
// all valid. Unknown indices are never defined.
func (gr *GeometryRegistry) IsDefined(index int) bool {
	if index < 0 || index >= len(gr.records) {
		return false
	}
	return gr.records[index].IsDefined()
}

// RequireDefined is the gate in front of every draw call: it returns an
// error wrapping core.ErrPreconditionViolation and carrying message when
// IsDefined(index) is false. It does not look at buffer contents.
func (gr *GeometryRegistry) RequireDefined(index int, message string) error {
	if index < 0 || index >= len(gr.records) {
		return fmt.Errorf("%w: %s (geometry index %d out of range [0, %d))", core.ErrPreconditionViolation, message, index, len(gr.records))
	}
	if err := gr.records[index].RequireDefined(message); err != nil {
		return fmt.Errorf("%w (geometry index %d)", err, index)
	}
	return nil
}

// Get returns a copy of the record at index.
func (gr *GeometryRegistry) Get(index int) (metadata.GeometryRecord, error) {
	if index < 0 || index >= len(gr.records) {
		return metadata.GeometryRecord{}, fmt.Errorf("%w: geometry index %d out of range [0, %d)", core.ErrInvalidArgument, index, len(gr.records))
	}
	return gr.records[index], nil
}

func (gr *GeometryRegistry) Len() int { return len(gr.records) }

// Generation is the context generation the registry was built against.
func (gr *GeometryRegistry) Generation() uint64 { return gr.generation }

// Stale reports whether ctxGeneration differs from the registry's, in
// which case every handle is meaningless and the registry must be
// rebuilt. Records are not invalidated automatically.
func (gr *GeometryRegistry) Stale(ctxGeneration uint64) bool {
	return gr.generation != ctxGeneration
}
