package renderer

import (
	"fmt"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/renderer/metadata"
)

/**
 * @brief Internal buffer data for geometry uploaded to the headless
 * context.
 */
type headlessGeometryData struct {
	vertexCount int
	indexCount  int
	texCoords   bool
	vertices    int // bytes
	indices     int // bytes
}

// HeadlessContext is an in-process GraphicsContext. It hands out GL style
// object names (never zero, never metadata.InvalidHandleName) and keeps
// the uploaded sizes so tests can check what a registry claims against
// what was actually uploaded.
type HeadlessContext struct {
	nextName   uint32
	generation uint64
	// keyed by vertex array name
	geometries map[uint32]headlessGeometryData
	buffers    map[uint32]int
}

var _ GraphicsContext = (*HeadlessContext)(nil)

func NewHeadlessContext() *HeadlessContext {
	return &HeadlessContext{
		nextName:   1,
		generation: 1,
		geometries: make(map[uint32]headlessGeometryData),
		buffers:    make(map[uint32]int),
	}
}

func (hc *HeadlessContext) genName() (uint32, error) {
	if hc.nextName == metadata.InvalidHandleName {
		return metadata.InvalidHandleName, fmt.Errorf("headless context: object names exhausted")
	}
	n := hc.nextName
	hc.nextName++
	return n, nil
}

const (
	// position + normal + texcoord, all float32
	vertexStride = (3 + 3 + 2) * 4
	indexStride  = 4
)

func (hc *HeadlessContext) CreateGeometry(config *metadata.GeometryConfig) (metadata.GeometryHandles, error) {
	if config == nil {
		return metadata.InvalidGeometryHandles, fmt.Errorf("%w: nil geometry config", core.ErrInvalidArgument)
	}
	if config.IndexCount()%3 != 0 {
		return metadata.InvalidGeometryHandles, fmt.Errorf("%w: geometry %q has %d indices, not a triangle list", core.ErrInvalidArgument, config.Name, config.IndexCount())
	}

	var names [3]uint32
	for i := range names {
		n, err := hc.genName()
		if err != nil {
			return metadata.InvalidGeometryHandles, err
		}
		names[i] = n
	}
	handles := metadata.GeometryHandles{VertexArray: names[0], VertexBuffer: names[1], IndexBuffer: names[2]}

	data := headlessGeometryData{
		vertexCount: config.VertexCount(),
		indexCount:  config.IndexCount(),
		texCoords:   config.HasTexCoords,
		vertices:    config.VertexCount() * vertexStride,
		indices:     config.IndexCount() * indexStride,
	}
	hc.geometries[handles.VertexArray] = data
	hc.buffers[handles.VertexBuffer] = data.vertices
	hc.buffers[handles.IndexBuffer] = data.indices

	core.LogDebug("headless: uploaded geometry %q vao=%d vbo=%d ibo=%d (%d vertices, %d indices)",
		config.Name, handles.VertexArray, handles.VertexBuffer, handles.IndexBuffer, data.vertexCount, data.indexCount)
	return handles, nil
}

func (hc *HeadlessContext) DestroyGeometry(handles metadata.GeometryHandles) {
	delete(hc.geometries, handles.VertexArray)
	delete(hc.buffers, handles.VertexBuffer)
	delete(hc.buffers, handles.IndexBuffer)
}

func (hc *HeadlessContext) Generation() uint64 { return hc.generation }

// Reset drops every object, as losing a real context would. Names are
// not reused across generations.
func (hc *HeadlessContext) Reset() {
	hc.generation++
	hc.geometries = make(map[uint32]headlessGeometryData)
	hc.buffers = make(map[uint32]int)
	core.LogInfo("headless: context reset, generation %d", hc.generation)
}

// Live reports whether every name of handles refers to an object in the
// current generation.
func (hc *HeadlessContext) Live(handles metadata.GeometryHandles) bool {
	_, vao := hc.geometries[handles.VertexArray]
	_, vbo := hc.buffers[handles.VertexBuffer]
	_, ibo := hc.buffers[handles.IndexBuffer]
	return vao && vbo && ibo
}

// CheckRecord verifies the cross-field contract a GeometryRecord cannot
// check itself: buffers exist and counts and texture coordinates match
// what was uploaded. It is meant as a debug-only contract checker.
func (hc *HeadlessContext) CheckRecord(record metadata.GeometryRecord) error {
	h := record.Handles()
	if !hc.Live(h) {
		return fmt.Errorf("geometry vao=%s is not live in generation %d", record.VertexArray, hc.generation)
	}
	data := hc.geometries[h.VertexArray]
	if data.vertexCount != record.VertexCount {
		return fmt.Errorf("vertex count %d does not match uploaded %d", record.VertexCount, data.vertexCount)
	}
	if data.indexCount != record.IndexCount {
		return fmt.Errorf("index count %d does not match uploaded %d", record.IndexCount, data.indexCount)
	}
	if data.texCoords != record.HasTexCoords {
		return fmt.Errorf("texture coordinate flag %t does not match uploaded %t", record.HasTexCoords, data.texCoords)
	}
	if hc.buffers[h.VertexBuffer] != record.VertexCount*vertexStride {
		return fmt.Errorf("vertex buffer is %d bytes, want %d", hc.buffers[h.VertexBuffer], record.VertexCount*vertexStride)
	}
	return nil
}
