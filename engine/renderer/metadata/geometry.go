package metadata

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/lumen/engine/core"
	"github.com/spaghettifunk/lumen/engine/math"
)

/** @brief The name of the default geometry. */
const DefaultGeometryName string = "default"

/**
 * @brief The object name a graphics context reserves for "no object".
 * It is the largest value a GL object name can hold.
 */
const InvalidHandleName uint32 = stdmath.MaxUint32

/**
 * @brief A reference to an object (vertex array, buffer) owned by a
 * graphics context. The zero value is the invalid handle.
 */
type Handle struct {
	name uint32
	ok   bool
}

// HandleOf wraps an object name returned by a graphics context.
// InvalidHandleName maps to the invalid handle.
func HandleOf(name uint32) Handle {
	if name == InvalidHandleName {
		return Handle{}
	}
	return Handle{name: name, ok: true}
}

// Name returns the context object name, or InvalidHandleName.
func (h Handle) Name() uint32 {
	if !h.ok {
		return InvalidHandleName
	}
	return h.name
}

func (h Handle) IsValid() bool { return h.ok }

func (h Handle) String() string {
	if !h.ok {
		return "invalid"
	}
	return fmt.Sprintf("%d", h.name)
}

/**
 * @brief The raw object names produced when a graphics context
 * uploads a mesh.
 */
type GeometryHandles struct {
	VertexArray  uint32
	VertexBuffer uint32
	IndexBuffer  uint32
}

// InvalidGeometryHandles has every name set to InvalidHandleName.
var InvalidGeometryHandles = GeometryHandles{
	VertexArray:  InvalidHandleName,
	VertexBuffer: InvalidHandleName,
	IndexBuffer:  InvalidHandleName,
}

/**
 * @brief The definition of one mesh inside a fixed graphics context.
 *
 * A record is "defined" when all three handles are valid. Nothing here
 * can tell whether the handles still name live objects, whether
 * VertexBuffer really holds VertexCount vertices, whether HasTexCoords
 * matches its layout or whether IndexCount matches IndexBuffer. Keeping
 * those consistent is the job of whoever registers the record. If the
 * owning context is destroyed or reset the record silently goes stale.
 */
type GeometryRecord struct {
	/** @brief The vertex array object binding the buffers' layout. */
	VertexArray Handle
	/** @brief The buffer holding per-vertex data. */
	VertexBuffer Handle
	/** @brief The buffer holding triangle indices. */
	IndexBuffer Handle
	/** @brief The number of indices in IndexBuffer. */
	IndexCount int
	/** @brief Indicates VertexBuffer carries meaningful texture coordinates. */
	HasTexCoords bool
	/** @brief The number of vertices (and normals, texcoords) in VertexBuffer. */
	VertexCount int
}

// NewGeometryRecord builds a record from context object names. Negative
// counts are rejected with core.ErrInvalidArgument.
func NewGeometryRecord(handles GeometryHandles, indexCount int, hasTexCoords bool, vertexCount int) (GeometryRecord, error) {
	if indexCount < 0 {
		return GeometryRecord{}, fmt.Errorf("%w: index count must be non-negative, got %d", core.ErrInvalidArgument, indexCount)
	}
	if vertexCount < 0 {
		return GeometryRecord{}, fmt.Errorf("%w: vertex count must be non-negative, got %d", core.ErrInvalidArgument, vertexCount)
	}
	return GeometryRecord{
		VertexArray:  HandleOf(handles.VertexArray),
		VertexBuffer: HandleOf(handles.VertexBuffer),
		IndexBuffer:  HandleOf(handles.IndexBuffer),
		IndexCount:   indexCount,
		HasTexCoords: hasTexCoords,
		VertexCount:  vertexCount,
	}, nil
}

// IsDefined reports whether all three handles are valid. It cannot know
// whether they name live objects in the current context.
func (g GeometryRecord) IsDefined() bool {
	return g.VertexArray.IsValid() && g.VertexBuffer.IsValid() && g.IndexBuffer.IsValid()
}

// RequireDefined returns an error wrapping core.ErrPreconditionViolation
// with message if g is not defined.
func (g GeometryRecord) RequireDefined(message string) error {
	if !g.IsDefined() {
		return fmt.Errorf("%w: %s", core.ErrPreconditionViolation, message)
	}
	return nil
}

// Handles returns the raw object names, InvalidHandleName for invalid ones.
func (g GeometryRecord) Handles() GeometryHandles {
	return GeometryHandles{
		VertexArray:  g.VertexArray.Name(),
		VertexBuffer: g.VertexBuffer.Name(),
		IndexBuffer:  g.IndexBuffer.Name(),
	}
}

/**
 * @brief Represents the CPU-side data a graphics context uploads to
 * produce a GeometryRecord.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices. */
	Indices []uint32
	/** @brief Indicates the vertices carry texture coordinates. */
	HasTexCoords bool

	Center  math.Vec3
	Extents math.Extents3D

	/** @brief The Name of the geometry. */
	Name string
}

func (c *GeometryConfig) VertexCount() int { return len(c.Vertices) }

func (c *GeometryConfig) IndexCount() int { return len(c.Indices) }
